package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/folio-inc/folio/internal/shared/authorization"
	"github.com/folio-inc/folio/internal/shared/biztime"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims identifies a viewer. Subject carries the viewer SID.
type Claims struct {
	Role authorization.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// ViewerID returns the viewer SID the token was issued for.
func (c *Claims) ViewerID() string {
	return c.Subject
}

type JWTService struct {
	secret           []byte
	issuer           string
	accessExpMinutes int
	clock            biztime.Clock
}

func NewJWTService(secret, issuer string, accessExpMinutes int, clock biztime.Clock) *JWTService {
	if clock == nil {
		clock = biztime.SystemClock{}
	}
	return &JWTService{
		secret:           []byte(secret),
		issuer:           issuer,
		accessExpMinutes: accessExpMinutes,
		clock:            clock,
	}
}

// Generate signs an HS256 access token for viewerID.
func (s *JWTService) Generate(viewerID string, role authorization.UserRole) (string, time.Time, error) {
	if viewerID == "" {
		return "", time.Time{}, fmt.Errorf("viewer ID is required")
	}
	now := s.clock.Now()
	exp := now.Add(time.Duration(s.accessExpMinutes) * time.Minute)

	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   viewerID,
			Issuer:    s.issuer,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, exp, nil
}

func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	claims.Role = authorization.ParseUserRole(claims.Role.String())
	return claims, nil
}
