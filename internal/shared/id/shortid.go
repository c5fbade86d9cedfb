// Package id generates Stripe style public identifiers ("ct_3fK9xQ...").
package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	DefaultLength = 14
)

const (
	PrefixContent      = "ct"
	PrefixViewer       = "vw"
	PrefixPlan         = "pl"
	PrefixSubscription = "sub"
)

// Generate returns a cryptographically random base62 string.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}
	max := big.NewInt(int64(len(alphabet)))
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to read random source: %w", err)
		}
		b.WriteByte(alphabet[n.Int64()])
	}
	return b.String(), nil
}

// GenerateWithPrefix returns "prefix_<random>".
func GenerateWithPrefix(prefix string) (string, error) {
	s, err := Generate(DefaultLength)
	if err != nil {
		return "", err
	}
	return prefix + "_" + s, nil
}

func NewContentID() (string, error)      { return GenerateWithPrefix(PrefixContent) }
func NewViewerID() (string, error)       { return GenerateWithPrefix(PrefixViewer) }
func NewPlanID() (string, error)         { return GenerateWithPrefix(PrefixPlan) }
func NewSubscriptionID() (string, error) { return GenerateWithPrefix(PrefixSubscription) }

// HasPrefix reports whether sid is "<prefix>_<non-empty base62>".
func HasPrefix(sid, prefix string) bool {
	rest, ok := strings.CutPrefix(sid, prefix+"_")
	if !ok || rest == "" {
		return false
	}
	for i := 0; i < len(rest); i++ {
		if strings.IndexByte(alphabet, rest[i]) < 0 {
			return false
		}
	}
	return true
}

// ValidateContentID checks the shape of a content SID.
func ValidateContentID(sid string) error {
	if !HasPrefix(sid, PrefixContent) {
		return fmt.Errorf("invalid content id %q", sid)
	}
	return nil
}
