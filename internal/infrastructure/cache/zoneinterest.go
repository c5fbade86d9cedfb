package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	vo "github.com/folio-inc/folio/internal/domain/content/valueobjects"
	"github.com/folio-inc/folio/internal/shared/constants"
	"github.com/folio-inc/folio/internal/shared/logger"
)

const zoneInterestTTL = 30 * 24 * time.Hour

// ZoneScore is one zone with its accumulated interest.
type ZoneScore struct {
	Zone  vo.Zone
	Score float64
}

// ZoneInterestStore counts the zones of the previews a signed-in viewer opens,
// gated or not.
type ZoneInterestStore struct {
	client redis.Cmdable
	logger logger.Interface
}

func NewZoneInterestStore(client redis.Cmdable, logger logger.Interface) *ZoneInterestStore {
	return &ZoneInterestStore{client: client, logger: logger}
}

func (s *ZoneInterestStore) key(viewerID string) string {
	return fmt.Sprintf(constants.ZoneInterestKeyPattern, viewerID)
}

// Record bumps each zone by one and refreshes the key's expiry.
func (s *ZoneInterestStore) Record(ctx context.Context, viewerID string, zones []vo.Zone) error {
	if viewerID == "" || len(zones) == 0 {
		return nil
	}
	key := s.key(viewerID)
	pipe := s.client.Pipeline()
	for _, z := range zones {
		pipe.ZIncrBy(ctx, key, 1, z.String())
	}
	pipe.Expire(ctx, key, zoneInterestTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record zone interest: %w", err)
	}
	return nil
}

// Top returns up to n zones, highest score first. Unknown members are skipped.
func (s *ZoneInterestStore) Top(ctx context.Context, viewerID string, n int) ([]ZoneScore, error) {
	if n <= 0 {
		return nil, nil
	}
	members, err := s.client.ZRevRangeWithScores(ctx, s.key(viewerID), 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read zone interest: %w", err)
	}

	scores := make([]ZoneScore, 0, len(members))
	for _, m := range members {
		name, _ := m.Member.(string)
		z, err := vo.ParseZone(name)
		if err != nil {
			s.logger.Warnw("skipping unknown zone in interest set", "viewer_id", viewerID, "member", name)
			continue
		}
		scores = append(scores, ZoneScore{Zone: z, Score: m.Score})
	}
	return scores, nil
}
