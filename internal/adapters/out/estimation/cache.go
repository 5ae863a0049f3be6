package estimation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"deliverytracking/internal/core/domain/model/delivery"
	"deliverytracking/internal/core/ports"
	"deliverytracking/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const cacheKeyPrefix = "delivery-estimate:"

var _ ports.DeliveryTimeEstimationService = &CachedService{}

type cachedEstimate struct {
	EstimatedTime time.Duration `json:"estimatedTime"`
	DistanceInKm  float64       `json:"distanceInKm"`
}

// CachedService serves repeated routes from Redis. Cache failures are logged
// and fall through to the wrapped service.
type CachedService struct {
	next   ports.DeliveryTimeEstimationService
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedisClient parses a URL such as redis://[:password@]host[:port][/db].
func NewRedisClient(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	return redis.NewClient(opts), nil
}

func NewCachedService(next ports.DeliveryTimeEstimationService, client *redis.Client, ttl time.Duration) *CachedService {
	return &CachedService{
		next:   next,
		client: client,
		ttl:    ttl,
		log:    logger.Get().Named("estimation_cache"),
	}
}

func (s *CachedService) Estimate(
	ctx context.Context,
	sender, recipient delivery.ContactPoint,
) (ports.DeliveryEstimate, error) {
	key := CacheKey(sender, recipient)

	if estimate, ok := s.lookup(ctx, key); ok {
		return estimate, nil
	}

	estimate, err := s.next.Estimate(ctx, sender, recipient)
	if err != nil {
		return ports.DeliveryEstimate{}, err
	}

	s.store(ctx, key, estimate)
	return estimate, nil
}

func (s *CachedService) lookup(ctx context.Context, key string) (ports.DeliveryEstimate, bool) {
	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.DeliveryEstimate{}, false
	}
	if err != nil {
		s.log.Warn("failed to read cached estimate", zap.String("key", key), zap.Error(err))
		return ports.DeliveryEstimate{}, false
	}

	var cached cachedEstimate
	if err = json.Unmarshal(raw, &cached); err != nil {
		s.log.Warn("dropping unreadable cached estimate", zap.String("key", key), zap.Error(err))
		return ports.DeliveryEstimate{}, false
	}

	return ports.DeliveryEstimate(cached), true
}

func (s *CachedService) store(ctx context.Context, key string, estimate ports.DeliveryEstimate) {
	raw, err := json.Marshal(cachedEstimate(estimate))
	if err != nil {
		s.log.Warn("failed to encode estimate", zap.Error(err))
		return
	}
	if err = s.client.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		s.log.Warn("failed to cache estimate", zap.String("key", key), zap.Error(err))
	}
}

// CacheKey derives a stable key from every field of both contact points.
func CacheKey(sender, recipient delivery.ContactPoint) string {
	h := sha256.New()
	for _, cp := range []delivery.ContactPoint{sender, recipient} {
		for _, field := range []string{cp.ZipCode(), cp.Street(), cp.Number(), cp.Complement(), cp.Name(), cp.Phone()} {
			_, _ = fmt.Fprintf(h, "%d:%s|", len(field), field)
		}
	}
	return cacheKeyPrefix + hex.EncodeToString(h.Sum(nil))
}
