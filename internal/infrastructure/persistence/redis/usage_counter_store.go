package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/aimuhasebi/platform/internal/domain/repository"
	"github.com/aimuhasebi/platform/pkg/constants"
	"github.com/aimuhasebi/platform/pkg/errors"
)

// incrementIfBelowScript atomically applies an increment only when the
// resulting value stays at or under the limit. Returns {applied, value}.
// The TTL is attached on first write only, so a monthly counter expires a
// fixed interval after its first consumption regardless of later traffic.
var incrementIfBelowScript = redis.NewScript(`
local current = tonumber(redis.call('GET', KEYS[1]) or '0')
local delta = tonumber(ARGV[1])
local limit = tonumber(ARGV[2])
local ttl = tonumber(ARGV[3])

if current + delta > limit then
    return {0, current}
end

local value = redis.call('INCRBY', KEYS[1], delta)
if ttl > 0 and redis.call('TTL', KEYS[1]) < 0 then
    redis.call('EXPIRE', KEYS[1], ttl)
end
return {1, value}
`)

// usageCounterStore implements repository.UsageCounterRepository on Redis.
// Monthly counters carry a TTL slightly longer than a month so stale periods
// clean themselves up; lifetime counters never expire.
type usageCounterStore struct {
	client redis.UniversalClient
}

// NewUsageCounterStore creates the Redis usage counter store.
func NewUsageCounterStore(client redis.UniversalClient) repository.UsageCounterRepository {
	return &usageCounterStore{client: client}
}

func counterKey(tenantID string, metric constants.UsageMetricType, period string) string {
	return fmt.Sprintf("usage:%s:%s:%s", tenantID, metric, period)
}

func counterTTLSeconds(metric constants.UsageMetricType) int64 {
	if metric.IsMonthly() {
		return int64(constants.MonthlyCounterTTL.Seconds())
	}
	return 0
}

func (s *usageCounterStore) Get(ctx context.Context, tenantID string, metric constants.UsageMetricType, period string) (int64, error) {
	value, err := s.client.Get(ctx, counterKey(tenantID, metric, period)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrap(err, "failed to read usage counter")
	}
	return value, nil
}

func (s *usageCounterStore) Increment(ctx context.Context, tenantID string, metric constants.UsageMetricType, period string, delta int64) (int64, error) {
	key := counterKey(tenantID, metric, period)
	value, err := s.client.IncrBy(ctx, key, delta).Result()
	if err != nil {
		return 0, errors.Wrap(err, "failed to increment usage counter")
	}

	if ttl := counterTTLSeconds(metric); ttl > 0 {
		// NX keeps the expiry anchored to the counter's first write.
		if err := s.client.ExpireNX(ctx, key, constants.MonthlyCounterTTL).Err(); err != nil {
			return 0, errors.Wrap(err, "failed to set usage counter expiry")
		}
	}
	return value, nil
}

func (s *usageCounterStore) IncrementIfBelow(ctx context.Context, tenantID string, metric constants.UsageMetricType, period string, delta, limit int64) (bool, int64, error) {
	key := counterKey(tenantID, metric, period)
	result, err := incrementIfBelowScript.Run(ctx, s.client,
		[]string{key}, delta, limit, counterTTLSeconds(metric)).Int64Slice()
	if err != nil {
		return false, 0, errors.Wrap(err, "failed to run conditional increment")
	}
	if len(result) != 2 {
		return false, 0, errors.ErrInternal("unexpected conditional increment reply")
	}
	return result[0] == 1, result[1], nil
}
