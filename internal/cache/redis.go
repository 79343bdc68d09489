package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	"github.com/sportsevents/sports-events-api/config"
)

// ErrCacheMiss is returned when a key is not present in the cache or
// caching is disabled.
var ErrCacheMiss = errors.New("cache miss")

// Partition names one entity type's set of cached entries. Any write to
// that entity type clears the whole partition.
type Partition string

const (
	CategoryPartition Partition = "category"
	VenuePartition    Partition = "venue"
)

// CacheClient defines the interface for cache operations. Keys are the
// logical operation name plus its argument tuple; values are the
// operation's JSON-encoded result.
type CacheClient interface {
	Get(ctx context.Context, key string, value interface{}) error
	Set(ctx context.Context, key string, value interface{}) error
	InvalidatePartition(ctx context.Context, p Partition) error
	Close() error
}

// RedisClient implements CacheClient using Redis
type RedisClient struct {
	client  *redis.Client
	enabled bool
	ttl     time.Duration
}

// NewRedisClient creates a new Redis-backed cache client. When caching is
// disabled in configuration the returned client misses on every read and
// discards every write.
func NewRedisClient(cfg config.RedisConfig) (CacheClient, error) {
	if !cfg.Enabled {
		return &RedisClient{enabled: false}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test the connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(err, "failed to connect to Redis")
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}

	return &RedisClient{
		client:  client,
		enabled: true,
		ttl:     ttl,
	}, nil
}

// NewDisabledClient returns a cache client that misses on every read
// and discards every write
func NewDisabledClient() CacheClient {
	return &RedisClient{enabled: false}
}

// Get retrieves a value from cache
func (c *RedisClient) Get(ctx context.Context, key string, value interface{}) error {
	if !c.enabled {
		return ErrCacheMiss
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return ErrCacheMiss
		}
		return errors.Wrap(err, "failed to get value from Redis")
	}

	if err := json.Unmarshal(data, value); err != nil {
		return errors.Wrap(err, "failed to unmarshal cached value")
	}

	return nil
}

// Set stores a value in cache. The TTL is a safety net only; correctness
// comes from partition invalidation on writes.
func (c *RedisClient) Set(ctx context.Context, key string, value interface{}) error {
	if !c.enabled {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, "failed to marshal value for caching")
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to set value in Redis")
	}

	return nil
}

// InvalidatePartition deletes every cached entry for one entity type.
func (c *RedisClient) InvalidatePartition(ctx context.Context, p Partition) error {
	if !c.enabled {
		return nil
	}

	iter := c.client.Scan(ctx, 0, string(p)+":*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return errors.Wrap(err, "failed to scan cache partition")
	}

	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return errors.Wrap(err, "failed to clear cache partition")
	}

	return nil
}

// Close closes the Redis connection
func (c *RedisClient) Close() error {
	if !c.enabled || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// CategoriesKey returns the cache key for the full category listing.
func CategoriesKey() string {
	return "category:all"
}

// CategoryIDKey returns the cache key for a category looked up by id.
func CategoryIDKey(id uint) string {
	return fmt.Sprintf("category:id:%d", id)
}

// CategoryNameKey returns the cache key for a category looked up by name.
func CategoryNameKey(name string) string {
	return fmt.Sprintf("category:name:%s", name)
}

// CategoriesWithEventsKey returns the cache key for categories that have
// active events.
func CategoriesWithEventsKey() string {
	return "category:with-events"
}

// VenuesKey returns the cache key for one page of the venue listing.
func VenuesKey(page, size int, sortBy, sortDir string) string {
	return fmt.Sprintf("venue:all:%d:%d:%s:%s", page, size, sortBy, sortDir)
}

// VenueIDKey returns the cache key for a venue looked up by id.
func VenueIDKey(id uint) string {
	return fmt.Sprintf("venue:id:%d", id)
}

// VenuesByCityKey returns the cache key for venues in one city.
func VenuesByCityKey(city string) string {
	return fmt.Sprintf("venue:city:%s", city)
}

// VenueCitiesKey returns the cache key for the distinct city listing.
func VenueCitiesKey() string {
	return "venue:cities"
}

// VenuesWithEventsKey returns the cache key for venues with upcoming events.
func VenuesWithEventsKey() string {
	return "venue:with-events"
}

// VenueSearchKey returns the cache key for one page of a venue search.
func VenueSearchKey(q string, page, size int) string {
	return fmt.Sprintf("venue:search:%s:%d:%d", q, page, size)
}

// VenuesByCapacityKey returns the cache key for venues above a minimum
// capacity.
func VenuesByCapacityKey(min int) string {
	return fmt.Sprintf("venue:capacity:%d", min)
}
