package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"atlas/internal/config"
)

const (
	keyPrefix = "atlas:memory:"
	// keyIndex scores each live memory id by its expiry in unix milliseconds, 0 for none.
	keyIndex  = keyPrefix + "index"
	keyRatios = keyPrefix + "ratios"

	maxIDAttempts = 100
)

// RedisStore keeps memories in Redis so that several processes share them.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
	now    func() time.Time
}

var _ Store = (*RedisStore)(nil)

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return client, nil
}

// NewRedis wraps an existing client. ttl <= 0 keeps memories until evicted.
func NewRedis(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *RedisStore {
	return &RedisStore{client: client, ttl: max(ttl, 0), logger: logger, now: time.Now}
}

func entryKey(id string) string   { return keyPrefix + "entry:" + id }
func accessKey(id string) string  { return keyPrefix + "access:" + id }
func patternKey(id string) string { return keyPrefix + "pattern:" + id }

// Put claims a unique id with SETNX, then records the pattern, index and
// ratio in one transaction. A failed transaction releases the claimed entry.
func (s *RedisStore) Put(ctx context.Context, content string, metadata map[string]string) (string, error) {
	now := s.now()
	comp := Compress(content)
	base := NewID(now, content)

	var id string
	for n := 0; ; n++ {
		if n == maxIDAttempts {
			return "", fmt.Errorf("allocate memory id: %d collisions for %s", n, base)
		}
		id = base
		if n > 0 {
			id = fmt.Sprintf("%s_%d", base, n)
		}
		b, err := json.Marshal(Entry{
			ID:        id,
			Content:   comp,
			Metadata:  metadata,
			StoredAt:  now,
			Signature: Signature(content),
		})
		if err != nil {
			return "", fmt.Errorf("marshal memory: %w", err)
		}
		ok, err := s.client.SetNX(ctx, entryKey(id), b, s.ttl).Result()
		if err != nil {
			return "", fmt.Errorf("store memory: %w", err)
		}
		if ok {
			break
		}
	}

	var expiresAt float64
	if s.ttl > 0 {
		expiresAt = float64(now.Add(s.ttl).UnixMilli())
	}
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, patternKey(id),
			"memory_id", id,
			"compression_ratio", comp.Ratio,
			"fractal_level", comp.FractalLevel,
		)
		if s.ttl > 0 {
			pipe.Expire(ctx, patternKey(id), s.ttl)
		}
		pipe.ZAdd(ctx, keyIndex, redis.Z{Score: expiresAt, Member: id})
		pipe.HSet(ctx, keyRatios, id, comp.Ratio)
		return nil
	})
	if err != nil {
		if derr := s.client.Del(ctx, entryKey(id)).Err(); derr != nil {
			s.logger.Warn().Err(derr).Str("memory_id", id).Msg("memory entry release failed")
		}
		return "", fmt.Errorf("store memory patterns: %w", err)
	}
	return id, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Recall, error) {
	b, err := s.client.Get(ctx, entryKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load memory: %w", err)
	}

	var e Entry
	if err := json.Unmarshal(b, &e); err != nil {
		return nil, fmt.Errorf("decode memory: %w", err)
	}

	count, err := s.client.Incr(ctx, accessKey(id)).Result()
	if err != nil {
		s.logger.Warn().Err(err).Str("memory_id", id).Msg("memory access count update failed")
		return recall(&e), nil
	}
	e.AccessCount = int(count)
	if s.ttl > 0 {
		if err := s.client.Expire(ctx, accessKey(id), s.ttl).Err(); err != nil {
			s.logger.Warn().Err(err).Str("memory_id", id).Msg("memory access count expiry failed")
		}
	}
	return recall(&e), nil
}

// Metrics drops expired ids from the index before counting, so totals only
// cover memories that can still be recalled.
func (s *RedisStore) Metrics(ctx context.Context) (*Metrics, error) {
	now := strconv.FormatInt(s.now().UnixMilli(), 10)
	expired, err := s.client.ZRangeByScore(ctx, keyIndex, &redis.ZRangeBy{Min: "(0", Max: now}).Result()
	if err != nil {
		return nil, fmt.Errorf("load expired memories: %w", err)
	}
	if len(expired) > 0 {
		_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.ZRem(ctx, keyIndex, toMembers(expired)...)
			pipe.HDel(ctx, keyRatios, expired...)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("prune expired memories: %w", err)
		}
	}

	ratios, err := s.client.HVals(ctx, keyRatios).Result()
	if err != nil {
		return nil, fmt.Errorf("load memory metrics: %w", err)
	}
	var sum float64
	for _, r := range ratios {
		sum += parseFloat(r)
	}
	// One fractal pattern is kept per live memory.
	return newMetrics(len(ratios), len(ratios), sum, "redis"), nil
}

func toMembers(ids []string) []any {
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}

func parseFloat(v string) float64 {
	f, _ := strconv.ParseFloat(v, 64)
	return f
}

// ErrUnknownBackend is returned by Open for an unrecognised backend name.
var ErrUnknownBackend = errors.New("unknown memory backend")

// Open builds the store selected by mc. The returned close function releases
// the Redis connection and is a no-op for the in-process store.
func Open(ctx context.Context, mc config.MemoryConfig, rc config.RedisConfig, logger zerolog.Logger) (Store, func() error, error) {
	switch mc.Backend {
	case "", "inmemory":
		return NewInMemory(), func() error { return nil }, nil
	case "redis":
		client, err := NewRedisClient(ctx, rc)
		if err != nil {
			return nil, nil, err
		}
		ttl := time.Duration(mc.TTLSec) * time.Second
		return NewRedis(client, ttl, logger), client.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownBackend, mc.Backend)
	}
}
