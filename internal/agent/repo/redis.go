package repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tdh-assistant/server/internal/agent/model"
	errx "github.com/tdh-assistant/server/internal/core/error"
	logx "github.com/tdh-assistant/server/pkg/logger"
)

const sessionKeyPrefix = "intake:session:"

// RedisSessionStore keeps one JSON record per thread id. Age-based
// cleanup is delegated to the key TTL, refreshed on every save.
type RedisSessionStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisSessionStore(rdb redis.Cmdable, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb, ttl: ttl}
}

func (r *RedisSessionStore) sessionKey(threadID string) string {
	return sessionKeyPrefix + threadID
}

func (r *RedisSessionStore) Save(ctx context.Context, session *model.Session) error {
	b, err := encodeSession(session)
	if err != nil {
		logx.Error().Err(err).Str("thread_id", session.ThreadID).Msg("failed to marshal session")
		return err
	}
	key := r.sessionKey(session.ThreadID)

	if err := r.rdb.Set(ctx, key, b, r.ttl).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to write session to redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisSessionStore) Load(ctx context.Context, threadID string) (*model.Session, error) {
	key := r.sessionKey(threadID)

	raw, err := r.rdb.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load session from redis")
		return nil, errx.WrapRedis(err)
	}

	s, err := decodeSession([]byte(raw))
	if err != nil {
		logx.Error().Err(err).Str("thread_id", threadID).Msg("failed to unmarshal session")
		return nil, err
	}
	return s, nil
}

func (r *RedisSessionStore) Delete(ctx context.Context, threadID string) error {
	key := r.sessionKey(threadID)
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to delete session from redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisSessionStore) ListThreads(ctx context.Context) ([]string, error) {
	var (
		threads []string
		cursor  uint64
	)
	for {
		keys, next, err := r.rdb.Scan(ctx, cursor, sessionKeyPrefix+"*", 100).Result()
		if err != nil {
			logx.Error().Err(err).Msg("failed to scan session keys")
			return nil, errx.WrapRedis(err)
		}
		for _, k := range keys {
			threads = append(threads, strings.TrimPrefix(k, sessionKeyPrefix))
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return threads, nil
}

// Cleanup is a no-op: the per-key TTL already expires idle sessions.
func (r *RedisSessionStore) Cleanup(ctx context.Context, maxAge time.Duration) error {
	logx.Debug().Dur("max_age", maxAge).Msg(fmt.Sprintf("cleanup delegated to redis TTL (%s)", r.ttl))
	return nil
}

var _ model.SessionStore = (*RedisSessionStore)(nil)
