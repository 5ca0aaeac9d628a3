package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	RDB *redis.Client
}

func NewRedisStore(addr, pass string, db int) *RedisStore {
	return &RedisStore{
		RDB: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
	}
}

func key(id string) string { return "tracker:session:" + id }

// Ping fails fast at startup when redis is unreachable.
func (r *RedisStore) Ping(ctx context.Context) error { return r.RDB.Ping(ctx).Err() }

func (r *RedisStore) Save(ctx context.Context, s Session) error {
	k := key(s.ID)
	_, err := r.RDB.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, k, map[string]any{
			"user_id":    strconv.FormatUint(uint64(s.UserID), 10),
			"expires_at": s.ExpiresAt.UTC().Format(time.RFC3339Nano),
		})
		p.ExpireAt(ctx, k, s.ExpiresAt)
		return nil
	})
	return err
}

func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := r.RDB.HGetAll(ctx, key(id)).Result()
	if errors.Is(err, redis.Nil) || (err == nil && len(data) == 0) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeSession(id, data)
}

// decodeSession rebuilds a session from its hash. A hash that does not
// parse is a store fault, not a missing session.
func decodeSession(id string, data map[string]string) (*Session, error) {
	uid, err := strconv.ParseUint(data["user_id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("session %s: user_id: %w", id, err)
	}
	exp, err := time.Parse(time.RFC3339Nano, data["expires_at"])
	if err != nil {
		return nil, fmt.Errorf("session %s: expires_at: %w", id, err)
	}
	return &Session{ID: id, UserID: uint(uid), ExpiresAt: exp}, nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.RDB.Del(ctx, key(id)).Err()
}

func (r *RedisStore) Close() error { return r.RDB.Close() }
