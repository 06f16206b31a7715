package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "curricula:artifact:"

// RedisArtifactRepo keeps only the newest artifact per session and kind,
// expiring it after a TTL. Several server instances can share it.
type RedisArtifactRepo struct {
	rdb *goredis.Client
	ttl time.Duration
}

var _ ArtifactRepo = (*RedisArtifactRepo)(nil)

// OpenRedis connects to addr and verifies the connection with a ping.
func OpenRedis(ctx context.Context, addr string, ttl time.Duration) (*RedisArtifactRepo, error) {
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisArtifactRepo{rdb: rdb, ttl: ttl}, nil
}

func (r *RedisArtifactRepo) Save(ctx context.Context, a *Artifact) error {
	if a.SessionID == "" {
		return ErrNoSession
	}
	prepareArtifact(a)

	seq, err := r.rdb.Incr(ctx, redisKeyPrefix+"seq").Result()
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	a.Sequence = seq

	raw, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode artifact: %w", err)
	}
	if err := r.rdb.Set(ctx, artifactKey(a.SessionID, a.Kind), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("save artifact: %w", err)
	}
	return nil
}

func (r *RedisArtifactRepo) Latest(ctx context.Context, sessionID, kind string) (*Artifact, error) {
	raw, err := r.rdb.Get(ctx, artifactKey(sessionID, kind)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest artifact: %w", err)
	}

	var a Artifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	return &a, nil
}

func (r *RedisArtifactRepo) Close() error {
	return r.rdb.Close()
}

func artifactKey(sessionID, kind string) string {
	return redisKeyPrefix + sessionID + ":" + kind
}
