package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"asokatrip/models"
	"asokatrip/utils"
)

// SessionCache remembers verified ID tokens so each request does not re-verify the signature.
type SessionCache interface {
	Get(ctx context.Context, idToken string) (*models.AdminUser, bool)
	Set(ctx context.Context, idToken string, user *models.AdminUser, ttl time.Duration) error
	Forget(ctx context.Context, uid string) error
}

// RedisSessionCache stores tokens under their SHA-256 and tracks them per user for sign-out.
type RedisSessionCache struct {
	client *redis.Client
}

func NewRedisSessionCache(client *redis.Client) *RedisSessionCache {
	return &RedisSessionCache{client: client}
}

func tokenKey(idToken string) string {
	sum := sha256.Sum256([]byte(idToken))
	return utils.AuthCachePrefix + hex.EncodeToString(sum[:])
}

func userKey(uid string) string {
	return utils.AuthCachePrefix + "uid:" + uid
}

func (r *RedisSessionCache) Get(ctx context.Context, idToken string) (*models.AdminUser, bool) {
	raw, err := r.client.Get(ctx, tokenKey(idToken)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			utils.GetLogger().Warn("Auth cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var user models.AdminUser
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, false
	}
	return &user, true
}

func (r *RedisSessionCache) Set(ctx context.Context, idToken string, user *models.AdminUser, ttl time.Duration) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	key := tokenKey(idToken)
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, raw, ttl)
	pipe.SAdd(ctx, userKey(user.UID), key)
	pipe.Expire(ctx, userKey(user.UID), utils.AuthCacheTTL)
	_, err = pipe.Exec(ctx)
	return err
}

// Forget drops every cached token of uid.
func (r *RedisSessionCache) Forget(ctx context.Context, uid string) error {
	keys, err := r.client.SMembers(ctx, userKey(uid)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	keys = append(keys, userKey(uid))
	return r.client.Del(ctx, keys...).Err()
}

// NoCache disables token caching.
type NoCache struct{}

func (NoCache) Get(context.Context, string) (*models.AdminUser, bool) { return nil, false }

func (NoCache) Set(context.Context, string, *models.AdminUser, time.Duration) error { return nil }

func (NoCache) Forget(context.Context, string) error { return nil }
