package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Префикс ключей отозванных токенов
const revokedKeyPrefix = "revoked_token:"

// RevokedTokenRepo реализует repository.TokenRepository поверх Redis.
// Отозванный jti хранится до истечения срока жизни токена (TTL),
// после чего токен и так перестает быть валидным.
type RevokedTokenRepo struct {
	client redis.UniversalClient
	ctx    context.Context
}

// NewRevokedTokenRepo создает новое хранилище отозванных токенов
func NewRevokedTokenRepo(client redis.UniversalClient) (*RevokedTokenRepo, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client cannot be nil for RevokedTokenRepo")
	}
	return &RevokedTokenRepo{
		client: client,
		ctx:    context.Background(),
	}, nil
}

// Revoke помечает jti как отозванный до истечения ttl
func (r *RevokedTokenRepo) Revoke(jti string, ttl time.Duration) error {
	if ttl <= 0 {
		// Токен уже истек — хранить нечего
		return nil
	}
	return r.client.Set(r.ctx, revokedKeyPrefix+jti, "1", ttl).Err()
}

// IsRevoked проверяет, отозван ли jti
func (r *RevokedTokenRepo) IsRevoked(jti string) (bool, error) {
	result, err := r.client.Exists(r.ctx, revokedKeyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return result > 0, nil
}
