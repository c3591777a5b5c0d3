package repository

import (
	"time"
)

// TokenRepository определяет хранилище отозванных токенов сессий.
// При выходе пользователя jti токена помещается сюда до истечения его срока жизни.
type TokenRepository interface {
	Revoke(jti string, ttl time.Duration) error
	IsRevoked(jti string) (bool, error)
}
