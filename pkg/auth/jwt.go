package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// AccessTokenCookie — имя HttpOnly куки с access-токеном
const AccessTokenCookie = "access_token"

// Claims представляет полезную нагрузку access-токена
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// JWTService создает и проверяет access-токены.
// Каждый токен получает уникальный jti; при выходе пользователя jti
// помещается в хранилище отозванных токенов до истечения срока жизни.
type JWTService struct {
	secretKey  []byte
	expiration time.Duration
	tokenRepo  repository.TokenRepository
}

// NewJWTService создает новый сервис JWT
func NewJWTService(secret string, expirationHrs int, tokenRepo repository.TokenRepository) (*JWTService, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	if expirationHrs <= 0 {
		expirationHrs = 24
	}
	if tokenRepo == nil {
		return nil, fmt.Errorf("token repository is required")
	}
	return &JWTService{
		secretKey:  []byte(secret),
		expiration: time.Duration(expirationHrs) * time.Hour,
		tokenRepo:  tokenRepo,
	}, nil
}

// Expiration возвращает срок жизни access-токена
func (s *JWTService) Expiration() time.Duration {
	return s.expiration
}

// GenerateToken выпускает подписанный access-токен для пользователя
func (s *JWTService) GenerateToken(user *entity.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken проверяет подпись и срок жизни токена, а также его отзыв.
// Любая невалидность (подпись, истечение, отзыв) возвращается как ErrUnauthorized.
func (s *JWTService) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token: %w", apperrors.ErrUnauthorized)
	}
	if claims.ID == "" {
		return nil, fmt.Errorf("token has no jti: %w", apperrors.ErrUnauthorized)
	}

	revoked, err := s.tokenRepo.IsRevoked(claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check token revocation: %w", err)
	}
	if revoked {
		return nil, fmt.Errorf("token has been revoked: %w", apperrors.ErrUnauthorized)
	}

	return claims, nil
}

// RevokeToken отзывает токен до конца его срока жизни
func (s *JWTService) RevokeToken(claims *Claims) error {
	if claims == nil || claims.ID == "" {
		return errors.New("claims with jti are required to revoke a token")
	}
	ttl := s.expiration
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	return s.tokenRepo.Revoke(claims.ID, ttl)
}
