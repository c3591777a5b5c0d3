package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
	"github.com/yourusername/quiz-api/pkg/auth"
)

// AuthService предоставляет методы регистрации и входа/выхода пользователей
type AuthService struct {
	userRepo     repository.UserRepository
	jwtService   *auth.JWTService
	emailService EmailService
}

// NewAuthService создает новый сервис аутентификации
func NewAuthService(
	userRepo repository.UserRepository,
	jwtService *auth.JWTService,
	emailService EmailService,
) (*AuthService, error) {
	if userRepo == nil || jwtService == nil {
		return nil, errors.New("userRepo and jwtService are required")
	}
	if emailService == nil {
		emailService = &NoopEmailService{}
	}
	return &AuthService{
		userRepo:     userRepo,
		jwtService:   jwtService,
		emailService: emailService,
	}, nil
}

// RegisterUser регистрирует нового пользователя и сразу выпускает для него токен
// (автоматический вход после регистрации). Пароль хешируется в entity.User.BeforeSave.
func (s *AuthService) RegisterUser(username, email, password string) (*entity.User, string, error) {
	user := &entity.User{
		Username: username,
		Email:    email,
		Password: password,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, "", err
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token after registration: %w", err)
	}

	// Приветственное письмо не должно блокировать регистрацию
	go func(toEmail, toUsername string) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.emailService.SendWelcome(ctx, toEmail, toUsername); err != nil {
			log.Printf("[AuthService] Не удалось отправить приветственное письмо для %s: %v", toEmail, err)
		}
	}(user.Email, user.Username)

	return user, token, nil
}

// LoginUser проверяет учетные данные и выпускает токен.
// Несуществующий username и неверный пароль неразличимы для клиента.
func (s *AuthService) LoginUser(username, password string) (*entity.User, string, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", fmt.Errorf("invalid username or password: %w", apperrors.ErrUnauthorized)
		}
		return nil, "", err
	}

	if !user.CheckPassword(password) {
		return nil, "", fmt.Errorf("invalid username or password: %w", apperrors.ErrUnauthorized)
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// LogoutUser отзывает текущий токен пользователя
func (s *AuthService) LogoutUser(claims *auth.Claims) error {
	if err := s.jwtService.RevokeToken(claims); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// GetUserByID возвращает пользователя по ID
func (s *AuthService) GetUserByID(userID uint) (*entity.User, error) {
	return s.userRepo.GetByID(userID)
}
