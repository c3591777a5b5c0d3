package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
	"github.com/yourusername/quiz-api/internal/service"
	"github.com/yourusername/quiz-api/pkg/auth"
)

// AuthHandler обрабатывает запросы, связанные с аутентификацией
type AuthHandler struct {
	authService *service.AuthService
	tokenMaxAge int // Время жизни куки access-токена в секундах
}

// NewAuthHandler создает новый обработчик аутентификации
func NewAuthHandler(authService *service.AuthService, tokenMaxAgeSec int) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		tokenMaxAge: tokenMaxAgeSec,
	}
}

// SignUpRequest представляет запрос на регистрацию
type SignUpRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// SignInRequest представляет запрос на вход
type SignInRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignUp обрабатывает регистрацию. Пользователь входит автоматически:
// токен выдается сразу и устанавливается в HttpOnly куку.
// POST /sign_up/
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.authService.RegisterUser(req.Username, req.Email, req.Password)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	log.Printf("[AuthHandler] Пользователь ID=%d (%s) успешно зарегистрирован", user.ID, user.Username)

	h.setTokenCookie(c, token)
	c.JSON(http.StatusCreated, gin.H{
		"user":        user,
		"accessToken": token,
		"tokenType":   "Bearer",
	})
}

// SignIn обрабатывает вход по username/password.
// POST /sign_in/
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.authService.LoginUser(req.Username, req.Password)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	h.setTokenCookie(c, token)
	c.JSON(http.StatusOK, gin.H{
		"user":        user,
		"accessToken": token,
		"tokenType":   "Bearer",
	})
}

// SignOut завершает сессию: текущий токен отзывается, кука очищается.
// GET /sign_out/
func (h *AuthHandler) SignOut(c *gin.Context) {
	claimsRaw, exists := c.Get("claims")
	if !exists {
		h.handleAuthError(c, apperrors.ErrUnauthorized)
		return
	}
	claims, ok := claimsRaw.(*auth.Claims)
	if !ok {
		h.handleAuthError(c, errors.New("invalid claims in context"))
		return
	}

	if err := h.authService.LogoutUser(claims); err != nil {
		h.handleAuthError(c, err)
		return
	}

	h.clearTokenCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Signed out successfully"})
}

// setTokenCookie устанавливает HttpOnly куку с access-токеном
func (h *AuthHandler) setTokenCookie(c *gin.Context, token string) {
	secure := gin.Mode() == gin.ReleaseMode
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.AccessTokenCookie, token, h.tokenMaxAge, "/", "", secure, true)
}

// clearTokenCookie удаляет куку access-токена
func (h *AuthHandler) clearTokenCookie(c *gin.Context) {
	secure := gin.Mode() == gin.ReleaseMode
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.AccessTokenCookie, "", -1, "/", "", secure, true)
}

// handleAuthError обрабатывает ошибки сервиса аутентификации
func (h *AuthHandler) handleAuthError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrUnauthorized) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in AuthHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
