package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yourusername/quiz-api/internal/config"
	"github.com/yourusername/quiz-api/internal/handler"
	"github.com/yourusername/quiz-api/internal/middleware"
	pgRepo "github.com/yourusername/quiz-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/quiz-api/internal/repository/redis"
	"github.com/yourusername/quiz-api/internal/service"
	"github.com/yourusername/quiz-api/pkg/auth"
	"github.com/yourusername/quiz-api/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis с использованием унифицированной конфигурации
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	userRepo := pgRepo.NewUserRepo(db)
	quizRepo := pgRepo.NewQuizRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	answerRepo := pgRepo.NewAnswerRepo(db)
	attemptRepo := pgRepo.NewAttemptRepo(db)

	// Репозиторий отозванных токенов живет в Redis: запись истекает вместе с токеном
	tokenRepo, err := redisRepo.NewRevokedTokenRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize RevokedTokenRepo: %v", err)
		os.Exit(1)
	}

	// Инициализируем JWT-сервис
	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs, tokenRepo)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	// Инициализируем отправку писем: Resend в проде, noop когда выключена
	var emailService service.EmailService
	if cfg.Email.Enabled {
		emailService, err = service.NewResendEmailService(cfg.Email.APIKey, cfg.Email.From)
		if err != nil {
			log.Printf("Failed to initialize email service: %v", err)
			os.Exit(1)
		}
		log.Println("Email service: Resend")
	} else {
		emailService = &service.NoopEmailService{}
		log.Println("Email service: disabled (noop)")
	}

	// Инициализируем сервисы
	authService, err := service.NewAuthService(userRepo, jwtService, emailService)
	if err != nil {
		log.Printf("Failed to initialize AuthService: %v", err)
		os.Exit(1)
	}
	quizService := service.NewQuizService(quizRepo, questionRepo)
	attemptService := service.NewAttemptService(quizRepo, questionRepo, answerRepo, attemptRepo)

	// Инициализируем обработчики
	tokenMaxAgeSec := int(jwtService.Expiration().Seconds())
	authHandler := handler.NewAuthHandler(authService, tokenMaxAgeSec)
	quizHandler := handler.NewQuizHandler(quizService, attemptService)

	// Инициализируем middleware
	requireAuth := middleware.RequireAuth(jwtService)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	isProduction := gin.Mode() == gin.ReleaseMode

	// Инициализируем роутер Gin
	router := gin.Default()

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	if isProduction {
		// Production: не доверять прокси-заголовкам
		// Если используете load balancer, замените nil на []string{"IP_БАЛАНСИРОВЩИКА"}
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		// Development: доверяем localhost
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:8000", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Location"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Публичные маршруты
	router.GET("/", quizHandler.ListQuizzes)

	// Строгий лимит на sign_in/sign_up — защита от перебора паролей
	strictLimit := rateLimiter.Limit(middleware.StrictAuthRateLimitConfig())
	router.POST("/sign_up/", strictLimit, authHandler.SignUp)
	router.POST("/sign_in/", strictLimit, authHandler.SignIn)

	// Проверка одного варианта ответа во время игры
	router.POST("/check_answer/:question_id/",
		middleware.ExtractUintParam("question_id", "questionID"),
		quizHandler.CheckAnswer)

	// Маршруты, требующие аутентификации
	authed := router.Group("/")
	authed.Use(requireAuth)
	{
		authed.GET("/sign_out/", authHandler.SignOut)
		authed.POST("/create_quiz/", quizHandler.CreateQuiz)
		authed.GET("/play_quiz/:quiz_id/",
			middleware.ExtractUintParam("quiz_id", "quizID"),
			quizHandler.PlayQuiz)
		authed.POST("/submit_quiz/:quiz_id/",
			middleware.ExtractUintParam("quiz_id", "quizID"),
			quizHandler.SubmitQuiz)
		authed.GET("/quiz_results/:attempt_id/",
			middleware.ExtractUintParam("attempt_id", "attemptID"),
			quizHandler.QuizResults)
		authed.GET("/my_attempts/", quizHandler.MyAttempts)
		authed.DELETE("/delete_quiz/:quiz_id/",
			middleware.ExtractUintParam("quiz_id", "quizID"),
			quizHandler.DeleteQuiz)
		authed.GET("/export_results/:quiz_id/",
			middleware.ExtractUintParam("quiz_id", "quizID"),
			quizHandler.ExportResults)
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Server started on port %s", cfg.Server.Port)

	// Ждем SIGINT или SIGTERM для корректного завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Создаем контекст с таймаутом для graceful shutdown сервера
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Server exited properly")
}
