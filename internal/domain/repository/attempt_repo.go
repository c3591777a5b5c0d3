package repository

import (
	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// AttemptRepository определяет методы для работы с попытками прохождения.
// Попытки только создаются и читаются — обновления и удаления не предусмотрены.
type AttemptRepository interface {
	Create(attempt *entity.QuizAttempt) error
	GetByID(id uint) (*entity.QuizAttempt, error)
	GetByUserID(userID uint, limit, offset int) ([]entity.QuizAttempt, error)
	// GetByQuizID возвращает все попытки викторины (для экспорта результатов)
	GetByQuizID(quizID uint) ([]entity.QuizAttempt, error)
}
