package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// AttemptRepo реализует repository.AttemptRepository
type AttemptRepo struct {
	db *gorm.DB
}

// NewAttemptRepo создает новый репозиторий попыток прохождения
func NewAttemptRepo(db *gorm.DB) *AttemptRepo {
	return &AttemptRepo{db: db}
}

// Create сохраняет попытку. Каждая отправка ответов создает новую строку —
// повторная отправка тех же ответов создает вторую попытку, это ожидаемо.
func (r *AttemptRepo) Create(attempt *entity.QuizAttempt) error {
	return r.db.Create(attempt).Error
}

// GetByID возвращает попытку по ID
func (r *AttemptRepo) GetByID(id uint) (*entity.QuizAttempt, error) {
	var attempt entity.QuizAttempt
	err := r.db.First(&attempt, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &attempt, nil
}

// GetByUserID возвращает попытки пользователя, новые первыми
func (r *AttemptRepo) GetByUserID(userID uint, limit, offset int) ([]entity.QuizAttempt, error) {
	var attempts []entity.QuizAttempt
	err := r.db.Where("user_id = ?", userID).
		Limit(limit).Offset(offset).Order("id DESC").
		Find(&attempts).Error
	return attempts, err
}

// GetByQuizID возвращает все попытки викторины в порядке создания
func (r *AttemptRepo) GetByQuizID(quizID uint) ([]entity.QuizAttempt, error) {
	var attempts []entity.QuizAttempt
	err := r.db.Where("quiz_id = ?", quizID).Order("id").Find(&attempts).Error
	return attempts, err
}
