package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// QuizRepo реализует repository.QuizRepository
type QuizRepo struct {
	db *gorm.DB
}

// NewQuizRepo создает новый репозиторий викторин
func NewQuizRepo(db *gorm.DB) *QuizRepo {
	return &QuizRepo{db: db}
}

// Create сохраняет викторину вместе с вложенными вопросами и ответами в одной транзакции.
// Порядок вставки соблюдает FK-зависимости: quiz → question → answer.
// При ошибке на любом шаге транзакция откатывается целиком — частичных строк не остается.
func (r *QuizRepo) Create(quiz *entity.Quiz) error {
	questions := quiz.Questions
	quiz.Questions = nil

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(quiz).Error; err != nil {
			return fmt.Errorf("failed to create quiz: %w", err)
		}

		for i := range questions {
			question := &questions[i]
			answers := question.Answers
			question.Answers = nil
			question.QuizID = quiz.ID

			if err := tx.Create(question).Error; err != nil {
				return fmt.Errorf("failed to create question #%d: %w", i+1, err)
			}

			for j := range answers {
				answers[j].QuestionID = question.ID
				if err := tx.Create(&answers[j]).Error; err != nil {
					return fmt.Errorf("failed to create answer #%d for question #%d: %w", j+1, i+1, err)
				}
			}
			question.Answers = answers
		}
		return nil
	})

	quiz.Questions = questions
	return err
}

// GetByID возвращает викторину по ID
func (r *QuizRepo) GetByID(id uint) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.First(&quiz, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// GetWithQuestions возвращает викторину вместе с вопросами и вариантами ответов
func (r *QuizRepo) GetWithQuestions(id uint) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.id")
		}).
		Preload("Questions.Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answers.id")
		}).
		First(&quiz, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// List возвращает список викторин с пагинацией
func (r *QuizRepo) List(limit, offset int) ([]entity.Quiz, error) {
	var quizzes []entity.Quiz
	err := r.db.Limit(limit).Offset(offset).Order("id DESC").Find(&quizzes).Error
	return quizzes, err
}

// ListByOwner возвращает викторины пользователя с пагинацией
func (r *QuizRepo) ListByOwner(ownerID uint, limit, offset int) ([]entity.Quiz, error) {
	var quizzes []entity.Quiz
	err := r.db.Where("owner_id = ?", ownerID).
		Limit(limit).Offset(offset).Order("id DESC").
		Find(&quizzes).Error
	return quizzes, err
}

// Delete удаляет викторину. Вопросы и ответы удаляются каскадно на уровне БД.
func (r *QuizRepo) Delete(id uint) error {
	return r.db.Delete(&entity.Quiz{}, id).Error
}
