package repository

import (
	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// QuestionRepository определяет методы для работы с вопросами
type QuestionRepository interface {
	GetByID(id uint) (*entity.Question, error)
	// GetByQuizID возвращает вопросы викторины в порядке создания, с вариантами ответов
	GetByQuizID(quizID uint) ([]entity.Question, error)
	CountByQuizID(quizID uint) (int64, error)
	// Delete удаляет вопрос; его ответы удаляются каскадно, викторина не затрагивается
	Delete(id uint) error
}
