package repository

import (
	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// AnswerRepository определяет методы для работы с вариантами ответов
type AnswerRepository interface {
	GetByID(id uint) (*entity.Answer, error)
	GetByQuestionID(questionID uint) ([]entity.Answer, error)
}
