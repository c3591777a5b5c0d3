package repository

import (
	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// QuizRepository определяет методы для работы с викторинами
type QuizRepository interface {
	// Create сохраняет викторину вместе с вложенными вопросами и ответами
	// в одной транзакции. При любой ошибке не остается частичных строк.
	Create(quiz *entity.Quiz) error
	GetByID(id uint) (*entity.Quiz, error)
	// GetWithQuestions возвращает викторину с вопросами и их вариантами ответов
	GetWithQuestions(id uint) (*entity.Quiz, error)
	List(limit, offset int) ([]entity.Quiz, error)
	ListByOwner(ownerID uint, limit, offset int) ([]entity.Quiz, error)
	// Delete удаляет викторину; вопросы и ответы удаляются каскадно (FK ON DELETE CASCADE)
	Delete(id uint) error
}
