package entity

import (
	"time"
)

// Константы уровней сложности викторины.
// Поле хранится как свободная строка, константы — рекомендуемые значения.
const (
	QuizDifficultyEasy   = "easy"
	QuizDifficultyMedium = "medium"
	QuizDifficultyHard   = "hard"
)

// Quiz представляет викторину, созданную пользователем
type Quiz struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"size:500;not null;default:''" json:"description"`
	Category    string     `gorm:"size:100;not null" json:"category"`
	Difficulty  string     `gorm:"size:20;not null" json:"difficulty"`
	OwnerID     uint       `gorm:"not null;index" json:"owner_id"`
	Questions   []Question `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Quiz) TableName() string {
	return "quizzes"
}

// IsOwnedBy проверяет, принадлежит ли викторина пользователю
func (q *Quiz) IsOwnedBy(userID uint) bool {
	return q.OwnerID == userID
}

// QuestionCount возвращает количество загруженных вопросов
func (q *Quiz) QuestionCount() int {
	return len(q.Questions)
}
