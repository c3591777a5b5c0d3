package entity

import (
	"time"
)

// QuestionTypeMultipleChoice — тип вопроса по умолчанию.
// question_type — свободный тег, система его не интерпретирует.
const QuestionTypeMultipleChoice = "multiple_choice"

// Question представляет вопрос в викторине
type Question struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	QuizID       uint      `gorm:"not null;index" json:"quiz_id"`
	Text         string    `gorm:"size:500;not null" json:"text"`
	QuestionType string    `gorm:"size:50;not null;default:'multiple_choice'" json:"question_type"`
	Points       int       `gorm:"not null;default:0" json:"points"`
	Answers      []Answer  `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"answers,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// CorrectAnswer возвращает первый ответ с is_correct = true или nil, если такого нет.
// Система не гарантирует, что правильный ответ ровно один — это ответственность автора.
func (q *Question) CorrectAnswer() *Answer {
	for i := range q.Answers {
		if q.Answers[i].IsCorrect {
			return &q.Answers[i]
		}
	}
	return nil
}

// AnswersCount возвращает количество загруженных вариантов ответа
func (q *Question) AnswersCount() int {
	return len(q.Answers)
}
