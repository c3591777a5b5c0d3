package entity

import (
	"time"
)

// QuizAttempt представляет одну завершённую попытку прохождения викторины.
// Запись создается ровно один раз при отправке ответов и после этого не изменяется.
type QuizAttempt struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	UserID         uint `gorm:"not null;index" json:"user_id"`
	QuizID         uint `gorm:"not null;index" json:"quiz_id"`
	Score          int  `gorm:"not null;default:0" json:"score"`
	TotalQuestions int  `gorm:"not null;default:0" json:"total_questions"`
	// TimeTakenSec всегда записывается как 0: время прохождения пока не измеряется,
	// поле зарезервировано под будущий тайминг.
	TimeTakenSec int       `gorm:"not null;default:0" json:"time_taken_sec"`
	CompletedAt  time.Time `gorm:"not null" json:"completed_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
