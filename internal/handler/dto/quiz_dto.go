package dto

import (
	"time"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// AnswerResponse представляет вариант ответа в формате для клиента.
// Флаг is_correct не отдается: во время игры правильный ответ скрыт,
// обратная связь идет через /check_answer/.
type AnswerResponse struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

// QuestionResponse представляет вопрос в формате для клиента
type QuestionResponse struct {
	ID           uint             `json:"id"`
	QuizID       uint             `json:"quiz_id"`
	Text         string           `json:"text"`
	QuestionType string           `json:"question_type"`
	Points       int              `json:"points"`
	Answers      []AnswerResponse `json:"answers,omitempty"`
}

// QuizResponse представляет викторину в формате для клиента
type QuizResponse struct {
	ID          uint               `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Category    string             `json:"category"`
	Difficulty  string             `json:"difficulty"`
	OwnerID     uint               `json:"owner_id"`
	Questions   []QuestionResponse `json:"questions,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

// AttemptResponse представляет сохраненную попытку прохождения
type AttemptResponse struct {
	ID             uint      `json:"id"`
	UserID         uint      `json:"user_id"`
	QuizID         uint      `json:"quiz_id"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	TimeTakenSec   int       `json:"time_taken_sec"`
	CompletedAt    time.Time `json:"completed_at"`
}

// ResultsResponse представляет страницу результатов: попытка плюс викторина для контекста
type ResultsResponse struct {
	Quiz    *QuizResponse    `json:"quiz"`
	Attempt *AttemptResponse `json:"attempt"`
}

// NewAnswerResponse создает DTO для варианта ответа
func NewAnswerResponse(a *entity.Answer) AnswerResponse {
	return AnswerResponse{
		ID:   a.ID,
		Text: a.Text,
	}
}

// NewQuestionResponse создает DTO для вопроса
func NewQuestionResponse(q *entity.Question) QuestionResponse {
	answers := make([]AnswerResponse, len(q.Answers))
	for i := range q.Answers {
		answers[i] = NewAnswerResponse(&q.Answers[i])
	}
	return QuestionResponse{
		ID:           q.ID,
		QuizID:       q.QuizID,
		Text:         q.Text,
		QuestionType: q.QuestionType,
		Points:       q.Points,
		Answers:      answers,
	}
}

// NewQuizResponse создает DTO для викторины
func NewQuizResponse(quiz *entity.Quiz, includeQuestions bool) *QuizResponse {
	if quiz == nil {
		return nil
	}

	var questions []QuestionResponse
	if includeQuestions {
		questions = make([]QuestionResponse, len(quiz.Questions))
		for i := range quiz.Questions {
			questions[i] = NewQuestionResponse(&quiz.Questions[i])
		}
	}

	return &QuizResponse{
		ID:          quiz.ID,
		Title:       quiz.Title,
		Description: quiz.Description,
		Category:    quiz.Category,
		Difficulty:  quiz.Difficulty,
		OwnerID:     quiz.OwnerID,
		Questions:   questions,
		CreatedAt:   quiz.CreatedAt,
	}
}

// NewListQuizResponse создает DTO для списка викторин (без вопросов)
func NewListQuizResponse(quizzes []entity.Quiz) []*QuizResponse {
	response := make([]*QuizResponse, len(quizzes))
	for i := range quizzes {
		response[i] = NewQuizResponse(&quizzes[i], false)
	}
	return response
}

// NewAttemptResponse создает DTO для попытки
func NewAttemptResponse(attempt *entity.QuizAttempt) *AttemptResponse {
	if attempt == nil {
		return nil
	}
	return &AttemptResponse{
		ID:             attempt.ID,
		UserID:         attempt.UserID,
		QuizID:         attempt.QuizID,
		Score:          attempt.Score,
		TotalQuestions: attempt.TotalQuestions,
		TimeTakenSec:   attempt.TimeTakenSec,
		CompletedAt:    attempt.CompletedAt,
	}
}

// NewAttemptListResponse создает DTO для списка попыток
func NewAttemptListResponse(attempts []entity.QuizAttempt) []*AttemptResponse {
	response := make([]*AttemptResponse, len(attempts))
	for i := range attempts {
		response[i] = NewAttemptResponse(&attempts[i])
	}
	return response
}
