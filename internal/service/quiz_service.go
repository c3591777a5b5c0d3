package service

import (
	"fmt"
	"log"
	"strings"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// CreateAnswerInput описывает один вариант ответа при создании викторины
type CreateAnswerInput struct {
	Text      string
	IsCorrect bool
}

// CreateQuestionInput описывает один вопрос при создании викторины
type CreateQuestionInput struct {
	Text         string
	QuestionType string
	Points       int
	Answers      []CreateAnswerInput
}

// CreateQuizInput описывает викторину целиком: скалярные поля плюс
// упорядоченный список вопросов, каждый со списком ответов.
type CreateQuizInput struct {
	Title       string
	Description string
	Category    string
	Difficulty  string
	Questions   []CreateQuestionInput
}

// QuizService предоставляет методы создания, чтения и удаления викторин
type QuizService struct {
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
}

// NewQuizService создает новый сервис викторин
func NewQuizService(quizRepo repository.QuizRepository, questionRepo repository.QuestionRepository) *QuizService {
	return &QuizService{
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
	}
}

// CreateQuiz создает викторину с вложенными вопросами и ответами.
// Вся последовательность quiz → questions → answers сохраняется атомарно:
// ошибка на любом вложенном элементе откатывает создание целиком.
func (s *QuizService) CreateQuiz(ownerID uint, input CreateQuizInput) (*entity.Quiz, error) {
	if ownerID == 0 {
		return nil, fmt.Errorf("quiz owner is required: %w", apperrors.ErrUnauthorized)
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("quiz title is required: %w", apperrors.ErrValidation)
	}

	quiz := &entity.Quiz{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Difficulty:  input.Difficulty,
		OwnerID:     ownerID,
	}

	for i, q := range input.Questions {
		if strings.TrimSpace(q.Text) == "" {
			return nil, fmt.Errorf("question #%d has empty text: %w", i+1, apperrors.ErrValidation)
		}
		if q.Points < 0 {
			return nil, fmt.Errorf("question #%d has negative points: %w", i+1, apperrors.ErrValidation)
		}

		questionType := q.QuestionType
		if questionType == "" {
			questionType = entity.QuestionTypeMultipleChoice
		}

		question := entity.Question{
			Text:         q.Text,
			QuestionType: questionType,
			Points:       q.Points,
		}
		for _, a := range q.Answers {
			question.Answers = append(question.Answers, entity.Answer{
				Text:      a.Text,
				IsCorrect: a.IsCorrect,
			})
		}
		quiz.Questions = append(quiz.Questions, question)
	}

	if err := s.quizRepo.Create(quiz); err != nil {
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}

	log.Printf("[QuizService] Викторина ID=%d создана пользователем ID=%d (%d вопросов)",
		quiz.ID, ownerID, len(quiz.Questions))
	return quiz, nil
}

// GetQuizByID возвращает викторину по ID
func (s *QuizService) GetQuizByID(quizID uint) (*entity.Quiz, error) {
	return s.quizRepo.GetByID(quizID)
}

// GetQuizWithQuestions возвращает викторину с вопросами и вариантами ответов.
// Чистое чтение: состояние не изменяется, повторные вызовы возвращают тот же набор.
func (s *QuizService) GetQuizWithQuestions(quizID uint) (*entity.Quiz, error) {
	return s.quizRepo.GetWithQuestions(quizID)
}

// ListQuizzes возвращает список викторин с пагинацией
func (s *QuizService) ListQuizzes(page, pageSize int) ([]entity.Quiz, error) {
	offset := (page - 1) * pageSize
	return s.quizRepo.List(pageSize, offset)
}

// DeleteQuiz удаляет викторину вместе с вопросами и ответами (каскад на уровне БД).
// Удалять викторину может только ее владелец.
func (s *QuizService) DeleteQuiz(quizID, requesterID uint) error {
	quiz, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return err
	}

	if !quiz.IsOwnedBy(requesterID) {
		return fmt.Errorf("only the quiz owner can delete it: %w", apperrors.ErrForbidden)
	}

	return s.quizRepo.Delete(quizID)
}
