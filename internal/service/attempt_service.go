package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// AttemptService предоставляет методы прохождения викторин: проверку отдельного
// ответа, подсчет итогового счета и чтение сохраненных попыток.
type AttemptService struct {
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
	answerRepo   repository.AnswerRepository
	attemptRepo  repository.AttemptRepository
}

// NewAttemptService создает новый сервис попыток
func NewAttemptService(
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
	answerRepo repository.AnswerRepository,
	attemptRepo repository.AttemptRepository,
) *AttemptService {
	return &AttemptService{
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		attemptRepo:  attemptRepo,
	}
}

// CheckAnswer проверяет, является ли выбранный вариант правильным.
// Ничего не сохраняет — используется только для мгновенной обратной связи
// во время игры и не участвует в итоговом подсчете.
func (s *AttemptService) CheckAnswer(questionID, answerID uint) (bool, error) {
	if _, err := s.questionRepo.GetByID(questionID); err != nil {
		return false, err
	}

	answer, err := s.answerRepo.GetByID(answerID)
	if err != nil {
		return false, err
	}

	return answer.IsCorrect, nil
}

// SubmitQuiz подсчитывает результат отправленных ответов и сохраняет попытку.
// selections — выбранный вариант на вопрос, ключ — ID вопроса.
//
// Правила подсчета:
//   - total = количество вопросов викторины;
//   - вопрос засчитывается, если выбранный вариант существует и помечен is_correct;
//   - отсутствующий или неразрешимый выбор считается неверным ответом, не ошибкой.
//
// Каждый вызов создает ровно одну новую попытку; повторная отправка создает вторую.
func (s *AttemptService) SubmitQuiz(userID, quizID uint, selections map[uint]uint) (*entity.QuizAttempt, error) {
	if userID == 0 {
		return nil, fmt.Errorf("authenticated user is required to submit a quiz: %w", apperrors.ErrUnauthorized)
	}

	quiz, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.GetByQuizID(quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions for quiz #%d: %w", quizID, err)
	}

	correct := 0
	for _, question := range questions {
		answerID, answered := selections[question.ID]
		if !answered {
			continue
		}

		answer, err := s.answerRepo.GetByID(answerID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				// Несуществующий вариант — засчитываем как неверный ответ
				continue
			}
			return nil, fmt.Errorf("failed to resolve answer #%d: %w", answerID, err)
		}

		if answer.IsCorrect {
			correct++
		}
	}

	attempt := &entity.QuizAttempt{
		UserID:         userID,
		QuizID:         quiz.ID,
		Score:          correct,
		TotalQuestions: len(questions),
		TimeTakenSec:   0, // Время прохождения пока не измеряется
		CompletedAt:    time.Now(),
	}

	if err := s.attemptRepo.Create(attempt); err != nil {
		return nil, fmt.Errorf("failed to save quiz attempt: %w", err)
	}

	log.Printf("[AttemptService] Попытка ID=%d сохранена: user=%d quiz=%d score=%d/%d",
		attempt.ID, userID, quizID, correct, len(questions))
	return attempt, nil
}

// GetAttemptForUser возвращает сохраненную попытку и ее викторину.
// Результат показывается из сохраненной записи, а не из значений запроса,
// поэтому отображаемый и сохраненный счет не могут разойтись.
// Чужая попытка недоступна (ErrForbidden).
func (s *AttemptService) GetAttemptForUser(attemptID, userID uint) (*entity.QuizAttempt, *entity.Quiz, error) {
	attempt, err := s.attemptRepo.GetByID(attemptID)
	if err != nil {
		return nil, nil, err
	}

	if attempt.UserID != userID {
		return nil, nil, fmt.Errorf("attempt #%d belongs to another user: %w", attemptID, apperrors.ErrForbidden)
	}

	quiz, err := s.quizRepo.GetByID(attempt.QuizID)
	if err != nil {
		return nil, nil, err
	}

	return attempt, quiz, nil
}

// GetUserAttempts возвращает попытки пользователя с пагинацией, новые первыми
func (s *AttemptService) GetUserAttempts(userID uint, page, pageSize int) ([]entity.QuizAttempt, error) {
	offset := (page - 1) * pageSize
	return s.attemptRepo.GetByUserID(userID, pageSize, offset)
}

// GetQuizAttempts возвращает викторину и все ее попытки для экспорта.
// Доступно только владельцу викторины.
func (s *AttemptService) GetQuizAttempts(quizID, requesterID uint) (*entity.Quiz, []entity.QuizAttempt, error) {
	quiz, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return nil, nil, err
	}

	if !quiz.IsOwnedBy(requesterID) {
		return nil, nil, fmt.Errorf("only the quiz owner can export its results: %w", apperrors.ErrForbidden)
	}

	attempts, err := s.attemptRepo.GetByQuizID(quizID)
	if err != nil {
		return nil, nil, err
	}

	return quiz, attempts, nil
}
