package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// ============================================================================
// Моки репозиториев (общие для тестов сервисов в этом пакете)
// ============================================================================

// MockQuizRepository реализует repository.QuizRepository
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) Create(quiz *entity.Quiz) error {
	args := m.Called(quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) GetByID(id uint) (*entity.Quiz, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepository) GetWithQuestions(id uint) (*entity.Quiz, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepository) List(limit, offset int) ([]entity.Quiz, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Quiz), args.Error(1)
}

func (m *MockQuizRepository) ListByOwner(ownerID uint, limit, offset int) ([]entity.Quiz, error) {
	args := m.Called(ownerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Quiz), args.Error(1)
}

func (m *MockQuizRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockQuestionRepository реализует repository.QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) GetByID(id uint) (*entity.Question, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetByQuizID(quizID uint) ([]entity.Question, error) {
	args := m.Called(quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) CountByQuizID(quizID uint) (int64, error) {
	args := m.Called(quizID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuestionRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockAnswerRepository реализует repository.AnswerRepository
type MockAnswerRepository struct {
	mock.Mock
}

func (m *MockAnswerRepository) GetByID(id uint) (*entity.Answer, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Answer), args.Error(1)
}

func (m *MockAnswerRepository) GetByQuestionID(questionID uint) ([]entity.Answer, error) {
	args := m.Called(questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Answer), args.Error(1)
}

// MockAttemptRepository реализует repository.AttemptRepository
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) Create(attempt *entity.QuizAttempt) error {
	args := m.Called(attempt)
	return args.Error(0)
}

func (m *MockAttemptRepository) GetByID(id uint) (*entity.QuizAttempt, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.QuizAttempt), args.Error(1)
}

func (m *MockAttemptRepository) GetByUserID(userID uint, limit, offset int) ([]entity.QuizAttempt, error) {
	args := m.Called(userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.QuizAttempt), args.Error(1)
}

func (m *MockAttemptRepository) GetByQuizID(quizID uint) ([]entity.QuizAttempt, error) {
	args := m.Called(quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.QuizAttempt), args.Error(1)
}

// ============================================================================
// Хелперы
// ============================================================================

func newAttemptServiceForTest() (*AttemptService, *MockQuizRepository, *MockQuestionRepository, *MockAnswerRepository, *MockAttemptRepository) {
	quizRepo := new(MockQuizRepository)
	questionRepo := new(MockQuestionRepository)
	answerRepo := new(MockAnswerRepository)
	attemptRepo := new(MockAttemptRepository)
	svc := NewAttemptService(quizRepo, questionRepo, answerRepo, attemptRepo)
	return svc, quizRepo, questionRepo, answerRepo, attemptRepo
}

func testQuiz() *entity.Quiz {
	return &entity.Quiz{
		ID:         1,
		Title:      "Тестовая викторина",
		Category:   "general",
		Difficulty: entity.QuizDifficultyEasy,
		OwnerID:    100,
	}
}

func testQuestions() []entity.Question {
	return []entity.Question{
		{ID: 10, QuizID: 1, Text: "Вопрос 1"},
		{ID: 11, QuizID: 1, Text: "Вопрос 2"},
		{ID: 12, QuizID: 1, Text: "Вопрос 3"},
	}
}

// ============================================================================
// CheckAnswer
// ============================================================================

func TestAttemptService_CheckAnswer_Correct(t *testing.T) {
	// Arrange
	svc, _, questionRepo, answerRepo, _ := newAttemptServiceForTest()
	questionRepo.On("GetByID", uint(10)).Return(&entity.Question{ID: 10}, nil)
	answerRepo.On("GetByID", uint(21)).Return(&entity.Answer{ID: 21, IsCorrect: true}, nil)

	// Act
	correct, err := svc.CheckAnswer(10, 21)

	// Assert
	require.NoError(t, err)
	assert.True(t, correct, "Правильный вариант должен дать true")
	questionRepo.AssertExpectations(t)
	answerRepo.AssertExpectations(t)
}

func TestAttemptService_CheckAnswer_Incorrect(t *testing.T) {
	// Arrange
	svc, _, questionRepo, answerRepo, _ := newAttemptServiceForTest()
	questionRepo.On("GetByID", uint(10)).Return(&entity.Question{ID: 10}, nil)
	answerRepo.On("GetByID", uint(22)).Return(&entity.Answer{ID: 22, IsCorrect: false}, nil)

	// Act
	correct, err := svc.CheckAnswer(10, 22)

	// Assert
	require.NoError(t, err)
	assert.False(t, correct, "Неправильный вариант должен дать false")
}

func TestAttemptService_CheckAnswer_QuestionNotFound(t *testing.T) {
	// Arrange
	svc, _, questionRepo, _, _ := newAttemptServiceForTest()
	questionRepo.On("GetByID", uint(999)).Return(nil, apperrors.ErrNotFound)

	// Act
	_, err := svc.CheckAnswer(999, 21)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrNotFound, "Несуществующий вопрос — ErrNotFound")
}

func TestAttemptService_CheckAnswer_AnswerNotFound(t *testing.T) {
	// Arrange
	svc, _, questionRepo, answerRepo, _ := newAttemptServiceForTest()
	questionRepo.On("GetByID", uint(10)).Return(&entity.Question{ID: 10}, nil)
	answerRepo.On("GetByID", uint(999)).Return(nil, apperrors.ErrNotFound)

	// Act
	_, err := svc.CheckAnswer(10, 999)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrNotFound, "Несуществующий вариант — ErrNotFound")
}

// ============================================================================
// SubmitQuiz
// ============================================================================

func TestAttemptService_SubmitQuiz_AllCorrect(t *testing.T) {
	// Arrange
	svc, quizRepo, questionRepo, answerRepo, attemptRepo := newAttemptServiceForTest()
	quizRepo.On("GetByID", uint(1)).Return(testQuiz(), nil)
	questionRepo.On("GetByQuizID", uint(1)).Return(testQuestions(), nil)
	answerRepo.On("GetByID", uint(21)).Return(&entity.Answer{ID: 21, IsCorrect: true}, nil)
	answerRepo.On("GetByID", uint(22)).Return(&entity.Answer{ID: 22, IsCorrect: true}, nil)
	answerRepo.On("GetByID", uint(23)).Return(&entity.Answer{ID: 23, IsCorrect: true}, nil)
	attemptRepo.On("Create", mock.AnythingOfType("*entity.QuizAttempt")).Return(nil)

	// Act
	attempt, err := svc.SubmitQuiz(100, 1, map[uint]uint{10: 21, 11: 22, 12: 23})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 3, attempt.Score, "Все ответы правильные — счет равен количеству вопросов")
	assert.Equal(t, 3, attempt.TotalQuestions)
	assert.Equal(t, uint(100), attempt.UserID)
	assert.Equal(t, uint(1), attempt.QuizID)
	assert.False(t, attempt.CompletedAt.IsZero(), "Время завершения должно быть заполнено")
	attemptRepo.AssertExpectations(t)
}

func TestAttemptService_SubmitQuiz_EmptySelections(t *testing.T) {
	// Arrange: пустая отправка валидна — попытка сохраняется со счетом 0
	svc, quizRepo, questionRepo, answerRepo, attemptRepo := newAttemptServiceForTest()
	quizRepo.On("GetByID", uint(1)).Return(testQuiz(), nil)
	questionRepo.On("GetByQuizID", uint(1)).Return(testQuestions(), nil)
	attemptRepo.On("Create", mock.AnythingOfType("*entity.QuizAttempt")).Return(nil)

	// Act
	attempt, err := svc.SubmitQuiz(100, 1, map[uint]uint{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 0, attempt.Score, "Без ответов счет равен 0")
	assert.Equal(t, 3, attempt.TotalQuestions, "total считается по вопросам викторины, не по ответам")
	answerRepo.AssertNotCalled(t, "GetByID", mock.Anything)
	attemptRepo.AssertExpectations(t)
}

func TestAttemptService_SubmitQuiz_UnknownAnswerID(t *testing.T) {
	// Arrange: несуществующий вариант засчитывается как неверный, не как ошибка
	svc, quizRepo, questionRepo, answerRepo, attemptRepo := newAttemptServiceForTest()
	quizRepo.On("GetByID", uint(1)).Return(testQuiz(), nil)
	questionRepo.On("GetByQuizID", uint(1)).Return(testQuestions(), nil)
	answerRepo.On("GetByID", uint(21)).Return(&entity.Answer{ID: 21, IsCorrect: true}, nil)
	answerRepo.On("GetByID", uint(9999)).Return(nil, apperrors.ErrNotFound)
	attemptRepo.On("Create", mock.AnythingOfType("*entity.QuizAttempt")).Return(nil)

	// Act
	attempt, err := svc.SubmitQuiz(100, 1, map[uint]uint{10: 21, 11: 9999})

	// Assert
	require.NoError(t, err, "Неразрешимый выбор не должен ломать отправку")
	assert.Equal(t, 1, attempt.Score, "Засчитан только разрешившийся правильный вариант")
	assert.Equal(t, 3, attempt.TotalQuestions)
}

func TestAttemptService_SubmitQuiz_QuizNotFound(t *testing.T) {
	// Arrange
	svc, quizRepo, _, _, attemptRepo := newAttemptServiceForTest()
	quizRepo.On("GetByID", uint(999)).Return(nil, apperrors.ErrNotFound)

	// Act
	_, err := svc.SubmitQuiz(100, 999, map[uint]uint{})

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	attemptRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAttemptService_SubmitQuiz_ResubmitCreatesNewAttempt(t *testing.T) {
	// Arrange: повторная отправка создает отдельную попытку, не перезаписывает старую
	svc, quizRepo, questionRepo, answerRepo, attemptRepo := newAttemptServiceForTest()
	quizRepo.On("GetByID", uint(1)).Return(testQuiz(), nil)
	questionRepo.On("GetByQuizID", uint(1)).Return(testQuestions(), nil)
	answerRepo.On("GetByID", uint(21)).Return(&entity.Answer{ID: 21, IsCorrect: true}, nil)
	attemptRepo.On("Create", mock.AnythingOfType("*entity.QuizAttempt")).Return(nil)

	// Act
	_, err1 := svc.SubmitQuiz(100, 1, map[uint]uint{10: 21})
	_, err2 := svc.SubmitQuiz(100, 1, map[uint]uint{10: 21})

	// Assert
	require.NoError(t, err1)
	require.NoError(t, err2)
	attemptRepo.AssertNumberOfCalls(t, "Create", 2)
}

func TestAttemptService_SubmitQuiz_Unauthenticated(t *testing.T) {
	// Arrange
	svc, quizRepo, _, _, _ := newAttemptServiceForTest()

	// Act
	_, err := svc.SubmitQuiz(0, 1, map[uint]uint{})

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized, "Анонимная отправка запрещена")
	quizRepo.AssertNotCalled(t, "GetByID", mock.Anything)
}

// ============================================================================
// GetAttemptForUser
// ============================================================================

func TestAttemptService_GetAttemptForUser_Success(t *testing.T) {
	// Arrange
	svc, quizRepo, _, _, attemptRepo := newAttemptServiceForTest()
	attemptRepo.On("GetByID", uint(5)).Return(&entity.QuizAttempt{
		ID: 5, UserID: 100, QuizID: 1, Score: 2, TotalQuestions: 3,
	}, nil)
	quizRepo.On("GetByID", uint(1)).Return(testQuiz(), nil)

	// Act
	attempt, quiz, err := svc.GetAttemptForUser(5, 100)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, attempt.Score, "Счет читается из сохраненной попытки")
	assert.Equal(t, uint(1), quiz.ID)
}

func TestAttemptService_GetAttemptForUser_Forbidden(t *testing.T) {
	// Arrange: попытка принадлежит другому пользователю
	svc, quizRepo, _, _, attemptRepo := newAttemptServiceForTest()
	attemptRepo.On("GetByID", uint(5)).Return(&entity.QuizAttempt{
		ID: 5, UserID: 100, QuizID: 1,
	}, nil)

	// Act
	_, _, err := svc.GetAttemptForUser(5, 200)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrForbidden, "Чужая попытка недоступна")
	quizRepo.AssertNotCalled(t, "GetByID", mock.Anything)
}

func TestAttemptService_GetAttemptForUser_NotFound(t *testing.T) {
	// Arrange
	svc, _, _, _, attemptRepo := newAttemptServiceForTest()
	attemptRepo.On("GetByID", uint(999)).Return(nil, apperrors.ErrNotFound)

	// Act
	_, _, err := svc.GetAttemptForUser(999, 100)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// ============================================================================
// GetQuizAttempts (экспорт результатов)
// ============================================================================

func TestAttemptService_GetQuizAttempts_OwnerOnly(t *testing.T) {
	// Arrange
	svc, quizRepo, _, _, attemptRepo := newAttemptServiceForTest()
	quizRepo.On("GetByID", uint(1)).Return(testQuiz(), nil) // OwnerID=100

	// Act: запрашивает не владелец
	_, _, err := svc.GetQuizAttempts(1, 200)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrForbidden, "Экспорт доступен только владельцу")
	attemptRepo.AssertNotCalled(t, "GetByQuizID", mock.Anything)
}

func TestAttemptService_GetQuizAttempts_Success(t *testing.T) {
	// Arrange
	svc, quizRepo, _, _, attemptRepo := newAttemptServiceForTest()
	quizRepo.On("GetByID", uint(1)).Return(testQuiz(), nil)
	attemptRepo.On("GetByQuizID", uint(1)).Return([]entity.QuizAttempt{
		{ID: 1, UserID: 100, QuizID: 1, Score: 3},
		{ID: 2, UserID: 200, QuizID: 1, Score: 1},
	}, nil)

	// Act
	quiz, attempts, err := svc.GetQuizAttempts(1, 100)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, uint(1), quiz.ID)
	assert.Len(t, attempts, 2)
}
