package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// Моки MockQuizRepository и MockQuestionRepository определены в attempt_service_test.go

func newQuizServiceForTest() (*QuizService, *MockQuizRepository, *MockQuestionRepository) {
	quizRepo := new(MockQuizRepository)
	questionRepo := new(MockQuestionRepository)
	return NewQuizService(quizRepo, questionRepo), quizRepo, questionRepo
}

func TestQuizService_CreateQuiz_NestedGraph(t *testing.T) {
	// Arrange
	svc, quizRepo, _ := newQuizServiceForTest()
	quizRepo.On("Create", mock.AnythingOfType("*entity.Quiz")).Return(nil)

	input := CreateQuizInput{
		Title:      "История Go",
		Category:   "programming",
		Difficulty: entity.QuizDifficultyMedium,
		Questions: []CreateQuestionInput{
			{
				Text:   "В каком году анонсирован Go?",
				Points: 10,
				Answers: []CreateAnswerInput{
					{Text: "2007", IsCorrect: false},
					{Text: "2009", IsCorrect: true},
				},
			},
			{
				Text:    "Вопрос без вариантов",
				Answers: nil,
			},
		},
	}

	// Act
	quiz, err := svc.CreateQuiz(100, input)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, uint(100), quiz.OwnerID)
	require.Len(t, quiz.Questions, 2, "Оба вопроса должны попасть в граф")
	assert.Len(t, quiz.Questions[0].Answers, 2)
	assert.Empty(t, quiz.Questions[1].Answers, "Вопрос без вариантов допустим")
	quizRepo.AssertExpectations(t)
}

func TestQuizService_CreateQuiz_DefaultQuestionType(t *testing.T) {
	// Arrange
	svc, quizRepo, _ := newQuizServiceForTest()
	quizRepo.On("Create", mock.AnythingOfType("*entity.Quiz")).Return(nil)

	input := CreateQuizInput{
		Title:      "Тест",
		Category:   "general",
		Difficulty: entity.QuizDifficultyEasy,
		Questions: []CreateQuestionInput{
			{Text: "Вопрос без явного типа"},
		},
	}

	// Act
	quiz, err := svc.CreateQuiz(100, input)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, entity.QuestionTypeMultipleChoice, quiz.Questions[0].QuestionType,
		"Пустой question_type должен замениться значением по умолчанию")
}

func TestQuizService_CreateQuiz_EmptyTitle(t *testing.T) {
	// Arrange
	svc, quizRepo, _ := newQuizServiceForTest()

	// Act
	_, err := svc.CreateQuiz(100, CreateQuizInput{Title: "   "})

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrValidation, "Пустой заголовок — ошибка валидации")
	quizRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestQuizService_CreateQuiz_EmptyQuestionText(t *testing.T) {
	// Arrange
	svc, quizRepo, _ := newQuizServiceForTest()

	input := CreateQuizInput{
		Title: "Тест",
		Questions: []CreateQuestionInput{
			{Text: ""},
		},
	}

	// Act
	_, err := svc.CreateQuiz(100, input)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	quizRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestQuizService_CreateQuiz_NegativePoints(t *testing.T) {
	// Arrange
	svc, quizRepo, _ := newQuizServiceForTest()

	input := CreateQuizInput{
		Title: "Тест",
		Questions: []CreateQuestionInput{
			{Text: "Вопрос", Points: -5},
		},
	}

	// Act
	_, err := svc.CreateQuiz(100, input)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrValidation, "Отрицательные очки недопустимы")
	quizRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestQuizService_CreateQuiz_RepoError(t *testing.T) {
	// Arrange: ошибка репозитория означает, что ничего не создано (транзакция откатилась)
	svc, quizRepo, _ := newQuizServiceForTest()
	quizRepo.On("Create", mock.AnythingOfType("*entity.Quiz")).Return(assert.AnError)

	// Act
	_, err := svc.CreateQuiz(100, CreateQuizInput{Title: "Тест"})

	// Assert
	assert.Error(t, err)
}

func TestQuizService_GetQuizWithQuestions(t *testing.T) {
	// Arrange
	svc, quizRepo, _ := newQuizServiceForTest()
	quizRepo.On("GetWithQuestions", uint(1)).Return(&entity.Quiz{
		ID:    1,
		Title: "Тест",
		Questions: []entity.Question{
			{ID: 10, Answers: []entity.Answer{{ID: 21}, {ID: 22}}},
		},
	}, nil)

	// Act
	quiz, err := svc.GetQuizWithQuestions(1)

	// Assert
	require.NoError(t, err)
	require.Len(t, quiz.Questions, 1)
	assert.Len(t, quiz.Questions[0].Answers, 2, "Варианты должны быть загружены вместе с вопросами")
}

func TestQuizService_DeleteQuiz_Owner(t *testing.T) {
	// Arrange
	svc, quizRepo, _ := newQuizServiceForTest()
	quizRepo.On("GetByID", uint(1)).Return(&entity.Quiz{ID: 1, OwnerID: 100}, nil)
	quizRepo.On("Delete", uint(1)).Return(nil)

	// Act
	err := svc.DeleteQuiz(1, 100)

	// Assert
	require.NoError(t, err)
	quizRepo.AssertExpectations(t)
}

func TestQuizService_DeleteQuiz_Forbidden(t *testing.T) {
	// Arrange
	svc, quizRepo, _ := newQuizServiceForTest()
	quizRepo.On("GetByID", uint(1)).Return(&entity.Quiz{ID: 1, OwnerID: 100}, nil)

	// Act: удаляет не владелец
	err := svc.DeleteQuiz(1, 200)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrForbidden, "Удалять викторину может только владелец")
	quizRepo.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestQuizService_DeleteQuiz_NotFound(t *testing.T) {
	// Arrange
	svc, quizRepo, _ := newQuizServiceForTest()
	quizRepo.On("GetByID", uint(999)).Return(nil, apperrors.ErrNotFound)

	// Act
	err := svc.DeleteQuiz(999, 100)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
