package handler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/handler/dto"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
	"github.com/yourusername/quiz-api/internal/service"
)

// QuizHandler обрабатывает запросы создания, прохождения и результатов викторин
type QuizHandler struct {
	quizService    *service.QuizService
	attemptService *service.AttemptService
}

// NewQuizHandler создает новый обработчик викторин
func NewQuizHandler(quizService *service.QuizService, attemptService *service.AttemptService) *QuizHandler {
	return &QuizHandler{
		quizService:    quizService,
		attemptService: attemptService,
	}
}

// CreateAnswerRequest представляет вариант ответа внутри запроса создания викторины
type CreateAnswerRequest struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"is_correct"`
}

// CreateQuestionRequest представляет вопрос внутри запроса создания викторины
type CreateQuestionRequest struct {
	Text         string                `json:"text" binding:"required"`
	QuestionType string                `json:"question_type"`
	Points       int                   `json:"points" binding:"gte=0"`
	Answers      []CreateAnswerRequest `json:"answers" binding:"omitempty,dive"`
}

// CreateQuizRequest представляет запрос на создание викторины целиком:
// скалярные поля плюс вложенный список вопросов с вариантами ответов
type CreateQuizRequest struct {
	Title       string                  `json:"title" binding:"required,min=3,max=200"`
	Description string                  `json:"description"`
	Category    string                  `json:"category" binding:"required"`
	Difficulty  string                  `json:"difficulty" binding:"required,oneof=easy medium hard"`
	Questions   []CreateQuestionRequest `json:"questions" binding:"omitempty,dive"`
}

// CheckAnswerRequest представляет запрос проверки одного варианта ответа
type CheckAnswerRequest struct {
	AnswerID uint `json:"answer_id" binding:"required"`
}

// SubmitQuizRequest представляет финальную отправку викторины.
// Ключ — ID вопроса, значение — ID выбранного варианта.
type SubmitQuizRequest struct {
	Answers map[uint]uint `json:"answers" binding:"required"`
}

// ListQuizzes возвращает список викторин с пагинацией.
// GET /
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	quizzes, err := h.quizService.ListQuizzes(page, pageSize)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quizzes":  dto.NewListQuizResponse(quizzes),
		"page":     page,
		"pageSize": pageSize,
	})
}

// CreateQuiz создает викторину с вложенными вопросами и ответами одним запросом.
// POST /create_quiz/
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var req CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uint)

	input := service.CreateQuizInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Difficulty:  req.Difficulty,
	}
	for _, q := range req.Questions {
		question := service.CreateQuestionInput{
			Text:         q.Text,
			QuestionType: q.QuestionType,
			Points:       q.Points,
		}
		for _, a := range q.Answers {
			question.Answers = append(question.Answers, service.CreateAnswerInput{
				Text:      a.Text,
				IsCorrect: a.IsCorrect,
			})
		}
		input.Questions = append(input.Questions, question)
	}

	quiz, err := h.quizService.CreateQuiz(userID, input)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewQuizResponse(quiz, true))
}

// PlayQuiz возвращает викторину с вопросами и вариантами для прохождения.
// Правильность вариантов в ответе не раскрывается.
// GET /play_quiz/:quiz_id/
func (h *QuizHandler) PlayQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	quiz, err := h.quizService.GetQuizWithQuestions(quizID)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizResponse(quiz, true))
}

// CheckAnswer проверяет один выбранный вариант во время игры.
// Ничего не сохраняет и не влияет на итоговый счет.
// POST /check_answer/:question_id/
func (h *QuizHandler) CheckAnswer(c *gin.Context) {
	questionID := c.MustGet("questionID").(uint)

	var req CheckAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	correct, err := h.attemptService.CheckAnswer(questionID, req.AnswerID)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"correct": correct})
}

// SubmitQuiz принимает финальные ответы, подсчитывает счет и сохраняет попытку.
// В ответе — сохраненная попытка и Location страницы результатов.
// POST /submit_quiz/:quiz_id/
func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)
	userID := c.MustGet("user_id").(uint)

	var req SubmitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	attempt, err := h.attemptService.SubmitQuiz(userID, quizID, req.Answers)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	location := fmt.Sprintf("/quiz_results/%d/", attempt.ID)
	c.Header("Location", location)
	c.JSON(http.StatusCreated, gin.H{
		"attempt":     dto.NewAttemptResponse(attempt),
		"results_url": location,
	})
}

// QuizResults возвращает сохраненную попытку по ее ID вместе с викториной.
// Счет читается из записи попытки, а не из параметров запроса.
// GET /quiz_results/:attempt_id/
func (h *QuizHandler) QuizResults(c *gin.Context) {
	attemptID := c.MustGet("attemptID").(uint)
	userID := c.MustGet("user_id").(uint)

	attempt, quiz, err := h.attemptService.GetAttemptForUser(attemptID, userID)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ResultsResponse{
		Quiz:    dto.NewQuizResponse(quiz, false),
		Attempt: dto.NewAttemptResponse(attempt),
	})
}

// MyAttempts возвращает попытки текущего пользователя, новые первыми.
// GET /my_attempts/
func (h *QuizHandler) MyAttempts(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	attempts, err := h.attemptService.GetUserAttempts(userID, page, pageSize)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"attempts": dto.NewAttemptListResponse(attempts),
		"page":     page,
		"pageSize": pageSize,
	})
}

// DeleteQuiz удаляет викторину вместе с вопросами и ответами. Только для владельца.
// DELETE /delete_quiz/:quiz_id/
func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)
	userID := c.MustGet("user_id").(uint)

	if err := h.quizService.DeleteQuiz(quizID, userID); err != nil {
		h.handleQuizError(c, err)
		return
	}

	log.Printf("[QuizHandler] Викторина ID=%d удалена пользователем ID=%d", quizID, userID)
	c.JSON(http.StatusOK, gin.H{"message": "Quiz deleted successfully"})
}

// ExportResults выгружает все попытки викторины в CSV или XLSX. Только для владельца.
// GET /export_results/:quiz_id/?format=csv|xlsx
func (h *QuizHandler) ExportResults(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)
	userID := c.MustGet("user_id").(uint)

	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be csv or xlsx"})
		return
	}

	quiz, attempts, err := h.attemptService.GetQuizAttempts(quizID, userID)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	filename := fmt.Sprintf("quiz_%d_results_%s.%s", quiz.ID, time.Now().Format("2006-01-02"), format)

	if format == "xlsx" {
		h.writeResultsXLSX(c, filename, attempts)
		return
	}
	h.writeResultsCSV(c, filename, attempts)
}

var exportHeader = []string{"attempt_id", "user_id", "score", "total_questions", "completed_at"}

func exportRow(a *entity.QuizAttempt) []string {
	return []string{
		strconv.FormatUint(uint64(a.ID), 10),
		strconv.FormatUint(uint64(a.UserID), 10),
		strconv.Itoa(a.Score),
		strconv.Itoa(a.TotalQuestions),
		a.CompletedAt.Format(time.RFC3339),
	}
}

func (h *QuizHandler) writeResultsCSV(c *gin.Context, filename string, attempts []entity.QuizAttempt) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "text/csv")

	w := csv.NewWriter(c.Writer)
	if err := w.Write(exportHeader); err != nil {
		log.Printf("ERROR: failed to write CSV header: %v", err)
		return
	}
	for i := range attempts {
		if err := w.Write(exportRow(&attempts[i])); err != nil {
			log.Printf("ERROR: failed to write CSV row: %v", err)
			return
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Printf("ERROR: failed to flush CSV export: %v", err)
	}
}

func (h *QuizHandler) writeResultsXLSX(c *gin.Context, filename string, attempts []entity.QuizAttempt) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("ERROR: failed to close XLSX file: %v", err)
		}
	}()

	const sheet = "Results"
	index, err := f.NewSheet(sheet)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		log.Printf("WARN: failed to delete default sheet: %v", err)
	}

	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			h.handleQuizError(c, err)
			return
		}
	}
	for row := range attempts {
		for col, value := range exportRow(&attempts[row]) {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				h.handleQuizError(c, err)
				return
			}
		}
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		log.Printf("ERROR: failed to write XLSX export: %v", err)
	}
}

// handleQuizError обрабатывает ошибки сервисов викторин и попыток
func (h *QuizHandler) handleQuizError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrForbidden) {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrUnauthorized) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in QuizHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
