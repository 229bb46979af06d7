package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openclass/classroom/internal/domain"
	"github.com/openclass/classroom/internal/store"
)

type QuizHandler struct {
	Quizzes *store.QuizStore
}

func (h *QuizHandler) Create(c *gin.Context) {
	uid, _ := currentUser(c)
	var body struct {
		Name         string   `json:"name" binding:"required"`
		Topic        string   `json:"topic" binding:"required"`
		AllowedUsers []string `json:"allowedUsers"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name and topic are required"})
		return
	}

	quiz := &domain.Quiz{
		Name:         body.Name,
		Topic:        body.Topic,
		Creator:      uid,
		AllowedUsers: body.AllowedUsers,
	}
	if err := h.Quizzes.Create(c.Request.Context(), quiz); err != nil {
		writeErr(c, err, "")
		return
	}
	c.JSON(http.StatusOK, quiz)
}

// List returns quizzes the caller created or is invited to.
func (h *QuizHandler) List(c *gin.Context) {
	uid, email := currentUser(c)
	quizzes, err := h.Quizzes.ListFor(c.Request.Context(), uid, email)
	if err != nil {
		writeErr(c, err, "")
		return
	}
	c.JSON(http.StatusOK, quizzes)
}

func (h *QuizHandler) ListMine(c *gin.Context) {
	uid, _ := currentUser(c)
	quizzes, err := h.Quizzes.ListByCreator(c.Request.Context(), uid)
	if err != nil {
		writeErr(c, err, "")
		return
	}
	c.JSON(http.StatusOK, quizzes)
}

func (h *QuizHandler) Get(c *gin.Context) {
	uid, email := currentUser(c)
	id, ok := pathID(c)
	if !ok {
		return
	}
	quiz, err := h.Quizzes.Get(c.Request.Context(), id)
	if err != nil {
		writeErr(c, err, "Quiz not found")
		return
	}
	if !quiz.IsCreator(uid) && !quiz.IsInvited(email) {
		c.JSON(http.StatusForbidden, gin.H{"message": "You don't have access to this quiz"})
		return
	}
	c.JSON(http.StatusOK, quiz)
}

func (h *QuizHandler) AddQuestion(c *gin.Context) {
	uid, _ := currentUser(c)
	id, ok := pathID(c)
	if !ok {
		return
	}
	var body struct {
		Text    string   `json:"text" binding:"required"`
		Options []string `json:"options" binding:"required"`
		Correct string   `json:"correct" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid question data"})
		return
	}

	quiz, err := h.Quizzes.AddQuestion(c.Request.Context(), id, uid, domain.Question{
		Text:    body.Text,
		Options: body.Options,
		Correct: body.Correct,
	})
	if err != nil {
		writeErr(c, err, "Quiz not found")
		return
	}
	c.JSON(http.StatusOK, quiz)
}

// Submit grades the submitted answers, keyed by question id.
func (h *QuizHandler) Submit(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var body struct {
		Answers map[string]string `json:"answers" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Answers are required"})
		return
	}

	quiz, err := h.Quizzes.Get(c.Request.Context(), id)
	if err != nil {
		writeErr(c, err, "Quiz not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"score": quiz.Score(body.Answers)})
}

func (h *QuizHandler) Delete(c *gin.Context) {
	uid, _ := currentUser(c)
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Quizzes.Delete(c.Request.Context(), id, uid); err != nil {
		writeErr(c, err, "Quiz not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Quiz deleted successfully"})
}
