package main

import (
	"errors"
	"net/http"

	"flashcards/models"
	"flashcards/pkg/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type createQuestionRequest struct {
	Prompt      string   `json:"prompt" binding:"required,max=500"`
	Hint        *string  `json:"hint" binding:"omitempty,max=500"`
	Answer      string   `json:"answer" binding:"required,max=1000"`
	CategoryIDs []string `json:"category_ids"`
}

type updateQuestionRequest struct {
	Prompt      string                 `json:"prompt" binding:"required,max=500"`
	Hint        *string                `json:"hint" binding:"omitempty,max=500"`
	Answer      string                 `json:"answer" binding:"required,max=1000"`
	Confidence  models.ConfidenceLevel `json:"confidence" binding:"required,min=1,max=5"`
	CategoryIDs []string               `json:"category_ids"`
}

func (s *server) listQuestionsHandler(c *gin.Context) {
	ctx := c.Request.Context()
	questions, err := store.ListQuestions(ctx, s.db, currentUserID(c))
	if err != nil {
		s.internalError(c, "query failed", err)
		return
	}
	out, err := questionResponses(ctx, s.db, questions)
	if err != nil {
		s.internalError(c, "query failed", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *server) getQuestionHandler(c *gin.Context) {
	q, ok := s.ownedQuestion(c)
	if !ok {
		return
	}
	s.writeQuestion(c, q)
}

func (s *server) createQuestionHandler(c *gin.Context) {
	var req createQuestionRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()
	q := &models.Question{
		ID:         uuid.NewString(),
		UserID:     currentUserID(c),
		Prompt:     req.Prompt,
		Hint:       req.Hint,
		Answer:     req.Answer,
		Confidence: models.VeryLow,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(q).Error; err != nil {
			return err
		}
		_, err := store.SyncQuestionCategories(ctx, tx, q, req.CategoryIDs)
		return err
	})
	if err != nil {
		s.internalError(c, "create failed", err)
		return
	}
	s.writeQuestion(c, q)
}

func (s *server) updateQuestionHandler(c *gin.Context) {
	var req updateQuestionRequest
	if !bindJSON(c, &req) {
		return
	}
	q, ok := s.ownedQuestion(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	q.Prompt = req.Prompt
	q.Hint = req.Hint
	q.Answer = req.Answer
	q.Confidence = req.Confidence

	// scalar fields and category edges commit together
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(q).Error; err != nil {
			return err
		}
		_, err := store.SyncQuestionCategories(ctx, tx, q, req.CategoryIDs)
		return err
	})
	if err != nil {
		s.internalError(c, "update failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *server) deleteQuestionHandler(c *gin.Context) {
	q, ok := s.ownedQuestion(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return store.DeleteQuestion(ctx, tx, q)
	})
	if err != nil {
		s.internalError(c, "delete failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *server) ownedQuestion(c *gin.Context) (*models.Question, bool) {
	q, err := store.FindOwned[models.Question](s.db.WithContext(c.Request.Context()), currentUserID(c), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "question not found"})
		return nil, false
	}
	if err != nil {
		s.internalError(c, "query failed", err)
		return nil, false
	}
	return q, true
}

func (s *server) writeQuestion(c *gin.Context, q *models.Question) {
	out, err := questionResponses(c.Request.Context(), s.db, []models.Question{*q})
	if err != nil {
		s.internalError(c, "query failed", err)
		return
	}
	c.JSON(http.StatusOK, out[0])
}
