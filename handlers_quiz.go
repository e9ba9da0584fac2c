package main

import (
	"net/http"

	"flashcards/models"
	"flashcards/pkg/store"

	"github.com/gin-gonic/gin"
)

type generateQuizRequest struct {
	IncludeMastered bool     `json:"include_mastered"`
	CategoryIDs     []string `json:"category_ids"`
}

type confidenceUpdate struct {
	QuestionID    string                 `json:"question_id" binding:"required"`
	NewConfidence models.ConfidenceLevel `json:"new_confidence" binding:"required,min=1,max=5"`
}

type updateQuizRequest struct {
	UpdatedQuestions []confidenceUpdate `json:"updated_questions" binding:"required,min=1,dive"`
}

func (s *server) generateQuizHandler(c *gin.Context) {
	var req generateQuizRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()
	questions, err := store.QuizQuestions(ctx, s.db, currentUserID(c), store.QuizFilter{
		IncludeMastered: req.IncludeMastered,
		CategoryIDs:     req.CategoryIDs,
	})
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

func (s *server) updateQuizHandler(c *gin.Context) {
	var req updateQuizRequest
	if !bindJSON(c, &req) {
		return
	}
	// last update of a question wins
	levels := make(map[string]models.ConfidenceLevel, len(req.UpdatedQuestions))
	for _, u := range req.UpdatedQuestions {
		levels[u.QuestionID] = u.NewConfidence
	}
	n, err := store.UpdateConfidence(c.Request.Context(), s.db, currentUserID(c), levels)
	if err != nil {
		s.internalError(c, "update failed", err)
		return
	}
	s.log.DebugContext(c.Request.Context(), "quiz updated", "requested", len(levels), "updated", n)
	c.Status(http.StatusNoContent)
}
