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

type categoryRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

var errCategoryExists = errors.New("category already exists")

func (s *server) listCategoriesHandler(c *gin.Context) {
	cats, err := store.ListCategories(c.Request.Context(), s.db, currentUserID(c))
	if err != nil {
		s.internalError(c, "query failed", err)
		return
	}
	out := make([]categoryResponse, 0, len(cats))
	for _, cat := range cats {
		out = append(out, toCategoryResponse(cat))
	}
	c.JSON(http.StatusOK, out)
}

func (s *server) getCategoryHandler(c *gin.Context) {
	cat, err := store.GetCategory(c.Request.Context(), s.db, currentUserID(c), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return
	}
	if err != nil {
		s.internalError(c, "query failed", err)
		return
	}
	c.JSON(http.StatusOK, toCategoryResponse(*cat))
}

func (s *server) createCategoryHandler(c *gin.Context) {
	var req categoryRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()
	userID := currentUserID(c)

	taken, err := store.CategoryNameTaken(ctx, s.db, userID, req.Name, "")
	if err != nil {
		s.internalError(c, "query failed", err)
		return
	}
	if taken {
		c.JSON(http.StatusBadRequest, gin.H{"error": errCategoryExists.Error()})
		return
	}

	cat := models.Category{ID: uuid.NewString(), UserID: userID, Name: req.Name}
	if err := s.db.WithContext(ctx).Create(&cat).Error; err != nil {
		if store.IsUniqueViolation(err) { // race condition after initial check
			c.JSON(http.StatusBadRequest, gin.H{"error": errCategoryExists.Error()})
			return
		}
		s.internalError(c, "create failed", err)
		return
	}
	c.JSON(http.StatusOK, categoryResponse{ID: cat.ID, Name: cat.Name})
}

func (s *server) updateCategoryHandler(c *gin.Context) {
	var req categoryRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()
	userID := currentUserID(c)

	cat, ok := s.ownedCategory(c)
	if !ok {
		return
	}
	taken, err := store.CategoryNameTaken(ctx, s.db, userID, req.Name, cat.ID)
	if err != nil {
		s.internalError(c, "query failed", err)
		return
	}
	if taken {
		c.JSON(http.StatusBadRequest, gin.H{"error": errCategoryExists.Error()})
		return
	}

	cat.Name = req.Name
	if err := s.db.WithContext(ctx).Save(cat).Error; err != nil {
		if store.IsUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": errCategoryExists.Error()})
			return
		}
		s.internalError(c, "update failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *server) deleteCategoryHandler(c *gin.Context) {
	cat, ok := s.ownedCategory(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return store.DeleteCategory(ctx, tx, cat)
	})
	if err != nil {
		s.internalError(c, "delete failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ownedCategory loads the :id category of the caller, answering 404 when it
// does not exist or belongs to someone else.
func (s *server) ownedCategory(c *gin.Context) (*models.Category, bool) {
	cat, err := store.FindOwned[models.Category](s.db.WithContext(c.Request.Context()), currentUserID(c), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return nil, false
	}
	if err != nil {
		s.internalError(c, "query failed", err)
		return nil, false
	}
	return cat, true
}
