package store

import (
	"context"
	"errors"
	"fmt"

	"flashcards/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CategorySummary is a category with the number of questions attached to it.
type CategorySummary struct {
	ID            string
	Name          string
	QuestionCount int64
}

// CategoryRef is one category of a question, as returned by CategoriesByQuestion.
type CategoryRef struct {
	QuestionID string
	ID         string
	Name       string
}

func ListCategories(ctx context.Context, db *gorm.DB, userID string) ([]CategorySummary, error) {
	var out []CategorySummary
	if err := categorySummaries(ctx, db, userID).Order("categories.name").Scan(&out).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

func GetCategory(ctx context.Context, db *gorm.DB, userID, id string) (*CategorySummary, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	var out []CategorySummary
	err := categorySummaries(ctx, db, userID).
		Where(clause.Eq{Column: clause.Column{Table: "categories", Name: "id"}, Value: id}).
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	if len(out) == 0 {
		return nil, ErrNotFound
	}
	return &out[0], nil
}

func categorySummaries(ctx context.Context, db *gorm.DB, userID string) *gorm.DB {
	return db.WithContext(ctx).
		Model(&models.Category{}).
		Scopes(OwnedBy(userID)).
		Select("categories.id AS id, categories.name AS name, COUNT(question_categories.question_id) AS question_count").
		Joins("LEFT JOIN question_categories ON question_categories.category_id = categories.id").
		Group("categories.id, categories.name")
}

// CategoryNameTaken reports whether userID already has a category called name,
// ignoring the category exceptID.
func CategoryNameTaken(ctx context.Context, db *gorm.DB, userID, name, exceptID string) (bool, error) {
	q := db.WithContext(ctx).Model(&models.Category{}).Scopes(OwnedBy(userID)).Where("name = ?", name)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, fmt.Errorf("check category name: %w", err)
	}
	return n > 0, nil
}

// ListQuestions returns the questions of userID, newest first.
func ListQuestions(ctx context.Context, db *gorm.DB, userID string) ([]models.Question, error) {
	var out []models.Question
	err := db.WithContext(ctx).Scopes(OwnedBy(userID)).Order("created_at_utc DESC").Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return out, nil
}

// QuizFilter selects the questions of a quiz.
type QuizFilter struct {
	IncludeMastered bool
	CategoryIDs     []string
}

// QuizQuestions returns the questions of userID matching filter. An empty
// category list means every category; otherwise a question qualifies when it
// carries at least one of them.
func QuizQuestions(ctx context.Context, db *gorm.DB, userID string, filter QuizFilter) ([]models.Question, error) {
	q := db.WithContext(ctx).Scopes(OwnedBy(userID))
	if !filter.IncludeMastered {
		q = q.Where("confidence <> ?", models.VeryHigh)
	}
	if len(filter.CategoryIDs) > 0 {
		joined := db.Model(&models.QuestionCategory{}).
			Select("question_id").
			Where("category_id IN ?", filter.CategoryIDs)
		q = q.Where("id IN (?)", joined)
	}
	var out []models.Question
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("quiz questions: %w", err)
	}
	return out, nil
}

// CategoriesByQuestion loads the categories of each question id, sorted by name.
func CategoriesByQuestion(ctx context.Context, db *gorm.DB, questionIDs []string) (map[string][]CategoryRef, error) {
	out := make(map[string][]CategoryRef, len(questionIDs))
	if len(questionIDs) == 0 {
		return out, nil
	}
	var rows []CategoryRef
	err := db.WithContext(ctx).
		Table("question_categories").
		Select("question_categories.question_id AS question_id, categories.id AS id, categories.name AS name").
		Joins("JOIN categories ON categories.id = question_categories.category_id").
		Where("question_categories.question_id IN ?", questionIDs).
		Order("categories.name").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load categories by question: %w", err)
	}
	for _, r := range rows {
		out[r.QuestionID] = append(out[r.QuestionID], r)
	}
	return out, nil
}

// UpdateConfidence applies level changes to questions of userID in one
// transaction. Ids that do not name an owned question are skipped; the number
// of updated questions is returned.
func UpdateConfidence(ctx context.Context, db *gorm.DB, userID string, levels map[string]models.ConfidenceLevel) (int, error) {
	updated := 0
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, level := range levels {
			q, err := FindOwned[models.Question](tx, userID, id)
			if errors.Is(err, ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			if q.Confidence == level {
				continue
			}
			q.Confidence = level
			if err := tx.Save(q).Error; err != nil {
				return fmt.Errorf("update confidence: %w", err)
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}
