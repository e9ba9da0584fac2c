package store

import (
	"context"
	"fmt"

	"flashcards/models"
	"flashcards/pkg/relsync"

	"gorm.io/gorm"
)

// QuestionCategoryStore is the relsync.JoinStore for the categories of one
// question. It writes through whatever handle it was built with, usually a
// transaction.
type QuestionCategoryStore struct {
	db         *gorm.DB
	questionID string
}

func NewQuestionCategoryStore(db *gorm.DB, questionID string) *QuestionCategoryStore {
	return &QuestionCategoryStore{db: db, questionID: questionID}
}

func (s *QuestionCategoryStore) Related(ctx context.Context) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).
		Model(&models.QuestionCategory{}).
		Where("question_id = ?", s.questionID).
		Pluck("category_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("load question categories: %w", err)
	}
	return ids, nil
}

func (s *QuestionCategoryStore) Link(ctx context.Context, ids []string) error {
	rows := make([]models.QuestionCategory, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, models.QuestionCategory{QuestionID: s.questionID, CategoryID: id})
	}
	if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("link question categories: %w", err)
	}
	return nil
}

func (s *QuestionCategoryStore) Unlink(ctx context.Context, ids []string) error {
	err := s.db.WithContext(ctx).
		Where("question_id = ? AND category_id IN ?", s.questionID, ids).
		Delete(&models.QuestionCategory{}).Error
	if err != nil {
		return fmt.Errorf("unlink question categories: %w", err)
	}
	return nil
}

// OwnedCategoryIDs keeps the ids in ids that name categories of userID,
// dropping duplicates and everything else.
func OwnedCategoryIDs(ctx context.Context, db *gorm.DB, userID string, ids []string) ([]string, error) {
	ids = relsync.Unique(ids)
	if len(ids) == 0 {
		return nil, nil
	}
	var owned []string
	err := db.WithContext(ctx).
		Model(&models.Category{}).
		Scopes(OwnedBy(userID)).
		Where("id IN ?", ids).
		Pluck("id", &owned).Error
	if err != nil {
		return nil, fmt.Errorf("load owned categories: %w", err)
	}
	return owned, nil
}

// SyncQuestionCategories makes the categories of question equal to the owned
// subset of categoryIDs.
func SyncQuestionCategories(ctx context.Context, tx *gorm.DB, question *models.Question, categoryIDs []string) (relsync.Diff[string], error) {
	owned, err := OwnedCategoryIDs(ctx, tx, question.UserID, categoryIDs)
	if err != nil {
		return relsync.Diff[string]{}, err
	}
	return relsync.Sync[string](ctx, NewQuestionCategoryStore(tx, question.ID), owned)
}

// DeleteQuestion removes a question and its join rows.
func DeleteQuestion(ctx context.Context, tx *gorm.DB, question *models.Question) error {
	db := tx.WithContext(ctx)
	if err := db.Where("question_id = ?", question.ID).Delete(&models.QuestionCategory{}).Error; err != nil {
		return fmt.Errorf("delete question categories: %w", err)
	}
	if err := db.Delete(question).Error; err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	return nil
}

// DeleteCategory removes a category and its join rows. Questions are kept.
func DeleteCategory(ctx context.Context, tx *gorm.DB, category *models.Category) error {
	db := tx.WithContext(ctx)
	if err := db.Where("category_id = ?", category.ID).Delete(&models.QuestionCategory{}).Error; err != nil {
		return fmt.Errorf("delete category questions: %w", err)
	}
	if err := db.Delete(category).Error; err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// DeleteUserContent removes every question, category and join row of userID.
func DeleteUserContent(ctx context.Context, tx *gorm.DB, userID string) error {
	db := tx.WithContext(ctx)
	questions := db.Model(&models.Question{}).Select("id").Where("user_id = ?", userID)
	categories := db.Model(&models.Category{}).Select("id").Where("user_id = ?", userID)
	err := db.Where("question_id IN (?) OR category_id IN (?)", questions, categories).
		Delete(&models.QuestionCategory{}).Error
	if err != nil {
		return fmt.Errorf("delete user joins: %w", err)
	}
	if err := db.Where("user_id = ?", userID).Delete(&models.Question{}).Error; err != nil {
		return fmt.Errorf("delete user questions: %w", err)
	}
	if err := db.Where("user_id = ?", userID).Delete(&models.Category{}).Error; err != nil {
		return fmt.Errorf("delete user categories: %w", err)
	}
	return nil
}
