// Package seed holds the account maintenance used by the command-line tools:
// resetting the demo account and creating or resetting users.
package seed

import (
	"context"
	"errors"
	"fmt"

	"flashcards/models"
	"flashcards/pkg/auth"
	"flashcards/pkg/store"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DemoEmail    = "demo@flashcards.com"
	DemoPassword = "P@ssword!"
)

type question struct {
	prompt     string
	hint       string
	answer     string
	categories []string
}

var (
	demoCategories = []string{"JavaScript", "Python", "Django"}
	demoQuestions  = []question{
		{
			prompt:     "What is hoisting in JavaScript?",
			hint:       "Think in terms of function declarations versus function expressions",
			answer:     "Hoisting is JavaScript's behaviour of moving declarations (but not expressions) to the top of the scope before the code runs. Functions can therefore be called before their declarations appear in the script.",
			categories: []string{"JavaScript"},
		},
		{
			prompt:     "What are the main 4 Python collections, which are mutable and which are index based?",
			answer:     "The index based collections are lists (mutable) and tuples (immutable). Sets are mutable and unordered, with unique values. Dictionaries are mutable and ordered by insertion, but accessed by key rather than index.",
			categories: []string{"Python"},
		},
		{
			prompt:     "What are the two types of view in a Django application?",
			answer:     "Django supports both FBV (function based views) and CBV (class based views).",
			categories: []string{"Python", "Django"},
		},
	}
)

// Result reports what ResetDemoUser did.
type Result struct {
	User       *models.User
	Created    bool
	Categories int
	Questions  int
	Links      int
}

// ResetDemoUser finds or creates the account email, resets its password and
// replaces all of its content with the demo set. Everything happens in one
// transaction.
func ResetDemoUser(ctx context.Context, db *gorm.DB, hasher *auth.PasswordHasher, email, password string) (*Result, error) {
	res := &Result{}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		err := tx.Where("email = ?", email).First(&user).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			user = models.User{ID: uuid.NewString(), Email: email}
			res.Created = true
		case err != nil:
			return fmt.Errorf("find demo user: %w", err)
		}
		// the demo password predates the strength rules, so it is not checked
		if err := setPassword(hasher, &user, password); err != nil {
			return err
		}
		user.ClearRefreshToken()

		if res.Created {
			err = tx.Create(&user).Error
		} else {
			err = tx.Save(&user).Error
		}
		if err != nil {
			return fmt.Errorf("store demo user: %w", err)
		}
		res.User = &user

		if err := store.DeleteUserContent(ctx, tx, user.ID); err != nil {
			return err
		}
		return seedContent(tx, user.ID, res)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func seedContent(tx *gorm.DB, userID string, res *Result) error {
	byName := make(map[string]string, len(demoCategories))
	categories := make([]models.Category, 0, len(demoCategories))
	for _, name := range demoCategories {
		c := models.Category{ID: uuid.NewString(), UserID: userID, Name: name}
		byName[name] = c.ID
		categories = append(categories, c)
	}
	if err := tx.Create(&categories).Error; err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}

	questions := make([]models.Question, 0, len(demoQuestions))
	var links []models.QuestionCategory
	for _, dq := range demoQuestions {
		q := models.Question{
			ID:         uuid.NewString(),
			UserID:     userID,
			Prompt:     dq.prompt,
			Answer:     dq.answer,
			Confidence: models.VeryLow,
		}
		if dq.hint != "" {
			hint := dq.hint
			q.Hint = &hint
		}
		questions = append(questions, q)
		for _, name := range dq.categories {
			links = append(links, models.QuestionCategory{QuestionID: q.ID, CategoryID: byName[name]})
		}
	}
	if err := tx.Create(&questions).Error; err != nil {
		return fmt.Errorf("seed questions: %w", err)
	}
	if err := tx.Create(&links).Error; err != nil {
		return fmt.Errorf("seed question categories: %w", err)
	}

	res.Categories = len(categories)
	res.Questions = len(questions)
	res.Links = len(links)
	return nil
}
