package main

import (
	"context"
	"time"

	"flashcards/models"
	"flashcards/pkg/auth"
	"flashcards/pkg/store"

	"gorm.io/gorm"
)

type userInfo struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// authResponse is returned by register, login, refresh and password change.
// The refresh token itself only travels in the cookie.
type authResponse struct {
	AccessToken              string    `json:"access_token"`
	RefreshTokenExpiresAtUTC time.Time `json:"refresh_token_expires_at_utc"`
	User                     userInfo  `json:"user"`
}

type categoryResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	QuestionCount int64  `json:"question_count"`
}

type questionCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type questionResponse struct {
	ID         string                 `json:"id"`
	Prompt     string                 `json:"prompt"`
	Hint       *string                `json:"hint"`
	Answer     string                 `json:"answer"`
	Confidence models.ConfidenceLevel `json:"confidence"`
	Categories []questionCategory     `json:"categories"`
}

func toUserInfo(u *models.User) userInfo {
	return userInfo{
		UserID:    u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAtUTC,
		UpdatedAt: u.UpdatedAtUTC,
	}
}

func toAuthResponse(s *auth.Session) authResponse {
	return authResponse{
		AccessToken:              s.AccessToken,
		RefreshTokenExpiresAtUTC: s.RefreshTokenExpiresAt.UTC(),
		User:                     toUserInfo(s.User),
	}
}

func toCategoryResponse(c store.CategorySummary) categoryResponse {
	return categoryResponse{ID: c.ID, Name: c.Name, QuestionCount: c.QuestionCount}
}

// questionResponses projects questions together with their categories.
func questionResponses(ctx context.Context, db *gorm.DB, questions []models.Question) ([]questionResponse, error) {
	ids := make([]string, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, q.ID)
	}
	cats, err := store.CategoriesByQuestion(ctx, db, ids)
	if err != nil {
		return nil, err
	}
	out := make([]questionResponse, 0, len(questions))
	for _, q := range questions {
		refs := make([]questionCategory, 0, len(cats[q.ID]))
		for _, c := range cats[q.ID] {
			refs = append(refs, questionCategory{ID: c.ID, Name: c.Name})
		}
		out = append(out, questionResponse{
			ID:         q.ID,
			Prompt:     q.Prompt,
			Hint:       q.Hint,
			Answer:     q.Answer,
			Confidence: q.Confidence,
			Categories: refs,
		})
	}
	return out, nil
}
