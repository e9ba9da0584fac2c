package main

import (
	"log/slog"
	"net/http"

	"flashcards/pkg/auth"
	"flashcards/pkg/config"
	"flashcards/pkg/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type server struct {
	db      *gorm.DB
	flow    *auth.Flow
	tokens  *auth.TokenIssuer
	cookies cookiePolicy
	log     *slog.Logger
}

func newServer(db *gorm.DB, tokens *auth.TokenIssuer, cfg *config.Config, logger *slog.Logger) *server {
	registerValidation()
	return &server{
		db:      db,
		flow:    auth.NewFlow(store.NewUserRepository(db), auth.NewPasswordHasher(), tokens),
		tokens:  tokens,
		cookies: newCookiePolicy(cfg),
		log:     logger,
	}
}

func (s *server) setupRoutes(r *gin.Engine) {
	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	user := api.Group("/user")
	user.POST("/register", s.registerHandler)
	user.POST("/login", s.loginHandler)
	// the refresh cookie is the credential here; the access token has usually expired
	user.POST("/refresh", s.refreshHandler)

	authed := api.Group("")
	authed.Use(s.jwtAuthMiddleware())

	authed.GET("/user/me", s.meHandler)
	authed.POST("/user/logout", s.logoutHandler)
	authed.POST("/user/password", s.changePasswordHandler)

	authed.GET("/category", s.listCategoriesHandler)
	authed.GET("/category/:id", s.getCategoryHandler)
	authed.POST("/category", s.createCategoryHandler)
	authed.PUT("/category/:id", s.updateCategoryHandler)
	authed.DELETE("/category/:id", s.deleteCategoryHandler)

	authed.GET("/question", s.listQuestionsHandler)
	authed.GET("/question/:id", s.getQuestionHandler)
	authed.POST("/question", s.createQuestionHandler)
	authed.PUT("/question/:id", s.updateQuestionHandler)
	authed.DELETE("/question/:id", s.deleteQuestionHandler)

	authed.POST("/quiz/generate", s.generateQuizHandler)
	authed.POST("/quiz/update", s.updateQuizHandler)
}

// internalError logs err and answers 500 without leaking details.
func (s *server) internalError(c *gin.Context, msg string, err error) {
	s.log.ErrorContext(c.Request.Context(), msg, "err", err, "path", c.FullPath())
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}
