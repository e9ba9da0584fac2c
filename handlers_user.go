package main

import (
	"errors"
	"net/http"

	"flashcards/pkg/auth"

	"github.com/gin-gonic/gin"
)

type credentialsRequest struct {
	Email    string `json:"email" binding:"required,email,max=256"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

func (s *server) registerHandler(c *gin.Context) {
	var req credentialsRequest
	if !bindJSON(c, &req) {
		return
	}
	session, err := s.flow.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.authError(c, "register failed", err)
		return
	}
	s.writeSession(c, session)
}

func (s *server) loginHandler(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}
	session, err := s.flow.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.authError(c, "login failed", err)
		return
	}
	s.writeSession(c, session)
}

// refreshHandler exchanges the refresh cookie for a new access token and rotates the cookie.
func (s *server) refreshHandler(c *gin.Context) {
	token, err := c.Cookie(refreshCookieName)
	if err != nil || token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidRefreshToken.Error()})
		return
	}
	session, err := s.flow.Refresh(c.Request.Context(), token)
	if errors.Is(err, auth.ErrInvalidRefreshToken) {
		s.cookies.clearRefresh(c)
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		s.internalError(c, "refresh failed", err)
		return
	}
	s.writeSession(c, session)
}

func (s *server) logoutHandler(c *gin.Context) {
	err := s.flow.Logout(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.authError(c, "logout failed", err)
		return
	}
	s.cookies.clearRefresh(c)
	c.Status(http.StatusNoContent)
}

func (s *server) changePasswordHandler(c *gin.Context) {
	var req changePasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	session, err := s.flow.ChangePassword(c.Request.Context(), currentUserID(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		s.authError(c, "change password failed", err)
		return
	}
	s.writeSession(c, session)
}

func (s *server) meHandler(c *gin.Context) {
	user, err := s.flow.Me(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.authError(c, "load user failed", err)
		return
	}
	c.JSON(http.StatusOK, toUserInfo(user))
}

func (s *server) writeSession(c *gin.Context, session *auth.Session) {
	s.cookies.setRefresh(c, session.RefreshToken)
	c.JSON(http.StatusOK, toAuthResponse(session))
}

// authError maps auth flow errors onto responses; anything unknown is a 500.
func (s *server) authError(c *gin.Context, msg string, err error) {
	var weak *auth.WeakPasswordError
	switch {
	case errors.As(err, &weak):
		c.JSON(http.StatusBadRequest, gin.H{"errors": weak.Violations})
	case errors.Is(err, auth.ErrEmailAlreadyExists), errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		s.internalError(c, msg, err)
	}
}
