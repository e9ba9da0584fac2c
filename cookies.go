package main

import (
	"net/http"

	"flashcards/pkg/config"

	"github.com/gin-gonic/gin"
)

const (
	refreshCookieName   = "refresh_token"
	refreshCookieMaxAge = 28 * 24 * 60 * 60 // seconds
)

// cookiePolicy decides the attributes of the HTTP-only refresh cookie.
// Production cookies are Secure and SameSite=Strict; development ones are
// plain Lax so a local frontend over http keeps working.
type cookiePolicy struct {
	secure   bool
	sameSite http.SameSite
}

func newCookiePolicy(cfg *config.Config) cookiePolicy {
	if cfg.IsDevelopment() {
		return cookiePolicy{secure: false, sameSite: http.SameSiteLaxMode}
	}
	return cookiePolicy{secure: true, sameSite: http.SameSiteStrictMode}
}

func (p cookiePolicy) setRefresh(c *gin.Context, token string) {
	c.SetSameSite(p.sameSite)
	c.SetCookie(refreshCookieName, token, refreshCookieMaxAge, "/", "", p.secure, true)
}

func (p cookiePolicy) clearRefresh(c *gin.Context) {
	c.SetSameSite(p.sameSite)
	c.SetCookie(refreshCookieName, "", -1, "/", "", p.secure, true)
}
