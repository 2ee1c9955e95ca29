// internal/interfaces/http/handlers/session.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/baxtbl4b/app-goroshina-sub001/internal/config"
)

// getOrCreateSessionID gets the session ID from the session cookie or creates
// a new one. Cart, favorites and booking drafts are all keyed by this ID, so
// one anonymous visitor keeps one set of state across requests.
func getOrCreateSessionID(c *gin.Context, cfg *config.Config) string {
	sessionID, err := c.Cookie(cfg.Session.CookieName)
	if err != nil || sessionID == "" {
		sessionID = uuid.New().String()
		c.SetCookie(cfg.Session.CookieName, sessionID, int(cfg.Session.TTL.Seconds()), "/", "", false, true)
	}

	return sessionID
}
