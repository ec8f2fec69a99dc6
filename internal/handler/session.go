package handler

import (
	"net/http"

	"loanportal/internal/model"
	"loanportal/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// SessionHeader carries the portal session identifier on requests and responses
const SessionHeader = "X-Session-Id"

const sessionKey = "session"

// SessionMiddleware resolves the caller's session from SessionHeader, opening
// one when the header is missing or unknown, and echoes its id back
func SessionMiddleware(sessions *service.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, created, err := sessions.GetOrCreate(c.Request.Context(), c.GetHeader(SessionHeader))
		if err != nil {
			log.WithError(err).Error("failed to open session")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to open session: " + err.Error()})
			return
		}
		if created {
			log.WithField("session", session.ID).Info("new portal session")
		}

		c.Set(sessionKey, session)
		c.Header(SessionHeader, session.ID)
		c.Next()
	}
}

// currentSession returns the session stored by SessionMiddleware
func currentSession(c *gin.Context) *service.Session {
	return c.MustGet(sessionKey).(*service.Session)
}

// SessionHandler exposes the caller's session
type SessionHandler struct{}

// NewSessionHandler creates a new session handler
func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

// Get handles GET /api/v1/session
func (h *SessionHandler) Get(c *gin.Context) {
	session := currentSession(c)
	c.JSON(http.StatusOK, model.SessionResponse{
		SessionID: session.ID,
		CreatedAt: session.CreatedAt,
	})
}
