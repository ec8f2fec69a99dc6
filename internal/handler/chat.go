package handler

import (
	"net/http"

	"loanportal/internal/model"
	"loanportal/internal/service"

	"github.com/gin-gonic/gin"
)

// ChatHandler handles the chat widget of a session
type ChatHandler struct{}

// NewChatHandler creates a new chat handler
func NewChatHandler() *ChatHandler {
	return &ChatHandler{}
}

// Get handles GET /api/v1/chat
func (h *ChatHandler) Get(c *gin.Context) {
	h.respond(c, currentSession(c).Chat, false)
}

// Send handles POST /api/v1/chat. A blank message, or one sent while a reply
// is pending, is ignored and reported with sent=false.
func (h *ChatHandler) Send(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	chat := currentSession(c).Chat
	sent, err := chat.Ask(c.Request.Context(), req.Message)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update transcript: " + err.Error()})
		return
	}

	h.respond(c, chat, sent)
}

func (h *ChatHandler) respond(c *gin.Context, chat *service.ChatSession, sent bool) {
	transcript, err := chat.Transcript(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load transcript: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.ChatResponse{
		SessionID:  chat.ID(),
		Sent:       sent,
		Busy:       chat.Busy(),
		Transcript: transcript,
	})
}
