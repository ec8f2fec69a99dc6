package handler

import (
	"net/http"
	"strconv"

	"loanportal/internal/service"

	"github.com/gin-gonic/gin"
)

// HistoryHandler serves recorded predictions
type HistoryHandler struct {
	history *service.HistoryService
}

// NewHistoryHandler creates a new history handler. A nil service means
// history is disabled and every request gets 503.
func NewHistoryHandler(history *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{
		history: history,
	}
}

func (h *HistoryHandler) enabled(c *gin.Context) bool {
	if h.history == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Prediction history is not enabled. Set DATABASE_URL to turn it on"})
		return false
	}
	return true
}

// List handles GET /api/v1/predictions?limit=&offset=
func (h *HistoryHandler) List(c *gin.Context) {
	if !h.enabled(c) {
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid offset"})
		return
	}

	response, err := h.history.List(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list predictions: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/v1/predictions/:id
func (h *HistoryHandler) Get(c *gin.Context) {
	if !h.enabled(c) {
		return
	}

	entry, err := h.history.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get prediction: " + err.Error()})
		return
	}

	if entry == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prediction not found"})
		return
	}

	c.JSON(http.StatusOK, entry)
}
