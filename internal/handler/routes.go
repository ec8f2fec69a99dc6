package handler

import (
	"loanportal/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the portal API on group. history may be nil.
func RegisterRoutes(group *gin.RouterGroup, sessions *service.SessionManager, reports service.ReportFetcher, history *service.HistoryService) {
	sessionHandler := NewSessionHandler()
	formHandler := NewFormHandler()
	chatHandler := NewChatHandler()
	reportHandler := NewReportHandler(reports)
	historyHandler := NewHistoryHandler(history)

	// Per-session endpoints
	portal := group.Group("", SessionMiddleware(sessions))
	{
		portal.GET("/session", sessionHandler.Get)

		portal.GET("/form", formHandler.Get)
		portal.PUT("/form/fields", formHandler.SetField)
		portal.POST("/predict", formHandler.Predict)

		portal.GET("/chat", chatHandler.Get)
		portal.POST("/chat", chatHandler.Send)
	}

	// The backend keeps only its last prediction, so the report is not per session
	group.GET("/report", reportHandler.Download)

	group.GET("/predictions", historyHandler.List)
	group.GET("/predictions/:id", historyHandler.Get)
}
