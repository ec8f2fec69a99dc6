package handler

import (
	"net/http"

	"loanportal/internal/service"

	"github.com/gin-gonic/gin"
)

// ReportFilename is the name offered to the browser for the PDF report
const ReportFilename = "Loan_Report.pdf"

// ReportHandler proxies the backend PDF report
type ReportHandler struct {
	reports service.ReportFetcher
}

// NewReportHandler creates a new report handler
func NewReportHandler(reports service.ReportFetcher) *ReportHandler {
	return &ReportHandler{
		reports: reports,
	}
}

// Download handles GET /api/v1/report
func (h *ReportHandler) Download(c *gin.Context) {
	pdf, err := h.reports.DownloadReport(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to download report: " + err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+ReportFilename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
