package handler

import (
	"errors"
	"net/http"

	"loanportal/internal/model"
	"loanportal/internal/service"

	"github.com/gin-gonic/gin"
)

// FormHandler handles the loan application form of a session
type FormHandler struct{}

// NewFormHandler creates a new form handler
func NewFormHandler() *FormHandler {
	return &FormHandler{}
}

// Get handles GET /api/v1/form
func (h *FormHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, formResponse(currentSession(c).Form.State()))
}

// SetField handles PUT /api/v1/form/fields
func (h *FormHandler) SetField(c *gin.Context) {
	var req model.SetFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	form := currentSession(c).Form
	if err := form.SetField(req.Name, req.Value); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, formResponse(form.State()))
}

// Predict handles POST /api/v1/predict. A body (JSON or form-urlencoded)
// replaces the form fields first; an empty body submits the stored form.
// Backend failures are reported in-band through the error field.
func (h *FormHandler) Predict(c *gin.Context) {
	form := currentSession(c).Form

	if c.Request.ContentLength != 0 {
		var req model.PredictForm
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		if err := form.SetFields(req.Fields()); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	if err := form.Submit(c.Request.Context()); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrMissingField) || errors.Is(err, service.ErrInvalidOption) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, formResponse(form.State()))
}

func formResponse(state service.FormState) model.FormResponse {
	response := model.FormResponse{
		Fields: state.Fields,
		Busy:   state.Busy,
		Error:  state.Error,
		Result: state.Result,
	}
	if state.Result != nil {
		view := service.Present(state.Result)
		response.View = &view
	}
	return response
}
