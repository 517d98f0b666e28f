package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lbrrrrrr/enjoyyoga/internal/middleware"
	"github.com/lbrrrrrr/enjoyyoga/internal/models"
	"github.com/lbrrrrrr/enjoyyoga/internal/services"
)

type RegistrationHandler struct {
	registration *services.RegistrationService
}

func NewRegistrationHandler(registration *services.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registration: registration}
}

// CreateRegistration books a class. Requests for a date that is not part
// of the class schedule get a 422 with example upcoming dates.
func (h *RegistrationHandler) CreateRegistration(c *gin.Context) {
	var req models.CreateRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reg, decision, err := h.registration.Create(c.Request.Context(), req)
	if err != nil {
		var rejected *services.BookingRejectedError
		if errors.As(err, &rejected) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":           rejected.Reason,
				"available_dates": rejected.AvailableDates,
			})
			return
		}
		if errors.Is(err, models.ErrClassNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Class not found"})
			return
		}
		middleware.ContextLogger(c).Error("failed to create registration", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create registration"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"registration": reg,
		"decision":     decision,
	})
}

func (h *RegistrationHandler) CancelRegistration(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid registration ID"})
		return
	}

	reg, err := h.registration.Cancel(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrRegistrationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Registration not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel registration"})
		return
	}

	c.JSON(http.StatusOK, reg)
}
