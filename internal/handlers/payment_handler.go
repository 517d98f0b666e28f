package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lbrrrrrr/enjoyyoga/internal/middleware"
	"github.com/lbrrrrrr/enjoyyoga/internal/models"
	"github.com/lbrrrrrr/enjoyyoga/internal/repository"
)

// PaymentHandler exposes the manual payment-confirmation workflow:
// registrants pay out of band, staff confirm or reject against the
// transfer reference.
type PaymentHandler struct {
	paymentRepo *repository.PaymentRepository
}

func NewPaymentHandler(paymentRepo *repository.PaymentRepository) *PaymentHandler {
	return &PaymentHandler{paymentRepo: paymentRepo}
}

func (h *PaymentHandler) ListPending(c *gin.Context) {
	payments, err := h.paymentRepo.ListPending(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list payments"})
		return
	}
	c.JSON(http.StatusOK, payments)
}

// ConfirmPayment marks a pending payment confirmed, which also flips the
// registration from pending_payment to confirmed.
func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment ID"})
		return
	}

	var req models.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := h.paymentRepo.Confirm(c.Request.Context(), id, middleware.TokenSubject(c), req.Reference)
	if err != nil {
		if errors.Is(err, models.ErrPaymentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pending payment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm payment"})
		return
	}

	c.JSON(http.StatusOK, payment)
}

// RejectPayment marks a pending payment rejected and cancels its
// registration.
func (h *PaymentHandler) RejectPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment ID"})
		return
	}

	payment, err := h.paymentRepo.Reject(c.Request.Context(), id, middleware.TokenSubject(c))
	if err != nil {
		if errors.Is(err, models.ErrPaymentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pending payment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reject payment"})
		return
	}

	c.JSON(http.StatusOK, payment)
}
