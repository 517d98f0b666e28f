package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lbrrrrrr/enjoyyoga/internal/models"
	"github.com/lbrrrrrr/enjoyyoga/internal/repository"
)

type ContactHandler struct {
	inquiryRepo *repository.InquiryRepository
}

func NewContactHandler(inquiryRepo *repository.InquiryRepository) *ContactHandler {
	return &ContactHandler{inquiryRepo: inquiryRepo}
}

// CreateInquiry accepts a public contact-form submission.
func (h *ContactHandler) CreateInquiry(c *gin.Context) {
	var req models.CreateInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inquiry := &models.Inquiry{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}

	if err := h.inquiryRepo.Create(c.Request.Context(), inquiry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit inquiry"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Thanks for reaching out, we'll get back to you soon", "id": inquiry.ID})
}
