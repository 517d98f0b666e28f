package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/lbrrrrrr/enjoyyoga/internal/middleware"
	"github.com/lbrrrrrr/enjoyyoga/internal/models"
	"github.com/lbrrrrrr/enjoyyoga/internal/repository"
	"github.com/lbrrrrrr/enjoyyoga/internal/services"
)

// AdminHandler covers the back-office surface: login, registration
// management, and inquiry triage.
type AdminHandler struct {
	adminRepo        *repository.AdminUserRepository
	registrationRepo *repository.RegistrationRepository
	inquiryRepo      *repository.InquiryRepository
	notificationRepo *repository.NotificationRepository
	tokens           *services.TokenService
}

func NewAdminHandler(
	adminRepo *repository.AdminUserRepository,
	registrationRepo *repository.RegistrationRepository,
	inquiryRepo *repository.InquiryRepository,
	notificationRepo *repository.NotificationRepository,
	tokens *services.TokenService,
) *AdminHandler {
	return &AdminHandler{
		adminRepo:        adminRepo,
		registrationRepo: registrationRepo,
		inquiryRepo:      inquiryRepo,
		notificationRepo: notificationRepo,
		tokens:           tokens,
	}
}

// Login checks a username/password against the admin_users table and
// issues a JWT.
func (h *AdminHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.adminRepo.GetByUsername(c.Request.Context(), req.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		middleware.ContextLogger(c).Info("rejected login", zap.String("username", req.Username))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	token, expiresAt, err := h.tokens.CreateJWTToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{
		Token:     token,
		Sub:       user.Username,
		Access:    user.Access,
		ExpiresAt: expiresAt,
	})
}

// ListRegistrations lists bookings, optionally filtered by class, date,
// and status.
func (h *AdminHandler) ListRegistrations(c *gin.Context) {
	var filter models.RegistrationFilter

	if raw := c.Query("class_id"); raw != "" {
		classID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid class ID"})
			return
		}
		filter.ClassID = &classID
	}
	if raw := c.Query("date"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
			return
		}
		filter.TargetDate = &date
	}
	if raw := c.Query("status"); raw != "" {
		status := models.RegistrationStatus(raw)
		filter.Status = &status
	}

	regs, err := h.registrationRepo.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list registrations"})
		return
	}

	c.JSON(http.StatusOK, regs)
}

// UpdateRegistrationStatus sets a booking's status; staff use it to
// promote waitlisted registrants when a seat frees up.
func (h *AdminHandler) UpdateRegistrationStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid registration ID"})
		return
	}

	var req models.UpdateRegistrationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reg, err := h.registrationRepo.UpdateStatus(c.Request.Context(), id, models.RegistrationStatus(req.Status))
	if err != nil {
		if errors.Is(err, models.ErrRegistrationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Registration not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update registration"})
		return
	}

	c.JSON(http.StatusOK, reg)
}

func (h *AdminHandler) ListInquiries(c *gin.Context) {
	unansweredOnly := c.Query("unanswered") == "true"

	inquiries, err := h.inquiryRepo.List(c.Request.Context(), unansweredOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list inquiries"})
		return
	}

	c.JSON(http.StatusOK, inquiries)
}

// ReplyInquiry queues a reply email through the outbox and marks the
// inquiry answered.
func (h *AdminHandler) ReplyInquiry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid inquiry ID"})
		return
	}

	var req models.ReplyInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inquiry, err := h.inquiryRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get inquiry"})
		return
	}
	if inquiry == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Inquiry not found"})
		return
	}

	notification := &models.Notification{
		Recipient: inquiry.Email,
		Subject:   req.Subject,
		BodyHTML:  services.RenderMarkdown(req.Body),
	}
	if err := h.notificationRepo.Enqueue(c.Request.Context(), notification); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to queue reply"})
		return
	}

	if err := h.inquiryRepo.MarkReplied(c.Request.Context(), id); err != nil {
		middleware.ContextLogger(c).Error("reply queued but inquiry not marked replied",
			zap.String("inquiry_id", id.String()), zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reply queued", "notification_id": notification.ID})
}
