package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lbrrrrrr/enjoyyoga/internal/models"
	"github.com/lbrrrrrr/enjoyyoga/internal/repository"
	"github.com/lbrrrrrr/enjoyyoga/internal/schedule"
	"github.com/lbrrrrrr/enjoyyoga/internal/services"
)

const defaultDatesLimit = 10

type ClassHandler struct {
	classRepo    *repository.ClassRepository
	registration *services.RegistrationService
}

func NewClassHandler(classRepo *repository.ClassRepository, registration *services.RegistrationService) *ClassHandler {
	return &ClassHandler{classRepo: classRepo, registration: registration}
}

// canonicalSchedule normalizes a submitted schedule string and parses it
// into the structured form stored alongside it. Strings that do not
// normalize to the canonical "Day/Day H:MM AM|PM" shape are rejected so
// every active class has an enumerable weekly schedule.
func canonicalSchedule(raw string) (string, *models.ScheduleData, error) {
	normalized := schedule.Normalize(raw)
	if !schedule.IsCanonical(normalized) {
		return "", nil, models.ErrInvalidSchedule
	}
	rec := schedule.Parse(normalized)
	return normalized, &models.ScheduleData{Recurrence: rec}, nil
}

func (h *ClassHandler) CreateClass(c *gin.Context) {
	var req models.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	teacherID, err := uuid.Parse(req.TeacherID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid teacher ID"})
		return
	}

	normalized, data, err := canonicalSchedule(req.Schedule)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	class := &models.Class{
		Name:            req.Name,
		Description:     req.Description,
		DescriptionHTML: services.RenderMarkdown(req.Description),
		TeacherID:       teacherID,
		Style:           req.Style,
		Schedule:        normalized,
		ScheduleData:    data,
		DurationMinutes: req.DurationMinutes,
		Difficulty:      req.Difficulty,
		Capacity:        req.Capacity,
		Location:        req.Location,
		PriceCents:      req.PriceCents,
		Currency:        req.Currency,
		Status:          models.ClassStatusActive,
	}
	if class.DurationMinutes == 0 && data.IsWeekly() {
		class.DurationMinutes = data.Pattern.DurationMinutes
	}

	if err := h.classRepo.Create(c.Request.Context(), class); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create class"})
		return
	}

	c.JSON(http.StatusCreated, class)
}

func (h *ClassHandler) GetClass(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid class ID"})
		return
	}

	class, err := h.classRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get class"})
		return
	}
	if class == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Class not found"})
		return
	}

	c.JSON(http.StatusOK, class)
}

func (h *ClassHandler) ListClasses(c *gin.Context) {
	includeArchived := c.Query("include_archived") == "true"

	classes, err := h.classRepo.List(c.Request.Context(), includeArchived)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list classes"})
		return
	}

	c.JSON(http.StatusOK, classes)
}

func (h *ClassHandler) UpdateClass(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid class ID"})
		return
	}

	class, err := h.classRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get class"})
		return
	}
	if class == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Class not found"})
		return
	}

	var req models.UpdateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil {
		class.Name = *req.Name
	}
	if req.Description != nil {
		class.Description = *req.Description
		class.DescriptionHTML = services.RenderMarkdown(*req.Description)
	}
	if req.TeacherID != nil {
		teacherID, err := uuid.Parse(*req.TeacherID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid teacher ID"})
			return
		}
		class.TeacherID = teacherID
	}
	if req.Style != nil {
		class.Style = *req.Style
	}
	if req.Schedule != nil {
		normalized, data, err := canonicalSchedule(*req.Schedule)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		class.Schedule = normalized
		class.ScheduleData = data
		if data.IsWeekly() && req.DurationMinutes == nil {
			class.DurationMinutes = data.Pattern.DurationMinutes
		}
	}
	if req.DurationMinutes != nil {
		class.DurationMinutes = *req.DurationMinutes
	}
	if req.Difficulty != nil {
		class.Difficulty = *req.Difficulty
	}
	if req.Capacity != nil {
		class.Capacity = *req.Capacity
	}
	if req.Location != nil {
		class.Location = *req.Location
	}
	if req.PriceCents != nil {
		class.PriceCents = *req.PriceCents
	}
	if req.Currency != nil {
		class.Currency = *req.Currency
	}
	if req.Status != nil {
		class.Status = models.ClassStatus(*req.Status)
	}

	if err := h.classRepo.Update(c.Request.Context(), class); err != nil {
		if err == models.ErrClassNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Class not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update class"})
		return
	}

	c.JSON(http.StatusOK, class)
}

func (h *ClassHandler) DeleteClass(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid class ID"})
		return
	}

	if err := h.classRepo.Delete(c.Request.Context(), id); err != nil {
		if err == models.ErrClassNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Class not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to archive class"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Class archived successfully"})
}

// ListDates enumerates upcoming occurrences of a class's schedule.
func (h *ClassHandler) ListDates(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid class ID"})
		return
	}

	from := time.Now()
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date, expected YYYY-MM-DD"})
			return
		}
		from = parsed
	}

	limit := defaultDatesLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	dates, err := h.registration.UpcomingDates(c.Request.Context(), id, from, limit)
	if err != nil {
		if err == models.ErrClassNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Class not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list class dates"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"class_id": id, "dates": dates})
}
