package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lbrrrrrr/enjoyyoga/internal/models"
	"github.com/lbrrrrrr/enjoyyoga/internal/repository"
	"github.com/lbrrrrrr/enjoyyoga/internal/services"
)

type TeacherHandler struct {
	teacherRepo *repository.TeacherRepository
}

func NewTeacherHandler(teacherRepo *repository.TeacherRepository) *TeacherHandler {
	return &TeacherHandler{teacherRepo: teacherRepo}
}

func (h *TeacherHandler) CreateTeacher(c *gin.Context) {
	var req models.CreateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	teacher := &models.Teacher{
		Name:           req.Name,
		Bio:            req.Bio,
		BioHTML:        services.RenderMarkdown(req.Bio),
		Qualifications: req.Qualifications,
		PhotoURL:       req.PhotoURL,
	}

	if err := h.teacherRepo.Create(c.Request.Context(), teacher); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create teacher"})
		return
	}

	c.JSON(http.StatusCreated, teacher)
}

func (h *TeacherHandler) GetTeacher(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid teacher ID"})
		return
	}

	teacher, err := h.teacherRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get teacher"})
		return
	}
	if teacher == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Teacher not found"})
		return
	}

	c.JSON(http.StatusOK, teacher)
}

func (h *TeacherHandler) ListTeachers(c *gin.Context) {
	teachers, err := h.teacherRepo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list teachers"})
		return
	}

	c.JSON(http.StatusOK, teachers)
}

func (h *TeacherHandler) UpdateTeacher(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid teacher ID"})
		return
	}

	teacher, err := h.teacherRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get teacher"})
		return
	}
	if teacher == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Teacher not found"})
		return
	}

	var req models.UpdateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil {
		teacher.Name = *req.Name
	}
	if req.Bio != nil {
		teacher.Bio = *req.Bio
		teacher.BioHTML = services.RenderMarkdown(*req.Bio)
	}
	if req.Qualifications != nil {
		teacher.Qualifications = *req.Qualifications
	}
	if req.PhotoURL != nil {
		teacher.PhotoURL = req.PhotoURL
	}

	if err := h.teacherRepo.Update(c.Request.Context(), teacher); err != nil {
		if err == models.ErrTeacherNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Teacher not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update teacher"})
		return
	}

	c.JSON(http.StatusOK, teacher)
}

func (h *TeacherHandler) DeleteTeacher(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid teacher ID"})
		return
	}

	if err := h.teacherRepo.Delete(c.Request.Context(), id); err != nil {
		if err == models.ErrTeacherNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Teacher not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete teacher"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Teacher deleted successfully"})
}
