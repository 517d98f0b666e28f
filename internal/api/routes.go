package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"

	"github.com/lbrrrrrr/enjoyyoga/internal/handlers"
	"github.com/lbrrrrrr/enjoyyoga/internal/middleware"
	"github.com/lbrrrrrr/enjoyyoga/internal/services"
)

// Handlers bundles everything SetupRoutes mounts.
type Handlers struct {
	Class        *handlers.ClassHandler
	Teacher      *handlers.TeacherHandler
	Registration *handlers.RegistrationHandler
	Contact      *handlers.ContactHandler
	Payment      *handlers.PaymentHandler
	Admin        *handlers.AdminHandler
	Calendar     *handlers.CalendarHandler
	Stream       *handlers.StreamHandler
}

// SetupRoutes configures the public and admin route groups with their
// middleware.
func SetupRoutes(router *gin.Engine, h Handlers, tokens *services.TokenService, rateLimiter *middleware.RateLimiter, logger *zap.Logger) {
	requestLog := logrus.New()

	router.Use(middleware.RequestID(logger))
	router.Use(middleware.Logger(requestLog))
	router.Use(middleware.ErrorHandler())

	router.GET("/status", handlers.StatusHandler)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	public := router.Group("/api")
	{
		public.GET("/classes", h.Class.ListClasses)
		public.GET("/classes/:id", h.Class.GetClass)
		public.GET("/classes/:id/dates", h.Class.ListDates)
		public.GET("/classes/:id/calendar.ics", h.Calendar.ClassCalendar)

		public.GET("/teachers", h.Teacher.ListTeachers)
		public.GET("/teachers/:id", h.Teacher.GetTeacher)

		limited := public.Group("/")
		limited.Use(rateLimiter.RateLimit())
		{
			limited.POST("/registrations", h.Registration.CreateRegistration)
			limited.POST("/registrations/:id/cancel", h.Registration.CancelRegistration)
			limited.POST("/contact", h.Contact.CreateInquiry)
			limited.POST("/admin/login", h.Admin.Login)
		}
	}

	admin := router.Group("/api")
	admin.Use(middleware.AdminAuth(tokens))
	admin.Use(rateLimiter.RateLimit())
	{
		admin.POST("/classes", h.Class.CreateClass)
		admin.PUT("/classes/:id", h.Class.UpdateClass)
		admin.DELETE("/classes/:id", h.Class.DeleteClass)

		admin.POST("/teachers", h.Teacher.CreateTeacher)
		admin.PUT("/teachers/:id", h.Teacher.UpdateTeacher)
		admin.DELETE("/teachers/:id", h.Teacher.DeleteTeacher)

		admin.GET("/admin/registrations", h.Admin.ListRegistrations)
		admin.PUT("/admin/registrations/:id/status", h.Admin.UpdateRegistrationStatus)

		admin.GET("/admin/payments", h.Payment.ListPending)
		admin.POST("/admin/payments/:id/confirm", h.Payment.ConfirmPayment)
		admin.POST("/admin/payments/:id/reject", h.Payment.RejectPayment)

		admin.GET("/admin/inquiries", h.Admin.ListInquiries)
		admin.POST("/admin/inquiries/:id/reply", h.Admin.ReplyInquiry)

		admin.GET("/admin/stream", h.Stream.Stream)
	}
}
