package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/bellenoire/salon-api/internal/audit"
	"github.com/bellenoire/salon-api/internal/cache"
	"github.com/bellenoire/salon-api/internal/config"
	"github.com/bellenoire/salon-api/internal/handlers"
	infraRepo "github.com/bellenoire/salon-api/internal/infra/repository"
	"github.com/bellenoire/salon-api/internal/middleware"
	"github.com/bellenoire/salon-api/internal/models"
	"github.com/bellenoire/salon-api/internal/notify"
	ucAppointment "github.com/bellenoire/salon-api/internal/usecase/appointment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, rdb *redis.Client) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	notifier := notify.New(db)
	slotCache := cache.NewSlotCache(rdb)

	authLimiter := middleware.NewRateLimiter(1, 5)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	slotsUC := ucAppointment.NewGetAvailableSlots(appointmentRepo)

	createUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		notifier,
		auditDispatcher,
	)

	rescheduleUC := ucAppointment.NewRescheduleAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	cancelUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		notifier,
		auditDispatcher,
	)

	statusUC := ucAppointment.NewUpdateStatus(
		appointmentRepo,
		auditDispatcher,
	)

	listUC := ucAppointment.NewListAppointments(appointmentRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	serviceHandler := handlers.NewServiceHandler(db)
	staffHandler := handlers.NewStaffHandler(db)
	scheduleHandler := handlers.NewScheduleHandler(db)
	clientHandler := handlers.NewClientHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		slotsUC,
		createUC,
		rescheduleUC,
		cancelUC,
		statusUC,
		listUC,
		slotCache,
	)

	loyaltyHandler := handlers.NewLoyaltyHandler(db)
	notificationHandler := handlers.NewNotificationHandler(db)

	saleHandler := handlers.NewSaleHandler(db, auditDispatcher)
	discountHandler := handlers.NewDiscountHandler(db)
	inventoryHandler := handlers.NewInventoryHandler(db)
	reportHandler := handlers.NewReportHandler(db)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/services", serviceHandler.List)
		api.GET("/staff", staffHandler.List)

		// ------------------------------
		// AUTH
		// ------------------------------
		auth := api.Group("/auth")
		auth.Use(middleware.RateLimit(authLimiter))
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			// Booking. Slot availability lives outside the
			// appointments group: gin rejects a static segment
			// next to the :id wildcard.
			secured.GET("/slots", appointmentHandler.AvailableSlots)
			secured.GET("/appointments", appointmentHandler.List)
			secured.POST("/appointments", appointmentHandler.Create)
			secured.PATCH("/appointments/:id/reschedule", appointmentHandler.Reschedule)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)

			secured.GET("/staff/available", staffHandler.Available)

			// Loyalty + notifications
			secured.GET("/loyalty/points", loyaltyHandler.Points)
			secured.GET("/loyalty/referral-code", loyaltyHandler.ReferralCode)

			secured.GET("/notifications", notificationHandler.List)
			secured.PUT("/notifications/:id/read", notificationHandler.MarkRead)

			secured.GET("/discounts/validate/:code", discountHandler.Validate)

			// Staff-side operations
			staffOnly := secured.Group("/")
			staffOnly.Use(middleware.RequireRoles(models.RoleWorker, models.RoleAdmin))
			{
				staffOnly.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus)

				staffOnly.GET("/clients", clientHandler.List)
				staffOnly.GET("/schedules/:id", scheduleHandler.Get)

				staffOnly.POST("/sales", saleHandler.Create)
				staffOnly.GET("/sales", saleHandler.List)
				staffOnly.GET("/sales/:id/receipt", saleHandler.Receipt)

				staffOnly.GET("/inventory", inventoryHandler.List)
			}

			// Admin-side operations
			adminOnly := secured.Group("/")
			adminOnly.Use(middleware.RequireRoles(models.RoleAdmin))
			{
				adminOnly.POST("/services", serviceHandler.Create)
				adminOnly.PATCH("/services/:id", serviceHandler.Update)

				adminOnly.PATCH("/schedules/:id", scheduleHandler.Upsert)

				adminOnly.POST("/discounts", discountHandler.Create)
				adminOnly.GET("/discounts", discountHandler.List)

				adminOnly.POST("/inventory", inventoryHandler.Create)
				adminOnly.PATCH("/inventory/:id", inventoryHandler.Update)

				adminOnly.GET("/reports/revenue", reportHandler.Revenue)
				adminOnly.GET("/reports/peak-hours", reportHandler.PeakHours)

				adminOnly.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
