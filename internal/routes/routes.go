package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/audit"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/cache"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/config"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/handlers"
	infraRepo "github.com/JeanLimaa/minimal-agendefacil-backend/internal/infra/repository"
	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/middleware"
	ucAppointment "github.com/JeanLimaa/minimal-agendefacil-backend/internal/usecase/appointment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log *zap.Logger) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	availabilityCache := cache.New(cfg)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		auditDispatcher,
		log,
	)

	updateAppointmentUC := ucAppointment.NewUpdateAppointment(
		appointmentRepo,
		auditDispatcher,
		log,
	)

	completeAppointmentUC := ucAppointment.NewCompleteAppointment(
		appointmentRepo,
		auditDispatcher,
		log,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		auditDispatcher,
		log,
	)

	listAppointmentsUC := ucAppointment.NewListAppointments(appointmentRepo, log)

	createBlockUC := ucAppointment.NewCreateBlock(
		appointmentRepo,
		auditDispatcher,
		log,
	)

	deleteBlockUC := ucAppointment.NewDeleteBlock(
		appointmentRepo,
		auditDispatcher,
		log,
	)

	availabilityUC := ucAppointment.NewGetAvailability(
		appointmentRepo,
		availabilityCache,
		log,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	companyHandler := handlers.NewCompanyHandler(db)
	clientHandler := handlers.NewClientHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		createAppointmentUC,
		updateAppointmentUC,
		completeAppointmentUC,
		cancelAppointmentUC,
		listAppointmentsUC,
		availabilityCache,
	)

	blockHandler := handlers.NewBlockHandler(
		createBlockUC,
		deleteBlockUC,
		listAppointmentsUC,
		availabilityCache,
	)

	publicHandler := handlers.NewPublicHandler(
		db,
		createAppointmentUC,
		availabilityUC,
		availabilityCache,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// API PÚBLICA (página de agendamento)
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:link", publicHandler.GetCompany)
			publicAPI.GET("/:link/services", publicHandler.ListServices)
			publicAPI.GET("/:link/availability", publicHandler.Availability)
			publicAPI.POST("/:link/appointments", publicHandler.CreateAppointment)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.Me)

			secured.GET("/company", companyHandler.Info)
			secured.PATCH("/company", companyHandler.UpdateProfile)
			secured.PUT("/company/address", companyHandler.UpdateAddress)
			secured.PUT("/company/working-hours", companyHandler.UpdateWorkingHours)

			secured.GET("/clients", clientHandler.List)
			secured.POST("/clients", clientHandler.Create)
			secured.GET("/clients/:id", clientHandler.Get)
			secured.PATCH("/clients/:id", clientHandler.Update)
			secured.DELETE("/clients/:id", clientHandler.Delete)
			secured.PATCH("/clients/:id/toggle-block", clientHandler.ToggleBlock)

			secured.GET("/services", serviceHandler.List)
			secured.POST("/services", serviceHandler.Create)
			secured.GET("/services/:id", serviceHandler.Get)
			secured.PATCH("/services/:id", serviceHandler.Update)
			secured.DELETE("/services/:id", serviceHandler.Delete)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.List)
			secured.GET("/appointments/pending", appointmentHandler.ListPending)
			secured.GET("/appointments/client/:clientId", appointmentHandler.ListByClient)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.PUT("/appointments/:id", appointmentHandler.Update)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)

			// ------------------------------
			// BLOCKS
			// ------------------------------
			secured.POST("/blocks", blockHandler.Create)
			secured.GET("/blocks", blockHandler.List)
			secured.DELETE("/blocks/:id", blockHandler.Delete)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
