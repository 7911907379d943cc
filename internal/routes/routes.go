package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/beautyflow/beautyflow-api/internal/audit"
	"github.com/beautyflow/beautyflow-api/internal/cache"
	"github.com/beautyflow/beautyflow-api/internal/config"
	"github.com/beautyflow/beautyflow-api/internal/handlers"
	infraRepo "github.com/beautyflow/beautyflow-api/internal/infra/repository"
	"github.com/beautyflow/beautyflow-api/internal/middleware"
	ucAppointment "github.com/beautyflow/beautyflow-api/internal/usecase/appointment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	summaryCache := cache.NewSummaryCache(cfg.RedisURL)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(appointmentRepo, auditDispatcher)
	updateAppointmentUC := ucAppointment.NewUpdateAppointment(appointmentRepo, auditDispatcher)
	getAppointmentUC := ucAppointment.NewGetAppointment(appointmentRepo)
	listAppointmentsUC := ucAppointment.NewListAppointments(appointmentRepo)
	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(appointmentRepo, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	establishmentHandler := handlers.NewEstablishmentHandler(db)
	clientHandler := handlers.NewClientHandler(db)
	clientHistoryHandler := handlers.NewClientHistoryHandler(db)
	professionalHandler := handlers.NewProfessionalHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	transactionHandler := handlers.NewTransactionHandler(db, summaryCache)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		updateAppointmentUC,
		getAppointmentUC,
		listAppointmentsUC,
		deleteAppointmentUC,
	)

	// ======================================================
	// AUTH (público)
	// ======================================================
	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)

	// ======================================================
	// ROTAS PROTEGIDAS
	// ======================================================
	secured := r.Group("/")
	secured.Use(middleware.AuthMiddleware(cfg))
	{
		secured.GET("/auth/me", authHandler.Me)

		secured.GET("/establishment", establishmentHandler.Get)
		secured.PUT("/establishment", establishmentHandler.Update)

		// ------------------------------
		// CLIENTS
		// ------------------------------
		secured.GET("/clients", clientHandler.List)
		secured.POST("/clients", clientHandler.Create)
		secured.GET("/clients/:id", clientHandler.Get)
		secured.PUT("/clients/:id", clientHandler.Update)
		secured.DELETE("/clients/:id", clientHandler.Delete)

		secured.GET("/clients/:id/history", clientHistoryHandler.List)
		secured.POST("/clients/:id/history", clientHistoryHandler.Create)
		secured.PUT("/clients/:id/history/:historyId", clientHistoryHandler.Update)
		secured.DELETE("/clients/:id/history/:historyId", clientHistoryHandler.Delete)

		// ------------------------------
		// PROFESSIONALS
		// ------------------------------
		secured.GET("/professionals", professionalHandler.List)
		secured.POST("/professionals", professionalHandler.Create)
		secured.GET("/professionals/:id", professionalHandler.Get)
		secured.PUT("/professionals/:id", professionalHandler.Update)
		secured.DELETE("/professionals/:id", professionalHandler.Delete)
		secured.PUT("/professionals/:id/schedules", professionalHandler.UpdateSchedules)

		// ------------------------------
		// SERVICES
		// ------------------------------
		secured.GET("/services", serviceHandler.List)
		secured.POST("/services", serviceHandler.Create)
		secured.GET("/services/:id", serviceHandler.Get)
		secured.PUT("/services/:id", serviceHandler.Update)
		secured.DELETE("/services/:id", serviceHandler.Delete)

		// ------------------------------
		// APPOINTMENTS
		// ------------------------------
		secured.GET("/appointments", appointmentHandler.List)
		secured.POST("/appointments", appointmentHandler.Create)
		secured.GET("/appointments/:id", appointmentHandler.Get)
		secured.PUT("/appointments/:id", appointmentHandler.Update)
		secured.DELETE("/appointments/:id", appointmentHandler.Delete)

		// ------------------------------
		// TRANSACTIONS
		// ------------------------------
		secured.GET("/transactions", transactionHandler.List)
		secured.POST("/transactions", transactionHandler.Create)
		secured.PUT("/transactions/:id", transactionHandler.Update)
		secured.DELETE("/transactions/:id", transactionHandler.Delete)

		secured.GET("/audit-logs", auditLogsHandler.List)
	}
}
