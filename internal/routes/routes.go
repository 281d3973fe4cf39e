package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/VidaPlenaApps/clinic-scheduler/internal/audit"
	"github.com/VidaPlenaApps/clinic-scheduler/internal/config"
	"github.com/VidaPlenaApps/clinic-scheduler/internal/handlers"
	infraRepo "github.com/VidaPlenaApps/clinic-scheduler/internal/infra/repository"
	"github.com/VidaPlenaApps/clinic-scheduler/internal/middleware"
	"github.com/VidaPlenaApps/clinic-scheduler/internal/notify"
	"github.com/VidaPlenaApps/clinic-scheduler/internal/payments"
	"github.com/VidaPlenaApps/clinic-scheduler/internal/resettoken"
	"github.com/VidaPlenaApps/clinic-scheduler/internal/storage"
	ucAppointment "github.com/VidaPlenaApps/clinic-scheduler/internal/usecase/appointment"
	ucAvailability "github.com/VidaPlenaApps/clinic-scheduler/internal/usecase/availability"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	rdb *redis.Client,
	log *zap.Logger,
) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	availabilityRepo := infraRepo.NewAvailabilityGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	notifier := notify.NewLogNotifier(log)
	resetTokens := resettoken.NewStore(rdb)
	documentStore := storage.NewDocumentStore(cfg)

	charger, err := payments.NewCharger(cfg.MPAccessToken)
	if err != nil {
		log.Warn("mercadopago desabilitado", zap.Error(err))
		charger = nil
	}

	// ======================================================
	// USE CASES — AVAILABILITY
	// ======================================================
	saveAvailabilityUC := ucAvailability.NewSaveAvailability(
		availabilityRepo,
		notifier,
		auditDispatcher,
	)

	listMonthUC := ucAvailability.NewListMonth(availabilityRepo)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	completeAppointmentUC := ucAppointment.NewCompleteAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(
		appointmentRepo,
	)

	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(
		appointmentRepo,
	)

	slotsUC := ucAppointment.NewGetAvailability(appointmentRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, resetTokens, log)
	meHandler := handlers.NewMeHandler(db, documentStore)
	clinicHandler := handlers.NewClinicHandler(db)

	clientHandler := handlers.NewClientHandler(db)
	sessionTypeHandler := handlers.NewSessionTypeHandler(db)

	availabilityHandler := handlers.NewAvailabilityHandler(
		db,
		saveAvailabilityUC,
		listMonthUC,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		createAppointmentUC,
		completeAppointmentUC,
		cancelAppointmentUC,
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
		slotsUC,
	)

	sessionNoteHandler := handlers.NewSessionNoteHandler(db)
	insuranceFormHandler := handlers.NewInsuranceFormHandler(db, documentStore)
	paymentsHandler := handlers.NewPaymentsHandler(db, charger)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/password-reset/request", authHandler.RequestPasswordReset)
		api.POST("/auth/password-reset/confirm", authHandler.ConfirmPasswordReset)

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.POST("/me/photo", meHandler.UploadPhoto)

			secured.GET("/me/clinic", clinicHandler.GetMeClinic)
			secured.PATCH("/me/clinic", clinicHandler.UpdateMeClinic)

			secured.GET("/me/clients", clientHandler.List)
			secured.POST("/me/clients", clientHandler.Create)
			secured.PATCH("/me/clients/:id", clientHandler.Update)
			secured.GET("/me/clients/:id/notes", sessionNoteHandler.ListNotesByClient)

			secured.GET("/me/session-types", sessionTypeHandler.List)
			secured.POST("/me/session-types", sessionTypeHandler.Create)
			secured.PATCH("/me/session-types/:id", sessionTypeHandler.Update)

			// ------------------------------
			// AVAILABILITY
			// ------------------------------
			secured.GET("/me/availability", availabilityHandler.GetBlocks)
			secured.PUT("/me/availability", availabilityHandler.UpdateBlocks)
			secured.POST("/me/availability/save", availabilityHandler.Save)
			secured.GET("/me/availability/month", availabilityHandler.Month)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.GET("/me/appointments/slots", appointmentHandler.Slots)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)
			secured.POST("/me/appointments/:id/charge", paymentsHandler.ChargeAppointment)

			// ------------------------------
			// NOTES / FORMS
			// ------------------------------
			secured.GET("/me/note-templates", sessionNoteHandler.ListTemplates)
			secured.POST("/me/note-templates", sessionNoteHandler.CreateTemplate)
			secured.PATCH("/me/note-templates/:id", sessionNoteHandler.UpdateTemplate)
			secured.POST("/me/session-notes", sessionNoteHandler.CreateNote)

			secured.GET("/me/insurance-forms", insuranceFormHandler.List)
			secured.POST("/me/insurance-forms", insuranceFormHandler.Create)
			secured.PATCH("/me/insurance-forms/:id", insuranceFormHandler.Update)
			secured.POST("/me/insurance-forms/:id/document", insuranceFormHandler.UploadDocument)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
