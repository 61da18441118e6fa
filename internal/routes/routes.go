package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/corteexpress/barberia-api/internal/audit"
	"github.com/corteexpress/barberia-api/internal/config"
	"github.com/corteexpress/barberia-api/internal/handlers"
	"github.com/corteexpress/barberia-api/internal/infra/payments"
	"github.com/corteexpress/barberia-api/internal/infra/realtime"
	infraRepo "github.com/corteexpress/barberia-api/internal/infra/repository"
	"github.com/corteexpress/barberia-api/internal/infra/storage"
	"github.com/corteexpress/barberia-api/internal/middleware"
	ucBooking "github.com/corteexpress/barberia-api/internal/usecase/booking"
	ucQueue "github.com/corteexpress/barberia-api/internal/usecase/queue"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	notifier *realtime.Notifier,
	gateway *payments.Gateway,
	images *storage.ImageStore,
) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	repo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	var events ucQueue.Notifier = ucQueue.NopNotifier{}
	if notifier != nil {
		events = notifier
	}

	// ======================================================
	// USE CASES — COLA
	// ======================================================
	viewTodayUC := ucQueue.NewViewToday(repo)
	enqueueUC := ucQueue.NewEnqueue(repo, auditDispatcher, events)
	acceptUC := ucQueue.NewAcceptAndServe(repo, auditDispatcher, events)
	startServiceUC := ucQueue.NewStartService(repo, auditDispatcher, events)
	rejectUC := ucQueue.NewReject(repo, auditDispatcher, events)
	finalizeUC := ucQueue.NewFinalize(repo, auditDispatcher, events, gateway)

	// ======================================================
	// USE CASES — AGENDAMIENTO
	// ======================================================
	availabilityUC := ucBooking.NewAvailability(repo)
	createAppointmentUC := ucBooking.NewCreateAppointment(repo, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	barberHandler := handlers.NewBarberHandler(db)

	queueHandler := handlers.NewQueueHandler(
		viewTodayUC,
		enqueueUC,
		acceptUC,
		startServiceUC,
		rejectUC,
		finalizeUC,
		notifier,
	)

	bookingHandler := handlers.NewBookingHandler(availabilityUC, createAppointmentUC)

	serviceHandler := handlers.NewServiceHandler(db, images)
	productHandler := handlers.NewProductHandler(db)
	repairHandler := handlers.NewRepairHandler(db)

	salesHandler := handlers.NewSalesHandler(db)
	clientHandler := handlers.NewClientHandler(db)
	barbersAdminHandler := handlers.NewBarbersAdminHandler(db)
	barbershopHandler := handlers.NewBarbershopHandler(db)
	appointmentsAdminHandler := handlers.NewAppointmentsAdminHandler(db)
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

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			// ------------------------------
			// PANEL DEL BARBERO
			// ------------------------------
			barbero := secured.Group("/barbero")
			{
				barbero.GET("/info", barberHandler.GetInfo)
				barbero.GET("/servicios", serviceHandler.List)
				barbero.GET("/productos", productHandler.List)

				barbero.GET("/citas", queueHandler.ListToday)
				barbero.GET("/citas/stream", queueHandler.Stream)

				barbero.POST("/citas/:id/cola", queueHandler.Enqueue)
				barbero.POST("/citas/:id/atender", queueHandler.Accept)
				barbero.POST("/citas/:id/servir", queueHandler.StartService)
				barbero.POST("/citas/:id/cancelar", queueHandler.Reject)
				barbero.POST("/citas/:id/finalizar", queueHandler.Finalize)
			}

			// ------------------------------
			// AGENDAMIENTO
			// ------------------------------
			secured.GET("/citas", bookingHandler.Availability)
			secured.POST("/citas", bookingHandler.Create)

			// ------------------------------
			// PANEL ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRole("owner", "admin"))
			{
				admin.GET("/barberia", barbershopHandler.Get)
				admin.PATCH("/barberia", barbershopHandler.Update)

				admin.GET("/barberos", barbersAdminHandler.List)
				admin.POST("/barberos", barbersAdminHandler.Create)
				admin.PATCH("/barberos/:id", barbersAdminHandler.Update)

				admin.POST("/servicios", serviceHandler.Create)
				admin.PATCH("/servicios/:id", serviceHandler.Update)
				admin.POST("/servicios/:id/imagen", serviceHandler.UploadImage)

				admin.GET("/servicios", serviceHandler.List)
				admin.GET("/productos", productHandler.List)
				admin.POST("/productos", productHandler.Create)
				admin.PATCH("/productos/:id", productHandler.Update)

				admin.GET("/reparaciones", repairHandler.List)
				admin.POST("/reparaciones", repairHandler.Create)
				admin.PATCH("/reparaciones/:id/estado", repairHandler.UpdateStatus)

				admin.GET("/ventas", salesHandler.ListByDate)
				admin.GET("/citas", appointmentsAdminHandler.ListByMonth)

				admin.GET("/clientes", clientHandler.List)
				admin.PATCH("/clientes/:id/creditos", clientHandler.AdjustCredits)

				admin.GET("/auditoria", auditLogsHandler.List)
			}
		}
	}
}
