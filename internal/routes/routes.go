package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MesaLibreServices/mesa-scheduler/internal/audit"
	"github.com/MesaLibreServices/mesa-scheduler/internal/cache"
	"github.com/MesaLibreServices/mesa-scheduler/internal/config"
	"github.com/MesaLibreServices/mesa-scheduler/internal/handlers"
	infraRepo "github.com/MesaLibreServices/mesa-scheduler/internal/infra/repository"
	"github.com/MesaLibreServices/mesa-scheduler/internal/middleware"
	ucReservation "github.com/MesaLibreServices/mesa-scheduler/internal/usecase/reservation"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	reservationRepo := infraRepo.NewReservationGormRepository(db)
	availCache := cache.NewAvailability(cfg)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES — RESERVATIONS
	// ======================================================
	createReservationUC := ucReservation.NewCreateReservation(
		reservationRepo,
		auditDispatcher,
	)

	cancelReservationUC := ucReservation.NewCancelReservation(
		reservationRepo,
		auditDispatcher,
	)

	acceptReservationUC := ucReservation.NewAcceptReservation(
		reservationRepo,
		auditDispatcher,
	)

	listAvailableTablesUC := ucReservation.NewListAvailableTables(
		reservationRepo,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db, cfg)

	publicHandler := handlers.NewPublicHandler(db, listAvailableTablesUC, availCache)

	reservationHandler := handlers.NewReservationHandler(
		createReservationUC,
		cancelReservationUC,
		availCache,
	)

	adminReservationHandler := handlers.NewAdminReservationHandler(
		db,
		acceptReservationUC,
		cancelReservationUC,
		availCache,
	)

	restaurantHandler := handlers.NewRestaurantHandler(db)
	tableHandler := handlers.NewTableHandler(db, availCache)
	userHandler := handlers.NewUserHandler(db)
	statsHandler := handlers.NewStatsHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/restaurants", publicHandler.ListRestaurants)
			publicAPI.GET("/restaurants/:id", publicHandler.GetRestaurant)
			publicAPI.GET("/restaurants/:id/availability", publicHandler.Availability)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PATCH("/me", meHandler.UpdateMe)

			secured.POST("/me/reservations", reservationHandler.Create)
			secured.PATCH("/me/reservations/:id/cancel", reservationHandler.Cancel)

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.AdminOnly())
			{
				admin.GET("/stats", statsHandler.Get)

				admin.GET("/reservations", adminReservationHandler.List)
				admin.PATCH("/reservations/:id/status", adminReservationHandler.UpdateStatus)
				admin.DELETE("/reservations/:id", adminReservationHandler.Delete)

				admin.GET("/restaurants", restaurantHandler.List)
				admin.POST("/restaurants", restaurantHandler.Create)
				admin.PATCH("/restaurants/:id", restaurantHandler.Update)
				admin.DELETE("/restaurants/:id", restaurantHandler.Delete)

				admin.GET("/restaurants/:id/tables", tableHandler.List)
				admin.POST("/restaurants/:id/tables", tableHandler.Create)
				admin.DELETE("/tables/:id", tableHandler.Delete)

				admin.GET("/users", userHandler.List)
				admin.DELETE("/users/:id", userHandler.Delete)

				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
