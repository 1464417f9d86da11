package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/PalcoServices/palco-hire/internal/audit"
	"github.com/PalcoServices/palco-hire/internal/config"
	"github.com/PalcoServices/palco-hire/internal/handlers"
	infraRepo "github.com/PalcoServices/palco-hire/internal/infra/repository"
	"github.com/PalcoServices/palco-hire/internal/middleware"
	"github.com/PalcoServices/palco-hire/internal/storage"
	ucBooking "github.com/PalcoServices/palco-hire/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	avatarStore := storage.NewAvatarStore(cfg)

	// ======================================================
	// 🧠 USE CASES — BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		auditDispatcher,
	)

	acceptBookingUC := ucBooking.NewAcceptBooking(
		bookingRepo,
		auditDispatcher,
	)

	rejectBookingUC := ucBooking.NewRejectBooking(
		bookingRepo,
		auditDispatcher,
	)

	cancelBookingUC := ucBooking.NewCancelBooking(
		bookingRepo,
		auditDispatcher,
	)

	payBookingUC := ucBooking.NewPayBooking(
		bookingRepo,
		auditDispatcher,
	)

	confirmFinalBookingUC := ucBooking.NewConfirmFinalBooking(
		bookingRepo,
		auditDispatcher,
	)

	listBookingsUC := ucBooking.NewListBookings(
		bookingRepo,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	artistHandler := handlers.NewArtistHandler(db, rdb, avatarStore)

	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		acceptBookingUC,
		rejectBookingUC,
		cancelBookingUC,
		payBookingUC,
		confirmFinalBookingUC,
		listBookingsUC,
	)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		api.GET("/artists", artistHandler.List)
		api.GET("/artists/:id", artistHandler.Get)

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.PUT("/artists/bio", artistHandler.UpdateBio)
			secured.POST("/artists/avatar", artistHandler.UploadAvatar)

			// ------------------------------
			// BOOKINGS
			// ------------------------------
			secured.POST("/bookings", bookingHandler.Create)
			secured.GET("/bookings", bookingHandler.List)
			secured.POST("/bookings/:id/accept", bookingHandler.Accept)
			secured.POST("/bookings/:id/reject", bookingHandler.Reject)
			secured.PATCH("/bookings/:id/pay", bookingHandler.Pay)
			secured.PATCH("/bookings/:id/final-confirm", bookingHandler.ConfirmFinal)
			secured.PATCH("/bookings/:id/cancel", bookingHandler.Cancel)
		}
	}
}
