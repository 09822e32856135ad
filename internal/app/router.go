package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"travelapp/internal/handler"
	"travelapp/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AuthHandler    *handler.AuthHandler
	ListingHandler *handler.ListingHandler
	BookingHandler *handler.BookingHandler
	ReviewHandler  *handler.ReviewHandler
	PaymentHandler *handler.PaymentHandler
	RedisClient    *redis.Client
	NewRelicApp    *newrelic.Application
	JWTSecret      []byte
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authRequired := middleware.AuthRequired(deps.JWTSecret)

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Auth routes.
		auth := v1.Group("/auth")
		{
			auth.POST("/register", deps.AuthHandler.Register)
			auth.POST("/login", deps.AuthHandler.Login)
		}

		// Listing routes. Reads are public, writes require auth.
		listings := v1.Group("/listings")
		{
			listings.GET("", deps.ListingHandler.ListListings)
			listings.GET("/:id", deps.ListingHandler.GetListing)
			listings.GET("/:id/reviews", deps.ReviewHandler.ListReviews)
			listings.POST("", authRequired, deps.ListingHandler.CreateListing)
			listings.PUT("/:id", authRequired, deps.ListingHandler.UpdateListing)
			listings.DELETE("/:id", authRequired, deps.ListingHandler.DeleteListing)
		}

		// Booking routes.
		bookings := v1.Group("/bookings", authRequired)
		{
			bookings.POST("", deps.BookingHandler.CreateBooking)
			bookings.GET("", deps.BookingHandler.ListBookings)
			bookings.GET("/:id", deps.BookingHandler.GetBooking)
		}

		// Review routes.
		reviews := v1.Group("/reviews", authRequired)
		{
			reviews.POST("", deps.ReviewHandler.CreateReview)
			reviews.PUT("/:id", deps.ReviewHandler.UpdateReview)
			reviews.DELETE("/:id", deps.ReviewHandler.DeleteReview)
		}

		// Payment routes.
		payments := v1.Group("/payments", authRequired)
		{
			payments.POST("/initiate", deps.PaymentHandler.InitiatePayment)
			payments.POST("/verify", deps.PaymentHandler.VerifyPayment)
			payments.GET("", deps.PaymentHandler.ListPayments)
			payments.GET("/:id", deps.PaymentHandler.GetPayment)
		}
	}

	return router
}
