package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/medvault/booking-api/internal/auth"
	"github.com/medvault/booking-api/internal/booking"
	"github.com/medvault/booking-api/internal/config"
	"github.com/medvault/booking-api/internal/handlers"
	"github.com/medvault/booking-api/internal/identity"
	"github.com/medvault/booking-api/internal/middleware"
	"github.com/medvault/booking-api/internal/models"
	"github.com/medvault/booking-api/internal/payments"
	"github.com/medvault/booking-api/internal/services"
	"github.com/medvault/booking-api/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// --- Database ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	st := store.New(client.Database(cfg.MongoDatabase))
	if err := st.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}
	log.Println("Successfully connected to MongoDB!")

	// --- Services ---
	resolver := identity.NewResolver(st.AccountSources()...)
	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	checkout := payments.NewStripeCheckout(cfg.StripeSecretKey, cfg.StripeTimeout)
	notifier := services.NewNotificationService(cfg.TextbeltKey)
	bookings := booking.NewService(st, st, st, checkout, notifier, cfg.ClientSiteURL)

	h := handlers.NewHandler(resolver, issuer, st, st, bookings)

	// --- Router ---
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.POST("/signup", h.Signup)
	r.POST("/login", h.Login)
	r.POST("/token-by-id", h.TokenByID)

	r.GET("/doctors", h.GetDoctors)
	r.GET("/doctors/:id", h.GetDoctor)
	r.PUT("/doctors/:id",
		middleware.Authenticate(issuer),
		middleware.Restrict(models.RoleDoctor, models.RoleAdmin),
		h.UpdateDoctor)
	r.PATCH("/doctors/approve/:id",
		middleware.Authenticate(issuer),
		middleware.Restrict(models.RoleAdmin),
		h.ApproveDoctor)

	appointments := r.Group("/appointments")
	appointments.Use(middleware.Authenticate(issuer))
	{
		appointments.GET("", middleware.Restrict(models.RolePatient), h.GetAppointments)
		appointments.POST("/checkout/:doctorId", middleware.Restrict(models.RolePatient), h.Checkout)
		appointments.PATCH("/complete/:id", h.CompleteAppointment)
		appointments.PATCH("/cancel/:id", h.CancelAppointment)
	}

	log.Printf("Starting server on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
