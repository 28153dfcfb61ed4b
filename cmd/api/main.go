package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harentsoaR/wedding-api/internal/authz"
	"github.com/harentsoaR/wedding-api/internal/config"
	"github.com/harentsoaR/wedding-api/internal/handlers"
	"github.com/harentsoaR/wedding-api/internal/middleware"
	"github.com/harentsoaR/wedding-api/internal/services"
	"github.com/harentsoaR/wedding-api/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger := zerolog.New(os.Stderr)
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	log := newLogger(cfg.Env)
	utils.SetJWTSecret(cfg.JWTSecret)

	// --- Database Connection ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())
	db := client.Database(cfg.MongoDatabase)
	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}
	log.Info().Str("database", cfg.MongoDatabase).Msg("connected to MongoDB")

	// --- Services & Handlers ---
	notificationSvc := services.NewNotificationService(cfg.TextbeltAPIKey, log)
	h := handlers.NewHandler(db, cfg, log, notificationSvc)

	// --- Gin Router ---
	if !strings.EqualFold(cfg.Env, "development") {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.ErrorHandler(log))
	r.Use(middleware.SanitizeBody())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	registerRoutes(r, h)

	log.Info().Str("port", cfg.Port).Msg("starting server")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func newLogger(env string) zerolog.Logger {
	if strings.EqualFold(env, "development") {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func registerRoutes(r *gin.Engine, h *handlers.Handler) {
	auth := middleware.AuthMiddleware()
	objectID := middleware.RequireObjectID("id")

	users := r.Group("/users")
	{
		users.POST("/register", h.RegisterUser)
		users.POST("/login", h.Login)
		users.GET("", auth, middleware.Authorize(authz.ResourceUser, authz.ActionList), h.GetAllUsers)
		users.GET("/:id", objectID, auth, h.GetUserByID)
		users.PUT("/:id", objectID, auth, h.UpdateUser)
		users.DELETE("/:id", objectID, auth, h.DeleteUser)
	}

	admins := r.Group("/admins")
	{
		admins.POST("", auth, middleware.Authorize(authz.ResourceAdmin, authz.ActionCreate), h.CreateAdmin)
		admins.GET("/:id", objectID, auth, middleware.Authorize(authz.ResourceAdmin, authz.ActionGet), h.GetAdminByID)
		admins.PUT("/:id", objectID, auth, middleware.Authorize(authz.ResourceAdmin, authz.ActionUpdate), h.UpdateAdmin)
		admins.DELETE("/:id", objectID, auth, middleware.Authorize(authz.ResourceAdmin, authz.ActionDelete), h.DeleteAdmin)
	}

	packages := r.Group("/packages")
	{
		packages.GET("", h.GetAllPackages)
		packages.GET("/:id", objectID, h.GetPackageByID)
		packages.POST("", auth, middleware.Authorize(authz.ResourceWeddingPackage, authz.ActionCreate), h.CreatePackage)
		packages.PUT("/:id", objectID, auth, h.UpdatePackage)
		packages.DELETE("/:id", objectID, auth, h.DeletePackage)
	}

	bookings := r.Group("/bookings")
	{
		bookings.GET("", h.GetAllBookings)
		bookings.GET("/:id", objectID, h.GetBookingByID)
		bookings.POST("", auth, middleware.Authorize(authz.ResourceBooking, authz.ActionCreate), h.CreateBooking)
		bookings.PUT("/:id", objectID, auth, h.UpdateBooking)
		bookings.DELETE("/:id", objectID, auth, h.DeleteBooking)
	}

	venues := r.Group("/venues")
	{
		venues.GET("", h.GetAllVenues)
		venues.GET("/:id", objectID, h.GetVenueByID)
		venues.POST("", auth, middleware.Authorize(authz.ResourceVenue, authz.ActionCreate), h.CreateVenue)
		venues.PUT("/:id", objectID, auth, middleware.Authorize(authz.ResourceVenue, authz.ActionUpdate), h.UpdateVenue)
		venues.DELETE("/:id", objectID, auth, middleware.Authorize(authz.ResourceVenue, authz.ActionDelete), h.DeleteVenue)
	}

	vendors := r.Group("/vendors")
	{
		vendors.GET("", h.GetAllVendors)
		vendors.GET("/:id", objectID, h.GetVendorByID)
		vendors.POST("", auth, middleware.Authorize(authz.ResourceVendor, authz.ActionCreate), h.CreateVendor)
		vendors.PUT("/:id", objectID, auth, middleware.Authorize(authz.ResourceVendor, authz.ActionUpdate), h.UpdateVendor)
		vendors.DELETE("/:id", objectID, auth, middleware.Authorize(authz.ResourceVendor, authz.ActionDelete), h.DeleteVendor)
	}

	eventMgmtVendors := r.Group("/eventMgmtVendors")
	{
		eventMgmtVendors.GET("", h.GetAllEventMgmtVendors)
		eventMgmtVendors.GET("/:id", objectID, h.GetEventMgmtVendorByID)
		eventMgmtVendors.POST("", auth, middleware.Authorize(authz.ResourceEventMgmtVendor, authz.ActionCreate), h.CreateEventMgmtVendor)
		eventMgmtVendors.PUT("/:id", objectID, auth, middleware.Authorize(authz.ResourceEventMgmtVendor, authz.ActionUpdate), h.UpdateEventMgmtVendor)
		eventMgmtVendors.DELETE("/:id", objectID, auth, middleware.Authorize(authz.ResourceEventMgmtVendor, authz.ActionDelete), h.DeleteEventMgmtVendor)
	}
}

// ensureIndexes enforces the global uniqueness of usernames and emails
// on both account collections.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)
	for _, name := range []string{"users", "admins"} {
		_, err := db.Collection(name).Indexes().CreateMany(ctx, []mongo.IndexModel{
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		})
		if err != nil {
			return err
		}
	}
	return nil
}
