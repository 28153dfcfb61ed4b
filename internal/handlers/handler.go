package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harentsoaR/wedding-api/internal/config"
	"github.com/harentsoaR/wedding-api/internal/middleware"
	"github.com/harentsoaR/wedding-api/internal/services"
)

// Handler carries the dependencies shared by every resource controller.
type Handler struct {
	DB              *mongo.Database
	Cfg             *config.Config
	Log             zerolog.Logger
	NotificationSvc *services.NotificationService
}

func NewHandler(db *mongo.Database, cfg *config.Config, log zerolog.Logger, notificationSvc *services.NotificationService) *Handler {
	return &Handler{
		DB:              db,
		Cfg:             cfg,
		Log:             log,
		NotificationSvc: notificationSvc,
	}
}

// fail forwards err to the error pipeline and stops the handler chain.
func (h *Handler) fail(c *gin.Context, err error) {
	middleware.Abort(c, err)
}

// caller returns the authenticated caller's id and role from the
// context, as set by the auth middleware.
func caller(c *gin.Context) (id, role string) {
	return c.GetString(middleware.ContextUserID), c.GetString(middleware.ContextUserRole)
}

func nowUTC() time.Time {
	return time.Now().UTC()
}

// afterUpdate makes FindOneAndUpdate return the post-update document.
func afterUpdate() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}

// withTransaction runs fn inside a Mongo transaction so that paired
// writes (document + back-reference array) either both land or neither
// does.
func (h *Handler) withTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	session, err := h.DB.Client().StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
