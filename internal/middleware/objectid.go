package middleware

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/wedding-api/internal/apperror"
)

// RequireObjectID rejects requests whose named path parameter is not a
// valid 24-character hex ObjectId, before the handler runs.
func RequireObjectID(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := primitive.ObjectIDFromHex(c.Param(param)); err != nil {
			Abort(c, apperror.Validation("Invalid id format."))
			return
		}
		c.Next()
	}
}
