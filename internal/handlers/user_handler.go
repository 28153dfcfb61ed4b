package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/harentsoaR/wedding-api/internal/apperror"
	"github.com/harentsoaR/wedding-api/internal/authz"
	"github.com/harentsoaR/wedding-api/internal/models"
	"github.com/harentsoaR/wedding-api/internal/utils"
)

type UpdateUserRequest struct {
	Username       *string `json:"username,omitempty"`
	Email          *string `json:"email,omitempty" binding:"omitempty,email"`
	Password       *string `json:"password,omitempty" binding:"omitempty,min=6"`
	ContactDetails *string `json:"contact_details,omitempty"`
	Role           *string `json:"role,omitempty" binding:"omitempty,oneof=user admin eventMgmtVendor"`
}

// GetAllUsers lists every account. Admin only, enforced at the route.
func (h *Handler) GetAllUsers(c *gin.Context) {
	collection := h.DB.Collection("users")
	cursor, err := collection.Find(c.Request.Context(), bson.M{})
	if err != nil {
		h.fail(c, apperror.Internal("Failed to retrieve users"))
		return
	}
	defer cursor.Close(c.Request.Context())

	users := make([]models.User, 0)
	if err := cursor.All(c.Request.Context(), &users); err != nil {
		h.fail(c, apperror.Internal("Failed to decode users"))
		return
	}

	c.JSON(http.StatusOK, users)
}

// GetUserByID returns one account; callers may only read themselves
// unless they are an admin.
func (h *Handler) GetUserByID(c *gin.Context) {
	callerID, role := caller(c)
	rule := authz.For(authz.ResourceUser, authz.ActionGet)
	if !rule.PermitsOwner(role, callerID, c.Param("id")) {
		h.fail(c, apperror.Forbidden("Access denied."))
		return
	}

	userID, _ := primitive.ObjectIDFromHex(c.Param("id"))
	var user models.User
	collection := h.DB.Collection("users")
	err := collection.FindOne(c.Request.Context(), bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		h.fail(c, apperror.NotFound("User not found!"))
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateUser applies a partial update to an account. Self or admin.
func (h *Handler) UpdateUser(c *gin.Context) {
	callerID, role := caller(c)
	rule := authz.For(authz.ResourceUser, authz.ActionUpdate)
	if !rule.PermitsOwner(role, callerID, c.Param("id")) {
		h.fail(c, apperror.Forbidden("Access denied."))
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperror.Validation(err.Error()))
		return
	}

	update := bson.M{}
	if req.Username != nil {
		update["username"] = *req.Username
	}
	if req.Email != nil {
		update["email"] = *req.Email
	}
	if req.Password != nil {
		hashed, err := utils.HashPassword(*req.Password)
		if err != nil {
			h.fail(c, apperror.Internal("Failed to hash password"))
			return
		}
		update["password"] = hashed
	}
	if req.ContactDetails != nil {
		update["contact_details"] = *req.ContactDetails
	}
	if req.Role != nil {
		update["role"] = *req.Role
	}
	if len(update) == 0 {
		h.fail(c, apperror.Validation("No update fields provided"))
		return
	}
	update["updatedAt"] = nowUTC()

	userID, _ := primitive.ObjectIDFromHex(c.Param("id"))
	collection := h.DB.Collection("users")
	var user models.User
	err := collection.FindOneAndUpdate(
		c.Request.Context(),
		bson.M{"_id": userID},
		bson.M{"$set": update},
		afterUpdate(),
	).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			h.fail(c, apperror.NotFound("User not found!"))
			return
		}
		if mongo.IsDuplicateKeyError(err) {
			h.fail(c, apperror.Conflict("Username or email already in use"))
			return
		}
		h.fail(c, apperror.Internal("Failed to update user"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully!", "user": user})
}

// DeleteUser removes an account. Self or admin.
func (h *Handler) DeleteUser(c *gin.Context) {
	callerID, role := caller(c)
	rule := authz.For(authz.ResourceUser, authz.ActionDelete)
	if !rule.PermitsOwner(role, callerID, c.Param("id")) {
		h.fail(c, apperror.Forbidden("Access denied."))
		return
	}

	userID, _ := primitive.ObjectIDFromHex(c.Param("id"))
	collection := h.DB.Collection("users")
	result, err := collection.DeleteOne(c.Request.Context(), bson.M{"_id": userID})
	if err != nil {
		h.fail(c, apperror.Internal("Failed to delete user"))
		return
	}
	if result.DeletedCount == 0 {
		h.fail(c, apperror.NotFound("User not found!"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully!"})
}
