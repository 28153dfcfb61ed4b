package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/harentsoaR/wedding-api/internal/apperror"
	"github.com/harentsoaR/wedding-api/internal/models"
	"github.com/harentsoaR/wedding-api/internal/utils"
)

type CreateAdminRequest struct {
	Username       string `json:"username" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=6"`
	ContactDetails string `json:"contact_details" binding:"required"`
}

type UpdateAdminRequest struct {
	Username       *string `json:"username,omitempty"`
	Email          *string `json:"email,omitempty" binding:"omitempty,email"`
	Password       *string `json:"password,omitempty" binding:"omitempty,min=6"`
	ContactDetails *string `json:"contact_details,omitempty"`
}

// CreateAdmin provisions a new administrative account. With
// ADMIN_DUAL_WRITE enabled, a matching role-admin User document is
// inserted in the same transaction.
func (h *Handler) CreateAdmin(c *gin.Context) {
	var req CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperror.Validation(err.Error()))
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		h.fail(c, apperror.Internal("Failed to hash password"))
		return
	}

	now := nowUTC()
	admin := models.Admin{
		ID:             primitive.NewObjectID(),
		Username:       req.Username,
		Email:          req.Email,
		Password:       hashedPassword,
		ContactDetails: req.ContactDetails,
		Role:           models.RoleAdmin,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = h.withTransaction(c.Request.Context(), func(sc mongo.SessionContext) error {
		if _, err := h.DB.Collection("admins").InsertOne(sc, admin); err != nil {
			return err
		}
		if !h.Cfg.AdminDualWrite {
			return nil
		}
		user := models.User{
			ID:             primitive.NewObjectID(),
			Username:       req.Username,
			Email:          req.Email,
			Password:       hashedPassword,
			ContactDetails: req.ContactDetails,
			Role:           models.RoleAdmin,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		_, err := h.DB.Collection("users").InsertOne(sc, user)
		return err
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			h.fail(c, apperror.Conflict("An admin with this username or email already exists"))
			return
		}
		h.fail(c, apperror.Internal("Failed to create admin"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Admin created successfully!",
		"admin": gin.H{
			"id":       admin.ID.Hex(),
			"username": admin.Username,
			"email":    admin.Email,
		},
	})
}

// GetAdminByID returns one admin, password excluded. Admin only.
func (h *Handler) GetAdminByID(c *gin.Context) {
	adminID, _ := primitive.ObjectIDFromHex(c.Param("id"))

	var admin models.Admin
	collection := h.DB.Collection("admins")
	err := collection.FindOne(c.Request.Context(), bson.M{"_id": adminID}).Decode(&admin)
	if err != nil {
		h.fail(c, apperror.NotFound("Admin not found!"))
		return
	}

	c.JSON(http.StatusOK, admin)
}

// UpdateAdmin applies a partial update; a new password is re-hashed.
func (h *Handler) UpdateAdmin(c *gin.Context) {
	var req UpdateAdminRequest
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
	if len(update) == 0 {
		h.fail(c, apperror.Validation("No update fields provided"))
		return
	}
	update["updatedAt"] = nowUTC()

	adminID, _ := primitive.ObjectIDFromHex(c.Param("id"))
	var admin models.Admin
	collection := h.DB.Collection("admins")
	err := collection.FindOneAndUpdate(
		c.Request.Context(),
		bson.M{"_id": adminID},
		bson.M{"$set": update},
		afterUpdate(),
	).Decode(&admin)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			h.fail(c, apperror.NotFound("Admin not found!"))
			return
		}
		h.fail(c, apperror.Internal("Failed to update admin"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Admin updated successfully!", "admin": admin})
}

// DeleteAdmin removes an administrative account. Admin only.
func (h *Handler) DeleteAdmin(c *gin.Context) {
	adminID, _ := primitive.ObjectIDFromHex(c.Param("id"))

	collection := h.DB.Collection("admins")
	result, err := collection.DeleteOne(c.Request.Context(), bson.M{"_id": adminID})
	if err != nil {
		h.fail(c, apperror.Internal("Failed to delete admin"))
		return
	}
	if result.DeletedCount == 0 {
		h.fail(c, apperror.NotFound("Admin not found!"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Admin deleted successfully!"})
}
