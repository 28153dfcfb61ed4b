package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/harentsoaR/wedding-api/internal/apperror"
	"github.com/harentsoaR/wedding-api/internal/models"
	"github.com/harentsoaR/wedding-api/internal/utils"
)

type RegisterUserRequest struct {
	Username       string `json:"username" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=6"`
	ContactDetails string `json:"contact_details" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=user admin eventMgmtVendor"`
}

// RegisterUser creates a new account with role "user".
func (h *Handler) RegisterUser(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperror.Validation(err.Error()))
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		h.fail(c, apperror.Internal("Failed to hash password"))
		return
	}

	now := time.Now()
	user := models.User{
		ID:             primitive.NewObjectID(),
		Username:       req.Username,
		Email:          req.Email,
		Password:       hashedPassword,
		ContactDetails: req.ContactDetails,
		Role:           models.RoleUser,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	collection := h.DB.Collection("users")
	if _, err := collection.InsertOne(c.Request.Context(), user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			h.fail(c, apperror.Conflict("An account with this username or email already exists"))
			return
		}
		h.fail(c, apperror.Internal("User registration failed!"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully!"})
}

// Login checks email, password and the claimed role, then issues a
// one-hour token and the role's dashboard redirect.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperror.Validation(err.Error()))
		return
	}

	var user models.User
	collection := h.DB.Collection("users")
	err := collection.FindOne(c.Request.Context(), bson.M{"email": req.Email}).Decode(&user)
	if err != nil {
		h.fail(c, apperror.NotFound("User not found!"))
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		h.fail(c, apperror.InvalidCredential(http.StatusBadRequest, "Invalid credentials!"))
		return
	}

	if user.Role != req.Role {
		h.fail(c, apperror.Forbidden("Invalid role for this user!"))
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Role)
	if err != nil {
		h.fail(c, apperror.Internal("Login failed!"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":        token,
		"userId":       user.ID.Hex(),
		"role":         user.Role,
		"dashboardUrl": DashboardURL(user.Role),
	})
}

// DashboardURL maps a role to its post-login redirect.
func DashboardURL(role string) string {
	switch role {
	case models.RoleAdmin:
		return "/admin-dashboard"
	case models.RoleEventMgmtVendor:
		return "/vendor-dashboard"
	default:
		return "/user-dashboard"
	}
}
