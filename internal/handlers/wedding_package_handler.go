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
)

type CreatePackageRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price" binding:"required,gte=0"`
	Capacity    int     `json:"capacity" binding:"required,gt=0"`
}

type UpdatePackageRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty" binding:"omitempty,gte=0"`
	Capacity    *int     `json:"capacity,omitempty" binding:"omitempty,gt=0"`
}

func (h *Handler) GetAllPackages(c *gin.Context) {
	collection := h.DB.Collection("weddingPackages")
	cursor, err := collection.Find(c.Request.Context(), bson.M{})
	if err != nil {
		h.fail(c, apperror.Internal("Failed to retrieve packages"))
		return
	}
	defer cursor.Close(c.Request.Context())

	packages := make([]models.WeddingPackage, 0)
	if err := cursor.All(c.Request.Context(), &packages); err != nil {
		h.fail(c, apperror.Internal("Failed to decode packages"))
		return
	}

	c.JSON(http.StatusOK, packages)
}

func (h *Handler) GetPackageByID(c *gin.Context) {
	packageID, _ := primitive.ObjectIDFromHex(c.Param("id"))

	var pkg models.WeddingPackage
	collection := h.DB.Collection("weddingPackages")
	err := collection.FindOne(c.Request.Context(), bson.M{"_id": packageID}).Decode(&pkg)
	if err != nil {
		h.fail(c, apperror.NotFound("Package not found!"))
		return
	}

	c.JSON(http.StatusOK, pkg)
}

// CreatePackage inserts a wedding package created by the calling event
// management vendor and records it on the vendor's wedding_packages
// array, both in one transaction.
func (h *Handler) CreatePackage(c *gin.Context) {
	var req CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperror.Validation(err.Error()))
		return
	}

	callerID, _ := caller(c)
	creatorID, _ := primitive.ObjectIDFromHex(callerID)

	now := nowUTC()
	pkg := models.WeddingPackage{
		ID:          primitive.NewObjectID(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Capacity:    req.Capacity,
		CreatedBy:   creatorID,
		Bookings:    []primitive.ObjectID{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := h.withTransaction(c.Request.Context(), func(sc mongo.SessionContext) error {
		result, err := h.DB.Collection("eventManagementVendors").UpdateOne(
			sc,
			bson.M{"user_id": creatorID},
			bson.M{"$push": bson.M{"wedding_packages": pkg.ID}, "$set": bson.M{"updatedAt": now}},
		)
		if err != nil {
			return err
		}
		if result.MatchedCount == 0 {
			return apperror.NotFound("Event Management Vendor not found.")
		}
		_, err = h.DB.Collection("weddingPackages").InsertOne(sc, pkg)
		return err
	})
	if err != nil {
		if appErr, ok := err.(*apperror.Error); ok {
			h.fail(c, appErr)
			return
		}
		h.fail(c, apperror.Internal("Failed to create package"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Wedding package created successfully!", "package": pkg})
}

// UpdatePackage applies a partial update. Creator only.
func (h *Handler) UpdatePackage(c *gin.Context) {
	packageID, _ := primitive.ObjectIDFromHex(c.Param("id"))
	callerID, role := caller(c)

	var pkg models.WeddingPackage
	collection := h.DB.Collection("weddingPackages")
	err := collection.FindOne(c.Request.Context(), bson.M{"_id": packageID}).Decode(&pkg)
	if err != nil {
		h.fail(c, apperror.NotFound("Package not found!"))
		return
	}

	rule := authz.For(authz.ResourceWeddingPackage, authz.ActionUpdate)
	if !rule.PermitsOwner(role, callerID, pkg.CreatedBy.Hex()) {
		h.fail(c, apperror.Forbidden("Access denied. Only the creator can update."))
		return
	}

	var req UpdatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperror.Validation(err.Error()))
		return
	}

	update := bson.M{}
	if req.Name != nil {
		update["name"] = *req.Name
	}
	if req.Description != nil {
		update["description"] = *req.Description
	}
	if req.Price != nil {
		update["price"] = *req.Price
	}
	if req.Capacity != nil {
		update["capacity"] = *req.Capacity
	}
	if len(update) == 0 {
		h.fail(c, apperror.Validation("No update fields provided"))
		return
	}
	update["updatedAt"] = nowUTC()

	err = collection.FindOneAndUpdate(
		c.Request.Context(),
		bson.M{"_id": packageID},
		bson.M{"$set": update},
		afterUpdate(),
	).Decode(&pkg)
	if err != nil {
		h.fail(c, apperror.Internal("Failed to update package"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Wedding package updated successfully!", "package": pkg})
}

// DeletePackage removes a package and pulls its id from the creator's
// wedding_packages array in one transaction. Creator only.
func (h *Handler) DeletePackage(c *gin.Context) {
	packageID, _ := primitive.ObjectIDFromHex(c.Param("id"))
	callerID, role := caller(c)

	var pkg models.WeddingPackage
	collection := h.DB.Collection("weddingPackages")
	err := collection.FindOne(c.Request.Context(), bson.M{"_id": packageID}).Decode(&pkg)
	if err != nil {
		h.fail(c, apperror.NotFound("Package not found!"))
		return
	}

	rule := authz.For(authz.ResourceWeddingPackage, authz.ActionDelete)
	if !rule.PermitsOwner(role, callerID, pkg.CreatedBy.Hex()) {
		h.fail(c, apperror.Forbidden("Access denied. Only the creator can delete."))
		return
	}

	err = h.withTransaction(c.Request.Context(), func(sc mongo.SessionContext) error {
		_, err := h.DB.Collection("eventManagementVendors").UpdateOne(
			sc,
			bson.M{"user_id": pkg.CreatedBy},
			bson.M{"$pull": bson.M{"wedding_packages": packageID}},
		)
		if err != nil {
			return err
		}
		_, err = h.DB.Collection("weddingPackages").DeleteOne(sc, bson.M{"_id": packageID})
		return err
	})
	if err != nil {
		h.fail(c, apperror.Internal("Failed to delete package"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Wedding package deleted successfully!"})
}
