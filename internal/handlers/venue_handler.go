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

type CreateVenueRequest struct {
	Name     string  `json:"name" binding:"required"`
	Location string  `json:"location" binding:"required"`
	Capacity int     `json:"capacity" binding:"required,gt=0"`
	Price    float64 `json:"price" binding:"gte=0"`
}

type UpdateVenueRequest struct {
	Name     *string  `json:"name,omitempty"`
	Location *string  `json:"location,omitempty"`
	Capacity *int     `json:"capacity,omitempty" binding:"omitempty,gt=0"`
	Price    *float64 `json:"price,omitempty" binding:"omitempty,gte=0"`
}

func (h *Handler) GetAllVenues(c *gin.Context) {
	collection := h.DB.Collection("venues")
	cursor, err := collection.Find(c.Request.Context(), bson.M{})
	if err != nil {
		h.fail(c, apperror.Internal("Failed to retrieve venues"))
		return
	}
	defer cursor.Close(c.Request.Context())

	venues := make([]models.Venue, 0)
	if err := cursor.All(c.Request.Context(), &venues); err != nil {
		h.fail(c, apperror.Internal("Failed to decode venues"))
		return
	}

	c.JSON(http.StatusOK, venues)
}

func (h *Handler) GetVenueByID(c *gin.Context) {
	venueID, _ := primitive.ObjectIDFromHex(c.Param("id"))

	var venue models.Venue
	collection := h.DB.Collection("venues")
	err := collection.FindOne(c.Request.Context(), bson.M{"_id": venueID}).Decode(&venue)
	if err != nil {
		h.fail(c, apperror.NotFound("Venue not found!"))
		return
	}

	c.JSON(http.StatusOK, venue)
}

// CreateVenue inserts a venue owned by the calling event management
// vendor and pushes its id into the vendor's venues array, both in one
// transaction.
func (h *Handler) CreateVenue(c *gin.Context) {
	var req CreateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperror.Validation(err.Error()))
		return
	}

	callerID, _ := caller(c)
	ownerID, _ := primitive.ObjectIDFromHex(callerID)

	now := nowUTC()
	venue := models.Venue{
		ID:                    primitive.NewObjectID(),
		Name:                  req.Name,
		Location:              req.Location,
		Capacity:              req.Capacity,
		Price:                 req.Price,
		EventManagementVendor: ownerID,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	err := h.withTransaction(c.Request.Context(), func(sc mongo.SessionContext) error {
		result, err := h.DB.Collection("eventManagementVendors").UpdateOne(
			sc,
			bson.M{"user_id": ownerID},
			bson.M{"$push": bson.M{"venues": venue.ID}, "$set": bson.M{"updatedAt": now}},
		)
		if err != nil {
			return err
		}
		if result.MatchedCount == 0 {
			return apperror.NotFound("Event Management Vendor not found.")
		}
		_, err = h.DB.Collection("venues").InsertOne(sc, venue)
		return err
	})
	if err != nil {
		if appErr, ok := err.(*apperror.Error); ok {
			h.fail(c, appErr)
			return
		}
		h.fail(c, apperror.Internal("Failed to create venue"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Venue created successfully!", "venue": venue})
}

// UpdateVenue applies a partial update; only the creating vendor may
// touch it.
func (h *Handler) UpdateVenue(c *gin.Context) {
	venueID, _ := primitive.ObjectIDFromHex(c.Param("id"))
	callerID, role := caller(c)

	var venue models.Venue
	collection := h.DB.Collection("venues")
	err := collection.FindOne(c.Request.Context(), bson.M{"_id": venueID}).Decode(&venue)
	if err != nil {
		h.fail(c, apperror.NotFound("Venue not found!"))
		return
	}

	rule := authz.For(authz.ResourceVenue, authz.ActionUpdate)
	if !rule.PermitsOwner(role, callerID, venue.EventManagementVendor.Hex()) {
		h.fail(c, apperror.Forbidden("Access denied. You can only update venues you created."))
		return
	}

	var req UpdateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperror.Validation(err.Error()))
		return
	}

	update := bson.M{}
	if req.Name != nil {
		update["name"] = *req.Name
	}
	if req.Location != nil {
		update["location"] = *req.Location
	}
	if req.Capacity != nil {
		update["capacity"] = *req.Capacity
	}
	if req.Price != nil {
		update["price"] = *req.Price
	}
	if len(update) == 0 {
		h.fail(c, apperror.Validation("No update fields provided"))
		return
	}
	update["updatedAt"] = nowUTC()

	err = collection.FindOneAndUpdate(
		c.Request.Context(),
		bson.M{"_id": venueID},
		bson.M{"$set": update},
		afterUpdate(),
	).Decode(&venue)
	if err != nil {
		h.fail(c, apperror.Internal("Failed to update venue"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Venue updated successfully!", "venue": venue})
}

// DeleteVenue removes a venue and pulls its id from the owning
// vendor's venues array in one transaction. Creator only.
func (h *Handler) DeleteVenue(c *gin.Context) {
	venueID, _ := primitive.ObjectIDFromHex(c.Param("id"))
	callerID, role := caller(c)

	var venue models.Venue
	collection := h.DB.Collection("venues")
	err := collection.FindOne(c.Request.Context(), bson.M{"_id": venueID}).Decode(&venue)
	if err != nil {
		h.fail(c, apperror.NotFound("Venue not found!"))
		return
	}

	rule := authz.For(authz.ResourceVenue, authz.ActionDelete)
	if !rule.PermitsOwner(role, callerID, venue.EventManagementVendor.Hex()) {
		h.fail(c, apperror.Forbidden("Access denied. You can only delete venues you created."))
		return
	}

	err = h.withTransaction(c.Request.Context(), func(sc mongo.SessionContext) error {
		_, err := h.DB.Collection("eventManagementVendors").UpdateOne(
			sc,
			bson.M{"user_id": venue.EventManagementVendor},
			bson.M{"$pull": bson.M{"venues": venueID}},
		)
		if err != nil {
			return err
		}
		_, err = h.DB.Collection("venues").DeleteOne(sc, bson.M{"_id": venueID})
		return err
	})
	if err != nil {
		h.fail(c, apperror.Internal("Failed to delete venue"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Venue deleted successfully!"})
}
