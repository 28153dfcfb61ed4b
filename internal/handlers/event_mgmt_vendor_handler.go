package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/harentsoaR/wedding-api/internal/apperror"
	"github.com/harentsoaR/wedding-api/internal/models"
)

type CreateEventMgmtVendorRequest struct {
	UserID   string `json:"user_id" binding:"required,len=24,hexadecimal"`
	VendorID string `json:"vendor_id" binding:"required,len=24,hexadecimal"`
}

type UpdateEventMgmtVendorRequest struct {
	UserID   *string `json:"user_id,omitempty" binding:"omitempty,len=24,hexadecimal"`
	VendorID *string `json:"vendor_id,omitempty" binding:"omitempty,len=24,hexadecimal"`
}

// Expanded representation returned by list/get: the reference fields
// are replaced inline with trimmed related documents.
type eventMgmtVendorView struct {
	ID              primitive.ObjectID `bson:"_id" json:"id"`
	User            *userSummary       `bson:"user,omitempty" json:"user,omitempty"`
	Vendor          *vendorSummary     `bson:"vendor,omitempty" json:"vendor,omitempty"`
	WeddingPackages []packageSummary   `bson:"wedding_packages" json:"wedding_packages"`
	Venues          []venueSummary     `bson:"venues" json:"venues"`
}

type userSummary struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	Username string             `bson:"username" json:"username"`
	Email    string             `bson:"email" json:"email"`
}

type vendorSummary struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	ServiceType string             `bson:"service_type" json:"service_type"`
}

type packageSummary struct {
	ID    primitive.ObjectID `bson:"_id" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Price float64            `bson:"price" json:"price"`
}

type venueSummary struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Location string             `bson:"location" json:"location"`
	Capacity int                `bson:"capacity" json:"capacity"`
}

// populatePipeline expands user_id, vendor_id and the two id arrays
// into their referenced documents, trimmed to the fields the clients
// consume.
func populatePipeline(match bson.M) mongo.Pipeline {
	pipeline := mongo.Pipeline{}
	if len(match) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$lookup", Value: bson.M{
			"from": "users", "localField": "user_id", "foreignField": "_id", "as": "user",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{"path": "$user", "preserveNullAndEmptyArrays": true}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from": "vendors", "localField": "vendor_id", "foreignField": "_id", "as": "vendor",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{"path": "$vendor", "preserveNullAndEmptyArrays": true}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from": "weddingPackages", "localField": "wedding_packages", "foreignField": "_id", "as": "wedding_packages",
		}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from": "venues", "localField": "venues", "foreignField": "_id", "as": "venues",
		}}},
	)
	return pipeline
}

// GetAllEventMgmtVendors lists vendors with related documents expanded.
func (h *Handler) GetAllEventMgmtVendors(c *gin.Context) {
	collection := h.DB.Collection("eventManagementVendors")
	cursor, err := collection.Aggregate(c.Request.Context(), populatePipeline(nil))
	if err != nil {
		h.fail(c, apperror.Internal("Failed to retrieve event management vendors"))
		return
	}
	defer cursor.Close(c.Request.Context())

	vendors := make([]eventMgmtVendorView, 0)
	if err := cursor.All(c.Request.Context(), &vendors); err != nil {
		h.fail(c, apperror.Internal("Failed to decode event management vendors"))
		return
	}

	c.JSON(http.StatusOK, vendors)
}

func (h *Handler) GetEventMgmtVendorByID(c *gin.Context) {
	vendorID, _ := primitive.ObjectIDFromHex(c.Param("id"))

	collection := h.DB.Collection("eventManagementVendors")
	cursor, err := collection.Aggregate(c.Request.Context(), populatePipeline(bson.M{"_id": vendorID}))
	if err != nil {
		h.fail(c, apperror.Internal("Failed to retrieve event management vendor"))
		return
	}
	defer cursor.Close(c.Request.Context())

	var vendors []eventMgmtVendorView
	if err := cursor.All(c.Request.Context(), &vendors); err != nil {
		h.fail(c, apperror.Internal("Failed to decode event management vendor"))
		return
	}
	if len(vendors) == 0 {
		h.fail(c, apperror.NotFound("Event Management Vendor not found!"))
		return
	}

	c.JSON(http.StatusOK, vendors[0])
}

// CreateEventMgmtVendor links a user account to a vendor. Admin only.
// One document per user: a second create for the same user_id is
// rejected.
func (h *Handler) CreateEventMgmtVendor(c *gin.Context) {
	var req CreateEventMgmtVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperror.Validation(err.Error()))
		return
	}

	userID, _ := primitive.ObjectIDFromHex(req.UserID)
	vendorID, _ := primitive.ObjectIDFromHex(req.VendorID)

	collection := h.DB.Collection("eventManagementVendors")
	count, err := collection.CountDocuments(c.Request.Context(), bson.M{"user_id": userID})
	if err != nil {
		h.fail(c, apperror.Internal("Failed to create event management vendor"))
		return
	}
	if count > 0 {
		h.fail(c, apperror.Conflict("An event management vendor already exists for this user."))
		return
	}

	now := nowUTC()
	vendor := models.EventManagementVendor{
		ID:              primitive.NewObjectID(),
		UserID:          userID,
		VendorID:        vendorID,
		WeddingPackages: []primitive.ObjectID{},
		Venues:          []primitive.ObjectID{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := collection.InsertOne(c.Request.Context(), vendor); err != nil {
		h.fail(c, apperror.Internal("Failed to create event management vendor"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Event Management Vendor created successfully!",
		"vendor":  vendor,
	})
}

func (h *Handler) UpdateEventMgmtVendor(c *gin.Context) {
	var req UpdateEventMgmtVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperror.Validation(err.Error()))
		return
	}

	update := bson.M{}
	if req.UserID != nil {
		userID, _ := primitive.ObjectIDFromHex(*req.UserID)
		update["user_id"] = userID
	}
	if req.VendorID != nil {
		vendorID, _ := primitive.ObjectIDFromHex(*req.VendorID)
		update["vendor_id"] = vendorID
	}
	if len(update) == 0 {
		h.fail(c, apperror.Validation("No update fields provided"))
		return
	}
	update["updatedAt"] = nowUTC()

	id, _ := primitive.ObjectIDFromHex(c.Param("id"))
	var vendor models.EventManagementVendor
	collection := h.DB.Collection("eventManagementVendors")
	err := collection.FindOneAndUpdate(
		c.Request.Context(),
		bson.M{"_id": id},
		bson.M{"$set": update},
		afterUpdate(),
	).Decode(&vendor)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			h.fail(c, apperror.NotFound("Event Management Vendor not found!"))
			return
		}
		h.fail(c, apperror.Internal("Failed to update event management vendor"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event Management Vendor updated successfully!",
		"vendor":  vendor,
	})
}

func (h *Handler) DeleteEventMgmtVendor(c *gin.Context) {
	id, _ := primitive.ObjectIDFromHex(c.Param("id"))

	collection := h.DB.Collection("eventManagementVendors")
	result, err := collection.DeleteOne(c.Request.Context(), bson.M{"_id": id})
	if err != nil {
		h.fail(c, apperror.Internal("Failed to delete event management vendor"))
		return
	}
	if result.DeletedCount == 0 {
		h.fail(c, apperror.NotFound("Event Management Vendor not found!"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event Management Vendor deleted successfully!"})
}
