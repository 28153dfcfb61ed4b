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

type CreateVendorRequest struct {
	Name           string `json:"name" binding:"required"`
	ServiceType    string `json:"service_type" binding:"required"`
	ContactDetails string `json:"contact_details,omitempty"`
}

type UpdateVendorRequest struct {
	Name           *string `json:"name,omitempty"`
	ServiceType    *string `json:"service_type,omitempty"`
	ContactDetails *string `json:"contact_details,omitempty"`
}

func (h *Handler) GetAllVendors(c *gin.Context) {
	collection := h.DB.Collection("vendors")
	cursor, err := collection.Find(c.Request.Context(), bson.M{})
	if err != nil {
		h.fail(c, apperror.Internal("Failed to retrieve vendors"))
		return
	}
	defer cursor.Close(c.Request.Context())

	vendors := make([]models.Vendor, 0)
	if err := cursor.All(c.Request.Context(), &vendors); err != nil {
		h.fail(c, apperror.Internal("Failed to decode vendors"))
		return
	}

	c.JSON(http.StatusOK, vendors)
}

func (h *Handler) GetVendorByID(c *gin.Context) {
	vendorID, _ := primitive.ObjectIDFromHex(c.Param("id"))

	var vendor models.Vendor
	collection := h.DB.Collection("vendors")
	err := collection.FindOne(c.Request.Context(), bson.M{"_id": vendorID}).Decode(&vendor)
	if err != nil {
		h.fail(c, apperror.NotFound("Vendor not found!"))
		return
	}

	c.JSON(http.StatusOK, vendor)
}

// CreateVendor inserts a sub-vendor. When the caller is an event
// management vendor, their EventManagementVendor document is linked to
// the new vendor in the same transaction.
func (h *Handler) CreateVendor(c *gin.Context) {
	var req CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperror.Validation(err.Error()))
		return
	}

	callerID, role := caller(c)
	now := nowUTC()
	vendor := models.Vendor{
		ID:             primitive.NewObjectID(),
		Name:           req.Name,
		ServiceType:    req.ServiceType,
		ContactDetails: req.ContactDetails,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := h.withTransaction(c.Request.Context(), func(sc mongo.SessionContext) error {
		if _, err := h.DB.Collection("vendors").InsertOne(sc, vendor); err != nil {
			return err
		}
		if role != models.RoleEventMgmtVendor {
			return nil
		}
		userID, _ := primitive.ObjectIDFromHex(callerID)
		result, err := h.DB.Collection("eventManagementVendors").UpdateOne(
			sc,
			bson.M{"user_id": userID},
			bson.M{"$set": bson.M{"vendor_id": vendor.ID, "updatedAt": now}},
		)
		if err != nil {
			return err
		}
		if result.MatchedCount == 0 {
			return apperror.NotFound("Event Management Vendor not found.")
		}
		return nil
	})
	if err != nil {
		if appErr, ok := err.(*apperror.Error); ok {
			h.fail(c, appErr)
			return
		}
		h.fail(c, apperror.Internal("Failed to create vendor"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Vendor created successfully!", "vendor": vendor})
}

func (h *Handler) UpdateVendor(c *gin.Context) {
	var req UpdateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperror.Validation(err.Error()))
		return
	}

	update := bson.M{}
	if req.Name != nil {
		update["name"] = *req.Name
	}
	if req.ServiceType != nil {
		update["service_type"] = *req.ServiceType
	}
	if req.ContactDetails != nil {
		update["contact_details"] = *req.ContactDetails
	}
	if len(update) == 0 {
		h.fail(c, apperror.Validation("No update fields provided"))
		return
	}
	update["updatedAt"] = nowUTC()

	vendorID, _ := primitive.ObjectIDFromHex(c.Param("id"))
	var vendor models.Vendor
	collection := h.DB.Collection("vendors")
	err := collection.FindOneAndUpdate(
		c.Request.Context(),
		bson.M{"_id": vendorID},
		bson.M{"$set": update},
		afterUpdate(),
	).Decode(&vendor)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			h.fail(c, apperror.NotFound("Vendor not found!"))
			return
		}
		h.fail(c, apperror.Internal("Failed to update vendor"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vendor updated successfully!", "vendor": vendor})
}

// DeleteVendor removes a sub-vendor. An event management vendor caller
// that was linked to it has its vendor_id cleared in the same
// transaction.
func (h *Handler) DeleteVendor(c *gin.Context) {
	vendorID, _ := primitive.ObjectIDFromHex(c.Param("id"))
	callerID, role := caller(c)

	var vendor models.Vendor
	collection := h.DB.Collection("vendors")
	err := collection.FindOne(c.Request.Context(), bson.M{"_id": vendorID}).Decode(&vendor)
	if err != nil {
		h.fail(c, apperror.NotFound("Vendor not found!"))
		return
	}

	err = h.withTransaction(c.Request.Context(), func(sc mongo.SessionContext) error {
		if role == models.RoleEventMgmtVendor {
			userID, _ := primitive.ObjectIDFromHex(callerID)
			_, err := h.DB.Collection("eventManagementVendors").UpdateOne(
				sc,
				bson.M{"user_id": userID, "vendor_id": vendorID},
				bson.M{"$unset": bson.M{"vendor_id": ""}},
			)
			if err != nil {
				return err
			}
		}
		_, err := h.DB.Collection("vendors").DeleteOne(sc, bson.M{"_id": vendorID})
		return err
	})
	if err != nil {
		h.fail(c, apperror.Internal("Failed to delete vendor"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vendor deleted successfully!"})
}
