package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/harentsoaR/wedding-api/internal/apperror"
	"github.com/harentsoaR/wedding-api/internal/authz"
	"github.com/harentsoaR/wedding-api/internal/models"
)

type CreateBookingRequest struct {
	PackageID   string     `json:"package_id" binding:"required,len=24,hexadecimal"`
	BookingDate *time.Time `json:"booking_date,omitempty"`
	Status      string     `json:"status,omitempty" binding:"omitempty,oneof=Pending Confirmed Cancelled"`
}

type UpdateBookingRequest struct {
	PackageID   *string    `json:"package_id,omitempty" binding:"omitempty,len=24,hexadecimal"`
	BookingDate *time.Time `json:"booking_date,omitempty"`
	Status      *string    `json:"status,omitempty" binding:"omitempty,oneof=Pending Confirmed Cancelled"`
}

func (h *Handler) GetAllBookings(c *gin.Context) {
	collection := h.DB.Collection("bookings")
	cursor, err := collection.Find(c.Request.Context(), bson.M{})
	if err != nil {
		h.fail(c, apperror.Internal("Failed to retrieve bookings"))
		return
	}
	defer cursor.Close(c.Request.Context())

	bookings := make([]models.Booking, 0)
	if err := cursor.All(c.Request.Context(), &bookings); err != nil {
		h.fail(c, apperror.Internal("Failed to decode bookings"))
		return
	}

	c.JSON(http.StatusOK, bookings)
}

func (h *Handler) GetBookingByID(c *gin.Context) {
	bookingID, _ := primitive.ObjectIDFromHex(c.Param("id"))

	var booking models.Booking
	collection := h.DB.Collection("bookings")
	err := collection.FindOne(c.Request.Context(), bson.M{"_id": bookingID}).Decode(&booking)
	if err != nil {
		h.fail(c, apperror.NotFound("Booking not found!"))
		return
	}

	c.JSON(http.StatusOK, booking)
}

// CreateBooking books a wedding package for the calling user. The
// package must exist; the booking insert and the push into the
// package's bookings array run in one transaction.
func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperror.Validation(err.Error()))
		return
	}

	callerID, _ := caller(c)
	userID, _ := primitive.ObjectIDFromHex(callerID)
	packageID, _ := primitive.ObjectIDFromHex(req.PackageID)

	var pkg models.WeddingPackage
	err := h.DB.Collection("weddingPackages").
		FindOne(c.Request.Context(), bson.M{"_id": packageID}).Decode(&pkg)
	if err != nil {
		h.fail(c, apperror.NotFound("Wedding package not found!"))
		return
	}

	now := nowUTC()
	bookingDate := now
	if req.BookingDate != nil {
		bookingDate = *req.BookingDate
	}
	status := req.Status
	if status == "" {
		status = models.BookingPending
	}

	booking := models.Booking{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		PackageID:   packageID,
		BookingDate: bookingDate,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = h.withTransaction(c.Request.Context(), func(sc mongo.SessionContext) error {
		if _, err := h.DB.Collection("bookings").InsertOne(sc, booking); err != nil {
			return err
		}
		_, err := h.DB.Collection("weddingPackages").UpdateOne(
			sc,
			bson.M{"_id": packageID},
			bson.M{"$push": bson.M{"bookings": booking.ID}},
		)
		return err
	})
	if err != nil {
		h.fail(c, apperror.Internal("Failed to create booking"))
		return
	}

	h.notifyBooking(c, userID, &booking, pkg.Name)

	c.JSON(http.StatusCreated, gin.H{"message": "Booking created successfully!", "booking": booking})
}

// UpdateBooking applies a partial update; moving the booking to a new
// package re-homes its id between the two bookings arrays. Owning user
// only.
func (h *Handler) UpdateBooking(c *gin.Context) {
	bookingID, _ := primitive.ObjectIDFromHex(c.Param("id"))
	callerID, role := caller(c)

	var booking models.Booking
	collection := h.DB.Collection("bookings")
	err := collection.FindOne(c.Request.Context(), bson.M{"_id": bookingID}).Decode(&booking)
	if err != nil {
		h.fail(c, apperror.NotFound("Booking not found!"))
		return
	}

	rule := authz.For(authz.ResourceBooking, authz.ActionUpdate)
	if !rule.PermitsOwner(role, callerID, booking.UserID.Hex()) {
		h.fail(c, apperror.Forbidden("Access denied. You can only update your own bookings."))
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperror.Validation(err.Error()))
		return
	}

	update := bson.M{}
	var newPackageID *primitive.ObjectID
	if req.PackageID != nil {
		id, _ := primitive.ObjectIDFromHex(*req.PackageID)
		if id != booking.PackageID {
			var newPkg models.WeddingPackage
			err := h.DB.Collection("weddingPackages").
				FindOne(c.Request.Context(), bson.M{"_id": id}).Decode(&newPkg)
			if err != nil {
				h.fail(c, apperror.NotFound("New wedding package not found"))
				return
			}
			newPackageID = &id
			update["package_id"] = id
		}
	}
	if req.BookingDate != nil {
		update["booking_date"] = *req.BookingDate
	}
	if req.Status != nil {
		update["status"] = *req.Status
	}
	if len(update) == 0 {
		h.fail(c, apperror.Validation("No update fields provided"))
		return
	}
	update["updatedAt"] = nowUTC()

	err = h.withTransaction(c.Request.Context(), func(sc mongo.SessionContext) error {
		if newPackageID != nil {
			packages := h.DB.Collection("weddingPackages")
			if _, err := packages.UpdateOne(
				sc,
				bson.M{"_id": booking.PackageID},
				bson.M{"$pull": bson.M{"bookings": booking.ID}},
			); err != nil {
				return err
			}
			if _, err := packages.UpdateOne(
				sc,
				bson.M{"_id": *newPackageID},
				bson.M{"$push": bson.M{"bookings": booking.ID}},
			); err != nil {
				return err
			}
		}
		return collection.FindOneAndUpdate(
			sc,
			bson.M{"_id": bookingID},
			bson.M{"$set": update},
			afterUpdate(),
		).Decode(&booking)
	})
	if err != nil {
		h.fail(c, apperror.Internal("Failed to update booking"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking updated successfully!", "booking": booking})
}

// DeleteBooking removes a booking and pulls its id from the owning
// package's bookings array in one transaction. Owning user only.
func (h *Handler) DeleteBooking(c *gin.Context) {
	bookingID, _ := primitive.ObjectIDFromHex(c.Param("id"))
	callerID, role := caller(c)

	var booking models.Booking
	collection := h.DB.Collection("bookings")
	err := collection.FindOne(c.Request.Context(), bson.M{"_id": bookingID}).Decode(&booking)
	if err != nil {
		h.fail(c, apperror.NotFound("Booking not found!"))
		return
	}

	rule := authz.For(authz.ResourceBooking, authz.ActionDelete)
	if !rule.PermitsOwner(role, callerID, booking.UserID.Hex()) {
		h.fail(c, apperror.Forbidden("Access denied. You can only delete your own bookings."))
		return
	}

	err = h.withTransaction(c.Request.Context(), func(sc mongo.SessionContext) error {
		if _, err := h.DB.Collection("weddingPackages").UpdateOne(
			sc,
			bson.M{"_id": booking.PackageID},
			bson.M{"$pull": bson.M{"bookings": booking.ID}},
		); err != nil {
			return err
		}
		_, err := collection.DeleteOne(sc, bson.M{"_id": bookingID})
		return err
	})
	if err != nil {
		h.fail(c, apperror.Internal("Failed to delete booking"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully!"})
}

// notifyBooking sends the confirmation SMS; lookup failures only cost
// the notification, never the request.
func (h *Handler) notifyBooking(c *gin.Context, userID primitive.ObjectID, booking *models.Booking, packageName string) {
	var user models.User
	err := h.DB.Collection("users").
		FindOne(c.Request.Context(), bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		h.Log.Warn().Err(err).Str("user_id", userID.Hex()).Msg("booking notification skipped")
		return
	}
	h.NotificationSvc.SendBookingConfirmationSMS(&user, booking, packageName)
}
