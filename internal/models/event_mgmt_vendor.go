package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventManagementVendor links a User account (role eventMgmtVendor) to the
// Vendor it manages and denormalizes the ids of its packages and venues.
// The arrays mirror WeddingPackage.createdBy and Venue.event_management_vendor
// and every mutating handler keeps both sides in step.
type EventManagementVendor struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID   `bson:"user_id" json:"user_id"`
	VendorID        primitive.ObjectID   `bson:"vendor_id,omitempty" json:"vendor_id,omitempty"`
	WeddingPackages []primitive.ObjectID `bson:"wedding_packages" json:"wedding_packages"`
	Venues          []primitive.ObjectID `bson:"venues" json:"venues"`
	CreatedAt       time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time            `bson:"updatedAt" json:"updatedAt"`
}
