package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vendor is a sub-vendor (caterer, florist, ...) managed through an
// EventManagementVendor. It carries no owner reference itself.
type Vendor struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	ServiceType    string             `bson:"service_type" json:"service_type"`
	ContactDetails string             `bson:"contact_details,omitempty" json:"contact_details,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}
