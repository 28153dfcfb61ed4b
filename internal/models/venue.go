package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Venue struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Location string             `bson:"location" json:"location"`
	Capacity int                `bson:"capacity" json:"capacity"`
	Price    float64            `bson:"price" json:"price"`
	// Owning event management vendor, recorded as the vendor's user id
	// (the id carried in the caller's token).
	EventManagementVendor primitive.ObjectID `bson:"event_management_vendor" json:"event_management_vendor"`
	CreatedAt             time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt             time.Time          `bson:"updatedAt" json:"updatedAt"`
}
