package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WeddingPackage struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64            `bson:"price" json:"price"`
	Capacity    int                `bson:"capacity" json:"capacity"`
	// User id of the event management vendor that created the package.
	CreatedBy primitive.ObjectID   `bson:"createdBy" json:"createdBy"`
	Bookings  []primitive.ObjectID `bson:"bookings" json:"bookings"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt" json:"updatedAt"`
}
