package store

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service is a tour service published by a provider. ProviderEmail is
// the owning identity and is never modified after insert.
type Service struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ServiceName   string             `bson:"serviceName" json:"serviceName"`
	ProviderEmail string             `bson:"providerEmail" json:"providerEmail"`
	Image         string             `bson:"image" json:"image"`
	TourArea      string             `bson:"tourArea" json:"tourArea"`
	Price         float64            `bson:"price" json:"price"`
	Description   string             `bson:"description" json:"description"`
}

// ServiceUpdate holds the mutable Service fields written by the
// update-by-id operation. The owning providerEmail is deliberately
// absent.
type ServiceUpdate struct {
	ServiceName string  `bson:"serviceName"`
	Image       string  `bson:"image"`
	TourArea    string  `bson:"tourArea"`
	Price       float64 `bson:"price"`
	Description string  `bson:"description"`
}

// Booking is a customer's booking of a provider's service. UserEmail
// (the booker) and ProviderEmail (the service owner) are set at insert
// and never modified; only Status changes afterwards. Bookings are
// never deleted.
type Booking struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UserEmail     string             `bson:"userEmail" json:"userEmail"`
	ProviderEmail string             `bson:"providerEmail" json:"providerEmail"`
	Status        string             `bson:"status" json:"status"` // pending, accepted, rejected
	ServiceID     string             `bson:"serviceId,omitempty" json:"serviceId,omitempty"`
	ServiceName   string             `bson:"serviceName,omitempty" json:"serviceName,omitempty"`
	ServiceImage  string             `bson:"serviceImage,omitempty" json:"serviceImage,omitempty"`
	Price         float64            `bson:"price,omitempty" json:"price,omitempty"`
	BookingDate   string             `bson:"bookingDate,omitempty" json:"bookingDate,omitempty"`
	SpecialNote   string             `bson:"specialNote,omitempty" json:"specialNote,omitempty"`
}

// InsertResult echoes a storage insertion outcome to the caller
type InsertResult struct {
	InsertedID string `json:"insertedId"`
}

// UpdateResult echoes a storage mutation outcome to the caller
type UpdateResult struct {
	MatchedCount  int64  `json:"matchedCount"`
	ModifiedCount int64  `json:"modifiedCount"`
	UpsertedID    string `json:"upsertedId,omitempty"`
}

// DeleteResult echoes a storage deletion outcome to the caller.
// Deleting an id that no longer exists yields DeletedCount zero, not an
// error.
type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}
