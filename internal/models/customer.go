package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Customer is a business the user runs campaigns for.
type Customer struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID      string             `bson:"userId" json:"userId"`
	Name        string             `bson:"name" json:"name"`
	WebsiteURL  string             `bson:"websiteUrl" json:"websiteUrl"`
	PhoneNumber string             `bson:"phoneNumber" json:"phoneNumber"`
	Sector      string             `bson:"sector" json:"sector"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CustomerRequest is the payload for creating or updating a customer.
type CustomerRequest struct {
	Name        string `json:"name" binding:"required"`
	WebsiteURL  string `json:"websiteUrl"`
	PhoneNumber string `json:"phoneNumber"`
	Sector      string `json:"sector"`
}
