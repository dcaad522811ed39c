package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CampaignStatus represents the lifecycle state of a campaign.
type CampaignStatus string

const (
	StatusDraft     CampaignStatus = "Draft"
	StatusScheduled CampaignStatus = "Scheduled"
	StatusActive    CampaignStatus = "Active"
	StatusCompleted CampaignStatus = "Completed"
)

// Campaign represents a promotional SMS campaign. Status only ever moves
// forward: Draft -> Scheduled -> Active -> Completed.
type Campaign struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID       string             `bson:"userId" json:"userId"`
	CustomerID   string             `bson:"customerId" json:"customerId"`
	Name         string             `bson:"name" json:"name"`
	Products     []string           `bson:"products" json:"products"`
	DiscountRate int                `bson:"discountRate" json:"discountRate"`
	StartDate    CalendarDate       `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate      CalendarDate       `bson:"endDate,omitempty" json:"endDate,omitempty"`
	Status       CampaignStatus     `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CreateCampaignRequest is the payload for creating a campaign.
type CreateCampaignRequest struct {
	CustomerID   string       `json:"customerId" binding:"required"`
	Name         string       `json:"name" binding:"required"`
	Products     []string     `json:"products" binding:"required,min=1"`
	DiscountRate int          `json:"discountRate"`
	StartDate    CalendarDate `json:"startDate"`
	EndDate      CalendarDate `json:"endDate"`
}

// UpdateCampaignRequest is the payload for updating a campaign. Nil
// fields are left untouched.
type UpdateCampaignRequest struct {
	Name         *string         `json:"name"`
	Products     []string        `json:"products"`
	DiscountRate *int            `json:"discountRate"`
	StartDate    *CalendarDate   `json:"startDate"`
	EndDate      *CalendarDate   `json:"endDate"`
	Status       *CampaignStatus `json:"status"`
}

// SavedMessage is a draft the user chose to keep for a campaign.
type SavedMessage struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CampaignID     primitive.ObjectID `bson:"campaignId" json:"campaignId"`
	Content        string             `bson:"content" json:"content"`
	Tone           Tone               `bson:"tone" json:"tone"`
	TargetAudience string             `bson:"targetAudience" json:"targetAudience"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}

// SaveMessageRequest is the payload for saving a generated draft.
type SaveMessageRequest struct {
	Content        string `json:"content" binding:"required"`
	Tone           string `json:"tone" binding:"required"`
	TargetAudience string `json:"targetAudience"`
}
