package repositories

import (
	"context"

	"github.com/admanager/admanager-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Customer, error)
	FindByUserID(ctx context.Context, userID string) ([]*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// CampaignRepository defines the interface for campaign data operations
type CampaignRepository interface {
	Create(ctx context.Context, campaign *models.Campaign) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Campaign, error)
	FindByUserID(ctx context.Context, userID string, customerID string) ([]*models.Campaign, error)
	// FindByStatuses returns campaigns whose status is any of the given
	// values, across all users. Documents that fail to decode are skipped
	// so one malformed campaign cannot abort a lifecycle sweep.
	FindByStatuses(ctx context.Context, statuses []models.CampaignStatus) ([]*models.Campaign, error)
	Update(ctx context.Context, campaign *models.Campaign) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.CampaignStatus) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// SavedMessageRepository defines the interface for saved draft operations
type SavedMessageRepository interface {
	Create(ctx context.Context, message *models.SavedMessage) error
	FindByCampaignID(ctx context.Context, campaignID primitive.ObjectID) ([]*models.SavedMessage, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByCampaignID(ctx context.Context, campaignID primitive.ObjectID) error
}

// PreferenceRepository defines the interface for user preference records.
// Writes replace the whole record (last-writer-wins).
type PreferenceRepository interface {
	FindByUserID(ctx context.Context, userID string) (*models.UserPreferences, error)
	Replace(ctx context.Context, prefs *models.UserPreferences) error
}
