package mongodb

import (
	"context"

	"github.com/admanager/admanager-backend/internal/models"
	"github.com/admanager/admanager-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PreferenceRepository implements the repositories.PreferenceRepository interface
type PreferenceRepository struct {
	collection *mongo.Collection
}

// NewPreferenceRepository creates a new PreferenceRepository
func NewPreferenceRepository(db *mongo.Database) repositories.PreferenceRepository {
	return &PreferenceRepository{
		collection: db.Collection("user_preferences"),
	}
}

// FindByUserID finds the preference record for a user. Returns
// mongo.ErrNoDocuments when the user has no record yet.
func (r *PreferenceRepository) FindByUserID(ctx context.Context, userID string) (*models.UserPreferences, error) {
	var prefs models.UserPreferences

	err := r.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&prefs)
	if err != nil {
		return nil, err
	}

	return &prefs, nil
}

// Replace writes the whole preference record back, creating it if
// missing. Last writer wins.
func (r *PreferenceRepository) Replace(ctx context.Context, prefs *models.UserPreferences) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": prefs.UserID}, prefs, opts)
	return err
}
