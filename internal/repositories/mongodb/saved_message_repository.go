package mongodb

import (
	"context"
	"time"

	"github.com/admanager/admanager-backend/internal/models"
	"github.com/admanager/admanager-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SavedMessageRepository implements the repositories.SavedMessageRepository interface
type SavedMessageRepository struct {
	collection *mongo.Collection
}

// NewSavedMessageRepository creates a new SavedMessageRepository
func NewSavedMessageRepository(db *mongo.Database) repositories.SavedMessageRepository {
	return &SavedMessageRepository{
		collection: db.Collection("saved_messages"),
	}
}

// Create creates a new saved message
func (r *SavedMessageRepository) Create(ctx context.Context, message *models.SavedMessage) error {
	message.CreatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, message)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		message.ID = id
	}
	return nil
}

// FindByCampaignID finds all saved messages for a campaign, newest first
func (r *SavedMessageRepository) FindByCampaignID(ctx context.Context, campaignID primitive.ObjectID) ([]*models.SavedMessage, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})

	cursor, err := r.collection.Find(ctx, bson.M{"campaignId": campaignID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	messages := []*models.SavedMessage{}
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}

	return messages, nil
}

// Delete deletes a saved message
func (r *SavedMessageRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// DeleteByCampaignID deletes all saved messages belonging to a campaign
func (r *SavedMessageRepository) DeleteByCampaignID(ctx context.Context, campaignID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"campaignId": campaignID})
	return err
}
