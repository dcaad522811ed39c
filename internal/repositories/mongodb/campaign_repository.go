package mongodb

import (
	"context"
	"log"
	"time"

	"github.com/admanager/admanager-backend/internal/models"
	"github.com/admanager/admanager-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CampaignRepository implements the repositories.CampaignRepository interface
type CampaignRepository struct {
	collection *mongo.Collection
}

// NewCampaignRepository creates a new CampaignRepository
func NewCampaignRepository(db *mongo.Database) repositories.CampaignRepository {
	return &CampaignRepository{
		collection: db.Collection("campaigns"),
	}
}

// Create creates a new campaign
func (r *CampaignRepository) Create(ctx context.Context, campaign *models.Campaign) error {
	campaign.CreatedAt = time.Now()
	campaign.UpdatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, campaign)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		campaign.ID = id
	}
	return nil
}

// FindByID finds a campaign by ID
func (r *CampaignRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Campaign, error) {
	var campaign models.Campaign

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&campaign)
	if err != nil {
		return nil, err
	}

	return &campaign, nil
}

// FindByUserID finds all campaigns owned by a user, newest first,
// optionally filtered by customer
func (r *CampaignRepository) FindByUserID(ctx context.Context, userID string, customerID string) ([]*models.Campaign, error) {
	filter := bson.M{"userId": userID}
	if customerID != "" {
		filter["customerId"] = customerID
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	campaigns := []*models.Campaign{}
	if err := cursor.All(ctx, &campaigns); err != nil {
		return nil, err
	}

	return campaigns, nil
}

// FindByStatuses finds campaigns in any of the given statuses. Documents
// that fail to decode are logged and skipped rather than failing the scan.
func (r *CampaignRepository) FindByStatuses(ctx context.Context, statuses []models.CampaignStatus) ([]*models.Campaign, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"status": bson.M{"$in": statuses}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	campaigns := []*models.Campaign{}
	for cursor.Next(ctx) {
		var campaign models.Campaign
		if err := cursor.Decode(&campaign); err != nil {
			log.Printf("campaigns: skipping undecodable document in status scan: %v", err)
			continue
		}
		campaigns = append(campaigns, &campaign)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return campaigns, nil
}

// Update updates a campaign
func (r *CampaignRepository) Update(ctx context.Context, campaign *models.Campaign) error {
	campaign.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": campaign.ID}, campaign)
	return err
}

// UpdateStatus updates only the status field of a campaign
func (r *CampaignRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.CampaignStatus) error {
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

// Delete deletes a campaign
func (r *CampaignRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
