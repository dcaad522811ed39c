package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/admanager/admanager-backend/internal/models"
	"github.com/admanager/admanager-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when a record does not exist or is owned by a
// different user. Ownership failures are indistinguishable from missing
// records on purpose.
var ErrNotFound = errors.New("record not found")

// PreferenceRecorder folds saved drafts into a user's style profile.
type PreferenceRecorder interface {
	RecordSavedDraft(ctx context.Context, userID, content string, tone models.Tone) error
}

// CampaignService handles campaign CRUD and saved drafts. All reads and
// writes are scoped to the owning user.
type CampaignService struct {
	campaignRepo repositories.CampaignRepository
	messageRepo  repositories.SavedMessageRepository
	preferences  PreferenceRecorder
	now          func() time.Time
}

// NewCampaignService creates a new CampaignService
func NewCampaignService(campaignRepo repositories.CampaignRepository, messageRepo repositories.SavedMessageRepository, preferences PreferenceRecorder) *CampaignService {
	return &CampaignService{
		campaignRepo: campaignRepo,
		messageRepo:  messageRepo,
		preferences:  preferences,
		now:          time.Now,
	}
}

// Create creates a campaign for the user. New campaigns always start in
// Draft status.
func (s *CampaignService) Create(ctx context.Context, userID string, req *models.CreateCampaignRequest) (*models.Campaign, error) {
	campaign := &models.Campaign{
		UserID:       userID,
		CustomerID:   req.CustomerID,
		Name:         req.Name,
		Products:     req.Products,
		DiscountRate: req.DiscountRate,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Status:       models.StatusDraft,
	}

	if err := s.campaignRepo.Create(ctx, campaign); err != nil {
		return nil, fmt.Errorf("create campaign: %w", err)
	}
	return campaign, nil
}

// List returns the user's campaigns, optionally filtered by customer.
func (s *CampaignService) List(ctx context.Context, userID, customerID string) ([]*models.Campaign, error) {
	return s.campaignRepo.FindByUserID(ctx, userID, customerID)
}

// Get returns a campaign if it exists and belongs to the user.
func (s *CampaignService) Get(ctx context.Context, userID string, id primitive.ObjectID) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.FindByID(ctx, id)
	if err != nil || campaign.UserID != userID {
		return nil, ErrNotFound
	}
	return campaign, nil
}

// Update applies the non-nil fields of the request to a campaign. When
// a campaign is manually put back into Scheduled status, the lifecycle
// date check runs synchronously so a start date that already passed
// takes effect immediately instead of waiting for the next sweep.
func (s *CampaignService) Update(ctx context.Context, userID string, id primitive.ObjectID, req *models.UpdateCampaignRequest) (*models.Campaign, error) {
	campaign, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		campaign.Name = *req.Name
	}
	if req.Products != nil {
		campaign.Products = req.Products
	}
	if req.DiscountRate != nil {
		campaign.DiscountRate = *req.DiscountRate
	}
	if req.StartDate != nil {
		campaign.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		campaign.EndDate = *req.EndDate
	}
	if req.Status != nil {
		campaign.Status = *req.Status
	}

	if req.Status != nil && *req.Status == models.StatusScheduled {
		next, changed, err := NextStatus(campaign, truncateToDay(s.now()))
		if err != nil {
			log.Printf("campaigns: date check on edit of %s failed: %v", campaign.ID.Hex(), err)
		} else if changed {
			campaign.Status = next
		}
	}

	if err := s.campaignRepo.Update(ctx, campaign); err != nil {
		return nil, fmt.Errorf("update campaign: %w", err)
	}
	return campaign, nil
}

// Delete removes a campaign together with its saved messages.
func (s *CampaignService) Delete(ctx context.Context, userID string, id primitive.ObjectID) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}

	if err := s.messageRepo.DeleteByCampaignID(ctx, id); err != nil {
		return fmt.Errorf("delete saved messages: %w", err)
	}
	return s.campaignRepo.Delete(ctx, id)
}

// SaveMessage stores a chosen draft under a campaign and folds it into
// the user's style profile. Profile updates are best-effort: a failure
// there never loses the saved message.
func (s *CampaignService) SaveMessage(ctx context.Context, userID string, campaignID primitive.ObjectID, req *models.SaveMessageRequest) (*models.SavedMessage, error) {
	if _, err := s.Get(ctx, userID, campaignID); err != nil {
		return nil, err
	}

	tone, ok := models.ParseTone(req.Tone)
	if !ok {
		return nil, fmt.Errorf("unknown tone %q", req.Tone)
	}

	message := &models.SavedMessage{
		CampaignID:     campaignID,
		Content:        req.Content,
		Tone:           tone,
		TargetAudience: req.TargetAudience,
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("save message: %w", err)
	}

	if s.preferences != nil {
		if err := s.preferences.RecordSavedDraft(ctx, userID, message.Content, tone); err != nil {
			log.Printf("campaigns: preference update for user %s failed: %v", userID, err)
		}
	}

	return message, nil
}

// ListMessages returns the saved messages of a campaign.
func (s *CampaignService) ListMessages(ctx context.Context, userID string, campaignID primitive.ObjectID) ([]*models.SavedMessage, error) {
	if _, err := s.Get(ctx, userID, campaignID); err != nil {
		return nil, err
	}
	return s.messageRepo.FindByCampaignID(ctx, campaignID)
}

// DeleteMessage removes one saved message from a campaign.
func (s *CampaignService) DeleteMessage(ctx context.Context, userID string, campaignID, messageID primitive.ObjectID) error {
	if _, err := s.Get(ctx, userID, campaignID); err != nil {
		return err
	}
	return s.messageRepo.Delete(ctx, messageID)
}
