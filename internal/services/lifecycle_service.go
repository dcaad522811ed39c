package services

import (
	"context"
	"log"
	"time"

	"github.com/admanager/admanager-backend/internal/models"
	"github.com/admanager/admanager-backend/internal/repositories"
)

// LifecycleService advances campaign statuses by comparing the current
// date to each campaign's start and end dates. Transitions are strictly
// forward: Scheduled -> Active -> Completed. Draft campaigns never
// auto-advance and Completed is terminal.
type LifecycleService struct {
	campaignRepo repositories.CampaignRepository
	now          func() time.Time
}

// NewLifecycleService creates a new LifecycleService
func NewLifecycleService(campaignRepo repositories.CampaignRepository) *LifecycleService {
	return &LifecycleService{
		campaignRepo: campaignRepo,
		now:          time.Now,
	}
}

// RunSweep scans campaigns in Scheduled or Active status and persists
// any whose dates call for a transition. A campaign with malformed
// dates is skipped and logged; the sweep continues for the others.
func (s *LifecycleService) RunSweep(ctx context.Context) {
	campaigns, err := s.campaignRepo.FindByStatuses(ctx, []models.CampaignStatus{
		models.StatusScheduled,
		models.StatusActive,
	})
	if err != nil {
		log.Printf("lifecycle: sweep aborted, status scan failed: %v", err)
		return
	}

	today := truncateToDay(s.now())
	advanced := 0

	for _, campaign := range campaigns {
		next, changed, err := NextStatus(campaign, today)
		if err != nil {
			log.Printf("lifecycle: skipping campaign %s: %v", campaign.ID.Hex(), err)
			continue
		}
		if !changed {
			continue
		}

		if err := s.campaignRepo.UpdateStatus(ctx, campaign.ID, next); err != nil {
			log.Printf("lifecycle: failed to move campaign %s to %s: %v", campaign.ID.Hex(), next, err)
			continue
		}
		advanced++
	}

	log.Printf("lifecycle: sweep finished, advanced %d of %d campaigns", advanced, len(campaigns))
}

// Start runs one sweep immediately and then keeps sweeping on the given
// interval until the context is cancelled. A single ticker drives the
// loop, so two sweeps never run concurrently.
func (s *LifecycleService) Start(ctx context.Context, interval time.Duration) {
	go func() {
		s.RunSweep(ctx)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.RunSweep(ctx)
			}
		}
	}()
}

// NextStatus computes the date-driven transition for a campaign:
// Scheduled becomes Active once today reaches the start date, Active
// becomes Completed once today is past the end date. The returned bool
// reports whether a change is due.
func NextStatus(campaign *models.Campaign, today time.Time) (models.CampaignStatus, bool, error) {
	switch campaign.Status {
	case models.StatusScheduled:
		start, err := campaign.StartDate.Time()
		if err != nil {
			return campaign.Status, false, err
		}
		if !today.Before(start) {
			return models.StatusActive, true, nil
		}
	case models.StatusActive:
		end, err := campaign.EndDate.Time()
		if err != nil {
			return campaign.Status, false, err
		}
		if today.After(end) {
			return models.StatusCompleted, true, nil
		}
	}
	return campaign.Status, false, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
