package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/admanager/admanager-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeCampaignRepo struct {
	campaigns map[primitive.ObjectID]*models.Campaign
	findErr   error
	updateErr error
}

func newFakeCampaignRepo() *fakeCampaignRepo {
	return &fakeCampaignRepo{campaigns: map[primitive.ObjectID]*models.Campaign{}}
}

func (f *fakeCampaignRepo) add(c *models.Campaign) *models.Campaign {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	f.campaigns[c.ID] = c
	return c
}

func (f *fakeCampaignRepo) Create(ctx context.Context, campaign *models.Campaign) error {
	f.add(campaign)
	return nil
}

func (f *fakeCampaignRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Campaign, error) {
	c, ok := f.campaigns[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return c, nil
}

func (f *fakeCampaignRepo) FindByUserID(ctx context.Context, userID string, customerID string) ([]*models.Campaign, error) {
	out := []*models.Campaign{}
	for _, c := range f.campaigns {
		if c.UserID == userID && (customerID == "" || c.CustomerID == customerID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCampaignRepo) FindByStatuses(ctx context.Context, statuses []models.CampaignStatus) ([]*models.Campaign, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	out := []*models.Campaign{}
	for _, c := range f.campaigns {
		for _, s := range statuses {
			if c.Status == s {
				out = append(out, c)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeCampaignRepo) Update(ctx context.Context, campaign *models.Campaign) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.campaigns[campaign.ID] = campaign
	return nil
}

func (f *fakeCampaignRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.CampaignStatus) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	c, ok := f.campaigns[id]
	if !ok {
		return errors.New("not found")
	}
	c.Status = status
	return nil
}

func (f *fakeCampaignRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(f.campaigns, id)
	return nil
}

func fixedNow(day string) func() time.Time {
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}

func TestNextStatus(t *testing.T) {
	today, _ := time.Parse("2006-01-02", "2026-08-31")

	tests := []struct {
		name        string
		status      models.CampaignStatus
		start       string
		end         string
		wantStatus  models.CampaignStatus
		wantChanged bool
		wantErr     bool
	}{
		{"scheduled before start stays", models.StatusScheduled, "2026-09-05", "2026-09-20", models.StatusScheduled, false, false},
		{"scheduled on start activates", models.StatusScheduled, "2026-08-31", "2026-09-20", models.StatusActive, true, false},
		{"scheduled past start activates", models.StatusScheduled, "2026-08-01", "2026-09-20", models.StatusActive, true, false},
		{"active on end stays", models.StatusActive, "2026-08-01", "2026-08-31", models.StatusActive, false, false},
		{"active past end completes", models.StatusActive, "2026-08-01", "2026-08-30", models.StatusCompleted, true, false},
		{"draft never advances", models.StatusDraft, "2026-08-01", "2026-08-02", models.StatusDraft, false, false},
		{"completed is terminal", models.StatusCompleted, "2026-08-01", "2026-08-02", models.StatusCompleted, false, false},
		{"malformed start date errors", models.StatusScheduled, "soon", "2026-09-20", models.StatusScheduled, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			campaign := &models.Campaign{
				Status:    tt.status,
				StartDate: models.CalendarDate(tt.start),
				EndDate:   models.CalendarDate(tt.end),
			}

			got, changed, err := NextStatus(campaign, today)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got)
			assert.Equal(t, tt.wantChanged, changed)
		})
	}
}

func TestRunSweep(t *testing.T) {
	t.Run("advances due campaigns and skips the rest", func(t *testing.T) {
		repo := newFakeCampaignRepo()
		due := repo.add(&models.Campaign{Status: models.StatusScheduled, StartDate: "2026-08-30", EndDate: "2026-09-10"})
		notYet := repo.add(&models.Campaign{Status: models.StatusScheduled, StartDate: "2026-09-05", EndDate: "2026-09-10"})
		ended := repo.add(&models.Campaign{Status: models.StatusActive, StartDate: "2026-08-01", EndDate: "2026-08-15"})
		draft := repo.add(&models.Campaign{Status: models.StatusDraft, StartDate: "2026-08-01", EndDate: "2026-08-15"})

		svc := NewLifecycleService(repo)
		svc.now = fixedNow("2026-08-31")
		svc.RunSweep(context.Background())

		assert.Equal(t, models.StatusActive, repo.campaigns[due.ID].Status)
		assert.Equal(t, models.StatusScheduled, repo.campaigns[notYet.ID].Status)
		assert.Equal(t, models.StatusCompleted, repo.campaigns[ended.ID].Status)
		assert.Equal(t, models.StatusDraft, repo.campaigns[draft.ID].Status)
	})

	t.Run("malformed dates do not abort the sweep", func(t *testing.T) {
		repo := newFakeCampaignRepo()
		broken := repo.add(&models.Campaign{Status: models.StatusScheduled, StartDate: "when it's ready", EndDate: "2026-09-10"})
		due := repo.add(&models.Campaign{Status: models.StatusScheduled, StartDate: "2026-08-01", EndDate: "2026-09-10"})

		svc := NewLifecycleService(repo)
		svc.now = fixedNow("2026-08-31")
		svc.RunSweep(context.Background())

		assert.Equal(t, models.StatusScheduled, repo.campaigns[broken.ID].Status)
		assert.Equal(t, models.StatusActive, repo.campaigns[due.ID].Status)
	})

	t.Run("scan failure is swallowed", func(t *testing.T) {
		repo := newFakeCampaignRepo()
		repo.findErr = errors.New("db down")

		svc := NewLifecycleService(repo)
		svc.now = fixedNow("2026-08-31")
		svc.RunSweep(context.Background()) // must not panic
	})
}
