package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"server/internal/domain"
)

// DefaultMinTargetAmount is the smallest campaign target accepted when no
// explicit policy value is configured.
const DefaultMinTargetAmount int64 = 1000

// CampaignLedger owns campaign state and its active/stopped lifecycle.
// Raised amounts are mutated only by the DonationRecorder.
type CampaignLedger struct {
	campaigns domain.CampaignRepository
	minTarget int64
	log       zerolog.Logger
}

// NewCampaignLedger creates a ledger. minTarget values below 1 fall back to
// DefaultMinTargetAmount.
func NewCampaignLedger(campaigns domain.CampaignRepository, minTarget int64, log zerolog.Logger) *CampaignLedger {
	if minTarget < 1 {
		minTarget = DefaultMinTargetAmount
	}
	return &CampaignLedger{campaigns: campaigns, minTarget: minTarget, log: log}
}

// CampaignSpec carries the caller-supplied fields for a new campaign.
type CampaignSpec struct {
	Title        string
	Description  string
	Category     string
	Location     string
	TargetAmount int64
	Deadline     *time.Time
	CreatorID    string
}

// Create validates the spec and persists a new active campaign with a zero
// raised amount.
func (l *CampaignLedger) Create(ctx context.Context, spec CampaignSpec) (*domain.Campaign, error) {
	for field, value := range map[string]string{
		"title":       spec.Title,
		"description": spec.Description,
		"category":    spec.Category,
		"location":    spec.Location,
	} {
		if strings.TrimSpace(value) == "" {
			return nil, fmt.Errorf("%s is required: %w", field, domain.ErrValidation)
		}
	}
	if strings.TrimSpace(spec.CreatorID) == "" {
		return nil, fmt.Errorf("creator is required: %w", domain.ErrValidation)
	}
	if spec.TargetAmount < l.minTarget {
		return nil, fmt.Errorf("target amount must be at least %d: %w", l.minTarget, domain.ErrValidation)
	}

	now := time.Now().UTC()
	campaign := &domain.Campaign{
		ID:           uuid.NewString(),
		Title:        strings.TrimSpace(spec.Title),
		Description:  spec.Description,
		TargetAmount: spec.TargetAmount,
		RaisedAmount: 0,
		Category:     spec.Category,
		Location:     spec.Location,
		Deadline:     spec.Deadline,
		Status:       domain.CampaignStatusActive,
		CreatorID:    spec.CreatorID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := l.campaigns.Create(ctx, campaign); err != nil {
		return nil, fmt.Errorf("create campaign: %w", err)
	}
	l.log.Info().Str("campaign_id", campaign.ID).Int64("target", campaign.TargetAmount).Msg("campaign created")
	return campaign, nil
}

// Stop transitions a campaign to stopped. Stopping an already stopped
// campaign fails with ErrAlreadyStopped; the transition is terminal and
// deliberately not idempotent.
func (l *CampaignLedger) Stop(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("campaign id is required: %w", domain.ErrValidation)
	}
	if err := l.campaigns.Stop(ctx, id); err != nil {
		return err
	}
	l.log.Info().Str("campaign_id", id).Msg("campaign stopped")
	return nil
}

// Get returns a single campaign.
func (l *CampaignLedger) Get(ctx context.Context, id string) (*domain.Campaign, error) {
	return l.campaigns.GetByID(ctx, id)
}

// ListAll returns every campaign, newest first.
func (l *CampaignLedger) ListAll(ctx context.Context) ([]domain.Campaign, error) {
	return l.campaigns.ListAll(ctx)
}

// ListByCreator returns the campaigns owned by one NGO, newest first.
func (l *CampaignLedger) ListByCreator(ctx context.Context, creatorID string) ([]domain.Campaign, error) {
	return l.campaigns.ListByCreator(ctx, creatorID)
}
