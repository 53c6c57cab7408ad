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

// DefaultPaymentMethod is recorded when the caller does not label the
// payment. Crypto donations arrive with a transaction-reference label
// instead; the recorder stores the label without validating settlement.
const DefaultPaymentMethod = "card"

// DonationRecorder is the only path permitted to create donation records
// and move a campaign's raised amount. The two writes share one storage
// transaction so the raised amount always equals the sum of recorded
// donations.
type DonationRecorder struct {
	donations domain.DonationRepository
	campaigns domain.CampaignRepository
	log       zerolog.Logger
}

// NewDonationRecorder creates a recorder.
func NewDonationRecorder(donations domain.DonationRepository, campaigns domain.CampaignRepository, log zerolog.Logger) *DonationRecorder {
	return &DonationRecorder{donations: donations, campaigns: campaigns, log: log}
}

// RecordInput carries the caller-supplied fields for one donation.
type RecordInput struct {
	CampaignID    string
	DonorID       string
	DonorName     string
	Amount        int64
	PaymentMethod string
	DonorCountry  string
}

// RecordResult is the outcome of a successful recording.
type RecordResult struct {
	Donation     domain.Donation
	RaisedAmount int64
}

// Record validates the input, checks the campaign accepts donations, and
// atomically persists the donation together with the campaign increment.
// On any failure neither write is left applied.
func (r *DonationRecorder) Record(ctx context.Context, in RecordInput) (*RecordResult, error) {
	if strings.TrimSpace(in.CampaignID) == "" {
		return nil, fmt.Errorf("campaign id is required: %w", domain.ErrValidation)
	}
	if strings.TrimSpace(in.DonorID) == "" {
		return nil, fmt.Errorf("donor is required: %w", domain.ErrValidation)
	}
	if in.Amount <= 0 {
		return nil, fmt.Errorf("donation amount must be positive: %w", domain.ErrValidation)
	}

	campaign, err := r.campaigns.GetByID(ctx, in.CampaignID)
	if err != nil {
		return nil, err
	}
	if !campaign.AcceptsDonations() {
		return nil, domain.ErrCampaignClosed
	}

	method := strings.TrimSpace(in.PaymentMethod)
	if method == "" {
		method = DefaultPaymentMethod
	}
	donation := domain.Donation{
		ID:            uuid.NewString(),
		CampaignID:    campaign.ID,
		CampaignTitle: campaign.Title,
		DonorID:       in.DonorID,
		DonorName:     in.DonorName,
		Amount:        in.Amount,
		PaymentMethod: method,
		DonorCountry:  in.DonorCountry,
		CreatedAt:     time.Now().UTC(),
	}

	// The repository re-checks the active status inside the transaction;
	// the read above only produces the friendlier error ordering.
	raised, err := r.donations.Record(ctx, &donation)
	if err != nil {
		return nil, err
	}

	r.log.Info().
		Str("donation_id", donation.ID).
		Str("campaign_id", donation.CampaignID).
		Int64("amount", donation.Amount).
		Str("method", donation.PaymentMethod).
		Msg("donation recorded")
	return &RecordResult{Donation: donation, RaisedAmount: raised}, nil
}

// ListByDonor returns a donor's donations, most recent first.
func (r *DonationRecorder) ListByDonor(ctx context.Context, donorID string) ([]domain.Donation, error) {
	if strings.TrimSpace(donorID) == "" {
		return nil, fmt.Errorf("donor id is required: %w", domain.ErrValidation)
	}
	return r.donations.ListByDonor(ctx, donorID)
}

// ListByCampaign returns every donation recorded against a campaign, most
// recent first. The sum of the returned amounts equals the campaign's
// raised amount.
func (r *DonationRecorder) ListByCampaign(ctx context.Context, campaignID string) ([]domain.Donation, error) {
	if strings.TrimSpace(campaignID) == "" {
		return nil, fmt.Errorf("campaign id is required: %w", domain.ErrValidation)
	}
	return r.donations.ListByCampaign(ctx, campaignID)
}
