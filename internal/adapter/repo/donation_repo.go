package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

// DonationRepositoryPG implements domain.DonationRepository using PostgreSQL.
type DonationRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewDonationRepository creates a new donation repo.
func NewDonationRepository(pool *pgxpool.Pool) *DonationRepositoryPG {
	return &DonationRepositoryPG{pool: pool}
}

const donationColumns = `id, campaign_id, campaign_title, donor_id, donor_name, amount, payment_method, donor_country, created_at`

// Record inserts the donation and applies the campaign increment inside a
// single transaction. The increment is a single guarded UPDATE executed in
// the database, so concurrent donations to one campaign serialize on the
// row and cannot lose each other's update. A failure anywhere rolls both
// writes back.
func (r *DonationRepositoryPG) Record(ctx context.Context, donation *domain.Donation) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin donation tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var raised int64
	err = tx.QueryRow(ctx, `
UPDATE campaigns
SET raised_amount = raised_amount + $2, updated_at = NOW()
WHERE id = $1 AND status = $3
RETURNING raised_amount;
`, donation.CampaignID, donation.Amount, domain.CampaignStatusActive).Scan(&raised)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, r.classifyRejected(ctx, tx, donation.CampaignID)
		}
		return 0, fmt.Errorf("increment raised amount: %w", err)
	}

	_, err = tx.Exec(ctx, `
INSERT INTO donations (id, campaign_id, campaign_title, donor_id, donor_name, amount, payment_method, donor_country, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
`,
		donation.ID,
		donation.CampaignID,
		donation.CampaignTitle,
		donation.DonorID,
		donation.DonorName,
		donation.Amount,
		donation.PaymentMethod,
		donation.DonorCountry,
		donation.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert donation: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit donation tx: %w", err)
	}
	return raised, nil
}

// classifyRejected distinguishes an unknown campaign from a stopped one
// after the guarded increment matched no row.
func (r *DonationRepositoryPG) classifyRejected(ctx context.Context, tx pgx.Tx, campaignID string) error {
	var status domain.CampaignStatus
	if err := tx.QueryRow(ctx, `SELECT status FROM campaigns WHERE id = $1`, campaignID).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	return domain.ErrCampaignClosed
}

// ListByDonor returns a donor's donations, most recent first.
func (r *DonationRepositoryPG) ListByDonor(ctx context.Context, donorID string) ([]domain.Donation, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+donationColumns+`
FROM donations
WHERE donor_id = $1
ORDER BY created_at DESC;
`, donorID)
	if err != nil {
		return nil, err
	}
	return collectDonations(rows)
}

// ListByCampaign returns every donation for a campaign, most recent first.
func (r *DonationRepositoryPG) ListByCampaign(ctx context.Context, campaignID string) ([]domain.Donation, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+donationColumns+`
FROM donations
WHERE campaign_id = $1
ORDER BY created_at DESC;
`, campaignID)
	if err != nil {
		return nil, err
	}
	return collectDonations(rows)
}

func collectDonations(rows pgx.Rows) ([]domain.Donation, error) {
	defer rows.Close()
	var items []domain.Donation
	for rows.Next() {
		var d domain.Donation
		if err := rows.Scan(
			&d.ID,
			&d.CampaignID,
			&d.CampaignTitle,
			&d.DonorID,
			&d.DonorName,
			&d.Amount,
			&d.PaymentMethod,
			&d.DonorCountry,
			&d.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
