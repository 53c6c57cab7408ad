package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

// CampaignRepositoryPG implements domain.CampaignRepository backed by PostgreSQL.
type CampaignRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository creates a new campaign repository.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepositoryPG {
	return &CampaignRepositoryPG{pool: pool}
}

const campaignColumns = `id, title, description, target_amount, raised_amount, category, location, deadline, status, creator_id, created_at, updated_at`

// Create inserts a new campaign row.
func (r *CampaignRepositoryPG) Create(ctx context.Context, campaign *domain.Campaign) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO campaigns (id, title, description, target_amount, raised_amount, category, location, deadline, status, creator_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11);
`,
		campaign.ID,
		campaign.Title,
		campaign.Description,
		campaign.TargetAmount,
		campaign.RaisedAmount,
		campaign.Category,
		campaign.Location,
		campaign.Deadline,
		campaign.Status,
		campaign.CreatorID,
		campaign.CreatedAt,
	)
	return err
}

// GetByID fetches a campaign by its identifier.
func (r *CampaignRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id)
	return scanCampaign(row)
}

// ListAll returns every campaign, newest first.
func (r *CampaignRepositoryPG) ListAll(ctx context.Context) ([]domain.Campaign, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+campaignColumns+` FROM campaigns ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return collectCampaigns(rows)
}

// ListByCreator returns the campaigns owned by one NGO, newest first.
func (r *CampaignRepositoryPG) ListByCreator(ctx context.Context, creatorID string) ([]domain.Campaign, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE creator_id = $1 ORDER BY created_at DESC`, creatorID)
	if err != nil {
		return nil, err
	}
	return collectCampaigns(rows)
}

// Stop transitions an active campaign to stopped. The guard on the current
// status makes a double stop observable instead of silently absorbed.
func (r *CampaignRepositoryPG) Stop(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE campaigns
SET status = $2, updated_at = NOW()
WHERE id = $1 AND status = $3;
`, id, domain.CampaignStatusStopped, domain.CampaignStatusActive)
	if err != nil {
		return fmt.Errorf("stop campaign: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var status domain.CampaignStatus
	if err := r.pool.QueryRow(ctx, `SELECT status FROM campaigns WHERE id = $1`, id).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	return domain.ErrAlreadyStopped
}

func scanCampaign(row pgx.Row) (*domain.Campaign, error) {
	var c domain.Campaign
	if err := row.Scan(
		&c.ID,
		&c.Title,
		&c.Description,
		&c.TargetAmount,
		&c.RaisedAmount,
		&c.Category,
		&c.Location,
		&c.Deadline,
		&c.Status,
		&c.CreatorID,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func collectCampaigns(rows pgx.Rows) ([]domain.Campaign, error) {
	defer rows.Close()
	var items []domain.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
