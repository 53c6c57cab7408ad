package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

// StatsRepositoryPG aggregates platform counters straight from the tables.
type StatsRepositoryPG struct {
	pool  *pgxpool.Pool
	users *UserRepositoryPG
}

// NewStatsRepository creates a new stats repository.
func NewStatsRepository(pool *pgxpool.Pool) *StatsRepositoryPG {
	return &StatsRepositoryPG{pool: pool, users: NewUserRepository(pool)}
}

// Landing returns the public landing page counters.
func (r *StatsRepositoryPG) Landing(ctx context.Context) (*domain.LandingStats, error) {
	row := r.pool.QueryRow(ctx, `
SELECT
  (SELECT count(*) FROM users WHERE role = 'ngo' AND verified = TRUE),
  (SELECT count(*) FROM users WHERE role = 'donor'),
  (SELECT COALESCE(sum(amount), 0) FROM donations),
  (SELECT count(*) FROM campaigns);
`)
	var s domain.LandingStats
	if err := row.Scan(&s.VerifiedNGOs, &s.Donors, &s.TotalRaised, &s.ActiveCampaigns); err != nil {
		return nil, err
	}
	return &s, nil
}

// Admin returns the dashboard counters plus the pending NGO queue.
func (r *StatsRepositoryPG) Admin(ctx context.Context) (*domain.AdminStats, error) {
	row := r.pool.QueryRow(ctx, `
SELECT
  count(*),
  count(*) FILTER (WHERE role = 'ngo'),
  count(*) FILTER (WHERE role = 'volunteer'),
  count(*) FILTER (WHERE role = 'donor'),
  (SELECT COALESCE(sum(amount), 0) FROM donations)
FROM users;
`)
	var s domain.AdminStats
	if err := row.Scan(&s.TotalUsers, &s.NGOs, &s.Volunteers, &s.Donors, &s.TotalRaised); err != nil {
		return nil, err
	}
	pending, err := r.users.ListPendingNGOs(ctx)
	if err != nil {
		return nil, err
	}
	s.PendingNGOs = pending
	return &s, nil
}
