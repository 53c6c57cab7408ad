package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

// VolunteerRepositoryPG implements domain.VolunteerRepository backed by PostgreSQL.
type VolunteerRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewVolunteerRepository creates a new volunteer repository.
func NewVolunteerRepository(pool *pgxpool.Pool) *VolunteerRepositoryPG {
	return &VolunteerRepositoryPG{pool: pool}
}

const postColumns = `id, title, description, skills_required, location, ngo_id, ngo_name, applicants, status, created_at, updated_at`

// CreatePost inserts a new volunteer post.
func (r *VolunteerRepositoryPG) CreatePost(ctx context.Context, post *domain.VolunteerPost) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO volunteer_posts (id, title, description, skills_required, location, ngo_id, ngo_name, applicants, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
`,
		post.ID,
		post.Title,
		post.Description,
		post.SkillsRequired,
		post.Location,
		post.NGOID,
		post.NGOName,
		post.Applicants,
		post.Status,
	)
	return err
}

// GetPost fetches a post by its identifier.
func (r *VolunteerRepositoryPG) GetPost(ctx context.Context, id string) (*domain.VolunteerPost, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM volunteer_posts WHERE id = $1`, id)
	return scanPost(row)
}

// ListPosts returns every post, newest first.
func (r *VolunteerRepositoryPG) ListPosts(ctx context.Context) ([]domain.VolunteerPost, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+postColumns+` FROM volunteer_posts ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return collectPosts(rows)
}

// ListPostsByNGO returns the posts published by one NGO, newest first.
func (r *VolunteerRepositoryPG) ListPostsByNGO(ctx context.Context, ngoID string) ([]domain.VolunteerPost, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+postColumns+` FROM volunteer_posts WHERE ngo_id = $1 ORDER BY created_at DESC`, ngoID)
	if err != nil {
		return nil, err
	}
	return collectPosts(rows)
}

// Apply inserts the application and bumps the post's applicant counter in
// one transaction. The counter moves with the same in-database increment
// discipline as campaign raised amounts. A repeat application trips the
// (volunteer_id, post_id) unique constraint instead of a racy
// check-then-insert.
func (r *VolunteerRepositoryPG) Apply(ctx context.Context, application *domain.Application) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin application tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var applicants int
	err = tx.QueryRow(ctx, `
UPDATE volunteer_posts
SET applicants = applicants + 1, updated_at = NOW()
WHERE id = $1
RETURNING applicants;
`, application.PostID).Scan(&applicants)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("increment applicants: %w", err)
	}

	_, err = tx.Exec(ctx, `
INSERT INTO applications (id, volunteer_id, volunteer_name, post_id, post_title, status, applied_at)
VALUES ($1, $2, $3, $4, $5, $6, $7);
`,
		application.ID,
		application.VolunteerID,
		application.VolunteerName,
		application.PostID,
		application.PostTitle,
		application.Status,
		application.AppliedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, domain.ErrDuplicateOperation
		}
		return 0, fmt.Errorf("insert application: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit application tx: %w", err)
	}
	return applicants, nil
}

const applicationColumns = `id, volunteer_id, volunteer_name, post_id, post_title, status, applied_at`

// ListApplicationsByVolunteer returns one volunteer's applications, most
// recent first.
func (r *VolunteerRepositoryPG) ListApplicationsByVolunteer(ctx context.Context, volunteerID string) ([]domain.Application, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+applicationColumns+`
FROM applications
WHERE volunteer_id = $1
ORDER BY applied_at DESC;
`, volunteerID)
	if err != nil {
		return nil, err
	}
	return collectApplications(rows)
}

// ListApplicationsForNGO returns applications across all of an NGO's posts,
// most recent first.
func (r *VolunteerRepositoryPG) ListApplicationsForNGO(ctx context.Context, ngoID string) ([]domain.Application, error) {
	rows, err := r.pool.Query(ctx, `
SELECT a.id, a.volunteer_id, a.volunteer_name, a.post_id, a.post_title, a.status, a.applied_at
FROM applications a
JOIN volunteer_posts p ON p.id = a.post_id
WHERE p.ngo_id = $1
ORDER BY a.applied_at DESC;
`, ngoID)
	if err != nil {
		return nil, err
	}
	return collectApplications(rows)
}

// ListApplicationsForPost returns applications for a single post, most
// recent first.
func (r *VolunteerRepositoryPG) ListApplicationsForPost(ctx context.Context, postID string) ([]domain.Application, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+applicationColumns+`
FROM applications
WHERE post_id = $1
ORDER BY applied_at DESC;
`, postID)
	if err != nil {
		return nil, err
	}
	return collectApplications(rows)
}

func scanPost(row pgx.Row) (*domain.VolunteerPost, error) {
	var p domain.VolunteerPost
	if err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.SkillsRequired,
		&p.Location,
		&p.NGOID,
		&p.NGOName,
		&p.Applicants,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func collectPosts(rows pgx.Rows) ([]domain.VolunteerPost, error) {
	defer rows.Close()
	var items []domain.VolunteerPost
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func collectApplications(rows pgx.Rows) ([]domain.Application, error) {
	defer rows.Close()
	var items []domain.Application
	for rows.Next() {
		var a domain.Application
		if err := rows.Scan(
			&a.ID,
			&a.VolunteerID,
			&a.VolunteerName,
			&a.PostID,
			&a.PostTitle,
			&a.Status,
			&a.AppliedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
