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

// uniqueViolation is the PostgreSQL SQLSTATE for unique constraint failures.
const uniqueViolation = "23505"

// UserRepositoryPG implements domain.UserRepository backed by PostgreSQL.
type UserRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepositoryPG.
func NewUserRepository(pool *pgxpool.Pool) *UserRepositoryPG {
	return &UserRepositoryPG{pool: pool}
}

const userColumns = `id, name, email, password_hash, role, verified, gov_id, organization_type, location, description, age, state, availability, skills, phone, created_at, updated_at`

// Create inserts a new account. A taken email surfaces as ErrEmailTaken.
func (r *UserRepositoryPG) Create(ctx context.Context, user *domain.User) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO users (id, name, email, password_hash, role, verified, gov_id, organization_type, location, description, age, state, availability, skills, phone)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
`,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Verified,
		user.GovID,
		user.OrganizationType,
		user.Location,
		user.Description,
		user.Age,
		user.State,
		user.Availability,
		user.Skills,
		user.Phone,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID fetches a user by UUID.
func (r *UserRepositoryPG) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// GetByEmail fetches a user by email address.
func (r *UserRepositoryPG) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// UpdateProfile persists the mutable profile fields and returns the stored row.
func (r *UserRepositoryPG) UpdateProfile(ctx context.Context, user *domain.User) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `
UPDATE users
SET name = $2,
    phone = $3,
    description = $4,
    location = $5,
    skills = $6,
    availability = $7,
    updated_at = NOW()
WHERE id = $1
RETURNING `+userColumns+`;
`,
		user.ID,
		user.Name,
		user.Phone,
		user.Description,
		user.Location,
		user.Skills,
		user.Availability,
	)
	return scanUser(row)
}

// SetRole assigns a role to an existing account. Used only by the
// administrative grant tool; registration can never reach it.
func (r *UserRepositoryPG) SetRole(ctx context.Context, id string, role domain.UserRole) error {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET role = $2, verified = TRUE, updated_at = NOW() WHERE id = $1`, id, role)
	if err != nil {
		return fmt.Errorf("set role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Verify marks a pending NGO as approved. Verifying an already verified
// account is rejected so the admin UI can surface the stale action.
func (r *UserRepositoryPG) Verify(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE users
SET verified = TRUE, updated_at = NOW()
WHERE id = $1 AND role = $2 AND verified = FALSE;
`, id, domain.UserRoleNGO)
	if err != nil {
		return fmt.Errorf("verify ngo: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var verified bool
	if err := r.pool.QueryRow(ctx, `SELECT verified FROM users WHERE id = $1 AND role = $2`, id, domain.UserRoleNGO).Scan(&verified); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	return domain.ErrDuplicateOperation
}

// Delete removes an account.
func (r *UserRepositoryPG) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListPendingNGOs returns NGO accounts awaiting approval, oldest first.
func (r *UserRepositoryPG) ListPendingNGOs(ctx context.Context) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+userColumns+`
FROM users
WHERE role = $1 AND verified = FALSE
ORDER BY created_at ASC;
`, domain.UserRoleNGO)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.Verified,
		&u.GovID,
		&u.OrganizationType,
		&u.Location,
		&u.Description,
		&u.Age,
		&u.State,
		&u.Availability,
		&u.Skills,
		&u.Phone,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
