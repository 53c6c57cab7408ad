// Command grantrole changes a user's role from the command line. This is the
// only way to mint an admin account; the HTTP API never assigns the admin
// role, so operator access always goes through an out-of-band step.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"server/internal/adapter/repo"
	"server/internal/domain"
)

func main() {
	var (
		idFlag    string
		emailFlag string
		roleFlag  string
	)

	flag.StringVar(&idFlag, "id", "", "user ID to update (UUID)")
	flag.StringVar(&emailFlag, "email", "", "user email to update")
	flag.StringVar(&roleFlag, "role", "admin", "role to assign (admin, ngo, donor, volunteer)")
	flag.Parse()

	_ = godotenv.Load()

	userID := strings.TrimSpace(idFlag)
	email := strings.TrimSpace(emailFlag)
	role := domain.UserRole(strings.TrimSpace(strings.ToLower(roleFlag)))

	if userID == "" && email == "" {
		exitWithError(errors.New("either -id or -email must be provided"))
	}
	switch role {
	case domain.UserRoleAdmin, domain.UserRoleNGO, domain.UserRoleDonor, domain.UserRoleVolunteer:
	default:
		exitWithError(fmt.Errorf("unsupported role %q", role))
	}

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		exitWithError(errors.New("DATABASE_URL is required"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		exitWithError(fmt.Errorf("failed to connect database: %w", err))
	}
	defer pool.Close()

	users := repo.NewUserRepository(pool)

	var user *domain.User
	if userID != "" {
		user, err = users.GetByID(ctx, userID)
	} else {
		user, err = users.GetByEmail(ctx, email)
	}
	if err != nil {
		exitWithError(fmt.Errorf("failed to load user: %w", err))
	}

	if user.Role == role {
		fmt.Printf("User %s (%s) already has role %s\n", user.ID, user.Email, role)
		return
	}

	if err := users.SetRole(ctx, user.ID, role); err != nil {
		exitWithError(fmt.Errorf("failed to update role: %w", err))
	}

	fmt.Printf("User %s (%s) updated from role %s to %s\n", user.ID, user.Email, user.Role, role)
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
