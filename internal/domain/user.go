package domain

import "time"

// UserRole enumerates supported account roles.
type UserRole string

const (
	UserRoleAdmin     UserRole = "admin"
	UserRoleNGO       UserRole = "ngo"
	UserRoleDonor     UserRole = "donor"
	UserRoleVolunteer UserRole = "volunteer"
)

// ValidRegistrationRole reports whether a role may be chosen at sign-up.
// The admin role is granted only through an administrative action, never
// from registration input.
func ValidRegistrationRole(r UserRole) bool {
	switch r {
	case UserRoleNGO, UserRoleDonor, UserRoleVolunteer:
		return true
	}
	return false
}

// User represents an authenticated account within the platform.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
	Verified     bool

	// NGO profile fields.
	GovID            string
	OrganizationType string
	Location         string
	Description      string

	// Volunteer profile fields.
	Age          *int
	State        string
	Availability string
	Skills       string
	Phone        string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin reports whether the account carries the admin role.
func (u User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// PendingApproval reports whether the account is an NGO awaiting admin
// verification. Pending NGOs may log in but cannot act.
func (u User) PendingApproval() bool {
	return u.Role == UserRoleNGO && !u.Verified
}
