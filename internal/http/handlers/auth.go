package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"server/internal/domain"
	"server/internal/middleware"

	"github.com/google/uuid"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`

	// NGO fields.
	GovID            string `json:"gov_id"`
	OrganizationType string `json:"organization_type"`
	Location         string `json:"location"`
	Description      string `json:"description"`

	// Volunteer fields.
	Age          *int   `json:"age"`
	State        string `json:"state"`
	Availability string `json:"availability"`
	Skills       string `json:"skills"`
	Phone        string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userDTO struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Role             string `json:"role"`
	Verified         bool   `json:"verified"`
	GovID            string `json:"gov_id,omitempty"`
	OrganizationType string `json:"organization_type,omitempty"`
	Location         string `json:"location,omitempty"`
	Description      string `json:"description,omitempty"`
	Age              *int   `json:"age,omitempty"`
	State            string `json:"state,omitempty"`
	Availability     string `json:"availability,omitempty"`
	Skills           string `json:"skills,omitempty"`
	Phone            string `json:"phone,omitempty"`
}

func toUserDTO(u *domain.User) userDTO {
	return userDTO{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		Role:             string(u.Role),
		Verified:         u.Verified,
		GovID:            u.GovID,
		OrganizationType: u.OrganizationType,
		Location:         u.Location,
		Description:      u.Description,
		Age:              u.Age,
		State:            u.State,
		Availability:     u.Availability,
		Skills:           u.Skills,
		Phone:            u.Phone,
	}
}

// AuthRegister creates an account. The requested role must be one of the
// public roles; the admin role cannot be obtained through registration
// under any input.
func (a *App) AuthRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "name, email and password are required")
		return
	}
	role := domain.UserRole(req.Role)
	if !domain.ValidRegistrationRole(role) {
		a.error(w, http.StatusBadRequest, "bad_request", "role must be ngo, donor or volunteer")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		a.Logger.Error().Err(err).Msg("hash password failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create account")
		return
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
		// NGOs wait for admin approval before they can act.
		Verified: role != domain.UserRoleNGO,
	}
	switch role {
	case domain.UserRoleNGO:
		user.GovID = req.GovID
		user.OrganizationType = req.OrganizationType
		user.Location = req.Location
		user.Description = req.Description
	case domain.UserRoleVolunteer:
		user.Age = req.Age
		user.State = req.State
		user.Availability = req.Availability
		user.Skills = req.Skills
		user.Phone = req.Phone
	}

	if err := a.Users.Create(r.Context(), user); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]any{"user": toUserDTO(user)})
}

// AuthLogin verifies credentials and issues a token.
func (a *App) AuthLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "email and password are required")
		return
	}

	user, err := a.Users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusUnauthorized, "unauthorized", "invalid credentials")
			return
		}
		a.domainError(w, err)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "invalid credentials")
		return
	}

	token, err := middleware.SignJWT(a.JWTSecret, user, a.JWTTTL)
	if err != nil {
		a.Logger.Error().Err(err).Msg("sign jwt failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to sign token")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"token": token, "user": toUserDTO(user)})
}

// Profile returns the authenticated account and its activity history.
func (a *App) Profile(w http.ResponseWriter, r *http.Request) {
	actor, ok := a.actor(r)
	if !ok {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	user, err := a.Users.GetByID(r.Context(), actor.ID)
	if err != nil {
		a.domainError(w, err)
		return
	}

	history := map[string]any{}
	switch user.Role {
	case domain.UserRoleDonor:
		donations, err := a.Donations.ListByDonor(r.Context(), user.ID)
		if err != nil {
			a.domainError(w, err)
			return
		}
		history["donations"] = donationDTOs(donations)
	case domain.UserRoleVolunteer:
		applications, err := a.Volunteers.ListApplicationsByVolunteer(r.Context(), user.ID)
		if err != nil {
			a.domainError(w, err)
			return
		}
		history["applications"] = applicationDTOs(applications)
	}

	a.json(w, http.StatusOK, map[string]any{"user": toUserDTO(user), "history": history})
}

type profileUpdateRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Bio          string `json:"bio"`
	Location     string `json:"location"`
	Skills       string `json:"skills"`
	Availability string `json:"availability"`
}

// ProfileUpdate changes a bounded set of profile fields; blank values keep
// the stored ones.
func (a *App) ProfileUpdate(w http.ResponseWriter, r *http.Request) {
	actor, ok := a.actor(r)
	if !ok {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req profileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	user, err := a.Users.GetByID(r.Context(), actor.ID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	if v := strings.TrimSpace(req.Name); v != "" {
		user.Name = v
	}
	if v := strings.TrimSpace(req.Phone); v != "" {
		user.Phone = v
	}
	if user.Role == domain.UserRoleNGO {
		if v := strings.TrimSpace(req.Bio); v != "" {
			user.Description = v
		}
		if v := strings.TrimSpace(req.Location); v != "" {
			user.Location = v
		}
	}
	if user.Role == domain.UserRoleVolunteer {
		if v := strings.TrimSpace(req.Skills); v != "" {
			user.Skills = v
		}
		if v := strings.TrimSpace(req.Availability); v != "" {
			user.Availability = v
		}
	}

	updated, err := a.Users.UpdateProfile(r.Context(), user)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"user": toUserDTO(updated)})
}
