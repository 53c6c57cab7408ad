package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"server/internal/domain"
)

type postCreateRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
	Location    string   `json:"location"`
}

type postDTO struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	SkillsRequired []string  `json:"skills_required"`
	Location       string    `json:"location"`
	NGOID          string    `json:"ngo_id"`
	NGOName        string    `json:"ngo_name"`
	Applicants     int       `json:"applicants"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

func toPostDTO(p *domain.VolunteerPost) postDTO {
	return postDTO{
		ID:             p.ID,
		Title:          p.Title,
		Description:    p.Description,
		SkillsRequired: p.SkillsRequired,
		Location:       p.Location,
		NGOID:          p.NGOID,
		NGOName:        p.NGOName,
		Applicants:     p.Applicants,
		Status:         string(p.Status),
		CreatedAt:      p.CreatedAt,
	}
}

func postDTOs(items []domain.VolunteerPost) []postDTO {
	out := make([]postDTO, 0, len(items))
	for i := range items {
		out = append(out, toPostDTO(&items[i]))
	}
	return out
}

type applicationDTO struct {
	ID            string    `json:"id"`
	VolunteerID   string    `json:"volunteer_id"`
	VolunteerName string    `json:"volunteer_name"`
	PostID        string    `json:"post_id"`
	PostTitle     string    `json:"post_title"`
	Status        string    `json:"status"`
	AppliedAt     time.Time `json:"applied_at"`
}

func applicationDTOs(items []domain.Application) []applicationDTO {
	out := make([]applicationDTO, 0, len(items))
	for _, a := range items {
		out = append(out, applicationDTO{
			ID:            a.ID,
			VolunteerID:   a.VolunteerID,
			VolunteerName: a.VolunteerName,
			PostID:        a.PostID,
			PostTitle:     a.PostTitle,
			Status:        string(a.Status),
			AppliedAt:     a.AppliedAt,
		})
	}
	return out
}

// PostsCreate publishes a volunteer opportunity for the calling NGO.
func (a *App) PostsCreate(w http.ResponseWriter, r *http.Request) {
	actor, ok := a.actor(r)
	if !ok {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req postCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" || strings.TrimSpace(req.Location) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "title, description and location are required")
		return
	}

	now := time.Now().UTC()
	post := &domain.VolunteerPost{
		ID:             uuid.NewString(),
		Title:          strings.TrimSpace(req.Title),
		Description:    req.Description,
		SkillsRequired: req.Skills,
		Location:       req.Location,
		NGOID:          actor.ID,
		NGOName:        actor.Name,
		Applicants:     0,
		Status:         domain.PostStatusOpen,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := a.Volunteers.CreatePost(r.Context(), post); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, toPostDTO(post))
}

// PostsList returns every volunteer post. Public.
func (a *App) PostsList(w http.ResponseWriter, r *http.Request) {
	posts, err := a.Volunteers.ListPosts(r.Context())
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": postDTOs(posts)})
}

// PostsMine returns the calling NGO's posts.
func (a *App) PostsMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := a.actor(r)
	if !ok {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	posts, err := a.Volunteers.ListPostsByNGO(r.Context(), actor.ID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": postDTOs(posts)})
}

type applyRequest struct {
	PostID string `json:"post_id"`
}

// PostsApply files an application for the calling volunteer and bumps the
// post's applicant counter in the same transaction.
func (a *App) PostsApply(w http.ResponseWriter, r *http.Request) {
	actor, ok := a.actor(r)
	if !ok {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req applyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.PostID) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "post_id is required")
		return
	}

	post, err := a.Volunteers.GetPost(r.Context(), req.PostID)
	if err != nil {
		a.domainError(w, err)
		return
	}

	application := &domain.Application{
		ID:            uuid.NewString(),
		VolunteerID:   actor.ID,
		VolunteerName: actor.Name,
		PostID:        post.ID,
		PostTitle:     post.Title,
		Status:        domain.ApplicationStatusPending,
		AppliedAt:     time.Now().UTC(),
	}
	applicants, err := a.Volunteers.Apply(r.Context(), application)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]any{
		"application": applicationDTOs([]domain.Application{*application})[0],
		"applicants":  applicants,
	})
}

// ApplicationsMine returns applications across all of the calling NGO's posts.
func (a *App) ApplicationsMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := a.actor(r)
	if !ok {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	applications, err := a.Volunteers.ListApplicationsForNGO(r.Context(), actor.ID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": applicationDTOs(applications)})
}

// PostApplications returns applications for one post, owner only.
func (a *App) PostApplications(w http.ResponseWriter, r *http.Request) {
	actor, ok := a.actor(r)
	if !ok {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	postID := chi.URLParam(r, "id")
	post, err := a.Volunteers.GetPost(r.Context(), postID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	if post.NGOID != actor.ID && actor.Role != domain.UserRoleAdmin {
		a.error(w, http.StatusForbidden, "forbidden", "not the post owner")
		return
	}

	applications, err := a.Volunteers.ListApplicationsForPost(r.Context(), postID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": applicationDTOs(applications)})
}
