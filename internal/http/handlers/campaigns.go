package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"server/internal/domain"
	"server/internal/ledger"
)

type campaignCreateRequest struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	TargetAmount int64      `json:"target_amount"`
	Category     string     `json:"category"`
	Location     string     `json:"location"`
	Deadline     *time.Time `json:"deadline"`
}

type campaignDTO struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	TargetAmount int64      `json:"target_amount"`
	RaisedAmount int64      `json:"raised_amount"`
	Category     string     `json:"category"`
	Location     string     `json:"location"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	Status       string     `json:"status"`
	CreatorID    string     `json:"creator_id"`
	CreatedAt    time.Time  `json:"created_at"`
}

func toCampaignDTO(c *domain.Campaign) campaignDTO {
	return campaignDTO{
		ID:           c.ID,
		Title:        c.Title,
		Description:  c.Description,
		TargetAmount: c.TargetAmount,
		RaisedAmount: c.RaisedAmount,
		Category:     c.Category,
		Location:     c.Location,
		Deadline:     c.Deadline,
		Status:       string(c.Status),
		CreatorID:    c.CreatorID,
		CreatedAt:    c.CreatedAt,
	}
}

func campaignDTOs(items []domain.Campaign) []campaignDTO {
	out := make([]campaignDTO, 0, len(items))
	for i := range items {
		out = append(out, toCampaignDTO(&items[i]))
	}
	return out
}

// CampaignsCreate opens a new campaign owned by the calling NGO.
func (a *App) CampaignsCreate(w http.ResponseWriter, r *http.Request) {
	actor, ok := a.actor(r)
	if !ok {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req campaignCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	campaign, err := a.Campaigns.Create(r.Context(), ledger.CampaignSpec{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Location:     req.Location,
		TargetAmount: req.TargetAmount,
		Deadline:     req.Deadline,
		CreatorID:    actor.ID,
	})
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.Metrics.CampaignsCreated.Inc()
	a.json(w, http.StatusCreated, toCampaignDTO(campaign))
}

// CampaignsList returns every campaign, newest first. Public.
func (a *App) CampaignsList(w http.ResponseWriter, r *http.Request) {
	campaigns, err := a.Campaigns.ListAll(r.Context())
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": campaignDTOs(campaigns)})
}

// CampaignsMine returns the calling NGO's campaigns.
func (a *App) CampaignsMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := a.actor(r)
	if !ok {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	campaigns, err := a.Campaigns.ListByCreator(r.Context(), actor.ID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": campaignDTOs(campaigns)})
}

// CampaignDonations lists every donation recorded against one campaign,
// restricted to the campaign owner and administrators. The amounts sum to
// the campaign's raised amount.
func (a *App) CampaignDonations(w http.ResponseWriter, r *http.Request) {
	actor, ok := a.actor(r)
	if !ok {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	campaignID := chi.URLParam(r, "id")
	campaign, err := a.Campaigns.Get(r.Context(), campaignID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	if campaign.CreatorID != actor.ID && actor.Role != domain.UserRoleAdmin {
		a.error(w, http.StatusForbidden, "forbidden", "not the campaign owner")
		return
	}

	donations, err := a.Donations.ListByCampaign(r.Context(), campaignID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"campaign": toCampaignDTO(campaign),
		"items":    donationDTOs(donations),
	})
}
