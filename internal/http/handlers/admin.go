package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"server/internal/domain"
)

// AdminStats returns dashboard counters plus the pending NGO queue.
func (a *App) AdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.Stats.Admin(r.Context())
	if err != nil {
		a.domainError(w, err)
		return
	}
	pending := make([]userDTO, 0, len(stats.PendingNGOs))
	for i := range stats.PendingNGOs {
		pending = append(pending, toUserDTO(&stats.PendingNGOs[i]))
	}
	a.json(w, http.StatusOK, map[string]any{
		"counts": map[string]int64{
			"total":      stats.TotalUsers,
			"ngos":       stats.NGOs,
			"volunteers": stats.Volunteers,
			"donors":     stats.Donors,
		},
		"finance":      map[string]int64{"total_raised": stats.TotalRaised},
		"pending_ngos": pending,
	})
}

type adminTargetRequest struct {
	ID string `json:"id"`
}

func decodeAdminTarget(r *http.Request) (string, bool) {
	var req adminTargetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return "", false
	}
	id := strings.TrimSpace(req.ID)
	return id, id != ""
}

// AdminStopCampaign permanently stops a campaign. Stopping an already
// stopped campaign is a conflict, not a no-op.
func (a *App) AdminStopCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := decodeAdminTarget(r)
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", "campaign id is required")
		return
	}
	if err := a.Campaigns.Stop(r.Context(), id); err != nil {
		a.domainError(w, err)
		return
	}
	a.Metrics.CampaignsStopped.Inc()
	a.json(w, http.StatusOK, map[string]string{"message": "campaign stopped"})
}

// AdminApproveNGO marks a pending NGO as verified.
func (a *App) AdminApproveNGO(w http.ResponseWriter, r *http.Request) {
	id, ok := decodeAdminTarget(r)
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", "ngo id is required")
		return
	}
	if err := a.Users.Verify(r.Context(), id); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]string{"message": "ngo verified"})
}

// AdminRejectNGO removes a pending NGO account.
func (a *App) AdminRejectNGO(w http.ResponseWriter, r *http.Request) {
	id, ok := decodeAdminTarget(r)
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", "ngo id is required")
		return
	}
	user, err := a.Users.GetByID(r.Context(), id)
	if err != nil {
		a.domainError(w, err)
		return
	}
	if user.Role != domain.UserRoleNGO {
		a.error(w, http.StatusConflict, "conflict", "account is not an ngo")
		return
	}
	if err := a.Users.Delete(r.Context(), id); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]string{"message": "ngo rejected"})
}
