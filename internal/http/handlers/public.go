package handlers

import "net/http"

// PublicStats backs the landing page counters. No auth.
func (a *App) PublicStats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.Stats.Landing(r.Context())
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]int64{
		"ngos":   stats.VerifiedNGOs,
		"donors": stats.Donors,
		"raised": stats.TotalRaised,
		"impact": stats.ActiveCampaigns,
	})
}
