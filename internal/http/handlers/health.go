package handlers

import "net/http"

// Health is the liveness probe. It deliberately does not touch the
// database; pool failures surface through the request handlers instead of
// flapping the probe.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}
