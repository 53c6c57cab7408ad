package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/ledger"
	"server/internal/middleware"
)

// App is the handler container wired in cmd/api.
type App struct {
	Users      domain.UserRepository
	Campaigns  *ledger.CampaignLedger
	Donations  *ledger.DonationRecorder
	Volunteers domain.VolunteerRepository
	Stats      domain.StatsRepository
	Metrics    *infra.Metrics
	Logger     zerolog.Logger
	JWTSecret  string
	JWTTTL     time.Duration
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]string{"code": code, "message": message})
}

// domainError translates the error taxonomy into HTTP responses. Unknown
// errors are treated as persistence failures: logged and surfaced as 500.
func (a *App) domainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		a.error(w, http.StatusUnauthorized, "unauthorized", err.Error())
	case errors.Is(err, domain.ErrForbidden):
		a.error(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, domain.ErrCampaignClosed):
		a.error(w, http.StatusConflict, "campaign_closed", err.Error())
	case errors.Is(err, domain.ErrAlreadyStopped),
		errors.Is(err, domain.ErrDuplicateOperation),
		errors.Is(err, domain.ErrEmailTaken):
		a.error(w, http.StatusConflict, "conflict", err.Error())
	default:
		a.Logger.Error().Err(err).Msg("request failed")
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

func (a *App) actor(r *http.Request) (middleware.Actor, bool) {
	return middleware.ActorFromContext(r.Context())
}
