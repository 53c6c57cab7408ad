package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"server/internal/domain"
	"server/internal/ledger"
	"server/internal/middleware"
)

type donationRequest struct {
	CampaignID    string `json:"campaign_id"`
	Amount        int64  `json:"amount"`
	PaymentMethod string `json:"payment_method"`
}

type donationDTO struct {
	ID            string    `json:"id"`
	CampaignID    string    `json:"campaign_id"`
	CampaignTitle string    `json:"campaign_title"`
	DonorID       string    `json:"donor_id"`
	DonorName     string    `json:"donor_name"`
	Amount        int64     `json:"amount"`
	PaymentMethod string    `json:"payment_method"`
	DonorCountry  string    `json:"donor_country,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func toDonationDTO(d *domain.Donation) donationDTO {
	return donationDTO{
		ID:            d.ID,
		CampaignID:    d.CampaignID,
		CampaignTitle: d.CampaignTitle,
		DonorID:       d.DonorID,
		DonorName:     d.DonorName,
		Amount:        d.Amount,
		PaymentMethod: d.PaymentMethod,
		DonorCountry:  d.DonorCountry,
		CreatedAt:     d.CreatedAt,
	}
}

func donationDTOs(items []domain.Donation) []donationDTO {
	out := make([]donationDTO, 0, len(items))
	for i := range items {
		out = append(out, toDonationDTO(&items[i]))
	}
	return out
}

// DonationsCreate records a donation. This is the single recording path;
// both legacy routes from the campaign and donation APIs land here. For
// crypto donations the payment method carries the caller-supplied
// transaction reference; the transferred value is not reconciled on-chain.
func (a *App) DonationsCreate(w http.ResponseWriter, r *http.Request) {
	actor, ok := a.actor(r)
	if !ok {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req donationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	res, err := a.Donations.Record(r.Context(), ledger.RecordInput{
		CampaignID:    req.CampaignID,
		DonorID:       actor.ID,
		DonorName:     actor.Name,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		DonorCountry:  middleware.CountryFromContext(r.Context()),
	})
	if err != nil {
		a.countRejection(err)
		a.domainError(w, err)
		return
	}

	a.Metrics.DonationsRecorded.WithLabelValues(res.Donation.PaymentMethod).Inc()
	a.Metrics.DonationAmount.WithLabelValues(res.Donation.PaymentMethod).Add(float64(res.Donation.Amount))
	a.json(w, http.StatusCreated, map[string]any{
		"donation":      toDonationDTO(&res.Donation),
		"raised_amount": res.RaisedAmount,
	})
}

func (a *App) countRejection(err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		a.Metrics.DonationsRejected.WithLabelValues("validation").Inc()
	case errors.Is(err, domain.ErrNotFound):
		a.Metrics.DonationsRejected.WithLabelValues("not_found").Inc()
	case errors.Is(err, domain.ErrCampaignClosed):
		a.Metrics.DonationsRejected.WithLabelValues("closed").Inc()
	default:
		a.Metrics.DonationsRejected.WithLabelValues("storage").Inc()
	}
}

// DonationsMine returns the caller's donation history, most recent first.
func (a *App) DonationsMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := a.actor(r)
	if !ok {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	donations, err := a.Donations.ListByDonor(r.Context(), actor.ID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": donationDTOs(donations)})
}
