package domain

import "time"

// Donation is an immutable record of a single contribution toward a
// campaign. Rows are created once by the donation recorder and never
// updated or deleted.
type Donation struct {
	ID            string
	CampaignID    string
	CampaignTitle string
	DonorID       string
	DonorName     string
	Amount        int64
	PaymentMethod string
	DonorCountry  string
	CreatedAt     time.Time
}
