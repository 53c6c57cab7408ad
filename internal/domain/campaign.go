package domain

import "time"

// CampaignStatus enumerates campaign lifecycle states. The only transition
// is active to stopped; stopped is terminal.
type CampaignStatus string

const (
	CampaignStatusActive  CampaignStatus = "active"
	CampaignStatusStopped CampaignStatus = "stopped"
)

// Campaign is a fundraising effort owned by an NGO. RaisedAmount is the
// eagerly maintained sum of all donations recorded against the campaign and
// is mutated only inside the donation recording transaction.
type Campaign struct {
	ID           string
	Title        string
	Description  string
	TargetAmount int64
	RaisedAmount int64
	Category     string
	Location     string
	Deadline     *time.Time
	Status       CampaignStatus
	CreatorID    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AcceptsDonations reports whether the campaign may receive donations.
// Deadline expiry does not stop a campaign; only an explicit stop does.
func (c Campaign) AcceptsDonations() bool {
	return c.Status == CampaignStatusActive
}
