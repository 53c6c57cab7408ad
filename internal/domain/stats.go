package domain

// LandingStats backs the public landing page counters.
type LandingStats struct {
	VerifiedNGOs    int64
	Donors          int64
	TotalRaised     int64
	ActiveCampaigns int64
}

// AdminStats backs the admin dashboard.
type AdminStats struct {
	TotalUsers  int64
	NGOs        int64
	Volunteers  int64
	Donors      int64
	TotalRaised int64
	PendingNGOs []User
}
