package domain

import "time"

// PostStatus enumerates volunteer post lifecycle states.
type PostStatus string

const (
	PostStatusOpen   PostStatus = "open"
	PostStatusClosed PostStatus = "closed"
)

// VolunteerPost is an opportunity published by an NGO. Applicants is a
// derived counter maintained inside the application transaction, like
// Campaign.RaisedAmount.
type VolunteerPost struct {
	ID             string
	Title          string
	Description    string
	SkillsRequired []string
	Location       string
	NGOID          string
	NGOName        string
	Applicants     int
	Status         PostStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ApplicationStatus enumerates volunteer application states.
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// Application links a volunteer to a post. A volunteer may apply to a
// given post at most once.
type Application struct {
	ID            string
	VolunteerID   string
	VolunteerName string
	PostID        string
	PostTitle     string
	Status        ApplicationStatus
	AppliedAt     time.Time
}
