package domain

import "context"

// UserRepository defines access methods for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateProfile(ctx context.Context, user *User) (*User, error)
	SetRole(ctx context.Context, id string, role UserRole) error
	Verify(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	ListPendingNGOs(ctx context.Context) ([]User, error)
}

// CampaignRepository handles campaign persistence. Stop must reject a
// second stop with ErrAlreadyStopped rather than applying it silently.
type CampaignRepository interface {
	Create(ctx context.Context, campaign *Campaign) error
	GetByID(ctx context.Context, id string) (*Campaign, error)
	ListAll(ctx context.Context) ([]Campaign, error)
	ListByCreator(ctx context.Context, creatorID string) ([]Campaign, error)
	Stop(ctx context.Context, id string) error
}

// DonationRepository handles donation persistence. Record performs the
// donation insert and the campaign raised-amount increment in a single
// transaction and returns the campaign's new raised amount; both writes
// apply or neither does.
type DonationRepository interface {
	Record(ctx context.Context, donation *Donation) (int64, error)
	ListByDonor(ctx context.Context, donorID string) ([]Donation, error)
	ListByCampaign(ctx context.Context, campaignID string) ([]Donation, error)
}

// VolunteerRepository handles volunteer posts and applications. Apply
// inserts the application and increments the post's applicant counter in
// one transaction, returning the new counter value.
type VolunteerRepository interface {
	CreatePost(ctx context.Context, post *VolunteerPost) error
	GetPost(ctx context.Context, id string) (*VolunteerPost, error)
	ListPosts(ctx context.Context) ([]VolunteerPost, error)
	ListPostsByNGO(ctx context.Context, ngoID string) ([]VolunteerPost, error)
	Apply(ctx context.Context, application *Application) (int, error)
	ListApplicationsByVolunteer(ctx context.Context, volunteerID string) ([]Application, error)
	ListApplicationsForNGO(ctx context.Context, ngoID string) ([]Application, error)
	ListApplicationsForPost(ctx context.Context, postID string) ([]Application, error)
}

// StatsRepository aggregates platform counters.
type StatsRepository interface {
	Landing(ctx context.Context) (*LandingStats, error)
	Admin(ctx context.Context) (*AdminStats, error)
}
