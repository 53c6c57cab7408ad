package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/ledger"
	"server/internal/middleware"
)

// fakeStore holds the in-memory data shared by the per-interface fakes so
// the handlers can be exercised without a database. The donation and
// application fakes keep the transactional contract of the real
// repositories: the counter increment and the insert happen together or
// not at all.
type fakeStore struct {
	mu            sync.Mutex
	users         map[string]*domain.User
	campaigns     map[string]*domain.Campaign
	campaignOrder []string
	donations     []domain.Donation
	posts         map[string]*domain.VolunteerPost
	applications  []domain.Application
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:     map[string]*domain.User{},
		campaigns: map[string]*domain.Campaign{},
		posts:     map[string]*domain.VolunteerPost{},
	}
}

type fakeUsers struct{ st *fakeStore }
type fakeCampaigns struct{ st *fakeStore }
type fakeDonations struct{ st *fakeStore }
type fakeVolunteers struct{ st *fakeStore }
type fakeStats struct{ st *fakeStore }

func newTestApp(t *testing.T) (*App, *fakeStore) {
	t.Helper()
	st := newFakeStore()
	logger := zerolog.Nop()
	campaigns := &fakeCampaigns{st: st}
	return &App{
		Users:      &fakeUsers{st: st},
		Campaigns:  ledger.NewCampaignLedger(campaigns, ledger.DefaultMinTargetAmount, logger),
		Donations:  ledger.NewDonationRecorder(&fakeDonations{st: st}, campaigns, logger),
		Volunteers: &fakeVolunteers{st: st},
		Stats:      &fakeStats{st: st},
		Metrics:    infra.NewMetrics(),
		Logger:     logger,
		JWTSecret:  "test-secret",
		JWTTTL:     time.Hour,
	}, st
}

func asActor(req *http.Request, user *domain.User) *http.Request {
	actor := middleware.Actor{ID: user.ID, Name: user.Name, Role: user.Role, Verified: user.Verified}
	return req.WithContext(middleware.ContextWithActor(req.Context(), actor))
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func (f *fakeUsers) Create(_ context.Context, user *domain.User) error {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	for _, u := range f.st.users {
		if u.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	copied := *user
	f.st.users[user.ID] = &copied
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	u, ok := f.st.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	for _, u := range f.st.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUsers) UpdateProfile(_ context.Context, user *domain.User) (*domain.User, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	if _, ok := f.st.users[user.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	copied := *user
	f.st.users[user.ID] = &copied
	result := copied
	return &result, nil
}

func (f *fakeUsers) SetRole(_ context.Context, id string, role domain.UserRole) error {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	u, ok := f.st.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Role = role
	u.Verified = true
	return nil
}

func (f *fakeUsers) Verify(_ context.Context, id string) error {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	u, ok := f.st.users[id]
	if !ok || u.Role != domain.UserRoleNGO {
		return domain.ErrNotFound
	}
	if u.Verified {
		return domain.ErrDuplicateOperation
	}
	u.Verified = true
	return nil
}

func (f *fakeUsers) Delete(_ context.Context, id string) error {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	if _, ok := f.st.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.st.users, id)
	return nil
}

func (f *fakeUsers) ListPendingNGOs(context.Context) ([]domain.User, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	return f.st.pendingNGOsLocked(), nil
}

func (s *fakeStore) pendingNGOsLocked() []domain.User {
	var pending []domain.User
	for _, u := range s.users {
		if u.Role == domain.UserRoleNGO && !u.Verified {
			pending = append(pending, *u)
		}
	}
	return pending
}

func (f *fakeCampaigns) Create(_ context.Context, campaign *domain.Campaign) error {
	f.st.addCampaign(campaign)
	return nil
}

func (f *fakeCampaigns) GetByID(_ context.Context, id string) (*domain.Campaign, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	c, ok := f.st.campaigns[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCampaigns) ListAll(context.Context) ([]domain.Campaign, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	items := make([]domain.Campaign, 0, len(f.st.campaignOrder))
	for i := len(f.st.campaignOrder) - 1; i >= 0; i-- {
		items = append(items, *f.st.campaigns[f.st.campaignOrder[i]])
	}
	return items, nil
}

func (f *fakeCampaigns) ListByCreator(_ context.Context, creatorID string) ([]domain.Campaign, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	var items []domain.Campaign
	for i := len(f.st.campaignOrder) - 1; i >= 0; i-- {
		if c := f.st.campaigns[f.st.campaignOrder[i]]; c.CreatorID == creatorID {
			items = append(items, *c)
		}
	}
	return items, nil
}

func (f *fakeCampaigns) Stop(_ context.Context, id string) error {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	c, ok := f.st.campaigns[id]
	if !ok {
		return domain.ErrNotFound
	}
	if c.Status == domain.CampaignStatusStopped {
		return domain.ErrAlreadyStopped
	}
	c.Status = domain.CampaignStatusStopped
	return nil
}

func (s *fakeStore) addCampaign(campaign *domain.Campaign) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *campaign
	s.campaigns[campaign.ID] = &copied
	s.campaignOrder = append(s.campaignOrder, campaign.ID)
}

func (f *fakeDonations) Record(_ context.Context, donation *domain.Donation) (int64, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	c, ok := f.st.campaigns[donation.CampaignID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	if c.Status != domain.CampaignStatusActive {
		return 0, domain.ErrCampaignClosed
	}
	c.RaisedAmount += donation.Amount
	f.st.donations = append(f.st.donations, *donation)
	return c.RaisedAmount, nil
}

func (f *fakeDonations) ListByDonor(_ context.Context, donorID string) ([]domain.Donation, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	var items []domain.Donation
	for i := len(f.st.donations) - 1; i >= 0; i-- {
		if f.st.donations[i].DonorID == donorID {
			items = append(items, f.st.donations[i])
		}
	}
	return items, nil
}

func (f *fakeDonations) ListByCampaign(_ context.Context, campaignID string) ([]domain.Donation, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	var items []domain.Donation
	for i := len(f.st.donations) - 1; i >= 0; i-- {
		if f.st.donations[i].CampaignID == campaignID {
			items = append(items, f.st.donations[i])
		}
	}
	return items, nil
}

func (f *fakeVolunteers) CreatePost(_ context.Context, post *domain.VolunteerPost) error {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	copied := *post
	f.st.posts[post.ID] = &copied
	return nil
}

func (f *fakeVolunteers) GetPost(_ context.Context, id string) (*domain.VolunteerPost, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	p, ok := f.st.posts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeVolunteers) ListPosts(context.Context) ([]domain.VolunteerPost, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	var items []domain.VolunteerPost
	for _, p := range f.st.posts {
		items = append(items, *p)
	}
	return items, nil
}

func (f *fakeVolunteers) ListPostsByNGO(_ context.Context, ngoID string) ([]domain.VolunteerPost, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	var items []domain.VolunteerPost
	for _, p := range f.st.posts {
		if p.NGOID == ngoID {
			items = append(items, *p)
		}
	}
	return items, nil
}

func (f *fakeVolunteers) Apply(_ context.Context, application *domain.Application) (int, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	p, ok := f.st.posts[application.PostID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	for _, a := range f.st.applications {
		if a.VolunteerID == application.VolunteerID && a.PostID == application.PostID {
			return 0, domain.ErrDuplicateOperation
		}
	}
	p.Applicants++
	f.st.applications = append(f.st.applications, *application)
	return p.Applicants, nil
}

func (f *fakeVolunteers) ListApplicationsByVolunteer(_ context.Context, volunteerID string) ([]domain.Application, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	var items []domain.Application
	for i := len(f.st.applications) - 1; i >= 0; i-- {
		if f.st.applications[i].VolunteerID == volunteerID {
			items = append(items, f.st.applications[i])
		}
	}
	return items, nil
}

func (f *fakeVolunteers) ListApplicationsForNGO(_ context.Context, ngoID string) ([]domain.Application, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	var items []domain.Application
	for i := len(f.st.applications) - 1; i >= 0; i-- {
		if p, ok := f.st.posts[f.st.applications[i].PostID]; ok && p.NGOID == ngoID {
			items = append(items, f.st.applications[i])
		}
	}
	return items, nil
}

func (f *fakeVolunteers) ListApplicationsForPost(_ context.Context, postID string) ([]domain.Application, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	var items []domain.Application
	for i := len(f.st.applications) - 1; i >= 0; i-- {
		if f.st.applications[i].PostID == postID {
			items = append(items, f.st.applications[i])
		}
	}
	return items, nil
}

func (f *fakeStats) Landing(context.Context) (*domain.LandingStats, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	stats := &domain.LandingStats{ActiveCampaigns: int64(len(f.st.campaigns))}
	for _, u := range f.st.users {
		switch {
		case u.Role == domain.UserRoleNGO && u.Verified:
			stats.VerifiedNGOs++
		case u.Role == domain.UserRoleDonor:
			stats.Donors++
		}
	}
	for _, d := range f.st.donations {
		stats.TotalRaised += d.Amount
	}
	return stats, nil
}

func (f *fakeStats) Admin(context.Context) (*domain.AdminStats, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	stats := &domain.AdminStats{
		TotalUsers:  int64(len(f.st.users)),
		PendingNGOs: f.st.pendingNGOsLocked(),
	}
	for _, u := range f.st.users {
		switch u.Role {
		case domain.UserRoleNGO:
			stats.NGOs++
		case domain.UserRoleVolunteer:
			stats.Volunteers++
		case domain.UserRoleDonor:
			stats.Donors++
		}
	}
	for _, d := range f.st.donations {
		stats.TotalRaised += d.Amount
	}
	return stats, nil
}

func seedUser(st *fakeStore, role domain.UserRole, n int) *domain.User {
	u := &domain.User{
		ID:       fmt.Sprintf("user-%s-%d", role, n),
		Name:     fmt.Sprintf("%s %d", role, n),
		Email:    fmt.Sprintf("%s%d@example.org", role, n),
		Role:     role,
		Verified: true,
	}
	st.users[u.ID] = u
	return u
}

func seedCampaign(st *fakeStore, creator *domain.User, n int) *domain.Campaign {
	c := &domain.Campaign{
		ID:           fmt.Sprintf("campaign-%d", n),
		Title:        fmt.Sprintf("Campaign %d", n),
		Description:  "flood relief",
		TargetAmount: 50000,
		Category:     "disaster",
		Location:     "Assam",
		Status:       domain.CampaignStatusActive,
		CreatorID:    creator.ID,
		CreatedAt:    time.Now().UTC(),
	}
	st.addCampaign(c)
	return c
}
