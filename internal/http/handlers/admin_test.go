package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"server/internal/domain"
)

func TestAdminApproveNGO(t *testing.T) {
	app, st := newTestApp(t)
	ngo := seedUser(st, domain.UserRoleNGO, 1)
	ngo.Verified = false

	body := `{"id":"` + ngo.ID + `"}`
	rr := httptest.NewRecorder()
	app.AdminApproveNGO(rr, httptest.NewRequest("POST", "/admin/approve-ngo", strings.NewReader(body)))

	if rr.Code != 200 {
		t.Fatalf("unexpected status: got %d, want 200, body %s", rr.Code, rr.Body.String())
	}
	if !st.users[ngo.ID].Verified {
		t.Fatalf("expected ngo to be verified")
	}

	// Approving an already verified account is a conflict, not a no-op.
	again := httptest.NewRecorder()
	app.AdminApproveNGO(again, httptest.NewRequest("POST", "/admin/approve-ngo", strings.NewReader(body)))
	if again.Code != 409 {
		t.Fatalf("second approve: got %d, want 409", again.Code)
	}
}

func TestAdminApproveNonNGO(t *testing.T) {
	app, st := newTestApp(t)
	donor := seedUser(st, domain.UserRoleDonor, 1)

	rr := httptest.NewRecorder()
	app.AdminApproveNGO(rr, httptest.NewRequest("POST", "/admin/approve-ngo",
		strings.NewReader(`{"id":"`+donor.ID+`"}`)))

	if rr.Code != 404 {
		t.Fatalf("unexpected status: got %d, want 404", rr.Code)
	}
}

func TestAdminRejectNGODeletesAccount(t *testing.T) {
	app, st := newTestApp(t)
	ngo := seedUser(st, domain.UserRoleNGO, 1)
	ngo.Verified = false

	rr := httptest.NewRecorder()
	app.AdminRejectNGO(rr, httptest.NewRequest("POST", "/admin/reject-ngo",
		strings.NewReader(`{"id":"`+ngo.ID+`"}`)))

	if rr.Code != 200 {
		t.Fatalf("unexpected status: got %d, want 200", rr.Code)
	}
	if _, ok := st.users[ngo.ID]; ok {
		t.Fatalf("expected rejected ngo to be deleted")
	}
}

func TestAdminRejectNonNGO(t *testing.T) {
	app, st := newTestApp(t)
	donor := seedUser(st, domain.UserRoleDonor, 1)

	rr := httptest.NewRecorder()
	app.AdminRejectNGO(rr, httptest.NewRequest("POST", "/admin/reject-ngo",
		strings.NewReader(`{"id":"`+donor.ID+`"}`)))

	if rr.Code != 409 {
		t.Fatalf("unexpected status: got %d, want 409", rr.Code)
	}
	if _, ok := st.users[donor.ID]; !ok {
		t.Fatalf("donor account must survive a reject attempt")
	}
}

func TestAdminStopCampaignTwice(t *testing.T) {
	app, st := newTestApp(t)
	ngo := seedUser(st, domain.UserRoleNGO, 1)
	campaign := seedCampaign(st, ngo, 1)

	body := `{"id":"` + campaign.ID + `"}`
	first := httptest.NewRecorder()
	app.AdminStopCampaign(first, httptest.NewRequest("POST", "/admin/stop-campaign", strings.NewReader(body)))
	if first.Code != 200 {
		t.Fatalf("first stop: got %d, want 200", first.Code)
	}
	if st.campaigns[campaign.ID].Status != domain.CampaignStatusStopped {
		t.Fatalf("campaign not stopped")
	}

	second := httptest.NewRecorder()
	app.AdminStopCampaign(second, httptest.NewRequest("POST", "/admin/stop-campaign", strings.NewReader(body)))
	if second.Code != 409 {
		t.Fatalf("second stop: got %d, want 409", second.Code)
	}
}

func TestAdminStatsListsPendingNGOs(t *testing.T) {
	app, st := newTestApp(t)
	pending := seedUser(st, domain.UserRoleNGO, 1)
	pending.Verified = false
	seedUser(st, domain.UserRoleNGO, 2)
	seedUser(st, domain.UserRoleDonor, 1)
	seedUser(st, domain.UserRoleVolunteer, 1)

	rr := httptest.NewRecorder()
	app.AdminStats(rr, httptest.NewRequest("GET", "/admin/stats", nil))

	if rr.Code != 200 {
		t.Fatalf("unexpected status: got %d, want 200", rr.Code)
	}
	var payload struct {
		Counts      map[string]int64 `json:"counts"`
		PendingNGOs []userDTO        `json:"pending_ngos"`
	}
	decodeBody(t, rr, &payload)
	if payload.Counts["total"] != 4 || payload.Counts["ngos"] != 2 {
		t.Fatalf("unexpected counts: %+v", payload.Counts)
	}
	if len(payload.PendingNGOs) != 1 || payload.PendingNGOs[0].ID != pending.ID {
		t.Fatalf("unexpected pending list: %+v", payload.PendingNGOs)
	}
}

func TestPublicStats(t *testing.T) {
	app, st := newTestApp(t)
	ngo := seedUser(st, domain.UserRoleNGO, 1)
	seedUser(st, domain.UserRoleDonor, 1)
	campaign := seedCampaign(st, ngo, 1)
	st.donations = append(st.donations,
		domain.Donation{ID: "donation-1", CampaignID: campaign.ID, Amount: 400},
		domain.Donation{ID: "donation-2", CampaignID: campaign.ID, Amount: 600},
	)

	rr := httptest.NewRecorder()
	app.PublicStats(rr, httptest.NewRequest("GET", "/public/stats", nil))

	if rr.Code != 200 {
		t.Fatalf("unexpected status: got %d, want 200", rr.Code)
	}
	var payload map[string]int64
	decodeBody(t, rr, &payload)
	if payload["raised"] != 1000 {
		t.Fatalf("raised %d, want 1000", payload["raised"])
	}
	if payload["ngos"] != 1 || payload["donors"] != 1 {
		t.Fatalf("unexpected counters: %+v", payload)
	}
}
