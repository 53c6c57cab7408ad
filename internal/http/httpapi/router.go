package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"server/internal/domain"
	"server/internal/http/handlers"
	"server/internal/infra"
	"server/internal/middleware"
)

// NewRouter assembles the API surface. Campaign and volunteer listings are
// public; everything that acts on behalf of an account sits behind the JWT
// middleware, and the admin routes additionally require the admin role.
func NewRouter(app *handlers.App, cfg *infra.Config, logger zerolog.Logger, country middleware.CountryLookup) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, chimw.RealIP, chimw.Recoverer)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics(app.Metrics.HTTPRequests))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.I18N(cfg.DefaultLocale, country))
	r.Use(middleware.RateLimit(cfg.RateLimitPerMin, time.Minute))

	authed := middleware.AuthJWT(cfg.JWTSecret)

	r.Get("/v1/healthz", app.Health)
	r.Method(stdhttp.MethodGet, "/metrics", app.Metrics.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", app.AuthRegister)
		r.Post("/login", app.AuthLogin)
		r.Group(func(r chi.Router) {
			r.Use(authed)
			r.Get("/profile", app.Profile)
			r.Put("/profile", app.ProfileUpdate)
		})
	})

	r.Route("/public", func(r chi.Router) {
		r.Get("/stats", app.PublicStats)
	})

	r.Route("/campaigns", func(r chi.Router) {
		r.Get("/", app.CampaignsList)
		r.Group(func(r chi.Router) {
			r.Use(authed)
			r.Post("/", app.CampaignsCreate)
			r.Get("/my", app.CampaignsMine)
			r.Get("/{id}/donations", app.CampaignDonations)
			// Legacy entry points from the campaign API; same recorder.
			r.Post("/donate", app.DonationsCreate)
			r.Get("/my-donations", app.DonationsMine)
		})
	})

	r.Route("/donations", func(r chi.Router) {
		r.Use(authed)
		r.Post("/", app.DonationsCreate)
		r.Get("/my", app.DonationsMine)
	})

	r.Route("/volunteers", func(r chi.Router) {
		r.Get("/", app.PostsList)
		r.Group(func(r chi.Router) {
			r.Use(authed)
			r.Post("/", app.PostsCreate)
			r.Get("/my", app.PostsMine)
			r.Post("/apply", app.PostsApply)
			r.Get("/applications", app.ApplicationsMine)
			r.Get("/{id}/applications", app.PostApplications)
		})
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(authed, middleware.RequireRole(domain.UserRoleAdmin))
		r.Get("/stats", app.AdminStats)
		r.Post("/stop-campaign", app.AdminStopCampaign)
		r.Post("/approve-ngo", app.AdminApproveNGO)
		r.Post("/reject-ngo", app.AdminRejectNGO)
	})

	return r
}
