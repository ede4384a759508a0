package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hobbyhub-app/hobby-directory-api/internal/app/accounts"
	"github.com/hobbyhub-app/hobby-directory-api/internal/app/activities"
	"github.com/hobbyhub-app/hobby-directory-api/internal/domain"
	"github.com/hobbyhub-app/hobby-directory-api/internal/ports/out/refdatarepo"
)

// Deps collects everything the router needs.
type Deps struct {
	Accounts   *accounts.Service
	Activities *activities.Service
	RefData    refdatarepo.Repository

	MaxUploadBytes int64
}

// NewRouter constructs the API HTTP router.
//
// This is intentionally a thin adapter: handlers decode/encode JSON and
// delegate every decision to the application services.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	// Baseline production-safe middleware (minimal but useful).
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// Health and metrics endpoints are unauthenticated infra surfaces.
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	acc := &accountsHandlers{svc: deps.Accounts}
	act := &activitiesHandlers{svc: deps.Activities, maxUploadBytes: deps.MaxUploadBytes}
	ref := &refdataHandlers{repo: deps.RefData}

	r.Route("/v1", func(r chi.Router) {
		r.Use(NewAuthMiddleware(deps.Accounts))

		r.Post("/auth/signup", acc.signUp)
		r.Post("/auth/login", acc.login)

		r.Get("/categories", ref.categories)
		r.Get("/tags", ref.tags)

		r.Get("/activities", act.list)

		// Registered before the wildcard so "mine" never resolves as an ID.
		r.Group(func(r chi.Router) {
			r.Use(RequireRoles(domain.RoleOrganizer))
			r.Get("/activities/mine", act.mine)
			r.Get("/activities/mine/stats", act.stats)
			r.Post("/activities", act.create)
			r.Patch("/activities/{id}", act.update)
			r.Delete("/activities/{id}", act.delete)
			r.Post("/activities/{id}/image", act.uploadImage)
		})

		r.Get("/activities/{id}", act.get)

		r.Group(func(r chi.Router) {
			r.Use(RequireRoles(domain.RoleUser))
			r.Post("/auth/logout", acc.logout)
			r.Get("/me", acc.me)
			r.Patch("/me", acc.updateMe)
			r.Put("/me/password", acc.changePassword)
		})
	})

	return r
}
