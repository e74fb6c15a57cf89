package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"launchboard/internal/domain/product"
	"launchboard/internal/domain/user"
	"launchboard/internal/domain/vote"
	jwtpkg "launchboard/internal/platform/jwt"
	"launchboard/internal/worker"
)

type Handler struct {
	userSvc    *user.Service
	productSvc *product.Service
	voteSvc    *vote.Service
	jwtMgr     *jwtpkg.Manager
	voteCh     chan<- worker.VoteEvent
	db         *sql.DB
}

func NewRouter(
	userSvc *user.Service,
	productSvc *product.Service,
	voteSvc *vote.Service,
	jwtMgr *jwtpkg.Manager,
	voteCh chan<- worker.VoteEvent,
	db *sql.DB,
) http.Handler {
	h := &Handler{
		userSvc:    userSvc,
		productSvc: productSvc,
		voteSvc:    voteSvc,
		jwtMgr:     jwtMgr,
		voteCh:     voteCh,
		db:         db,
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(RequestLogger)
	r.Use(CORSMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/ready", h.handleReady)
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", h.handleRegister)
		r.Post("/auth/login", h.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(OptionalAuthMiddleware(jwtMgr))

			r.Get("/products", h.handleListProducts)
			r.Get("/products/featured", h.handleFeaturedProducts)
			r.Get("/products/recent", h.handleRecentProducts)
			r.Get("/products/{id}", h.handleGetProduct)
			r.Get("/products/slug/{slug}", h.handleGetProductBySlug)
		})

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(jwtMgr))

			r.Post("/products", h.handleSubmitProduct)
			r.With(RateLimitVotes(rate.Every(time.Minute/10), 3)).Post("/products/{id}/vote", h.handleVote)

			r.Group(func(r chi.Router) {
				r.Use(RequireAdmin)
				r.Patch("/products/{id}/status", h.handleUpdateProductStatus)
			})
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func parseIDParam(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}

func slugParam(r *http.Request) string {
	return chi.URLParam(r, "slug")
}

func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error":   "db_unavailable",
			"message": "database not configured",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error":   "db_unavailable",
			"message": "database not ready",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
