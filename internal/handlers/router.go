// internal/handlers/router.go
package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"creator-moderation/internal/middleware"
)

// NewRouter wires the moderation API, the CSRF token endpoint and the
// operational endpoints.
func NewRouter(h *Handler, csrfStore *middleware.CSRFTokenStore, gatherer prometheus.Gatherer, logger *zap.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(logger))

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods("GET")
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods("GET")

	// CSRF token endpoint (no CSRF protection needed for this)
	r.HandleFunc("/api/csrf-token", middleware.CSRFTokenHandler(csrfStore)).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.CSRFMiddleware(csrfStore, logger))
	h.Register(api)

	return r
}
