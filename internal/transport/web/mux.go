package web

import (
	"context"
	"net/http"

	"github.com/Olprog59/go-fromagerie/internal/dto"
)

// NewMux creates and configures the HTTP router / Crée et configure le routeur HTTP
// Background work started by the middleware stops when ctx is cancelled.
func NewMux(ctx context.Context, h *Handler) http.Handler {
	c := h.container
	conf := c.Config
	mux := http.NewServeMux()
	mw := NewMiddleware(ctx, conf, c.Metrics)

	mux.HandleFunc("GET /{$}", h.Home)

	// Probes for load balancers and orchestrators
	mux.HandleFunc("GET /health", h.HealthCheck)
	mux.HandleFunc("GET /readiness", h.ReadinessCheck)

	if conf.Metrics.Enabled {
		mux.Handle("GET /metrics", c.Metrics.Handler())
	}

	NewResource("/clients", c.Clients, intKey, dto.ClientToDTO).Register(mux)
	NewResource("/commandes", c.Commandes, intKey, dto.CommandeToDTO).Register(mux)
	NewResource("/communes", c.Communes, intKey, dto.CommuneToDTO).Register(mux)
	NewResource("/conditionnements", c.Conditionnements, intKey, dto.ConditionnementToDTO).Register(mux)
	NewResource("/departements", c.Departements, stringKey, dto.DepartementToDTO).Register(mux)
	NewResource("/objets", c.Objets, intKey, dto.ObjetToDTO).Register(mux)
	NewResource("/utilisateurs", c.Utilisateurs, intKey, dto.UtilisateurToDTO).Register(mux)

	// Global middlewares - applied in reverse order / Middlewares globaux appliqués en ordre inverse
	var handler http.Handler = mux
	handler = mw.MetricsMiddleware(handler) // innermost, sees the matched pattern
	handler = mw.RateLimit(handler)
	handler = mw.SecurityHeaders(handler)
	handler = mw.Cors(handler)
	handler = Timeout(conf.Server.RequestTimeout)(handler)
	handler = Logging(handler)
	handler = RequestID(handler) // RequestID first - generates ID for all middleware

	return handler
}
