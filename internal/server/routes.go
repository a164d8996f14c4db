package server

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/bobmcallan/portdash/internal/common"
)

// registerRoutes sets up the page, event and API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	cfg := s.app.Config

	// Page and events
	mux.HandleFunc("/", s.handlePage)
	mux.Handle("/events", rateLimitMiddleware(cfg.Server.EventRateLimit, cfg.Server.EventBurst, s.logger)(http.HandlerFunc(s.handleEvent)))

	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)

	// Read-only projections
	mux.HandleFunc("/api/selection", s.handleSelection)
	mux.HandleFunc("/api/users/", s.handleUserGet)
	mux.HandleFunc("/api/users", s.handleUserList)
	mux.HandleFunc("/api/stocks/", s.handleStockGet)
	mux.HandleFunc("/api/stocks", s.handleStockList)

	// Assets
	mux.HandleFunc("/charts/portfolio.svg", s.handlePortfolioChart)
	if dir := cfg.Data.LogosDir; dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			mux.Handle("/logos/", http.StripPrefix("/logos/", http.FileServer(http.Dir(dir))))
		} else {
			s.logger.Warn().Str("logos_dir", dir).Msg("Logo directory not found, logos disabled")
		}
	}
}

// --- System handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
		"uptime":  time.Since(s.app.StartupTime).Round(time.Second).String(),
	})
}

// pathParam returns the single path segment after prefix.
func pathParam(r *http.Request, prefix string) string {
	rest := strings.TrimPrefix(r.URL.Path, prefix)
	if idx := strings.Index(rest, "/"); idx >= 0 {
		rest = rest[:idx]
	}
	return rest
}
