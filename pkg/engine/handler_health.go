// Health and readiness probe handlers for the data engine.

package engine

import (
	"net/http"
	"time"

	"github.com/invmock/invmock/pkg/httputil"
)

// handleHealth handles the liveness probe endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteOK(w, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleReady handles the readiness probe endpoint. The engine is ready once
// the seed data is in place.
func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteOK(w, map[string]any{
		"status": "ready",
		"checks": map[string]any{
			"items":    map[string]any{"count": s.store.Items.Len(), "status": "ok"},
			"invoices": map[string]any{"count": s.store.Invoices.Len(), "status": "ok"},
		},
	})
}
