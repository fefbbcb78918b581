package graphql

import (
	"encoding/json"
	"net/http"

	"github.com/invmock/invmock/pkg/httputil"
)

// Handler serves an Executor over HTTP. Requests are POSTed JSON bodies in
// the standard {query, operationName, variables} envelope.
type Handler struct {
	executor *Executor
}

// NewHandler creates an HTTP handler around the executor.
func NewHandler(executor *Executor) *Handler {
	return &Handler{executor: executor}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		httputil.WriteJSON(w, http.StatusMethodNotAllowed, &Response{
			Errors: []Error{{Message: "method not allowed, use POST"}},
		})
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, &Response{
			Errors: []Error{{Message: "invalid request body: " + err.Error()}},
		})
		return
	}

	resp := h.executor.Execute(r.Context(), &req)
	httputil.WriteOK(w, resp)
}
