package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/okian/rostermatch/internal/app"
)

// Option applies a configuration option to the resolve handler.
type Option func(*ResolveHandler)

// WithResolveTimeout bounds how long one resolution call may run. Zero or
// negative disables the deadline.
func WithResolveTimeout(d time.Duration) Option {
	return func(h *ResolveHandler) {
		h.timeout = d
	}
}

// resolveRequest mirrors the request schema for POST /resolve.
type resolveRequest struct {
	Text string `json:"text"`
}

func (r resolveRequest) validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return errors.New("missing text")
	}
	return nil
}

// ResolveHandler handles mention-resolution requests.
type ResolveHandler struct {
	deps    Dependencies
	timeout time.Duration
}

// NewResolveHandler creates a new resolve handler.
func NewResolveHandler(deps Dependencies, opts ...Option) *ResolveHandler {
	h := &ResolveHandler{deps: deps}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HandleResolve handles POST /resolve requests.
func (h *ResolveHandler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	const op = "api.resolve"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", wrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", wrapKind(op, ErrBadRequest, err))
		return
	}

	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	res, err := h.deps.Resolve(ctx, req.Text)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, res)
	case errors.Is(err, app.ErrSaturated):
		writeError(w, http.StatusTooManyRequests, "backpressure", wrapKind(op, ErrBackpressure, err))
	case errors.Is(err, app.ErrNoIndex):
		writeError(w, http.StatusServiceUnavailable, "unavailable", wrapKind(op, ErrUnavailable, err))
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "timeout", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal", err)
	}
}
