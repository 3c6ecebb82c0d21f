package handle

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"celestial-relay/api/internal/celestial"
	"celestial-relay/api/internal/metrics"
)

const defaultDeadline = 180 * time.Second

const (
	rateLimitMessage = "Rate limits exceeded. Please try again later."
	paymentMessage   = "Payment required. Please add credits and try again."
)

// Identify handles POST /functions/v1/celestial-info and the matching
// OPTIONS preflight.
func (h *Handle) Identify(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST only")
		return
	}

	var req celestial.IdentifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	deadline := defaultDeadline
	if ts := r.Header.Get("X-Request-Timeout"); ts != "" {
		if v, _ := strconv.Atoi(ts); v > 0 {
			deadline = time.Duration(v) * time.Second
		}
	}
	ctx, cancel := context.WithTimeout(r.Context(), deadline)
	defer cancel()

	start := time.Now()
	info, err := h.engine.Identify(ctx, req)
	outcome := outcomeLabel(err)
	metrics.IdentifyTotal.WithLabelValues(outcome).Inc()
	metrics.IdentifyDurationSeconds.WithLabelValues(outcome).Observe(time.Since(start).Seconds())

	if err != nil {
		log.Printf("identify (%s) failed: %v", req.Type, err)
		switch {
		case errors.Is(err, celestial.ErrRateLimited):
			writeError(w, http.StatusTooManyRequests, rateLimitMessage)
		case errors.Is(err, celestial.ErrPaymentRequired):
			writeError(w, http.StatusPaymentRequired, paymentMessage)
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, info)
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, celestial.ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, celestial.ErrPaymentRequired):
		return "payment_required"
	default:
		return "error"
	}
}
