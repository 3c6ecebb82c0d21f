package httpserver

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"celestial-relay/api/internal/handle"
	"celestial-relay/api/internal/web"
)

// New assembles the relay's HTTP surface: the web client at the root, the
// relay endpoint, health and metrics.
func New(h *handle.Handle) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/functions/v1/celestial-info", h.Identify)
	mux.Handle("/", web.Handler())
	return mux
}
