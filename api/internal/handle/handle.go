package handle

import (
	"encoding/json"
	"net/http"

	"celestial-relay/api/internal/celestial"
)

type Handle struct {
	engine celestial.Engine
}

func New(engine celestial.Engine) *Handle {
	return &Handle{
		engine: engine,
	}
}

// allowedHeaders mirrors what browser clients send along with the request.
const allowedHeaders = "authorization, x-client-info, apikey, content-type"

// setCORS is applied to every response, errors and preflight included.
func setCORS(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Headers", allowedHeaders)
	h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
