package httpx

import (
	"encoding/json"
	"net/http"
	"time"
)

// Every portal response is wrapped in the same envelope: data on success,
// error on failure, and the server timestamp either way.
type responseEnvelope struct {
	Data  any    `json:"data,omitempty"`
	Time  string `json:"time"`
	Error any    `json:"error,omitempty"`
}

func write(w http.ResponseWriter, status int, env responseEnvelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	env.Time = time.Now().UTC().Format(time.RFC3339)
	_ = json.NewEncoder(w).Encode(env)
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	write(w, status, responseEnvelope{Data: v})
}

func WriteError[T any](w http.ResponseWriter, status int, errBody ErrorResponse[T]) {
	write(w, status, responseEnvelope{Error: errBody})
}
