package handlers

import (
	"net/http"
	"time"
)

var startedAt = time.Now()

// Health: liveness для балансировщика.
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(`{"status":"ok","uptime":"` + time.Since(startedAt).Round(time.Second).String() + `"}`))
}
