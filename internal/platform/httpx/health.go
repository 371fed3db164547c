package httpx

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Check is one named dependency check.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

// Liveness answers with a static ok payload.
func Liveness() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

// Readiness runs every check with a shared deadline. Any failure turns the
// response into a 503 problem naming the failing dependencies.
func Readiness(timeout time.Duration, checks ...Check) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		status := make(map[string]string, len(checks))
		var failed []string
		for _, check := range checks {
			if check.Ping == nil {
				continue
			}
			if err := check.Ping(ctx); err != nil {
				status[check.Name] = err.Error()
				failed = append(failed, check.Name)
				continue
			}
			status[check.Name] = "ok"
		}
		if len(failed) > 0 {
			Problem(w, http.StatusServiceUnavailable, "Not Ready", "unavailable: "+strings.Join(failed, ", "))
			return
		}
		JSON(w, http.StatusOK, map[string]any{"status": "ready", "checks": status})
	})
}
