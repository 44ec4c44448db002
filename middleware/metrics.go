// ABOUTME: Prometheus instrumentation middleware
// ABOUTME: Records request count and latency per route template

package middleware

import (
	"net/http"
	"time"

	"github.com/markalston/graphite-capacity-planner/metrics"
)

// Instrument records every request under route. A nil m disables it.
func Instrument(m *metrics.Metrics, route string) Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		if m == nil {
			return next
		}
		return func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := wrap(w)

			next(wrapped, r)

			m.ObserveRequest(route, r.Method, wrapped.statusCode, time.Since(start))
		}
	}
}
