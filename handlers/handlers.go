// ABOUTME: HTTP handlers for the capacity planner API
// ABOUTME: Wires the estimator, explorer, result cache, and metrics together

package handlers

import (
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/markalston/graphite-capacity-planner/cache"
	"github.com/markalston/graphite-capacity-planner/metrics"
	"github.com/markalston/graphite-capacity-planner/models"
	"github.com/markalston/graphite-capacity-planner/services"
)

type Handler struct {
	estimator    *services.Estimator
	explorer     *services.ScalingExplorer
	cache        *cache.Cache     // nil disables memoization
	metrics      *metrics.Metrics // nil disables instrumentation
	group        singleflight.Group
	tuningSource string
	started      time.Time
}

// NewHandler creates a handler. A nil estimator uses the default coefficients.
func NewHandler(estimator *services.Estimator, c *cache.Cache, m *metrics.Metrics) *Handler {
	if estimator == nil {
		estimator = services.NewEstimator(services.DefaultTuning())
	}
	return &Handler{
		estimator:    estimator,
		explorer:     services.NewScalingExplorer(estimator),
		cache:        c,
		metrics:      m,
		tuningSource: "default",
		started:      time.Now(),
	}
}

// WithTuningSource records where the coefficients came from for health output.
func (h *Handler) WithTuningSource(source string) *Handler {
	if source != "" {
		h.tuningSource = source
	}
	return h
}

// memoize returns the cached value for key or computes it once, collapsing
// concurrent identical requests. The bool reports a cache hit.
func (h *Handler) memoize(key string, compute func() (interface{}, error)) (interface{}, bool, error) {
	if h.cache != nil {
		if cached, found := h.cache.Get(key); found {
			h.observeCache(true)
			return cached, true, nil
		}
		h.observeCache(false)
	}

	v, err, shared := h.group.Do(key, func() (interface{}, error) {
		result, err := compute()
		if err != nil {
			return nil, err
		}
		if h.cache != nil {
			h.cache.Set(key, result)
		}
		return result, nil
	})
	if shared {
		slog.Debug("Shared in-flight computation", "key", key)
	}
	return v, false, err
}

func (h *Handler) observeCache(hit bool) {
	if h.metrics != nil {
		h.metrics.ObserveCacheLookup(hit)
	}
}

func (h *Handler) observeEstimate(operation string, err error) {
	if h.metrics == nil {
		return
	}
	h.metrics.EstimateCount.WithLabelValues(operation).Inc()
	if err != nil {
		h.metrics.EstimateErrors.WithLabelValues(operation).Inc()
	}
}

func (h *Handler) observeBottleneck(analysis models.BottleneckAnalysis) {
	if h.metrics == nil || len(analysis.Resources) == 0 {
		return
	}
	h.metrics.BottleneckCount.WithLabelValues(string(analysis.Resources[0].Kind)).Inc()
}

// cacheKey identifies a computation by its normalized inputs.
func cacheKey(operation string, w models.WorkloadParams, r models.UserResources) string {
	return fmt.Sprintf("%s:%+v:%+v", operation, w, r)
}
