// ABOUTME: HTTP handlers for estimation, scaling exploration, and analysis
// ABOUTME: Memoizes results by normalized input and reports engine failures as 500s

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/markalston/graphite-capacity-planner/middleware"
	"github.com/markalston/graphite-capacity-planner/models"
	"github.com/markalston/graphite-capacity-planner/services"
)

// Estimate computes resource requirements plus bottleneck advice.
func (h *Handler) Estimate(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.EstimateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	wl := models.NormalizeWorkload(req.Workload)
	res := models.NormalizeResources(req.Resources)

	result, hit, err := h.memoize(cacheKey("estimate", wl, res), func() (interface{}, error) {
		est, err := h.estimator.Estimate(&wl, &res)
		h.observeEstimate("estimate", err)
		if err != nil {
			return nil, err
		}
		analysis := h.estimator.Analyze(est.Requirements)
		h.observeBottleneck(analysis)
		return models.NewEstimateResponse(est, analysis), nil
	})
	if err != nil {
		h.engineError(w, r, "estimate", err)
		return
	}

	setCacheHeader(w, hit)
	writeJSON(w, http.StatusOK, result)
}

// Scaling sweeps instance counts for both tiers.
func (h *Handler) Scaling(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.EstimateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	wl := models.NormalizeWorkload(req.Workload)
	res := models.NormalizeResources(req.Resources)

	// Shared computations must not be canceled by the first caller leaving
	ctx := context.WithoutCancel(r.Context())

	result, hit, err := h.memoize(cacheKey("scaling", wl, res), func() (interface{}, error) {
		analysis, err := h.explorer.Explore(ctx, &wl, &res)
		h.observeEstimate("scaling", err)
		if err != nil {
			return nil, err
		}
		return analysis, nil
	})
	if err != nil {
		h.engineError(w, r, "scaling", err)
		return
	}

	setCacheHeader(w, hit)
	writeJSON(w, http.StatusOK, result)
}

// Analysis ranks caller-supplied requirements without re-estimating.
func (h *Handler) Analysis(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.AnalysisRequest
	if !decodeBody(w, r, &req) {
		return
	}

	analysis := h.estimator.Analyze(req.Requirements)
	h.observeEstimate("analysis", nil)

	writeJSON(w, http.StatusOK, analysis)
}

func (h *Handler) engineError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	slog.Error("Engine computation failed",
		"request_id", middleware.RequestID(r.Context()),
		"operation", operation,
		"error", err,
	)

	if errors.Is(err, services.ErrNonFiniteResult) {
		writeError(w, "Inputs produced a non-finite result", http.StatusInternalServerError)
		return
	}
	writeError(w, "Computation failed", http.StatusInternalServerError)
}

func setCacheHeader(w http.ResponseWriter, hit bool) {
	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
}
