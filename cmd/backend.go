// ABOUTME: Engine backends for CLI commands
// ABOUTME: Runs the estimator in-process or delegates to a remote server

package cmd

import (
	"context"
	"fmt"

	"github.com/markalston/graphite-capacity-planner/config"
	"github.com/markalston/graphite-capacity-planner/internal/client"
	"github.com/markalston/graphite-capacity-planner/models"
	"github.com/markalston/graphite-capacity-planner/services"
)

// backend computes estimates and scaling explorations.
type backend interface {
	Estimate(ctx context.Context, w *models.WorkloadParams, r *models.UserResources) (*models.EstimateResponse, error)
	Scaling(ctx context.Context, w *models.WorkloadParams, r *models.UserResources) (*models.ScalingAnalysis, error)
}

// localBackend runs the engine in-process.
type localBackend struct {
	estimator *services.Estimator
	explorer  *services.ScalingExplorer
}

func newLocalBackend(t services.Tuning) *localBackend {
	e := services.NewEstimator(t)
	return &localBackend{estimator: e, explorer: services.NewScalingExplorer(e)}
}

func (b *localBackend) Estimate(_ context.Context, w *models.WorkloadParams, r *models.UserResources) (*models.EstimateResponse, error) {
	est, err := b.estimator.Estimate(w, r)
	if err != nil {
		return nil, err
	}
	resp := models.NewEstimateResponse(est, b.estimator.Analyze(est.Requirements))
	return &resp, nil
}

func (b *localBackend) Scaling(ctx context.Context, w *models.WorkloadParams, r *models.UserResources) (*models.ScalingAnalysis, error) {
	analysis, err := b.explorer.Explore(ctx, w, r)
	if err != nil {
		return nil, err
	}
	return &analysis, nil
}

// newBackend returns the API client with --remote, otherwise the local
// engine configured from --tuning.
func newBackend() (backend, error) {
	if remote {
		return client.New(GetAPIURL()), nil
	}
	t, err := config.LoadTuning(tuningFile)
	if err != nil {
		return nil, fmt.Errorf("loading tuning: %w", err)
	}
	return newLocalBackend(t), nil
}
