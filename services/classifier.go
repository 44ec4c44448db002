// ABOUTME: Shared utilization classifier and rounding helpers for all estimators
// ABOUTME: Maps required/available to healthy, warning, or critical status

package services

import (
	"math"

	"github.com/markalston/graphite-capacity-planner/models"
)

// Classify maps a utilization ratio to a status. Boundaries belong to the
// lower band: exactly the warning threshold is still healthy.
func (s StatusThresholds) Classify(utilization float64) models.Status {
	switch {
	case utilization > s.Critical:
		return models.StatusCritical
	case utilization > s.Warning:
		return models.StatusWarning
	default:
		return models.StatusHealthy
	}
}

// newResource classifies required against available and builds the Resource.
func (e *Estimator) newResource(value, required, available float64, unit, explanation string) models.Resource {
	utilization := required / available
	return models.Resource{
		Value:       value,
		Unit:        unit,
		Status:      e.tuning.Status.Classify(utilization),
		Utilization: utilization,
		Explanation: explanation,
	}
}

// integerTolerance is how close to a whole number a value must be to count as one.
const integerTolerance = 1e-9

// ceilStable rounds up while ignoring binary representation noise, so
// 0.1*30 rounds to 3 rather than 4. Exact integers are returned unchanged at
// any magnitude.
func ceilStable(x float64) float64 {
	if x <= 0 {
		return 0
	}
	if nearest := math.Round(x); math.Abs(x-nearest) < integerTolerance {
		return nearest
	}
	return math.Ceil(x)
}

// ceilTenth rounds up to one decimal place.
func ceilTenth(x float64) float64 {
	return ceilStable(x*10) / 10
}

// roundTenth rounds half away from zero to one decimal place.
func roundTenth(x float64) float64 {
	return math.Round(x*10) / 10
}
