package services

import (
	"strings"

	"saledup/internal/models"
)

// Predefined plans. The registry is fixed at compile time; plan resolution
// never fails, unknown names fall back to the trial tier.
var availablePlans = map[string]models.PlanDetails{
	models.PlanTrial: {
		Name:         models.PlanTrial,
		DisplayName:  "Trial",
		MaxEmployees: 5,
		MaxBranches:  1,
		Features: map[models.Feature]bool{
			models.FeatureReportsExport: true,
			models.FeaturePayroll:       true,
			models.FeatureMusterRoll:    true,
			models.FeatureRewardsSystem: true,
		},
	},
	models.PlanGrowth: {
		Name:         models.PlanGrowth,
		DisplayName:  "Growth",
		MaxEmployees: 25,
		MaxBranches:  3,
		Features: map[models.Feature]bool{
			models.FeatureReportsExport: true,
			models.FeaturePayroll:       true,
			models.FeatureMusterRoll:    true,
			models.FeatureRewardsSystem: true,
			models.FeatureMultiBranch:   true,
		},
	},
	models.PlanPro: {
		Name:         models.PlanPro,
		DisplayName:  "Pro",
		MaxEmployees: models.Unlimited,
		MaxBranches:  models.Unlimited,
		Features: map[models.Feature]bool{
			models.FeatureReportsExport: true,
			models.FeaturePayroll:       true,
			models.FeatureMusterRoll:    true,
			models.FeatureRewardsSystem: true,
			models.FeatureMultiBranch:   true,
			models.FeatureAITools:       true,
		},
	},
}

// ResolvePlan looks up a plan by name, case-insensitively. Unknown or empty
// names resolve to the trial tier rather than erroring; absence of a paid
// subscription is the default state, not a failure.
func ResolvePlan(planName string) models.PlanDetails {
	if plan, ok := availablePlans[strings.ToLower(strings.TrimSpace(planName))]; ok {
		return plan
	}
	return availablePlans[models.PlanTrial]
}

// HasReachedLimit reports whether a resource count has hit a plan limit.
// An Unlimited limit is never reached.
func HasReachedLimit(currentCount, limit int) bool {
	if limit == models.Unlimited {
		return false
	}
	return currentCount >= limit
}

// CanAccessFeature reports whether a plan enables the given feature.
func CanAccessFeature(plan models.PlanDetails, feature models.Feature) bool {
	return plan.Features[feature]
}

// AvailablePlans returns all subscription plans.
func AvailablePlans() map[string]models.PlanDetails {
	// Return a deep copy so callers cannot mutate the plan registry through
	// the shared feature maps.
	result := make(map[string]models.PlanDetails, len(availablePlans))
	for k, v := range availablePlans {
		features := make(map[models.Feature]bool, len(v.Features))
		for f, enabled := range v.Features {
			features[f] = enabled
		}
		v.Features = features
		result[k] = v
	}
	return result
}
