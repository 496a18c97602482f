package services

import (
	"testing"

	"saledup/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestResolvePlan_KnownPlans(t *testing.T) {
	assert.Equal(t, models.PlanTrial, ResolvePlan("trial").Name)
	assert.Equal(t, models.PlanGrowth, ResolvePlan("growth").Name)
	assert.Equal(t, models.PlanPro, ResolvePlan("pro").Name)
}

func TestResolvePlan_CaseAndWhitespaceInsensitive(t *testing.T) {
	assert.Equal(t, models.PlanPro, ResolvePlan("PRO").Name)
	assert.Equal(t, models.PlanGrowth, ResolvePlan("  Growth  ").Name)
	assert.Equal(t, models.PlanTrial, ResolvePlan("TrIaL").Name)
}

func TestResolvePlan_UnknownFallsBackToTrial(t *testing.T) {
	assert.Equal(t, models.PlanTrial, ResolvePlan("enterprise").Name)
	assert.Equal(t, models.PlanTrial, ResolvePlan("").Name)
}

func TestHasReachedLimit(t *testing.T) {
	assert.False(t, HasReachedLimit(4, 5))
	assert.True(t, HasReachedLimit(5, 5))
	assert.True(t, HasReachedLimit(6, 5))
}

func TestHasReachedLimit_UnlimitedNeverReached(t *testing.T) {
	assert.False(t, HasReachedLimit(0, models.Unlimited))
	assert.False(t, HasReachedLimit(1000000, models.Unlimited))
}

func TestPlanFeatureMatrix(t *testing.T) {
	trial := ResolvePlan(models.PlanTrial)
	growth := ResolvePlan(models.PlanGrowth)
	pro := ResolvePlan(models.PlanPro)

	// Trial covers the core feature set but not branches or AI tools.
	assert.True(t, CanAccessFeature(trial, models.FeatureReportsExport))
	assert.True(t, CanAccessFeature(trial, models.FeaturePayroll))
	assert.True(t, CanAccessFeature(trial, models.FeatureMusterRoll))
	assert.True(t, CanAccessFeature(trial, models.FeatureRewardsSystem))
	assert.False(t, CanAccessFeature(trial, models.FeatureMultiBranch))
	assert.False(t, CanAccessFeature(trial, models.FeatureAITools))

	// Growth adds multi-branch only.
	assert.True(t, CanAccessFeature(growth, models.FeatureMultiBranch))
	assert.False(t, CanAccessFeature(growth, models.FeatureAITools))

	// Pro has everything.
	assert.True(t, CanAccessFeature(pro, models.FeatureReportsExport))
	assert.True(t, CanAccessFeature(pro, models.FeaturePayroll))
	assert.True(t, CanAccessFeature(pro, models.FeatureMusterRoll))
	assert.True(t, CanAccessFeature(pro, models.FeatureRewardsSystem))
	assert.True(t, CanAccessFeature(pro, models.FeatureMultiBranch))
	assert.True(t, CanAccessFeature(pro, models.FeatureAITools))
}

func TestPlanLimits(t *testing.T) {
	assert.Equal(t, 5, ResolvePlan(models.PlanTrial).MaxEmployees)
	assert.Equal(t, 1, ResolvePlan(models.PlanTrial).MaxBranches)
	assert.Equal(t, 25, ResolvePlan(models.PlanGrowth).MaxEmployees)
	assert.Equal(t, 3, ResolvePlan(models.PlanGrowth).MaxBranches)
	assert.Equal(t, models.Unlimited, ResolvePlan(models.PlanPro).MaxEmployees)
	assert.Equal(t, models.Unlimited, ResolvePlan(models.PlanPro).MaxBranches)
}

func TestAvailablePlans_ReturnsCopy(t *testing.T) {
	plans := AvailablePlans()
	assert.Len(t, plans, 3)

	delete(plans, models.PlanPro)
	assert.Len(t, AvailablePlans(), 3)
}

func TestAvailablePlans_FeatureMapsAreCopies(t *testing.T) {
	plans := AvailablePlans()
	plans[models.PlanTrial].Features[models.FeatureAITools] = true

	assert.False(t, CanAccessFeature(ResolvePlan(models.PlanTrial), models.FeatureAITools))
}
