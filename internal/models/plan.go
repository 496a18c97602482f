package models

// Feature is a gated capability bundled into a subscription plan. The set is
// closed; handlers only ever pass one of the constants below.
type Feature string

const (
	FeatureReportsExport Feature = "REPORTS_EXPORT"
	FeaturePayroll       Feature = "PAYROLL"
	FeatureMusterRoll    Feature = "MUSTER_ROLL"
	FeatureRewardsSystem Feature = "REWARDS_SYSTEM"
	FeatureMultiBranch   Feature = "MULTI_BRANCH"
	FeatureAITools       Feature = "AI_TOOLS"
)

// Unlimited marks a resource limit with no upper bound.
const Unlimited = -1

// Plan names. Unknown or missing plan names resolve to the trial tier.
const (
	PlanTrial  = "trial"
	PlanGrowth = "growth"
	PlanPro    = "pro"
)

// PlanDetails describes a subscription tier: resource limits plus the set of
// enabled features. Plans are defined at compile time and never mutated.
type PlanDetails struct {
	Name         string           `json:"name"`
	DisplayName  string           `json:"display_name"`
	MaxEmployees int              `json:"max_employees"`
	MaxBranches  int              `json:"max_branches"`
	Features     map[Feature]bool `json:"features"`
}
