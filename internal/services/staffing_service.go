package services

import (
	"fmt"
	"math"
)

// Business type identifiers for the staffing rule table. Unrecognized types
// fall back to BusinessTypeOther.
const (
	BusinessTypeRetail  = "Retail"
	BusinessTypeFood    = "Food & Beverage"
	BusinessTypeService = "Service"
	BusinessTypeMSME    = "MSME"
	BusinessTypeOther   = "Other"
)

// staffingRule drives the advice for one business category: monthly turnover
// handled per staff member, an ordered primary/secondary/support role split,
// and a monthly salary band per head.
type staffingRule struct {
	TurnoverPerStaff float64
	Roles            [3]string
	MinSalary        float64
	MaxSalary        float64
	EfficiencyTip    string
}

var staffingRules = map[string]staffingRule{
	BusinessTypeRetail: {
		TurnoverPerStaff: 250000,
		Roles:            [3]string{"Sales Associate", "Cashier", "Store Helper"},
		MinSalary:        12000,
		MaxSalary:        18000,
		EfficiencyTip:    "Cross-train cashiers on the sales floor to cover rush hours without extra hires.",
	},
	BusinessTypeFood: {
		TurnoverPerStaff: 150000,
		Roles:            [3]string{"Cook", "Server", "Kitchen Helper"},
		MinSalary:        10000,
		MaxSalary:        16000,
		EfficiencyTip:    "Stagger shifts around meal peaks; a split shift beats a full extra headcount.",
	},
	BusinessTypeService: {
		TurnoverPerStaff: 200000,
		Roles:            [3]string{"Technician", "Receptionist", "Assistant"},
		MinSalary:        12000,
		MaxSalary:        20000,
		EfficiencyTip:    "Use appointment slots to smooth demand; idle technician hours are your biggest cost.",
	},
	BusinessTypeMSME: {
		TurnoverPerStaff: 300000,
		Roles:            [3]string{"Operator", "Supervisor", "Helper"},
		MinSalary:        11000,
		MaxSalary:        17000,
		EfficiencyTip:    "One supervisor per shift is enough below ten operators; add helpers before supervisors.",
	},
	BusinessTypeOther: {
		TurnoverPerStaff: 200000,
		Roles:            [3]string{"Staff", "Assistant", "Helper"},
		MinSalary:        10000,
		MaxSalary:        15000,
		EfficiencyTip:    "Track daily sales per staff member for a month before committing to new hires.",
	},
}

type RoleAllocation struct {
	Role  string `json:"role"`
	Count int    `json:"count"`
}

type StaffingAdvice struct {
	BusinessType      string           `json:"business_type"`
	OptimalStaffCount int              `json:"optimal_staff_count"`
	CurrentStaffCount int              `json:"current_staff_count"`
	RoleBreakdown     []RoleAllocation `json:"role_breakdown"`
	SalaryBudgetMin   int              `json:"salary_budget_min"`
	SalaryBudgetMax   int              `json:"salary_budget_max"`
	EfficiencyTip     string           `json:"efficiency_tip"`
	Recommendation    string           `json:"recommendation"`
}

// ComputeStaffingAdvice maps turnover and current headcount to a recommended
// staffing plan. Fully deterministic; same inputs always give the same advice.
// Yearly turnover, when supplied, takes precedence over the monthly figure.
func ComputeStaffingAdvice(businessType string, monthlyTurnover, yearlyTurnover float64, currentStaffCount int) StaffingAdvice {
	rule, ok := staffingRules[businessType]
	if !ok {
		businessType = BusinessTypeOther
		rule = staffingRules[BusinessTypeOther]
	}

	effectiveMonthly := monthlyTurnover
	if yearlyTurnover > 0 {
		effectiveMonthly = yearlyTurnover / 12
	}

	advice := StaffingAdvice{
		BusinessType:      businessType,
		CurrentStaffCount: currentStaffCount,
		EfficiencyTip:     rule.EfficiencyTip,
	}

	if effectiveMonthly <= 0 {
		advice.Recommendation = "Enter your monthly or yearly turnover to get a staffing recommendation."
		return advice
	}

	optimal := int(math.Ceil(effectiveMonthly / rule.TurnoverPerStaff))
	if optimal < 1 {
		optimal = 1
	}

	advice.OptimalStaffCount = optimal
	advice.RoleBreakdown = splitRoles(optimal, rule.Roles)
	advice.SalaryBudgetMin = int(math.Round(float64(optimal) * rule.MinSalary))
	advice.SalaryBudgetMax = int(math.Round(float64(optimal) * rule.MaxSalary))
	advice.Recommendation = recommendationText(optimal, currentStaffCount)

	return advice
}

// splitRoles allocates a headcount across the rule's ordered roles:
// 1 staff all primary, 2-3 split half and half (ceiling to primary), above 3
// roughly 50/30 with the remainder on the support role. Empty buckets and
// missing role names are omitted.
func splitRoles(count int, roles [3]string) []RoleAllocation {
	var allocations [3]int
	switch {
	case count == 1:
		allocations[0] = 1
	case count <= 3:
		allocations[0] = (count + 1) / 2
		allocations[1] = count - allocations[0]
	default:
		allocations[0] = int(math.Ceil(float64(count) * 0.5))
		allocations[1] = int(math.Floor(float64(count) * 0.3))
		allocations[2] = count - allocations[0] - allocations[1]
	}

	var breakdown []RoleAllocation
	for i, n := range allocations {
		if n > 0 && roles[i] != "" {
			breakdown = append(breakdown, RoleAllocation{Role: roles[i], Count: n})
		}
	}
	return breakdown
}

// recommendationText covers every integer difference between the optimal and
// current headcount with exactly one branch.
func recommendationText(optimal, current int) string {
	diff := optimal - current
	switch {
	case diff > 1:
		return fmt.Sprintf("You should hire %d more staff members to match your turnover.", diff)
	case diff == 1:
		return "Consider hiring one more staff member to keep up with your turnover."
	case diff == 0:
		return "Your staffing level is optimal. Focus on training and retention."
	default:
		return "You appear overstaffed for your turnover. Ensure every staff member has a clear role."
	}
}
