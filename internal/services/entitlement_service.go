package services

import (
	"context"
	"errors"
	"fmt"

	"saledup/internal/models"
	"saledup/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrFeatureLocked        = errors.New("feature not included in current plan")
	ErrEmployeeLimitReached = errors.New("employee limit reached for current plan")
	ErrBranchLimitReached   = errors.New("branch limit reached for current plan")
)

// EntitlementService resolves a shop's effective plan and enforces its limits
// and feature gates against current resource counts.
type EntitlementService interface {
	EffectivePlan(ctx context.Context, shopID uuid.UUID) models.PlanDetails
	RequireFeature(ctx context.Context, shopID uuid.UUID, feature models.Feature) error
	CheckEmployeeLimit(ctx context.Context, shopID uuid.UUID) error
	CheckBranchLimit(ctx context.Context, shopID uuid.UUID) error
}

type entitlementService struct {
	subscriptionRepo repositories.SubscriptionRepository
	employeeRepo     repositories.EmployeeRepository
	branchRepo       repositories.BranchRepository
}

func NewEntitlementService(
	subscriptionRepo repositories.SubscriptionRepository,
	employeeRepo repositories.EmployeeRepository,
	branchRepo repositories.BranchRepository,
) EntitlementService {
	return &entitlementService{
		subscriptionRepo: subscriptionRepo,
		employeeRepo:     employeeRepo,
		branchRepo:       branchRepo,
	}
}

// EffectivePlan resolves the shop's current plan. A missing subscription row
// or an unrecognized plan name both resolve to trial.
func (s *entitlementService) EffectivePlan(ctx context.Context, shopID uuid.UUID) models.PlanDetails {
	subscription, err := s.subscriptionRepo.GetByShop(ctx, shopID)
	if err != nil || subscription == nil {
		return ResolvePlan(models.PlanTrial)
	}
	if subscription.Status == models.SubscriptionStatusInactive {
		return ResolvePlan(models.PlanTrial)
	}
	return ResolvePlan(subscription.PlanName)
}

func (s *entitlementService) RequireFeature(ctx context.Context, shopID uuid.UUID, feature models.Feature) error {
	plan := s.EffectivePlan(ctx, shopID)
	if !CanAccessFeature(plan, feature) {
		return fmt.Errorf("%w: %s requires an upgrade from %s", ErrFeatureLocked, feature, plan.Name)
	}
	return nil
}

func (s *entitlementService) CheckEmployeeLimit(ctx context.Context, shopID uuid.UUID) error {
	plan := s.EffectivePlan(ctx, shopID)
	count, err := s.employeeRepo.CountByShop(ctx, shopID)
	if err != nil {
		return fmt.Errorf("failed to count employees: %v", err)
	}
	if HasReachedLimit(count, plan.MaxEmployees) {
		return fmt.Errorf("%w: %d/%d on %s", ErrEmployeeLimitReached, count, plan.MaxEmployees, plan.Name)
	}
	return nil
}

func (s *entitlementService) CheckBranchLimit(ctx context.Context, shopID uuid.UUID) error {
	plan := s.EffectivePlan(ctx, shopID)
	if !CanAccessFeature(plan, models.FeatureMultiBranch) {
		count, err := s.branchRepo.CountByShop(ctx, shopID)
		if err != nil {
			return fmt.Errorf("failed to count branches: %v", err)
		}
		if count >= 1 {
			return fmt.Errorf("%w: multi-branch requires an upgrade from %s", ErrFeatureLocked, plan.Name)
		}
		return nil
	}
	count, err := s.branchRepo.CountByShop(ctx, shopID)
	if err != nil {
		return fmt.Errorf("failed to count branches: %v", err)
	}
	if HasReachedLimit(count, plan.MaxBranches) {
		return fmt.Errorf("%w: %d/%d on %s", ErrBranchLimitReached, count, plan.MaxBranches, plan.Name)
	}
	return nil
}
