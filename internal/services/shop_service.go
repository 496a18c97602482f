package services

import (
	"context"
	"fmt"
	"log"

	"saledup/internal/caching"
	"saledup/internal/models"
	"saledup/internal/repositories"

	"github.com/google/uuid"
)

type CreateShopRequest struct {
	OwnerName     string               `json:"owner_name"`
	ShopName      string               `json:"shop_name"`
	BusinessType  string               `json:"business_type"`
	BusinessHours models.BusinessHours `json:"business_hours"`
}

// ShopService manages shops, their notification settings, and branches.
type ShopService interface {
	Create(ctx context.Context, req *CreateShopRequest) (*models.Shop, error)
	GetByID(ctx context.Context, shopID uuid.UUID) (*models.Shop, error)
	Update(ctx context.Context, shop *models.Shop) error
	CreateBranch(ctx context.Context, shopID uuid.UUID, name string, address *string) (*models.Branch, error)
	ListBranches(ctx context.Context, shopID uuid.UUID) ([]*models.Branch, error)
	DeleteBranch(ctx context.Context, shopID, branchID uuid.UUID) error
}

type shopService struct {
	shopRepo         repositories.ShopRepository
	branchRepo       repositories.BranchRepository
	subscriptionRepo repositories.SubscriptionRepository
	entitlements     EntitlementService
	cacheSvc         caching.CacheService
}

func NewShopService(
	shopRepo repositories.ShopRepository,
	branchRepo repositories.BranchRepository,
	subscriptionRepo repositories.SubscriptionRepository,
	entitlements EntitlementService,
	cacheSvc caching.CacheService,
) ShopService {
	return &shopService{
		shopRepo:         shopRepo,
		branchRepo:       branchRepo,
		subscriptionRepo: subscriptionRepo,
		entitlements:     entitlements,
		cacheSvc:         cacheSvc,
	}
}

// Create registers a shop and its implicit trial subscription. Every shop has
// exactly one effective plan from the moment it exists.
func (s *shopService) Create(ctx context.Context, req *CreateShopRequest) (*models.Shop, error) {
	if req.ShopName == "" {
		return nil, fmt.Errorf("shop name is required")
	}

	shop := &models.Shop{
		ID:                      uuid.New(),
		OwnerName:               req.OwnerName,
		ShopName:                req.ShopName,
		BusinessType:            req.BusinessType,
		EnableEmployeeReminders: true,
		EnableLateAlerts:        true,
		BusinessHours:           req.BusinessHours,
	}

	if err := s.shopRepo.Create(ctx, shop); err != nil {
		return nil, fmt.Errorf("failed to create shop: %v", err)
	}

	subscription := &models.Subscription{
		ID:       uuid.New(),
		ShopID:   shop.ID,
		PlanName: models.PlanTrial,
		Status:   models.SubscriptionStatusTrialing,
	}
	if err := s.subscriptionRepo.Create(ctx, subscription); err != nil {
		return nil, fmt.Errorf("failed to create trial subscription: %v", err)
	}

	return shop, nil
}

func (s *shopService) GetByID(ctx context.Context, shopID uuid.UUID) (*models.Shop, error) {
	return s.shopRepo.GetByID(ctx, shopID)
}

func (s *shopService) Update(ctx context.Context, shop *models.Shop) error {
	if err := s.shopRepo.Update(ctx, shop); err != nil {
		return err
	}
	// The jobs read shop config through the cache; stale settings here would
	// delay a shop's reminder toggle by up to the cache TTL.
	if err := s.cacheSvc.DeleteShop(ctx, shop.ID); err != nil {
		log.Printf("Failed to invalidate shop cache for %s: %v", shop.ID.String(), err)
	}
	return nil
}

func (s *shopService) CreateBranch(ctx context.Context, shopID uuid.UUID, name string, address *string) (*models.Branch, error) {
	if name == "" {
		return nil, fmt.Errorf("branch name is required")
	}

	if err := s.entitlements.CheckBranchLimit(ctx, shopID); err != nil {
		return nil, err
	}

	branch := &models.Branch{
		ID:      uuid.New(),
		ShopID:  shopID,
		Name:    name,
		Address: address,
	}
	if err := s.branchRepo.Create(ctx, branch); err != nil {
		return nil, fmt.Errorf("failed to create branch: %v", err)
	}
	return branch, nil
}

func (s *shopService) ListBranches(ctx context.Context, shopID uuid.UUID) ([]*models.Branch, error) {
	return s.branchRepo.List(ctx, shopID)
}

func (s *shopService) DeleteBranch(ctx context.Context, shopID, branchID uuid.UUID) error {
	return s.branchRepo.Delete(ctx, shopID, branchID)
}
