package services

import (
	"context"
	"fmt"
	"time"

	"saledup/internal/models"
	"saledup/internal/repositories"

	"github.com/google/uuid"
)

type CreateOfferRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	DiscountPct int        `json:"discount_pct"`
	ValidFrom   *time.Time `json:"valid_from"`
	ValidUntil  *time.Time `json:"valid_until"`
}

// OfferService manages a shop's QR marketing offers and their scan counters.
type OfferService interface {
	Create(ctx context.Context, shopID uuid.UUID, req *CreateOfferRequest) (*models.Offer, error)
	GetByID(ctx context.Context, shopID, offerID uuid.UUID) (*models.Offer, error)
	Update(ctx context.Context, offer *models.Offer) error
	Delete(ctx context.Context, shopID, offerID uuid.UUID) error
	List(ctx context.Context, shopID uuid.UUID, limit, offset int) ([]*models.Offer, error)
	RecordScan(ctx context.Context, shopID, offerID uuid.UUID, at time.Time) (*models.Offer, error)
}

type offerService struct {
	offerRepo repositories.OfferRepository
}

func NewOfferService(offerRepo repositories.OfferRepository) OfferService {
	return &offerService{offerRepo: offerRepo}
}

func (s *offerService) Create(ctx context.Context, shopID uuid.UUID, req *CreateOfferRequest) (*models.Offer, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("offer title is required")
	}
	if req.DiscountPct < 0 || req.DiscountPct > 100 {
		return nil, fmt.Errorf("discount must be between 0 and 100")
	}

	validFrom := time.Now()
	if req.ValidFrom != nil {
		validFrom = *req.ValidFrom
	}

	offer := &models.Offer{
		ID:          uuid.New(),
		ShopID:      shopID,
		Title:       req.Title,
		Description: req.Description,
		DiscountPct: req.DiscountPct,
		ValidFrom:   validFrom,
		ValidUntil:  req.ValidUntil,
		IsActive:    true,
	}

	if err := s.offerRepo.Create(ctx, offer); err != nil {
		return nil, fmt.Errorf("failed to create offer: %v", err)
	}
	return offer, nil
}

func (s *offerService) GetByID(ctx context.Context, shopID, offerID uuid.UUID) (*models.Offer, error) {
	return s.offerRepo.GetByID(ctx, shopID, offerID)
}

func (s *offerService) Update(ctx context.Context, offer *models.Offer) error {
	return s.offerRepo.Update(ctx, offer)
}

func (s *offerService) Delete(ctx context.Context, shopID, offerID uuid.UUID) error {
	return s.offerRepo.Delete(ctx, shopID, offerID)
}

func (s *offerService) List(ctx context.Context, shopID uuid.UUID, limit, offset int) ([]*models.Offer, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.offerRepo.List(ctx, shopID, limit, offset)
}

// RecordScan counts a QR scan against an offer. Scans of inactive or expired
// offers are rejected so the counter only reflects redeemable views.
func (s *offerService) RecordScan(ctx context.Context, shopID, offerID uuid.UUID, at time.Time) (*models.Offer, error) {
	offer, err := s.offerRepo.GetByID(ctx, shopID, offerID)
	if err != nil {
		return nil, err
	}

	if !offer.IsActive {
		return nil, fmt.Errorf("offer is no longer active")
	}
	if at.Before(offer.ValidFrom) {
		return nil, fmt.Errorf("offer is not valid yet")
	}
	if offer.ValidUntil != nil && at.After(*offer.ValidUntil) {
		return nil, fmt.Errorf("offer has expired")
	}

	if err := s.offerRepo.IncrementScanCount(ctx, shopID, offerID); err != nil {
		return nil, fmt.Errorf("failed to count scan: %v", err)
	}

	offer.ScanCount++
	return offer, nil
}
