package repositories

import (
	"context"

	"saledup/internal/models"

	"github.com/google/uuid"
)

type OfferRepository interface {
	Create(ctx context.Context, offer *models.Offer) error
	GetByID(ctx context.Context, shopID, id uuid.UUID) (*models.Offer, error)
	Update(ctx context.Context, offer *models.Offer) error
	Delete(ctx context.Context, shopID, id uuid.UUID) error
	List(ctx context.Context, shopID uuid.UUID, limit, offset int) ([]*models.Offer, error)
	IncrementScanCount(ctx context.Context, shopID, id uuid.UUID) error
}

type offerRepo struct {
	db Database
}

func NewOfferRepo(db Database) OfferRepository {
	return &offerRepo{db: db}
}

const offerColumns = `id, shop_id, title, description, discount_pct, valid_from, valid_until, is_active, scan_count, created_at, updated_at`

func (r *offerRepo) Create(ctx context.Context, offer *models.Offer) error {
	query := `
		INSERT INTO offers (id, shop_id, title, description, discount_pct, valid_from, valid_until, is_active, scan_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, offer.ID, offer.ShopID, offer.Title, offer.Description,
		offer.DiscountPct, offer.ValidFrom, offer.ValidUntil, offer.IsActive, offer.ScanCount)
	return err
}

func (r *offerRepo) GetByID(ctx context.Context, shopID, id uuid.UUID) (*models.Offer, error) {
	offer := &models.Offer{}
	query := `SELECT ` + offerColumns + ` FROM offers WHERE shop_id = $1 AND id = $2`
	err := r.db.QueryRow(ctx, query, shopID, id).Scan(&offer.ID, &offer.ShopID, &offer.Title,
		&offer.Description, &offer.DiscountPct, &offer.ValidFrom, &offer.ValidUntil,
		&offer.IsActive, &offer.ScanCount, &offer.CreatedAt, &offer.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return offer, nil
}

func (r *offerRepo) Update(ctx context.Context, offer *models.Offer) error {
	query := `
		UPDATE offers
		SET title = $1, description = $2, discount_pct = $3, valid_from = $4, valid_until = $5, is_active = $6, updated_at = NOW()
		WHERE shop_id = $7 AND id = $8
	`
	_, err := r.db.Exec(ctx, query, offer.Title, offer.Description, offer.DiscountPct,
		offer.ValidFrom, offer.ValidUntil, offer.IsActive, offer.ShopID, offer.ID)
	return err
}

func (r *offerRepo) Delete(ctx context.Context, shopID, id uuid.UUID) error {
	query := `DELETE FROM offers WHERE shop_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, shopID, id)
	return err
}

func (r *offerRepo) List(ctx context.Context, shopID uuid.UUID, limit, offset int) ([]*models.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers WHERE shop_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, shopID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offers []*models.Offer
	for rows.Next() {
		offer := &models.Offer{}
		if err := rows.Scan(&offer.ID, &offer.ShopID, &offer.Title, &offer.Description,
			&offer.DiscountPct, &offer.ValidFrom, &offer.ValidUntil, &offer.IsActive,
			&offer.ScanCount, &offer.CreatedAt, &offer.UpdatedAt); err != nil {
			return nil, err
		}
		offers = append(offers, offer)
	}
	return offers, rows.Err()
}

func (r *offerRepo) IncrementScanCount(ctx context.Context, shopID, id uuid.UUID) error {
	query := `UPDATE offers SET scan_count = scan_count + 1, updated_at = NOW() WHERE shop_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, shopID, id)
	return err
}
