package repositories

import (
	"context"
	"encoding/json"

	"saledup/internal/models"

	"github.com/google/uuid"
)

type ShopRepository interface {
	Create(ctx context.Context, shop *models.Shop) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Shop, error)
	Update(ctx context.Context, shop *models.Shop) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Shop, error)
}

type shopRepo struct {
	db Database
}

func NewShopRepo(db Database) ShopRepository {
	return &shopRepo{db: db}
}

const shopColumns = `id, owner_name, shop_name, business_type, admin_fcm_token,
		enable_employee_reminders, enable_late_alerts, dedupe_late_alerts,
		late_grace_period_minutes, business_hours, created_at, updated_at`

func (r *shopRepo) Create(ctx context.Context, shop *models.Shop) error {
	hours, err := json.Marshal(shop.BusinessHours)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO shops (id, owner_name, shop_name, business_type, admin_fcm_token,
			enable_employee_reminders, enable_late_alerts, dedupe_late_alerts,
			late_grace_period_minutes, business_hours, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	`
	_, err = r.db.Exec(ctx, query, shop.ID, shop.OwnerName, shop.ShopName, shop.BusinessType, shop.AdminFCMToken,
		shop.EnableEmployeeReminders, shop.EnableLateAlerts, shop.DedupeLateAlerts,
		shop.LateGracePeriodMinutes, hours)
	return err
}

func (r *shopRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Shop, error) {
	query := `SELECT ` + shopColumns + ` FROM shops WHERE id = $1`
	return scanShop(r.db.QueryRow(ctx, query, id))
}

func (r *shopRepo) Update(ctx context.Context, shop *models.Shop) error {
	hours, err := json.Marshal(shop.BusinessHours)
	if err != nil {
		return err
	}
	query := `
		UPDATE shops
		SET owner_name = $1, shop_name = $2, business_type = $3, admin_fcm_token = $4,
			enable_employee_reminders = $5, enable_late_alerts = $6, dedupe_late_alerts = $7,
			late_grace_period_minutes = $8, business_hours = $9, updated_at = NOW()
		WHERE id = $10
	`
	_, err = r.db.Exec(ctx, query, shop.OwnerName, shop.ShopName, shop.BusinessType, shop.AdminFCMToken,
		shop.EnableEmployeeReminders, shop.EnableLateAlerts, shop.DedupeLateAlerts,
		shop.LateGracePeriodMinutes, hours, shop.ID)
	return err
}

func (r *shopRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM shops WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *shopRepo) List(ctx context.Context, limit, offset int) ([]*models.Shop, error) {
	query := `SELECT ` + shopColumns + ` FROM shops ORDER BY created_at LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shops []*models.Shop
	for rows.Next() {
		shop, err := scanShop(rows)
		if err != nil {
			return nil, err
		}
		shops = append(shops, shop)
	}
	return shops, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanShop(row rowScanner) (*models.Shop, error) {
	shop := &models.Shop{}
	var hours []byte
	err := row.Scan(&shop.ID, &shop.OwnerName, &shop.ShopName, &shop.BusinessType, &shop.AdminFCMToken,
		&shop.EnableEmployeeReminders, &shop.EnableLateAlerts, &shop.DedupeLateAlerts,
		&shop.LateGracePeriodMinutes, &hours, &shop.CreatedAt, &shop.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(hours) > 0 {
		if err := json.Unmarshal(hours, &shop.BusinessHours); err != nil {
			return nil, err
		}
	}
	return shop, nil
}
