package repositories

import (
	"context"

	"saledup/internal/models"

	"github.com/google/uuid"
)

type BranchRepository interface {
	Create(ctx context.Context, branch *models.Branch) error
	GetByID(ctx context.Context, shopID, id uuid.UUID) (*models.Branch, error)
	Delete(ctx context.Context, shopID, id uuid.UUID) error
	List(ctx context.Context, shopID uuid.UUID) ([]*models.Branch, error)
	CountByShop(ctx context.Context, shopID uuid.UUID) (int, error)
}

type branchRepo struct {
	db Database
}

func NewBranchRepo(db Database) BranchRepository {
	return &branchRepo{db: db}
}

func (r *branchRepo) Create(ctx context.Context, branch *models.Branch) error {
	query := `
		INSERT INTO branches (id, shop_id, name, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, branch.ID, branch.ShopID, branch.Name, branch.Address)
	return err
}

func (r *branchRepo) GetByID(ctx context.Context, shopID, id uuid.UUID) (*models.Branch, error) {
	branch := &models.Branch{}
	query := `
		SELECT id, shop_id, name, address, created_at, updated_at
		FROM branches
		WHERE shop_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, shopID, id).Scan(&branch.ID, &branch.ShopID, &branch.Name,
		&branch.Address, &branch.CreatedAt, &branch.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return branch, nil
}

func (r *branchRepo) Delete(ctx context.Context, shopID, id uuid.UUID) error {
	query := `DELETE FROM branches WHERE shop_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, shopID, id)
	return err
}

func (r *branchRepo) List(ctx context.Context, shopID uuid.UUID) ([]*models.Branch, error) {
	query := `
		SELECT id, shop_id, name, address, created_at, updated_at
		FROM branches
		WHERE shop_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query, shopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var branches []*models.Branch
	for rows.Next() {
		branch := &models.Branch{}
		if err := rows.Scan(&branch.ID, &branch.ShopID, &branch.Name, &branch.Address,
			&branch.CreatedAt, &branch.UpdatedAt); err != nil {
			return nil, err
		}
		branches = append(branches, branch)
	}
	return branches, rows.Err()
}

func (r *branchRepo) CountByShop(ctx context.Context, shopID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM branches WHERE shop_id = $1`
	err := r.db.QueryRow(ctx, query, shopID).Scan(&count)
	return count, err
}
