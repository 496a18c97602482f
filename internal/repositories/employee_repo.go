package repositories

import (
	"context"

	"saledup/internal/models"

	"github.com/google/uuid"
)

type EmployeeRepository interface {
	Create(ctx context.Context, employee *models.Employee) error
	GetByID(ctx context.Context, shopID, id uuid.UUID) (*models.Employee, error)
	Update(ctx context.Context, employee *models.Employee) error
	Delete(ctx context.Context, shopID, id uuid.UUID) error
	List(ctx context.Context, shopID uuid.UUID, limit, offset int) ([]*models.Employee, error)
	ListActive(ctx context.Context, shopID uuid.UUID) ([]*models.Employee, error)
	CountByShop(ctx context.Context, shopID uuid.UUID) (int, error)
	AddReward(ctx context.Context, shopID, id uuid.UUID, points, streak int) error
}

type employeeRepo struct {
	db Database
}

func NewEmployeeRepo(db Database) EmployeeRepository {
	return &employeeRepo{db: db}
}

const employeeColumns = `id, shop_id, name, role, status, join_date, fcm_token, points, streak, created_at, updated_at`

func (r *employeeRepo) Create(ctx context.Context, employee *models.Employee) error {
	query := `
		INSERT INTO employees (id, shop_id, name, role, status, join_date, fcm_token, points, streak, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, employee.ID, employee.ShopID, employee.Name, employee.Role,
		employee.Status, employee.JoinDate, employee.FCMToken, employee.Points, employee.Streak)
	return err
}

func (r *employeeRepo) GetByID(ctx context.Context, shopID, id uuid.UUID) (*models.Employee, error) {
	employee := &models.Employee{}
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE shop_id = $1 AND id = $2`
	err := r.db.QueryRow(ctx, query, shopID, id).Scan(&employee.ID, &employee.ShopID, &employee.Name,
		&employee.Role, &employee.Status, &employee.JoinDate, &employee.FCMToken,
		&employee.Points, &employee.Streak, &employee.CreatedAt, &employee.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return employee, nil
}

func (r *employeeRepo) Update(ctx context.Context, employee *models.Employee) error {
	query := `
		UPDATE employees
		SET name = $1, role = $2, status = $3, join_date = $4, fcm_token = $5, points = $6, streak = $7, updated_at = NOW()
		WHERE shop_id = $8 AND id = $9
	`
	_, err := r.db.Exec(ctx, query, employee.Name, employee.Role, employee.Status, employee.JoinDate,
		employee.FCMToken, employee.Points, employee.Streak, employee.ShopID, employee.ID)
	return err
}

func (r *employeeRepo) Delete(ctx context.Context, shopID, id uuid.UUID) error {
	query := `DELETE FROM employees WHERE shop_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, shopID, id)
	return err
}

func (r *employeeRepo) List(ctx context.Context, shopID uuid.UUID, limit, offset int) ([]*models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE shop_id = $1 ORDER BY join_date LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, shopID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []*models.Employee
	for rows.Next() {
		employee := &models.Employee{}
		if err := rows.Scan(&employee.ID, &employee.ShopID, &employee.Name, &employee.Role,
			&employee.Status, &employee.JoinDate, &employee.FCMToken,
			&employee.Points, &employee.Streak, &employee.CreatedAt, &employee.UpdatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}
	return employees, rows.Err()
}

func (r *employeeRepo) ListActive(ctx context.Context, shopID uuid.UUID) ([]*models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE shop_id = $1 AND status = $2 ORDER BY name`
	rows, err := r.db.Query(ctx, query, shopID, models.EmployeeStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []*models.Employee
	for rows.Next() {
		employee := &models.Employee{}
		if err := rows.Scan(&employee.ID, &employee.ShopID, &employee.Name, &employee.Role,
			&employee.Status, &employee.JoinDate, &employee.FCMToken,
			&employee.Points, &employee.Streak, &employee.CreatedAt, &employee.UpdatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}
	return employees, rows.Err()
}

func (r *employeeRepo) CountByShop(ctx context.Context, shopID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM employees WHERE shop_id = $1`
	err := r.db.QueryRow(ctx, query, shopID).Scan(&count)
	return count, err
}

func (r *employeeRepo) AddReward(ctx context.Context, shopID, id uuid.UUID, points, streak int) error {
	query := `
		UPDATE employees
		SET points = points + $1, streak = $2, updated_at = NOW()
		WHERE shop_id = $3 AND id = $4
	`
	_, err := r.db.Exec(ctx, query, points, streak, shopID, id)
	return err
}
