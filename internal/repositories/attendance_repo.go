package repositories

import (
	"context"
	"time"

	"saledup/internal/models"

	"github.com/google/uuid"
)

type AttendanceRepository interface {
	Create(ctx context.Context, record *models.AttendanceRecord) error
	GetByID(ctx context.Context, shopID, id uuid.UUID) (*models.AttendanceRecord, error)
	SetCheckOut(ctx context.Context, shopID, id uuid.UUID, checkOut time.Time) error
	ListByShopSince(ctx context.Context, shopID uuid.UUID, since time.Time) ([]*models.AttendanceRecord, error)
	HasCheckInSince(ctx context.Context, shopID, employeeID uuid.UUID, since time.Time) (bool, error)
	GetOpenRecord(ctx context.Context, shopID, employeeID uuid.UUID, since time.Time) (*models.AttendanceRecord, error)
}

type attendanceRepo struct {
	db Database
}

func NewAttendanceRepo(db Database) AttendanceRepository {
	return &attendanceRepo{db: db}
}

const attendanceColumns = `id, shop_id, employee_id, check_in, check_out, status, created_at`

func (r *attendanceRepo) Create(ctx context.Context, record *models.AttendanceRecord) error {
	query := `
		INSERT INTO attendance_records (id, shop_id, employee_id, check_in, check_out, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	_, err := r.db.Exec(ctx, query, record.ID, record.ShopID, record.EmployeeID,
		record.CheckIn, record.CheckOut, record.Status)
	return err
}

func (r *attendanceRepo) GetByID(ctx context.Context, shopID, id uuid.UUID) (*models.AttendanceRecord, error) {
	record := &models.AttendanceRecord{}
	query := `SELECT ` + attendanceColumns + ` FROM attendance_records WHERE shop_id = $1 AND id = $2`
	err := r.db.QueryRow(ctx, query, shopID, id).Scan(&record.ID, &record.ShopID, &record.EmployeeID,
		&record.CheckIn, &record.CheckOut, &record.Status, &record.CreatedAt)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// SetCheckOut is the only mutation allowed on an attendance record, and only
// while the checkout is still unset.
func (r *attendanceRepo) SetCheckOut(ctx context.Context, shopID, id uuid.UUID, checkOut time.Time) error {
	query := `
		UPDATE attendance_records
		SET check_out = $1
		WHERE shop_id = $2 AND id = $3 AND check_out IS NULL
	`
	_, err := r.db.Exec(ctx, query, checkOut, shopID, id)
	return err
}

func (r *attendanceRepo) ListByShopSince(ctx context.Context, shopID uuid.UUID, since time.Time) ([]*models.AttendanceRecord, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance_records WHERE shop_id = $1 AND check_in >= $2 ORDER BY check_in`
	rows, err := r.db.Query(ctx, query, shopID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.AttendanceRecord
	for rows.Next() {
		record := &models.AttendanceRecord{}
		if err := rows.Scan(&record.ID, &record.ShopID, &record.EmployeeID,
			&record.CheckIn, &record.CheckOut, &record.Status, &record.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (r *attendanceRepo) HasCheckInSince(ctx context.Context, shopID, employeeID uuid.UUID, since time.Time) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM attendance_records
			WHERE shop_id = $1 AND employee_id = $2 AND check_in >= $3
		)
	`
	err := r.db.QueryRow(ctx, query, shopID, employeeID, since).Scan(&exists)
	return exists, err
}

func (r *attendanceRepo) GetOpenRecord(ctx context.Context, shopID, employeeID uuid.UUID, since time.Time) (*models.AttendanceRecord, error) {
	record := &models.AttendanceRecord{}
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE shop_id = $1 AND employee_id = $2 AND check_in >= $3 AND check_out IS NULL
		ORDER BY check_in DESC
		LIMIT 1
	`
	err := r.db.QueryRow(ctx, query, shopID, employeeID, since).Scan(&record.ID, &record.ShopID,
		&record.EmployeeID, &record.CheckIn, &record.CheckOut, &record.Status, &record.CreatedAt)
	if err != nil {
		return nil, err
	}
	return record, nil
}
