package services

import (
	"context"
	"fmt"
	"time"

	"saledup/internal/models"
	"saledup/internal/repositories"

	"github.com/google/uuid"
)

type CreateEmployeeRequest struct {
	Name     string     `json:"name"`
	Role     string     `json:"role"`
	JoinDate *time.Time `json:"join_date"`
	FCMToken *string    `json:"fcm_token"`
}

// EmployeeService handles employee CRUD with plan-limit enforcement.
type EmployeeService interface {
	Create(ctx context.Context, shopID uuid.UUID, req *CreateEmployeeRequest) (*models.Employee, error)
	GetByID(ctx context.Context, shopID, employeeID uuid.UUID) (*models.Employee, error)
	Update(ctx context.Context, employee *models.Employee) error
	Delete(ctx context.Context, shopID, employeeID uuid.UUID) error
	List(ctx context.Context, shopID uuid.UUID, limit, offset int) ([]*models.Employee, error)
	RegisterDeviceToken(ctx context.Context, shopID, employeeID uuid.UUID, token string) error
}

type employeeService struct {
	employeeRepo repositories.EmployeeRepository
	entitlements EntitlementService
}

func NewEmployeeService(employeeRepo repositories.EmployeeRepository, entitlements EntitlementService) EmployeeService {
	return &employeeService{
		employeeRepo: employeeRepo,
		entitlements: entitlements,
	}
}

func (s *employeeService) Create(ctx context.Context, shopID uuid.UUID, req *CreateEmployeeRequest) (*models.Employee, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("employee name is required")
	}

	if err := s.entitlements.CheckEmployeeLimit(ctx, shopID); err != nil {
		return nil, err
	}

	joinDate := time.Now()
	if req.JoinDate != nil {
		joinDate = *req.JoinDate
	}

	employee := &models.Employee{
		ID:       uuid.New(),
		ShopID:   shopID,
		Name:     req.Name,
		Role:     req.Role,
		Status:   models.EmployeeStatusPending,
		JoinDate: joinDate,
		FCMToken: req.FCMToken,
	}

	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, fmt.Errorf("failed to create employee: %v", err)
	}
	return employee, nil
}

func (s *employeeService) GetByID(ctx context.Context, shopID, employeeID uuid.UUID) (*models.Employee, error) {
	return s.employeeRepo.GetByID(ctx, shopID, employeeID)
}

func (s *employeeService) Update(ctx context.Context, employee *models.Employee) error {
	return s.employeeRepo.Update(ctx, employee)
}

func (s *employeeService) Delete(ctx context.Context, shopID, employeeID uuid.UUID) error {
	return s.employeeRepo.Delete(ctx, shopID, employeeID)
}

func (s *employeeService) List(ctx context.Context, shopID uuid.UUID, limit, offset int) ([]*models.Employee, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.employeeRepo.List(ctx, shopID, limit, offset)
}

func (s *employeeService) RegisterDeviceToken(ctx context.Context, shopID, employeeID uuid.UUID, token string) error {
	employee, err := s.employeeRepo.GetByID(ctx, shopID, employeeID)
	if err != nil {
		return err
	}
	employee.FCMToken = &token
	return s.employeeRepo.Update(ctx, employee)
}
