package payroll

import (
	"context"
	"database/sql"

	"go-hrms/internal/shared/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindEmployee(ctx context.Context, id uuid.UUID) (*EmployeeSnapshot, error)
	Create(ctx context.Context, p *Payroll) error
	FindAll(ctx context.Context, filter Query) ([]Payroll, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Payroll, error)
}

// Query narrows payroll listings. A nil EmployeeIDs means no restriction.
type Query struct {
	EmployeeIDs []uuid.UUID
	Month       string
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) FindEmployee(ctx context.Context, id uuid.UUID) (*EmployeeSnapshot, error) {
	var snap EmployeeSnapshot
	err := database.Conn(ctx, r.db, r.tx).
		Table("employees").
		Select(`employees.id, employees.name, employees.employee_code, employees.status, employees.salary,
			COALESCE(designations.base_salary, 0) AS designation_base_salary`).
		Joins("LEFT JOIN designations ON designations.id = employees.designation_id").
		Where("employees.id = ?", id).
		Take(&snap).Error
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// Create inserts the payroll and its components in one statement batch.
func (r *repository) Create(ctx context.Context, p *Payroll) error {
	return database.Conn(ctx, r.db, r.tx).Create(p).Error
}

func (r *repository) FindAll(ctx context.Context, filter Query) ([]Payroll, error) {
	query := database.Conn(ctx, r.db, r.tx).
		Model(&Payroll{}).
		Select("payrolls.*, employees.name AS employee_name, employees.employee_code AS employee_code").
		Joins("LEFT JOIN employees ON employees.id = payrolls.employee_id")

	if filter.EmployeeIDs != nil {
		query = query.Where("payrolls.employee_id IN ?", filter.EmployeeIDs)
	}
	if filter.Month != "" {
		query = query.Where("payrolls.month = ?", filter.Month)
	}

	var rows []Payroll
	err := query.Order("payrolls.month DESC, payrolls.created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Payroll, error) {
	var p Payroll
	err := database.Conn(ctx, r.db, r.tx).
		Select("payrolls.*, employees.name AS employee_name, employees.employee_code AS employee_code").
		Joins("LEFT JOIN employees ON employees.id = payrolls.employee_id").
		Preload("Components", func(db *gorm.DB) *gorm.DB {
			return db.Order("payroll_components.position ASC")
		}).
		First(&p, "payrolls.id = ?", id).Error
	return &p, err
}
