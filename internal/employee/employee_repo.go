package employee

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go-hrms/internal/shared/database"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Employee) error
	FindAll(ctx context.Context, filter ListFilter) ([]Employee, error)
	FindOptions(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	Update(ctx context.Context, e *Employee) error
	UpdatePassword(ctx context.Context, id, hash string) error
	MarkFaceEnrolled(ctx context.Context, id string, at time.Time) error
	IsDepartmentActive(ctx context.Context, departmentID string) (bool, error)
	IsDesignationActive(ctx context.Context, designationID string) (bool, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return database.Conn(ctx, r.db, r.tx).Create(e).Error
}

func (r *repository) withRelations(ctx context.Context) *gorm.DB {
	return database.Conn(ctx, r.db, r.tx).
		Model(&Employee{}).
		Select("employees.*, departments.name AS department_name, designations.title AS designation_title").
		Joins("LEFT JOIN departments ON departments.id = employees.department_id").
		Joins("LEFT JOIN designations ON designations.id = employees.designation_id")
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Employee, error) {
	query := r.withRelations(ctx).
		Scopes(database.Search(filter.Q, "employees.name", "employees.email", "employees.employee_code"))
	if filter.Status != "" {
		query = query.Where("employees.status = ?", filter.Status)
	}

	var items []Employee
	err := query.Order("employees.created_at DESC").Find(&items).Error
	return items, err
}

func (r *repository) FindOptions(ctx context.Context) ([]Employee, error) {
	var items []Employee
	err := database.Conn(ctx, r.db, r.tx).
		Select("id", "name", "employee_code").
		Where("status = ?", StatusActive).
		Order("name ASC").
		Find(&items).Error
	return items, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var e Employee
	err := r.withRelations(ctx).
		Where("employees.id = ?", id).
		First(&e).Error
	return &e, err
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	var e Employee
	err := r.withRelations(ctx).
		Where("employees.email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&e).Error
	return &e, err
}

func (r *repository) Update(ctx context.Context, e *Employee) error {
	return database.Conn(ctx, r.db, r.tx).
		Model(e).
		Select("name", "email", "department_id", "designation_id", "salary", "status", "joining_date", "updated_at").
		Updates(e).Error
}

func (r *repository) UpdatePassword(ctx context.Context, id, hash string) error {
	return database.Conn(ctx, r.db, r.tx).
		Model(&Employee{}).
		Where("id = ?", id).
		Updates(map[string]any{"password_hash": hash, "updated_at": time.Now()}).Error
}

func (r *repository) MarkFaceEnrolled(ctx context.Context, id string, at time.Time) error {
	res := database.Conn(ctx, r.db, r.tx).
		Model(&Employee{}).
		Where("id = ?", id).
		Updates(map[string]any{"face_enrolled_at": at, "updated_at": at})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) IsDepartmentActive(ctx context.Context, departmentID string) (bool, error) {
	return r.activeRowExists(ctx, "departments", departmentID)
}

func (r *repository) IsDesignationActive(ctx context.Context, designationID string) (bool, error) {
	return r.activeRowExists(ctx, "designations", designationID)
}

func (r *repository) activeRowExists(ctx context.Context, table, id string) (bool, error) {
	var count int64
	err := database.Conn(ctx, r.db, r.tx).
		Table(table).
		Where("id = ?", id).
		Scopes(database.ActiveOnly()).
		Count(&count).Error
	return count > 0, err
}
