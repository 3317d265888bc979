package designation

import (
	"context"
	"database/sql"

	"go-hrms/internal/shared/database"

	"gorm.io/gorm"
)

//go:generate mockgen -source=designation_repo.go -destination=mock/designation_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, d *Designation) error
	FindAll(ctx context.Context) ([]Designation, error)
	FindByID(ctx context.Context, id string) (*Designation, error)
	Update(ctx context.Context, d *Designation) error
	IsDepartmentActive(ctx context.Context, departmentID string) (bool, error)
	CountActiveEmployees(ctx context.Context, id string) (int64, error)
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

func (r *repository) Create(ctx context.Context, d *Designation) error {
	return database.Conn(ctx, r.db, r.tx).Create(d).Error
}

func (r *repository) withDepartment(ctx context.Context) *gorm.DB {
	return database.Conn(ctx, r.db, r.tx).
		Model(&Designation{}).
		Select("designations.*, departments.name AS department_name").
		Joins("LEFT JOIN departments ON departments.id = designations.department_id")
}

func (r *repository) FindAll(ctx context.Context) ([]Designation, error) {
	var items []Designation
	err := r.withDepartment(ctx).
		Order("designations.level ASC, designations.title ASC").
		Find(&items).Error
	return items, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Designation, error) {
	var d Designation
	err := r.withDepartment(ctx).
		Where("designations.id = ?", id).
		First(&d).Error
	return &d, err
}

func (r *repository) Update(ctx context.Context, d *Designation) error {
	return database.Conn(ctx, r.db, r.tx).
		Model(d).
		Select("title", "department_id", "base_salary", "level", "status", "updated_at").
		Updates(d).Error
}

func (r *repository) IsDepartmentActive(ctx context.Context, departmentID string) (bool, error) {
	var count int64
	err := database.Conn(ctx, r.db, r.tx).
		Table("departments").
		Where("id = ? AND status = ?", departmentID, StatusActive).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) CountActiveEmployees(ctx context.Context, id string) (int64, error) {
	var count int64
	err := database.Conn(ctx, r.db, r.tx).
		Table("employees").
		Where("designation_id = ? AND status = ?", id, StatusActive).
		Count(&count).Error
	return count, err
}
