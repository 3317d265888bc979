package department

import (
	"context"
	"database/sql"

	"go-hrms/internal/shared/database"

	"gorm.io/gorm"
)

//go:generate mockgen -source=department_repo.go -destination=mock/department_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, dept *Department) error
	FindAll(ctx context.Context, q string) ([]Department, error)
	FindByID(ctx context.Context, id string) (*Department, error)
	Update(ctx context.Context, dept *Department) error
	CountEmployees(ctx context.Context, id string) (int64, error)
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

func (r *repository) Create(ctx context.Context, dept *Department) error {
	return database.Conn(ctx, r.db, r.tx).Create(dept).Error
}

func (r *repository) FindAll(ctx context.Context, q string) ([]Department, error) {
	var depts []Department
	err := database.Conn(ctx, r.db, r.tx).
		Scopes(database.Search(q, "name", "code")).
		Order("name ASC").
		Find(&depts).Error
	return depts, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Department, error) {
	var dept Department
	err := database.Conn(ctx, r.db, r.tx).
		First(&dept, "id = ?", id).Error
	return &dept, err
}

func (r *repository) Update(ctx context.Context, dept *Department) error {
	return database.Conn(ctx, r.db, r.tx).Save(dept).Error
}

func (r *repository) CountEmployees(ctx context.Context, id string) (int64, error) {
	var count int64
	err := database.Conn(ctx, r.db, r.tx).
		Table("employees").
		Where("department_id = ?", id).
		Count(&count).Error
	return count, err
}
