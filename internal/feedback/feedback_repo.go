package feedback

import (
	"context"

	"go-hrms/internal/shared/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const historyLimit = 100

type Repository interface {
	GetEmployeeStatus(ctx context.Context, employeeID uuid.UUID) (string, error)
	Create(ctx context.Context, f *Feedback) error
	FindRecent(ctx context.Context, employeeIDs []uuid.UUID, limit int) ([]Feedback, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetEmployeeStatus(ctx context.Context, employeeID uuid.UUID) (string, error) {
	var row struct{ Status string }
	err := database.Conn(ctx, r.db, nil).
		Table("employees").
		Select("status").
		Where("id = ?", employeeID).
		Take(&row).Error
	return row.Status, err
}

func (r *repository) Create(ctx context.Context, f *Feedback) error {
	return database.Conn(ctx, r.db, nil).Create(f).Error
}

func (r *repository) FindRecent(ctx context.Context, employeeIDs []uuid.UUID, limit int) ([]Feedback, error) {
	var rows []Feedback
	err := database.Conn(ctx, r.db, nil).
		Where("employee_id IN ?", employeeIDs).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
