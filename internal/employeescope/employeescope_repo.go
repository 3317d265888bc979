package employeescope

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type identityRow struct {
	ID           uuid.UUID
	Email        string
	EmployeeCode string
}

type Repository interface {
	FindIdentity(ctx context.Context, id uuid.UUID) (email, code string, err error)
	FindMatching(ctx context.Context, id *uuid.UUID, email, code string) ([]uuid.UUID, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindIdentity(ctx context.Context, id uuid.UUID) (string, string, error) {
	var row identityRow
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("id, email, employee_code").
		Where("id = ?", id).
		Take(&row).Error
	return row.Email, row.EmployeeCode, err
}

// FindMatching returns ids of employees matching any of the non-empty claims.
func (r *repository) FindMatching(ctx context.Context, id *uuid.UUID, email, code string) ([]uuid.UUID, error) {
	query := r.db.WithContext(ctx).Table("employees")

	var conds []string
	var args []any
	if id != nil {
		conds = append(conds, "id = ?")
		args = append(args, *id)
	}
	if email != "" {
		conds = append(conds, "LOWER(email) = ?")
		args = append(args, email)
	}
	if code != "" {
		conds = append(conds, "employee_code = ?")
		args = append(args, code)
	}

	if len(conds) == 0 {
		return nil, nil
	}

	where := conds[0]
	for _, c := range conds[1:] {
		where += " OR " + c
	}

	var ids []uuid.UUID
	err := query.Where(where, args...).Order("created_at ASC").Pluck("id", &ids).Error
	return ids, err
}
