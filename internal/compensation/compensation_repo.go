package compensation

import (
	"context"
	"database/sql"
	"time"

	"go-hrms/internal/shared/database"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	EnsurePolicy(ctx context.Context) error
	FindPolicy(ctx context.Context) (*Policy, error)
	SavePolicy(ctx context.Context, p *Policy) error
	ReplaceDeductions(ctx context.Context, deductions []Deduction) error
	FindActiveSalaries(ctx context.Context, ids []uuid.UUID) ([]EmployeeSalary, error)
	UpdateSalary(ctx context.Context, employeeID uuid.UUID, salary decimal.Decimal) (int64, error)
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

// EnsurePolicy creates the global row with defaults if it does not exist.
// Concurrent first reads race on the primary key and all succeed.
func (r *repository) EnsurePolicy(ctx context.Context) error {
	return database.Conn(ctx, r.db, r.tx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit(clause.Associations).
		Create(&Policy{Key: PolicyKey}).Error
}

func (r *repository) FindPolicy(ctx context.Context) (*Policy, error) {
	var p Policy
	err := database.Conn(ctx, r.db, r.tx).
		Preload("Deductions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&p, "key = ?", PolicyKey).Error
	return &p, err
}

func (r *repository) SavePolicy(ctx context.Context, p *Policy) error {
	return database.Conn(ctx, r.db, r.tx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"tax_rate_percent", "prorate_attendance", "updated_by", "updated_at"}),
		}).
		Omit(clause.Associations).
		Create(p).Error
}

func (r *repository) ReplaceDeductions(ctx context.Context, deductions []Deduction) error {
	conn := database.Conn(ctx, r.db, r.tx)
	if err := conn.Where("policy_key = ?", PolicyKey).Delete(&Deduction{}).Error; err != nil {
		return err
	}
	if len(deductions) == 0 {
		return nil
	}
	return conn.Create(&deductions).Error
}

// FindActiveSalaries returns active employees among ids, or every active
// employee when ids is empty.
func (r *repository) FindActiveSalaries(ctx context.Context, ids []uuid.UUID) ([]EmployeeSalary, error) {
	query := database.Conn(ctx, r.db, r.tx).
		Table("employees").
		Select("id, salary").
		Scopes(database.ActiveOnly())
	if len(ids) > 0 {
		query = query.Where("id IN ?", ids)
	}

	var rows []EmployeeSalary
	err := query.Order("created_at ASC").Scan(&rows).Error
	return rows, err
}

// UpdateSalary skips rows whose salary already matches so the affected
// count only reflects real changes.
func (r *repository) UpdateSalary(ctx context.Context, employeeID uuid.UUID, salary decimal.Decimal) (int64, error) {
	res := database.Conn(ctx, r.db, r.tx).
		Table("employees").
		Where("id = ? AND salary <> ?", employeeID, salary).
		Updates(map[string]any{
			"salary":     salary,
			"updated_at": time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}
