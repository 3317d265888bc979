package leave

import (
	"context"
	"database/sql"
	"time"

	"go-hrms/internal/shared/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateType(ctx context.Context, t *LeaveType) error
	FindTypes(ctx context.Context, activeOnly bool) ([]LeaveType, error)
	FindTypeByID(ctx context.Context, id uuid.UUID) (*LeaveType, error)
	UpdateType(ctx context.Context, t *LeaveType) error

	EmployeeExists(ctx context.Context, employeeID uuid.UUID) (bool, error)

	Create(ctx context.Context, l *LeaveRequest) error
	FindAll(ctx context.Context, status string, employeeIDs []uuid.UUID) ([]LeaveRequest, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*LeaveRequest, error)
	HasOverlap(ctx context.Context, employeeID uuid.UUID, start, end time.Time) (bool, error)
	MarkReviewed(ctx context.Context, l *LeaveRequest) error

	FindBalance(ctx context.Context, employeeID, leaveTypeID uuid.UUID) (*LeaveBalance, error)
	FindBalances(ctx context.Context, employeeID uuid.UUID) ([]LeaveBalance, error)
	CreateBalanceIfMissing(ctx context.Context, b *LeaveBalance) (bool, error)
	IncrementUsed(ctx context.Context, employeeID, leaveTypeID uuid.UUID, days int) error
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

func (r *repository) CreateType(ctx context.Context, t *LeaveType) error {
	return database.Conn(ctx, r.db, r.tx).Create(t).Error
}

func (r *repository) FindTypes(ctx context.Context, activeOnly bool) ([]LeaveType, error) {
	query := database.Conn(ctx, r.db, r.tx).Model(&LeaveType{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var types []LeaveType
	err := query.Order("name ASC").Find(&types).Error
	return types, err
}

func (r *repository) FindTypeByID(ctx context.Context, id uuid.UUID) (*LeaveType, error) {
	var t LeaveType
	err := database.Conn(ctx, r.db, r.tx).First(&t, "id = ?", id).Error
	return &t, err
}

func (r *repository) UpdateType(ctx context.Context, t *LeaveType) error {
	return database.Conn(ctx, r.db, r.tx).
		Model(t).
		Select("name", "max_days_per_year", "is_active", "updated_at").
		Updates(t).Error
}

func (r *repository) EmployeeExists(ctx context.Context, employeeID uuid.UUID) (bool, error) {
	var count int64
	err := database.Conn(ctx, r.db, r.tx).
		Table("employees").
		Where("id = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return database.Conn(ctx, r.db, r.tx).Create(l).Error
}

func (r *repository) FindAll(ctx context.Context, status string, employeeIDs []uuid.UUID) ([]LeaveRequest, error) {
	query := database.Conn(ctx, r.db, r.tx).
		Model(&LeaveRequest{}).
		Select("leave_requests.*, employees.name AS employee_name, leave_types.name AS leave_type_name").
		Joins("LEFT JOIN employees ON employees.id = leave_requests.employee_id").
		Joins("LEFT JOIN leave_types ON leave_types.id = leave_requests.leave_type_id")

	if status != "" {
		query = query.Where("leave_requests.status = ?", status)
	}
	if employeeIDs != nil {
		query = query.Where("leave_requests.employee_id IN ?", employeeIDs)
	}

	var rows []LeaveRequest
	err := query.Order("leave_requests.created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*LeaveRequest, error) {
	var l LeaveRequest
	err := database.Conn(ctx, r.db, r.tx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&l, "id = ?", id).Error
	return &l, err
}

// HasOverlap checks inclusive date ranges against pending and approved requests.
func (r *repository) HasOverlap(ctx context.Context, employeeID uuid.UUID, start, end time.Time) (bool, error) {
	var count int64
	err := database.Conn(ctx, r.db, r.tx).
		Model(&LeaveRequest{}).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", []string{StatusPending, StatusApproved}).
		Where("start_date <= ? AND end_date >= ?", end.Format("2006-01-02"), start.Format("2006-01-02")).
		Count(&count).Error
	return count > 0, err
}

// MarkReviewed moves a pending request to its terminal status. It affects no
// rows when another reviewer got there first.
func (r *repository) MarkReviewed(ctx context.Context, l *LeaveRequest) error {
	res := database.Conn(ctx, r.db, r.tx).
		Model(&LeaveRequest{}).
		Where("id = ? AND status = ?", l.ID, StatusPending).
		Updates(map[string]any{
			"status":      l.Status,
			"reviewed_by": l.ReviewedBy,
			"reviewed_at": l.ReviewedAt,
			"updated_at":  time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindBalance(ctx context.Context, employeeID, leaveTypeID uuid.UUID) (*LeaveBalance, error) {
	var b LeaveBalance
	err := database.Conn(ctx, r.db, r.tx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("employee_id = ? AND leave_type_id = ?", employeeID, leaveTypeID).
		First(&b).Error
	return &b, err
}

func (r *repository) FindBalances(ctx context.Context, employeeID uuid.UUID) ([]LeaveBalance, error) {
	var rows []LeaveBalance
	err := database.Conn(ctx, r.db, r.tx).
		Model(&LeaveBalance{}).
		Select("leave_balances.*, leave_types.name AS leave_type_name").
		Joins("LEFT JOIN leave_types ON leave_types.id = leave_balances.leave_type_id").
		Where("leave_balances.employee_id = ?", employeeID).
		Order("leave_types.name ASC").
		Find(&rows).Error
	return rows, err
}

// CreateBalanceIfMissing inserts b unless the (employee, type) pair exists
// and reports whether a row was written.
func (r *repository) CreateBalanceIfMissing(ctx context.Context, b *LeaveBalance) (bool, error) {
	res := database.Conn(ctx, r.db, r.tx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "leave_type_id"}},
			DoNothing: true,
		}).
		Create(b)
	return res.RowsAffected > 0, res.Error
}

func (r *repository) IncrementUsed(ctx context.Context, employeeID, leaveTypeID uuid.UUID, days int) error {
	return database.Conn(ctx, r.db, r.tx).
		Model(&LeaveBalance{}).
		Where("employee_id = ? AND leave_type_id = ?", employeeID, leaveTypeID).
		Updates(map[string]any{
			"used":       gorm.Expr("used + ?", days),
			"updated_at": time.Now().UTC(),
		}).Error
}
