package attendance

import (
	"context"
	"database/sql"
	"time"

	"go-hrms/internal/shared/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Query narrows FindAll. Zero values mean no constraint.
type Query struct {
	EmployeeIDs []uuid.UUID
	From        time.Time
	To          time.Time
}

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	FindByEmployeeAndDate(ctx context.Context, employeeID uuid.UUID, date time.Time) (*Attendance, error)
	FindAll(ctx context.Context, q Query) ([]Attendance, error)
	UpdateCheckOut(ctx context.Context, a *Attendance) error
	GetEmployeeStatus(ctx context.Context, employeeID uuid.UUID) (string, error)
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

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return database.Conn(ctx, r.db, r.tx).Create(a).Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID uuid.UUID, date time.Time) (*Attendance, error) {
	var a Attendance
	err := database.Conn(ctx, r.db, r.tx).
		Where("employee_id = ?", employeeID).
		Where("attendance_date = ?", date.Format("2006-01-02")).
		First(&a).Error
	return &a, err
}

func (r *repository) FindAll(ctx context.Context, q Query) ([]Attendance, error) {
	query := database.Conn(ctx, r.db, r.tx).
		Model(&Attendance{}).
		Select("attendances.*, employees.name AS employee_name, employees.employee_code AS employee_code").
		Joins("LEFT JOIN employees ON employees.id = attendances.employee_id")

	if len(q.EmployeeIDs) > 0 {
		query = query.Where("attendances.employee_id IN ?", q.EmployeeIDs)
	}
	if !q.From.IsZero() {
		query = query.Where("attendances.attendance_date >= ?", q.From.Format("2006-01-02"))
	}
	if !q.To.IsZero() {
		query = query.Where("attendances.attendance_date < ?", q.To.Format("2006-01-02"))
	}

	var rows []Attendance
	err := query.Order("attendances.attendance_date DESC, attendances.created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) UpdateCheckOut(ctx context.Context, a *Attendance) error {
	return database.Conn(ctx, r.db, r.tx).
		Model(a).
		Select("check_out_time", "working_hours", "updated_at").
		Updates(a).Error
}

func (r *repository) GetEmployeeStatus(ctx context.Context, employeeID uuid.UUID) (string, error) {
	var row struct{ Status string }
	err := database.Conn(ctx, r.db, r.tx).
		Table("employees").
		Select("status").
		Where("id = ?", employeeID).
		Take(&row).Error
	return row.Status, err
}
