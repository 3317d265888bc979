package leave

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type LeaveType struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name           string    `gorm:"column:name;type:varchar(100);not null;uniqueIndex:uq_leave_type_name"`
	MaxDaysPerYear int       `gorm:"column:max_days_per_year;not null;default:0"`
	IsActive       bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (LeaveType) TableName() string {
	return "leave_types"
}

type LeaveRequest struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	EmployeeID  uuid.UUID  `gorm:"column:employee_id;type:uuid;not null;index:idx_leave_requests_employee_dates"`
	LeaveTypeID uuid.UUID  `gorm:"column:leave_type_id;type:uuid;not null"`
	StartDate   time.Time  `gorm:"column:start_date;type:date;not null;index:idx_leave_requests_employee_dates"`
	EndDate     time.Time  `gorm:"column:end_date;type:date;not null;index:idx_leave_requests_employee_dates"`
	TotalDays   int        `gorm:"column:total_days;not null"`
	Status      string     `gorm:"column:status;type:varchar(16);not null;default:pending;index"`
	Reason      string     `gorm:"column:reason;type:text"`
	ReviewedBy  *uuid.UUID `gorm:"column:reviewed_by;type:uuid"`
	ReviewedAt  *time.Time `gorm:"column:reviewed_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`

	EmployeeName  string `gorm:"->;-:migration"`
	LeaveTypeName string `gorm:"->;-:migration"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

type LeaveBalance struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	EmployeeID  uuid.UUID `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_leave_balance_employee_type"`
	LeaveTypeID uuid.UUID `gorm:"column:leave_type_id;type:uuid;not null;uniqueIndex:uq_leave_balance_employee_type"`
	Allocated   int       `gorm:"column:allocated;not null;default:0"`
	Used        int       `gorm:"column:used;not null;default:0"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`

	LeaveTypeName string `gorm:"->;-:migration"`
}

func (LeaveBalance) TableName() string {
	return "leave_balances"
}

func (b LeaveBalance) Remaining() int {
	return b.Allocated - b.Used
}
