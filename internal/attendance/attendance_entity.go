package attendance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusHalfDay = "half-day"
	StatusHoliday = "holiday"

	MethodManual = "manual"
	MethodFace   = "face"
	MethodSystem = "system"
)

type Attendance struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	EmployeeID     uuid.UUID       `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_attendance_employee_date"`
	AttendanceDate time.Time       `gorm:"column:attendance_date;type:date;not null;uniqueIndex:uq_attendance_employee_date;index"`
	Status         string          `gorm:"column:status;type:varchar(16);not null"`
	OvertimeHours  decimal.Decimal `gorm:"column:overtime_hours;type:numeric(6,2);not null;default:0"`
	IsHoliday      bool            `gorm:"column:is_holiday;not null;default:false"`
	CheckInTime    *time.Time      `gorm:"column:check_in_time;type:timestamptz"`
	CheckOutTime   *time.Time      `gorm:"column:check_out_time;type:timestamptz"`
	WorkingHours   decimal.Decimal `gorm:"column:working_hours;type:numeric(6,2);not null;default:0"`
	Method         string          `gorm:"column:method;type:varchar(16);not null;default:manual"`
	MarkedBy       *uuid.UUID      `gorm:"column:marked_by;type:uuid"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime"`

	EmployeeName string `gorm:"->;-:migration"`
	EmployeeCode string `gorm:"->;-:migration"`
}

func (Attendance) TableName() string {
	return "attendances"
}

// CountsAsHoliday reports whether the day is paid as a holiday.
func (a Attendance) CountsAsHoliday() bool {
	return a.IsHoliday || a.Status == StatusHoliday
}
