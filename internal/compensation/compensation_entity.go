package compensation

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PolicyKey identifies the single organisation-wide policy row.
const PolicyKey = "global"

const (
	DeductionPercent = "percent"
	DeductionFixed   = "fixed"
)

type Policy struct {
	Key               string          `gorm:"column:key;type:varchar(32);primaryKey"`
	TaxRatePercent    decimal.Decimal `gorm:"column:tax_rate_percent;type:numeric(6,2);not null;default:0"`
	ProrateAttendance bool            `gorm:"column:prorate_attendance;not null;default:false"`
	UpdatedBy         *uuid.UUID      `gorm:"column:updated_by;type:uuid"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime"`

	Deductions []Deduction `gorm:"foreignKey:PolicyKey;references:Key"`
}

func (Policy) TableName() string {
	return "compensation_policies"
}

// Deduction is applied to gross pay in Position order.
type Deduction struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	PolicyKey string          `gorm:"column:policy_key;type:varchar(32);not null;index"`
	Position  int             `gorm:"column:position;not null"`
	Label     string          `gorm:"column:label;type:varchar(100);not null"`
	Type      string          `gorm:"column:type;type:varchar(16);not null"`
	Value     decimal.Decimal `gorm:"column:value;type:numeric(14,2);not null;default:0"`
}

func (Deduction) TableName() string {
	return "compensation_deductions"
}

// EmployeeSalary is the slice of an employee row that revisions read.
type EmployeeSalary struct {
	ID     uuid.UUID
	Salary decimal.Decimal
}
