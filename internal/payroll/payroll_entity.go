package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	ComponentAdjustment = "ADJUSTMENT"
	ComponentDeduction  = "DEDUCTION"
	ComponentTax        = "TAX"
)

// Payroll is an immutable snapshot of one employee's pay for one month.
type Payroll struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_payroll_employee_month"`
	Month      string    `gorm:"column:month;type:varchar(7);not null;uniqueIndex:uq_payroll_employee_month;index"`

	BaseSalary       decimal.Decimal `gorm:"column:base_salary;type:numeric(14,2);not null"`
	ProratedBase     decimal.Decimal `gorm:"column:prorated_base;type:numeric(14,2);not null"`
	PresentDays      int             `gorm:"column:present_days;not null"`
	AbsentDays       int             `gorm:"column:absent_days;not null"`
	HalfDays         int             `gorm:"column:half_days;not null"`
	HolidayDays      int             `gorm:"column:holiday_days;not null"`
	OvertimeHours    decimal.Decimal `gorm:"column:overtime_hours;type:numeric(8,2);not null"`
	OvertimeRate     decimal.Decimal `gorm:"column:overtime_rate;type:numeric(14,2);not null"`
	OvertimePay      decimal.Decimal `gorm:"column:overtime_pay;type:numeric(14,2);not null"`
	HolidayPay       decimal.Decimal `gorm:"column:holiday_pay;type:numeric(14,2);not null"`
	AdjustmentsTotal decimal.Decimal `gorm:"column:adjustments_total;type:numeric(14,2);not null"`
	GrossSalary      decimal.Decimal `gorm:"column:gross_salary;type:numeric(14,2);not null"`
	DeductionsTotal  decimal.Decimal `gorm:"column:deductions_total;type:numeric(14,2);not null"`
	TaxRatePercent   decimal.Decimal `gorm:"column:tax_rate_percent;type:numeric(6,2);not null"`
	TaxAmount        decimal.Decimal `gorm:"column:tax_amount;type:numeric(14,2);not null"`
	FinalSalary      decimal.Decimal `gorm:"column:final_salary;type:numeric(14,2);not null"`

	GeneratedBy *uuid.UUID `gorm:"column:generated_by;type:uuid"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`

	Components []PayrollComponent `gorm:"foreignKey:PayrollID"`

	EmployeeName string `gorm:"->;-:migration"`
	EmployeeCode string `gorm:"->;-:migration"`
}

func (Payroll) TableName() string {
	return "payrolls"
}

type PayrollComponent struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	PayrollID uuid.UUID       `gorm:"column:payroll_id;type:uuid;not null;index"`
	Type      string          `gorm:"column:type;type:varchar(16);not null"`
	Name      string          `gorm:"column:name;type:varchar(120);not null"`
	Amount    decimal.Decimal `gorm:"column:amount;type:numeric(14,2);not null"`
	Position  int             `gorm:"column:position;not null"`
}

func (PayrollComponent) TableName() string {
	return "payroll_components"
}

// EmployeeSnapshot is what generation needs to know about an employee.
type EmployeeSnapshot struct {
	ID                    uuid.UUID
	Name                  string
	EmployeeCode          string
	Status                string
	Salary                decimal.Decimal
	DesignationBaseSalary decimal.Decimal
}
