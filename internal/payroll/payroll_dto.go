package payroll

import "time"

type AdjustmentInput struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

type GeneratePayrollRequest struct {
	EmployeeID    string            `json:"employee_id" binding:"required,uuid"`
	Month         string            `json:"month" binding:"required"`
	OvertimeHours *float64          `json:"overtime_hours"`
	OvertimeRate  *float64          `json:"overtime_rate"`
	HolidayPay    *float64          `json:"holiday_pay"`
	Adjustments   []AdjustmentInput `json:"adjustments"`
}

type ListFilter struct {
	EmployeeID string
	Month      string
}

type ComponentResponse struct {
	Type   string  `json:"type"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

type PayrollResponse struct {
	ID               string              `json:"id"`
	EmployeeID       string              `json:"employee_id"`
	EmployeeName     string              `json:"employee_name,omitempty"`
	EmployeeCode     string              `json:"employee_code,omitempty"`
	Month            string              `json:"month"`
	BaseSalary       float64             `json:"base_salary"`
	ProratedBase     float64             `json:"prorated_base"`
	PresentDays      int                 `json:"present_days"`
	AbsentDays       int                 `json:"absent_days"`
	HalfDays         int                 `json:"half_days"`
	HolidayDays      int                 `json:"holiday_days"`
	OvertimeHours    float64             `json:"overtime_hours"`
	OvertimeRate     float64             `json:"overtime_rate"`
	OvertimePay      float64             `json:"overtime_pay"`
	HolidayPay       float64             `json:"holiday_pay"`
	AdjustmentsTotal float64             `json:"adjustments_total"`
	GrossSalary      float64             `json:"gross_salary"`
	DeductionsTotal  float64             `json:"deductions_total"`
	TaxRatePercent   float64             `json:"tax_rate_percent"`
	TaxAmount        float64             `json:"tax_amount"`
	FinalSalary      float64             `json:"final_salary"`
	Components       []ComponentResponse `json:"components,omitempty"`
	GeneratedBy      *string             `json:"generated_by,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
}
