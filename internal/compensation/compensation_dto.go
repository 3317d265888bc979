package compensation

import "time"

type DeductionInput struct {
	Label string  `json:"label"`
	Type  string  `json:"type"`
	Value float64 `json:"value"`
}

type UpdatePolicyRequest struct {
	TaxRatePercent    float64          `json:"tax_rate_percent"`
	ProrateAttendance bool             `json:"prorate_attendance"`
	Deductions        []DeductionInput `json:"deductions"`
}

type DeductionResponse struct {
	Label string  `json:"label"`
	Type  string  `json:"type"`
	Value float64 `json:"value"`
}

type PolicyResponse struct {
	Key               string              `json:"key"`
	TaxRatePercent    float64             `json:"tax_rate_percent"`
	ProrateAttendance bool                `json:"prorate_attendance"`
	Deductions        []DeductionResponse `json:"deductions"`
	UpdatedBy         *string             `json:"updated_by,omitempty"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

// SalaryAssignment accepts either employee_id or id. Salary is left
// untyped so malformed values are reported per entry instead of failing
// the whole body.
type SalaryAssignment struct {
	EmployeeID string `json:"employee_id"`
	ID         string `json:"id"`
	Salary     any    `json:"salary"`
}

type AssignSalariesRequest struct {
	Assignments []SalaryAssignment `json:"assignments"`
}

type RejectedEntry struct {
	Index      int    `json:"index"`
	EmployeeID string `json:"employee_id,omitempty"`
	Reason     string `json:"reason"`
}

type FailedEntry struct {
	EmployeeID string `json:"employee_id"`
	Reason     string `json:"reason"`
}

type AssignSalariesResponse struct {
	Requested       int             `json:"requested"`
	Valid           int             `json:"valid"`
	Rejected        int             `json:"rejected"`
	RejectedEntries []RejectedEntry `json:"rejected_entries"`
	ModifiedCount   int64           `json:"modified_count"`
	Failed          []FailedEntry   `json:"failed"`
}

type ReviseSalariesRequest struct {
	Mode        string   `json:"mode"`
	Value       float64  `json:"value"`
	EmployeeIDs []string `json:"employee_ids"`
}

type ReviseSalariesResponse struct {
	Mode          string        `json:"mode"`
	Value         float64       `json:"value"`
	Matched       int           `json:"matched"`
	RejectedIDs   []string      `json:"rejected_ids"`
	ModifiedCount int64         `json:"modified_count"`
	Failed        []FailedEntry `json:"failed"`
}
