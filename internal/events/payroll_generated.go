package events

import "time"

const (
	PayrollGeneratedTopic = "hr.payroll.generated.v1"

	EventPayrollGenerated = "payroll_generated"
)

type PayrollGeneratedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"`
	PayrollID   string    `json:"payroll_id"`
	EmployeeID  string    `json:"employee_id"`
	Month       string    `json:"month"`
	FinalSalary string    `json:"final_salary"`
	GeneratedBy string    `json:"generated_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
