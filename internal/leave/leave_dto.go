package leave

type CreateLeaveTypeRequest struct {
	Name           string `json:"name" binding:"required,max=100"`
	MaxDaysPerYear int    `json:"max_days_per_year" binding:"gte=0,lte=366"`
}

type UpdateLeaveTypeRequest struct {
	Name           string `json:"name" binding:"required,max=100"`
	MaxDaysPerYear int    `json:"max_days_per_year" binding:"gte=0,lte=366"`
	IsActive       *bool  `json:"is_active"`
}

// ApplyLeaveRequest is used by HR on behalf of an employee and by the
// employee for self. The self route overrides EmployeeID from the token.
type ApplyLeaveRequest struct {
	EmployeeID  string `json:"employee_id"`
	LeaveTypeID string `json:"leave_type_id" binding:"required,uuid"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	Reason      string `json:"reason" binding:"max=1000"`
}

type ReviewLeaveRequest struct {
	Status string `json:"status" binding:"required"`
}

type ListFilter struct {
	Status     string
	EmployeeID string
}

type LeaveTypeResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	MaxDaysPerYear int    `json:"max_days_per_year"`
	IsActive       bool   `json:"is_active"`
}

type LeaveResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  string  `json:"employee_name,omitempty"`
	LeaveTypeID   string  `json:"leave_type_id"`
	LeaveTypeName string  `json:"leave_type_name,omitempty"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	TotalDays     int     `json:"total_days"`
	Status        string  `json:"status"`
	Reason        string  `json:"reason"`
	ReviewedBy    *string `json:"reviewed_by,omitempty"`
	ReviewedAt    *string `json:"reviewed_at,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

type BalanceResponse struct {
	LeaveTypeID   string `json:"leave_type_id"`
	LeaveTypeName string `json:"leave_type_name,omitempty"`
	Allocated     int    `json:"allocated"`
	Used          int    `json:"used"`
	Remaining     int    `json:"remaining"`
}
