package attendance

import "time"

type MarkAttendanceRequest struct {
	EmployeeID    string     `json:"employee_id" binding:"required,uuid"`
	Date          string     `json:"date" binding:"required"`
	Status        string     `json:"status" binding:"required,oneof=present absent half-day holiday"`
	OvertimeHours float64    `json:"overtime_hours" binding:"gte=0"`
	IsHoliday     bool       `json:"is_holiday"`
	CheckInTime   *time.Time `json:"check_in_time"`
	CheckOutTime  *time.Time `json:"check_out_time"`
}

type FaceAttendanceRequest struct {
	Image string `json:"image" binding:"required"`
}

type ListFilter struct {
	EmployeeID string
	Month      string
}

type AttendanceResponse struct {
	ID             string     `json:"id"`
	EmployeeID     string     `json:"employee_id"`
	EmployeeName   string     `json:"employee_name,omitempty"`
	EmployeeCode   string     `json:"employee_code,omitempty"`
	Date           string     `json:"date"`
	Status         string     `json:"status"`
	OvertimeHours  float64    `json:"overtime_hours"`
	IsHoliday      bool       `json:"is_holiday"`
	CheckInTime    *time.Time `json:"check_in_time,omitempty"`
	CheckOutTime   *time.Time `json:"check_out_time,omitempty"`
	WorkingHours   float64    `json:"working_hours"`
	Method         string     `json:"method"`
	MarkedBy       string     `json:"marked_by,omitempty"`
}

type FaceAttendanceResponse struct {
	Action     string             `json:"action"`
	Confidence float64            `json:"confidence"`
	Attendance AttendanceResponse `json:"attendance"`
}

type SummaryResponse struct {
	EmployeeID    string  `json:"employee_id"`
	Month         string  `json:"month"`
	TotalDays     int     `json:"total_days"`
	Present       int     `json:"present"`
	Absent        int     `json:"absent"`
	HalfDay       int     `json:"half_day"`
	Holiday       int     `json:"holiday"`
	OvertimeHours float64 `json:"overtime_hours"`
}
