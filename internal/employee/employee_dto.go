package employee

import "time"

type CreateEmployeeRequest struct {
	Name          string  `json:"name" binding:"required,max=255"`
	Email         string  `json:"email" binding:"required,email"`
	DepartmentID  string  `json:"department_id" binding:"required,uuid"`
	DesignationID string  `json:"designation_id" binding:"required,uuid"`
	Salary        float64 `json:"salary" binding:"gte=0"`
	JoiningDate   string  `json:"joining_date"`
}

type UpdateEmployeeRequest struct {
	Name          string  `json:"name" binding:"required,max=255"`
	Email         string  `json:"email" binding:"required,email"`
	DepartmentID  string  `json:"department_id" binding:"required,uuid"`
	DesignationID string  `json:"designation_id" binding:"required,uuid"`
	Salary        float64 `json:"salary" binding:"gte=0"`
	JoiningDate   string  `json:"joining_date"`
	Status        string  `json:"status" binding:"omitempty,oneof=active inactive"`
}

type ListFilter struct {
	Q      string
	Status string
}

type EmployeeResponse struct {
	ID               string     `json:"id"`
	EmployeeCode     string     `json:"employee_code"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	DepartmentID     string     `json:"department_id"`
	DepartmentName   string     `json:"department_name,omitempty"`
	DesignationID    string     `json:"designation_id"`
	DesignationTitle string     `json:"designation_title,omitempty"`
	Salary           float64    `json:"salary"`
	Status           string     `json:"status"`
	JoiningDate      string     `json:"joining_date"`
	FaceEnrolledAt   *time.Time `json:"face_enrolled_at,omitempty"`
}

type EmployeeOptionResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	EmployeeCode string `json:"employee_code"`
}
