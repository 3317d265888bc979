package employeeauth

import (
	"time"

	"go-hrms/internal/employee"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

type EnrollFaceRequest struct {
	Images []string `json:"images" binding:"required"`
}

type ProfileResponse struct {
	ID               string     `json:"id"`
	EmployeeCode     string     `json:"employee_code"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	DepartmentName   string     `json:"department_name,omitempty"`
	DesignationTitle string     `json:"designation_title,omitempty"`
	Status           string     `json:"status"`
	JoiningDate      string     `json:"joining_date"`
	FaceEnrolledAt   *time.Time `json:"face_enrolled_at,omitempty"`
}

type LoginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Employee  ProfileResponse `json:"employee"`
}

func toProfile(e employee.Employee) ProfileResponse {
	return ProfileResponse{
		ID:               e.ID.String(),
		EmployeeCode:     e.EmployeeCode,
		Name:             e.Name,
		Email:            e.Email,
		DepartmentName:   e.DepartmentName,
		DesignationTitle: e.DesignationTitle,
		Status:           e.Status,
		JoiningDate:      e.JoiningDate.Format(time.DateOnly),
		FaceEnrolledAt:   e.FaceEnrolledAt,
	}
}
