package designation

type CreateDesignationRequest struct {
	Title        string  `json:"title" binding:"required,max=255"`
	DepartmentID string  `json:"department_id" binding:"required,uuid"`
	BaseSalary   float64 `json:"base_salary" binding:"gte=0"`
	Level        int     `json:"level" binding:"required,min=1,max=10"`
}

type UpdateDesignationRequest struct {
	Title        string  `json:"title" binding:"required,max=255"`
	DepartmentID string  `json:"department_id" binding:"required,uuid"`
	BaseSalary   float64 `json:"base_salary" binding:"gte=0"`
	Level        int     `json:"level" binding:"required,min=1,max=10"`
	Status       string  `json:"status" binding:"omitempty,oneof=active inactive"`
}

type ListFilter struct {
	Q            string
	DepartmentID string
	Status       string
}

type DesignationResponse struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	DepartmentID   string  `json:"department_id"`
	DepartmentName string  `json:"department_name,omitempty"`
	BaseSalary     float64 `json:"base_salary"`
	Level          int     `json:"level"`
	Status         string  `json:"status"`
}
