package rbac

import "go-hrms/internal/domain"

type PermissionsResponse struct {
	Role        string                      `json:"role"`
	Permissions []domain.PermissionResponse `json:"permissions"`
}
