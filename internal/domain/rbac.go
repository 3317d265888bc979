package domain

const (
	RoleSuperadmin = "superadmin"
	RoleHR         = "hr"
	RoleManager    = "manager"
	RoleEmployee   = "employee"
)

// AdminRoles are the roles an admin account may hold.
var AdminRoles = []string{RoleSuperadmin, RoleHR, RoleManager}

func IsAdminRole(role string) bool {
	for _, r := range AdminRoles {
		if r == role {
			return true
		}
	}
	return false
}

type EnforceRequest struct {
	Role     string `json:"role"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

type PermissionResponse struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
}
