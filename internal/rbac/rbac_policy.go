package rbac

import "go-hrms/internal/domain"

type Policy struct {
	Role     string
	Resource string
	Action   string
}

// Inheritance pairs are (role, inherits-from).
var Inheritance = [][2]string{
	{domain.RoleHR, domain.RoleManager},
	{domain.RoleSuperadmin, domain.RoleHR},
}

var DefaultPolicies = []Policy{
	// manager: read-only view of the organisation
	{domain.RoleManager, "employee", "read"},
	{domain.RoleManager, "department", "read"},
	{domain.RoleManager, "designation", "read"},
	{domain.RoleManager, "attendance", "read"},
	{domain.RoleManager, "leave_type", "read"},
	{domain.RoleManager, "payroll", "read"},

	{domain.RoleHR, "employee", "create"},
	{domain.RoleHR, "employee", "update"},
	{domain.RoleHR, "employee", "delete"},
	{domain.RoleHR, "department", "create"},
	{domain.RoleHR, "department", "update"},
	{domain.RoleHR, "designation", "create"},
	{domain.RoleHR, "designation", "update"},
	{domain.RoleHR, "attendance", "create"},
	{domain.RoleHR, "leave", "read"},
	{domain.RoleHR, "leave", "create"},
	{domain.RoleHR, "leave", "approve"},
	{domain.RoleHR, "leave_type", "create"},
	{domain.RoleHR, "leave_type", "update"},
	{domain.RoleHR, "leave_type", "delete"},
	{domain.RoleHR, "payroll", "create"},
	{domain.RoleHR, "payroll", "export"},
	{domain.RoleHR, "compensation", "read"},
	{domain.RoleHR, "compensation", "update"},

	{domain.RoleSuperadmin, "department", "delete"},
	{domain.RoleSuperadmin, "designation", "delete"},
	{domain.RoleSuperadmin, "admin", "manage"},
}
