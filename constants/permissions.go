package constants

// Operator permissions
const (
	PermAdminFull    = "rental-manager.admin.full-permit"
	PermOperatorFull = "rental-manager.operator.full-permit"

	// Special permissions
	PermAny = "any"
)

// Permission groups for convenience
var (
	OperatorPermissions = []string{
		PermAdminFull,
		PermOperatorFull,
	}
)
