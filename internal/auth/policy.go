package auth

import "github.com/hemantthp85-ai/Civic-1/types"

// Operation names an action a session can be authorized for.
type Operation string

const (
	OpComplaintCreate Operation = "complaint:create"
	OpComplaintList   Operation = "complaint:list"
	OpComplaintView   Operation = "complaint:view"
	OpMediaPresign    Operation = "media:presign"
)

// policy maps each operation to the roles allowed to perform it. Checks
// dispatch through this table instead of inline role conditionals so the
// authorization rules stay in one auditable place.
var policy = map[Operation]map[types.Role]struct{}{
	OpComplaintCreate: {
		types.RoleCitizen: {},
	},
	OpComplaintList: {
		types.RoleCitizen: {},
		types.RoleOfficer: {},
		types.RoleAdmin:   {},
	},
	OpComplaintView: {
		types.RoleCitizen: {},
		types.RoleOfficer: {},
		types.RoleAdmin:   {},
	},
	OpMediaPresign: {
		types.RoleCitizen: {},
		types.RoleOfficer: {},
		types.RoleAdmin:   {},
	},
}

// Allowed reports whether the role may perform the operation. Unknown
// roles and unknown operations are denied.
func Allowed(role types.Role, op Operation) bool {
	roles, ok := policy[op]
	if !ok {
		return false
	}
	_, ok = roles[role]
	return ok
}
