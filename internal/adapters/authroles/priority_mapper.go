package authroles

import (
	domainauth "github.com/squidword/squidword/internal/domain/auth"
	"github.com/squidword/squidword/internal/ports"
)

var _ ports.RoleMapper = PriorityMapper{}

// PriorityMapper collapses a set of role claims to one role using domainauth.RolePriority.
type PriorityMapper struct{}

// Map returns the role of the highest-priority claim held, or RoleNone when no claim is recognised.
func (PriorityMapper) Map(claims []string) domainauth.Role {
	return domainauth.ResolveRole(claims)
}
