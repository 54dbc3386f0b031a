package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"errors"
	"slices"
	"time"
)

// ErrSessionNotFound is returned by session stores when a handle is unknown, invalid or expired.
var ErrSessionNotFound = errors.New("session not found")

// Role is the single canonical role resolved for a signed-in user.
// The zero value means no recognised role claim was present.
type Role string

const (
	RoleNone          Role = ""
	RoleStudent       Role = "student"
	RoleTeacher       Role = "teacher"
	RoleStaff         Role = "staff"
	RoleDistrictAdmin Role = "district admin"
)

// RoleClaim is a raw role name as reported by the provider's Data API.
type RoleClaim string

const (
	ClaimStudent       RoleClaim = "student"
	ClaimTeacher       RoleClaim = "teacher"
	ClaimStaff         RoleClaim = "staff"
	ClaimDistrictAdmin RoleClaim = "district_admin"
)

// RolePriority is the fixed order in which role claims are considered.
// A user holding several claims is collapsed to the first one found here;
// their other roles are deliberately discarded.
var RolePriority = [...]RoleClaim{
	ClaimStudent,
	ClaimTeacher,
	ClaimStaff,
	ClaimDistrictAdmin,
}

var claimRoles = map[RoleClaim]Role{
	ClaimStudent:       RoleStudent,
	ClaimTeacher:       RoleTeacher,
	ClaimStaff:         RoleStaff,
	ClaimDistrictAdmin: RoleDistrictAdmin,
}

// RoleForClaim returns the display role for a claim, or RoleNone when unknown.
func RoleForClaim(c RoleClaim) Role {
	return claimRoles[c]
}

// ResolveRole applies RolePriority to the given claims.
func ResolveRole(claims []string) Role {
	for _, c := range RolePriority {
		if slices.Contains(claims, string(c)) {
			return RoleForClaim(c)
		}
	}
	return RoleNone
}

// SubjectType is the provider's classification of the OAuth principal.
type SubjectType string

const (
	// SubjectUser is the only subject type with a human to sign in.
	SubjectUser SubjectType = "user"
	// SubjectDistrict arrives when a district authorizes the app; there is no user behind it.
	SubjectDistrict SubjectType = "district"
)

// Name holds a user's legal name. Middle is nil when the provider omits it.
type Name struct {
	First  string
	Middle *string
	Last   string
}

// User is a fully resolved provider user.
type User struct {
	ID           string
	Type         SubjectType
	Name         Name
	Roles        []string
	ResolvedRole Role
}

// Session is the per-browser state carried between requests.
// ID is empty for cookie-backed sessions and an opaque identifier for server-side ones.
type Session struct {
	ID        string    `json:"id,omitempty"`
	State     string    `json:"state,omitempty"`
	FirstName string    `json:"first_name,omitempty"`
	Role      Role      `json:"role,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Authenticated reports whether a handshake has completed for this session.
func (s Session) Authenticated() bool { return s.FirstName != "" }

// SignIn records the resolved user on the session.
func (s *Session) SignIn(u User) {
	s.FirstName = u.Name.First
	s.Role = u.ResolvedRole
}
