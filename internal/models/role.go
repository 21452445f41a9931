package models

import (
	"fmt"
	"strings"

	"github.com/desertthunder/panelstore/internal/shared"
)

// MemberRole is the role of a member or invitee, stored as its text form.
//
// Roles read back from storage are not checked; only writes made through
// repository DTOs are validated.
type MemberRole string

const (
	RoleOwner  MemberRole = "OWNER"
	RoleAdmin  MemberRole = "ADMIN"
	RoleMember MemberRole = "MEMBER"
)

// Roles lists the recognized roles.
func Roles() []MemberRole {
	return []MemberRole{RoleOwner, RoleAdmin, RoleMember}
}

func (r MemberRole) String() string {
	return string(r)
}

// Valid reports whether r is one of the recognized roles.
func (r MemberRole) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	default:
		return false
	}
}

// ParseMemberRole parses a role name case-insensitively.
func ParseMemberRole(s string) (MemberRole, error) {
	role := MemberRole(strings.ToUpper(strings.TrimSpace(s)))
	if !role.Valid() {
		return "", fmt.Errorf("%w: %q", shared.ErrInvalidRole, s)
	}
	return role, nil
}

// Validate rejects unrecognized roles. Writes call it; reads never do.
func (r MemberRole) Validate() error {
	if !r.Valid() {
		return fmt.Errorf("%w: %q", shared.ErrInvalidRole, string(r))
	}
	return nil
}
