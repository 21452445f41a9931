package repositories

import (
	"fmt"

	"github.com/desertthunder/panelstore/internal/models"
	"github.com/desertthunder/panelstore/internal/shared"
)

// Page bounds a GetMany call. Nil fields mean no limit and no offset.
type Page struct {
	Limit  *int64
	Offset *int64
}

// Validate rejects negative bounds, which the two engines would treat differently.
func (p Page) Validate() error {
	if p.Limit != nil && *p.Limit < 0 {
		return fmt.Errorf("%w: limit must not be negative, got %d", shared.ErrInvalidArgument, *p.Limit)
	}
	if p.Offset != nil && *p.Offset < 0 {
		return fmt.Errorf("%w: offset must not be negative, got %d", shared.ErrInvalidArgument, *p.Offset)
	}
	return nil
}

// roleValue turns an optional role into the plain string bound as a query argument.
func roleValue(role *models.MemberRole) *string {
	if role == nil {
		return nil
	}
	s := string(*role)
	return &s
}

// validateRole checks a role supplied by an update; the stored role is never checked.
func validateRole(role *models.MemberRole) error {
	if role == nil {
		return nil
	}
	return role.Validate()
}

// set copies an optional DTO field over its entity field.
func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
