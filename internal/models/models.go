package models

import (
	"github.com/desertthunder/panelstore/internal/schema"
	"github.com/desertthunder/panelstore/internal/shared"
)

// Record is implemented by pointers to mapped entities.
//
// Values and Targets follow the column order of Table(). Decode runs after a row has
// been scanned into Targets and resolves derived fields such as configuration blobs.
type Record[T any] interface {
	*T
	Table() *schema.Table
	Values() ([]any, error)
	Targets() []any
	Decode() error
}

// Hook is the lifecycle capability attached to an entity type.
//
// BeforeCreate runs before the first write, BeforeUpdate before every update.
type Hook[T any] interface {
	BeforeCreate(*T) error
	BeforeUpdate(*T) error
}

// HookFuncs adapts plain functions to [Hook]. Nil functions are no-ops.
type HookFuncs[T any] struct {
	Create func(*T) error
	Update func(*T) error
}

func (h HookFuncs[T]) BeforeCreate(v *T) error {
	if h.Create == nil {
		return nil
	}
	return h.Create(v)
}

func (h HookFuncs[T]) BeforeUpdate(v *T) error {
	if h.Update == nil {
		return nil
	}
	return h.Update(v)
}

// assignID returns a create hook that overwrites the entity's identifier with a new UUID,
// regardless of what the caller supplied.
func assignID[T any](id func(*T) *string) func(*T) error {
	return func(v *T) error {
		*id(v) = shared.GenerateID()
		return nil
	}
}

// Tables returns every table the application expects to find at startup.
func Tables() []*schema.Table {
	return []*schema.Table{
		ProjectTable,
		ProjectMemberTable,
		ProjectInviteTable,
		WorkspaceTable,
		WorkspaceMemberTable,
		WorkspaceInviteTable,
	}
}
