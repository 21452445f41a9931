// Package repositories implements persistence for all domain entities on top of the query builder.
//
// A generic [Store] carries the save pipeline shared by every entity: hooks, blob
// serialization, insert/update/delete by primary key and scanning. Each repository wraps a
// Store and turns its all-optional filter DTO into a query:
//   - [ProjectRepository] : projects, filterable by member and invite through EXISTS subqueries
//   - [ProjectMemberRepository] : project membership rows with storage assigned integer keys
//   - [ProjectInviteRepository] : pending project invitations
//   - [WorkspaceRepository], [WorkspaceMemberRepository], [WorkspaceInviteRepository] : the workspace counterparts
//
// Every repository exposes the same operations:
//   - Create assigns generated fields through the entity's create hook and returns the saved entity
//   - GetMany and Count share predicates; GetMany alone honours limit and offset
//   - GetOne returns the last matching row in storage order, or nil when nothing matches
//   - Update is a partial update: nil DTO fields are left untouched; a missing row is [shared.ErrNotFound]
//   - Delete reports false for a missing row instead of failing
//
// No ORDER BY is added; results come back in the engine's native order.
package repositories
