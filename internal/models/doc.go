// Package models defines the storage-backed entities of the admin panel and how they map onto tables.
//
// Entities come in two families with the same shape:
//
//  1. Projects: [Project], its [ProjectMember] rows and pending [ProjectInvite] rows
//  2. Workspaces: [Workspace], [WorkspaceMember] and [WorkspaceInvite]
//
// Every entity declares its table with the schema package, implements [Record] so a
// repository can write and scan it without reflection, and exposes a [Hook] invoked
// before create and update. Identifier-bearing entities get a fresh UUID in their
// create hook; member rows use a storage assigned integer key.
//
// Configuration blobs ([ProjectOptions], [ProjectCodecs], [WorkspaceSettings]) are JSON
// columns whose missing sub-fields resolve to documented defaults on read.
package models
