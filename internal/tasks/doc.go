// Package tasks runs long project operations with non-blocking progress reporting.
//
// # Bulk Export
//
// [Exporter.BulkExport] writes the roster of many projects at once:
//
//   - A producer loads each project with its members and invites, throttled by a rate limiter
//   - A bounded pool of workers renders each export to disk (csv, markdown, txt or json)
//   - A manifest summarizing successes and failures is written to the output directory
//
// A project that fails to load or write is recorded in the result and does
// not stop the remaining exports.
//
// # Progress Reporting
//
// Operations accept an optional channel of [ProgressUpdate]. Updates are sent
// with select and default, so a slow or absent reader never blocks an export.
package tasks
