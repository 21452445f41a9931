// Package ui renders command line reports with lipgloss styles.
//
// A shared [Palette] colors status lines (ok, warning, error) and [Table] lays out
// entity listings. Styles degrade to plain text when output is not a terminal.
package ui
