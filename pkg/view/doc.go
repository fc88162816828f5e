// Package view provides the surfaces the controller renders into: an HTML
// page for the web UI and a lipgloss table for terminals.
package view
