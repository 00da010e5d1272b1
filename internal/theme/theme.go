// Package theme defines the lipgloss styles for repoherd's console output.
package theme

import "github.com/charmbracelet/lipgloss"

// Styles groups the styles applied to the per-repository progress lines.
type Styles struct {
	Header lipgloss.Style // "Processing N repositories…" banner
	OK     lipgloss.Style
	Skip   lipgloss.Style
	Force  lipgloss.Style
	Error  lipgloss.Style
	Key    lipgloss.Style // SSH key notices
}

// Default returns the standard bright ANSI palette: green for successes, red
// for skips and errors, magenta for forced updates, yellow for key notices.
func Default() Styles {
	return Styles{
		Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		OK:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Skip:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Force:  lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		Error:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		Key:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	}
}

// Plain returns styles that render text unmodified, for non-terminal output
// or --no-color.
func Plain() Styles {
	s := lipgloss.NewStyle()
	return Styles{Header: s, OK: s, Skip: s, Force: s, Error: s, Key: s}
}
