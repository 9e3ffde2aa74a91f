// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

// Palette of all CLI output, tuned for dark terminal backgrounds.
const (
	ColorPrimary   = lipgloss.Color("#7C3AED") // purple: titles
	ColorMuted     = lipgloss.Color("#6B7280") // gray: hints, scopes, tree branches
	ColorSuccess   = lipgloss.Color("#10B981") // green: values, confirmations
	ColorError     = lipgloss.Color("#EF4444") // red
	ColorWarning   = lipgloss.Color("#F59E0B") // amber
	ColorHighlight = lipgloss.Color("#3B82F6") // blue: coordinates, keys
)

var (
	// TitleStyle renders headings such as "Current Configuration".
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	// SubtitleStyle renders secondary text and placeholders like "(using defaults)".
	SubtitleStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	// SuccessStyle renders configuration values and the ✓ of `config init`.
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	// ErrorStyle renders the "Error:" label.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorError)
	// WarningStyle renders warnings.
	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	// CmdStyle renders artifact coordinates and configuration keys.
	CmdStyle = lipgloss.NewStyle().Foreground(ColorHighlight)

	scopeStyle          = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
	treeEnumeratorStyle = lipgloss.NewStyle().Foreground(ColorMuted).MarginRight(1)
)
