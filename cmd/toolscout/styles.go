// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

// Color palette for launcher output. The launcher frequently runs from
// a scheduled job with output landing in log files, so styling is kept
// to a handful of states; the colors assume a dark terminal when one
// is attached.
const (
	// ColorPrimary is purple - the toolscout title in help output.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is gray - taglines and secondary help text.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorSuccess is green - schedule install/uninstall confirmations.
	ColorSuccess = lipgloss.Color("#10B981")

	// ColorError is red - fatal precondition failures.
	ColorError = lipgloss.Color("#EF4444")

	// ColorWarning is amber - degraded-but-continuing conditions, such
	// as a config file that failed to load.
	ColorWarning = lipgloss.Color("#F59E0B")
)

// Base styles built from the palette.
var (
	// TitleStyle is for the launcher name in help headers.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle is for taglines and section leads in help text.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// SuccessStyle is for completed lifecycle operations.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// ErrorStyle heads the next-steps block printed under fatal errors.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// WarningStyle is for recoverable problems the launcher works around.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)
)
