// Package theme holds the lipgloss styles used by the CLI output.
package theme

import "github.com/charmbracelet/lipgloss"

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue   = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen  = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed    = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorGray   = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite  = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
)

// HeaderStyle is used for section headers in list output.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// TitleStyle renders record titles.
var TitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite)

// DoneStyle renders completed tasks.
var DoneStyle = lipgloss.NewStyle().
	Faint(true).
	Strikethrough(true).
	Foreground(ColorGray)

// OverdueStyle highlights records whose anchor time has passed.
var OverdueStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorRed)

// DueSoonStyle highlights records due within the next day.
var DueSoonStyle = lipgloss.NewStyle().
	Foreground(ColorYellow)

// MetaStyle renders ids, dates, and other secondary detail.
var MetaStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// OKStyle renders success confirmations.
var OKStyle = lipgloss.NewStyle().
	Foreground(ColorGreen)
