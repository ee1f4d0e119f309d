// internal/ui/styles.go
package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/hqnguyen/dbvim/internal/config"
)

var (
	// Colors (exported via getter functions below)
	textPrimary   lipgloss.Color
	textSecondary lipgloss.Color
	textFaint     lipgloss.Color

	accentColor    lipgloss.Color
	successColor   lipgloss.Color
	errorColor     lipgloss.Color
	highlightColor lipgloss.Color
	warningColor   lipgloss.Color

	bgSecondary lipgloss.Color

	// Styles
	StatusBarStyle     lipgloss.Style
	ModeStyle          lipgloss.Style
	InsertModeStyle    lipgloss.Style
	VisualModeStyle    lipgloss.Style
	ConnectionStyle    lipgloss.Style
	MetaStyle          lipgloss.Style
	ItemStyle          lipgloss.Style
	SelectedItemStyle  lipgloss.Style
	PaneStyle          lipgloss.Style
	FocusedPaneStyle   lipgloss.Style
	TitleStyle         lipgloss.Style
	PromptStyle        lipgloss.Style
	SuccessStyle       lipgloss.Style
	ErrorStyle         lipgloss.Style
	WarningStyle       lipgloss.Style
	DirtyCellStyle     lipgloss.Style
	DeletedRowStyle    lipgloss.Style
	InsertRowStyle     lipgloss.Style
	CursorCellStyle    lipgloss.Style
	VisualSelectStyle  lipgloss.Style
	PopupStyle         lipgloss.Style
)

// Color getter functions for use in components
func TextPrimary() lipgloss.Color    { return textPrimary }
func TextSecondary() lipgloss.Color  { return textSecondary }
func TextFaint() lipgloss.Color      { return textFaint }
func AccentColor() lipgloss.Color    { return accentColor }
func SuccessColor() lipgloss.Color   { return successColor }
func ErrorColor() lipgloss.Color     { return errorColor }
func HighlightColor() lipgloss.Color { return highlightColor }
func WarningColor() lipgloss.Color   { return warningColor }
func BgSecondary() lipgloss.Color    { return bgSecondary }

// InitStyles initializes the global styles based on the provided configuration theme
func InitStyles(theme config.Theme) {
	// Initialize Colors
	textPrimary = lipgloss.Color(theme.TextPrimary)
	textSecondary = lipgloss.Color(theme.TextSecondary)
	textFaint = lipgloss.Color(theme.TextFaint)

	accentColor = lipgloss.Color(theme.Accent)
	successColor = lipgloss.Color(theme.Success)
	errorColor = lipgloss.Color(theme.Error)
	highlightColor = lipgloss.Color(theme.Highlight)
	warningColor = lipgloss.Color(theme.Warning)

	bgSecondary = lipgloss.Color(theme.BgSecondary)

	// Initialize Styles
	StatusBarStyle = lipgloss.NewStyle().
		Foreground(textPrimary).
		Background(bgSecondary)

	ModeStyle = lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Background(successColor).
		Foreground(bgSecondary)

	InsertModeStyle = lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Background(accentColor).
		Foreground(bgSecondary)

	VisualModeStyle = lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Background(warningColor).
		Foreground(bgSecondary)

	ConnectionStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(bgSecondary).
		Foreground(textPrimary)

	MetaStyle = lipgloss.NewStyle().
		Foreground(textFaint).
		Italic(true)

	ItemStyle = lipgloss.NewStyle().
		Foreground(textPrimary)

	SelectedItemStyle = lipgloss.NewStyle().
		Foreground(highlightColor).
		Bold(true)

	PaneStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(textFaint)

	FocusedPaneStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accentColor)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(textSecondary)

	PromptStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(accentColor).
		MarginRight(1)

	SuccessStyle = lipgloss.NewStyle().
		Foreground(successColor)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(errorColor).
		Bold(true)

	WarningStyle = lipgloss.NewStyle().
		Foreground(bgSecondary).
		Background(warningColor).
		Bold(true).
		Padding(0, 1)

	DirtyCellStyle = lipgloss.NewStyle().
		Foreground(warningColor).
		Bold(true)

	DeletedRowStyle = lipgloss.NewStyle().
		Foreground(errorColor).
		Strikethrough(true)

	InsertRowStyle = lipgloss.NewStyle().
		Foreground(successColor).
		Italic(true)

	CursorCellStyle = lipgloss.NewStyle().
		Foreground(bgSecondary).
		Background(highlightColor).
		Bold(true)

	VisualSelectStyle = lipgloss.NewStyle().
		Foreground(bgSecondary).
		Background(textSecondary)

	PopupStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(highlightColor).
		Padding(1, 2)
}
