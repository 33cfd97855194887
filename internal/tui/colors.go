package tui

// Color constants for the timesheet TUI theme
const (
	ColorBorder = "#3A3F55" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2" // Job names, user input, titles
	ColorSecondaryText = "#B1B8C7" // Field labels
	ColorDisabledText  = "#6D7383" // Muted details
	ColorPlaceholder   = "#B1B8C7"
	ColorHelpText      = "240" // Dark grey for help text

	// Accent Colors
	ColorAccentMain   = "#0EA5E9" // Borders of focused panels
	ColorAccentBright = "#38BDF8" // Clock, current field

	// State Colors
	ColorError   = "#EF4444" // Validation errors
	ColorSuccess = "#22C55E" // Earnings, valid preview
	ColorWarning = "#F59E0B" // Preview of unparseable input
)
