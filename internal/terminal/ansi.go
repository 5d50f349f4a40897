package terminal

// ANSI color constants matching the BBS standard.
const (
	Reset      = "\033[0m"
	Bold       = "\033[1m"
	Underscore = "\033[4m"

	// Foreground colors
	FgRed     = "\033[31m"
	FgGreen   = "\033[32m"
	FgYellow  = "\033[33m"
	FgBlue    = "\033[34m"
	FgMagenta = "\033[35m"
	FgCyan    = "\033[36m"
	FgGray    = "\033[37m"
)

// ClearScreen returns the ANSI clear-screen sequence with the cursor homed.
func ClearScreen() string {
	return "\033[2J\033[H"
}
