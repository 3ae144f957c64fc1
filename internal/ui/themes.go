package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a named palette of ANSI escape sequences. A zero value renders
// no escape sequences at all, which is what NoColorTheme relies on.
type Theme struct {
	Name      string
	Primary   string // accent color for headings and prompts
	Secondary string // de-emphasized text such as durations
	Success   string
	Warning   string
	Error     string
	Info      string
	Bold      string
	Reset     string
}

const (
	bold  = "\033[1m"
	reset = "\033[0m"
)

func ansi256(n string) string { return "\033[38;5;" + n + "m" }

var (
	// DarkTheme suits dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   ansi256("51"),  // bright cyan
		Secondary: ansi256("245"), // grey
		Success:   ansi256("82"),
		Warning:   ansi256("220"),
		Error:     ansi256("196"),
		Info:      ansi256("141"),
		Bold:      bold,
		Reset:     reset,
	}

	// LightTheme uses darker shades readable on light backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   ansi256("30"), // dark cyan
		Secondary: ansi256("240"),
		Success:   ansi256("28"),
		Warning:   ansi256("130"),
		Error:     ansi256("124"),
		Info:      ansi256("54"),
		Bold:      bold,
		Reset:     reset,
	}

	// NoColorTheme emits no escape sequences.
	NoColorTheme = Theme{Name: "none"}
)

var (
	themeMutex   sync.RWMutex
	currentTheme = DarkTheme
)

// TUITheme holds the lipgloss colors used by the dashboard. Fields are
// lipgloss.TerminalColor values so NoColor{} can stand in for every slot.
type TUITheme struct {
	Bg      lipgloss.TerminalColor
	Text    lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
	Info    lipgloss.TerminalColor
}

var (
	// DarkTUITheme is the cyan-accented dashboard palette.
	DarkTUITheme = TUITheme{
		Bg:      lipgloss.Color("#0A0E12"),
		Text:    lipgloss.Color("#D8DEE9"),
		Border:  lipgloss.Color("#00B8D4"),
		Accent:  lipgloss.Color("#00E5FF"),
		Success: lipgloss.Color("#4ADE80"),
		Warning: lipgloss.Color("#FBBF24"),
		Error:   lipgloss.Color("#F87171"),
		Dim:     lipgloss.Color("#5C6370"),
		Info:    lipgloss.Color("#60A5FA"),
	}

	// NoColorTUITheme leaves every slot at the terminal default.
	NoColorTUITheme = TUITheme{
		Bg:      lipgloss.NoColor{},
		Text:    lipgloss.NoColor{},
		Border:  lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Dim:     lipgloss.NoColor{},
		Info:    lipgloss.NoColor{},
	}
)

// GetCurrentTUITheme maps the active theme onto the dashboard palette.
// Only the no-color state matters for the TUI; dark and light both get
// the cyan palette because the dashboard draws its own background.
func GetCurrentTUITheme() TUITheme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()

	if currentTheme.Name == NoColorTheme.Name {
		return NoColorTUITheme
	}
	return DarkTUITheme
}

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme selects a theme by name ("dark", "light", "none").
// Unknown names fall back to the dark theme.
func SetTheme(name string) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	switch name {
	case "light":
		currentTheme = LightTheme
	case "none":
		currentTheme = NoColorTheme
	default:
		currentTheme = DarkTheme
	}
}

// InitTheme picks the startup theme. Colors are disabled when the caller
// passed a no-color flag or when NO_COLOR is present in the environment
// (any value counts, per https://no-color.org/).
func InitTheme(noColor bool) {
	if !noColor {
		_, noColor = os.LookupEnv("NO_COLOR")
	}

	themeMutex.Lock()
	defer themeMutex.Unlock()
	if noColor {
		currentTheme = NoColorTheme
	} else {
		currentTheme = DarkTheme
	}
}
