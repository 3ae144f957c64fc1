// This file contains color accessor functions for the active theme.

package ui

// ColorGreen returns the success color escape code of the active theme.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorRed returns the error color escape code of the active theme.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorYellow returns the warning color escape code of the active theme.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorCyan returns the primary color escape code of the active theme.
func ColorCyan() string { return GetCurrentTheme().Primary }

// ColorMagenta returns the info color escape code of the active theme.
func ColorMagenta() string { return GetCurrentTheme().Info }

// ColorGrey returns the secondary color escape code of the active theme.
func ColorGrey() string { return GetCurrentTheme().Secondary }

// ColorBold returns the bold escape code of the active theme.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorReset returns the reset escape code of the active theme.
func ColorReset() string { return GetCurrentTheme().Reset }
