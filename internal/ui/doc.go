// Package ui holds the shared color themes for the CLI, REPL, and TUI
// front ends. Presentation layers ask this package for the active theme
// instead of hard-coding escape sequences, so no-color handling lives in
// exactly one place.
package ui
