// Package apperrors holds the application's error taxonomy. Argument
// errors come from the call boundary, config errors from flag and
// environment parsing; everything else is generic. ExitCodeFor turns any
// error chain into the process exit code.
//
// Errors wrap their causes with fmt.Errorf and %w, so errors.Is and
// errors.As see through added context.
package apperrors
