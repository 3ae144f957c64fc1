//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/briandowns/spinner"

	"github.com/primecalc/primecalc/internal/worker"
)

// FormatExecutionDuration renders a duration at a precision matched to its
// magnitude: microseconds below 1ms, milliseconds below 1s, and the default
// Duration string beyond that.
//
// Parameters:
//   - d: The duration to format.
//
// Returns:
//   - string: A formatted string representing the duration.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return d.String()
	}
}

const (
	// TruncationLimit is the string length above which a result is shortened
	// for terminal display.
	TruncationLimit = 100
	// DisplayEdges is how many characters survive at each end of a
	// truncated result.
	DisplayEdges = 25
	// SpinnerRefreshRate is the animation interval of the wait spinner.
	SpinnerRefreshRate = 200 * time.Millisecond
)

// FormatValue renders a call result for terminal display. Floats that carry
// an integral value print without a decimal point, long strings are
// truncated at the edges.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "<nil>"
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case uint64:
		return strconv.FormatUint(val, 10)
	case string:
		if len(val) > TruncationLimit {
			return fmt.Sprintf("%s...%s (%d chars)", val[:DisplayEdges], val[len(val)-DisplayEdges:], len(val))
		}
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Spinner abstracts the terminal wait indicator so async waits are not
// coupled to one spinner library and tests can substitute a mock.
type Spinner interface {
	// Start begins the animation.
	Start()
	// Stop halts the animation.
	Stop()
	// UpdateSuffix sets the text shown after the spinner glyph.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) { rs.s.Suffix = suffix }

// newSpinner is a variable so tests can inject a mock spinner.
var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], SpinnerRefreshRate, options...)
	return &realSpinner{s}
}

// AwaitWithSpinner blocks on a future while animating a spinner with the
// given label. The spinner stops before the result is returned so the
// terminal line is clean for output.
func AwaitWithSpinner(ctx context.Context, fut *worker.Future, label string) (any, error) {
	sp := newSpinner()
	sp.UpdateSuffix(" " + label)
	sp.Start()
	defer sp.Stop()

	return fut.Await(ctx)
}
