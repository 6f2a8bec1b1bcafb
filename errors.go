package scheduler

import (
	"fmt"
	"strconv"
)

// ErrTimelineCorruption reports a broken chain invariant: a coverage gap,
// an overlap or two adjacent frames sharing availability. It can only arise
// from a defect in the mutation code or from tampering, never from caller
// input, and the Timeline it names must be treated as unusable.
type ErrTimelineCorruption struct {
	Timeline string
	At       float64
	Issue    string
}

func (e ErrTimelineCorruption) Error() string {
	return fmt.Sprintf(
		"timeline %s corrupted at %s: %s",

		e.Timeline,
		strconv.FormatFloat(e.At, 'g', -1, 64),
		e.Issue,
	)
}

// ErrNonConvergentSearch reports that a search exhausted its pass budget
// without reaching a pass in which no strategy adjusted the proposal.
// Recoverable: the search failed, the timelines are untouched.
type ErrNonConvergentSearch struct {
	Passes uint16
}

func (e ErrNonConvergentSearch) Error() string {
	return fmt.Sprintf(
		"search did not converge after %d passes",

		e.Passes,
	)
}
