package scheduler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// pinTo keeps dragging the proposal start to a fixed instant. Two pins at
// different instants form a deliberately non-convergent strategy set.
type pinTo struct {
	at float64
}

func (pinTo) Name() string { return "pin" }

func (pin pinTo) Assess(_ *Timeline, proposal *Proposal, original Proposal) (bool, error) {
	if proposal.TimeStart == pin.at {
		return false, nil
	}

	proposal.TimeStart = pin.at
	proposal.TimeEnd = pin.at + original.Duration()

	return true, nil
}

func TestErrorsScheduler(t *testing.T) {
	t.Run(
		"1. empty params",
		func(t *testing.T) {
			sched, errCr := NewScheduler(
				&ParamsNewScheduler{},
			)
			require.Error(t, errCr)
			require.Nil(t, sched)
		},
	)

	t.Run(
		"2. pair without strategy",
		func(t *testing.T) {
			sched, errCr := NewScheduler(
				&ParamsNewScheduler{
					Pairs: []SchedulePair{
						{
							Timeline: newTestTimeline(t, "tl"),
						},
					},
				},
			)
			require.Error(t, errCr)
			require.Nil(t, sched)
		},
	)

	t.Run(
		"3. non-positive duration",
		func(t *testing.T) {
			sched, errCr := NewScheduler(
				&ParamsNewScheduler{
					Pairs: []SchedulePair{
						{
							Timeline: newTestTimeline(t, "tl"),
							Strategy: FindAvailable{},
						},
					},
				},
			)
			require.NoError(t, errCr)

			proposal, errSearch := sched.SearchOpening(
				&ParamsSearchOpening{
					TimeStart: 8,
					Duration:  0,
				},
			)
			require.Error(t, errSearch)
			require.Nil(t, proposal)
		},
	)
}

func TestSearchOpening(t *testing.T) {
	t.Run(
		"1. single timeline - shifted to opening hours",
		func(t *testing.T) {
			shop := newBusinessHoursTimeline(t, "shop", 3, 8, 20)

			sched, errCr := NewScheduler(
				&ParamsNewScheduler{
					Pairs: []SchedulePair{
						{Timeline: shop, Strategy: FindAvailable{}},
					},
				},
			)
			require.NoError(t, errCr)

			proposal, errSearch := sched.SearchOpening(
				&ParamsSearchOpening{
					TimeStart: 6,
					Duration:  2,
				},
			)
			require.NoError(t, errSearch)
			require.Equal(t, Proposal{TimeStart: 8, TimeEnd: 10}, *proposal)
		},
	)

	t.Run(
		"2. conflicting timelines - earlier pairs re-validated after a shift",
		func(t *testing.T) {
			opensAtEight := newTestTimeline(t, "opens at 8")
			occupy(t, opensAtEight, 0, 8)

			opensAtNine := newTestTimeline(t, "opens at 9")
			occupy(t, opensAtNine, 0, 9)

			sched, errCr := NewScheduler(
				&ParamsNewScheduler{
					Pairs: []SchedulePair{
						{Timeline: opensAtEight, Strategy: FindAvailable{}},
						{Timeline: opensAtNine, Strategy: FindAvailable{}},
					},
				},
			)
			require.NoError(t, errCr)

			// first pair repairs to (8,22), second shifts to (9,23),
			// the restarted pass must accept 9 on the first timeline too
			proposal, errSearch := sched.SearchOpening(
				&ParamsSearchOpening{
					TimeStart: 6,
					Duration:  14,
				},
			)
			require.NoError(t, errSearch)
			require.Equal(t, Proposal{TimeStart: 9, TimeEnd: 23}, *proposal)
		},
	)

	t.Run(
		"3. three-timeline negotiation with commitments between searches",
		func(t *testing.T) {
			openClose := newBusinessHoursTimeline(t, "open-close", 3, 8, 20)
			operations := newBusinessHoursTimeline(t, "operations", 3, 8, 24)
			use := newTestTimeline(t, "use")

			sched, errCr := NewScheduler(
				&ParamsNewScheduler{
					Pairs: []SchedulePair{
						{Timeline: openClose, Strategy: FindAvailable{}},
						{Timeline: operations, Strategy: FindAvailableWithExtension{}},
						{Timeline: use, Strategy: FindClear{}},
					},
				},
			)
			require.NoError(t, errCr)

			first, errFirst := sched.SearchOpening(
				&ParamsSearchOpening{TimeStart: 8, Duration: 14},
			)
			require.NoError(t, errFirst)
			require.Equal(t, Proposal{TimeStart: 8, TimeEnd: 22}, *first)

			occupy(t, use, first.TimeStart, first.TimeEnd)

			second, errSecond := sched.SearchOpening(
				&ParamsSearchOpening{TimeStart: 34, Duration: 3},
			)
			require.NoError(t, errSecond)
			require.Equal(t, Proposal{TimeStart: 34, TimeEnd: 37}, *second)

			occupy(t, use, second.TimeStart, second.TimeEnd)

			// 9 is taken on the use schedule, 22 is outside opening
			// hours, 32 collides with the first booking's frame end -
			// the fixed point lands past the second booking
			third, errThird := sched.SearchOpening(
				&ParamsSearchOpening{TimeStart: 9, Duration: 3},
			)
			require.NoError(t, errThird)
			require.Equal(t, Proposal{TimeStart: 37, TimeEnd: 40}, *third)

			require.NoError(t, openClose.ContingencyCheck())
			require.NoError(t, operations.ContingencyCheck())
			require.NoError(t, use.ContingencyCheck())
		},
	)

	t.Run(
		"4. cyclic strategies stop with a non-convergence error",
		func(t *testing.T) {
			timeline := newTestTimeline(t, "any")

			sched, errCr := NewScheduler(
				&ParamsNewScheduler{
					Pairs: []SchedulePair{
						{Timeline: timeline, Strategy: pinTo{at: 0}},
						{Timeline: timeline, Strategy: pinTo{at: 100}},
					},
					MaxPasses: 8,
				},
			)
			require.NoError(t, errCr)

			proposal, errSearch := sched.SearchOpening(
				&ParamsSearchOpening{
					TimeStart: 0,
					Duration:  1,
				},
			)
			require.Error(t, errSearch)
			require.Nil(t, proposal)
			require.ErrorAs(t, errSearch, &ErrNonConvergentSearch{})
		},
	)
}

func TestBook(t *testing.T) {
	shop := newBusinessHoursTimeline(t, "shop", 3, 8, 20)
	use := newTestTimeline(t, "use")

	sched, errCr := NewScheduler(
		&ParamsNewScheduler{
			Pairs: []SchedulePair{
				{Timeline: shop, Strategy: FindAvailable{}},
				{Timeline: use, Strategy: FindClear{}},
			},
		},
	)
	require.NoError(t, errCr)

	t.Run(
		"1. booking commits the converged slot",
		func(t *testing.T) {
			receipt, errBook := sched.Book(
				&ParamsBook{
					TimeStart: 6,
					Duration:  2,
					Target:    use,
				},
			)
			require.NoError(t, errBook)
			require.NotNil(t, receipt)

			require.Equal(t, 8., receipt.TimeStart)
			require.Equal(t, 10., receipt.TimeEnd)
			require.NotEmpty(t, receipt.ID.String())

			require.False(t, use.FindFrame(9).Available)
			require.NoError(t, use.ContingencyCheck())
		},
	)

	t.Run(
		"2. second booking lands after the first",
		func(t *testing.T) {
			receipt, errBook := sched.Book(
				&ParamsBook{
					TimeStart: 8,
					Duration:  2,
					Target:    use,
				},
			)
			require.NoError(t, errBook)

			require.Equal(t, 10., receipt.TimeStart)
			require.Equal(t, 12., receipt.TimeEnd)
		},
	)

	t.Run(
		"3. missing target",
		func(t *testing.T) {
			receipt, errBook := sched.Book(
				&ParamsBook{
					TimeStart: 8,
					Duration:  2,
				},
			)
			require.Error(t, errBook)
			require.Nil(t, receipt)
		},
	)
}
