package scheduler

// AllocationStrategy is a per-timeline feasibility rule. Assess inspects the
// proposal against the timeline and either accepts it (false, nil) or repairs
// it in place (true, nil). original carries the caller's untouched request:
// the proposal's duration may already have been altered by an earlier pass.
//
// The two-step hops below lean on strict availability alternation. Where a
// link the alternation invariant promises is missing, Assess reports
// ErrTimelineCorruption rather than walking off the chain.
type AllocationStrategy interface {
	Assess(timeline *Timeline, proposal *Proposal, original Proposal) (bool, error)
	Name() string
}

// Obstructed reports whether a slot of the given duration starting at
// timeStart is blocked: the frame there is unavailable or too short.
func Obstructed(timeline *Timeline, timeStart, duration float64) bool {
	frame := timeline.FindFrame(timeStart)

	if !frame.Available {
		return true
	}

	return frame.TimeEnd-timeStart < duration
}

// NextOpening returns the start of the next available frame after the one
// containing timeStart.
func NextOpening(timeline *Timeline, timeStart float64) (float64, error) {
	frame := timeline.FindFrame(timeStart)

	if !frame.Available {
		if frame.next == nil {
			return 0,
				ErrTimelineCorruption{
					Timeline: timeline.Name,
					At:       frame.TimeStart,
					Issue:    "unavailable frame closes the chain",
				}
		}

		return frame.next.TimeStart,
			nil
	}

	if frame.next == nil || frame.next.next == nil {
		return 0,
			ErrTimelineCorruption{
				Timeline: timeline.Name,
				At:       frame.TimeStart,
				Issue:    "no opening past the chain end",
			}
	}

	return frame.next.next.TimeStart,
		nil
}

// FindAvailable requires the proposal start to land in an available frame.
// On violation the start jumps to the next frame, which by alternation is
// available, and the end is recomputed from the original duration.
type FindAvailable struct{}

func (FindAvailable) Name() string { return "available" }

func (FindAvailable) Assess(timeline *Timeline, proposal *Proposal, original Proposal) (bool, error) {
	frame := timeline.FindFrame(proposal.TimeStart)
	if frame.Available {
		return false, nil
	}

	next := frame.GetNext()
	if next == nil {
		return false,
			ErrTimelineCorruption{
				Timeline: timeline.Name,
				At:       frame.TimeStart,
				Issue:    "unavailable frame closes the chain",
			}
	}

	if !next.Available {
		return false,
			ErrTimelineCorruption{
				Timeline: timeline.Name,
				At:       next.TimeStart,
				Issue:    "availability alternation broken",
			}
	}

	proposal.TimeStart = next.TimeStart
	proposal.TimeEnd = next.TimeStart + original.Duration()

	return true, nil
}

// FindAvailableWithExtension requires both the start and the end instant to
// land in available frames, letting the slot straddle closed gaps: after
// repairing the start it consumes available frame durations, hopping over
// exactly one unavailable frame at a time, until the remaining requested
// duration fits in the frame reached.
type FindAvailableWithExtension struct{}

func (FindAvailableWithExtension) Name() string { return "extension" }

func (FindAvailableWithExtension) Assess(timeline *Timeline, proposal *Proposal, original Proposal) (bool, error) {
	frame := timeline.FindFrame(proposal.TimeStart)
	frameEnd := timeline.FindFrame(proposal.TimeEnd)

	if frame.Available && frameEnd.Available {
		return false, nil
	}

	if !frame.Available {
		next := frame.GetNext()
		if next == nil {
			return false,
				ErrTimelineCorruption{
					Timeline: timeline.Name,
					At:       frame.TimeStart,
					Issue:    "unavailable frame closes the chain",
				}
		}

		if !next.Available {
			return false,
				ErrTimelineCorruption{
					Timeline: timeline.Name,
					At:       next.TimeStart,
					Issue:    "availability alternation broken",
				}
		}

		frame = next
		proposal.TimeStart = frame.TimeStart
	}

	remaining := original.Duration()

	for remaining > frame.Duration() {
		remaining = remaining - frame.Duration()

		if frame.next == nil || frame.next.next == nil {
			return false,
				ErrTimelineCorruption{
					Timeline: timeline.Name,
					At:       frame.TimeEnd,
					Issue:    "alternation hop past the chain end",
				}
		}

		if frame.next.Available || !frame.next.next.Available {
			return false,
				ErrTimelineCorruption{
					Timeline: timeline.Name,
					At:       frame.TimeEnd,
					Issue:    "availability alternation broken",
				}
		}

		frame = frame.next.next
	}

	proposal.TimeEnd = frame.TimeStart + remaining

	return true, nil
}

// FindClear requires the whole slot to fit inside one contiguous available
// frame, gap straddling forbidden. On violation it advances to the next
// available frame and hops by twos until one frame alone holds the original
// duration.
type FindClear struct{}

func (FindClear) Name() string { return "clear" }

func (FindClear) Assess(timeline *Timeline, proposal *Proposal, original Proposal) (bool, error) {
	frame := timeline.FindFrame(proposal.TimeStart)

	if frame.Available && proposal.Duration() <= frame.TimeEnd-proposal.TimeStart {
		return false, nil
	}

	if frame.next == nil {
		return false,
			ErrTimelineCorruption{
				Timeline: timeline.Name,
				At:       frame.TimeStart,
				Issue:    "no clear frame past the chain end",
			}
	}

	frame = frame.next

	if !frame.Available {
		if frame.next == nil {
			return false,
				ErrTimelineCorruption{
					Timeline: timeline.Name,
					At:       frame.TimeStart,
					Issue:    "unavailable frame closes the chain",
				}
		}

		frame = frame.next
	}

	if !frame.Available {
		return false,
			ErrTimelineCorruption{
				Timeline: timeline.Name,
				At:       frame.TimeStart,
				Issue:    "availability alternation broken",
			}
	}

	for original.Duration() > frame.Duration() {
		if frame.next == nil || frame.next.next == nil {
			return false,
				ErrTimelineCorruption{
					Timeline: timeline.Name,
					At:       frame.TimeEnd,
					Issue:    "alternation hop past the chain end",
				}
		}

		if frame.next.Available || !frame.next.next.Available {
			return false,
				ErrTimelineCorruption{
					Timeline: timeline.Name,
					At:       frame.TimeEnd,
					Issue:    "availability alternation broken",
				}
		}

		frame = frame.next.next
	}

	proposal.TimeStart = frame.TimeStart
	proposal.TimeEnd = frame.TimeStart + original.Duration()

	return true, nil
}
