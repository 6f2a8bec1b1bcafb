package scheduler

import (
	"errors"
	"math"
	"strings"

	goerrors "github.com/TudorHulban/go-errors"
	"github.com/asaskevich/govalidator"
)

// Timeline partitions the extended real line into contiguous,
// alternating-availability TimeFrames. It starts as a single available
// sentinel frame (-inf, +inf) and is reshaped exclusively through OccupyTime.
//
// A Timeline is not safe for concurrent use: callers must serialize every
// OccupyTime against any other access, reads included. No internal locking
// is provided.
type Timeline struct {
	Name string

	head *TimeFrame
	tail *TimeFrame
}

type ParamsNewTimeline struct {
	Name string `valid:"required"`
}

func NewTimeline(params *ParamsNewTimeline) (*Timeline, error) {
	if _, errValidation := govalidator.ValidateStruct(params); errValidation != nil {
		return nil,
			goerrors.ErrValidation{
				Caller: "NewTimeline",
				Issue:  errValidation,
			}
	}

	base := &TimeFrame{
		TimeStart: math.Inf(-1),
		TimeEnd:   math.Inf(1),
		Available: true,
	}

	return &Timeline{
			Name: params.Name,

			head: base,
			tail: base,
		},
		nil
}

// FindFrame returns the frame containing time, walking from the head.
// Times beyond the modeled range resolve to the last frame.
func (timeline *Timeline) FindFrame(time float64) *TimeFrame {
	current := timeline.head

	for !current.TimeInside(time) && current.HasNext() {
		current = current.GetNext()
	}

	return current
}

// findClosestBefore returns the last frame whose start is strictly before
// time. A write starting at time therefore never empties the returned
// frame's leading segment.
func (timeline *Timeline) findClosestBefore(time float64) *TimeFrame {
	current := timeline.head

	for {
		if current.next == nil {
			break
		}

		if !(current.next.TimeStart < time) {
			break
		}

		current = current.next
	}

	return current
}

// findClosestAfter returns the first frame, searching backwards from the
// tail, whose end is strictly after time.
func (timeline *Timeline) findClosestAfter(time float64) *TimeFrame {
	current := timeline.tail

	for {
		if current.prev == nil {
			break
		}

		if !(current.prev.TimeEnd > time) {
			break
		}

		current = current.prev
	}

	return current
}

// spliceFrame handles a write that falls entirely inside one frame: the
// frame is split into pre / new / post, pre and post retaining the old
// availability. Writing the availability the frame already has is a no-op.
func (timeline *Timeline) spliceFrame(frame *TimeFrame, timeStart, timeEnd float64, available bool) {
	if frame.Available == available {
		return
	}

	preFrame := &TimeFrame{
		TimeStart: frame.TimeStart,
		TimeEnd:   timeStart,
		Available: !available,
	}
	newFrame := &TimeFrame{
		TimeStart: timeStart,
		TimeEnd:   timeEnd,
		Available: available,
	}
	postFrame := &TimeFrame{
		TimeStart: timeEnd,
		TimeEnd:   frame.TimeEnd,
		Available: !available,
	}

	if frame.prev != nil {
		frame.prev.ConnectNext(preFrame)
	}
	if frame.next != nil {
		postFrame.ConnectNext(frame.next)
	}

	preFrame.ConnectNext(newFrame)
	newFrame.ConnectNext(postFrame)

	timeline.head = preFrame.FindStart()
	timeline.tail = postFrame.FindEnd()
}

// connectFrames handles a write that spans a frame boundary. frameStart and
// frameEnd are the pivot frames straddling the write; whatever lived strictly
// between them is dropped, the write is authoritative. Four cases, keyed on
// whether each pivot already carries the requested availability.
func (timeline *Timeline) connectFrames(frameStart, frameEnd *TimeFrame, timeStart, timeEnd float64, available bool) {
	startSame := frameStart.Available == available
	endSame := frameEnd.Available == available

	switch {
	case startSame && endSame:
		frameStart.TimeEnd = frameEnd.TimeEnd

		if frameEnd.next != nil {
			frameStart.ConnectNext(frameEnd.next)
		} else {
			frameStart.next = nil
		}

	case startSame && !endSame:
		frameStart.TimeEnd = timeEnd
		frameEnd.TimeStart = timeEnd

		frameStart.ConnectNext(frameEnd)

	case !startSame && endSame:
		frameStart.TimeEnd = timeStart
		frameEnd.TimeStart = timeStart

		frameStart.ConnectNext(frameEnd)

	default:
		frameStart.TimeEnd = timeStart
		frameEnd.TimeStart = timeEnd

		newFrame := &TimeFrame{
			TimeStart: timeStart,
			TimeEnd:   timeEnd,
			Available: available,
		}

		frameStart.ConnectNext(newFrame)
		newFrame.ConnectNext(frameEnd)
	}

	// The previous head or tail may have been spliced out.
	timeline.head = frameStart.FindStart()
	timeline.tail = frameStart.FindEnd()
}

type ParamsOccupyTime struct {
	TimeStart float64
	TimeEnd   float64
	Available bool
}

// OccupyTime forcibly overwrites the availability of
// [TimeStart, TimeEnd) - the sole Timeline mutator. Any frame structure
// strictly between the new boundaries is discarded, regardless of what was
// recorded there.
func (timeline *Timeline) OccupyTime(params *ParamsOccupyTime) error {
	if params.TimeStart >= params.TimeEnd {
		return goerrors.ErrInvalidInput{
			Caller:     "OccupyTime",
			InputName:  "TimeEnd",
			InputValue: params.TimeEnd,
			Issue: errors.New(
				"time start greater or equal to time end",
			),
		}
	}

	frameStart := timeline.findClosestBefore(params.TimeStart)
	frameEnd := timeline.findClosestAfter(params.TimeEnd)

	if frameStart == frameEnd {
		timeline.spliceFrame(
			frameStart,
			params.TimeStart,
			params.TimeEnd,
			params.Available,
		)

		return nil
	}

	timeline.connectFrames(
		frameStart,
		frameEnd,
		params.TimeStart,
		params.TimeEnd,
		params.Available,
	)

	return nil
}

// ContingencyCheck walks the whole chain verifying the adjacency invariant:
// no gaps, no overlaps, strict availability alternation. A failure means the
// mutation code has a defect and the Timeline is no longer trustworthy.
func (timeline *Timeline) ContingencyCheck() error {
	current := timeline.head

	for current != timeline.tail {
		if current.next == nil {
			return ErrTimelineCorruption{
				Timeline: timeline.Name,
				At:       current.TimeEnd,
				Issue:    "chain ends before tail",
			}
		}

		if current.next.TimeStart != current.TimeEnd {
			return ErrTimelineCorruption{
				Timeline: timeline.Name,
				At:       current.TimeEnd,
				Issue:    "gap or overlap between adjacent frames",
			}
		}

		if current.next.Available == current.Available {
			return ErrTimelineCorruption{
				Timeline: timeline.Name,
				At:       current.TimeEnd,
				Issue:    "adjacent frames share availability",
			}
		}

		current = current.next
	}

	return nil
}

// UnavailableWithin returns ordered value copies of the unavailable frames
// overlapping [timeStart, timeEnd) - the renderer input.
func (timeline *Timeline) UnavailableWithin(timeStart, timeEnd float64) []TimeFrame {
	var result []TimeFrame

	current := timeline.head

	for current != nil {
		if current.TimeStart >= timeEnd {
			break
		}

		if !current.Available && current.TimeEnd > timeStart {
			result = append(
				result,
				TimeFrame{
					TimeStart: current.TimeStart,
					TimeEnd:   current.TimeEnd,
					Available: current.Available,
				},
			)
		}

		current = current.next
	}

	return result
}

type ParamsOpenings struct {
	TimeStart float64
	TimeEnd   float64

	Duration float64
}

// Openings lists every slot of the requested duration that starts at the
// beginning of an available frame inside the window, one candidate per frame
// that fits it.
func (timeline *Timeline) Openings(params *ParamsOpenings) ([]Proposal, error) {
	if params.TimeStart >= params.TimeEnd {
		return nil,
			goerrors.ErrInvalidInput{
				Caller:     "Openings",
				InputName:  "TimeEnd",
				InputValue: params.TimeEnd,
				Issue: errors.New(
					"time start greater or equal to time end",
				),
			}
	}

	if params.Duration <= 0 {
		return nil,
			goerrors.ErrValidation{
				Caller: "Openings",
				Issue: goerrors.ErrNegativeInput{
					InputName: "Duration",
				},
			}
	}

	var result []Proposal

	current := timeline.head

	for current != nil {
		if current.TimeStart >= params.TimeEnd {
			break
		}

		if current.Available && current.TimeEnd > params.TimeStart {
			slotStart := max(current.TimeStart, params.TimeStart)

			if slotStart+params.Duration <= min(current.TimeEnd, params.TimeEnd) {
				result = append(
					result,
					Proposal{
						TimeStart: slotStart,
						TimeEnd:   slotStart + params.Duration,
					},
				)
			}
		}

		current = current.next
	}

	return result,
		nil
}

// String renders the whole chain, e.g. "[-Inf,0,+][0,8,-][8,+Inf,+]".
// Also serves as the structural-comparison form in tests.
func (timeline *Timeline) String() string {
	var sb strings.Builder

	current := timeline.head

	for current != nil {
		sb.WriteString(current.String())

		current = current.next
	}

	return sb.String()
}
