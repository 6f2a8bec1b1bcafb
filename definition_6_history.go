package scheduler

import (
	"errors"

	goerrors "github.com/TudorHulban/go-errors"
)

const defaultTextWidth = 100

type ParamsFrameHistory struct {
	TimeStart float64
	TimeEnd   float64

	TextWidth int
}

// FrameHistory renders the unavailable spans of the timeline within
// [TimeStart, TimeEnd) as a fixed-width ASCII bar, spans delimited with '|'.
// Pass nil params to render the whole finite range at the default width.
// Purely presentational.
func (timeline *Timeline) FrameHistory(params *ParamsFrameHistory) (string, error) {
	if !timeline.head.HasNext() {
		return "empty timeline",
			nil
	}

	timeStart := timeline.head.GetNext().TimeStart
	timeEnd := timeline.tail.GetPrev().TimeEnd
	textWidth := defaultTextWidth

	if params != nil {
		if params.TimeStart >= params.TimeEnd {
			return "",
				goerrors.ErrInvalidInput{
					Caller:     "FrameHistory",
					InputName:  "TimeEnd",
					InputValue: params.TimeEnd,
					Issue: errors.New(
						"time start greater or equal to time end",
					),
				}
		}

		timeStart = params.TimeStart
		timeEnd = params.TimeEnd

		if params.TextWidth > 0 {
			textWidth = params.TextWidth
		}
	}

	timeRange := timeEnd - timeStart
	bar := make([]byte, textWidth)

	for ix := range bar {
		bar[ix] = ' '
	}

	for _, frame := range timeline.UnavailableWithin(timeStart, timeEnd) {
		// Clamp partially overlapping spans to the window.
		spanStart := max(frame.TimeStart, timeStart)
		spanEnd := min(frame.TimeEnd, timeEnd)

		startIx := int((spanStart - timeStart) / timeRange * float64(textWidth))
		endIx := int((spanEnd - timeStart) / timeRange * float64(textWidth))

		startIx = min(startIx, textWidth-1)
		endIx = min(endIx, textWidth)

		for ix := startIx; ix < endIx; ix++ {
			bar[ix] = '-'
		}

		bar[startIx] = '|'

		if endIx > startIx {
			bar[endIx-1] = '|'
		}
	}

	return ">> " + string(bar) + " <<",
		nil
}
