package scheduler

import (
	"fmt"
	"strconv"
)

// TimeFrame is a half-open time span [TimeStart, TimeEnd) tagged with an
// availability flag. Frames form a doubly-linked chain covering the whole
// extended real line. The links are owned by the Timeline the frame belongs
// to: only the owning Timeline rewires them, prev exists for leftward
// traversal only and never decides lifetime.
type TimeFrame struct {
	TimeStart float64
	TimeEnd   float64
	Available bool

	next *TimeFrame
	prev *TimeFrame
}

// ConnectNext wires frame -> other and other.prev -> frame.
func (frame *TimeFrame) ConnectNext(other *TimeFrame) {
	frame.next = other
	other.prev = frame
}

func (frame *TimeFrame) HasNext() bool {
	return frame.next != nil
}

func (frame *TimeFrame) HasPrev() bool {
	return frame.prev != nil
}

func (frame *TimeFrame) GetNext() *TimeFrame {
	return frame.next
}

func (frame *TimeFrame) GetPrev() *TimeFrame {
	return frame.prev
}

// TimeInside reports whether time falls inside the frame. The span is
// right-exclusive, a boundary time belongs to the later frame.
func (frame *TimeFrame) TimeInside(time float64) bool {
	return frame.TimeStart <= time && time < frame.TimeEnd
}

func (frame *TimeFrame) Duration() float64 {
	return frame.TimeEnd - frame.TimeStart
}

// FindStart walks backwards to the structural start of the chain.
func (frame *TimeFrame) FindStart() *TimeFrame {
	current := frame

	for current.HasPrev() {
		current = current.prev
	}

	return current
}

// FindEnd walks forward to the structural end of the chain.
func (frame *TimeFrame) FindEnd() *TimeFrame {
	current := frame

	for current.HasNext() {
		current = current.next
	}

	return current
}

func (frame *TimeFrame) String() string {
	return fmt.Sprintf(
		"[%s,%s,%s]",

		strconv.FormatFloat(frame.TimeStart, 'g', -1, 64),
		strconv.FormatFloat(frame.TimeEnd, 'g', -1, 64),
		ternary(frame.Available, "+", "-"),
	)
}
