package scheduler

import (
	"errors"
	"fmt"
	"strconv"

	goerrors "github.com/TudorHulban/go-errors"
)

// Proposal is a candidate [TimeStart, TimeEnd) slot under negotiation.
// It is working state of a search, distinct from committed Timeline state:
// strategies adjust it in place, the caller commits it with OccupyTime.
type Proposal struct {
	TimeStart float64
	TimeEnd   float64
}

func NewProposal(timeStart, timeEnd float64) (*Proposal, error) {
	if timeStart >= timeEnd {
		return nil,
			goerrors.ErrInvalidInput{
				Caller:     "NewProposal",
				InputName:  "TimeEnd",
				InputValue: timeEnd,
				Issue: errors.New(
					"time start greater or equal to time end",
				),
			}
	}

	return &Proposal{
			TimeStart: timeStart,
			TimeEnd:   timeEnd,
		},
		nil
}

func (proposal *Proposal) Duration() float64 {
	return proposal.TimeEnd - proposal.TimeStart
}

func (proposal *Proposal) String() string {
	return fmt.Sprintf(
		"(%s,%s)",

		strconv.FormatFloat(proposal.TimeStart, 'g', -1, 64),
		strconv.FormatFloat(proposal.TimeEnd, 'g', -1, 64),
	)
}
