package scheduler

import (
	goerrors "github.com/TudorHulban/go-errors"
	"github.com/asaskevich/govalidator"
	"github.com/oklog/ulid/v2"
)

// DefaultMaxPasses bounds the fixed-point loop of SearchOpening. Strategy
// sets that keep undoing each other's repairs would otherwise cycle forever.
const DefaultMaxPasses = uint16(64)

type SchedulePair struct {
	Timeline *Timeline
	Strategy AllocationStrategy
}

// Scheduler negotiates one slot against several timelines at once, each
// consulted through its own allocation strategy. It never mutates a
// Timeline: committing a converged slot is the caller's move, or Book's.
type Scheduler struct {
	pairs []SchedulePair

	maxPasses uint16
}

type ParamsNewScheduler struct {
	Pairs []SchedulePair `valid:"required"`

	MaxPasses uint16
}

func NewScheduler(params *ParamsNewScheduler) (*Scheduler, error) {
	if _, errValidation := govalidator.ValidateStruct(params); errValidation != nil {
		return nil,
			goerrors.ErrValidation{
				Caller: "NewScheduler",
				Issue:  errValidation,
			}
	}

	for _, pair := range params.Pairs {
		if pair.Timeline == nil {
			return nil,
				goerrors.ErrValidation{
					Caller: "NewScheduler",
					Issue: goerrors.ErrNilInput{
						InputName: "Pairs.Timeline",
					},
				}
		}

		if pair.Strategy == nil {
			return nil,
				goerrors.ErrValidation{
					Caller: "NewScheduler",
					Issue: goerrors.ErrNilInput{
						InputName: "Pairs.Strategy",
					},
				}
		}
	}

	return &Scheduler{
			pairs: params.Pairs,

			maxPasses: ternary(
				params.MaxPasses > 0,

				params.MaxPasses,
				DefaultMaxPasses,
			),
		},
		nil
}

func (s *Scheduler) AddPair(pair SchedulePair) {
	s.pairs = append(s.pairs, pair)
}

type ParamsSearchOpening struct {
	TimeStart float64
	Duration  float64
}

// SearchOpening drives the fixed-point negotiation: every pass consults the
// pairs in order and any repair restarts the full pass, since a change
// validated against later timelines may reopen agreement already reached
// with earlier ones. The loop ends only on a pass with zero repairs, or by
// exhausting the pass budget with ErrNonConvergentSearch.
func (s *Scheduler) SearchOpening(params *ParamsSearchOpening) (*Proposal, error) {
	if params.Duration <= 0 {
		return nil,
			goerrors.ErrValidation{
				Caller: "SearchOpening",
				Issue: goerrors.ErrNegativeInput{
					InputName: "Duration",
				},
			}
	}

	proposal, errNew := NewProposal(
		params.TimeStart,
		params.TimeStart+params.Duration,
	)
	if errNew != nil {
		return nil,
			errNew
	}

	original := *proposal

	for pass := uint16(0); pass < s.maxPasses; pass++ {
		modified := false

		for _, pair := range s.pairs {
			modifiedByPair, errAssess := pair.Strategy.Assess(
				pair.Timeline,
				proposal,
				original,
			)
			if errAssess != nil {
				return nil,
					errAssess
			}

			if modifiedByPair {
				modified = true

				break
			}
		}

		if !modified {
			return proposal,
				nil
		}
	}

	return nil,
		ErrNonConvergentSearch{
			Passes: s.maxPasses,
		}
}

type ParamsBook struct {
	TimeStart float64
	Duration  float64

	// Target is the timeline that records the booking, usually the one
	// consulted through FindClear.
	Target *Timeline `valid:"required"`
}

type ResponseBook struct {
	ID ulid.ULID

	TimeStart float64
	TimeEnd   float64
}

// Book searches an opening and commits it to the target timeline as
// unavailable, returning a receipt. The target obeys the same single-writer
// precondition as OccupyTime.
func (s *Scheduler) Book(params *ParamsBook) (*ResponseBook, error) {
	if _, errValidation := govalidator.ValidateStruct(params); errValidation != nil {
		return nil,
			goerrors.ErrValidation{
				Caller: "Book",
				Issue:  errValidation,
			}
	}

	proposal, errSearch := s.SearchOpening(
		&ParamsSearchOpening{
			TimeStart: params.TimeStart,
			Duration:  params.Duration,
		},
	)
	if errSearch != nil {
		return nil,
			errSearch
	}

	if errOccupy := params.Target.OccupyTime(
		&ParamsOccupyTime{
			TimeStart: proposal.TimeStart,
			TimeEnd:   proposal.TimeEnd,
			Available: false,
		},
	); errOccupy != nil {
		return nil,
			errOccupy
	}

	return &ResponseBook{
			ID: ulid.Make(),

			TimeStart: proposal.TimeStart,
			TimeEnd:   proposal.TimeEnd,
		},
		nil
}
