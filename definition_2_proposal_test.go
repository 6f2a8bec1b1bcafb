package scheduler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProposal(t *testing.T) {
	t.Run(
		"1. valid",
		func(t *testing.T) {
			proposal, errCr := NewProposal(8, 22)
			require.NoError(t, errCr)
			require.NotNil(t, proposal)

			require.Equal(t, 14., proposal.Duration())
			require.Equal(t, "(8,22)", proposal.String())
		},
	)

	t.Run(
		"2. inverted",
		func(t *testing.T) {
			proposal, errCr := NewProposal(22, 8)
			require.Error(t, errCr)
			require.Nil(t, proposal)
		},
	)

	t.Run(
		"3. empty",
		func(t *testing.T) {
			proposal, errCr := NewProposal(8, 8)
			require.Error(t, errCr)
			require.Nil(t, proposal)
		},
	)
}
