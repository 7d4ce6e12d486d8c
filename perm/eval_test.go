package perm_test

import (
	"testing"

	"github.com/katalvlaran/qvrp/perm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEvalProgramMatchesDecodeAndInverts runs the reversible evaluator for
// every selector tuple, compares with Decode and checks that the inverse
// leaves only the selector registers behind.
func TestEvalProgramMatchesDecodeAndInverts(t *testing.T) {
	for n := 3; n <= 6; n++ {
		prog, err := perm.EvalProgram(n)
		require.NoError(t, err)
		total, _ := perm.Count(n)

		for k := 0; k < total; k++ {
			sel, _ := perm.FromIndex(n, k)
			ctx := newContext()
			_, err = perm.NewSelectors(ctx, n, sel)
			require.NoError(t, err)
			selectorsOnly := ctx.Live()

			require.NoError(t, prog.Apply(ctx))
			got, err := perm.Itinerary(ctx)
			require.NoError(t, err)
			want, _ := perm.Decode(n, sel)
			require.Equal(t, want, got, "n=%d sel=%v", n, sel)

			require.NoError(t, prog.Inverse().Apply(ctx))
			require.Equal(t, selectorsOnly, ctx.Live())
		}
	}
}

func TestEvalProgramShape(t *testing.T) {
	prog, err := perm.EvalProgram(5)
	require.NoError(t, err)
	assert.Equal(t, 2+3, prog.Len())
	assert.Equal(t, []string{"sel1", "sel2", "sel3"}, prog.Reads())
	assert.Equal(t, []string{perm.ItineraryReg}, prog.Writes())

	_, err = perm.EvalProgram(2)
	require.ErrorIs(t, err, perm.ErrTooFewCities)
}
