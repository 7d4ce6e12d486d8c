package rev_test

import (
	"testing"

	"github.com/katalvlaran/qvrp/rev"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBranchSelectsBodyAndInverts(t *testing.T) {
	b, err := rev.NewBranch(rev.Scalar("f"),
		[]rev.Op{rev.AddConst{Dst: rev.Scalar("x"), Delta: 5}},
		[]rev.Op{rev.AddConst{Dst: rev.Scalar("x"), Delta: 1}},
	)
	require.NoError(t, err)

	for flag, want := range map[uint64]uint64{0: 11, 1: 15} {
		ctx := quietContext()
		x, err := ctx.Init("x", 8, 10)
		require.NoError(t, err)
		_, err = ctx.Init("f", 1, flag)
		require.NoError(t, err)

		require.NoError(t, b.Apply(ctx))
		assert.Equal(t, want, x.Value())
		require.NoError(t, b.Inverse().Apply(ctx))
		assert.Equal(t, uint64(10), x.Value())
	}
}

func TestBranchRejectsFlagWrite(t *testing.T) {
	_, err := rev.NewBranch(rev.Scalar("f"), []rev.Op{rev.Not{Flag: rev.Scalar("f")}}, nil)
	require.ErrorIs(t, err, rev.ErrFlagWritten)

	assert.Panics(t, func() {
		rev.MustBranch(rev.Scalar("f"), nil, []rev.Op{rev.XorConst{Reg: "f", Values: []uint64{1}}})
	})
}

func TestBranchReadsAndWrites(t *testing.T) {
	b := rev.MustBranch(rev.Scalar("f"),
		[]rev.Op{rev.AddIndexed{Array: "c", Index: rev.Scalar("i"), Src: rev.Scalar("d")}},
		[]rev.Op{rev.AddIndexed{Array: "c", Index: rev.Scalar("i"), Src: rev.Scalar("d")}},
	)
	assert.Equal(t, []string{"c"}, b.Writes())
	assert.ElementsMatch(t, []string{"d", "i", "f"}, b.Reads())
}

func TestProgramWalkDescends(t *testing.T) {
	inner := rev.NewProgram("inner", rev.Not{Flag: rev.Scalar("g")})
	p := rev.NewProgram("outer",
		inner,
		rev.MustBranch(rev.Scalar("f"), []rev.Op{rev.Not{Flag: rev.Scalar("g")}}, nil),
	)

	depths := []int{}
	p.Walk(func(_ rev.Op, depth int) { depths = append(depths, depth) })
	assert.Equal(t, []int{0, 1, 0, 1}, depths)
}
