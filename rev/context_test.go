package rev_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/log"
	"github.com/katalvlaran/qvrp/rev"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietContext() *rev.Context {
	return rev.NewContext(log.NewLogger(log.DiscardHandler()))
}

func TestContextAllocFree(t *testing.T) {
	ctx := quietContext()

	r, err := ctx.Alloc("a", 4, 3)
	require.NoError(t, err)
	assert.Equal(t, 12, r.Bits())
	assert.True(t, r.IsZero())

	_, err = ctx.Alloc("a", 4, 1)
	require.ErrorIs(t, err, rev.ErrRegisterExists)

	_, err = ctx.Alloc("b", 0, 1)
	require.ErrorIs(t, err, rev.ErrBadWidth)
	_, err = ctx.Alloc("b", 65, 1)
	require.ErrorIs(t, err, rev.ErrBadWidth)

	_, err = ctx.Alloc("flag", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "flag"}, ctx.Live())
	assert.Equal(t, 13, ctx.Stats().LiveBits)

	require.NoError(t, ctx.Free("flag", true))
	require.NoError(t, ctx.Free("a", true))
	assert.Empty(t, ctx.Live())
	assert.Equal(t, 0, ctx.Stats().LiveBits)
	assert.Equal(t, 13, ctx.Stats().PeakBits)

	require.ErrorIs(t, ctx.Free("a", true), rev.ErrUnknownRegister)
}

func TestContextVerifiedFreeRejectsDirtyAncilla(t *testing.T) {
	ctx := quietContext()
	_, err := ctx.Init("dirty", 3, 5)
	require.NoError(t, err)

	err = ctx.Free("dirty", true)
	require.ErrorIs(t, err, rev.ErrAncillaNotZero)
	assert.Equal(t, []string{"dirty"}, ctx.Live(), "failed free keeps the register")

	require.NoError(t, ctx.Free("dirty", false))
}

func TestContextInitMasksValues(t *testing.T) {
	ctx := quietContext()
	r, err := ctx.Init("x", 2, 1, 7, 4)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 3, 0}, r.Values())

	v, err := ctx.Read(rev.At("x", 1))
	require.NoError(t, err)
	assert.Equal(t, uint64(3), v)

	_, err = ctx.Read(rev.At("x", 3))
	require.ErrorIs(t, err, rev.ErrSlotOutOfRange)
}

func TestBitsFor(t *testing.T) {
	cases := map[int]uint{0: 1, 1: 1, 2: 1, 3: 2, 4: 2, 5: 3, 8: 3, 9: 4}
	for n, want := range cases {
		assert.Equal(t, want, rev.BitsFor(n), "BitsFor(%d)", n)
	}
}
