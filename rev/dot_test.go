package rev_test

import (
	"bytes"
	"testing"

	"github.com/katalvlaran/qvrp/rev"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDOT(t *testing.T) {
	p := rev.NewProgram("demo",
		rev.Alloc{Name: "x", Width: 3},
		rev.AddConst{Dst: rev.Scalar("x"), Delta: 2},
		rev.MustBranch(rev.Scalar("f"), []rev.Op{rev.AddConst{Dst: rev.Scalar("x"), Delta: 1}}, nil),
	)

	var buf bytes.Buffer
	require.NoError(t, rev.WriteDOT(&buf, p))
	out := buf.String()
	assert.Contains(t, out, "digraph")
	assert.Contains(t, out, "op0")
	assert.Contains(t, out, "op3")
	assert.Contains(t, out, "reg:x")
	assert.Contains(t, out, "reg:f")
}
