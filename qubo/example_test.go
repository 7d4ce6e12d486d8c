package qubo_test

import (
	"fmt"
	"os"

	"github.com/katalvlaran/qvrp/matrix"
	"github.com/katalvlaran/qvrp/qubo"
)

// ExampleEncodeTSP writes the open-path QUBO of two cities 3 apart.
func ExampleEncodeTSP() {
	dist, _ := matrix.NewDenseFromRows([][]float64{{0, 3}, {3, 0}})
	m, err := qubo.EncodeTSP(dist, qubo.EncodeOptions{})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	_ = qubo.WriteCOO(os.Stdout, m)
	// Output:
	// %%MatrixMarket matrix coordinate real general
	// % offset: 24
	// 1 1 -12
	// 1 2 12
	// 1 3 12
	// 1 4 3
	// 2 2 -12
	// 2 3 3
	// 2 4 12
	// 3 3 -12
	// 3 4 12
	// 4 4 -12
}
