package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/qvrp/matrix"
)

// ExampleNewEuclidean builds the distance matrix of a depot and three customers.
func ExampleNewEuclidean() {
	m, err := matrix.NewEuclidean([][]float64{{0, 0}, {1, 0.5}, {0.5, -1}, {-2, 0.5}})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	d, _ := m.At(1, 3)
	fmt.Printf("%dx%d, d(1,3)=%.1f\n", m.Rows(), m.Cols(), d)
	// Output: 4x4, d(1,3)=3.0
}
