package linalg_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/jet-ml/jet/internal/fwd"
	"github.com/jet-ml/jet/internal/linalg"
	"github.com/jet-ml/jet/internal/ndarray"
)

// Solving a diagonal system with a seeded right-hand side: direction k
// perturbs rhs element k, so the solution's derivative is the inverse of the
// diagonal.
func ExampleSolve() {
	m := mat.NewDense(2, 2, []float64{
		2, 0,
		0, 4,
	})
	rhs := fwd.Identity(ndarray.Wrap([]float64{6, 8}, 2))

	x, _ := linalg.Solve(m, rhs)
	fmt.Println(x.Value().Float64s())
	fmt.Println(x.Gradient(0).Float64s())
	fmt.Println(x.Gradient(1).Float64s())
	// Output:
	// [3 2]
	// [0.5 0]
	// [0 0.25]
}
