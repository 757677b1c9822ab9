package regression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestSolveWLS_RecoversExactCoefficients(t *testing.T) {
	// y = 2 + 3*x with no noise.
	xs := []float64{0, 1, 2, 3, 4, 5}
	n := len(xs)
	X := mat.NewDense(n, 2, nil)
	y := make([]float64, n)
	w := make([]float64, n)
	for i, x := range xs {
		X.Set(i, 0, 1)
		X.Set(i, 1, x)
		y[i] = 2 + 3*x
		w[i] = 1
	}

	fit, err := solveWLS(X, y, w)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, fit.beta[0], 1e-9)
	assert.InDelta(t, 3.0, fit.beta[1], 1e-9)
	assert.InDelta(t, 1.0, fit.rSquared(y, w), 1e-9)
}

func TestSolveWLS_WeightsEqualDuplication(t *testing.T) {
	// A weight-2 observation must produce the same point estimates as
	// listing the observation twice with weight 1.
	build := func(xs, ys, ws []float64) *wlsFit {
		n := len(xs)
		X := mat.NewDense(n, 2, nil)
		for i, x := range xs {
			X.Set(i, 0, 1)
			X.Set(i, 1, x)
		}
		fit, err := solveWLS(X, ys, ws)
		require.NoError(t, err)
		return fit
	}

	weighted := build(
		[]float64{0, 1, 2, 3},
		[]float64{1, 3, 4, 9},
		[]float64{2, 1, 1, 1})
	duplicated := build(
		[]float64{0, 0, 1, 2, 3},
		[]float64{1, 1, 3, 4, 9},
		[]float64{1, 1, 1, 1, 1})

	assert.InDelta(t, duplicated.beta[0], weighted.beta[0], 1e-9)
	assert.InDelta(t, duplicated.beta[1], weighted.beta[1], 1e-9)
}

func TestSolveWLS_RankDeficient(t *testing.T) {
	// Second column duplicates the intercept.
	X := mat.NewDense(4, 2, []float64{
		1, 1,
		1, 1,
		1, 1,
		1, 1,
	})
	_, err := solveWLS(X, []float64{1, 2, 3, 4}, []float64{1, 1, 1, 1})
	assert.Error(t, err)
}

func TestSolveWLS_DimensionMismatch(t *testing.T) {
	X := mat.NewDense(3, 2, nil)
	_, err := solveWLS(X, []float64{1, 2}, []float64{1, 1, 1})
	assert.Error(t, err)
}

func TestClusterRobustSE_Positive(t *testing.T) {
	n := 40
	X := mat.NewDense(n, 2, nil)
	y := make([]float64, n)
	w := make([]float64, n)
	clusters := make([]string, n)
	states := []string{"Borno", "Lagos", "Kano", "Oyo"}
	for i := 0; i < n; i++ {
		x := float64(i % 7)
		X.Set(i, 0, 1)
		X.Set(i, 1, x)
		y[i] = 1 + 0.5*x + float64(i%3) - 1 // deterministic pseudo-noise
		w[i] = 1
		clusters[i] = states[i%len(states)]
	}

	fit, err := solveWLS(X, y, w)
	require.NoError(t, err)

	se, g := fit.clusterRobustSE(X, w, clusters)
	assert.Equal(t, len(states), g)
	for _, s := range se {
		assert.Greater(t, s, 0.0)
	}
}

func TestPValue(t *testing.T) {
	assert.InDelta(t, 1.0, pValue(0, 10), 1e-9)
	// Student's t with 10 degrees of freedom has much fatter tails than the
	// normal: P(|T| > 2) is about 0.073, versus 0.046 under the normal.
	assert.InDelta(t, 0.0734, pValue(2, 10), 1e-3)
	assert.Less(t, pValue(3, 10), 0.02)
	// With large degrees of freedom the t distribution converges to normal.
	assert.InDelta(t, 0.0455, pValue(2, 100000), 1e-3)
}
