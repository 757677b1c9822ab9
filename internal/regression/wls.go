// Package regression fits the thesis specification battery by weighted
// least squares. Estimation is dense linear algebra over the analysis
// dataset; nothing here knows about files.
package regression

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	apperrors "github.com/jarretangbazo/economics-senior-thesis/internal/errors"
)

// wlsFit holds the pieces of a solved weighted least-squares system that
// the covariance estimators need.
type wlsFit struct {
	beta      []float64
	residuals []float64
	xtwxInv   *mat.Dense
	n         int
	k         int
}

// solveWLS solves min_b Σ w_i (y_i - x_i b)² through the normal equations.
// X is n×k with the intercept already in the first column.
func solveWLS(X *mat.Dense, y, w []float64) (*wlsFit, error) {
	n, k := X.Dims()
	if n == 0 || len(y) != n || len(w) != n {
		return nil, apperrors.NewValidationError("design matrix and outcome dimensions disagree", nil)
	}
	if n <= k {
		return nil, apperrors.NewValidationError("more regressors than observations", nil)
	}

	// WX scales each row of X by its weight once, so XᵀWX and XᵀWy fall
	// out of ordinary products.
	wx := mat.NewDense(n, k, nil)
	wy := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < k; j++ {
			wx.Set(i, j, X.At(i, j)*w[i])
		}
		wy.SetVec(i, y[i]*w[i])
	}

	var xtwx mat.Dense
	xtwx.Mul(X.T(), wx)

	var xtwy mat.VecDense
	xtwy.MulVec(X.T(), wy)

	var xtwxInv mat.Dense
	if err := xtwxInv.Inverse(&xtwx); err != nil {
		return nil, apperrors.NewValidationError("design matrix is rank deficient", err)
	}

	var betaVec mat.VecDense
	betaVec.MulVec(&xtwxInv, &xtwy)

	beta := make([]float64, k)
	residuals := make([]float64, n)
	for j := 0; j < k; j++ {
		beta[j] = betaVec.AtVec(j)
	}
	for i := 0; i < n; i++ {
		fitted := 0.0
		for j := 0; j < k; j++ {
			fitted += X.At(i, j) * beta[j]
		}
		residuals[i] = y[i] - fitted
	}

	return &wlsFit{
		beta:      beta,
		residuals: residuals,
		xtwxInv:   &xtwxInv,
		n:         n,
		k:         k,
	}, nil
}

// classicalSE returns homoskedastic standard errors.
func (f *wlsFit) classicalSE(w []float64) []float64 {
	rss := 0.0
	for i, u := range f.residuals {
		rss += w[i] * u * u
	}
	sigma2 := rss / float64(f.n-f.k)

	se := make([]float64, f.k)
	for j := 0; j < f.k; j++ {
		se[j] = math.Sqrt(sigma2 * f.xtwxInv.At(j, j))
	}
	return se
}

// clusterRobustSE returns cluster-robust standard errors with the standard
// small-sample correction G/(G-1) * (n-1)/(n-k). Clusters holds the group
// assignment of each observation.
func (f *wlsFit) clusterRobustSE(X *mat.Dense, w []float64, clusters []string) ([]float64, int) {
	// Score per cluster: s_g = Σ_{i in g} w_i u_i x_i.
	scores := make(map[string][]float64)
	for i := 0; i < f.n; i++ {
		s, ok := scores[clusters[i]]
		if !ok {
			s = make([]float64, f.k)
			scores[clusters[i]] = s
		}
		scale := w[i] * f.residuals[i]
		for j := 0; j < f.k; j++ {
			s[j] += scale * X.At(i, j)
		}
	}

	meat := mat.NewDense(f.k, f.k, nil)
	for _, s := range scores {
		for a := 0; a < f.k; a++ {
			for b := 0; b < f.k; b++ {
				meat.Set(a, b, meat.At(a, b)+s[a]*s[b])
			}
		}
	}

	var tmp, cov mat.Dense
	tmp.Mul(f.xtwxInv, meat)
	cov.Mul(&tmp, f.xtwxInv)

	g := len(scores)
	dfc := 1.0
	if g > 1 {
		dfc = float64(g) / float64(g-1) * float64(f.n-1) / float64(f.n-f.k)
	}

	se := make([]float64, f.k)
	for j := 0; j < f.k; j++ {
		se[j] = math.Sqrt(dfc * cov.At(j, j))
	}
	return se, g
}

// rSquared returns the weighted coefficient of determination.
func (f *wlsFit) rSquared(y, w []float64) float64 {
	sumW, mean := 0.0, 0.0
	for i, v := range y {
		sumW += w[i]
		mean += w[i] * v
	}
	if sumW == 0 {
		return 0
	}
	mean /= sumW

	tss, rss := 0.0, 0.0
	for i, v := range y {
		tss += w[i] * (v - mean) * (v - mean)
		rss += w[i] * f.residuals[i] * f.residuals[i]
	}
	if tss == 0 {
		return 0
	}
	return 1 - rss/tss
}

// pValue is the two-sided p-value of a t statistic under Student's t with
// dof degrees of freedom.
func pValue(t float64, dof int) float64 {
	if dof <= 0 {
		return math.Erfc(math.Abs(t) / math.Sqrt2)
	}
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(dof)}
	return 2 * dist.CDF(-math.Abs(t))
}
