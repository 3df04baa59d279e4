package mofa2

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

type meanKind int

const (
	meanUnset meanKind = iota
	meanRandom
	meanOrthogonal
	meanPCA
	meanConst
	meanMatrix
)

// MeanInit is the closed set of posterior-mean initialization strategies.
// The zero value is invalid; construct one with RandomMean, OrthogonalMean,
// PCAMean, ConstMean or MatrixMean.
type MeanInit struct {
	kind   meanKind
	scalar float64
	matrix *mat.Dense
}

// RandomMean draws every entry from a standard normal.
func RandomMean() MeanInit { return MeanInit{kind: meanRandom} }

// OrthogonalMean seeds the mean with a near-orthogonal PCA basis fit on a
// synthetic normal sample, independent of the data.
func OrthogonalMean() MeanInit { return MeanInit{kind: meanOrthogonal} }

// PCAMean seeds the mean with the top-K PCA loadings of the observed data.
func PCAMean() MeanInit { return MeanInit{kind: meanPCA} }

// ConstMean broadcasts a scalar to the whole matrix.
func ConstMean(v float64) MeanInit { return MeanInit{kind: meanConst, scalar: v} }

// MatrixMean uses a caller-supplied matrix, dimension-checked against the
// target shape.
func MatrixMean(m *mat.Dense) MeanInit { return MeanInit{kind: meanMatrix, matrix: m} }

func (m MeanInit) String() string {
	switch m.kind {
	case meanRandom:
		return "random"
	case meanOrthogonal:
		return "orthogonal"
	case meanPCA:
		return "pca"
	case meanConst:
		return fmt.Sprintf("const(%g)", m.scalar)
	case meanMatrix:
		return "matrix"
	}
	return "unset"
}

// build materializes the mean for a rows x k target. pcaFit lazily supplies
// the fit matrix for the PCA strategy; a nil pcaFit marks a family without
// PCA support (spike-and-slab T1 means).
func (m MeanInit) build(rows, k int, src rand.Source, pcaFit func() *mat.Dense, allowPCA bool) (*mat.Dense, error) {
	switch m.kind {
	case meanRandom:
		return RandNormMat(rows, k, src), nil
	case meanOrthogonal:
		if !allowPCA {
			return nil, fmt.Errorf("%w: %s mean for this node family", ErrUnsupportedInit, m)
		}
		return orthogonalMean(rows, k, src)
	case meanPCA:
		if !allowPCA || pcaFit == nil {
			return nil, fmt.Errorf("%w: %s mean for this node family", ErrUnsupportedInit, m)
		}
		return pcaLoadings(pcaFit(), k, src)
	case meanConst:
		return ConstMat(rows, k, m.scalar), nil
	case meanMatrix:
		if m.matrix == nil {
			return nil, fmt.Errorf("%w: nil mean matrix", ErrMissingArgument)
		}
		r, c := m.matrix.Dims()
		if r != rows || c != k {
			return nil, fmt.Errorf("%w: mean is %dx%d, want %dx%d", ErrShapeMismatch, r, c, rows, k)
		}
		return mat.DenseCopyOf(m.matrix), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedInit, m)
}

type covKind int

const (
	covScalar covKind = iota
	covList
)

// CovInit is the prior-covariance initialization of a Gaussian node: a
// scalar broadcast to per-factor identity-scaled covariances, or a pre-built
// list of K covariance matrices.
type CovInit struct {
	kind   covKind
	scalar float64
	list   []mat.Symmetric
}

// CovScalar broadcasts v to an identity-scaled covariance per factor.
func CovScalar(v float64) CovInit { return CovInit{kind: covScalar, scalar: v} }

// CovList supplies one covariance per factor.
func CovList(covs ...mat.Symmetric) CovInit { return CovInit{kind: covList, list: covs} }

// build materializes the per-factor covariances for a rows x k node.
func (c CovInit) build(rows, k int) ([]mat.Symmetric, error) {
	switch c.kind {
	case covScalar:
		ident := ScaledIdentity(rows, c.scalar)
		covs := make([]mat.Symmetric, k)
		for j := range covs {
			covs[j] = ident
		}
		return covs, nil
	case covList:
		if len(c.list) != k {
			return nil, fmt.Errorf("%w: %d prior covariances for %d factors", ErrShapeMismatch, len(c.list), k)
		}
		covs := make([]mat.Symmetric, k)
		for j, s := range c.list {
			if s.SymmetricDim() != rows {
				return nil, fmt.Errorf("%w: prior covariance %d is %dx%d, want %dx%d",
					ErrShapeMismatch, j, s.SymmetricDim(), s.SymmetricDim(), rows, rows)
			}
			covs[j] = s
		}
		return covs, nil
	}
	return nil, fmt.Errorf("%w: prior covariance", ErrUnsupportedInit)
}

type thetaKind int

const (
	thetaScalar thetaKind = iota
	thetaMatrix
	thetaList
)

// ThetaExpect is the supplied expectation of a Theta node: a scalar
// broadcast, a single matrix (broadcast to all views for the weight
// variant), or a per-view list. Nil pointers mean no expectation supplied.
type ThetaExpect struct {
	kind   thetaKind
	scalar float64
	mats   []*mat.Dense
}

// ThetaScalar broadcasts one probability to every slot.
func ThetaScalar(v float64) *ThetaExpect { return &ThetaExpect{kind: thetaScalar, scalar: v} }

// ThetaMatrix supplies one expectation matrix, broadcast across views.
func ThetaMatrix(m *mat.Dense) *ThetaExpect {
	return &ThetaExpect{kind: thetaMatrix, mats: []*mat.Dense{m}}
}

// ThetaList supplies one expectation matrix per view.
func ThetaList(ms ...*mat.Dense) *ThetaExpect { return &ThetaExpect{kind: thetaList, mats: ms} }

// expand materializes the expectation for one rows x k view. m indexes the
// per-view list form; nViews validates its length.
func (t *ThetaExpect) expand(rows, k, m, nViews int) (*mat.Dense, error) {
	switch t.kind {
	case thetaScalar:
		return ConstMat(rows, k, t.scalar), nil
	case thetaMatrix:
		r, c := t.mats[0].Dims()
		if r != rows || c != k {
			return nil, fmt.Errorf("%w: theta expectation is %dx%d, want %dx%d", ErrShapeMismatch, r, c, rows, k)
		}
		return t.mats[0], nil
	case thetaList:
		if len(t.mats) != nViews {
			return nil, fmt.Errorf("%w: %d theta expectations for %d views", ErrShapeMismatch, len(t.mats), nViews)
		}
		r, c := t.mats[m].Dims()
		if r != rows || c != k {
			return nil, fmt.Errorf("%w: theta expectation[%d] is %dx%d, want %dx%d", ErrShapeMismatch, m, r, c, rows, k)
		}
		return t.mats[m], nil
	}
	return nil, fmt.Errorf("%w: theta expectation", ErrUnsupportedInit)
}
