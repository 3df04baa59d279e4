package mofa2

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// sigmaJitter is the diagonal regularization unit added nDiag times to each
// structured covariance.
const sigmaJitter = 1e-4

// SigmaGridNode substitutes a structured covariance prior for the default
// independent ARD prior of one role. One covariance per factor is built from
// the coordinate/grid input X (samples or features x coordinate dims) with a
// squared-exponential profile over pairwise distances.
type SigmaGridNode struct {
	X     *mat.Dense
	NDiag int
	// Covs holds one covariance per factor.
	Covs []*mat.SymDense
}

// NewSigmaGridNode will build the per-factor covariance structure from the
// coordinates in X.
func NewSigmaGridNode(k int, X *mat.Dense, nDiag int) (*SigmaGridNode, error) {
	if X == nil {
		return nil, fmt.Errorf("%w: covariance structure requires coordinates", ErrMissingArgument)
	}
	base := gridCovariance(X, nDiag)
	covs := make([]*mat.SymDense, k)
	for i := range covs {
		covs[i] = base
	}
	return &SigmaGridNode{X: X, NDiag: nDiag, Covs: covs}, nil
}

// UpdateExpectations is a no-op: the structure is fixed at initialization
// and the inference engine reads the covariances directly.
func (s *SigmaGridNode) UpdateExpectations() {}

// BlockSigmaGridNode partitions the rows of X into blocks by a cluster
// assignment; covariance across blocks is zero.
type BlockSigmaGridNode struct {
	X     *mat.Dense
	Clust []int
	NDiag int
	Covs  []*mat.SymDense
}

// NewBlockSigmaGridNode will build a block-diagonal covariance structure,
// one block per cluster label.
func NewBlockSigmaGridNode(k int, X *mat.Dense, clust []int, nDiag int) (*BlockSigmaGridNode, error) {
	if X == nil {
		return nil, fmt.Errorf("%w: covariance structure requires coordinates", ErrMissingArgument)
	}
	n, _ := X.Dims()
	if len(clust) != n {
		return nil, fmt.Errorf("%w: %d cluster labels for %d rows", ErrGroupMismatch, len(clust), n)
	}
	full := gridCovariance(X, nDiag)
	base := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			if clust[i] == clust[j] {
				base.SetSym(i, j, full.At(i, j))
			}
		}
	}
	covs := make([]*mat.SymDense, k)
	for i := range covs {
		covs[i] = base
	}
	return &BlockSigmaGridNode{X: X, Clust: clust, NDiag: nDiag, Covs: covs}, nil
}

// UpdateExpectations is a no-op, as for SigmaGridNode.
func (s *BlockSigmaGridNode) UpdateExpectations() {}

// gridCovariance builds a squared-exponential covariance over the rows of X
// with nDiag units of diagonal regularization.
func gridCovariance(X *mat.Dense, nDiag int) *mat.SymDense {
	n, d := X.Dims()
	cov := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sq := 0.
			for c := 0; c < d; c++ {
				diff := X.At(i, c) - X.At(j, c)
				sq += diff * diff
			}
			cov.SetSym(i, j, math.Exp(-0.5*sq))
		}
	}
	for i := 0; i < n; i++ {
		cov.SetSym(i, i, cov.At(i, i)+float64(nDiag)*sigmaJitter)
	}
	return cov
}
