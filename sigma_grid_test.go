package mofa2

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func gridCoords() *mat.Dense {
	return mat.NewDense(4, 1, []float64{0, 1, 2, 10})
}

func TestSigmaGridNode(t *testing.T) {
	node, err := NewSigmaGridNode(3, gridCoords(), 2)
	require.NoError(t, err)
	require.Len(t, node.Covs, 3)

	cov := node.Covs[0]
	// Unit diagonal plus nDiag jitter units.
	assert.InDelta(t, 1+2*sigmaJitter, cov.At(0, 0), 1e-12)
	// Correlation decays with distance.
	assert.Greater(t, cov.At(0, 1), cov.At(0, 2))
	assert.Greater(t, cov.At(0, 2), cov.At(0, 3))
	// Symmetric.
	assert.Equal(t, cov.At(1, 2), cov.At(2, 1))
}

func TestSigmaGridNodeNilCoords(t *testing.T) {
	_, err := NewSigmaGridNode(2, nil, 0)
	assert.ErrorIs(t, err, ErrMissingArgument)
}

func TestBlockSigmaGridNode(t *testing.T) {
	node, err := NewBlockSigmaGridNode(2, gridCoords(), []int{0, 0, 1, 1}, 0)
	require.NoError(t, err)

	cov := node.Covs[0]
	// Within-block entries follow the kernel, across-block entries are zero.
	assert.Greater(t, cov.At(0, 1), 0.0)
	assert.Greater(t, cov.At(2, 3), 0.0)
	assert.Equal(t, 0.0, cov.At(0, 2))
	assert.Equal(t, 0.0, cov.At(1, 3))
}

func TestBlockSigmaGridNodeLabelMismatch(t *testing.T) {
	_, err := NewBlockSigmaGridNode(2, gridCoords(), []int{0, 1}, 0)
	assert.ErrorIs(t, err, ErrGroupMismatch)
}
