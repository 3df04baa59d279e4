package mofa2

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

func TestConstMat(t *testing.T) {
	m := ConstMat(3, 2, 4.5)
	r, c := m.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 2, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			assert.Equal(t, 4.5, m.At(i, j))
		}
	}
}

func TestScaledIdentity(t *testing.T) {
	d := ScaledIdentity(4, 2.5)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if i == j {
				assert.Equal(t, 2.5, d.At(i, j))
			} else {
				assert.Equal(t, 0.0, d.At(i, j))
			}
		}
	}
}

func TestSymDenseConvert(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{1, 2, 2, 5})
	s, err := SymDenseConvert(m)
	require.NoError(t, err)
	assert.Equal(t, 5.0, s.At(1, 1))
	assert.Equal(t, 2.0, s.At(1, 0))

	_, err = SymDenseConvert(mat.NewDense(2, 3, nil))
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestInvertSym(t *testing.T) {
	inv, err := invertSym(ScaledIdentity(3, 4))
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		assert.InDelta(t, 0.25, inv.At(i, i), 1e-12)
	}
}

func TestColMax(t *testing.T) {
	m := mat.NewDense(3, 2, []float64{
		1, 10,
		4, -3,
		2, 7,
	})
	assert.Equal(t, []float64{4, 10}, ColMax(m))
}

func TestUniqueIndexFirstAppearance(t *testing.T) {
	index, dic := UniqueIndex([]string{"a", "a", "b", "c", "b"})
	assert.Equal(t, []int{0, 0, 1, 2, 1}, index)
	assert.Equal(t, []string{"a", "b", "c"}, dic)
}

func TestRandNormMatDeterministic(t *testing.T) {
	a := RandNormMat(4, 3, rand.NewSource(7))
	b := RandNormMat(4, 3, rand.NewSource(7))
	assert.True(t, mat.Equal(a, b))

	c := RandNormMat(4, 3, rand.NewSource(8))
	assert.False(t, mat.Equal(a, c))
}
