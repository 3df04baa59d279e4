package mofa2

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ConstMat will return an r x c matrix with every entry set to v.
func ConstMat(r, c int, v float64) *mat.Dense {
	m := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m.Set(i, j, v)
		}
	}
	return m
}

// ScaledIdentity will return a dim x dim diagonal matrix with v on the
// diagonal, used as the default independent prior covariance of one factor.
func ScaledIdentity(dim int, v float64) *mat.DiagDense {
	data := make([]float64, dim)
	for i := range data {
		data[i] = v
	}
	return mat.NewDiagDense(dim, data)
}

// SymDenseConvert will convert a square *Dense to *SymDense. The input must
// already be symmetric; only the upper triangle is read.
func SymDenseConvert(m *mat.Dense) (*mat.SymDense, error) {
	r, c := m.Dims()
	if r != c {
		return nil, fmt.Errorf("%w: %dx%d matrix is not square", ErrShapeMismatch, r, c)
	}
	s := mat.NewSymDense(r, nil)
	for i := 0; i < r; i++ {
		for j := i; j < r; j++ {
			s.SetSym(i, j, m.At(i, j))
		}
	}
	return s, nil
}

// invertSym will return the inverse of a symmetric matrix as *SymDense.
func invertSym(s mat.Symmetric) (*mat.SymDense, error) {
	n := s.SymmetricDim()
	var inv mat.Dense
	if err := inv.Inverse(mat.NewDense(n, n, denseData(s))); err != nil {
		return nil, fmt.Errorf("mofa2: prior covariance not invertible: %w", err)
	}
	return SymDenseConvert(&inv)
}

func denseData(m mat.Matrix) []float64 {
	r, c := m.Dims()
	data := make([]float64, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			data[i*c+j] = m.At(i, j)
		}
	}
	return data
}

// ColMax will return the maximum of each column of m.
func ColMax(m *mat.Dense) []float64 {
	_, c := m.Dims()
	out := make([]float64, c)
	for j := 0; j < c; j++ {
		out[j] = floats.Max(mat.Col(nil, j, m))
	}
	return out
}

// UniqueIndex will remap arbitrary labels to dense zero-based group indices
// in first-appearance order, returning the index per label and the lookup
// back to the original labels.
func UniqueIndex(labels []string) (index []int, dic []string) {
	seen := make(map[string]int)
	index = make([]int, len(labels))
	for i, lab := range labels {
		g, ok := seen[lab]
		if !ok {
			g = len(dic)
			seen[lab] = g
			dic = append(dic, lab)
		}
		index[i] = g
	}
	return index, dic
}

// RandNormMat will fill an r x c matrix with independent standard normal
// draws from src.
func RandNormMat(r, c int, src rand.Source) *mat.Dense {
	norm := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	m := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m.Set(i, j, norm.Rand())
		}
	}
	return m
}
