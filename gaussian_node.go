package mofa2

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Node is the capability every initialized latent quantity exposes to the
// inference engine: recompute cached expectations from current parameters.
type Node interface {
	UpdateExpectations()
}

// GaussianNode holds the prior (P) and variational posterior (Q) parameters
// of a Gaussian factor or weight matrix. Each of the K factors carries its
// own prior covariance; a nil entry marks a covariate column that inference
// must never update.
type GaussianNode struct {
	PMean *mat.Dense
	// PCov has one covariance per factor, nil for covariate columns.
	PCov []mat.Symmetric
	// PCovInv is the precomputed inverse of PCov, nil when not requested or
	// for covariate columns.
	PCovInv []mat.Symmetric

	QMean *mat.Dense
	// QVar is NaN in covariate columns.
	QVar *mat.Dense

	QE  *mat.Dense
	QE2 *mat.Dense

	// CovariateCols marks posterior-mean columns pinned to external values.
	// Nil when the node has no covariates.
	CovariateCols []bool
}

// UpdateExpectations recomputes the cached first and second moments from the
// current posterior parameters. Directly supplied expectations are kept.
func (g *GaussianNode) UpdateExpectations() {
	if g.QE == nil {
		g.QE = mat.DenseCopyOf(g.QMean)
	}
	if g.QE2 != nil {
		return
	}
	r, c := g.QMean.Dims()
	e2 := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			e := g.QE.At(i, j)
			v := g.QVar.At(i, j)
			if math.IsNaN(v) {
				// Pinned covariate column, no posterior variance.
				v = 0
			}
			e2.Set(i, j, e*e+v)
		}
	}
	g.QE2 = e2
}

// SpikeSlabNode holds a spike-and-slab factor or weight matrix
// reparametrized as a Bernoulli spike times a Gaussian slab, with separate
// inactive (T0) and active (T1) slab components.
type SpikeSlabNode struct {
	PTheta  float64
	PMeanT0 float64
	PVarT0  float64
	PMeanT1 float64
	PVarT1  float64

	QTheta  *mat.Dense
	QMeanT0 *mat.Dense
	QVarT0  *mat.Dense
	QMeanT1 *mat.Dense
	QVarT1  *mat.Dense

	// Directly supplied posterior expectations of the spike indicator and
	// both slab components; nil when derived from the parameters.
	ET  *mat.Dense
	ET0 *mat.Dense
	ET1 *mat.Dense

	// E and E2 cache the moments of the spike-slab product.
	E  *mat.Dense
	E2 *mat.Dense
}

// UpdateExpectations recomputes the product expectations
// E = theta*mu1 and E2 = theta*(mu1^2+var1) from the current parameters.
func (s *SpikeSlabNode) UpdateExpectations() {
	if s.ET == nil {
		s.ET = mat.DenseCopyOf(s.QTheta)
	}
	if s.ET1 == nil {
		s.ET1 = mat.DenseCopyOf(s.QMeanT1)
	}
	if s.ET0 == nil {
		s.ET0 = mat.DenseCopyOf(s.QMeanT0)
	}
	r, c := s.QMeanT1.Dims()
	e := mat.NewDense(r, c, nil)
	e2 := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			t := s.ET.At(i, j)
			mu := s.ET1.At(i, j)
			v := s.QVarT1.At(i, j)
			e.Set(i, j, t*mu)
			e2.Set(i, j, t*(mu*mu+v))
		}
	}
	s.E = e
	s.E2 = e2
}
