package mofa2

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/mathext"
	"gonum.org/v1/gonum/stat/distuv"
)

// GammaNode holds the prior and posterior shape/rate parameters of a vector
// of Gamma-distributed precisions (ARD on factors or weights, or gaussian
// noise). The prior density is kept as a distuv record for downstream
// evidence terms.
type GammaNode struct {
	PA, PB []float64
	QA, QB []float64

	// E and ELn cache the expectation and log-expectation of the precision.
	E   []float64
	ELn []float64

	Prior distuv.Gamma
}

// NewGammaNode will initialize a Gamma precision node of length n with
// scalar hyperparameters broadcast to every entry. Directly supplied
// expectations override the derived ones.
func NewGammaNode(n int, pa, pb, qa, qb float64, qE, qlnE []float64) *GammaNode {
	g := &GammaNode{
		PA:    constVec(n, pa),
		PB:    constVec(n, pb),
		QA:    constVec(n, qa),
		QB:    constVec(n, qb),
		Prior: distuv.Gamma{Alpha: pa, Beta: pb},
	}
	if qE != nil {
		g.E = append([]float64(nil), qE...)
	}
	if qlnE != nil {
		g.ELn = append([]float64(nil), qlnE...)
	}
	return g
}

// UpdateExpectations recomputes E = a/b and ELn = digamma(a) - ln(b).
func (g *GammaNode) UpdateExpectations() {
	if g.E == nil {
		g.E = make([]float64, len(g.QA))
		for i := range g.QA {
			g.E[i] = g.QA[i] / g.QB[i]
		}
	}
	if g.ELn == nil {
		g.ELn = make([]float64, len(g.QA))
		for i := range g.QA {
			g.ELn[i] = mathext.Digamma(g.QA[i]) - math.Log(g.QB[i])
		}
	}
}

// GroupGammaNode is the per-sample-group ARD variant: one shape/rate pair
// per (group, factor) plus the dense group index and the lookup back to the
// original group labels.
type GroupGammaNode struct {
	PA, PB *mat.Dense
	QA, QB *mat.Dense

	GroupIndex  []int
	GroupLabels []string

	E   *mat.Dense
	ELn *mat.Dense
}

// NewGroupGammaNode will initialize a per-group ARD node over nGroups
// groups and k factors.
func NewGroupGammaNode(nGroups, k int, pa, pb, qa, qb float64, index []int, labels []string) *GroupGammaNode {
	return &GroupGammaNode{
		PA:          ConstMat(nGroups, k, pa),
		PB:          ConstMat(nGroups, k, pb),
		QA:          ConstMat(nGroups, k, qa),
		QB:          ConstMat(nGroups, k, qb),
		GroupIndex:  index,
		GroupLabels: labels,
	}
}

// UpdateExpectations recomputes the per-group precision moments.
func (g *GroupGammaNode) UpdateExpectations() {
	r, c := g.QA.Dims()
	if g.E == nil {
		e := mat.NewDense(r, c, nil)
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				e.Set(i, j, g.QA.At(i, j)/g.QB.At(i, j))
			}
		}
		g.E = e
	}
	if g.ELn == nil {
		ln := mat.NewDense(r, c, nil)
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				ln.Set(i, j, mathext.Digamma(g.QA.At(i, j))-math.Log(g.QB.At(i, j)))
			}
		}
		g.ELn = ln
	}
}

// BetaNode holds the prior and posterior a/b parameters of a learned Beta
// sparsity parameter.
type BetaNode struct {
	PA, PB []float64
	QA, QB []float64

	E      []float64
	ELn    []float64
	ELnInv []float64

	Prior distuv.Beta
}

// NewBetaNode will initialize a learned Theta node of length n. A supplied
// expectation seeds E directly.
func NewBetaNode(n int, pa, pb, qa, qb float64, qE []float64) *BetaNode {
	b := &BetaNode{
		PA:    constVec(n, pa),
		PB:    constVec(n, pb),
		QA:    constVec(n, qa),
		QB:    constVec(n, qb),
		Prior: distuv.Beta{Alpha: pa, Beta: pb},
	}
	if qE != nil {
		b.E = append([]float64(nil), qE...)
	}
	return b
}

// UpdateExpectations recomputes E = a/(a+b) and the log moments used by the
// spike-and-slab updates.
func (b *BetaNode) UpdateExpectations() {
	n := len(b.QA)
	if b.E == nil {
		b.E = make([]float64, n)
		for i := range b.QA {
			b.E[i] = b.QA[i] / (b.QA[i] + b.QB[i])
		}
	}
	b.ELn = make([]float64, n)
	b.ELnInv = make([]float64, n)
	for i := range b.QA {
		dab := mathext.Digamma(b.QA[i] + b.QB[i])
		b.ELn[i] = mathext.Digamma(b.QA[i]) - dab
		b.ELnInv[i] = mathext.Digamma(b.QB[i]) - dab
	}
}

// ConstantNode is a fixed-value node excluded from variational updates:
// constant Theta, poisson and binomial noise precisions.
type ConstantNode struct {
	Value *mat.Dense
}

// NewConstantNode wraps a fixed value matrix.
func NewConstantNode(value *mat.Dense) *ConstantNode {
	return &ConstantNode{Value: value}
}

// UpdateExpectations is a no-op: the value never changes.
func (c *ConstantNode) UpdateExpectations() {}

func constVec(n int, v float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = v
	}
	return s
}
