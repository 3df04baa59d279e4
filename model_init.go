package mofa2

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// Default hyperparameters of the precision and sparsity nodes.
const (
	// DefaultPriorA and DefaultPriorB give the near-uninformative Gamma
	// prior of the ARD and noise precisions.
	DefaultPriorA = 1e-14
	DefaultPriorB = 1e-14
	// DefaultPostA and DefaultPostB seed the corresponding posteriors.
	DefaultPostA = 1.0
	DefaultPostB = 1.0
)

// ModelInit constructs the latent-variable graph of a multi-view factor
// analysis model: one Init* call per node family, each registering the
// constructed node under its role. The registry is handed to the inference
// engine through Nodes once every family has been initialized.
type ModelInit struct {
	dims   ModelDims
	data   []*mat.Dense
	lik    []Likelihood
	totals []*mat.Dense

	nodes map[NodeRole]Node

	src rand.Source
	log *zap.Logger
}

// Option configures a ModelInit.
type Option func(*ModelInit)

// WithSource sets the random source used by the random, orthogonal and PCA
// initializations. The default is time-seeded.
func WithSource(src rand.Source) Option {
	return func(mi *ModelInit) { mi.src = src }
}

// WithLogger attaches a structured logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(mi *ModelInit) { mi.log = log }
}

// WithBinomialTotals supplies the per-view trial totals required by InitTau
// for binomial views. Entries for non-binomial views may be nil.
func WithBinomialTotals(totals []*mat.Dense) Option {
	return func(mi *ModelInit) { mi.totals = totals }
}

// NewModelInit validates the dimensions record against the observed data and
// likelihood tags and returns an initializer with an empty node registry.
func NewModelInit(dims ModelDims, data []*mat.Dense, lik []Likelihood, opts ...Option) (*ModelInit, error) {
	if err := dims.Validate(); err != nil {
		return nil, err
	}
	if len(data) != dims.M {
		return nil, fmt.Errorf("%w: %d data views for M=%d", ErrBadDims, len(data), dims.M)
	}
	if len(lik) != dims.M {
		return nil, fmt.Errorf("%w: %d likelihoods for M=%d", ErrBadDims, len(lik), dims.M)
	}
	for m, d := range data {
		r, c := d.Dims()
		if r != dims.N || c != dims.D[m] {
			return nil, fmt.Errorf("%w: view %d is %dx%d, want %dx%d", ErrShapeMismatch, m, r, c, dims.N, dims.D[m])
		}
	}
	for m, l := range lik {
		if l < GaussianLik || l > BinomialLik {
			return nil, fmt.Errorf("%w: view %d: %s", ErrUnsupportedLikelihood, m, l)
		}
	}
	mi := &ModelInit{
		dims:  dims,
		data:  data,
		lik:   lik,
		nodes: make(map[NodeRole]Node),
		src:   rand.NewSource(uint64(time.Now().UnixNano())),
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(mi)
	}
	return mi, nil
}

// Nodes returns the full node registry for the inference engine.
func (mi *ModelInit) Nodes() map[NodeRole]Node { return mi.nodes }

// InitExpectations asks the named nodes to recompute their cached
// expectations from their current parameters. Every role must already be
// registered.
func (mi *ModelInit) InitExpectations(roles ...NodeRole) error {
	for _, r := range roles {
		if _, ok := mi.nodes[r]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownRole, r)
		}
	}
	for _, r := range roles {
		mi.nodes[r].UpdateExpectations()
	}
	return nil
}

// register stores a node under its role. A SigmaZ registration evicts
// AlphaZ and vice versa, and likewise for SigmaAlphaW/AlphaW: only one
// covariance-or-precision choice is active per role pair.
func (mi *ModelInit) register(role NodeRole, n Node) {
	switch role {
	case RoleAlphaZ:
		delete(mi.nodes, RoleSigmaZ)
	case RoleSigmaZ:
		delete(mi.nodes, RoleAlphaZ)
	case RoleAlphaW:
		delete(mi.nodes, RoleSigmaAlphaW)
	case RoleSigmaAlphaW:
		delete(mi.nodes, RoleAlphaW)
	}
	mi.nodes[role] = n
	mi.log.Debug("node initialized", zap.Stringer("role", role))
}

// InitZ initializes the latent factor matrix Z: prior mean and per-factor
// covariance broadcast from scalars, posterior mean per qmean, posterior
// variance broadcast from qvar. Covariates pin posterior-mean columns to
// external values; scaleCov must be supplied alongside them, flagging which
// columns are centered and unit-scaled first.
func (mi *ModelInit) InitZ(pmean float64, pcov CovInit, qmean MeanInit, qvar float64, qE, qE2 *mat.Dense,
	covariates *mat.Dense, scaleCov []bool, precomputePCovInv bool) error {

	n, k := mi.dims.N, mi.dims.K

	node, err := mi.buildGaussian(n, k, pmean, pcov, qmean, qvar, qE, qE2,
		covariates, scaleCov, precomputePCovInv, func() *mat.Dense { return stackViewsT(mi.data) })
	if err != nil {
		return fmt.Errorf("Z: %w", err)
	}
	mi.register(RoleZ, node)
	return nil
}

// InitW initializes the weight matrices, one Gaussian node per view composed
// into a multiview node. Covariates and expectation overrides are per view;
// precomputePCovInv defaults to true for every view when nil.
func (mi *ModelInit) InitW(pmean float64, pcov CovInit, qmean MeanInit, qvar float64, qE, qE2 []*mat.Dense,
	covariates []*mat.Dense, scaleCov []bool, precomputePCovInv []bool) error {

	k := mi.dims.K
	if precomputePCovInv == nil {
		precomputePCovInv = make([]bool, mi.dims.M)
		for m := range precomputePCovInv {
			precomputePCovInv[m] = true
		}
	}
	if err := mi.checkViewList("qE", len(qE), qE != nil); err != nil {
		return fmt.Errorf("W: %w", err)
	}
	if err := mi.checkViewList("qE2", len(qE2), qE2 != nil); err != nil {
		return fmt.Errorf("W: %w", err)
	}
	if err := mi.checkViewList("covariates", len(covariates), covariates != nil); err != nil {
		return fmt.Errorf("W: %w", err)
	}
	if err := mi.checkViewList("precomputePCovInv", len(precomputePCovInv), true); err != nil {
		return fmt.Errorf("W: %w", err)
	}

	views := make([]Node, mi.dims.M)
	for m := 0; m < mi.dims.M; m++ {
		var (
			qEm, qE2m, covm *mat.Dense
		)
		if qE != nil {
			qEm = qE[m]
		}
		if qE2 != nil {
			qE2m = qE2[m]
		}
		if covariates != nil {
			covm = covariates[m]
		}
		viewData := mi.data[m]
		node, err := mi.buildGaussian(mi.dims.D[m], k, pmean, pcov, qmean, qvar, qEm, qE2m,
			covm, scaleCov, precomputePCovInv[m], func() *mat.Dense { return viewData })
		if err != nil {
			return fmt.Errorf("W view %d: %w", m, err)
		}
		views[m] = node
	}
	mi.register(RoleW, NewMultiview(views...))
	return nil
}

func (mi *ModelInit) checkViewList(name string, got int, supplied bool) error {
	if supplied && got != mi.dims.M {
		return fmt.Errorf("%w: %d %s entries for %d views", ErrShapeMismatch, got, name, mi.dims.M)
	}
	return nil
}

// buildGaussian assembles one Gaussian node of rows x k. pcaFit is the fit
// input of the PCA strategy for this node. Covariate columns occupy the
// leading positions and are never touched by the random/orthogonal/PCA
// paths: the learned region is generated at its final width and the pinned
// region is written separately.
func (mi *ModelInit) buildGaussian(rows, k int, pmean float64, pcov CovInit, qmean MeanInit, qvar float64,
	qE, qE2 *mat.Dense, covariates *mat.Dense, scaleCov []bool, precomputePCovInv bool,
	pcaFit func() *mat.Dense) (*GaussianNode, error) {

	kc := 0
	var pinned *mat.Dense
	if covariates != nil {
		if scaleCov == nil {
			return nil, fmt.Errorf("%w: covariates supplied without scale flags", ErrMissingArgument)
		}
		cr, cc := covariates.Dims()
		if cr != rows || cc > k {
			return nil, fmt.Errorf("%w: covariates are %dx%d for a %dx%d node", ErrShapeMismatch, cr, cc, rows, k)
		}
		if len(scaleCov) != cc {
			return nil, fmt.Errorf("%w: %d scale flags for %d covariates", ErrShapeMismatch, len(scaleCov), cc)
		}
		kc = cc
		pinned = prepareCovariates(covariates, scaleCov)
	}

	if err := checkOptionalShape(qE, rows, k, "qE"); err != nil {
		return nil, err
	}
	if err := checkOptionalShape(qE2, rows, k, "qE2"); err != nil {
		return nil, err
	}

	qmeanMat := mat.NewDense(rows, k, nil)
	switch qmean.kind {
	case meanRandom, meanOrthogonal, meanPCA:
		// Generate the learned region only; pinned columns stay untouched.
		if k > kc {
			learned, err := qmean.build(rows, k-kc, mi.src, pcaFit, true)
			if err != nil {
				return nil, err
			}
			for j := kc; j < k; j++ {
				for i := 0; i < rows; i++ {
					qmeanMat.Set(i, j, learned.At(i, j-kc))
				}
			}
		}
	default:
		full, err := qmean.build(rows, k, mi.src, pcaFit, true)
		if err != nil {
			return nil, err
		}
		qmeanMat.Copy(full)
	}

	qvarMat := ConstMat(rows, k, qvar)
	pcovs, err := pcov.build(rows, k)
	if err != nil {
		return nil, err
	}

	var covMask []bool
	if kc > 0 {
		covMask = make([]bool, k)
		for j := 0; j < kc; j++ {
			covMask[j] = true
			pcovs[j] = nil
			for i := 0; i < rows; i++ {
				qmeanMat.Set(i, j, pinned.At(i, j))
				qvarMat.Set(i, j, math.NaN())
			}
		}
	}

	node := &GaussianNode{
		PMean:         ConstMat(rows, k, pmean),
		PCov:          pcovs,
		QMean:         qmeanMat,
		QVar:          qvarMat,
		CovariateCols: covMask,
	}
	if qE != nil {
		node.QE = mat.DenseCopyOf(qE)
	}
	if qE2 != nil {
		node.QE2 = mat.DenseCopyOf(qE2)
	}
	if precomputePCovInv {
		node.PCovInv = make([]mat.Symmetric, k)
		// Scalar priors share one covariance across factors; invert each
		// distinct matrix once.
		seen := make(map[mat.Symmetric]*mat.SymDense)
		for j := range pcovs {
			if pcovs[j] == nil {
				continue
			}
			inv, ok := seen[pcovs[j]]
			if !ok {
				var err error
				inv, err = invertSym(pcovs[j])
				if err != nil {
					return nil, err
				}
				seen[pcovs[j]] = inv
			}
			node.PCovInv[j] = inv
		}
	}
	return node, nil
}

// prepareCovariates centers and unit-scales the flagged columns and zeroes
// any remaining missing values.
func prepareCovariates(c *mat.Dense, scale []bool) *mat.Dense {
	out := mat.DenseCopyOf(c)
	rows, cols := out.Dims()
	for j := 0; j < cols; j++ {
		if scale[j] {
			mu, sd := nanMeanStd(mat.Col(nil, j, out))
			for i := 0; i < rows; i++ {
				out.Set(i, j, (out.At(i, j)-mu)/sd)
			}
		}
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if math.IsNaN(out.At(i, j)) {
				out.Set(i, j, 0)
			}
		}
	}
	return out
}

// nanMeanStd returns the mean and population standard deviation of the
// non-NaN entries.
func nanMeanStd(xs []float64) (mu, sd float64) {
	ct := 0
	for _, x := range xs {
		if !math.IsNaN(x) {
			mu += x
			ct++
		}
	}
	if ct == 0 {
		return 0, 1
	}
	mu /= float64(ct)
	for _, x := range xs {
		if !math.IsNaN(x) {
			d := x - mu
			sd += d * d
		}
	}
	sd = math.Sqrt(sd / float64(ct))
	if sd == 0 {
		sd = 1
	}
	return mu, sd
}

func checkOptionalShape(m *mat.Dense, rows, cols int, name string) error {
	if m == nil {
		return nil
	}
	r, c := m.Dims()
	if r != rows || c != cols {
		return fmt.Errorf("%w: %s is %dx%d, want %dx%d", ErrShapeMismatch, name, r, c, rows, cols)
	}
	return nil
}

// InitSZ initializes the spike-and-slab factors: a Bernoulli spike times a
// Gaussian slab with inactive (T0) and active (T1) components. Only random,
// constant and literal-matrix initializations are supported for the T1 mean.
func (mi *ModelInit) InitSZ(pmeanT0, pmeanT1, pvarT0, pvarT1, ptheta, qmeanT0 float64,
	qmeanT1 MeanInit, qvarT0, qvarT1, qtheta float64, qET, qEZT0, qEZT1 *mat.Dense) error {

	n, k := mi.dims.N, mi.dims.K
	node, err := buildSpikeSlab(n, k, pmeanT0, pmeanT1, pvarT0, pvarT1, ptheta,
		qmeanT0, qmeanT1, qvarT0, qvarT1, qtheta, qET, qEZT0, qEZT1, mi.src)
	if err != nil {
		return fmt.Errorf("SZ: %w", err)
	}
	mi.register(RoleSZ, node)
	return nil
}

// InitSW initializes the spike-and-slab weights, one node per view.
// Expectation overrides are per view.
func (mi *ModelInit) InitSW(pmeanT0, pmeanT1, pvarT0, pvarT1, ptheta, qmeanT0 float64,
	qmeanT1 MeanInit, qvarT0, qvarT1, qtheta float64, qET, qEWT0, qEWT1 []*mat.Dense) error {

	if err := mi.checkViewList("qET", len(qET), qET != nil); err != nil {
		return fmt.Errorf("SW: %w", err)
	}
	if err := mi.checkViewList("qEWT0", len(qEWT0), qEWT0 != nil); err != nil {
		return fmt.Errorf("SW: %w", err)
	}
	if err := mi.checkViewList("qEWT1", len(qEWT1), qEWT1 != nil); err != nil {
		return fmt.Errorf("SW: %w", err)
	}

	views := make([]Node, mi.dims.M)
	for m := 0; m < mi.dims.M; m++ {
		var et, e0, e1 *mat.Dense
		if qET != nil {
			et = qET[m]
		}
		if qEWT0 != nil {
			e0 = qEWT0[m]
		}
		if qEWT1 != nil {
			e1 = qEWT1[m]
		}
		node, err := buildSpikeSlab(mi.dims.D[m], mi.dims.K, pmeanT0, pmeanT1, pvarT0, pvarT1, ptheta,
			qmeanT0, qmeanT1, qvarT0, qvarT1, qtheta, et, e0, e1, mi.src)
		if err != nil {
			return fmt.Errorf("SW view %d: %w", m, err)
		}
		views[m] = node
	}
	mi.register(RoleSW, NewMultiview(views...))
	return nil
}

func buildSpikeSlab(rows, k int, pmeanT0, pmeanT1, pvarT0, pvarT1, ptheta, qmeanT0 float64,
	qmeanT1 MeanInit, qvarT0, qvarT1, qtheta float64, qET, qET0, qET1 *mat.Dense,
	src rand.Source) (*SpikeSlabNode, error) {

	meanT1, err := qmeanT1.build(rows, k, src, nil, false)
	if err != nil {
		return nil, err
	}
	for _, chk := range []struct {
		m    *mat.Dense
		name string
	}{{qET, "qET"}, {qET0, "qET0"}, {qET1, "qET1"}} {
		if err := checkOptionalShape(chk.m, rows, k, chk.name); err != nil {
			return nil, err
		}
	}
	node := &SpikeSlabNode{
		PTheta:  ptheta,
		PMeanT0: pmeanT0,
		PVarT0:  pvarT0,
		PMeanT1: pmeanT1,
		PVarT1:  pvarT1,
		QTheta:  ConstMat(rows, k, qtheta),
		QMeanT0: ConstMat(rows, k, qmeanT0),
		QVarT0:  ConstMat(rows, k, qvarT0),
		QMeanT1: meanT1,
		QVarT1:  ConstMat(rows, k, qvarT1),
	}
	if qET != nil {
		node.ET = mat.DenseCopyOf(qET)
	}
	if qET0 != nil {
		node.ET0 = mat.DenseCopyOf(qET0)
	}
	if qET1 != nil {
		node.ET1 = mat.DenseCopyOf(qET1)
	}
	return node, nil
}

// InitAlphaZ initializes the per-factor ARD precision on the factors.
func (mi *ModelInit) InitAlphaZ(pa, pb, qa, qb float64, qE, qlnE []float64) error {
	if qE != nil && len(qE) != mi.dims.K {
		return fmt.Errorf("AlphaZ: %w: qE has %d entries, want K=%d", ErrShapeMismatch, len(qE), mi.dims.K)
	}
	if qlnE != nil && len(qlnE) != mi.dims.K {
		return fmt.Errorf("AlphaZ: %w: qlnE has %d entries, want K=%d", ErrShapeMismatch, len(qlnE), mi.dims.K)
	}
	mi.register(RoleAlphaZ, NewGammaNode(mi.dims.K, pa, pb, qa, qb, qE, qlnE))
	return nil
}

// InitAlphaZGroups initializes the ARD precision per sample group: labels
// are remapped to dense zero-based indices in first-appearance order.
func (mi *ModelInit) InitAlphaZGroups(labels []string, pa, pb, qa, qb float64) error {
	if len(labels) != mi.dims.N {
		return fmt.Errorf("AlphaZ: %w: %d group labels for N=%d", ErrGroupMismatch, len(labels), mi.dims.N)
	}
	index, dic := UniqueIndex(labels)
	nGroups := len(dic)
	for _, g := range index {
		if g < 0 || g >= nGroups {
			return fmt.Errorf("AlphaZ: %w: remapped index %d outside %d groups", ErrGroupMismatch, g, nGroups)
		}
	}
	mi.register(RoleAlphaZ, NewGroupGammaNode(nGroups, mi.dims.K, pa, pb, qa, qb, index, dic))
	return nil
}

// InitSigmaZ replaces the independent ARD prior on Z by a structured
// covariance built from the coordinates in X.
func (mi *ModelInit) InitSigmaZ(X *mat.Dense, nDiag int) error {
	node, err := NewSigmaGridNode(mi.dims.K, X, nDiag)
	if err != nil {
		return fmt.Errorf("SigmaZ: %w", err)
	}
	mi.register(RoleSigmaZ, node)
	return nil
}

// InitSigmaZBlock is the cluster-partitioned variant of InitSigmaZ.
func (mi *ModelInit) InitSigmaZBlock(X *mat.Dense, clust []int, nDiag int) error {
	node, err := NewBlockSigmaGridNode(mi.dims.K, X, clust, nDiag)
	if err != nil {
		return fmt.Errorf("SigmaZ: %w", err)
	}
	mi.register(RoleSigmaZ, node)
	return nil
}

// InitAlphaW initializes one per-factor ARD precision node per view.
func (mi *ModelInit) InitAlphaW(pa, pb, qa, qb float64, qE, qlnE []float64) error {
	if qE != nil && len(qE) != mi.dims.K {
		return fmt.Errorf("AlphaW: %w: qE has %d entries, want K=%d", ErrShapeMismatch, len(qE), mi.dims.K)
	}
	if qlnE != nil && len(qlnE) != mi.dims.K {
		return fmt.Errorf("AlphaW: %w: qlnE has %d entries, want K=%d", ErrShapeMismatch, len(qlnE), mi.dims.K)
	}
	views := make([]Node, mi.dims.M)
	for m := range views {
		views[m] = NewGammaNode(mi.dims.K, pa, pb, qa, qb, qE, qlnE)
	}
	mi.register(RoleAlphaW, NewMultiview(views...))
	return nil
}

// SigmaAlphaParams carries the per-view parameter bundle of
// InitMixedSigmaAlphaW: the Gamma hyperparameters when the view keeps an
// independent ARD prior, or the coordinates, optional cluster assignment and
// diagonal count when it opts into a structured covariance.
type SigmaAlphaParams struct {
	PA, PB, QA, QB float64

	X          *mat.Dense
	SigmaClust []int
	NDiag      int
}

// InitMixedSigmaAlphaW chooses per view between a structured covariance node
// and an independent ARD node, composing the heterogeneous result under the
// SigmaAlphaW role.
func (mi *ModelInit) InitMixedSigmaAlphaW(hasCovPrior []bool, params []SigmaAlphaParams) error {
	if len(hasCovPrior) != mi.dims.M || len(params) != mi.dims.M {
		return fmt.Errorf("SigmaAlphaW: %w: %d flags and %d bundles for %d views",
			ErrShapeMismatch, len(hasCovPrior), len(params), mi.dims.M)
	}
	views := make([]Node, mi.dims.M)
	for m := 0; m < mi.dims.M; m++ {
		p := params[m]
		if !hasCovPrior[m] {
			views[m] = NewGammaNode(mi.dims.K, p.PA, p.PB, p.QA, p.QB, nil, nil)
			continue
		}
		var (
			node Node
			err  error
		)
		if p.SigmaClust == nil {
			node, err = NewSigmaGridNode(mi.dims.K, p.X, p.NDiag)
		} else {
			node, err = NewBlockSigmaGridNode(mi.dims.K, p.X, p.SigmaClust, p.NDiag)
		}
		if err != nil {
			return fmt.Errorf("SigmaAlphaW view %d: %w", m, err)
		}
		views[m] = node
	}
	mi.register(RoleSigmaAlphaW, NewMultiview(views...))
	return nil
}

// InitTau initializes the noise precision per view, dispatching on the
// view's likelihood. Gaussian views learn a Gamma precision per feature, or
// per sample when transposed, with an optional per-view expectation override
// qE; poisson and binomial views get a fixed precision derived from the
// data; bernoulli views get Jaakkola bound parameters.
func (mi *ModelInit) InitTau(pa, pb, qa, qb float64, qE [][]float64, transposed bool) error {
	if err := mi.checkViewList("qE", len(qE), qE != nil); err != nil {
		return fmt.Errorf("Tau: %w", err)
	}
	views := make([]Node, mi.dims.M)
	for m := 0; m < mi.dims.M; m++ {
		n, d := mi.dims.N, mi.dims.D[m]
		switch mi.lik[m] {
		case GaussianLik:
			size := d
			if transposed {
				size = n
			}
			var qEm []float64
			if qE != nil && qE[m] != nil {
				if len(qE[m]) != size {
					return fmt.Errorf("Tau view %d: %w: qE has %d entries, want %d", m, ErrShapeMismatch, len(qE[m]), size)
				}
				qEm = qE[m]
			}
			views[m] = NewGammaNode(size, pa, pb, qa, qb, qEm, nil)
		case PoissonLik:
			maxes := ColMax(mi.data[m])
			val := mat.NewDense(n, d, nil)
			for j := 0; j < d; j++ {
				tau := 0.25 + 0.17*maxes[j]
				for i := 0; i < n; i++ {
					val.Set(i, j, tau)
				}
			}
			views[m] = NewConstantNode(val)
		case BernoulliLik:
			views[m] = NewTauJaakkola(n, d)
		case BinomialLik:
			if mi.totals == nil || m >= len(mi.totals) || mi.totals[m] == nil {
				return fmt.Errorf("Tau view %d: %w: binomial totals", m, ErrMissingArgument)
			}
			if err := checkOptionalShape(mi.totals[m], n, d, "totals"); err != nil {
				return fmt.Errorf("Tau view %d: %w", m, err)
			}
			maxes := ColMax(mi.totals[m])
			val := mat.NewDense(n, d, nil)
			for j := 0; j < d; j++ {
				tau := 0.25 * maxes[j]
				for i := 0; i < n; i++ {
					val.Set(i, j, tau)
				}
			}
			views[m] = NewConstantNode(val)
		}
	}
	mi.register(RoleTau, NewMultiview(views...))
	return nil
}

// InitY initializes the observation nodes: gaussian views wrap the raw data,
// poisson and bernoulli views wrap it in pseudo-data nodes. There is no
// construction path for binomial observations.
func (mi *ModelInit) InitY(transposeNoise bool) error {
	views := make([]Node, mi.dims.M)
	for m := 0; m < mi.dims.M; m++ {
		switch mi.lik[m] {
		case GaussianLik:
			views[m] = &ObservationNode{Obs: mi.data[m], TransposeNoise: transposeNoise}
		case PoissonLik:
			views[m] = NewPoissonPseudoY(mi.data[m], transposeNoise)
		case BernoulliLik:
			views[m] = NewBernoulliJaakkolaY(mi.data[m], transposeNoise)
		case BinomialLik:
			return fmt.Errorf("Y view %d: %w: binomial observations", m, ErrUnsupportedLikelihood)
		}
	}
	mi.register(RoleY, NewMultiview(views...))
	return nil
}

// InitThetaZLearn initializes a fully learned Beta sparsity parameter over
// the K factors.
func (mi *ModelInit) InitThetaZLearn(pa, pb, qa, qb float64, qE []float64) error {
	if qE != nil && len(qE) != mi.dims.K {
		return fmt.Errorf("ThetaZ: %w: qE has %d entries, want K=%d", ErrShapeMismatch, len(qE), mi.dims.K)
	}
	mi.register(RoleThetaZ, NewBetaNode(mi.dims.K, pa, pb, qa, qb, qE))
	return nil
}

// InitThetaZConst initializes a fixed, never-updated sparsity probability.
func (mi *ModelInit) InitThetaZConst(value float64) error {
	mi.register(RoleThetaZ, NewConstantNode(ConstMat(mi.dims.N, mi.dims.K, value)))
	return nil
}

// InitThetaZMixed partitions the factors by a binary index matrix: 0-marked
// slots become a constant sub-node (the expectation is required for them),
// 1-marked slots a learned sub-node. An empty partition registers the other
// sub-node directly.
func (mi *ModelInit) InitThetaZMixed(idx *mat.Dense, pa, pb, qa, qb float64, qE *ThetaExpect) error {
	n, k := mi.dims.N, mi.dims.K
	if idx == nil {
		return fmt.Errorf("ThetaZ: %w: index matrix", ErrMissingArgument)
	}
	if err := checkOptionalShape(idx, n, k, "idx"); err != nil {
		return fmt.Errorf("ThetaZ: %w", err)
	}
	var qEm *mat.Dense
	if qE != nil {
		var err error
		qEm, err = qE.expand(n, k, 0, 1)
		if err != nil {
			return fmt.Errorf("ThetaZ: %w", err)
		}
	}
	node, err := buildMixedTheta(idx, qEm, pa, pb, qa, qb)
	if err != nil {
		return fmt.Errorf("ThetaZ: %w", err)
	}
	mi.register(RoleThetaZ, node)
	return nil
}

// InitThetaWLearn initializes one learned Beta sparsity node per view.
func (mi *ModelInit) InitThetaWLearn(pa, pb, qa, qb float64, qE []float64) error {
	if qE != nil && len(qE) != mi.dims.K {
		return fmt.Errorf("ThetaW: %w: qE has %d entries, want K=%d", ErrShapeMismatch, len(qE), mi.dims.K)
	}
	views := make([]Node, mi.dims.M)
	for m := range views {
		views[m] = NewBetaNode(mi.dims.K, pa, pb, qa, qb, qE)
	}
	mi.register(RoleThetaW, NewMultiview(views...))
	return nil
}

// InitThetaWConst initializes one fixed sparsity node per view.
func (mi *ModelInit) InitThetaWConst(value float64) error {
	views := make([]Node, mi.dims.M)
	for m := range views {
		views[m] = NewConstantNode(ConstMat(mi.dims.D[m], mi.dims.K, value))
	}
	mi.register(RoleThetaW, NewMultiview(views...))
	return nil
}

// InitThetaWMixed is the per-view mixed variant: one binary index matrix per
// view, with the expectation broadcast from a scalar or matrix or supplied
// as a per-view list of length M.
func (mi *ModelInit) InitThetaWMixed(idx []*mat.Dense, pa, pb, qa, qb float64, qE *ThetaExpect) error {
	if len(idx) != mi.dims.M {
		return fmt.Errorf("ThetaW: %w: %d index matrices for %d views", ErrShapeMismatch, len(idx), mi.dims.M)
	}
	views := make([]Node, mi.dims.M)
	for m := 0; m < mi.dims.M; m++ {
		d, k := mi.dims.D[m], mi.dims.K
		if idx[m] == nil {
			return fmt.Errorf("ThetaW view %d: %w: index matrix", m, ErrMissingArgument)
		}
		if err := checkOptionalShape(idx[m], d, k, "idx"); err != nil {
			return fmt.Errorf("ThetaW view %d: %w", m, err)
		}
		var qEm *mat.Dense
		if qE != nil {
			var err error
			qEm, err = qE.expand(d, k, m, mi.dims.M)
			if err != nil {
				return fmt.Errorf("ThetaW view %d: %w", m, err)
			}
		}
		node, err := buildMixedTheta(idx[m], qEm, pa, pb, qa, qb)
		if err != nil {
			return fmt.Errorf("ThetaW view %d: %w", m, err)
		}
		views[m] = node
	}
	mi.register(RoleThetaW, NewMultiview(views...))
	return nil
}

// buildMixedTheta partitions the factor columns of idx into constant
// (0-marked) and learned (1-marked) slots. Rows of idx are expansion copies;
// row 0 defines the partition. The learned sub-node is seeded from row 0 of
// the expectation when one is supplied.
func buildMixedTheta(idx, qE *mat.Dense, pa, pb, qa, qb float64) (Node, error) {
	rows, k := idx.Dims()
	var constCols, learnCols []int
	for j := 0; j < k; j++ {
		switch idx.At(0, j) {
		case 0:
			constCols = append(constCols, j)
		case 1:
			learnCols = append(learnCols, j)
		default:
			return nil, fmt.Errorf("%w: index entries must be 0 or 1, got %g", ErrUnsupportedInit, idx.At(0, j))
		}
	}

	var constNode *ConstantNode
	if len(constCols) > 0 {
		if qE == nil {
			return nil, fmt.Errorf("%w: constant partition requires an expectation", ErrMissingArgument)
		}
		val := mat.NewDense(rows, len(constCols), nil)
		for jj, j := range constCols {
			for i := 0; i < rows; i++ {
				val.Set(i, jj, qE.At(i, j))
			}
		}
		constNode = NewConstantNode(val)
	}

	var learnNode *BetaNode
	if len(learnCols) > 0 {
		var seed []float64
		if qE != nil {
			seed = make([]float64, len(learnCols))
			for jj, j := range learnCols {
				seed[jj] = qE.At(0, j)
			}
		}
		learnNode = NewBetaNode(len(learnCols), pa, pb, qa, qb, seed)
	}

	switch {
	case constNode == nil:
		return learnNode, nil
	case learnNode == nil:
		return constNode, nil
	default:
		return &MixedThetaNode{Learn: learnNode, Const: constNode, Idx: mat.DenseCopyOf(idx)}, nil
	}
}
