package mofa2

import "gonum.org/v1/gonum/mat"

// ObservationNode wraps the raw observed matrix of a gaussian view. The
// TransposeNoise flag selects per-sample instead of per-feature noise and
// must match the orientation used for the view's Tau node.
type ObservationNode struct {
	Obs            *mat.Dense
	TransposeNoise bool
}

// UpdateExpectations is a no-op: gaussian observations are the data itself.
func (o *ObservationNode) UpdateExpectations() {}

// PoissonPseudoY wraps a poisson view's counts in pseudo-data that the
// inference engine linearizes against the fixed precision from InitTau.
type PoissonPseudoY struct {
	Obs            *mat.Dense
	Pseudo         *mat.Dense
	TransposeNoise bool
}

// NewPoissonPseudoY seeds the pseudo-data with the raw counts.
func NewPoissonPseudoY(obs *mat.Dense, transposeNoise bool) *PoissonPseudoY {
	return &PoissonPseudoY{Obs: obs, Pseudo: mat.DenseCopyOf(obs), TransposeNoise: transposeNoise}
}

// UpdateExpectations resets the pseudo-data from the observations; the
// inference engine recomputes it against the current factor state afterwards.
func (p *PoissonPseudoY) UpdateExpectations() {
	p.Pseudo.Copy(p.Obs)
}

// BernoulliJaakkolaY wraps a bernoulli view under the Jaakkola bound:
// pseudo-data plus the variational xi parameters held by the paired
// TauJaakkola node.
type BernoulliJaakkolaY struct {
	Obs            *mat.Dense
	Pseudo         *mat.Dense
	TransposeNoise bool
}

// NewBernoulliJaakkolaY centers the 0/1 observations to the +-1/2 scale the
// bound linearizes around.
func NewBernoulliJaakkolaY(obs *mat.Dense, transposeNoise bool) *BernoulliJaakkolaY {
	r, c := obs.Dims()
	pseudo := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			pseudo.Set(i, j, obs.At(i, j)-0.5)
		}
	}
	return &BernoulliJaakkolaY{Obs: obs, Pseudo: pseudo, TransposeNoise: transposeNoise}
}

// UpdateExpectations re-centers the pseudo-data from the observations.
func (b *BernoulliJaakkolaY) UpdateExpectations() {
	r, c := b.Obs.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			b.Pseudo.Set(i, j, b.Obs.At(i, j)-0.5)
		}
	}
}

// TauJaakkola holds the xi variational parameters of the Jaakkola bound for
// a bernoulli view, initialized to one and updated by the inference engine.
type TauJaakkola struct {
	Value *mat.Dense
}

// NewTauJaakkola builds an n x d parameter matrix of ones.
func NewTauJaakkola(n, d int) *TauJaakkola {
	return &TauJaakkola{Value: ConstMat(n, d, 1)}
}

// UpdateExpectations is a no-op at initialization time.
func (t *TauJaakkola) UpdateExpectations() {}
