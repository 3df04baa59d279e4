package mofa2

import "fmt"

// Likelihood tags the observation model of a single view.
type Likelihood int

const (
	// GaussianLik views keep their raw observations and a learned noise
	// precision.
	GaussianLik Likelihood = iota
	// PoissonLik views use pseudo-data with a fixed precision derived from
	// the column maxima.
	PoissonLik
	// BernoulliLik views use the Jaakkola bound.
	BernoulliLik
	// BinomialLik views use a fixed precision derived from the trial totals.
	BinomialLik
)

// ParseLikelihood maps a config string to its Likelihood tag.
func ParseLikelihood(s string) (Likelihood, error) {
	switch s {
	case "gaussian":
		return GaussianLik, nil
	case "poisson":
		return PoissonLik, nil
	case "bernoulli":
		return BernoulliLik, nil
	case "binomial":
		return BinomialLik, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedLikelihood, s)
}

func (l Likelihood) String() string {
	switch l {
	case GaussianLik:
		return "gaussian"
	case PoissonLik:
		return "poisson"
	case BernoulliLik:
		return "bernoulli"
	case BinomialLik:
		return "binomial"
	}
	return fmt.Sprintf("likelihood(%d)", int(l))
}

// ModelDims fixes the problem dimensions for the whole initialization run:
// N samples, M views, K latent factors and D[m] features per view.
type ModelDims struct {
	N int
	K int
	M int
	D []int
}

// Validate checks internal consistency of the dimensions record.
func (d ModelDims) Validate() error {
	if d.N <= 0 || d.K <= 0 || d.M <= 0 {
		return fmt.Errorf("%w: N=%d K=%d M=%d", ErrBadDims, d.N, d.K, d.M)
	}
	if len(d.D) != d.M {
		return fmt.Errorf("%w: len(D)=%d, M=%d", ErrBadDims, len(d.D), d.M)
	}
	for m, dm := range d.D {
		if dm <= 0 {
			return fmt.Errorf("%w: D[%d]=%d", ErrBadDims, m, dm)
		}
	}
	return nil
}

// NodeRole is the closed set of registry keys for initialized nodes.
type NodeRole int

const (
	RoleZ NodeRole = iota
	RoleSZ
	RoleW
	RoleSW
	RoleAlphaZ
	RoleAlphaW
	RoleSigmaZ
	RoleSigmaAlphaW
	RoleTau
	RoleY
	RoleThetaZ
	RoleThetaW
)

func (r NodeRole) String() string {
	switch r {
	case RoleZ:
		return "Z"
	case RoleSZ:
		return "SZ"
	case RoleW:
		return "W"
	case RoleSW:
		return "SW"
	case RoleAlphaZ:
		return "AlphaZ"
	case RoleAlphaW:
		return "AlphaW"
	case RoleSigmaZ:
		return "SigmaZ"
	case RoleSigmaAlphaW:
		return "SigmaAlphaW"
	case RoleTau:
		return "Tau"
	case RoleY:
		return "Y"
	case RoleThetaZ:
		return "ThetaZ"
	case RoleThetaW:
		return "ThetaW"
	}
	return fmt.Sprintf("role(%d)", int(r))
}
