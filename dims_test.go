package mofa2

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLikelihood(t *testing.T) {
	for s, want := range map[string]Likelihood{
		"gaussian":  GaussianLik,
		"poisson":   PoissonLik,
		"bernoulli": BernoulliLik,
		"binomial":  BinomialLik,
	} {
		got, err := ParseLikelihood(s)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, s, got.String())
	}

	_, err := ParseLikelihood("warp")
	assert.ErrorIs(t, err, ErrUnsupportedLikelihood)
}

func TestModelDimsValidate(t *testing.T) {
	good := ModelDims{N: 10, K: 3, M: 2, D: []int{5, 7}}
	require.NoError(t, good.Validate())

	bad := []ModelDims{
		{N: 0, K: 3, M: 2, D: []int{5, 7}},
		{N: 10, K: 3, M: 2, D: []int{5}},
		{N: 10, K: 3, M: 2, D: []int{5, 0}},
		{N: 10, K: -1, M: 2, D: []int{5, 7}},
	}
	for _, d := range bad {
		assert.ErrorIs(t, d.Validate(), ErrBadDims)
	}
}

func TestNodeRoleString(t *testing.T) {
	want := map[NodeRole]string{
		RoleZ: "Z", RoleSZ: "SZ", RoleW: "W", RoleSW: "SW",
		RoleAlphaZ: "AlphaZ", RoleAlphaW: "AlphaW",
		RoleSigmaZ: "SigmaZ", RoleSigmaAlphaW: "SigmaAlphaW",
		RoleTau: "Tau", RoleY: "Y", RoleThetaZ: "ThetaZ", RoleThetaW: "ThetaW",
	}
	for r, s := range want {
		assert.Equal(t, s, r.String())
	}
}
