package mofa2

import "errors"

// Sentinel errors returned by the initializer. Callers match them with
// errors.Is; wrapped messages carry the offending node and shapes.
var (
	// ErrBadDims is returned by NewModelInit when the dimensions record is
	// internally inconsistent (len(D) != M, non-positive counts, data or
	// likelihood list length not matching M).
	ErrBadDims = errors.New("mofa2: invalid model dimensions")

	// ErrShapeMismatch is returned when a literal matrix argument disagrees
	// with the dimensions fixed at construction.
	ErrShapeMismatch = errors.New("mofa2: matrix shape mismatch")

	// ErrUnsupportedInit is returned for a mean-initialization variant that
	// the target node family does not support.
	ErrUnsupportedInit = errors.New("mofa2: unsupported initialization")

	// ErrUnsupportedLikelihood is returned for an unknown likelihood tag, or
	// for a likelihood a node family has no construction path for.
	ErrUnsupportedLikelihood = errors.New("mofa2: unsupported likelihood")

	// ErrMissingArgument is returned when a required companion argument is
	// absent: covariates without scale flags, a constant Theta partition
	// without an expectation, a binomial view without totals.
	ErrMissingArgument = errors.New("mofa2: missing required argument")

	// ErrGroupMismatch is returned when sample-group labels do not match the
	// number of samples or the dense remapping is inconsistent.
	ErrGroupMismatch = errors.New("mofa2: sample group mismatch")

	// ErrUnknownRole is returned by InitExpectations for a role that has not
	// been registered.
	ErrUnknownRole = errors.New("mofa2: node role not registered")
)
