/*
Package mofa2 builds the latent-variable graph of a multi-view Bayesian
factor-analysis model before variational inference starts.

A ModelInit holds the problem dimensions (samples N, views M, factors K,
per-view feature counts D), the observed data for each view and a likelihood
tag per view. Each Init* method constructs the paired prior and variational
posterior parameters for one node family (factors Z/SZ, weights W/SW, ARD
precisions AlphaZ/AlphaW, structured covariances SigmaZ/SigmaAlphaW, noise
precisions Tau, observations Y and sparsity parameters ThetaZ/ThetaW) and
registers the result under its NodeRole. The inference engine retrieves the
finished registry with Nodes and updates the nodes in place from there on.

All initialization is synchronous and deterministic given the random source;
a failed Init* call returns a typed error and leaves the registry untouched.
*/
package mofa2
