package mofa2

import "gonum.org/v1/gonum/mat"

// Multiview is an ordered collection of per-view nodes exposed to the
// inference engine as a single indexable node. Views may hold heterogeneous
// variants, e.g. a structured covariance for one view and an independent
// Gamma precision for another.
type Multiview struct {
	views []Node
}

// NewMultiview composes one node per view, in view order.
func NewMultiview(views ...Node) *Multiview {
	return &Multiview{views: views}
}

// Len returns the number of views.
func (m *Multiview) Len() int { return len(m.views) }

// View returns the node of view i.
func (m *Multiview) View(i int) Node { return m.views[i] }

// UpdateExpectations refreshes every view's expectations in order.
func (m *Multiview) UpdateExpectations() {
	for _, v := range m.views {
		v.UpdateExpectations()
	}
}

// MixedThetaNode combines a constant and a learned Theta sub-node over a
// factor-index partition: slots marked 0 in Idx are constant, slots marked 1
// are learned. Both sub-nodes are non-empty by construction; a degenerate
// partition registers the surviving sub-node directly instead.
type MixedThetaNode struct {
	Learn *BetaNode
	Const *ConstantNode
	// Idx is the binary factor partition, 0 constant / 1 learned.
	Idx *mat.Dense
}

// UpdateExpectations refreshes the learned partition; the constant one is
// fixed.
func (m *MixedThetaNode) UpdateExpectations() {
	m.Learn.UpdateExpectations()
}
