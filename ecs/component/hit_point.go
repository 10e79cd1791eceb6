package component

import "github.com/jakecoffman/cp"

// HitPoint is the hit geometry derived from the bound visual's bounds.
type HitPoint struct {
	Box cp.BB
	// Offset is the local lower-left corner of Box.
	Offset cp.Vector
	// Attack is the local position attacks originate from.
	Attack cp.Vector
}

// HitX returns the world x of the hit point for an entity at originX.
func (h *HitPoint) HitX(originX float64) float64 {
	if h == nil {
		return originX
	}
	return originX + h.Offset.X
}

var HitPointComponent = NewComponent[HitPoint]()
