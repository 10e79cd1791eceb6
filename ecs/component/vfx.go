package component

// VFX is a short-lived particle effect. When Follow is set the effect
// tracks that entity's transform plus the offset.
type VFX struct {
	Name    string
	Follow  EntityRef
	OffsetX float64
	OffsetY float64
	X, Y    float64
	TTL     int
}

var VFXComponent = NewComponent[VFX]()
