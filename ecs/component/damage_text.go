package component

// DamageText is a floating number spawned when damage is applied.
type DamageText struct {
	Value    int
	Critical bool
	X, Y     float64
	VX, VY   float64
	TTL      int
}

var DamageTextComponent = NewComponent[DamageText]()
