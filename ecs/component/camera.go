package component

type Camera struct {
	X, Y   float64
	Zoom   float64
	Active bool
}

var CameraComponent = NewComponent[Camera]()
