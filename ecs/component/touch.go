package component

// Gesture is a classified touch input.
type Gesture int

const (
	GestureClick Gesture = iota
	GestureDoubleClick
	GestureMultipleClick
)

func (g Gesture) String() string {
	switch g {
	case GestureClick:
		return "click"
	case GestureDoubleClick:
		return "double_click"
	case GestureMultipleClick:
		return "multiple_click"
	default:
		return "unknown"
	}
}

// TouchInput collects raw click ticks on an entity until they are classified.
type TouchInput struct {
	Clicks   []uint64
	Gestures []Gesture
}

// Click records a raw click at tick.
func (t *TouchInput) Click(tick uint64) {
	if t == nil {
		return
	}
	t.Clicks = append(t.Clicks, tick)
}

var TouchInputComponent = NewComponent[TouchInput]()
