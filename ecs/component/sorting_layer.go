package component

// Sorting layer names, back to front.
const (
	LayerBackground = "Background"
	LayerCharacter  = "Character"
	LayerForeground = "Foreground"
	LayerUI         = "UI"
)

var layerRanks = map[string]int{
	LayerBackground: 0,
	LayerCharacter:  1,
	LayerForeground: 2,
	LayerUI:         3,
}

// SortingLayer orders drawing: layers by rank, then by order within the layer.
type SortingLayer struct {
	Name  string
	Order int
}

// LayerRank returns the draw rank of a layer name. Unknown names
// draw with the character layer.
func LayerRank(name string) int {
	if r, ok := layerRanks[name]; ok {
		return r
	}
	return layerRanks[LayerCharacter]
}

// KnownLayer reports whether name is a defined sorting layer.
func KnownLayer(name string) bool {
	_, ok := layerRanks[name]
	return ok
}

var SortingLayerComponent = NewComponent[SortingLayer]()
