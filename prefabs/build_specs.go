package prefabs

import "gopkg.in/yaml.v3"

// EntityBuildSpec lists the default components of an entity archetype.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	ScaleX float64 `yaml:"scale_x"`
	ScaleY float64 `yaml:"scale_y"`
}

type AnimatorComponentSpec struct {
	TimeScale float64 `yaml:"time_scale"`
	Initial   string  `yaml:"initial"`
}

type SortingLayerComponentSpec struct {
	Layer string `yaml:"layer"`
	Order int    `yaml:"order"`
}

type VisibilityComponentSpec struct {
	Alpha float64 `yaml:"alpha"`
}

type CameraComponentSpec struct {
	Zoom float64 `yaml:"zoom"`
}

type CharacterComponentSpec struct {
	Kind string `yaml:"kind"`
}

type NPCComponentSpec struct {
	ResourceID string `yaml:"resource_id"`
}
