package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// StageSpec describes one battle stage.
type StageSpec struct {
	Name       string  `yaml:"name"`
	Background string  `yaml:"background"`
	Replay     string  `yaml:"replay"`
	PlayerX    float64 `yaml:"player_x"`
	EnemyX     float64 `yaml:"enemy_x"`
	GroundY    float64 `yaml:"ground_y"`
	// EnemySpacing separates enemies by spawn index.
	EnemySpacing float64      `yaml:"enemy_spacing"`
	NPCs         []NPCSpec    `yaml:"npcs"`
	Scripts      []ScriptSpec `yaml:"scripts"`
	HUD          HUDSpec      `yaml:"hud"`
}

// NPCSpec places an NPC on the stage.
type NPCSpec struct {
	ID    string  `yaml:"id"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Layer string  `yaml:"layer"`
	Order int     `yaml:"order"`
}

// ScriptSpec binds an animation event name to a tengo script.
type ScriptSpec struct {
	Event string `yaml:"event"`
	File  string `yaml:"file"`
}

type HUDSpec struct {
	HPBarColor   *YAMLColor `yaml:"hp_bar_color"`
	BossBarColor *YAMLColor `yaml:"boss_bar_color"`
	TextColor    *YAMLColor `yaml:"text_color"`
}

func LoadStageSpec(name string) (*StageSpec, error) {
	filename := "stages/" + strings.TrimSuffix(name, ".yaml") + ".yaml"
	spec, err := LoadSpec[StageSpec](filename)
	if err != nil {
		return nil, err
	}
	if spec.Name == "" {
		spec.Name = name
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

// Or returns the color, or fallback when c is unset.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
