package resource

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Box is an axis-aligned rectangle in visual-local coordinates.
type Box struct {
	CenterX float64 `yaml:"center_x"`
	CenterY float64 `yaml:"center_y"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
}

// Clip is one animation laid out on the visual's sprite sheet.
type Clip struct {
	Row        int     `yaml:"row"`
	ColStart   int     `yaml:"col_start"`
	FrameCount int     `yaml:"frame_count"`
	FrameW     int     `yaml:"frame_w"`
	FrameH     int     `yaml:"frame_h"`
	FPS        float64 `yaml:"fps"`
	Loop       bool    `yaml:"loop"`
	// Events lists the named events published when playback reaches a frame.
	Events map[int][]string `yaml:"events"`
}

// Ticks returns the clip duration in 60 TPS ticks at time scale 1.
func (c Clip) Ticks() int {
	if c.FPS <= 0 || c.FrameCount <= 0 {
		return 0
	}
	return int(float64(c.FrameCount) * 60 / c.FPS)
}

// Visual is a loadable character visual.
type Visual struct {
	Path   string          `yaml:"-"`
	Name   string          `yaml:"name"`
	Sheet  string          `yaml:"sheet"`
	Scale  float64         `yaml:"scale"`
	Bounds Box             `yaml:"bounds"`
	Clips  map[string]Clip `yaml:"clips"`
}

// HasClip reports whether the visual defines clip name.
func (v *Visual) HasClip(name string) bool {
	if v == nil {
		return false
	}
	_, ok := v.Clips[name]
	return ok
}

// EventNames returns every event name used by the visual's clips.
func (v *Visual) EventNames() []string {
	if v == nil {
		return nil
	}
	seen := map[string]bool{}
	var out []string
	for _, clip := range v.Clips {
		for _, names := range clip.Events {
			for _, n := range names {
				if !seen[n] {
					seen[n] = true
					out = append(out, n)
				}
			}
		}
	}
	return out
}

// Background is a stage backdrop prefab.
type Background struct {
	Path  string  `yaml:"-"`
	Name  string  `yaml:"name"`
	Image string  `yaml:"image"`
	Scale float64 `yaml:"scale"`
}

// ReadFunc returns the bytes of a prefab file.
type ReadFunc func(name string) ([]byte, error)

// Loader resolves resource paths to specs and caches them.
type Loader struct {
	read ReadFunc

	mu      sync.Mutex
	visuals map[string]*Visual
}

// NewLoader creates a loader reading prefab files through read.
func NewLoader(read ReadFunc) *Loader {
	return &Loader{read: read, visuals: make(map[string]*Visual)}
}

// FileName maps a resource path to its prefab file name.
func FileName(resourcePath string) string {
	return strings.ToLower(path.Clean(resourcePath)) + ".yaml"
}

// Visual loads the visual at resourcePath. Failures are *LoadError.
func (l *Loader) Visual(resourcePath string) (*Visual, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if v, ok := l.visuals[resourcePath]; ok {
		return v, nil
	}

	var v Visual
	if err := l.decode(resourcePath, &v); err != nil {
		return nil, err
	}
	v.Path = resourcePath
	if v.Scale == 0 {
		v.Scale = 1
	}
	if len(v.Clips) == 0 {
		return nil, &LoadError{Path: resourcePath, Err: fmt.Errorf("resource: %s has no clips", resourcePath)}
	}
	l.visuals[resourcePath] = &v
	return &v, nil
}

// Background loads the background prefab at resourcePath.
func (l *Loader) Background(resourcePath string) (*Background, error) {
	var bg Background
	if err := l.decode(resourcePath, &bg); err != nil {
		return nil, err
	}
	bg.Path = resourcePath
	if bg.Scale == 0 {
		bg.Scale = 1
	}
	return &bg, nil
}

// Invalidate drops cached specs whose prefab file is name. An empty name clears the cache.
func (l *Loader) Invalidate(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	changed := strings.ToLower(filepath.ToSlash(name))
	for p := range l.visuals {
		if name == "" || strings.HasSuffix(changed, FileName(p)) {
			delete(l.visuals, p)
		}
	}
}

func (l *Loader) decode(resourcePath string, out any) error {
	if resourcePath == "" || l.read == nil {
		return &LoadError{Path: resourcePath}
	}
	data, err := l.read(FileName(resourcePath))
	if err != nil {
		return &LoadError{Path: resourcePath, Err: err}
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return &LoadError{Path: resourcePath, Err: fmt.Errorf("resource: unmarshal %s: %w", resourcePath, err)}
	}
	return nil
}
