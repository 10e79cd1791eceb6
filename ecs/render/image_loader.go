package render

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/battlestage/assets"
)

var (
	imagesMu sync.Mutex
	images   = map[string]*ebiten.Image{}
	failed   = map[string]error{}
)

// LoadImage loads an image from assets or the filesystem and caches it by key.
// Failures are cached too so a missing sheet is reported once.
func LoadImage(key string) (*ebiten.Image, error) {
	if key == "" {
		return nil, fmt.Errorf("empty image key")
	}
	imagesMu.Lock()
	defer imagesMu.Unlock()
	if img, ok := images[key]; ok {
		return img, nil
	}
	if err, ok := failed[key]; ok {
		return nil, err
	}
	img, err := loadImageFromAssetsOrFS(key)
	if err != nil {
		failed[key] = err
		return nil, err
	}
	images[key] = img
	return img, nil
}

// ForgetImages drops cached images so changed files load again.
func ForgetImages() {
	imagesMu.Lock()
	defer imagesMu.Unlock()
	images = map[string]*ebiten.Image{}
	failed = map[string]error{}
}

func loadImageFromAssetsOrFS(path string) (*ebiten.Image, error) {
	if img, err := assets.LoadImage(path); err == nil {
		return img, nil
	}
	tried := []string{path, filepath.Join("assets", path), filepath.Base(path)}
	for _, p := range tried {
		if b, err := os.ReadFile(p); err == nil {
			if im, _, err := image.Decode(bytes.NewReader(b)); err == nil {
				return ebiten.NewImageFromImage(im), nil
			}
		}
	}
	return nil, fmt.Errorf("failed to load image %s", path)
}
