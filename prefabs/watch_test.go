package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestTreeWatcherReportsNestedSpecs(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "character", "monster")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	w, err := NewTreeWatcher(root)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(sub, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	spec := filepath.Join(sub, "201000.yaml")
	if err := os.WriteFile(spec, []byte("name: slime\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		for _, name := range w.Drain() {
			if filepath.Ext(name) != ".yaml" {
				t.Fatalf("unexpected non-spec event %s", name)
			}
			if name == spec {
				return
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("no event for the changed spec")
}

func TestRel(t *testing.T) {
	SetDir("/data/prefabs")
	defer SetDir("")
	if got := Rel("/data/prefabs/character/npc/300001.yaml"); got != "character/npc/300001.yaml" {
		t.Fatalf("Rel=%q", got)
	}
}
