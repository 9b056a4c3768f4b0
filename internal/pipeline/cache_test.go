package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/phanxgames/aseanim"
)

func testSet(t *testing.T) *aseanim.AnimationSet {
	t.Helper()
	set := aseanim.NewAnimationSet()
	walk := &aseanim.Animation{
		Frames: []aseanim.Frame{
			{Region: aseanim.Rect{X: 0, Y: 0, Width: 16, Height: 16}, Duration: 0.1},
			{Region: aseanim.Rect{X: 16, Y: 0, Width: 14, Height: 15}, Offset: aseanim.Vec2{X: 1, Y: -1}, Duration: 0.25},
		},
		FrameSize: aseanim.Vec2{X: 16, Y: 16},
		Direction: aseanim.PingPongReverse,
	}
	idle := &aseanim.Animation{
		Frames:    []aseanim.Frame{{Region: aseanim.Rect{X: 30, Width: 16, Height: 16}}},
		FrameSize: aseanim.Vec2{X: 16, Y: 16},
	}
	// Not alphabetical, to check order survives.
	if err := set.Add("walk", walk); err != nil {
		t.Fatal(err)
	}
	if err := set.Add("idle", idle); err != nil {
		t.Fatal(err)
	}
	return set
}

func assertSetsEqual(t *testing.T, got, want *aseanim.AnimationSet) {
	t.Helper()
	if len(got.Names()) != len(want.Names()) {
		t.Fatalf("Names() = %v, want %v", got.Names(), want.Names())
	}
	for i, name := range want.Names() {
		if got.Names()[i] != name {
			t.Errorf("Names()[%d] = %q, want %q", i, got.Names()[i], name)
			continue
		}
		g, _ := got.Get(name)
		w, _ := want.Get(name)
		if g.Direction != w.Direction || g.FrameSize != w.FrameSize || len(g.Frames) != len(w.Frames) {
			t.Errorf("%s = %+v, want %+v", name, g, w)
			continue
		}
		for j := range w.Frames {
			if g.Frames[j] != w.Frames[j] {
				t.Errorf("%s frame %d = %+v, want %+v", name, j, g.Frames[j], w.Frames[j])
			}
		}
	}
}

func TestEncodeDecodeSet(t *testing.T) {
	set := testSet(t)
	data, err := EncodeSet(set, "abc123")
	if err != nil {
		t.Fatalf("EncodeSet: %v", err)
	}

	got, hash, err := DecodeSet(data)
	if err != nil {
		t.Fatalf("DecodeSet: %v\n%s", err, data)
	}
	if hash != "abc123" {
		t.Errorf("hash = %q, want abc123", hash)
	}
	assertSetsEqual(t, got, set)
}

func TestDecodeSet_Invalid(t *testing.T) {
	tests := map[string]string{
		"malformed":      "animations: [",
		"bad direction":  "animations:\n  - name: a\n    direction: sideways\n",
		"duplicate name": "animations:\n  - name: a\n    direction: forward\n  - name: a\n    direction: forward\n",
		"empty name":     "animations:\n  - direction: forward\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			if _, _, err := DecodeSet([]byte(doc)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

// openTestCache opens a gdata-backed cache under a unique app name and
// removes its data directory afterwards.
func openTestCache(t *testing.T) *Cache {
	t.Helper()
	appName := fmt.Sprintf("aseanim_cache_test_%d", time.Now().UnixNano())
	c, err := OpenCache(appName)
	if err != nil {
		t.Skipf("cannot open gdata cache: %v", err)
	}
	t.Cleanup(func() {
		if home, err := os.UserHomeDir(); err == nil {
			os.RemoveAll(filepath.Join(home, ".local", "share", appName))
		}
	})
	return c
}

func TestCache_StoreLoad(t *testing.T) {
	c := openTestCache(t)
	set := testSet(t)

	if _, ok, err := c.Load("hero", "h1"); ok || err != nil {
		t.Fatalf("Load before Store = %v, %v; want miss", ok, err)
	}
	if err := c.Store("hero", "h1", set); err != nil {
		t.Fatalf("Store: %v", err)
	}

	got, ok, err := c.Load("hero", "h1")
	if err != nil || !ok {
		t.Fatalf("Load = %v, %v; want hit", ok, err)
	}
	assertSetsEqual(t, got, set)

	if _, ok, err := c.Load("hero", "h2"); ok || err != nil {
		t.Errorf("Load with stale hash = %v, %v; want miss", ok, err)
	}
}
