package pipeline

import (
	"fmt"

	"github.com/phanxgames/aseanim"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// SetStore persists imported animation sets keyed by asset name. The hash
// identifies the source bytes a stored set was imported from; a Load with a
// different hash misses.
type SetStore interface {
	Load(asset, hash string) (set *aseanim.AnimationSet, ok bool, err error)
	Store(asset, hash string, set *aseanim.AnimationSet) error
}

// cacheObject is the gdata object imported sets are stored under, one
// property per asset.
const cacheObject = "animations"

// Cache is a SetStore backed by gdata's per-application data directory.
type Cache struct {
	m *gdata.Manager
}

// OpenCache opens (creating if needed) the cache for appName.
func OpenCache(appName string) (*Cache, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open cache %q: %w", appName, err)
	}
	return &Cache{m: m}, nil
}

// Load implements SetStore.
func (c *Cache) Load(asset, hash string) (*aseanim.AnimationSet, bool, error) {
	if !c.m.ObjectPropExists(cacheObject, asset) {
		return nil, false, nil
	}
	data, err := c.m.LoadObjectProp(cacheObject, asset)
	if err != nil {
		return nil, false, fmt.Errorf("load cached %s: %w", asset, err)
	}
	set, storedHash, err := DecodeSet(data)
	if err != nil {
		return nil, false, fmt.Errorf("decode cached %s: %w", asset, err)
	}
	if storedHash != hash {
		return nil, false, nil
	}
	return set, true, nil
}

// Store implements SetStore.
func (c *Cache) Store(asset, hash string, set *aseanim.AnimationSet) error {
	data, err := EncodeSet(set, hash)
	if err != nil {
		return fmt.Errorf("encode %s: %w", asset, err)
	}
	if err := c.m.SaveObjectProp(cacheObject, asset, data); err != nil {
		return fmt.Errorf("save cached %s: %w", asset, err)
	}
	return nil
}

// --- YAML encoding ---

type cachedSet struct {
	Hash       string            `yaml:"hash"`
	Animations []cachedAnimation `yaml:"animations"`
}

type cachedAnimation struct {
	Name      string        `yaml:"name"`
	Direction string        `yaml:"direction"`
	FrameSize [2]float64    `yaml:"frame_size,flow"`
	Frames    []cachedFrame `yaml:"frames"`
}

type cachedFrame struct {
	Region   [4]float64 `yaml:"region,flow"`
	Offset   [2]float64 `yaml:"offset,flow"`
	Duration float64    `yaml:"duration"`
}

// EncodeSet serializes set, tagged with the source hash, as YAML. Animations
// keep their insertion order.
func EncodeSet(set *aseanim.AnimationSet, hash string) ([]byte, error) {
	out := cachedSet{Hash: hash}
	for _, name := range set.Names() {
		anim, _ := set.Get(name)
		ca := cachedAnimation{
			Name:      name,
			Direction: anim.Direction.String(),
			FrameSize: [2]float64{anim.FrameSize.X, anim.FrameSize.Y},
			Frames:    make([]cachedFrame, len(anim.Frames)),
		}
		for i, f := range anim.Frames {
			ca.Frames[i] = cachedFrame{
				Region:   [4]float64{f.Region.X, f.Region.Y, f.Region.Width, f.Region.Height},
				Offset:   [2]float64{f.Offset.X, f.Offset.Y},
				Duration: f.Duration,
			}
		}
		out.Animations = append(out.Animations, ca)
	}
	return yaml.Marshal(&out)
}

// DecodeSet parses data written by EncodeSet, returning the set and the
// source hash it was tagged with.
func DecodeSet(data []byte) (*aseanim.AnimationSet, string, error) {
	var in cachedSet
	if err := yaml.Unmarshal(data, &in); err != nil {
		return nil, "", err
	}
	set := aseanim.NewAnimationSet()
	for _, ca := range in.Animations {
		dir, ok := aseanim.ParseDirection(ca.Direction)
		if !ok {
			return nil, "", fmt.Errorf("animation %q: unknown direction %q", ca.Name, ca.Direction)
		}
		anim := &aseanim.Animation{
			Frames:    make([]aseanim.Frame, len(ca.Frames)),
			FrameSize: aseanim.Vec2{X: ca.FrameSize[0], Y: ca.FrameSize[1]},
			Direction: dir,
		}
		for i, cf := range ca.Frames {
			anim.Frames[i] = aseanim.Frame{
				Region:   aseanim.Rect{X: cf.Region[0], Y: cf.Region[1], Width: cf.Region[2], Height: cf.Region[3]},
				Offset:   aseanim.Vec2{X: cf.Offset[0], Y: cf.Offset[1]},
				Duration: cf.Duration,
			}
		}
		if err := set.Add(ca.Name, anim); err != nil {
			return nil, "", fmt.Errorf("animation %q: %w", ca.Name, err)
		}
	}
	return set, in.Hash, nil
}
