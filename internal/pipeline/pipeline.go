// Package pipeline imports the Aseprite exports listed in a Config and keeps
// the resulting animation sets, optionally caching them between runs.
package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"log"
	"path"

	"github.com/phanxgames/aseanim"
)

// Report is the outcome of importing one asset.
type Report struct {
	Asset      string
	Animations []string
	Warnings   []error
	Cached     bool  // loaded from the SetStore instead of re-imported
	Err        error // fatal import error; the previous set (if any) is kept
}

// Pipeline imports the configured assets from fsys. Not safe for concurrent
// use.
type Pipeline struct {
	cfg   *Config
	fsys  fs.FS
	store SetStore // nil disables caching
	sets  map[string]*aseanim.AnimationSet
}

// New creates a pipeline reading asset sources from fsys. store may be nil.
func New(cfg *Config, fsys fs.FS, store SetStore) *Pipeline {
	return &Pipeline{
		cfg:   cfg,
		fsys:  fsys,
		store: store,
		sets:  make(map[string]*aseanim.AnimationSet, len(cfg.Assets)),
	}
}

// ImportAll imports every configured asset, in config order.
func (p *Pipeline) ImportAll() []Report {
	reports := make([]Report, 0, len(p.cfg.Assets))
	for _, a := range p.cfg.Assets {
		reports = append(reports, p.ImportAsset(a))
	}
	return reports
}

// ImportAsset imports a single asset and records its set on success.
func (p *Pipeline) ImportAsset(a Asset) Report {
	r := Report{Asset: a.Name}

	data, err := fs.ReadFile(p.fsys, a.Source)
	if err != nil {
		r.Err = fmt.Errorf("read %s: %w", a.Source, err)
		return r
	}
	hash := sourceHash(data)

	if p.store != nil {
		set, ok, err := p.store.Load(a.Name, hash)
		if err != nil {
			log.Printf("[pipeline] Warning: cache load failed for %s: %v (re-importing)", a.Name, err)
		} else if ok {
			p.sets[a.Name] = set
			r.Animations = set.Names()
			r.Cached = true
			return r
		}
	}

	res, err := aseanim.Import(data)
	if err != nil {
		r.Err = fmt.Errorf("import %s: %w", a.Source, err)
		return r
	}
	p.sets[a.Name] = res.Set
	r.Animations = res.Set.Names()
	r.Warnings = res.Warnings

	if p.store != nil {
		if err := p.store.Store(a.Name, hash, res.Set); err != nil {
			log.Printf("[pipeline] Warning: cache store failed for %s: %v", a.Name, err)
		}
	}
	return r
}

// Set returns the most recently imported set for the named asset.
func (p *Pipeline) Set(name string) (*aseanim.AnimationSet, bool) {
	s, ok := p.sets[name]
	return s, ok
}

// AssetForSource returns the configured asset whose source is the given
// slash-separated path relative to the config root.
func (p *Pipeline) AssetForSource(source string) (Asset, bool) {
	source = path.Clean(source)
	for _, a := range p.cfg.Assets {
		if path.Clean(a.Source) == source {
			return a, true
		}
	}
	return Asset{}, false
}

// SourceDirs returns the distinct directories containing asset sources,
// relative to the config root.
func (p *Pipeline) SourceDirs() []string {
	var dirs []string
	seen := make(map[string]bool)
	for _, a := range p.cfg.Assets {
		d := path.Dir(path.Clean(a.Source))
		if !seen[d] {
			seen[d] = true
			dirs = append(dirs, d)
		}
	}
	return dirs
}

func sourceHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
