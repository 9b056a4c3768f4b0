// Command aseimport imports the Aseprite JSON exports listed in a YAML config,
// reports the animations and warnings found in each, and optionally keeps
// watching the exports for changes.
//
// Usage:
//
//	aseimport -config aseimport.yaml
//	aseimport -config aseimport.yaml -watch
//
// Example config:
//
//	root: assets
//	cache_app: mygame-anim
//	assets:
//	  - source: sprites/hero.json
//	  - name: slime
//	    source: sprites/slime.ase-json
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/phanxgames/aseanim"
	"github.com/phanxgames/aseanim/internal/pipeline"
	"github.com/phanxgames/aseanim/internal/watch"
)

func main() {
	configPath := flag.String("config", "aseimport.yaml", "path to the pipeline config")
	watchFlag := flag.Bool("watch", false, "keep running and re-import exports when they change")
	debug := flag.Bool("debug", false, "log import warnings as they occur")
	flag.Parse()

	cfg, err := pipeline.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *watchFlag {
		cfg.Watch = true
	}
	if *debug {
		cfg.Debug = true
	}
	aseanim.SetDebug(cfg.Debug)

	// Asset sources are relative to the config file's directory.
	root := cfg.Root
	if !filepath.IsAbs(root) {
		root = filepath.Join(filepath.Dir(*configPath), root)
	}

	var store pipeline.SetStore
	if cfg.CacheApp != "" {
		cache, err := pipeline.OpenCache(cfg.CacheApp)
		if err != nil {
			log.Printf("[aseimport] Warning: %v (continuing without cache)", err)
		} else {
			store = cache
		}
	}

	p := pipeline.New(cfg, os.DirFS(root), store)

	failed := false
	for _, r := range p.ImportAll() {
		printReport(os.Stdout, r)
		if r.Err != nil {
			failed = true
		}
	}

	if !cfg.Watch {
		if failed {
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := watchLoop(ctx, p, root); err != nil {
		log.Fatal(err)
	}
}

// watchLoop re-imports an asset every time its source changes, until ctx is
// done.
func watchLoop(ctx context.Context, p *pipeline.Pipeline, root string) error {
	dirs := p.SourceDirs()
	for i, d := range dirs {
		dirs[i] = filepath.Join(root, filepath.FromSlash(d))
	}
	w, err := watch.NewWatcher(dirs...)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()

	log.Printf("[aseimport] watching %d director(ies) under %s", len(dirs), root)
	for {
		select {
		case <-ctx.Done():
			return nil
		case name, ok := <-w.Events:
			if !ok {
				return nil
			}
			rel, err := filepath.Rel(root, name)
			if err != nil {
				continue
			}
			asset, ok := p.AssetForSource(filepath.ToSlash(rel))
			if !ok {
				continue
			}
			printReport(os.Stdout, p.ImportAsset(asset))
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("[aseimport] watch error: %v", err)
		}
	}
}

func printReport(w io.Writer, r pipeline.Report) {
	if r.Err != nil {
		fmt.Fprintf(w, "%s: FAILED: %v\n", r.Asset, r.Err)
		return
	}
	src := "imported"
	if r.Cached {
		src = "cached"
	}
	fmt.Fprintf(w, "%s: %s, %d animation(s)\n", r.Asset, src, len(r.Animations))
	for _, name := range r.Animations {
		fmt.Fprintf(w, "  %s\n", name)
	}
	for _, warn := range r.Warnings {
		fmt.Fprintf(w, "  warning: %v\n", warn)
	}
}
