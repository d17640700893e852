// tilesmith is a CLI utility for packing glTF instanced assets into binary
// feature-table tiles.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/qmuntal/gltf"

	"github.com/kereth/tilesmith/internal/config"
	"github.com/kereth/tilesmith/internal/logger"
	"github.com/kereth/tilesmith/internal/pipeline"
	"github.com/kereth/tilesmith/pkg/accessor"
	"github.com/kereth/tilesmith/pkg/featuretable"
	"github.com/kereth/tilesmith/pkg/gpuinstancing"
	"github.com/kereth/tilesmith/pkg/tile"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "pack":
		cmdPack(args)
	case "inspect":
		cmdInspect(args)
	case "dump":
		cmdDump(args)
	case "config":
		cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`tilesmith - glTF instanced-asset tile packer

Usage:
  tilesmith <command> [options]

Commands:
  pack <asset.gltf|glb> [-o out]   Pack an instanced asset into a tile
  inspect <tile.i3dm>              Show a tile's header and property layout
  dump <asset.gltf|glb>            List an asset's accessors and instancing attributes
  config init [path]               Write a default config file

Examples:
  tilesmith pack trees.glb -o trees.i3dm
  tilesmith inspect trees.i3dm
  tilesmith dump trees.glb`)
}

func cmdPack(args []string) {
	fs := flag.NewFlagSet("pack", flag.ExitOnError)
	out := fs.String("o", "", "Output path (default: asset name with configured extension)")
	cfgPath := fs.String("config", "", "Path to config file")
	debug := fs.Bool("debug", false, "Enable debug logging")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: tilesmith pack <asset.gltf|glb> [-o out]")
		os.Exit(1)
	}
	assetPath := fs.Arg(0)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if *debug {
		cfg.Logging.Level = "debug"
	}

	opts := logger.DefaultOptions()
	opts.Level = cfg.Logging.Level
	opts.File = cfg.Logging.LogFile
	if err := logger.Init(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	doc, err := gltf.Open(assetPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening asset: %v\n", err)
		os.Exit(1)
	}

	data, err := pipeline.New(logger.Log).Build(doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	outputPath := *out
	if outputPath == "" {
		base := strings.TrimSuffix(filepath.Base(assetPath), filepath.Ext(assetPath))
		outputPath = filepath.Join(cfg.Output.Dir, base+cfg.Output.Extension)
	}
	if !cfg.Output.Overwrite {
		if _, err := os.Stat(outputPath); err == nil {
			fmt.Fprintf(os.Stderr, "Output exists: %s (set output.overwrite to replace)\n", outputPath)
			os.Exit(1)
		}
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing tile: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Packed: %s (%d bytes)\n", outputPath, len(data))
}

func cmdInspect(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: tilesmith inspect <tile.i3dm>")
		os.Exit(1)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	t, err := tile.Decode(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Tile:    %s\n", args[0])
	fmt.Printf("Version: %d\n", t.Header.Version)
	fmt.Printf("Size:    %d bytes (feature table %d+%d, glTF %d)\n",
		t.Header.ByteLength,
		t.Header.FeatureTableJSONByteLength,
		t.Header.FeatureTableBinaryByteLength,
		len(t.GLB))
	fmt.Println()

	header, err := featuretable.ParseHeader(t.FeatureTableJSON)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	names := make([]string, 0, len(header))
	for name := range header {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return header[names[i]].ByteOffset < header[names[j]].ByteOffset
	})

	fmt.Println("Properties:")
	for _, name := range names {
		layout := header[name]
		tag := layout.ComponentType
		if tag == "" {
			tag = "(implied)"
		}
		fmt.Printf("  %-20s offset %-6d %s\n", name, layout.ByteOffset, tag)
	}
}

func cmdDump(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: tilesmith dump <asset.gltf|glb>")
		os.Exit(1)
	}

	doc, err := gltf.Open(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Asset:     %s\n", args[0])
	fmt.Printf("Buffers:   %d\n", len(doc.Buffers))
	fmt.Printf("Accessors: %d\n", len(doc.Accessors))
	fmt.Println()

	for i, acc := range doc.Accessors {
		comp := "?"
		if c, err := accessor.FromGLTFComponent(acc.ComponentType); err == nil {
			comp = c.Tag()
		}
		elem := "?"
		if e, err := accessor.FromGLTFType(acc.Type); err == nil {
			elem = e.String()
		}
		fmt.Printf("  [%d] %-6s %-14s count %d\n", i, elem, comp, acc.Count)
	}

	for i, node := range doc.Nodes {
		ext, ok := gpuinstancing.FromNode(node)
		if !ok {
			continue
		}
		fmt.Printf("\nInstanced node %d:\n", i)

		semantics := make([]string, 0, len(ext.Attributes))
		for semantic := range ext.Attributes {
			semantics = append(semantics, semantic)
		}
		sort.Strings(semantics)
		for _, semantic := range semantics {
			fmt.Printf("  %-16s -> accessor %d\n", semantic, ext.Attributes[semantic])
		}
	}
}

func cmdConfig(args []string) {
	if len(args) < 1 || args[0] != "init" {
		fmt.Fprintln(os.Stderr, "Usage: tilesmith config init [path]")
		os.Exit(1)
	}

	path := filepath.Join(config.ConfigDir(), "config.yaml")
	if len(args) > 1 {
		path = args[1]
	}

	if err := config.Default().SaveTo(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing config: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote default config: %s\n", path)
}
