package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tervalon/delveforge/internal/mapparser"
)

// runParse converts a bitmap image into a map JSON file
func runParse(args []string) error {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	out := fs.String("out", "", "output map JSON path (default: image name with .json)")
	name := fs.String("name", "", "map name (default: image file name)")
	threshold := fs.Int("threshold", 0, "luminance threshold for floor pixels (default 128)")
	minRoomArea := fs.Int("min-room-area", 0, "minimum tile area for a room (default 9)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: mapforge parse [flags] <image>")
	}
	imagePath := fs.Arg(0)

	mapName := *name
	if mapName == "" {
		mapName = strings.TrimSuffix(filepath.Base(imagePath), filepath.Ext(imagePath))
	}

	outPath := *out
	if outPath == "" {
		outPath = strings.TrimSuffix(imagePath, filepath.Ext(imagePath)) + ".json"
	}

	f, err := os.Open(imagePath)
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	opts := mapparser.Options{
		LuminanceThreshold: *threshold,
		MinRoomArea:        *minRoomArea,
	}

	m, err := mapparser.ParseImage(context.Background(), f, mapName, opts)
	if err != nil {
		return err
	}

	if err := mapparser.SaveMapFile(m, outPath); err != nil {
		return err
	}

	fmt.Printf("Parsed %s: %dx%d tiles, %d rooms, %d corridors\n",
		mapName, m.Width, m.Depth, len(m.Rooms), len(m.Corridors))
	fmt.Printf("Wrote %s\n", outPath)
	return nil
}
