package main

import (
	"flag"
	"fmt"

	"github.com/tervalon/delveforge/internal/mapparser"
)

// runInfo prints a summary of a parsed map file
func runInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	verbose := fs.Bool("v", false, "list every room and corridor")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: mapforge info [flags] <map.json>")
	}

	m, err := mapparser.LoadMapFile(fs.Arg(0))
	if err != nil {
		return err
	}

	fmt.Printf("Map:        %s\n", m.Name)
	if m.ID != "" {
		fmt.Printf("ID:         %s\n", m.ID)
	}
	fmt.Printf("Dimensions: %dx%d tiles\n", m.Width, m.Depth)
	fmt.Printf("Floor:      %d tiles\n", m.FloorCount())
	fmt.Printf("Spawn:      (%d, %d)\n", m.SpawnPosition.X, m.SpawnPosition.Z)
	fmt.Printf("Rooms:      %d\n", len(m.Rooms))
	fmt.Printf("Corridors:  %d\n", len(m.Corridors))
	fmt.Printf("Enemies:    %d\n", len(m.Enemies))
	fmt.Printf("Props:      %d\n", len(m.PlacedProps))

	if !*verbose {
		return nil
	}

	for _, room := range m.Rooms {
		fmt.Printf("  room %d: %s, area %d, center (%d, %d)\n",
			room.ID, room.Kind, room.Area, room.Center.X, room.Center.Z)
	}
	for _, c := range m.Corridors {
		fmt.Printf("  corridor %d: room %d <-> room %d, %d tiles\n",
			c.ID, c.RoomA, c.RoomB, len(c.Tiles))
	}
	return nil
}
