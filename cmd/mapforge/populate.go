package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"time"

	"github.com/tervalon/delveforge/internal/mapparser"
	"github.com/tervalon/delveforge/internal/populate"
)

// runPopulate places monsters and props on a parsed map file
func runPopulate(args []string) error {
	fs := flag.NewFlagSet("populate", flag.ExitOnError)
	out := fs.String("out", "", "output path (default: overwrite input)")
	seed := fs.Int64("seed", 0, "random seed (default: current time)")
	monsterDivisor := fs.Int("monster-divisor", 0, "tiles per monster (default 100)")
	propDivisor := fs.Int("prop-divisor", 0, "tiles per prop (default 50)")
	skipClusters := fs.Bool("skip-clusters", false, "disable monster cluster placement")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: mapforge populate [flags] <map.json>")
	}
	mapPath := fs.Arg(0)

	outPath := *out
	if outPath == "" {
		outPath = mapPath
	}

	m, err := mapparser.LoadMapFile(mapPath)
	if err != nil {
		return err
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(rngSeed))

	opts := populate.Options{
		MonsterDensityDivisor: *monsterDivisor,
		PropDensityDivisor:    *propDivisor,
		SkipClusters:          *skipClusters,
	}

	result, err := populate.Populate(context.Background(), m, opts, rng)
	if err != nil {
		return err
	}

	if err := mapparser.SaveMapFile(m, outPath); err != nil {
		return err
	}

	fmt.Printf("Placed %d monsters (%d clusters) and %d props\n",
		result.MonstersPlaced, result.ClustersPlaced, result.PropsPlaced)
	fmt.Printf("Wrote %s\n", outPath)
	return nil
}
