package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "parse":
		err = runParse(os.Args[2:])
	case "populate":
		err = runPopulate(os.Args[2:])
	case "info":
		err = runInfo(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: mapforge <command> [flags]")
	fmt.Println("Commands:")
	fmt.Println("  parse     Parse a bitmap image into a map JSON file")
	fmt.Println("  populate  Place monsters and props on a parsed map")
	fmt.Println("  info      Print a summary of a map JSON file")
}
