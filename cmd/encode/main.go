package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/neurlang/golpc/vocoder"
)

func main() {
	order := flag.Int("order", vocoder.DefaultOrder, "order of the LPC filter")
	window := flag.Int("window", 0, "frame size in samples, 0 selects a 30ms window at the input rate")
	overlap := flag.Int("overlap", vocoder.DefaultOverlap, "overlap between consecutive frames in samples")
	parallel := flag.Bool("parallel", false, "analyze frames on all CPUs")
	debug := flag.Bool("d", false, "enable debug messages")
	flag.Parse()

	if flag.NArg() < 2 {
		fmt.Println("Usage: encode [flags] <audio_file> <encoded_file>")
		os.Exit(1)
	}
	if *debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	// Create a new instance of Vocoder
	v := vocoder.New()

	// Set parameters
	v.Order = *order
	v.WindowSize = *window
	v.Overlap = *overlap
	v.Parallel = *parallel

	if err := v.EncodeFile(flag.Arg(0), flag.Arg(1)); err != nil {
		fmt.Printf("Error encoding signal: %v\n", err)
		os.Exit(1)
	}
}
