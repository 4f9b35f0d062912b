package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/neurlang/golpc/codec"
	"github.com/neurlang/golpc/vocoder"
)

func main() {
	play := flag.Bool("play", false, "play the decoded signal")
	debug := flag.Bool("d", false, "enable debug messages")
	flag.Parse()

	if flag.NArg() < 2 {
		fmt.Println("Usage: decode [flags] <encoded_file> <audio_file>")
		os.Exit(1)
	}
	if *debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	// Create a new instance of Vocoder
	v := vocoder.New()

	stream, err := codec.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Printf("Error reading stream: %v\n", err)
		os.Exit(1)
	}
	signal, err := v.Decode(stream)
	if err != nil {
		fmt.Printf("Error decoding signal: %v\n", err)
		os.Exit(1)
	}
	if err := vocoder.SaveWav(flag.Arg(1), signal, stream.Info.SampleRate); err != nil {
		fmt.Printf("Error saving signal: %v\n", err)
		os.Exit(1)
	}

	if *play {
		if err := vocoder.Play(signal, stream.Info.SampleRate); err != nil {
			fmt.Printf("Error playing signal: %v\n", err)
			os.Exit(1)
		}
	}
}
