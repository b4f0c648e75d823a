// Command ambient-inspect prints level statistics and the spectral slope of
// WAV files.
//
// Usage:
//
//	ambient-inspect rain.wav sea.wav
//
// A slope near -1 indicates pink noise, near 0 white noise.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/tphakala/go-ambient/internal/analysis"
	"github.com/tphakala/go-ambient/internal/wavout"
)

var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("ambient-inspect", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if fs.NArg() == 0 {
		fmt.Fprintf(fs.Output(), "Usage: ambient-inspect file.wav [file.wav ...]\n")
		return fmt.Errorf("%w: no input files", errUsage)
	}

	for i, path := range fs.Args() {
		if i > 0 {
			fmt.Fprintln(stdout)
		}
		if err := inspect(path, stdout); err != nil {
			return err
		}
	}
	return nil
}

func inspect(path string, w io.Writer) error {
	buf, rate, err := wavout.ReadFile(path)
	if err != nil {
		return err
	}

	channels := make([][]float32, buf.Channels)
	for ch := range channels {
		channels[ch] = buf.Channel(ch)
	}

	fmt.Fprintf(w, "%s: %d Hz, %d channels\n", path, rate, buf.Channels)
	stats := analysis.Summarize(buf, float64(rate))
	return analysis.WriteReport(w, stats, analysis.ChannelSlopes(channels, float64(rate)))
}
