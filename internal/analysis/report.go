package analysis

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"
)

// Frequency band used for the slope line of a report.
const (
	ReportSlopeLo = 100.0
	ReportSlopeHi = 10000.0
)

var channelNames = []string{"left", "right"}

// WriteReport prints s as a table, one row per channel. slopes holds the
// spectral slope per channel; NaN entries are shown as "-".
func WriteReport(w io.Writer, s Stats, slopes []float64) error {
	if _, err := fmt.Fprintf(w, "%d frames, %.2fs\n", s.Frames, s.Seconds); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "channel\tpeak\tpeak dBFS\trms\tcrest\tdc\tslope")
	for ch, c := range s.Channels {
		name := fmt.Sprintf("ch%d", ch)
		if len(s.Channels) == len(channelNames) {
			name = channelNames[ch]
		} else if len(s.Channels) == 1 {
			name = "mono"
		}

		slope := "-"
		if ch < len(slopes) && !math.IsNaN(slopes[ch]) {
			slope = fmt.Sprintf("%.2f", slopes[ch])
		}

		fmt.Fprintf(tw, "%s\t%.4f\t%.1f\t%.4f\t%.2f\t%+.5f\t%s\n",
			name, c.Peak, c.PeakDBFS(), c.RMS, c.Crest, c.DC, slope)
	}
	return tw.Flush()
}

// ChannelSlopes computes the report slope of every channel.
// Channels too short to analyze get NaN.
func ChannelSlopes(channels [][]float32, sampleRate float64) []float64 {
	slopes := make([]float64, len(channels))
	for i, x := range channels {
		slope, err := SpectralSlope(x, sampleRate, ReportSlopeLo, math.Min(ReportSlopeHi, sampleRate/2))
		if err != nil {
			slope = math.NaN()
		}
		slopes[i] = slope
	}
	return slopes
}
