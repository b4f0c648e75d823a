// Package wavout writes rendered buffers as 16-bit PCM WAV files and reads
// them back for inspection.
package wavout

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/tphakala/go-ambient/internal/dsp"
)

// WAV format constants.
const (
	BitDepth = 16

	pcmFormat   = 1
	maxInt16    = 32767
	chunkFrames = 1 << 15
)

// Errors returned by the reader.
var (
	ErrInvalidFile       = errors.New("invalid WAV file")
	ErrUnsupportedFormat = errors.New("unsupported WAV format")
)

// Quantize clips v to [-1, 1] and scales it to a 16-bit sample, truncating
// toward zero.
func Quantize(v float32) int {
	return int(dsp.Clip(v) * maxInt16)
}

// Write encodes buf as 16-bit PCM at sampleRate.
func Write(w io.WriteSeeker, buf dsp.Buffer, sampleRate int) error {
	if buf.Channels != dsp.MonoChannels && buf.Channels != dsp.StereoChannels {
		return fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, buf.Channels)
	}

	enc := wav.NewEncoder(w, sampleRate, BitDepth, buf.Channels, pcmFormat)
	ib := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: buf.Channels,
			SampleRate:  sampleRate,
		},
		SourceBitDepth: BitDepth,
		Data:           make([]int, 0, min(len(buf.Data), chunkFrames*buf.Channels)),
	}

	// The first Write emits the header, so it runs even for an empty buffer.
	chunk := chunkFrames * buf.Channels
	for start := 0; ; start += chunk {
		end := min(start+chunk, len(buf.Data))
		ib.Data = ib.Data[:0]
		for _, v := range buf.Data[start:end] {
			ib.Data = append(ib.Data, Quantize(v))
		}
		if err := enc.Write(ib); err != nil {
			return fmt.Errorf("failed to write audio data: %w", err)
		}
		if end >= len(buf.Data) {
			break
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV: %w", err)
	}
	return nil
}

// WriteFile creates path and writes buf to it.
func WriteFile(path string, buf dsp.Buffer, sampleRate int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	return Write(f, buf, sampleRate)
}

// Read decodes a 16-bit PCM mono or stereo WAV. It returns the samples
// scaled back to [-1, 1] and the sample rate.
func Read(r io.ReadSeeker) (dsp.Buffer, int, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return dsp.Buffer{}, 0, ErrInvalidFile
	}
	if dec.BitDepth != BitDepth {
		return dsp.Buffer{}, 0, fmt.Errorf("%w: %d-bit", ErrUnsupportedFormat, dec.BitDepth)
	}

	channels := int(dec.NumChans)
	if channels != dsp.MonoChannels && channels != dsp.StereoChannels {
		return dsp.Buffer{}, 0, fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, channels)
	}

	ib, err := dec.FullPCMBuffer()
	if err != nil {
		return dsp.Buffer{}, 0, fmt.Errorf("failed to read audio data: %w", err)
	}

	data := make([]float32, len(ib.Data))
	for i, v := range ib.Data {
		data[i] = float32(v) / maxInt16
	}
	return dsp.Buffer{Data: data, Channels: channels}, int(dec.SampleRate), nil
}

// ReadFile opens path and decodes it with Read.
func ReadFile(path string) (dsp.Buffer, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return dsp.Buffer{}, 0, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	buf, rate, err := Read(f)
	if err != nil {
		return dsp.Buffer{}, 0, fmt.Errorf("%s: %w", path, err)
	}
	return buf, rate, nil
}
