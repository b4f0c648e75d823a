package engine

// Rendering defaults.
const (
	// DefaultLevel is the peak target used when neither the caller nor the
	// profile sets one.
	DefaultLevel = 0.2

	// MaxSeconds bounds a single render to keep allocations sane.
	// 24 hours of 44.1 kHz stereo float32 is about 28 GiB.
	MaxSeconds = 24 * 60 * 60
)
