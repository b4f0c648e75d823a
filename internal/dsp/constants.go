package dsp

// DefaultSampleRate is the fixed rendering rate in Hz.
const DefaultSampleRate = 44100

// Channel layouts.
const (
	MonoChannels   = 1
	StereoChannels = 2
)

// Pink-noise filter bank (Paul Kellet's refined method). The constants are
// fixed so that the spectral shape matches reference renders.
var (
	pinkPoles = [6]float32{0.99886, 0.99332, 0.96900, 0.86650, 0.55000, -0.7616}
	pinkGains = [6]float32{0.0555179, 0.0750759, 0.1538520, 0.3104856, 0.5329522, -0.0168980}
)

const (
	pinkDirectGain  = 0.5362
	pinkDelayedGain = 0.115926
)

// Stereo decorrelation constants.
const (
	// decorrelationCutoff low-passes the spread noise so only slow
	// inter-channel differences remain.
	decorrelationCutoff = 1200.0

	// decorrelationMix is the share of spread noise added to (left) and
	// subtracted from (right) the mono signal.
	decorrelationMix = 0.5
)
