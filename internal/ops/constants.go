package ops

// Operator names.
const (
	NameNoisePink    = "noise_pink"
	NameFilterLP     = "filter_lp"
	NameFilterHP     = "filter_hp"
	NameFilterBP     = "filter_bp"
	NameEnvLFO       = "env_lfo"
	NameBursts       = "bursts"
	NameStereoDecor  = "stereo_decor"
	NameToneIso      = "tone_iso"
	NameToneBinaural = "tone_binaural"
	NameFade         = "fade"
	NameGain         = "gain"
)

// Parameter defaults.
const (
	defaultGain = 1.0

	defaultCutoff = 1000.0
	defaultBandLo = 200.0
	defaultBandHi = 1500.0

	defaultLFOFreq  = 0.1
	defaultLFODepth = 0.5
	defaultLFOBias  = 0.5

	defaultBurstDensity = 20.0 // bursts per minute
	defaultBurstMinMs   = 40.0
	defaultBurstMaxMs   = 200.0
	defaultBurstAmpLo   = 0.2
	defaultBurstAmpHi   = 0.6

	defaultSpread   = 0.02
	defaultPanRate  = 0.01
	defaultPanDepth = 0.1

	defaultIsoCarrier    = 400.0
	defaultIsoBeat       = 4.0
	defaultToneAmp       = 0.3
	defaultBinauralLeft  = 220.0
	defaultBinauralRight = 224.0
	defaultFadeSeconds   = 0.5
)

// Burst synthesis constants.
const (
	// burstShapeCutoff removes the low end of the click track so bursts read
	// as clicks rather than thumps.
	burstShapeCutoff = 2000.0

	// burstTailDivisor keeps burst onsets at least sampleRate/5 frames
	// before the end of the buffer.
	burstTailDivisor = 5

	// maxBurstFrames caps a single burst length. Ramps are only evaluated
	// inside the buffer, so the cap only bounds the length arithmetic.
	maxBurstFrames = 1 << 52

	secondsPerMinute = 60.0
	msPerSecond      = 1000.0
)

// seedStream is the PCG stream selector paired with the user seed.
const seedStream = 0x9E3779B97F4A7C15
