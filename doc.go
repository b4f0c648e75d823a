// Package ambient renders continuous ambient audio (rain, wind, sea, tones)
// from small declarative profiles.
//
// A profile is an ordered list of operator steps and a target peak level.
// Rendering starts from silence, folds each operator over the buffer, turns
// the result into stereo and peak-normalizes it to the level.
//
// # Quick Start
//
// Render one minute of a built-in preset:
//
//	p, err := ambient.Preset("rain")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	buf, err := ambient.RunProfile(p, 1, ambient.WithSeed(7))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Or describe a pipeline inline:
//
//	p := &ambient.Profile{
//	    Pipeline: []string{
//	        "noise_pink",
//	        "filter_lp:cut=500,gain=0.5",
//	        "env_lfo:f=0.1,depth=0.5,bias=0.5",
//	        "stereo_decor",
//	    },
//	}
//
// # Step Grammar
//
// A step is an operator name, optionally followed by ':' and comma-separated
// key=value parameters. Numeric-looking values are numbers, anything else is
// text. Unknown keys are ignored.
//
// # Operators
//
//   - noise_pink: adds pink noise (gain)
//   - filter_lp, filter_hp: one-pole low/high emphasis (cut, gain)
//   - filter_bp: band emphasis (lo, hi, gain)
//   - env_lfo: sine amplitude envelope (f, depth, bias, phase)
//   - bursts: sparse high-passed clicks (density, min_ms, max_ms, amp_lo, amp_hi, gain)
//   - stereo_decor: mono to decorrelated stereo (spread, pan_rate, pan_depth)
//   - tone_iso: isochronic tone (carrier, beat, amp)
//   - tone_binaural: binaural carrier pair (left, right, amp)
//   - fade: linear fade-in/out in seconds (in, out)
//   - gain: uniform gain (gain)
//
// # Profiles
//
// Profiles are JSON or YAML documents:
//
//	level: 0.2
//	pipeline:
//	  - noise_pink
//	  - filter_lp:cut=800
//
// The older "ops" key is accepted in place of "pipeline".
//
// # Output
//
// Rendered buffers are interleaved stereo float32 at 44.1 kHz. The
// internal/wavout package writes them as 16-bit PCM WAV.
package ambient
