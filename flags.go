package main

import "flag"

// Command-line flags that control optional rendering, simulation, and runtime
// behavior.
var (
	// debugFlag enables the FPS and engine timing overlay.
	debugFlag = flag.Bool("debug", false, "show FPS, live count, and engine timing overlay")

	// seedFlag fixes the random seed for the drift swarm and the detection
	// engine; 0 derives a seed from the clock.
	seedFlag = flag.Int64("seed", 0, "random seed (0 = time-based)")

	// particlesFlag sets the swarm size.
	particlesFlag = flag.Int("particles", defaultParticles, "number of drifting particles")

	// searchIntervalFlag overrides the seconds between cluster searches.
	searchIntervalFlag = flag.Float64("search-interval", 0, "seconds between cluster searches (0 = engine default)")

	// maxConstellationsFlag overrides the concurrent constellation cap.
	maxConstellationsFlag = flag.Int("max-constellations", 0, "maximum concurrent constellations (0 = engine default)")

	// enableAudioFlag toggles the spawn chime.
	enableAudioFlag = flag.Bool("enable-audio", false, "play a chime when a constellation forms")

	// recordDefaultPGO captures a CPU profile to default.pgo while the
	// simulation free-runs for a fixed duration.
	recordDefaultPGO = flag.Bool("record-default-pgo", false, "free-run for 15s while capturing default.pgo")
)
