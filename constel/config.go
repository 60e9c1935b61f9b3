package constel

// Config collects every fixed tunable of the detection and animation engine.
// Values are read once at construction; tests override individual fields
// before calling NewEngine.
type Config struct {
	// Search.
	SearchInterval    float64 // seconds between cluster searches
	MaxConstellations int     // non-dissolved instances allowed concurrently
	GridRes           int     // cells per axis of the spatial index
	ScreenPad         float64 // NDC padding around the visible box during indexing
	MinBlockParticles int     // minimum unclaimed particles per candidate window
	MaxSampleBlocks   int     // candidate blocks sampled per search tick

	// Matching.
	PoolMultiplier   int       // pool size = multiplier x template star count
	RotationSteps    int       // evenly spaced rotation angles tried per scale
	ScaleVariants    []float64 // NDC scale factors tried per rotation
	QualityThreshold float64   // best score above this is a no-match

	// Selection.
	TopCandidates   int     // templates entering the weighted pick
	Temperature     float64 // softmax temperature for the weighted pick
	ActivePenalty   float64 // score penalty while a template has a live instance
	CooldownSeconds float64 // per-template cooldown after a spawn
	CooldownPenalty float64 // full-strength cooldown score penalty

	// Forming.
	EdgeStagger   float64 // seconds between successive edge draw starts
	EdgeDraw      float64 // seconds for one edge to draw in
	FormingCap    float64 // upper bound on the opacity ramp span, seconds
	FlashDuration float64 // one-shot flash length after an edge completes
	FlashPeak     float64 // brightness multiplier at flash start

	// Active / fading.
	Repulse         float64 // per-frame velocity impulse away from the centroid
	SpreadFadeStart float64 // spread ratio that begins fading
	SpreadDissolve  float64 // spread ratio at which spread opacity reaches zero
	FadeDuration    float64 // time-based fade length, seconds
	MinLifetime     float64 // seconds before offscreen force-fade may trigger
	OffscreenPad    float64 // looser NDC padding for the offscreen check
	WrapThreshold   float64 // world-space per-axis jump treated as a boundary wrap

	// Output.
	DimFactor    float64 // line opacity multiplier
	StarBoostMax float64 // peak per-particle brightness boost
}

// DefaultConfig returns the tuning used by the demo application.
func DefaultConfig() Config {
	return Config{
		SearchInterval:    4.0,
		MaxConstellations: 3,
		GridRes:           12,
		ScreenPad:         0.1,
		MinBlockParticles: 6,
		MaxSampleBlocks:   10,

		PoolMultiplier:   3,
		RotationSteps:    8,
		ScaleVariants:    []float64{0.16, 0.22, 0.30},
		QualityThreshold: 0.38,

		TopCandidates:   3,
		Temperature:     0.08,
		ActivePenalty:   0.25,
		CooldownSeconds: 20.0,
		CooldownPenalty: 0.30,

		EdgeStagger:   0.4,
		EdgeDraw:      0.5,
		FormingCap:    4.0,
		FlashDuration: 0.3,
		FlashPeak:     2.5,

		Repulse:         0.004,
		SpreadFadeStart: 1.8,
		SpreadDissolve:  2.5,
		FadeDuration:    3.0,
		MinLifetime:     2.0,
		OffscreenPad:    0.35,
		WrapThreshold:   200.0,

		DimFactor:    0.85,
		StarBoostMax: 3.0,
	}
}
