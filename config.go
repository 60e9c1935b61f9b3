package main

import "time"

// Simulation and rendering configuration constants used throughout the
// application. These values define the world size, drift behavior, camera
// limits, and audio timing for the constellation demo.
const (
	worldW, worldH   = 1600.0, 1200.0
	screenW, screenH = 800, 600
	defaultParticles = 900
	defaultTPS       = 60.0

	driftInitSpeed = 0.35  // initial per-frame speed, world units
	driftJitter    = 0.012 // per-frame random velocity nudge
	driftDamping   = 0.999 // per-frame velocity decay
	driftThreads   = 4

	panSpeed    = 6.0 // world units per frame at zoom 1
	zoomStep    = 1.05
	minZoom     = 0.5
	maxZoom     = 4.0
	diagFactor  = 0.7071
	starRadius  = 1.4
	starBaseR   = 200
	starBaseG   = 210
	starBaseB   = 255
	lineWidth   = 1.5
	bgShade     = 8 // background gray level

	pgoRecordDuration = 15 * time.Second

	chimeSampleRate = 48000
	chimeDecay      = 2.5 // amplitude e-folds per second of chime
	chimeVolume     = 0.18
	chimeBaseHz     = 330.0
	maxChimes       = 8
)
