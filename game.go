package main

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/bradhe/stopwatch"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"stardrift/constel"
)

// chimeRatios is a pentatonic ladder assigning each catalog template a pitch.
var chimeRatios = []float64{1, 9.0 / 8, 5.0 / 4, 3.0 / 2, 5.0 / 3}

// Game encapsulates the drift swarm, the detection engine, the camera, and
// the optional audio pipeline.
type Game struct {
	swarm *swarm
	eng   *constel.Engine
	cam   camera

	simTime float64
	geomBuf []*constel.Geometry

	advanceStat string // last engine Advance duration, for the overlay

	audioCtx *audio.Context
	chimes   *chimeStream
	player   *audio.Player
}

// newGame constructs a fully initialized Game instance. The seed drives both
// the swarm and the engine so a run is reproducible end to end.
func newGame(seed int64) *Game {
	cfg := constel.DefaultConfig()
	if *searchIntervalFlag > 0 {
		cfg.SearchInterval = *searchIntervalFlag
	}
	if *maxConstellationsFlag > 0 {
		cfg.MaxConstellations = *maxConstellationsFlag
	}

	sw := newSwarm(*particlesFlag, rand.New(rand.NewSource(seed+1)))
	catalog := constel.DefaultCatalog()
	eng := constel.NewEngine(cfg, catalog, sw.pos, sw.vel, rand.New(rand.NewSource(seed)))

	g := &Game{
		swarm: sw,
		eng:   eng,
		cam:   newCamera(),
	}

	if *enableAudioFlag {
		g.audioCtx = audio.NewContext(chimeSampleRate)
		g.chimes = newChimeStream()
		if player, err := g.audioCtx.NewPlayer(g.chimes); err != nil {
			log.Printf("Audio player creation failed: %v", err)
		} else {
			g.player = player
			g.player.Play()
		}
	}

	pitch := make(map[string]float64, len(catalog))
	for i, t := range catalog {
		octave := 1 + float64(i/len(chimeRatios))
		pitch[t.Name] = chimeBaseHz * chimeRatios[i%len(chimeRatios)] * octave
	}
	eng.SpawnListener = func(name string) {
		if *debugFlag {
			log.Printf("constellation formed: %s", name)
		}
		if g.chimes != nil {
			g.chimes.Trigger(pitch[name])
		}
	}

	return g
}

// Update advances the drift simulation and then the detection engine. The
// ordering matters: the engine reads positions the drift step just produced,
// so geometry and brightness never lag a frame behind motion.
func (g *Game) Update() error {
	g.handleCameraControls()
	g.swarm.step()

	tps := ebiten.ActualTPS()
	if tps < 1 {
		tps = defaultTPS
	}
	dt := 1 / tps
	g.simTime += dt

	watch := stopwatch.Start()
	g.eng.Advance(g.simTime, dt, g.cam.project)
	watch.Stop()
	g.advanceStat = fmt.Sprintf("%v", watch.Milliseconds())

	return nil
}

// Layout reports the logical screen size used by Ebiten.
func (g *Game) Layout(_, _ int) (int, int) { return screenW, screenH }
