package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Draw renders the particle swarm, the live constellation edges, and the
// optional debug overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{bgShade, bgShade, bgShade + 6, 255})

	for i, p := range g.swarm.pos {
		n := g.cam.project(p)
		if n.X < -1.02 || n.X > 1.02 || n.Y < -1.02 || n.Y > 1.02 {
			continue
		}
		sx, sy := g.cam.toScreen(n)
		col := starColor(float64(g.eng.Boost[i]))
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), starRadius, col, true)
	}

	g.geomBuf = g.eng.Geometries(g.geomBuf[:0])
	for _, geom := range g.geomBuf {
		if geom.Opacity <= 0 {
			continue
		}
		col := premultiply(geom.R, geom.G, geom.B, geom.Opacity)
		for _, ln := range geom.Lines {
			x0, y0 := g.cam.toScreen(g.cam.project(ln.From))
			x1, y1 := g.cam.toScreen(g.cam.project(ln.To))
			vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), lineWidth, col, true)
		}
	}

	if *debugFlag {
		msg := fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nLive: %d\nEngine: %s\nZoom: %.2f",
			ebiten.ActualFPS(), ebiten.ActualTPS(), g.eng.LiveCount(), g.advanceStat, g.cam.zoom)
		ebitenutil.DebugPrint(screen, msg)
	}
}

// starColor maps a particle's brightness boost onto the base star tint,
// scaling toward full intensity as claiming constellations raise the boost.
func starColor(boost float64) color.RGBA {
	intensity := math.Min(1, 0.35+0.325*(boost-1))
	return color.RGBA{
		R: uint8(starBaseR * intensity),
		G: uint8(starBaseG * intensity),
		B: uint8(starBaseB * intensity),
		A: 255,
	}
}

// premultiply converts a color plus opacity into the premultiplied-alpha form
// Ebiten's vector primitives expect.
func premultiply(r, g, b uint8, a float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(r) * a),
		G: uint8(float64(g) * a),
		B: uint8(float64(b) * a),
		A: uint8(255 * a),
	}
}
