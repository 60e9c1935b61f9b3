package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// panVector returns WASD-based camera movement scaled by panSpeed and the
// current zoom, so panning covers the same screen fraction at any zoom.
func (g *Game) panVector() (float64, float64) {
	dx, dy := 0.0, 0.0
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		dy -= panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		dy += panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		dx -= panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		dx += panSpeed
	}
	if dx != 0 && dy != 0 {
		dx *= diagFactor
		dy *= diagFactor
	}
	return dx / g.cam.zoom, dy / g.cam.zoom
}

// handleCameraControls processes pan and zoom input.
func (g *Game) handleCameraControls() {
	dx, dy := g.panVector()
	g.cam.x += dx
	g.cam.y += dy

	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		g.cam.zoom *= zoomStep
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		g.cam.zoom /= zoomStep
	}
	g.cam.clampZoom()
}
