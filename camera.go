package main

import "stardrift/constel"

// camera holds the view center and zoom used to project world positions to
// normalized device coordinates and to the screen. At zoom 1 the full world
// rectangle fills the view.
type camera struct {
	x, y float64
	zoom float64
}

func newCamera() camera {
	return camera{x: worldW / 2, y: worldH / 2, zoom: 1}
}

// project maps a world position to NDC, where the visible screen covers
// [-1, 1] on both axes.
func (c *camera) project(p constel.Vec2) constel.Vec2 {
	return constel.Vec2{
		X: (p.X - c.x) / (worldW / 2) * c.zoom,
		Y: (p.Y - c.y) / (worldH / 2) * c.zoom,
	}
}

// toScreen maps NDC to pixel coordinates.
func (c *camera) toScreen(n constel.Vec2) (float64, float64) {
	return (n.X + 1) / 2 * screenW, (n.Y + 1) / 2 * screenH
}

// clampZoom constrains the zoom factor within the configured bounds.
func (c *camera) clampZoom() {
	if c.zoom < minZoom {
		c.zoom = minZoom
	} else if c.zoom > maxZoom {
		c.zoom = maxZoom
	}
}
