package geometry

import "math"

// Zoom bounds enforced on every camera mutation.
const (
	MinZoom = 0.1
	MaxZoom = 5.0
)

// Camera maps a world-space focus point to the viewport center at a scale
// factor. The zero value is not a valid camera; use DefaultCamera.
type Camera struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom"`
}

// DefaultCamera returns the session-start camera: origin focus, 1:1 scale.
func DefaultCamera() Camera {
	return Camera{X: 0, Y: 0, Zoom: 1}
}

// Point is a world-space coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a width/height pair, in pixels for viewports and in world units
// for frames (the two coincide at zoom 1).
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect is an axis-aligned rectangle in world space.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// ClampZoom clamps a zoom factor into [MinZoom, MaxZoom].
func ClampZoom(zoom float64) float64 {
	return math.Min(math.Max(zoom, MinZoom), MaxZoom)
}

// VisibleWorldRect returns the world-space rectangle currently observed
// through the viewport: the inverse camera transform applied to the
// viewport corners.
func VisibleWorldRect(cam Camera, viewport Size) Rect {
	halfWidth := viewport.Width / (2 * cam.Zoom)
	halfHeight := viewport.Height / (2 * cam.Zoom)

	return Rect{
		Left:   cam.X - halfWidth,
		Top:    cam.Y - halfHeight,
		Right:  cam.X + halfWidth,
		Bottom: cam.Y + halfHeight,
	}
}

// Intersects reports whether a and b overlap, with an inclusive boundary
// test. margin expands a on all sides before testing.
func Intersects(a, b Rect, margin float64) bool {
	return a.Left <= b.Right+margin &&
		a.Right >= b.Left-margin &&
		a.Top <= b.Bottom+margin &&
		a.Bottom >= b.Top-margin
}

// Center returns the midpoint of a rectangle.
func Center(r Rect) Point {
	return Point{
		X: (r.Left + r.Right) / 2,
		Y: (r.Top + r.Bottom) / 2,
	}
}

// Union returns the smallest rectangle containing both a and b.
func Union(a, b Rect) Rect {
	return Rect{
		Left:   math.Min(a.Left, b.Left),
		Top:    math.Min(a.Top, b.Top),
		Right:  math.Max(a.Right, b.Right),
		Bottom: math.Max(a.Bottom, b.Bottom),
	}
}

// WorldAt returns the world coordinate under a viewport point for the
// given camera.
func WorldAt(cam Camera, viewport Size, pt Point) Point {
	dx := pt.X - viewport.Width/2
	dy := pt.Y - viewport.Height/2

	return Point{
		X: cam.X + dx/cam.Zoom,
		Y: cam.Y + dy/cam.Zoom,
	}
}

// ZoomAtViewportPoint changes the camera zoom while keeping the world
// coordinate under pt fixed on screen. The zoom is anchored at the cursor,
// not at the canvas center.
func ZoomAtViewportPoint(cam Camera, viewport Size, pt Point, nextZoom float64) Camera {
	clamped := ClampZoom(nextZoom)
	dx := pt.X - viewport.Width/2
	dy := pt.Y - viewport.Height/2

	worldX := cam.X + dx/cam.Zoom
	worldY := cam.Y + dy/cam.Zoom

	return Camera{
		X:    worldX - dx/clamped,
		Y:    worldY - dy/clamped,
		Zoom: clamped,
	}
}

// EaseOutCubic maps linear progress t in [0,1] onto a cubic ease-out curve.
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}
