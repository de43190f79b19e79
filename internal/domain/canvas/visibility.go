package canvas

import (
	"github.com/screenloom/screenloom/internal/domain/geometry"
	"github.com/screenloom/screenloom/internal/domain/layout"
)

// VisibilityMargin expands the visible rectangle when testing whether a
// screen can still be seen, so frames barely off the edge count as visible.
const VisibilityMargin = 16

// ScreenRect returns a screen's world-space bounding box, frame chrome
// included.
func ScreenRect(screen Screen) geometry.Rect {
	dim := layout.FrameDimensions(screen.Class)
	return geometry.Rect{
		Left:   screen.Position.X,
		Top:    screen.Position.Y,
		Right:  screen.Position.X + dim.Width,
		Bottom: screen.Position.Y + dim.Height,
	}
}

// Bounds returns the bounding box of all given screens. ok is false for an
// empty slice.
func Bounds(screens []Screen) (bounds geometry.Rect, ok bool) {
	if len(screens) == 0 {
		return geometry.Rect{}, false
	}

	bounds = ScreenRect(screens[0])
	for _, screen := range screens[1:] {
		bounds = geometry.Union(bounds, ScreenRect(screen))
	}
	return bounds, true
}

// AnyVisible reports whether at least one screen's rectangle intersects the
// world rectangle observed through the viewport, expanded by margin.
// An empty viewport never sees anything.
func AnyVisible(cam geometry.Camera, viewport geometry.Size, screens []Screen, margin float64) bool {
	if len(screens) == 0 || viewport.Width == 0 || viewport.Height == 0 {
		return false
	}

	visible := geometry.VisibleWorldRect(cam, viewport)
	for _, screen := range screens {
		if geometry.Intersects(visible, ScreenRect(screen), margin) {
			return true
		}
	}
	return false
}
