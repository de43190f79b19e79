package canvas

import (
	"testing"

	"github.com/screenloom/screenloom/internal/domain/geometry"
	"github.com/screenloom/screenloom/internal/domain/layout"
)

func placedScreen(id string, x, y float64) Screen {
	return Screen{
		ID:       id,
		Status:   StatusReady,
		Position: geometry.Point{X: x, Y: y},
		Class:    layout.ClassCompact,
	}
}

func TestScreenRect(t *testing.T) {
	r := ScreenRect(placedScreen("a", 10, 20))
	if r.Left != 10 || r.Top != 20 || r.Right != 385 || r.Bottom != 876 {
		t.Errorf("rect = %+v", r)
	}
}

func TestBounds(t *testing.T) {
	if _, ok := Bounds(nil); ok {
		t.Error("empty set should have no bounds")
	}

	bounds, ok := Bounds([]Screen{
		placedScreen("a", 0, 0),
		placedScreen("b", 1000, -500),
	})
	if !ok {
		t.Fatal("expected bounds")
	}
	if bounds.Left != 0 || bounds.Top != -500 || bounds.Right != 1375 || bounds.Bottom != 856 {
		t.Errorf("bounds = %+v", bounds)
	}
}

func TestAnyVisible(t *testing.T) {
	viewport := geometry.Size{Width: 800, Height: 600}
	screens := []Screen{placedScreen("a", 0, 0)}

	// Camera over the screen sees it.
	if !AnyVisible(geometry.Camera{X: 100, Y: 100, Zoom: 1}, viewport, screens, 0) {
		t.Error("expected visible")
	}

	// Camera far away sees nothing.
	if AnyVisible(geometry.Camera{X: 100000, Y: 0, Zoom: 1}, viewport, screens, 0) {
		t.Error("expected not visible")
	}

	// Empty set or degenerate viewport is never visible.
	if AnyVisible(geometry.DefaultCamera(), viewport, nil, 0) {
		t.Error("empty set should not be visible")
	}
	if AnyVisible(geometry.DefaultCamera(), geometry.Size{}, screens, 0) {
		t.Error("zero viewport should not be visible")
	}
}

func TestAnyVisibleMargin(t *testing.T) {
	viewport := geometry.Size{Width: 100, Height: 100}
	// Frame just beyond the right edge of the visible rect.
	screens := []Screen{placedScreen("a", 60, 0)}
	cam := geometry.DefaultCamera()

	if AnyVisible(cam, viewport, screens, 0) {
		t.Error("frame should be outside with no margin")
	}
	if !AnyVisible(cam, viewport, screens, VisibilityMargin) {
		t.Error("frame should be inside with the margin")
	}
}
