package layout

import (
	"math"

	"github.com/screenloom/screenloom/internal/domain/geometry"
)

// Class is a named frame size category determining a screen's on-canvas
// footprint.
type Class string

const (
	// ClassCompact simulates a mobile device frame.
	ClassCompact Class = "compact"
	// ClassWide simulates a desktop browser frame.
	ClassWide Class = "wide"
)

// Nominal design dimensions per class. The frame header chrome sits above
// the content viewport and counts toward the placed footprint.
const (
	compactWidth   = 375
	compactHeight  = 812
	wideWidth      = 1280
	wideHeight     = 800
	headerHeight   = 44
	compactGapX    = 96
	wideGapX       = 160
	gapY           = 120
	wideColumnTopY = -320
)

// DesignWidth returns the nominal content width for a class, as carried on
// the wire.
func (c Class) DesignWidth() int {
	if c == ClassWide {
		return wideWidth
	}
	return compactWidth
}

// ClassForDesignWidth maps a wire design width back to a frame class.
// Unrecognized widths fall back to compact.
func ClassForDesignWidth(width int) Class {
	if width == wideWidth {
		return ClassWide
	}
	return ClassCompact
}

// Valid reports whether c is a known frame class.
func (c Class) Valid() bool {
	return c == ClassCompact || c == ClassWide
}

// FrameDimensions returns the full world-space footprint of one frame of
// the given class, header chrome included.
func FrameDimensions(c Class) geometry.Size {
	if c == ClassWide {
		return geometry.Size{Width: wideWidth, Height: wideHeight + headerHeight}
	}
	return geometry.Size{Width: compactWidth, Height: compactHeight + headerHeight}
}

// Place returns world-space top-left positions for newCount screens being
// added to a canvas that already holds existingCount screens of any class.
// The returned positions never overlap each other. existingCount shifts the
// layout origin only; existing screens' actual positions are not consulted.
func Place(existingCount, newCount int, c Class) []geometry.Point {
	if newCount <= 0 {
		return nil
	}

	all := positions(existingCount+newCount, c)
	return all[existingCount:]
}

// positions lays out count frames from scratch under the class policy.
func positions(count int, c Class) []geometry.Point {
	frame := FrameDimensions(c)

	if c == ClassWide {
		// Single centered column, scanned top to bottom.
		startX := -frame.Width / 2
		pts := make([]geometry.Point, count)
		for i := range pts {
			pts[i] = geometry.Point{
				X: startX,
				Y: wideColumnTopY + float64(i)*(frame.Height+gapY),
			}
		}
		return pts
	}

	// Compact: 2-column grid (single column for a lone frame), the whole
	// cluster centered on the world origin.
	columns := 2
	if count == 1 {
		columns = 1
	}
	rows := int(math.Ceil(float64(count) / float64(columns)))

	clusterWidth := frame.Width*float64(columns) + compactGapX*float64(columns-1)
	clusterHeight := frame.Height*float64(rows) + gapY*float64(rows-1)
	startX := -clusterWidth / 2
	startY := -clusterHeight / 2

	pts := make([]geometry.Point, count)
	for i := range pts {
		row := i / columns
		col := i % columns
		pts[i] = geometry.Point{
			X: startX + float64(col)*(frame.Width+compactGapX),
			Y: startY + float64(row)*(frame.Height+gapY),
		}
	}
	return pts
}
