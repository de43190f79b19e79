// Package camera owns the canvas camera state and its animated transitions.
//
// A Controller holds the current {x, y, zoom} camera and an animation state
// machine with two states: idle and animating. Animations interpolate all
// three camera fields along a cubic ease-out curve and are advanced by an
// external per-tick driver; starting a new animation replaces any in-flight
// one without completing it.
//
// Camera inputs never fail: zoom is clamped on every mutation and position
// is unbounded. A direct mutation during an animation is not corrected;
// the animation keeps interpolating toward its original target from its
// original baseline.
package camera
