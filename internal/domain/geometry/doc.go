// Package geometry provides pure coordinate-space math for the canvas.
//
// Two coordinate spaces are involved:
//   - World space: the unbounded 2D plane in which screens have fixed
//     positions, independent of the camera.
//   - Viewport space: the pixel surface through which a portion of world
//     space is observed.
//
// The camera maps a world-space focus point to the viewport center at a
// given zoom. All functions here are stateless and never fail; zoom values
// are clamped into [MinZoom, MaxZoom] instead of producing errors.
package geometry
