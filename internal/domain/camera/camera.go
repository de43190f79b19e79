package camera

import (
	"sync"
	"time"

	"github.com/screenloom/screenloom/internal/domain/geometry"
)

// ZoomStep is the increment used by the ZoomIn/ZoomOut conveniences.
const ZoomStep = 0.1

// DefaultFocusDuration is how long auto-focus transitions take.
const DefaultFocusDuration = 220 * time.Millisecond

// Controller owns the session camera and its animation state machine.
type Controller struct {
	mu  sync.RWMutex
	cam geometry.Camera
	anm *animation
}

// animation is the animating arm of the state machine; nil means idle.
type animation struct {
	start    geometry.Camera
	target   geometry.Camera
	startAt  time.Time
	duration time.Duration
}

// NewController creates a controller at the default camera.
func NewController() *Controller {
	return &Controller{cam: geometry.DefaultCamera()}
}

// Camera returns the current camera.
func (c *Controller) Camera() geometry.Camera {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cam
}

// Set replaces the camera, clamping zoom into range.
func (c *Controller) Set(cam geometry.Camera) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setLocked(cam)
}

// Pan translates the focus point by a delta in world units. Position is
// unbounded, so there is no clamping.
func (c *Controller) Pan(dx, dy float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cam.X += dx
	c.cam.Y += dy
}

// SetZoom sets the zoom factor, clamped, keeping the focus point.
func (c *Controller) SetZoom(zoom float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cam.Zoom = geometry.ClampZoom(zoom)
}

// ZoomAt re-anchors the zoom at a viewport point: the world coordinate
// under pt stays under pt after the zoom change.
func (c *Controller) ZoomAt(viewport geometry.Size, pt geometry.Point, nextZoom float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cam = geometry.ZoomAtViewportPoint(c.cam, viewport, pt, nextZoom)
}

// ZoomIn zooms one step in, anchored at the viewport center.
func (c *Controller) ZoomIn(viewport geometry.Size) {
	center := geometry.Point{X: viewport.Width / 2, Y: viewport.Height / 2}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cam = geometry.ZoomAtViewportPoint(c.cam, viewport, center, c.cam.Zoom+ZoomStep)
}

// ZoomOut zooms one step out, anchored at the viewport center.
func (c *Controller) ZoomOut(viewport geometry.Size) {
	center := geometry.Point{X: viewport.Width / 2, Y: viewport.Height / 2}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cam = geometry.ZoomAtViewportPoint(c.cam, viewport, center, c.cam.Zoom-ZoomStep)
}

// Reset returns the camera to the session-start default and cancels any
// in-flight animation.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.anm = nil
	c.cam = geometry.DefaultCamera()
}

// AnimateTo starts a transition toward target over duration, replacing any
// in-flight animation. The transition is advanced by Tick.
func (c *Controller) AnimateTo(target geometry.Camera, duration time.Duration, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// A non-positive duration is an immediate jump, which still replaces
	// any animation in flight.
	if duration <= 0 {
		c.anm = nil
		c.setLocked(target)
		return
	}

	c.anm = &animation{
		start:    c.cam,
		target:   target,
		startAt:  now,
		duration: duration,
	}
}

// Animating reports whether a transition is in flight.
func (c *Controller) Animating() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.anm != nil
}

// Cancel tears down any in-flight animation, leaving the camera where the
// last tick put it.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.anm = nil
}

// Tick advances the animation state machine. It returns true if the camera
// moved. A tick at or past the animation's end lands exactly on the target
// and transitions back to idle.
func (c *Controller) Tick(now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.anm == nil {
		return false
	}

	progress := float64(now.Sub(c.anm.startAt)) / float64(c.anm.duration)
	if progress >= 1 {
		c.setLocked(c.anm.target)
		c.anm = nil
		return true
	}
	if progress < 0 {
		progress = 0
	}

	eased := geometry.EaseOutCubic(progress)
	start, target := c.anm.start, c.anm.target
	c.setLocked(geometry.Camera{
		X:    start.X + (target.X-start.X)*eased,
		Y:    start.Y + (target.Y-start.Y)*eased,
		Zoom: start.Zoom + (target.Zoom-start.Zoom)*eased,
	})
	return true
}

func (c *Controller) setLocked(cam geometry.Camera) {
	cam.Zoom = geometry.ClampZoom(cam.Zoom)
	c.cam = cam
}
