package engine

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/screenloom/screenloom/internal/domain/camera"
	"github.com/screenloom/screenloom/internal/domain/canvas"
	"github.com/screenloom/screenloom/internal/domain/geometry"
	"github.com/screenloom/screenloom/internal/domain/layout"
	"github.com/screenloom/screenloom/internal/infrastructure/logging"
	"github.com/screenloom/screenloom/internal/protocol"
)

// Publisher sends outbound messages toward the backend. It is satisfied by
// *transport.Manager; tests substitute a recorder.
type Publisher interface {
	Send(msg protocol.Message)
}

// Config carries the engine's collaborators and tunables.
type Config struct {
	// Publisher receives outbound envelopes. Required.
	Publisher Publisher

	// FocusDuration is the length of auto-framing camera animations.
	// Zero means camera.DefaultFocusDuration.
	FocusDuration time.Duration

	// OnError receives backend error messages. Optional; errors are
	// always logged regardless.
	OnError func(message string)

	// Clock supplies the current time for animation starts. Zero means
	// time.Now. Ticks carry their own timestamps either way.
	Clock func() time.Time
}

// Engine is one canvas session. All methods are safe for concurrent use.
type Engine struct {
	log   *logging.Logger
	store *canvas.Store
	cam   *camera.Controller
	pub   Publisher

	focusDuration time.Duration
	onError       func(string)
	clock         func() time.Time

	mu       sync.Mutex
	viewport geometry.Size
	panning  bool
}

// New constructs an engine with an empty store and the default camera.
func New(cfg Config, log *logging.Logger) *Engine {
	if log == nil {
		log = logging.NewNop()
	}
	e := &Engine{
		log:           log,
		store:         canvas.NewStore(),
		cam:           camera.NewController(),
		pub:           cfg.Publisher,
		focusDuration: cfg.FocusDuration,
		onError:       cfg.OnError,
		clock:         cfg.Clock,
	}
	if e.focusDuration <= 0 {
		e.focusDuration = camera.DefaultFocusDuration
	}
	if e.clock == nil {
		e.clock = time.Now
	}
	return e
}

// RequestGeneration inserts loading placeholders for the requested screens
// and sends one generate_screens envelope. Placeholders are placed below
// and around existing screens so nothing overlaps; the camera animates to
// frame them. No-op for an empty spec list.
func (e *Engine) RequestGeneration(prompt, model string, specs []protocol.ScreenSpec) {
	if len(specs) == 0 {
		return
	}

	screens := make([]canvas.Screen, 0, len(specs))
	existing := e.store.Len()
	// Specs sharing a size class are placed together so each class keeps
	// its own grid shape.
	i := 0
	for i < len(specs) {
		class := specs[i].Class()
		j := i
		for j < len(specs) && specs[j].Class() == class {
			j++
		}
		positions := layout.Place(existing, j-i, class)
		for k, spec := range specs[i:j] {
			screens = append(screens, canvas.Screen{
				ID:       spec.ID,
				Name:     spec.Name,
				Status:   canvas.StatusLoading,
				Position: positions[k],
				Class:    class,
			})
		}
		existing += j - i
		i = j
	}

	e.store.AddBatch(screens)
	e.log.Info("generation requested",
		zap.Int("screens", len(specs)),
		zap.String("model", model))

	if e.pub != nil {
		e.pub.Send(protocol.NewGenerateScreens(prompt, model, specs))
	}
	e.focus(screens, e.cam.Camera().Zoom)
}

// HandleMessage reconciles one inbound backend message into session state.
// It has the signature expected by transport.Manager.Subscribe.
func (e *Engine) HandleMessage(msg protocol.Message) {
	switch m := msg.(type) {
	case protocol.ScreenUpdate:
		e.applyUpdate(m)
	case protocol.ErrorMessage:
		e.log.Warn("backend error", zap.String("message", m.Message))
		if e.onError != nil {
			e.onError(m.Message)
		}
	case protocol.System:
		e.log.Debug("backend system message", zap.String("message", m.Message))
	default:
		e.log.Debug("unhandled message", zap.String("type", msg.MessageType()))
	}
}

// applyUpdate patches a known screen, or synthesizes one for an id the
// session has never seen so the update's content is not lost.
func (e *Engine) applyUpdate(m protocol.ScreenUpdate) {
	patch := canvas.Patch{Status: &m.Status, HTML: m.HTML}
	class := layout.ClassCompact
	if c, ok := m.ClassHint(); ok {
		patch.Class = &c
		class = c
	}
	if e.store.Update(m.ScreenID, patch) {
		e.RecoverIfNothingVisible()
		return
	}
	count := e.store.Len()
	positions := layout.Place(count, 1, class)
	screen := canvas.Screen{
		ID:       m.ScreenID,
		Name:     fmt.Sprintf("Screen %d", count+1),
		Status:   m.Status,
		Position: positions[0],
		Class:    class,
	}
	if m.HTML != nil {
		screen.HTML = *m.HTML
	}
	e.store.Add(screen)
	e.log.Info("synthesized screen for unknown update",
		zap.String("screen_id", m.ScreenID),
		zap.String("status", string(m.Status)))
	e.focus([]canvas.Screen{screen}, e.cam.Camera().Zoom)
}

// MoveScreen repositions one screen, typically from a drag gesture.
func (e *Engine) MoveScreen(id string, pos geometry.Point) bool {
	return e.store.SetPosition(id, pos)
}

// RemoveScreen discards a screen from the session.
func (e *Engine) RemoveScreen(id string) bool {
	ok := e.store.Remove(id)
	if ok {
		e.RecoverIfNothingVisible()
	}
	return ok
}

// SetViewport records the size of the window the camera projects into.
func (e *Engine) SetViewport(size geometry.Size) {
	e.mu.Lock()
	e.viewport = size
	e.mu.Unlock()
}

// BeginPan marks a pan gesture active, suppressing visibility recovery.
func (e *Engine) BeginPan() {
	e.mu.Lock()
	e.panning = true
	e.mu.Unlock()
	e.cam.Cancel()
}

// EndPan clears the pan gesture flag.
func (e *Engine) EndPan() {
	e.mu.Lock()
	e.panning = false
	e.mu.Unlock()
}

// Pan translates the camera by a world-space delta.
func (e *Engine) Pan(dx, dy float64) {
	e.cam.Pan(dx, dy)
}

// ZoomAt zooms toward a viewport point, keeping the world point under it
// fixed on screen.
func (e *Engine) ZoomAt(anchor geometry.Point, zoom float64) {
	e.mu.Lock()
	viewport := e.viewport
	e.mu.Unlock()
	e.cam.ZoomAt(viewport, anchor, zoom)
}

// ZoomIn steps zoom up around the viewport center.
func (e *Engine) ZoomIn() {
	e.mu.Lock()
	viewport := e.viewport
	e.mu.Unlock()
	e.cam.ZoomIn(viewport)
}

// ZoomOut steps zoom down around the viewport center.
func (e *Engine) ZoomOut() {
	e.mu.Lock()
	viewport := e.viewport
	e.mu.Unlock()
	e.cam.ZoomOut(viewport)
}

// ResetZoom returns zoom to 1 without moving the camera, then repairs the
// view if that left no screen visible.
func (e *Engine) ResetZoom() {
	cam := e.cam.Camera()
	e.cam.Set(geometry.Camera{X: cam.X, Y: cam.Y, Zoom: 1})
	e.RecoverIfNothingVisible()
}

// RecoverIfNothingVisible animates the camera to frame every screen when
// the current view shows none of them. It does nothing while a pan gesture
// is active, when the store is empty, or when the viewport is unknown.
func (e *Engine) RecoverIfNothingVisible() {
	e.mu.Lock()
	viewport := e.viewport
	panning := e.panning
	e.mu.Unlock()
	if panning {
		return
	}

	screens := e.store.List()
	if canvas.AnyVisible(e.cam.Camera(), viewport, screens, canvas.VisibilityMargin) {
		return
	}
	if len(screens) == 0 || viewport.Width <= 0 || viewport.Height <= 0 {
		return
	}
	e.focus(screens, e.cam.Camera().Zoom)
}

// focus animates the camera so the given screens' bounding box is centered,
// at the given zoom.
func (e *Engine) focus(screens []canvas.Screen, zoom float64) {
	bounds, ok := canvas.Bounds(screens)
	if !ok {
		return
	}
	center := geometry.Center(bounds)
	target := geometry.Camera{X: center.X, Y: center.Y, Zoom: geometry.ClampZoom(zoom)}
	e.cam.AnimateTo(target, e.focusDuration, e.clock())
}

// Tick advances any running camera animation. It reports whether the
// camera moved; callers stop ticking once it returns false and no
// animation is pending.
func (e *Engine) Tick(now time.Time) bool {
	return e.cam.Tick(now)
}

// Animating reports whether a camera animation is in flight.
func (e *Engine) Animating() bool {
	return e.cam.Animating()
}

// Camera returns the current camera state.
func (e *Engine) Camera() geometry.Camera {
	return e.cam.Camera()
}

// Snapshot is a point-in-time projection of session state for rendering.
type Snapshot struct {
	Camera   geometry.Camera
	Viewport geometry.Size
	Screens  []canvas.Screen
}

// Snapshot copies out the current camera, viewport, and screen list.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	viewport := e.viewport
	e.mu.Unlock()
	return Snapshot{
		Camera:   e.cam.Camera(),
		Viewport: viewport,
		Screens:  e.store.List(),
	}
}

// Screens returns the screen list in discovery order.
func (e *Engine) Screens() []canvas.Screen {
	return e.store.List()
}
