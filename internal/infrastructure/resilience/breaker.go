package resilience

import (
	"errors"
	"sync"
	"time"
)

var (
	// ErrCircuitOpen is returned while the breaker is rejecting requests.
	ErrCircuitOpen = errors.New("circuit breaker is open")
	// ErrTooManyRequests is returned when the half-open trial quota is used up.
	ErrTooManyRequests = errors.New("too many requests")
)

// State is the breaker state.
type State int

const (
	StateClosed State = iota
	StateHalfOpen
	StateOpen
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateHalfOpen:
		return "half-open"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Settings configures breaker behavior. Zero values select the defaults.
type Settings struct {
	// FailureThreshold is the consecutive-failure count that opens the
	// circuit. Default 5.
	FailureThreshold uint32
	// Cooldown is how long the circuit stays open before admitting trial
	// requests. Default 30s.
	Cooldown time.Duration
	// TrialRequests is how many requests may run half-open; that many
	// consecutive successes close the circuit. Default 1.
	TrialRequests uint32
	// OnStateChange, if set, is called on every transition.
	OnStateChange func(name string, from, to State)
}

// Breaker is a circuit breaker. The zero value is not usable; construct
// with New.
type Breaker struct {
	name     string
	settings Settings

	mu           sync.Mutex
	state        State
	failures     uint32
	successes    uint32
	halfOpenRuns uint32
	openedAt     time.Time
}

// New creates a breaker with the given settings.
func New(name string, settings Settings) *Breaker {
	if settings.FailureThreshold == 0 {
		settings.FailureThreshold = 5
	}
	if settings.Cooldown == 0 {
		settings.Cooldown = 30 * time.Second
	}
	if settings.TrialRequests == 0 {
		settings.TrialRequests = 1
	}
	return &Breaker{name: name, settings: settings, state: StateClosed}
}

// Name returns the breaker's name.
func (b *Breaker) Name() string { return b.name }

// State returns the current state, accounting for cool-down expiry.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.currentState(time.Now())
}

// Execute runs req if the breaker admits it and records the outcome.
func (b *Breaker) Execute(req func() error) error {
	if err := b.before(); err != nil {
		return err
	}

	err := req()
	b.after(err == nil)
	return err
}

func (b *Breaker) before() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.currentState(time.Now()) {
	case StateOpen:
		return ErrCircuitOpen
	case StateHalfOpen:
		if b.halfOpenRuns >= b.settings.TrialRequests {
			return ErrTooManyRequests
		}
		b.halfOpenRuns++
	}
	return nil
}

func (b *Breaker) after(success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	state := b.currentState(now)

	if !success {
		b.failures++
		b.successes = 0
		if state == StateHalfOpen || b.failures >= b.settings.FailureThreshold {
			b.transition(StateOpen, now)
		}
		return
	}

	b.failures = 0
	if state == StateHalfOpen {
		b.successes++
		if b.successes >= b.settings.TrialRequests {
			b.transition(StateClosed, now)
		}
	}
}

// currentState resolves open → half-open once the cool-down has elapsed.
// Caller holds b.mu.
func (b *Breaker) currentState(now time.Time) State {
	if b.state == StateOpen && now.Sub(b.openedAt) >= b.settings.Cooldown {
		b.transition(StateHalfOpen, now)
	}
	return b.state
}

// transition changes state and resets counters. Caller holds b.mu.
func (b *Breaker) transition(next State, now time.Time) {
	if b.state == next {
		return
	}
	prev := b.state
	b.state = next
	b.failures = 0
	b.successes = 0
	b.halfOpenRuns = 0
	if next == StateOpen {
		b.openedAt = now
	}
	if b.settings.OnStateChange != nil {
		b.settings.OnStateChange(b.name, prev, next)
	}
}
