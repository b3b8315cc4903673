package infra

import (
	"errors"
	"sync"
	"time"
)

// Circuit breaker guarding the TEF terminal bridge. When the terminal stops
// answering, card authorizations fast-fail instead of holding every checkout
// for the full HTTP timeout; cash and PIX sales keep flowing meanwhile.
//
// Closed: requests pass. Open: requests fail immediately. Half-open: one
// probe at a time until SuccessThreshold probes close it again.

// CBState is the breaker's current position.
type CBState int

const (
	CBClosed CBState = iota
	CBOpen
	CBHalfOpen
)

func (s CBState) String() string {
	switch s {
	case CBClosed:
		return "closed"
	case CBOpen:
		return "open"
	case CBHalfOpen:
		return "half-open"
	}
	return "unknown"
}

// ErrCircuitOpen is what callers get while the breaker is open.
var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitBreakerConfig struct {
	FailureThreshold int           // consecutive failures before tripping
	SuccessThreshold int           // half-open probes needed to close again
	OpenTimeout      time.Duration // cool-off before the first probe
}

// DefaultCBConfig matches the recovery behavior of the terminal bridge:
// it usually comes back within a minute of a restart.
func DefaultCBConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		OpenTimeout:      60 * time.Second,
	}
}

type CircuitBreaker struct {
	mu       sync.Mutex
	state    CBState
	falhas   int
	sucessos int
	abertoEm time.Time
	cfg      CircuitBreakerConfig
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	def := DefaultCBConfig()
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = def.FailureThreshold
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = def.SuccessThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = def.OpenTimeout
	}
	return &CircuitBreaker{state: CBClosed, cfg: cfg}
}

// State reports the current position, promoting open to half-open once the
// cool-off has elapsed. Exposed on /health.
func (cb *CircuitBreaker) State() CBState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.avancaSeExpirou()
	return cb.state
}

// Execute runs fn unless the breaker is open, and feeds the outcome back
// into the state machine.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	if cb.State() == CBOpen {
		return ErrCircuitOpen
	}

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	if err != nil {
		cb.registraFalha()
		return err
	}
	cb.registraSucesso()
	return nil
}

func (cb *CircuitBreaker) avancaSeExpirou() {
	if cb.state == CBOpen && time.Since(cb.abertoEm) >= cb.cfg.OpenTimeout {
		cb.state = CBHalfOpen
		cb.sucessos = 0
	}
}

func (cb *CircuitBreaker) registraFalha() {
	cb.falhas++
	cb.abertoEm = time.Now()

	switch cb.state {
	case CBClosed:
		if cb.falhas >= cb.cfg.FailureThreshold {
			cb.state = CBOpen
			cb.sucessos = 0
		}
	case CBHalfOpen:
		// probe failed, back to cool-off
		cb.state = CBOpen
		cb.falhas = 0
	}
}

func (cb *CircuitBreaker) registraSucesso() {
	switch cb.state {
	case CBClosed:
		cb.falhas = 0
	case CBHalfOpen:
		cb.sucessos++
		if cb.sucessos >= cb.cfg.SuccessThreshold {
			cb.state = CBClosed
			cb.falhas = 0
			cb.sucessos = 0
		}
	}
}
