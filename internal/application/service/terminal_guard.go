package service

import (
	"sync"

	"github.com/sangkips/scango-api/pkg/apperror"
)

// TerminalGuard makes each staff terminal process one scan at a time.
// A scan that arrives while its terminal is busy is rejected, not queued.
type TerminalGuard struct {
	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewTerminalGuard creates a new terminal guard
func NewTerminalGuard() *TerminalGuard {
	return &TerminalGuard{inFlight: make(map[string]struct{})}
}

// Acquire marks terminalID busy. The returned release must be called when the scan is done.
func (g *TerminalGuard) Acquire(terminalID string) (release func(), err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.inFlight[terminalID]; busy {
		return nil, apperror.ErrTerminalBusy
	}
	g.inFlight[terminalID] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.inFlight, terminalID)
			g.mu.Unlock()
		})
	}, nil
}

// Busy reports whether terminalID has a scan in flight
func (g *TerminalGuard) Busy(terminalID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, busy := g.inFlight[terminalID]
	return busy
}
