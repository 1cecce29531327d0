package testutil

import (
	"context"
	"sync"
)

// Printer records every job it is given.
type Printer struct {
	mu   sync.Mutex
	Jobs [][]byte
	Err  error
}

func (p *Printer) Print(_ context.Context, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.Jobs = append(p.Jobs, append([]byte(nil), data...))
	return nil
}

func (p *Printer) Kind() string      { return "network" }
func (p *Printer) IsConnected() bool { return true }
