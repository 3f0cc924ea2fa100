package litdoc

import (
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps concurrent conversions.
	MaxPoolSize = 16
)

// ConverterPool hands out Converters to at most size concurrent users.
// Converters are created lazily on first acquire with the pool's options.
type ConverterPool struct {
	size    int
	opts    []Option
	sem     chan *Converter
	mu      sync.Mutex
	created int
	closed  bool
}

// NewConverterPool creates a pool with capacity for n Converters.
// Converters are built when acquired, not at pool creation.
func NewConverterPool(n int, opts ...Option) *ConverterPool {
	if n < 1 {
		n = 1
	}
	return &ConverterPool{
		size: n,
		opts: opts,
		sem:  make(chan *Converter, n),
	}
}

// Acquire gets a Converter from the pool, creating one if capacity allows.
// Blocks while all Converters are in use. A creation error frees the slot.
func (p *ConverterPool) Acquire() (*Converter, error) {
	// Try to get an idle Converter (non-blocking)
	select {
	case conv := <-p.sem:
		return conv, nil
	default:
	}

	// Check if we can create a new Converter
	p.mu.Lock()
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		// Create outside the lock
		conv, err := NewConverter(p.opts...)
		if err != nil {
			p.mu.Lock()
			p.created--
			p.mu.Unlock()
			return nil, err
		}
		return conv, nil
	}
	p.mu.Unlock()

	// All Converters created, wait for one to be released
	return <-p.sem, nil
}

// Release returns a Converter to the pool.
// The lock is released before sending to avoid deadlock when the channel is full.
func (p *ConverterPool) Release(conv *Converter) {
	if conv == nil {
		return
	}
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	p.sem <- conv
}

// Close marks the pool closed; later releases are dropped.
func (p *ConverterPool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
}

// Size returns the pool capacity.
func (p *ConverterPool) Size() int {
	return p.size
}

// ResolvePoolSize determines the pool size.
// Priority: explicit workers > GOMAXPROCS (adjusted by automaxprocs in containers).
func ResolvePoolSize(workers int) int {
	// Explicit value takes priority
	if workers > 0 {
		return min(workers, MaxPoolSize)
	}

	// Auto-calculate based on GOMAXPROCS
	return min(max(runtime.GOMAXPROCS(0), MinPoolSize), MaxPoolSize)
}
