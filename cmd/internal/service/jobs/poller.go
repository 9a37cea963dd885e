package jobs

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/labstack/gommon/log"

	"webnotas/cmd/internal/metrics"
)

var (
	ErrPollerRunning   = errors.New("poller already running")
	ErrInvalidInterval = errors.New("poll interval must be positive")
)

// Task is one unit of periodic work.
type Task func(ctx context.Context) error

// Poller runs a Task on a fixed interval until stopped. Every tick runs in its
// own goroutine, so a slow tick never delays the next one and ticks may overlap.
// A failing tick is logged and the loop keeps going.
type Poller struct {
	name     string
	interval time.Duration
	task     Task
	metrics  *metrics.Metrics

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	wg     sync.WaitGroup
}

func NewPoller(name string, interval time.Duration, task Task, m *metrics.Metrics) *Poller {
	return &Poller{
		name:     name,
		interval: interval,
		task:     task,
		metrics:  m,
	}
}

// Start launches the loop. The first tick fires one interval after Start.
// Cancelling ctx stops the loop just like Stop does.
func (p *Poller) Start(ctx context.Context) error {
	if p.interval <= 0 {
		return ErrInvalidInterval
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.runningLocked() {
		return ErrPollerRunning
	}
	// A loop that ended because its parent context was cancelled still needs
	// its ticks drained before the WaitGroup is reused.
	p.stopLocked()

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})

	p.wg.Add(1)
	go p.loop(ctx, p.done)

	log.Infof("%s poller started, interval %s", p.name, p.interval)
	return nil
}

// Stop cancels the loop and any in-flight tick, then waits for them to return.
// Stopping a poller that is not running is a no-op.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.runningLocked()
}

func (p *Poller) runningLocked() bool {
	if p.cancel == nil {
		return false
	}
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}

func (p *Poller) stopLocked() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	p.wg.Wait()
	p.cancel = nil
	p.done = nil
}

func (p *Poller) loop(ctx context.Context, done chan struct{}) {
	defer p.wg.Done()
	defer close(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Infof("Stopping %s poller...", p.name)
			return
		case <-ticker.C:
			p.wg.Add(1)
			go p.tick(ctx)
		}
	}
}

func (p *Poller) tick(ctx context.Context) {
	defer p.wg.Done()

	err := p.task(ctx)
	p.metrics.ObserveTick(p.name, err)
	if err != nil {
		log.Errorf("%s poller: tick failed: %v", p.name, err)
	}
}
