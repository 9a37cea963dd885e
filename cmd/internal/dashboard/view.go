package dashboard

import (
	"context"
	"sync/atomic"

	"webnotas/cmd/internal/metrics"
)

// LoadState is the implicit state machine every view goes through:
// Unloaded -> Loading -> Loaded on success, Loading -> Unloaded on failure.
type LoadState int32

const (
	Unloaded LoadState = iota
	Loading
	Loaded
)

func (s LoadState) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	default:
		return "unloaded"
	}
}

type ViewOption func(*viewOptions)

type viewOptions struct {
	guard   bool
	metrics *metrics.Metrics
}

// WithSequenceGuard drops responses that arrive after a newer request was
// issued by the same view.
func WithSequenceGuard() ViewOption {
	return func(o *viewOptions) {
		o.guard = true
	}
}

func WithMetrics(m *metrics.Metrics) ViewOption {
	return func(o *viewOptions) {
		o.metrics = m
	}
}

// view holds what the three views have in common: a table, a load state and
// the refresh cycle around one upstream call.
type view struct {
	name    string
	table   *Table
	state   atomic.Int32
	guard   *Sequencer
	metrics *metrics.Metrics
}

func newView(name string, columns []string, opts []ViewOption) *view {
	var o viewOptions
	for _, opt := range opts {
		opt(&o)
	}

	v := &view{
		name:    name,
		table:   NewTable(columns...),
		metrics: o.metrics,
	}
	if o.guard {
		v.guard = NewSequencer()
	}
	return v
}

func (v *view) Table() *Table {
	return v.table
}

func (v *view) State() LoadState {
	return LoadState(v.state.Load())
}

// load runs one cycle. fetch does the network call and returns a commit func
// publishing its result; commit runs only on success. On failure the table is
// emptied and the error handed back to the caller.
func (v *view) load(ctx context.Context, fetch func(context.Context) (func(), error)) error {
	tracker := v.metrics.Track(v.name)
	seq := v.guard.Next()
	v.state.Store(int32(Loading))

	commit, err := fetch(ctx)
	applied := v.guard.Apply(seq, func() {
		if err != nil {
			v.table.Clear()
			v.state.Store(int32(Unloaded))
			return
		}
		commit()
		v.state.Store(int32(Loaded))
	})
	if !applied {
		v.metrics.StaleDropped(v.name)
	}
	return tracker.End(err)
}
