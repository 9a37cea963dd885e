package dashboard

import (
	"context"
	"errors"
	"time"

	"webnotas/cmd/internal/metrics"
	"webnotas/cmd/internal/service/jobs"
)

// DefaultPollInterval is how often the job monitor refreshes on its own.
const DefaultPollInterval = 3 * time.Second

type Options struct {
	PollInterval  time.Duration
	SequenceGuard bool
	Metrics       *metrics.Metrics
}

// Dashboard is the process-wide state of one dashboard session: the shared
// company store, the three views and the job monitor poller.
type Dashboard struct {
	Companies  *CompanyStore
	Alerts     *AlertBox
	Registry   *CompanyRegistry
	Jobs       *JobMonitor
	Documents  *DocumentView
	Dispatcher *Dispatcher

	poller *jobs.Poller
}

func New(api API, opts Options) *Dashboard {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}

	viewOpts := []ViewOption{WithMetrics(opts.Metrics)}
	if opts.SequenceGuard {
		viewOpts = append(viewOpts, WithSequenceGuard())
	}

	store := NewCompanyStore()
	alerts := NewAlertBox()
	jobMonitor := NewJobMonitor(api, store, viewOpts...)
	documents := NewDocumentView(api, store, viewOpts...)

	return &Dashboard{
		Companies:  store,
		Alerts:     alerts,
		Registry:   NewCompanyRegistry(api, store, jobMonitor, alerts, viewOpts...),
		Jobs:       jobMonitor,
		Documents:  documents,
		Dispatcher: NewDispatcher(jobMonitor, documents),
		poller:     jobs.NewPoller(viewJobs, opts.PollInterval, jobMonitor.Refresh, opts.Metrics),
	}
}

// Load fills the registry and then the job monitor. The order matters: job
// rows resolve company names through the store the registry fills.
func (d *Dashboard) Load(ctx context.Context) error {
	var errs []error
	if err := d.Registry.Refresh(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := d.Jobs.Refresh(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Bootstrap loads the initial state and starts polling the job monitor. The
// poller is started even when the initial loads fail, the load errors are
// returned for the caller to report.
func (d *Dashboard) Bootstrap(ctx context.Context) error {
	loadErr := d.Load(ctx)
	if err := d.poller.Start(ctx); err != nil {
		return errors.Join(loadErr, err)
	}
	return loadErr
}

func (d *Dashboard) Polling() bool {
	return d.poller.Running()
}

// Close stops the poller and waits for in-flight ticks.
func (d *Dashboard) Close() {
	d.poller.Stop()
}
