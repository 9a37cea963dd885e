package dashboard

import (
	"context"
	"errors"
	"fmt"

	"webnotas/cmd/internal/domain/entity"
)

var (
	ErrUnknownAction  = errors.New("unknown row action")
	ErrMissingCompany = errors.New("row action without company id")
)

// ActionFunc is what a row action does once it is clicked.
type ActionFunc func(ctx context.Context, companyID entity.ID) error

// Dispatcher maps the role carried by a clicked row action to one of a fixed
// set of actions. The company id comes from the row itself, read at click
// time, so a table re-rendered between render and click is not a problem.
type Dispatcher struct {
	actions map[Role]ActionFunc
}

func NewDispatcher(jobs *JobMonitor, docs *DocumentView) *Dispatcher {
	return &Dispatcher{
		actions: map[Role]ActionFunc{
			RoleSync:      jobs.TriggerSync,
			RoleDocuments: docs.Open,
		},
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, role Role, companyID entity.ID) error {
	action, ok := d.actions[role]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, role)
	}
	if companyID.IsZero() {
		return ErrMissingCompany
	}
	return action(ctx, companyID)
}
