package dashboard

import (
	"context"
	"fmt"
	"strconv"

	"webnotas/cmd/internal/domain/entity"
)

const viewJobs = "jobs"

var jobColumns = []string{"Job", "Company", "Status", "Documents", "Message"}

// JobMonitor lists the sync jobs. It is refreshed by the poller and after
// every sync request.
//
// Overlapping refreshes race: whichever response arrives last is rendered,
// even when it answers the older request. WithSequenceGuard turns that off.
type JobMonitor struct {
	*view

	api   JobAPI
	store *CompanyStore
}

func NewJobMonitor(api JobAPI, store *CompanyStore, opts ...ViewOption) *JobMonitor {
	return &JobMonitor{
		view:  newView(viewJobs, jobColumns, opts),
		api:   api,
		store: store,
	}
}

func (m *JobMonitor) Refresh(ctx context.Context) error {
	return m.load(ctx, func(ctx context.Context) (func(), error) {
		jobs, err := m.api.ListJobs(ctx)
		if err != nil {
			return nil, fmt.Errorf("load jobs: %w", err)
		}
		return func() {
			m.table.Replace(m.jobRows(jobs))
		}, nil
	})
}

// TriggerSync asks the upstream to sync a company and refreshes once. It does
// not wait for the job, progress shows up on later polls.
func (m *JobMonitor) TriggerSync(ctx context.Context, companyID entity.ID) error {
	if err := m.api.RequestSync(ctx, companyID); err != nil {
		return fmt.Errorf("request sync for company %s: %w", companyID, err)
	}
	return m.Refresh(ctx)
}

// jobRows resolves company names at render time, so rows built before the
// registry finished loading show raw ids.
func (m *JobMonitor) jobRows(jobs []entity.Job) []Row {
	rows := make([]Row, 0, len(jobs))
	for _, j := range jobs {
		rows = append(rows, Row{
			Cells: []string{
				"#" + j.ID.String(),
				m.store.DisplayName(j.CompanyID),
				string(j.Status),
				strconv.Itoa(j.TotalDocuments),
				j.Message,
			},
			Class: "status-" + string(j.Status),
		})
	}
	return rows
}
