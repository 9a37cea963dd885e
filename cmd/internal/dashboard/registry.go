package dashboard

import (
	"context"
	"fmt"

	"webnotas/cmd/internal/domain/entity"
)

const viewCompanies = "companies"

var companyColumns = []string{"ID", "Name", "CNPJ", "Strategy", "Actions"}

// CompanyRegistry lists the companies and owns the reloads of the shared
// CompanyStore.
type CompanyRegistry struct {
	*view

	api      CompanyAPI
	store    *CompanyStore
	form     *Form
	jobs     Refresher
	notifier Notifier
}

func NewCompanyRegistry(api CompanyAPI, store *CompanyStore, jobs Refresher, notifier Notifier, opts ...ViewOption) *CompanyRegistry {
	return &CompanyRegistry{
		view:     newView(viewCompanies, companyColumns, opts),
		api:      api,
		store:    store,
		form:     NewForm(),
		jobs:     jobs,
		notifier: notifier,
	}
}

func (r *CompanyRegistry) Form() *Form {
	return r.form
}

// Refresh reloads every company, replacing both the store and the table.
// It has to complete before anything resolves company ids, otherwise those
// lookups fall back to raw ids.
func (r *CompanyRegistry) Refresh(ctx context.Context) error {
	return r.load(ctx, func(ctx context.Context) (func(), error) {
		companies, err := r.api.ListCompanies(ctx)
		if err != nil {
			return nil, fmt.Errorf("load companies: %w", err)
		}
		return func() {
			r.store.Replace(companies)
			r.table.Replace(companyRows(companies))
		}, nil
	})
}

// Submit creates a company from the raw form fields. On success the form is
// cleared and the registry then the job monitor are reloaded, since the new
// company may already have a job. Any failure is alerted and returned, and
// the form keeps the submitted values.
func (r *CompanyRegistry) Submit(ctx context.Context, fields map[string]string) error {
	r.form.Set(fields)

	if err := r.submit(ctx, fields); err != nil {
		if r.notifier != nil {
			r.notifier.Alert(Message(err))
		}
		return err
	}
	return nil
}

func (r *CompanyRegistry) submit(ctx context.Context, fields map[string]string) error {
	if _, err := r.api.CreateCompany(ctx, fields); err != nil {
		return fmt.Errorf("create company: %w", err)
	}
	r.form.Reset()

	if err := r.Refresh(ctx); err != nil {
		return err
	}
	if r.jobs == nil {
		return nil
	}
	return r.jobs.Refresh(ctx)
}

func companyRows(companies []entity.Company) []Row {
	rows := make([]Row, 0, len(companies))
	for _, c := range companies {
		rows = append(rows, Row{
			Cells: []string{c.ID.String(), c.Name, c.CNPJ, c.Strategy},
			Actions: []RowAction{
				{Role: RoleSync, Label: "Sync now", CompanyID: c.ID},
				{Role: RoleDocuments, Label: "View documents", CompanyID: c.ID},
			},
		})
	}
	return rows
}
