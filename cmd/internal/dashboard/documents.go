package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"webnotas/cmd/internal/domain/entity"
	"webnotas/cmd/internal/utils"
)

const viewDocuments = "documents"

var documentColumns = []string{"Model", "Direction", "Access key", "Issued", "Amount", "XML"}

// ErrUnknownCompany is returned when a drill-down is opened for a company
// the store does not hold, typically before the registry has loaded.
var ErrUnknownCompany = errors.New("company not loaded")

// DocumentView shows the documents of one company. It is opened on demand
// and never polled.
type DocumentView struct {
	*view

	api   DocumentAPI
	store *CompanyStore

	mu       sync.RWMutex
	selected entity.ID
	header   string
}

func NewDocumentView(api DocumentAPI, store *CompanyStore, opts ...ViewOption) *DocumentView {
	return &DocumentView{
		view:  newView(viewDocuments, documentColumns, opts),
		api:   api,
		store: store,
	}
}

// Open selects a company and loads all its documents. The header is set
// before the fetch and stays set if the fetch fails.
func (v *DocumentView) Open(ctx context.Context, companyID entity.ID) error {
	company, ok := v.store.Lookup(companyID)
	if !ok {
		return fmt.Errorf("open documents for company %s: %w", companyID, ErrUnknownCompany)
	}

	v.mu.Lock()
	v.selected = companyID
	v.header = fmt.Sprintf("Company: %s (%s)", company.Name, utils.FormatCNPJ(company.CNPJ))
	v.mu.Unlock()

	return v.load(ctx, func(ctx context.Context) (func(), error) {
		docs, err := v.api.ListDocuments(ctx, companyID)
		if err != nil {
			return nil, fmt.Errorf("load documents for company %s: %w", companyID, err)
		}
		return func() {
			v.table.Replace(documentRows(docs))
		}, nil
	})
}

func (v *DocumentView) Header() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.header
}

// Selected returns the company the view was last opened for.
func (v *DocumentView) Selected() (entity.ID, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.selected, !v.selected.IsZero()
}

func documentRows(docs []entity.Document) []Row {
	rows := make([]Row, 0, len(docs))
	for _, d := range docs {
		rows = append(rows, Row{
			Cells: []string{
				d.Model,
				string(d.Direction),
				d.Chave,
				d.IssueDate,
				d.FormattedAmount(),
				d.XMLPath,
			},
			Class: "direction-" + string(d.Direction),
			Link:  d.XMLPath,
		})
	}
	return rows
}
