package dashboard

import (
	"sync"

	"webnotas/cmd/internal/domain/entity"
)

// Role identifies what a row action does. The set is closed, see Dispatcher.
type Role string

const (
	RoleSync      Role = "sync"
	RoleDocuments Role = "docs"
)

// RowAction is a button rendered on a row. It carries the company id as data
// instead of a bound callback, so it stays valid across full re-renders.
type RowAction struct {
	Role      Role
	Label     string
	CompanyID entity.ID
}

type Row struct {
	Cells   []string
	Actions []RowAction
	// Class is a styling hint, e.g. the job status.
	Class string
	// Link is an opaque locator the renderer may turn into a download link.
	Link string
}

// Table is the rendered state of one view. Rows are only ever replaced as a
// whole, there is no per-row identity.
type Table struct {
	columns []string

	mu   sync.RWMutex
	rows []Row
}

func NewTable(columns ...string) *Table {
	return &Table{columns: columns}
}

func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

func (t *Table) Replace(rows []Row) {
	t.mu.Lock()
	t.rows = rows
	t.mu.Unlock()
}

func (t *Table) Clear() {
	t.Replace(nil)
}

// Rows returns a copy that callers may keep while the table is re-rendered.
func (t *Table) Rows() []Row {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]Row(nil), t.rows...)
}

func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}
