package main

import (
	"context"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"webnotas/cmd/internal/dashboard"
	"webnotas/cmd/internal/domain/entity"
)

// snapshot loads the dashboard once and prints its tables. Row actions are
// not printable and are left out.
func snapshot(ctx context.Context, w io.Writer, board *dashboard.Dashboard, companyID string) error {
	if err := board.Load(ctx); err != nil {
		return err
	}

	fmt.Fprintln(w, "=== Companies ===")
	if err := printTable(w, board.Registry.Table()); err != nil {
		return err
	}

	fmt.Fprintln(w, "\n=== Jobs ===")
	if err := printTable(w, board.Jobs.Table()); err != nil {
		return err
	}

	if companyID == "" {
		return nil
	}
	if err := board.Documents.Open(ctx, entity.ID(companyID)); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n=== Documents ===\n%s\n", board.Documents.Header())
	return printTable(w, board.Documents.Table())
}

func printTable(w io.Writer, t *dashboard.Table) error {
	columns := t.Columns()
	// Companies carry a trailing actions column with no printable cells.
	width := len(columns)
	rows := t.Rows()
	if len(rows) > 0 && len(rows[0].Cells) < width {
		width = len(rows[0].Cells)
	}

	table := tablewriter.NewWriter(w)
	table.Header(toAny(columns[:width])...)
	for _, row := range rows {
		if err := table.Append(toAny(row.Cells)...); err != nil {
			return err
		}
	}
	return table.Render()
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
