package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/angelmondragon/catalog-admin/internal/dashboard"
	"github.com/angelmondragon/catalog-admin/internal/records"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeRecords prints one row per record with the schema's columns as the header.
func writeRecords[T any](w io.Writer, schema records.Schema[T], items []T) error {
	tw := newTable(w)
	fmt.Fprintln(tw, strings.ToUpper(strings.Join(schema.FieldNames(), "\t")))
	for _, rec := range items {
		cells := make([]string, len(schema.Fields))
		for i, f := range schema.Fields {
			cells[i] = f.String(rec)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func writeDeleteReport(w io.Writer, report dashboard.DeleteReport) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tRESULT\tERROR")
	for _, res := range report.Results {
		status := "deleted"
		if !res.OK {
			status = "failed"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", res.ID, status, res.Error)
	}
	return tw.Flush()
}
