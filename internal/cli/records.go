package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/angelmondragon/catalog-admin/internal/app"
	"github.com/angelmondragon/catalog-admin/internal/dashboard"
	"github.com/angelmondragon/catalog-admin/internal/records"
	"github.com/angelmondragon/catalog-admin/pkg/enums"
	"github.com/angelmondragon/catalog-admin/pkg/spreadsheet"
)

type recordCommandSpec[T any] struct {
	use   string
	short string
	pick  func(*app.Application) *dashboard.Dashboard[T]
	form  func(*pflag.FlagSet) func() (T, error)
}

func newRecordCommand[T any](spec recordCommandSpec[T], opts *rootOptions, run runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   spec.use,
		Short: spec.short,
	}
	cmd.AddCommand(
		newListCommand(spec, opts, run),
		newCreateCommand(spec, opts, run),
		newUpdateCommand(spec, opts, run),
		newDeleteCommand(spec, opts, run),
		newImportCommand(spec, opts, run),
		newExportCommand(spec, run),
	)
	return cmd
}

func newListCommand[T any](spec recordCommandSpec[T], opts *rootOptions, run runner) *cobra.Command {
	var q records.Query
	var order string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of " + spec.use,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			parsed, err := enums.ParseSortOrder(order)
			if err != nil {
				return err
			}
			q.SortOrder = parsed
			return run(cmd, func(ctx context.Context, a *app.Application) error {
				dash := spec.pick(a)
				if err := dash.Refresh(ctx); err != nil {
					return err
				}
				view, err := dash.View(q)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if opts.json {
					return writeJSON(out, view)
				}
				if err := writeRecords(out, dash.Schema(), view.Items); err != nil {
					return err
				}
				_, err = fmt.Fprintf(out, "page %d of %d (%d matching)\n", view.Page.Page, view.TotalPages, view.TotalFiltered)
				return err
			})
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&q.Search, "search", "", "case-insensitive search text")
	fs.StringVar(&q.Filter, "filter", "", "exact filter value")
	fs.StringVar(&q.SortField, "sort", "", "field to sort by")
	fs.StringVar(&order, "order", "asc", "sort order: asc or desc")
	fs.IntVar(&q.Page, "page", 1, "page number")
	fs.IntVar(&q.PageSize, "page-size", 0, "rows per page (0 uses the configured default)")
	return cmd
}

func newCreateCommand[T any](spec recordCommandSpec[T], opts *rootOptions, run runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create one record from flags",
		Args:  cobra.NoArgs,
	}
	build := spec.form(cmd.Flags())
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		rec, err := build()
		if err != nil {
			return err
		}
		return run(cmd, func(ctx context.Context, a *app.Application) error {
			dash := spec.pick(a)
			if err := dash.Create(ctx, rec); err != nil {
				return err
			}
			return report(cmd, opts, rec, "created "+dash.Schema().ID(rec))
		})
	}
	return cmd
}

func newUpdateCommand[T any](spec recordCommandSpec[T], opts *rootOptions, run runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace one record; every form flag is required",
		Args:  cobra.ExactArgs(1),
	}
	build := spec.form(cmd.Flags())
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		rec, err := build()
		if err != nil {
			return err
		}
		return run(cmd, func(ctx context.Context, a *app.Application) error {
			dash := spec.pick(a)
			if err := dash.Refresh(ctx); err != nil {
				return err
			}
			if err := dash.Update(ctx, args[0], rec); err != nil {
				return err
			}
			return report(cmd, opts, rec, "updated "+args[0])
		})
	}
	return cmd
}

func newDeleteCommand[T any](spec recordCommandSpec[T], opts *rootOptions, run runner) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete records by id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, a *app.Application) error {
				result, err := spec.pick(a).DeleteMany(ctx, args)
				out := cmd.OutOrStdout()
				if len(result.Results) > 0 {
					var werr error
					if opts.json {
						werr = writeJSON(out, result)
					} else {
						werr = writeDeleteReport(out, result)
					}
					if werr != nil {
						return werr
					}
				}
				return err
			})
		},
	}
}

func newImportCommand[T any](spec recordCommandSpec[T], opts *rootOptions, run runner) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Bulk create records from an .xlsx, .xls or .csv file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()
			return run(cmd, func(ctx context.Context, a *app.Application) error {
				count, err := spec.pick(a).Import(ctx, filepath.Base(args[0]), f)
				if err != nil {
					return err
				}
				return report(cmd, opts, map[string]int{"imported": count}, fmt.Sprintf("imported %d %s", count, spec.use))
			})
		},
	}
}

func newExportCommand[T any](spec recordCommandSpec[T], run runner) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write every record to an .xlsx or .csv file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := spreadsheet.ExportFormatFromFilename(args[0])
			if err != nil {
				return err
			}
			return run(cmd, func(ctx context.Context, a *app.Application) error {
				dash := spec.pick(a)
				if err := dash.Refresh(ctx); err != nil {
					return err
				}
				f, err := os.Create(args[0])
				if err != nil {
					return err
				}
				if err := dash.Export(f, format); err != nil {
					_ = f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "exported %d %s to %s\n", len(dash.Records()), spec.use, args[0])
				return err
			})
		},
	}
}

func report(cmd *cobra.Command, opts *rootOptions, payload any, msg string) error {
	if opts.json {
		return writeJSON(cmd.OutOrStdout(), payload)
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), msg)
	return err
}
