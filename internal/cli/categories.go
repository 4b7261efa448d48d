package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/angelmondragon/catalog-admin/internal/app"
)

func newCategoriesCommand(opts *rootOptions, run runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Inspect active categories",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List active categories and their size options",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(ctx context.Context, a *app.Application) error {
				list, err := a.Categories.Active(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if opts.json {
					return writeJSON(out, list)
				}
				tw := newTable(out)
				fmt.Fprintln(tw, "ID\tNAME\tSIZES")
				for _, c := range list {
					sizes := a.Categories.SizeOptions(c.CategoryName)
					label := "free text"
					if len(sizes) > 0 {
						label = strings.Join(sizes, " ")
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\n", c.CategoryID, c.CategoryName, label)
				}
				return tw.Flush()
			})
		},
	})
	return cmd
}
