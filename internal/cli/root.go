// Package cli implements catalogctl, a command line front-end over the same dashboards
// the local API serves.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/angelmondragon/catalog-admin/internal/app"
	"github.com/angelmondragon/catalog-admin/internal/products"
	"github.com/angelmondragon/catalog-admin/internal/promotions"
)

// Bootstrap builds the application for one command invocation.
type Bootstrap func(ctx context.Context) (*app.Application, error)

type rootOptions struct {
	json bool
}

// NewRootCommand assembles the catalogctl command tree.
func NewRootCommand(boot Bootstrap) *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Manage catalog products, promotions and categories",
		Long:          "catalogctl lists, edits, deletes, imports and exports catalog records through the catalog API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&opts.json, "json", false, "print JSON instead of a table")

	run := func(cmd *cobra.Command, fn func(ctx context.Context, a *app.Application) error) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		a, err := boot(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()
		return fn(ctx, a)
	}

	root.AddCommand(
		newRecordCommand(recordCommandSpec[products.Product]{
			use:   "products",
			short: "Manage products",
			pick:  pickProducts,
			form:  bindProductForm,
		}, opts, run),
		newRecordCommand(recordCommandSpec[promotions.Promotion]{
			use:   "promotions",
			short: "Manage promotions",
			pick:  pickPromotions,
			form:  bindPromotionForm,
		}, opts, run),
		newCategoriesCommand(opts, run),
	)
	return root
}

// Execute runs catalogctl with the process arguments.
func Execute(ctx context.Context, boot Bootstrap) error {
	return NewRootCommand(boot).ExecuteContext(ctx)
}

type runner func(cmd *cobra.Command, fn func(ctx context.Context, a *app.Application) error) error
