package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/wms-platform/wms-web/internal/cli/output"
	"github.com/wms-platform/wms-web/pkg/wmsapi"
)

func newProductsCommand(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product", "sku"},
		Short:   "Manage product SKUs",
	}

	var (
		paging pageFlags
		query  wmsapi.ProductQuery
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List product SKUs",
		Args:  cobra.NoArgs,
	}
	paging.register(list.Flags())
	list.Flags().StringVar(&query.SkuCode, "sku", "", "SKU code")
	list.Flags().StringVar(&query.Name, "name", "", "product name")
	list.Flags().Int64Var(&query.SupplierID, "supplier", 0, "supplier ID")
	list.Flags().Bool("batch-managed", false, "only batch managed (true) or unmanaged (false) SKUs")
	list.RunE = a.authed(func(ctx context.Context, _ []string) error {
		query.PageQuery = paging.query()
		query.IsBatchManaged = optionalBool(list, "batch-managed")
		skus, err := a.api.Products.List(ctx, &query)
		if err != nil {
			return err
		}
		return a.printer.Print(skus, func() *output.Rows { return productRows(skus) })
	})

	get := &cobra.Command{
		Use:   "get ID",
		Short: "Show a product SKU",
		Args:  cobra.ExactArgs(1),
		RunE: a.authed(func(ctx context.Context, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			sku, err := a.api.Products.Get(ctx, id)
			if err != nil {
				return err
			}
			return printOne(a, sku, productRows)
		}),
	}

	var file string
	create := &cobra.Command{
		Use:   "create -f FILE",
		Short: "Create a product SKU",
		Args:  cobra.NoArgs,
		RunE: a.authed(func(ctx context.Context, _ []string) error {
			var form wmsapi.ProductForm
			if err := a.readInput(file, &form); err != nil {
				return err
			}
			sku, err := a.api.Products.Create(ctx, &form)
			if err != nil {
				return err
			}
			return printOne(a, sku, productRows)
		}),
	}
	fileFlag(create, &file)

	update := &cobra.Command{
		Use:   "update ID -f FILE",
		Short: "Update a product SKU",
		Args:  cobra.ExactArgs(1),
		RunE: a.authed(func(ctx context.Context, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var form wmsapi.ProductForm
			if err := a.readInput(file, &form); err != nil {
				return err
			}
			sku, err := a.api.Products.Update(ctx, id, &form)
			if err != nil {
				return err
			}
			return printOne(a, sku, productRows)
		}),
	}
	fileFlag(update, &file)

	var yes bool
	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a product SKU",
		Args:  cobra.ExactArgs(1),
		RunE: a.authed(func(ctx context.Context, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ok, err := a.confirm(yes, "Delete product %d", id)
			if err != nil || !ok {
				return err
			}
			return a.api.Products.Delete(ctx, id)
		}),
	}
	yesFlag(del, &yes)

	var warehouseID int64
	stock := &cobra.Command{
		Use:   "inventory ID",
		Short: "Show where a SKU is stocked",
		Args:  cobra.ExactArgs(1),
		RunE: a.authed(func(ctx context.Context, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			stock, err := a.api.Products.Inventory(ctx, id, warehouseID)
			if err != nil {
				return err
			}
			return a.printer.Print(stock, func() *output.Rows {
				rows := output.NewRows("WAREHOUSE", "LOCATION", "BATCH", "QTY", "LOCKED")
				for _, w := range stock {
					for _, l := range w.Locations {
						rows.Add(w.WarehouseName, l.LocationCode, orDash(l.BatchNo), l.Quantity, l.LockedQuantity)
					}
				}
				return rows
			})
		}),
	}
	stock.Flags().Int64Var(&warehouseID, "warehouse", 0, "limit to one warehouse")

	cmd.AddCommand(list, get, create, update, del, stock)
	return cmd
}

func productRows(items []wmsapi.ProductSku) *output.Rows {
	rows := output.NewRows("ID", "SKU", "NAME", "SPEC", "SUPPLIER", "BATCH", "EXPIRY")
	for _, p := range items {
		rows.Add(p.ID, p.SkuCode, p.Name, orDash(p.Specification), orDash(p.SupplierName),
			yesNo(p.IsBatchManaged), yesNo(p.IsExpiryManaged))
	}
	return rows
}
