package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wms-platform/wms-web/internal/cli/output"
	"github.com/wms-platform/wms-web/pkg/wmsapi"
)

func newInventoryCommand(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "inventory",
		Aliases: []string{"inv", "stock"},
		Short:   "Query and move stock",
	}

	var (
		paging pageFlags
		query  wmsapi.InventoryQuery
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List inventory records",
		Args:  cobra.NoArgs,
	}
	paging.register(list.Flags())
	list.Flags().Int64Var(&query.WarehouseID, "warehouse", 0, "warehouse ID")
	list.Flags().Int64Var(&query.LocationID, "location", 0, "location ID")
	list.Flags().Int64Var(&query.ProductSkuID, "sku-id", 0, "product SKU ID")
	list.Flags().StringVar(&query.SkuCode, "sku", "", "SKU code")
	list.Flags().StringVar(&query.BatchNo, "batch", "", "batch number")
	list.Flags().Bool("in-stock", false, "only records with (true) or without (false) stock")
	list.RunE = a.authed(func(ctx context.Context, _ []string) error {
		query.PageQuery = paging.query()
		query.HasStock = optionalBool(list, "in-stock")
		page, err := a.api.Inventory.List(ctx, &query)
		if err != nil {
			return err
		}
		return printPage(a, page, inventoryRows)
	})

	get := &cobra.Command{
		Use:   "get ID",
		Short: "Show an inventory record",
		Args:  cobra.ExactArgs(1),
		RunE: a.authed(func(ctx context.Context, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			inv, err := a.api.Inventory.Get(ctx, id)
			if err != nil {
				return err
			}
			return printOne(a, inv, inventoryRows)
		}),
	}

	var adjustReq wmsapi.AdjustRequest
	adjust := &cobra.Command{
		Use:   "adjust ID --quantity N --reason TEXT",
		Short: "Set the quantity of an inventory record",
		Args:  cobra.ExactArgs(1),
		RunE: a.authed(func(ctx context.Context, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.validateInput(&adjustReq); err != nil {
				return err
			}
			if err := a.api.Inventory.Adjust(ctx, id, &adjustReq); err != nil {
				return err
			}
			a.printer.Message("Inventory %d adjusted to %d", id, adjustReq.Quantity)
			return nil
		}),
	}
	adjust.Flags().Int64Var(&adjustReq.Quantity, "quantity", 0, "new quantity")
	adjust.Flags().StringVar(&adjustReq.Reason, "reason", "", "reason for the adjustment")

	var transferReq wmsapi.TransferRequest
	transfer := &cobra.Command{
		Use:   "transfer ID --to LOCATION --quantity N --reason TEXT",
		Short: "Move stock to another location",
		Args:  cobra.ExactArgs(1),
		RunE: a.authed(func(ctx context.Context, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.validateInput(&transferReq); err != nil {
				return err
			}
			if err := a.api.Inventory.Transfer(ctx, id, &transferReq); err != nil {
				return err
			}
			a.printer.Message("Moved %d from inventory %d to location %d", transferReq.Quantity, id, transferReq.ToLocationID)
			return nil
		}),
	}
	transfer.Flags().Int64Var(&transferReq.ToLocationID, "to", 0, "destination location ID")
	transfer.Flags().Int64Var(&transferReq.Quantity, "quantity", 0, "quantity to move")
	transfer.Flags().StringVar(&transferReq.Reason, "reason", "", "reason for the transfer")

	var (
		txPaging pageFlags
		txQuery  wmsapi.TransactionQuery
	)
	transactions := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "Show the stock movement log",
		Args:    cobra.NoArgs,
		RunE: a.authed(func(ctx context.Context, _ []string) error {
			txQuery.PageQuery = txPaging.query()
			txs, err := a.api.Inventory.Transactions(ctx, &txQuery)
			if err != nil {
				return err
			}
			return a.printer.Print(txs, func() *output.Rows {
				rows := output.NewRows("ID", "TIME", "TYPE", "SKU", "LOCATION", "CHANGE", "AFTER", "ORDER")
				for _, tx := range txs {
					rows.Add(tx.ID, tx.TransactionTime, tx.TransactionTypeName, tx.SkuCode, tx.LocationCode,
						fmt.Sprintf("%+d", tx.QuantityChange), tx.QuantityAfter, orDash(tx.RelatedOrderNo))
				}
				return rows
			})
		}),
	}
	txPaging.register(transactions.Flags())
	transactions.Flags().Int64Var(&txQuery.ProductSkuID, "sku-id", 0, "product SKU ID")
	transactions.Flags().Int64Var(&txQuery.WarehouseID, "warehouse", 0, "warehouse ID")
	transactions.Flags().Int64Var(&txQuery.LocationID, "location", 0, "location ID")
	transactions.Flags().IntVar(&txQuery.TransactionType, "type", 0, "1 inbound, 2 outbound, 3 adjust, 4 transfer")

	var statsWarehouse int64
	stats := &cobra.Command{
		Use:   "stats",
		Short: "Summarize stock per warehouse",
		Args:  cobra.NoArgs,
		RunE: a.authed(func(ctx context.Context, _ []string) error {
			s, err := a.api.Inventory.Stats(ctx, statsWarehouse)
			if err != nil {
				return err
			}
			if err := a.printer.Print(s, func() *output.Rows {
				rows := output.NewRows("WAREHOUSE", "PRODUCTS", "QUANTITY", "VALUE")
				for _, w := range s.WarehouseStats {
					rows.Add(w.WarehouseName, w.ProductCount, w.TotalQuantity, fmt.Sprintf("%.2f", w.TotalValue))
				}
				return rows
			}); err != nil {
				return err
			}
			a.printer.Message("%d products, %d units, value %.2f", s.TotalProducts, s.TotalQuantity, s.TotalValue)
			return nil
		}),
	}
	stats.Flags().Int64Var(&statsWarehouse, "warehouse", 0, "limit to one warehouse")

	cmd.AddCommand(list, get, adjust, transfer, transactions, stats)
	return cmd
}

func inventoryRows(items []wmsapi.Inventory) *output.Rows {
	rows := output.NewRows("ID", "WAREHOUSE", "LOCATION", "SKU", "PRODUCT", "BATCH", "QTY", "LOCKED", "AVAILABLE")
	for _, inv := range items {
		rows.Add(inv.ID, inv.WarehouseName, inv.LocationCode, inv.SkuCode, inv.ProductName, orDash(inv.BatchNo),
			inv.Quantity, inv.LockedQuantity, inv.AvailableQuantity)
	}
	return rows
}
