package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wms-platform/wms-web/internal/cli/output"
	"github.com/wms-platform/wms-web/pkg/wmsapi"
)

func newWarehousesCommand(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "warehouses",
		Aliases: []string{"warehouse", "wh"},
		Short:   "Manage warehouses",
	}

	var (
		paging  pageFlags
		keyword string
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List warehouses",
		Args:  cobra.NoArgs,
	}
	paging.register(list.Flags())
	list.Flags().StringVar(&keyword, "keyword", "", "match name or code")
	list.Flags().Bool("enabled", false, "only enabled (true) or disabled (false) warehouses")
	list.RunE = a.authed(func(ctx context.Context, _ []string) error {
		page, err := a.api.Warehouses.List(ctx, &wmsapi.WarehouseQuery{
			PageQuery: paging.query(),
			Keyword:   keyword,
			IsEnabled: optionalBool(list, "enabled"),
		})
		if err != nil {
			return err
		}
		return printPage(a, page, warehouseRows)
	})

	get := &cobra.Command{
		Use:   "get ID",
		Short: "Show a warehouse",
		Args:  cobra.ExactArgs(1),
		RunE: a.authed(func(ctx context.Context, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			w, err := a.api.Warehouses.Get(ctx, id)
			if err != nil {
				return err
			}
			return a.printWarehouse(w)
		}),
	}

	var file string
	create := &cobra.Command{
		Use:   "create -f FILE",
		Short: "Create a warehouse",
		Args:  cobra.NoArgs,
		RunE: a.authed(func(ctx context.Context, _ []string) error {
			var form wmsapi.WarehouseForm
			if err := a.readInput(file, &form); err != nil {
				return err
			}
			w, err := a.api.Warehouses.Create(ctx, &form)
			if err != nil {
				return err
			}
			return a.printWarehouse(w)
		}),
	}
	fileFlag(create, &file)

	update := &cobra.Command{
		Use:   "update ID -f FILE",
		Short: "Update a warehouse",
		Args:  cobra.ExactArgs(1),
		RunE: a.authed(func(ctx context.Context, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var form wmsapi.WarehouseForm
			if err := a.readInput(file, &form); err != nil {
				return err
			}
			w, err := a.api.Warehouses.Update(ctx, id, &form)
			if err != nil {
				return err
			}
			return a.printWarehouse(w)
		}),
	}
	fileFlag(update, &file)

	var yes bool
	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a warehouse",
		Args:  cobra.ExactArgs(1),
		RunE: a.authed(func(ctx context.Context, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ok, err := a.confirm(yes, "Delete warehouse %d", id)
			if err != nil || !ok {
				return err
			}
			return a.api.Warehouses.Delete(ctx, id)
		}),
	}
	yesFlag(del, &yes)

	status := &cobra.Command{
		Use:   "status ID enable|disable",
		Short: "Enable or disable a warehouse",
		Args:  cobra.ExactArgs(2),
		RunE: a.authed(func(ctx context.Context, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			enabled, err := parseState(args[1])
			if err != nil {
				return err
			}
			w, err := a.api.Warehouses.SetStatus(ctx, id, enabled)
			if err != nil {
				return err
			}
			return a.printWarehouse(w)
		}),
	}

	stats := &cobra.Command{
		Use:   "stats ID",
		Short: "Show location and order counters of a warehouse",
		Args:  cobra.ExactArgs(1),
		RunE: a.authed(func(ctx context.Context, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := a.api.Warehouses.Stats(ctx, id)
			if err != nil {
				return err
			}
			return a.printer.Print(s, func() *output.Rows {
				return output.NewRows("STAT", "VALUE").
					Add("Locations", s.TotalLocations).
					Add("Occupied locations", s.OccupiedLocations).
					Add("Inventory", s.TotalInventory).
					Add("Value", fmt.Sprintf("%.2f", s.TotalValue)).
					Add("Inbound orders", s.InboundOrders).
					Add("Outbound orders", s.OutboundOrders)
			})
		}),
	}

	cmd.AddCommand(list, get, create, update, del, status, stats)
	return cmd
}

func warehouseRows(items []wmsapi.Warehouse) *output.Rows {
	rows := output.NewRows("ID", "CODE", "NAME", "ENABLED", "CAPACITY", "CREATED")
	for _, w := range items {
		rows.Add(w.ID, w.Code, w.Name, yesNo(w.IsEnabled),
			fmt.Sprintf("%.0f/%.0f", w.UsedCapacity, w.TotalCapacity), w.CreatedTime.DateTime())
	}
	return rows
}

func (a *App) printWarehouse(w *wmsapi.Warehouse) error {
	return printOne(a, w, warehouseRows)
}
