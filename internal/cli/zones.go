package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wms-platform/wms-web/internal/cli/output"
	"github.com/wms-platform/wms-web/pkg/wmsapi"
)

func newZonesCommand(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "zones",
		Aliases: []string{"zone"},
		Short:   "Manage storage zones",
	}

	var (
		paging      pageFlags
		warehouseID int64
		zoneType    string
		keyword     string
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List storage zones",
		Args:  cobra.NoArgs,
	}
	paging.register(list.Flags())
	list.Flags().Int64Var(&warehouseID, "warehouse", 0, "warehouse ID")
	list.Flags().StringVar(&zoneType, "type", "", "zone type")
	list.Flags().StringVar(&keyword, "keyword", "", "match zone name or code")
	list.Flags().Bool("enabled", false, "only enabled (true) or disabled (false) zones")
	list.RunE = a.authed(func(ctx context.Context, _ []string) error {
		page, err := a.api.Zones.List(ctx, &wmsapi.StorageZoneQuery{
			PageQuery:   paging.query(),
			WarehouseID: warehouseID,
			ZoneType:    zoneType,
			Keyword:     keyword,
			IsEnabled:   optionalBool(list, "enabled"),
		})
		if err != nil {
			return err
		}
		return printPage(a, page, zoneRows)
	})

	var file string
	create := &cobra.Command{
		Use:   "create -f FILE",
		Short: "Create a storage zone",
		Args:  cobra.NoArgs,
		RunE: a.authed(func(ctx context.Context, _ []string) error {
			var form wmsapi.StorageZoneForm
			if err := a.readInput(file, &form); err != nil {
				return err
			}
			z, err := a.api.Zones.Create(ctx, &form)
			if err != nil {
				return err
			}
			return printOne(a, z, zoneRows)
		}),
	}
	fileFlag(create, &file)

	update := &cobra.Command{
		Use:   "update ID -f FILE",
		Short: "Update a storage zone",
		Args:  cobra.ExactArgs(1),
		RunE: a.authed(func(ctx context.Context, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var form wmsapi.StorageZoneForm
			if err := a.readInput(file, &form); err != nil {
				return err
			}
			z, err := a.api.Zones.Update(ctx, id, &form)
			if err != nil {
				return err
			}
			return printOne(a, z, zoneRows)
		}),
	}
	fileFlag(update, &file)

	var yes bool
	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a storage zone",
		Args:  cobra.ExactArgs(1),
		RunE: a.authed(func(ctx context.Context, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ok, err := a.confirm(yes, "Delete zone %d", id)
			if err != nil || !ok {
				return err
			}
			return a.api.Zones.Delete(ctx, id)
		}),
	}
	yesFlag(del, &yes)

	status := &cobra.Command{
		Use:   "status ID enable|disable",
		Short: "Enable or disable a storage zone",
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
			z, err := a.api.Zones.SetStatus(ctx, id, enabled)
			if err != nil {
				return err
			}
			return printOne(a, z, zoneRows)
		}),
	}

	cmd.AddCommand(list, create, update, del, status)
	return cmd
}

func zoneRows(items []wmsapi.StorageZone) *output.Rows {
	rows := output.NewRows("ID", "WAREHOUSE", "CODE", "NAME", "TYPE", "ENABLED", "CAPACITY")
	for _, z := range items {
		rows.Add(z.ID, z.WarehouseID, z.ZoneCode, z.ZoneName, orDash(z.ZoneType.String()), yesNo(z.IsEnabled),
			fmt.Sprintf("%.0f/%.0f", z.UsedCapacity, z.Capacity))
	}
	return rows
}
