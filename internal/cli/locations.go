package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wms-platform/wms-web/internal/cli/output"
	"github.com/wms-platform/wms-web/pkg/domain"
	"github.com/wms-platform/wms-web/pkg/wmsapi"
)

// maxBatchLocations is the most locations one batch may generate
const maxBatchLocations = 500

func newLocationsCommand(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "locations",
		Aliases: []string{"location", "loc"},
		Short:   "Manage storage locations",
	}

	var (
		paging pageFlags
		query  wmsapi.StorageLocationQuery
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List storage locations",
		Args:  cobra.NoArgs,
		RunE: a.authed(func(ctx context.Context, _ []string) error {
			query.PageQuery = paging.query()
			page, err := a.api.Locations.List(ctx, &query)
			if err != nil {
				return err
			}
			return printPage(a, page, locationRows)
		}),
	}
	paging.register(list.Flags())
	list.Flags().Int64Var(&query.WarehouseID, "warehouse", 0, "warehouse ID")
	list.Flags().Int64Var(&query.ZoneID, "zone", 0, "zone ID")
	list.Flags().StringVar(&query.LocationType, "type", "", "location type")
	list.Flags().StringVar(&query.Status, "status", "", "location status")
	list.Flags().StringVar(&query.Keyword, "keyword", "", "match location code or name")

	var file string
	create := &cobra.Command{
		Use:   "create -f FILE",
		Short: "Create a storage location",
		Args:  cobra.NoArgs,
		RunE: a.authed(func(ctx context.Context, _ []string) error {
			var form wmsapi.StorageLocationForm
			if err := a.readInput(file, &form); err != nil {
				return err
			}
			loc, err := a.api.Locations.Create(ctx, &form)
			if err != nil {
				return err
			}
			return printOne(a, loc, locationRows)
		}),
	}
	fileFlag(create, &file)

	update := &cobra.Command{
		Use:   "update ID -f FILE",
		Short: "Update a storage location",
		Args:  cobra.ExactArgs(1),
		RunE: a.authed(func(ctx context.Context, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var form wmsapi.StorageLocationForm
			if err := a.readInput(file, &form); err != nil {
				return err
			}
			loc, err := a.api.Locations.Update(ctx, id, &form)
			if err != nil {
				return err
			}
			return printOne(a, loc, locationRows)
		}),
	}
	fileFlag(update, &file)

	var yes bool
	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a storage location",
		Args:  cobra.ExactArgs(1),
		RunE: a.authed(func(ctx context.Context, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ok, err := a.confirm(yes, "Delete location %d", id)
			if err != nil || !ok {
				return err
			}
			return a.api.Locations.Delete(ctx, id)
		}),
	}
	yesFlag(del, &yes)

	status := &cobra.Command{
		Use:   "status ID STATUS",
		Short: "Set the status of a storage location",
		Long:  "Set the status of a storage location: AVAILABLE, OCCUPIED or DISABLED.",
		Args:  cobra.ExactArgs(2),
		RunE: a.authed(func(ctx context.Context, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			st, err := domain.NewLocationStatus(args[1])
			if err != nil {
				return fmt.Errorf("%w: %s", err, args[1])
			}
			loc, err := a.api.Locations.SetStatus(ctx, id, st)
			if err != nil {
				return err
			}
			return printOne(a, loc, locationRows)
		}),
	}

	batch := &cobra.Command{
		Use:   "batch -f FILE",
		Short: "Generate a grid of locations in one zone",
		Args:  cobra.NoArgs,
		RunE: a.authed(func(ctx context.Context, _ []string) error {
			var form wmsapi.BatchLocationForm
			if err := a.readInput(file, &form); err != nil {
				return err
			}
			if n := form.Count(); n > maxBatchLocations {
				return fmt.Errorf("batch would create %d locations, the limit is %d", n, maxBatchLocations)
			}
			locs, err := a.api.Locations.BatchCreate(ctx, &form)
			if err != nil {
				return err
			}
			return a.printer.Print(locs, func() *output.Rows { return locationRows(locs) })
		}),
	}
	fileFlag(batch, &file)

	cmd.AddCommand(list, create, update, del, status, batch)
	return cmd
}

func locationRows(items []wmsapi.StorageLocation) *output.Rows {
	rows := output.NewRows("ID", "ZONE", "CODE", "NAME", "TYPE", "STATUS", "VOLUME")
	for _, l := range items {
		typ := "-"
		if l.LocationType != nil {
			typ = l.LocationType.String()
		}
		rows.Add(l.ID, l.ZoneID, l.LocationCode, orDash(l.LocationName), typ, l.Status.String(),
			fmt.Sprintf("%.0f/%.0f", l.CurrentVolume, l.Capacity))
	}
	return rows
}
