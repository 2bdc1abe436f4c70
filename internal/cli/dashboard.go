package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wms-platform/wms-web/internal/cli/output"
	"github.com/wms-platform/wms-web/pkg/wmsapi"
)

// dashboard is everything the dashboard command shows
type dashboard struct {
	Stats      *wmsapi.DashboardStats     `json:"stats"`
	Today      *wmsapi.TodayOperations    `json:"today"`
	Warehouses []wmsapi.WarehouseOverview `json:"warehouses"`
	Alerts     []wmsapi.InventoryAlert    `json:"alerts"`
	Activities []wmsapi.RecentActivity    `json:"activities"`
}

func (a *App) loadDashboard(ctx context.Context) (*dashboard, error) {
	var (
		d   dashboard
		err error
	)
	if d.Stats, err = a.api.Dashboard.Stats(ctx); err != nil {
		return nil, err
	}
	if d.Today, err = a.api.Dashboard.TodayOperations(ctx); err != nil {
		return nil, err
	}
	if d.Warehouses, err = a.api.Dashboard.WarehouseOverview(ctx); err != nil {
		return nil, err
	}
	if d.Alerts, err = a.api.Dashboard.InventoryAlerts(ctx); err != nil {
		return nil, err
	}
	if d.Activities, err = a.api.Dashboard.RecentActivities(ctx); err != nil {
		return nil, err
	}
	return &d, nil
}

func newDashboardCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"dash"},
		Short:   "Show headline counters, alerts and recent activity",
		Args:    cobra.NoArgs,
		RunE: a.authed(func(ctx context.Context, _ []string) error {
			d, err := a.loadDashboard(ctx)
			if err != nil {
				return err
			}
			if a.printer.Format() != output.Table {
				return a.printer.Print(d, nil)
			}
			return a.printDashboard(d)
		}),
	}
}

func (a *App) printDashboard(d *dashboard) error {
	sections := []struct {
		title string
		rows  func() *output.Rows
	}{
		{"Overview", func() *output.Rows {
			s, t := d.Stats, d.Today
			rows := output.NewRows("STAT", "VALUE")
			if s != nil {
				rows.Add("Warehouses", s.TotalWarehouses).
					Add("Products", s.TotalProducts).
					Add("Units in stock", s.TotalInventory).
					Add("Stock value", fmt.Sprintf("%.2f", s.TotalValue)).
					Add("Pending inbound", s.PendingInbound).
					Add("Pending outbound", s.PendingOutbound).
					Add("Low stock alerts", s.LowStockAlerts).
					Add("Expiring alerts", s.ExpiringAlerts)
			}
			if t != nil {
				rows.Add("Inbound today", fmt.Sprintf("%d/%d", t.CompletedInbound, t.InboundOrders)).
					Add("Outbound today", fmt.Sprintf("%d/%d", t.CompletedOutbound, t.OutboundOrders)).
					Add("Putaway today", fmt.Sprintf("%d/%d", t.CompletedPutaway, t.PutawayTasks)).
					Add("Picking today", fmt.Sprintf("%d/%d", t.CompletedPicking, t.PickingTasks))
			}
			return rows
		}},
		{"Warehouses", func() *output.Rows {
			rows := output.NewRows("WAREHOUSE", "LOCATIONS", "OCCUPIED", "PRODUCTS", "UNITS")
			for _, w := range d.Warehouses {
				rows.Add(w.WarehouseName, w.TotalLocations, w.OccupiedLocations, w.TotalProducts, w.TotalQuantity)
			}
			return rows
		}},
		{"Alerts", func() *output.Rows {
			rows := output.NewRows("TYPE", "SKU", "PRODUCT", "WAREHOUSE", "QTY", "DETAIL")
			for _, al := range d.Alerts {
				detail := fmt.Sprintf("threshold %d", al.ThresholdQuantity)
				if al.ExpiryDate != "" {
					detail = fmt.Sprintf("expires %s", al.ExpiryDate)
				}
				rows.Add(al.TypeName, al.SkuCode, al.ProductName, al.WarehouseName, al.CurrentQuantity, detail)
			}
			return rows
		}},
		{"Recent activity", func() *output.Rows {
			rows := output.NewRows("TIME", "TYPE", "TITLE", "OPERATOR")
			for _, act := range d.Activities {
				rows.Add(act.CreatedTime, act.TypeName, act.Title, orDash(act.Operator))
			}
			return rows
		}},
	}

	for i, s := range sections {
		if i > 0 {
			a.printer.Message("")
		}
		a.printer.Message("%s", s.title)
		if err := a.printer.Print(d, s.rows); err != nil {
			return err
		}
	}
	return nil
}
