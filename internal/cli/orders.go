package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/wms-platform/wms-web/internal/cli/output"
	"github.com/wms-platform/wms-web/pkg/wmsapi"
)

// orderFilter holds the list flags shared by inbound and outbound orders
type orderFilter struct {
	paging pageFlags
	query  wmsapi.OrderQuery
	status int
}

func (f *orderFilter) register(cmd *cobra.Command, partner string) {
	f.paging.register(cmd.Flags())
	cmd.Flags().StringVar(&f.query.OrderNo, "order-no", "", "order number")
	cmd.Flags().Int64Var(&f.query.WarehouseID, "warehouse", 0, "warehouse ID")
	cmd.Flags().IntVar(&f.status, "status", 0, "order status")
	switch partner {
	case "supplier":
		cmd.Flags().Int64Var(&f.query.SupplierID, "supplier", 0, "supplier ID")
	case "customer":
		cmd.Flags().Int64Var(&f.query.CustomerID, "customer", 0, "customer ID")
	}
}

func (f *orderFilter) build(cmd *cobra.Command) *wmsapi.OrderQuery {
	q := f.query
	q.PageQuery = f.paging.query()
	if cmd.Flags().Changed("status") {
		st := f.status
		q.Status = &st
	}
	return &q
}

// receipt is the file accepted by "inbound receive"
type receipt struct {
	Items []wmsapi.ReceiptLine `json:"items" yaml:"items" validate:"required,min=1,dive"`
}

func newInboundCommand(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inbound",
		Short: "Manage inbound orders and putaway",
	}

	var filter orderFilter
	list := &cobra.Command{
		Use:   "list",
		Short: "List inbound orders",
		Args:  cobra.NoArgs,
	}
	filter.register(list, "supplier")
	list.RunE = a.authed(func(ctx context.Context, _ []string) error {
		page, err := a.api.Inbound.List(ctx, filter.build(list))
		if err != nil {
			return err
		}
		return printPage(a, page, inboundRows)
	})

	get := &cobra.Command{
		Use:   "get ID",
		Short: "Show an inbound order with its lines",
		Args:  cobra.ExactArgs(1),
		RunE: a.authed(func(ctx context.Context, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			o, err := a.api.Inbound.Get(ctx, id)
			if err != nil || o == nil {
				return err
			}
			return a.printer.Print(o, func() *output.Rows {
				rows := output.NewRows("LINE", "SKU", "PRODUCT", "EXPECTED", "RECEIVED")
				for _, it := range o.Items {
					rows.Add(it.ID, it.SkuCode, it.ProductName, it.ExpectedQuantity, it.ReceivedQuantity)
				}
				return rows
			})
		}),
	}

	var file string
	create := &cobra.Command{
		Use:   "create -f FILE",
		Short: "Create an inbound order",
		Args:  cobra.NoArgs,
		RunE: a.authed(func(ctx context.Context, _ []string) error {
			var form wmsapi.InboundOrderForm
			if err := a.readInput(file, &form); err != nil {
				return err
			}
			o, err := a.api.Inbound.Create(ctx, &form)
			if err != nil {
				return err
			}
			return printOne(a, o, inboundRows)
		}),
	}
	fileFlag(create, &file)

	update := &cobra.Command{
		Use:   "update ID -f FILE",
		Short: "Update a pending inbound order",
		Args:  cobra.ExactArgs(1),
		RunE: a.authed(func(ctx context.Context, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var form wmsapi.InboundOrderForm
			if err := a.readInput(file, &form); err != nil {
				return err
			}
			o, err := a.api.Inbound.Update(ctx, id, &form)
			if err != nil {
				return err
			}
			return printOne(a, o, inboundRows)
		}),
	}
	fileFlag(update, &file)

	var yes bool
	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an inbound order",
		Args:  cobra.ExactArgs(1),
		RunE: a.authed(func(ctx context.Context, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ok, err := a.confirm(yes, "Delete inbound order %d", id)
			if err != nil || !ok {
				return err
			}
			return a.api.Inbound.Delete(ctx, id)
		}),
	}
	yesFlag(del, &yes)

	receive := &cobra.Command{
		Use:   "receive ID -f FILE",
		Short: "Confirm the quantities received for an order",
		Args:  cobra.ExactArgs(1),
		RunE: a.authed(func(ctx context.Context, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var r receipt
			if err := a.readInput(file, &r); err != nil {
				return err
			}
			if err := a.api.Inbound.ConfirmReceipt(ctx, id, r.Items); err != nil {
				return err
			}
			a.printer.Message("Receipt confirmed for inbound order %d", id)
			return nil
		}),
	}
	fileFlag(receive, &file)

	putaway := &cobra.Command{
		Use:   "putaway-tasks ID",
		Short: "List the putaway tasks of an order",
		Args:  cobra.ExactArgs(1),
		RunE: a.authed(func(ctx context.Context, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			tasks, err := a.api.Inbound.PutawayTasks(ctx, id)
			if err != nil {
				return err
			}
			return a.printer.Print(tasks, func() *output.Rows {
				rows := output.NewRows("ID", "TASK", "SKU", "TO", "QTY", "STATUS")
				for _, t := range tasks {
					rows.Add(t.ID, t.TaskNo, t.SkuCode, t.ToLocationCode, t.Quantity, t.StatusName)
				}
				return rows
			})
		}),
	}

	complete := &cobra.Command{
		Use:   "complete-putaway TASK_ID...",
		Short: "Mark putaway tasks done",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.authed(func(ctx context.Context, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			for _, id := range ids {
				if err := a.api.Inbound.CompletePutawayTask(ctx, id); err != nil {
					return err
				}
				a.printer.Message("Putaway task %d completed", id)
			}
			return nil
		}),
	}

	cmd.AddCommand(list, get, create, update, del, receive, putaway, complete)
	return cmd
}

func newOutboundCommand(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outbound",
		Short: "Manage outbound orders, picking and shipping",
	}

	var filter orderFilter
	list := &cobra.Command{
		Use:   "list",
		Short: "List outbound orders",
		Args:  cobra.NoArgs,
	}
	filter.register(list, "customer")
	list.RunE = a.authed(func(ctx context.Context, _ []string) error {
		orders, err := a.api.Outbound.List(ctx, filter.build(list))
		if err != nil {
			return err
		}
		return a.printer.Print(orders, func() *output.Rows { return outboundRows(orders) })
	})

	get := &cobra.Command{
		Use:   "get ID",
		Short: "Show an outbound order with its lines",
		Args:  cobra.ExactArgs(1),
		RunE: a.authed(func(ctx context.Context, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			o, err := a.api.Outbound.Get(ctx, id)
			if err != nil || o == nil {
				return err
			}
			return a.printer.Print(o, func() *output.Rows {
				rows := output.NewRows("LINE", "SKU", "PRODUCT", "QTY", "ALLOCATED", "PICKED")
				for _, it := range o.Items {
					rows.Add(it.ID, it.SkuCode, it.ProductName, it.Quantity, it.AllocatedQuantity, it.PickedQuantity)
				}
				return rows
			})
		}),
	}

	var file string
	create := &cobra.Command{
		Use:   "create -f FILE",
		Short: "Create an outbound order",
		Args:  cobra.NoArgs,
		RunE: a.authed(func(ctx context.Context, _ []string) error {
			var form wmsapi.OutboundOrderForm
			if err := a.readInput(file, &form); err != nil {
				return err
			}
			o, err := a.api.Outbound.Create(ctx, &form)
			if err != nil {
				return err
			}
			return printOne(a, o, outboundRows)
		}),
	}
	fileFlag(create, &file)

	update := &cobra.Command{
		Use:   "update ID -f FILE",
		Short: "Update an outbound order that is not yet allocated",
		Args:  cobra.ExactArgs(1),
		RunE: a.authed(func(ctx context.Context, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var form wmsapi.OutboundOrderForm
			if err := a.readInput(file, &form); err != nil {
				return err
			}
			o, err := a.api.Outbound.Update(ctx, id, &form)
			if err != nil {
				return err
			}
			return printOne(a, o, outboundRows)
		}),
	}
	fileFlag(update, &file)

	var yes bool
	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an outbound order",
		Args:  cobra.ExactArgs(1),
		RunE: a.authed(func(ctx context.Context, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ok, err := a.confirm(yes, "Delete outbound order %d", id)
			if err != nil || !ok {
				return err
			}
			return a.api.Outbound.Delete(ctx, id)
		}),
	}
	yesFlag(del, &yes)

	allocate := &cobra.Command{
		Use:   "allocate ID",
		Short: "Reserve stock for an order",
		Args:  cobra.ExactArgs(1),
		RunE: a.authed(func(ctx context.Context, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.api.Outbound.Allocate(ctx, id); err != nil {
				return err
			}
			a.printer.Message("Outbound order %d allocated", id)
			return nil
		}),
	}

	generate := &cobra.Command{
		Use:   "generate-picks ID",
		Short: "Create picking tasks for an allocated order",
		Args:  cobra.ExactArgs(1),
		RunE: a.authed(func(ctx context.Context, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.api.Outbound.GeneratePickingTasks(ctx, id); err != nil {
				return err
			}
			a.printer.Message("Picking tasks generated for outbound order %d", id)
			return nil
		}),
	}

	picks := &cobra.Command{
		Use:   "picking-tasks ID",
		Short: "List the picking tasks of an order",
		Args:  cobra.ExactArgs(1),
		RunE: a.authed(func(ctx context.Context, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			tasks, err := a.api.Outbound.PickingTasks(ctx, id)
			if err != nil {
				return err
			}
			return a.printer.Print(tasks, func() *output.Rows {
				rows := output.NewRows("ID", "TASK", "SKU", "FROM", "QTY", "PICKED", "STATUS")
				for _, t := range tasks {
					rows.Add(t.ID, t.TaskNo, t.SkuCode, t.FromLocationCode, t.Quantity, t.PickedQuantity, t.StatusName)
				}
				return rows
			})
		}),
	}

	var picked int64
	completePick := &cobra.Command{
		Use:   "complete-pick TASK_ID --quantity N",
		Short: "Record the quantity picked for a task",
		Args:  cobra.ExactArgs(1),
		RunE: a.authed(func(ctx context.Context, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.api.Outbound.CompletePickingTask(ctx, id, picked); err != nil {
				return err
			}
			a.printer.Message("Picking task %d completed", id)
			return nil
		}),
	}
	completePick.Flags().Int64Var(&picked, "quantity", 0, "quantity picked")
	_ = completePick.MarkFlagRequired("quantity")

	var tracking string
	ship := &cobra.Command{
		Use:   "ship ID",
		Short: "Confirm shipment of a picked order",
		Args:  cobra.ExactArgs(1),
		RunE: a.authed(func(ctx context.Context, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.api.Outbound.Ship(ctx, id, tracking); err != nil {
				return err
			}
			a.printer.Message("Outbound order %d shipped", id)
			return nil
		}),
	}
	ship.Flags().StringVar(&tracking, "tracking", "", "carrier tracking number")

	cmd.AddCommand(list, get, create, update, del, allocate, generate, picks, completePick, ship)
	return cmd
}

func inboundRows(items []wmsapi.InboundOrder) *output.Rows {
	rows := output.NewRows("ID", "ORDER", "WAREHOUSE", "SUPPLIER", "STATUS", "EXPECTED", "RECEIVED", "CREATED")
	for _, o := range items {
		rows.Add(o.ID, o.OrderNo, o.WarehouseName, o.SupplierName, o.StatusName,
			o.TotalExpectedQuantity, o.TotalReceivedQuantity, o.CreatedTime)
	}
	return rows
}

func outboundRows(items []wmsapi.OutboundOrder) *output.Rows {
	rows := output.NewRows("ID", "ORDER", "WAREHOUSE", "CUSTOMER", "STATUS", "LINES", "CREATED")
	for _, o := range items {
		rows.Add(o.ID, o.OrderNo, o.WarehouseName, o.CustomerName, o.StatusName, len(o.Items), o.CreatedTime)
	}
	return rows
}
