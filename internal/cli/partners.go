package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/wms-platform/wms-web/internal/cli/output"
	"github.com/wms-platform/wms-web/pkg/wmsapi"
)

func partnerFlags(cmd *cobra.Command, paging *pageFlags, keyword *string) {
	paging.register(cmd.Flags())
	cmd.Flags().StringVar(keyword, "keyword", "", "match name or code")
	cmd.Flags().Bool("enabled", false, "only enabled (true) or disabled (false) entries")
}

func newSuppliersCommand(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "suppliers",
		Aliases: []string{"supplier"},
		Short:   "Browse suppliers",
	}

	var (
		paging  pageFlags
		keyword string
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List suppliers",
		Args:  cobra.NoArgs,
	}
	partnerFlags(list, &paging, &keyword)
	list.RunE = a.authed(func(ctx context.Context, _ []string) error {
		page, err := a.api.Suppliers.List(ctx, &wmsapi.PartnerQuery{
			PageQuery: paging.query(),
			Keyword:   keyword,
			IsEnabled: optionalBool(list, "enabled"),
		})
		if err != nil {
			return err
		}
		return printPage(a, page, func(items []wmsapi.Supplier) *output.Rows {
			rows := output.NewRows("ID", "CODE", "NAME", "CONTACT")
			for _, s := range items {
				rows.Add(s.ID, s.SupplierCode, s.SupplierName, orDash(s.ContactPerson))
			}
			return rows
		})
	})

	cmd.AddCommand(list)
	return cmd
}

func newCustomersCommand(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "customers",
		Aliases: []string{"customer"},
		Short:   "Manage customers",
	}

	var (
		paging  pageFlags
		keyword string
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List customers",
		Args:  cobra.NoArgs,
	}
	partnerFlags(list, &paging, &keyword)
	list.RunE = a.authed(func(ctx context.Context, _ []string) error {
		page, err := a.api.Customers.List(ctx, &wmsapi.PartnerQuery{
			PageQuery: paging.query(),
			Keyword:   keyword,
			IsEnabled: optionalBool(list, "enabled"),
		})
		if err != nil {
			return err
		}
		return printPage(a, page, customerRows)
	})

	get := &cobra.Command{
		Use:   "get ID",
		Short: "Show a customer",
		Args:  cobra.ExactArgs(1),
		RunE: a.authed(func(ctx context.Context, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := a.api.Customers.Get(ctx, id)
			if err != nil {
				return err
			}
			return printOne(a, c, customerRows)
		}),
	}

	var file string
	create := &cobra.Command{
		Use:   "create -f FILE",
		Short: "Create a customer",
		Args:  cobra.NoArgs,
		RunE: a.authed(func(ctx context.Context, _ []string) error {
			var in wmsapi.Customer
			if err := a.readInput(file, &in); err != nil {
				return err
			}
			c, err := a.api.Customers.Create(ctx, &in)
			if err != nil {
				return err
			}
			return printOne(a, c, customerRows)
		}),
	}
	fileFlag(create, &file)

	update := &cobra.Command{
		Use:   "update ID -f FILE",
		Short: "Change the fields of a customer given in FILE",
		Args:  cobra.ExactArgs(1),
		RunE: a.authed(func(ctx context.Context, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var in wmsapi.Customer
			if err := a.readInput(file, &in); err != nil {
				return err
			}
			c, err := a.api.Customers.Update(ctx, id, &in)
			if err != nil {
				return err
			}
			return printOne(a, c, customerRows)
		}),
	}
	fileFlag(update, &file)

	var yes bool
	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a customer",
		Args:  cobra.ExactArgs(1),
		RunE: a.authed(func(ctx context.Context, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ok, err := a.confirm(yes, "Delete customer %d", id)
			if err != nil || !ok {
				return err
			}
			if err := a.api.Customers.Delete(ctx, id); err != nil {
				return err
			}
			a.printer.Message("Customer %d deleted", id)
			return nil
		}),
	}
	yesFlag(del, &yes)

	status := &cobra.Command{
		Use:   "status ID enable|disable",
		Short: "Enable or disable a customer",
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
			c, err := a.api.Customers.SetStatus(ctx, id, enabled)
			if err != nil {
				return err
			}
			return printOne(a, c, customerRows)
		}),
	}

	cmd.AddCommand(list, get, create, update, del, status)
	return cmd
}

func customerRows(items []wmsapi.Customer) *output.Rows {
	rows := output.NewRows("ID", "CODE", "NAME", "TYPE", "CONTACT", "ENABLED")
	for _, c := range items {
		enabled := "-"
		if c.IsEnabled != nil {
			enabled = yesNo(*c.IsEnabled)
		}
		rows.Add(c.ID, c.CustomerCode, c.CustomerName, orDash(c.CustomerType), orDash(c.ContactPerson), enabled)
	}
	return rows
}
