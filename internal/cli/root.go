package cli

import (
	"github.com/spf13/cobra"

	"github.com/wms-platform/wms-web/internal/config"
)

// NewRootCommand builds the wmsctl command tree
func NewRootCommand(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:           config.AppName,
		Short:         "Operate a WMS backend from the command line",
		Version:       a.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default $HOME/.wmsctl.yaml)")
	pf.String("server", "", "WMS server URL")
	pf.StringP("output", "o", "", "output format: table, json or yaml")
	pf.String("log-level", "", "log level: debug, info, warn or error")
	pf.String("tenant", "", "tenant ID sent with every request")
	pf.String("facility", "", "facility ID sent with every request")

	root.AddCommand(
		newLoginCommand(a),
		newLogoutCommand(a),
		newWhoamiCommand(a),
		newMenuCommand(a),
		newWarehousesCommand(a),
		newZonesCommand(a),
		newLocationsCommand(a),
		newInventoryCommand(a),
		newInboundCommand(a),
		newOutboundCommand(a),
		newProductsCommand(a),
		newSuppliersCommand(a),
		newCustomersCommand(a),
		newDashboardCommand(a),
		newWatchCommand(a),
		newRawCommand(a),
	)
	return root
}
