package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/wms-platform/wms-web/internal/cli/output"
	"github.com/wms-platform/wms-web/pkg/httpclient"
)

type rawFlags struct {
	data   string
	file   string
	query  []string
	header []string
	full   bool
	binary bool
	out    string
}

func newRawCommand(a *App) *cobra.Command {
	var f rawFlags
	cmd := &cobra.Command{
		Use:   "raw METHOD PATH",
		Short: "Send an arbitrary request to the WMS API",
		Long: `Send a request to PATH, relative to the API base path, and print the data
member of the response. --full prints the whole envelope and --binary writes the
body untouched, to --out or standard output.`,
		Example: `  wmsctl raw GET warehouses --query size=5
  wmsctl raw PATCH warehouses/3/status --data '{"isEnabled":false}'
  wmsctl raw GET inventory/export --binary --out stock.csv`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := f.request(strings.ToUpper(args[0]), args[1])
			if err != nil {
				return err
			}
			res := a.http.Do(cmd.Context(), req)
			if res.Err != nil {
				return res.Err
			}
			return a.printRaw(res, &f)
		},
	}
	cmd.Flags().StringVarP(&f.data, "data", "d", "", "JSON request body")
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "file holding the JSON request body")
	cmd.Flags().StringArrayVarP(&f.query, "query", "q", nil, "query parameter as key=value, repeatable")
	cmd.Flags().StringArrayVarP(&f.header, "header", "H", nil, "header as 'Name: value', repeatable")
	cmd.Flags().BoolVar(&f.full, "full", false, "print the whole {code,data,msg} envelope")
	cmd.Flags().BoolVar(&f.binary, "binary", false, "treat the response as binary")
	cmd.Flags().StringVar(&f.out, "out", "", "write the body to this file")
	cmd.MarkFlagsMutuallyExclusive("data", "file")
	cmd.MarkFlagsMutuallyExclusive("full", "binary")

	cmd.AddCommand(newOperationsCommand(a))
	return cmd
}

func (f *rawFlags) request(method, path string) (*httpclient.Request, error) {
	opts := []httpclient.RequestOption{httpclient.WithOperation("raw")}

	body := f.data
	if f.file != "" {
		raw, err := os.ReadFile(f.file)
		if err != nil {
			return nil, err
		}
		body = string(raw)
	}
	if body != "" {
		if !json.Valid([]byte(body)) {
			return nil, fmt.Errorf("request body is not valid JSON")
		}
		opts = append(opts, httpclient.WithBody(json.RawMessage(body)))
	}

	for _, q := range f.query {
		k, v, ok := strings.Cut(q, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid query %q, want key=value", q)
		}
		opts = append(opts, httpclient.WithQuery(k, v))
	}
	for _, h := range f.header {
		k, v, ok := strings.Cut(h, ":")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("invalid header %q, want 'Name: value'", h)
		}
		opts = append(opts, httpclient.WithHeader(strings.TrimSpace(k), strings.TrimSpace(v)))
	}
	if f.full {
		opts = append(opts, httpclient.ReturnFull())
	}
	if f.binary {
		opts = append(opts, httpclient.AsBinary())
	}
	return httpclient.NewRequest(method, path, opts...), nil
}

func (a *App) printRaw(res *httpclient.Result, f *rawFlags) error {
	if f.out != "" {
		if err := os.WriteFile(f.out, res.Value, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(a.Err, "Wrote %d bytes to %s\n", len(res.Value), f.out)
		return nil
	}
	if res.Variant == httpclient.VariantBinary || !gjson.ValidBytes(res.Value) {
		_, err := a.Out.Write(res.Value)
		return err
	}

	var v any
	if len(res.Value) > 0 {
		if err := json.Unmarshal(res.Value, &v); err != nil {
			return err
		}
	}
	if v == nil {
		a.printer.Message("OK")
		return nil
	}
	return a.printer.Print(v, nil)
}

func newOperationsCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:     "ops",
		Aliases: []string{"operations"},
		Short:   "List the operations described by the API contract",
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			ops := a.contract.Operations()
			return a.printer.Print(ops, func() *output.Rows {
				rows := output.NewRows("OPERATION", "METHOD", "PATH", "SUMMARY")
				for _, op := range ops {
					rows.Add(op.ID, op.Method, op.Path, orDash(op.Summary))
				}
				return rows
			})
		},
	}
}
