package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/wms-platform/wms-web/internal/cli/output"
	"github.com/wms-platform/wms-web/pkg/api"
)

// authed wraps a command body that needs a signed-in session
func (a *App) authed(fn func(ctx context.Context, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := a.requireSession(); err != nil {
			return err
		}
		return fn(cmd.Context(), args)
	}
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, len(args))
	for i, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

// parseState accepts the words users type to switch something on or off
func parseState(arg string) (bool, error) {
	switch strings.ToLower(arg) {
	case "enable", "enabled", "on", "true":
		return true, nil
	case "disable", "disabled", "off", "false":
		return false, nil
	}
	return false, fmt.Errorf("invalid state %q, use enable or disable", arg)
}

// readInput decodes a JSON or YAML file into v and validates it
func (a *App) readInput(path string, v any) error {
	if path == "" {
		return errors.New("--file is required")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, v)
	default:
		err = json.Unmarshal(raw, v)
	}
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return a.validateInput(v)
}

func (a *App) validateInput(v any) error {
	if err := a.validate.Struct(v); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}
	return nil
}

// confirm asks before a destructive action unless yes is set
func (a *App) confirm(yes bool, format string, args ...any) (bool, error) {
	if yes {
		return true, nil
	}
	return a.Prompter.Confirm(fmt.Sprintf(format, args...))
}

func fileFlag(cmd *cobra.Command, path *string) {
	cmd.Flags().StringVarP(path, "file", "f", "", "JSON or YAML file with the resource")
}

func yesFlag(cmd *cobra.Command, yes *bool) {
	cmd.Flags().BoolVarP(yes, "yes", "y", false, "do not ask for confirmation")
}

// pageFlags are the paging flags shared by list commands
type pageFlags struct {
	page int
	size int
}

func (p *pageFlags) register(fs *pflag.FlagSet) {
	fs.IntVar(&p.page, "page", 1, "page number, starting at 1")
	fs.IntVar(&p.size, "size", api.DefaultPageSize, "page size")
}

func (p *pageFlags) query() api.PageQuery {
	page := p.page - 1
	if page < 0 {
		page = 0
	}
	return api.PageQuery{Page: page, Size: p.size}
}

// optionalBool returns nil unless the flag was given
func optionalBool(cmd *cobra.Command, name string) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		return nil
	}
	return &v
}

func printPage[T any](a *App, page api.PageResult[T], rows func([]T) *output.Rows) error {
	if err := a.printer.Print(page, func() *output.Rows { return rows(page.Content) }); err != nil {
		return err
	}
	a.printer.Message("Page %d of %d, %d total", page.PageNumber+1, page.TotalPages(), page.Total)
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// printOne prints a single resource with the same columns as its list
func printOne[T any](a *App, v *T, rows func([]T) *output.Rows) error {
	if v == nil {
		return nil
	}
	return a.printer.Print(v, func() *output.Rows { return rows([]T{*v}) })
}
