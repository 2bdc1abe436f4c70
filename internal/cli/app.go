// Package cli implements the wmsctl command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/fatih/color"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/wms-platform/wms-web/internal/cli/output"
	"github.com/wms-platform/wms-web/internal/config"
	"github.com/wms-platform/wms-web/pkg/contracts/openapi"
	wmserrors "github.com/wms-platform/wms-web/pkg/errors"
	"github.com/wms-platform/wms-web/pkg/httpclient"
	"github.com/wms-platform/wms-web/pkg/logging"
	"github.com/wms-platform/wms-web/pkg/metrics"
	"github.com/wms-platform/wms-web/pkg/notify"
	"github.com/wms-platform/wms-web/pkg/session"
	"github.com/wms-platform/wms-web/pkg/tracing"
	"github.com/wms-platform/wms-web/pkg/wmsapi"
)

// ExitCode values returned by Execute
const (
	ExitOK      = 0
	ExitFailure = 1
	// ExitSignedOut means the backend ended the session during the command
	ExitSignedOut = 2
)

const reloginHint = "Your session has ended. Run `wmsctl login` to sign in again."

// App holds everything a command needs. The fields are populated before any
// command that talks to the backend runs.
type App struct {
	Out      io.Writer
	Err      io.Writer
	Prompter Prompter
	Version  string

	configPath string
	envFile    string

	cfg      *config.Config
	logger   *logging.Logger
	metrics  *metrics.Metrics
	tracer   *tracing.TracerProvider
	session  *session.Context
	contract *openapi.Validator
	http     *httpclient.Client
	api      *wmsapi.Client
	printer  *output.Printer
	console  notify.Sink
	validate *validator.Validate

	signedOut atomic.Bool
}

// NewApp creates an App writing results to out and notices to errOut
func NewApp(out, errOut io.Writer) *App {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	return &App{
		Out:      out,
		Err:      errOut,
		Prompter: TerminalPrompter{},
		Version:  "dev",
		envFile:  config.DefaultEnvFile,
		validate: validator.New(),
	}
}

// Execute runs the command line and returns the process exit code
func (a *App) Execute(ctx context.Context, args []string) int {
	root := NewRootCommand(a)
	root.SetArgs(args)
	root.SetOut(a.Out)
	root.SetErr(a.Err)

	err := root.ExecuteContext(ctx)
	a.close()

	if a.signedOut.Load() {
		fmt.Fprintln(a.Err, color.YellowString(reloginHint))
		return ExitSignedOut
	}
	if err != nil {
		a.report(err)
		return ExitFailure
	}
	return ExitOK
}

// setup loads configuration and builds the clients. Commands call it through
// the root's PersistentPreRunE.
func (a *App) setup(cmd *cobra.Command) error {
	loader := config.NewLoader().WithEnvFile(a.envFile)
	cfg, err := loader.Load(a.configPath, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.printer = output.New(a.Out, cfg.Output)

	lc := cfg.Logging()
	lc.Output = a.Err
	a.logger = logging.New(lc)

	a.metrics = metrics.New(metrics.DefaultConfig(config.AppName))

	tp, err := tracing.Initialize(cmd.Context(), &cfg.Tracing)
	if err != nil {
		a.logger.WithError(err).Warn("Failed to initialize tracing")
	} else {
		a.tracer = tp
	}

	a.session = session.New(session.NewFileStore(cfg.TokenFile), a.logger)
	if err := a.session.Init(); err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	a.session.OnLogout(func() { a.signedOut.Store(true) })

	a.contract, err = openapi.NewValidator(wmsapi.OpenAPISpec, openapi.WithBasePath(cfg.BasePath))
	if err != nil {
		return fmt.Errorf("load API contract: %w", err)
	}

	a.console = notify.NewConsoleSink(a.Err)
	if cfg.Notices == config.NoticesLog {
		a.console = notify.NewLogSink(a.logger)
	}
	opts := []httpclient.Option{
		httpclient.WithLogger(a.logger),
		httpclient.WithMetrics(a.metrics),
		httpclient.WithSink(a.console),
	}
	if a.tracer != nil {
		opts = append(opts, httpclient.WithTracer(a.tracer.Tracer()))
	}
	if cfg.ValidateContract {
		opts = append(opts, httpclient.WithValidator(a.contract))
	}

	a.http, err = httpclient.New(cfg.HTTPClient(), a.session, opts...)
	if err != nil {
		return err
	}

	// Failures are already shown by the transport; the typed layer only
	// adds success notices.
	smartSink := notify.SuccessOnly{Sink: notify.Counted{Sink: a.console, Count: a.metrics.RecordNotification}}
	a.api = wmsapi.New(a.http, smartSink)

	a.logger.Debug("wmsctl ready", "server", cfg.Server, "config", loader.ConfigFile())
	return nil
}

func (a *App) close() {
	if a.tracer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.tracer.Shutdown(ctx); err != nil && a.logger != nil {
		a.logger.WithError(err).Warn("Failed to shutdown tracer")
	}
}

// report prints errors no notification has covered yet. Cancelled calls
// stay silent.
func (a *App) report(err error) {
	if errors.Is(err, wmserrors.ErrSessionClosed) || errors.Is(err, context.Canceled) {
		return
	}
	if apiErr, ok := wmserrors.AsAPIError(err); ok && apiErr.Notified() {
		return
	}
	fmt.Fprintf(a.Err, "%s %s\n", color.RedString("Error:"), wmserrors.Message(err))
}

// requireSession fails fast when no token is stored
func (a *App) requireSession() error {
	if a.session.Token() == "" {
		return errNotSignedIn
	}
	return nil
}

var errNotSignedIn = errors.New("not signed in, run `wmsctl login` first")
