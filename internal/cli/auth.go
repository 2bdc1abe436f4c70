package cli

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/wms-platform/wms-web/internal/cli/output"
	"github.com/wms-platform/wms-web/pkg/domain"
	"github.com/wms-platform/wms-web/pkg/session"
	"github.com/wms-platform/wms-web/pkg/wmsapi"
)

type loginFlags struct {
	username    string
	password    string
	code        string
	captchaFile string
}

func newLoginCommand(a *App) *cobra.Command {
	var f loginFlags
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the WMS backend",
		Long: `Sign in with a username, password and the numeric captcha issued by the
server. Missing values are prompted for. The captcha image is written to
--captcha-file so it can be opened while the code is asked for.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.login(cmd.Context(), &f)
		},
	}
	cmd.Flags().StringVarP(&f.username, "username", "u", "", "user name")
	cmd.Flags().StringVarP(&f.password, "password", "p", "", "password")
	cmd.Flags().StringVar(&f.code, "code", "", "captcha code, when already known")
	cmd.Flags().StringVar(&f.captchaFile, "captcha-file", filepath.Join(os.TempDir(), "wmsctl-captcha.png"), "where to save the captcha image")
	return cmd
}

func (a *App) login(ctx context.Context, f *loginFlags) error {
	var err error
	if f.username == "" {
		if f.username, err = a.Prompter.Input("Username", false); err != nil {
			return err
		}
	}
	if f.password == "" {
		if f.password, err = a.Prompter.Input("Password", true); err != nil {
			return err
		}
	}

	captcha, err := a.api.Auth.CaptchaInit(ctx)
	if err != nil {
		return err
	}
	if captcha == nil || captcha.Token == "" {
		return fmt.Errorf("server returned no captcha")
	}

	code := f.code
	if code == "" {
		if err := saveCaptcha(f.captchaFile, captcha.ImageBase64); err != nil {
			return err
		}
		fmt.Fprintf(a.Err, "Captcha image saved to %s\n", f.captchaFile)
		if code, err = a.Prompter.Input("Captcha code", false); err != nil {
			return err
		}
	}

	if _, err := a.api.Auth.CaptchaVerify(ctx, captcha.Token, code); err != nil {
		return err
	}

	req := &wmsapi.LoginRequest{
		Username: f.username,
		Password: f.password,
		Code:     code,
		Token:    captcha.Token,
	}
	if err := a.validateInput(req); err != nil {
		return err
	}
	env, err := a.api.Auth.Login(ctx, req)
	if err != nil {
		return err
	}
	// the transport only resolves success envelopes, whichever code they use
	result := env.Data
	if result.Token == "" {
		return fmt.Errorf("server returned no token")
	}

	if err := a.session.Login(result.Token, f.username, a.cfg.Server); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	msg := env.Msg
	if msg == "" {
		msg = "signed in as " + f.username
	}
	a.console.Success(msg)
	return nil
}

// saveCaptcha decodes a base64 image, with or without a data URL prefix
func saveCaptcha(path, encoded string) error {
	if i := strings.Index(encoded, ","); i >= 0 && strings.HasPrefix(encoded, "data:") {
		encoded = encoded[i+1:]
	}
	img, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return fmt.Errorf("decode captcha image: %w", err)
	}
	return os.WriteFile(path, img, 0o600)
}

func newLogoutCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.session.Teardown(); err != nil {
				return err
			}
			a.console.Success("signed out")
			return nil
		},
	}
}

// whoami is the output of the whoami command
type whoami struct {
	Username  string    `json:"username"`
	Nickname  string    `json:"nickname,omitempty"`
	Roles     []string  `json:"roles,omitempty"`
	Server    string    `json:"server"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
}

func newWhoamiCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user and when the session expires",
		Args:  cobra.NoArgs,
		RunE: a.authed(func(ctx context.Context, _ []string) error {
			claims, err := a.session.Claims()
			if err != nil {
				return err
			}
			env, err := a.api.Users.Me(ctx)
			if err != nil {
				return err
			}
			me := env.Data

			w := whoami{
				Username:  me.Username,
				Nickname:  me.Nickname,
				Roles:     me.Roles,
				Server:    a.cfg.Server,
				ExpiresAt: claims.ExpiresAt,
			}
			if len(w.Roles) == 0 {
				w.Roles = claims.Roles
			}
			return a.printer.Print(w, func() *output.Rows {
				return output.NewRows("USER", "NAME", "ROLES", "SERVER", "EXPIRES").
					Add(w.Username, orDash(w.Nickname), orDash(strings.Join(w.Roles, ",")), w.Server, expiry(claims))
			})
		}),
	}
}

func expiry(c *session.Claims) string {
	if c.ExpiresAt.IsZero() {
		return "never"
	}
	if c.Expired(time.Now()) {
		return "expired " + humanize.Time(c.ExpiresAt)
	}
	return humanize.Time(c.ExpiresAt)
}

func newMenuCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Show the console pages the signed-in user may open",
		Args:  cobra.NoArgs,
		RunE: a.authed(func(_ context.Context, _ []string) error {
			claims, err := a.session.Claims()
			if err != nil {
				return err
			}
			routes := domain.VisibleRoutes(domain.Routes(), domain.NewRoleSet(claims.Roles...))
			return a.printer.Print(routes, func() *output.Rows {
				rows := output.NewRows("PATH", "TITLE")
				for _, r := range domain.FlattenRoutes(routes) {
					rows.Add(r.Path, orDash(r.Title))
				}
				return rows
			})
		}),
	}
}
