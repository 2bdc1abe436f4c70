package wmsapi

import (
	"context"
	"net/http"

	"github.com/wms-platform/wms-web/pkg/httpclient"
)

// AuthService handles sign-in and the numeric captcha
type AuthService service

// Login exchanges credentials and a solved captcha for a token. The whole
// envelope is returned so the backend's msg can be shown.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (httpclient.Envelope[LoginResult], error) {
	return httpclient.DoFull[LoginResult](ctx, s.client.hc, httpclient.NewRequest(http.MethodPost, "auth/login",
		httpclient.WithBody(req),
		httpclient.WithOperation("auth.login"),
	))
}

// CaptchaInit starts a captcha challenge
func (s *AuthService) CaptchaInit(ctx context.Context) (*Captcha, error) {
	return get[*Captcha](ctx, s.client, "auth.captchaInit", "auth/captcha/init")
}

// CaptchaVerify checks a captcha answer. data is null on success; msg
// explains a rejection.
func (s *AuthService) CaptchaVerify(ctx context.Context, token, code string) (httpclient.Envelope[*string], error) {
	return httpclient.DoFull[*string](ctx, s.client.hc, httpclient.NewRequest(http.MethodPost, "auth/captcha/verify",
		httpclient.WithQuery("token", token),
		httpclient.WithQuery("code", code),
		httpclient.WithOperation("auth.captchaVerify"),
	))
}

// UserService reads user accounts
type UserService service

// Me returns the signed-in user as a full envelope
func (s *UserService) Me(ctx context.Context) (httpclient.Envelope[CurrentUser], error) {
	return httpclient.DoFull[CurrentUser](ctx, s.client.hc, httpclient.NewRequest(http.MethodGet, "users/me",
		httpclient.WithOperation("users.me"),
	))
}
