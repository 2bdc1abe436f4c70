package wmsapi

import (
	"context"
	_ "embed"
	"encoding/json"

	"github.com/wms-platform/wms-web/pkg/httpclient"
	"github.com/wms-platform/wms-web/pkg/notify"
)

// OpenAPISpec documents every call made by this package
//
//go:embed openapi.yaml
var OpenAPISpec []byte

// Client holds typed clients for every WMS API resource
type Client struct {
	hc   *httpclient.Client
	sink notify.Sink

	Auth       *AuthService
	Users      *UserService
	Warehouses *WarehouseService
	Zones      *ZoneService
	Locations  *LocationService
	Inventory  *InventoryService
	Inbound    *InboundService
	Outbound   *OutboundService
	Products   *ProductService
	Suppliers  *SupplierService
	Customers  *CustomerService
	Dashboard  *DashboardService
}

type service struct {
	client *Client
}

// New creates a Client. sink receives the notifications of calls that
// report their own outcome; nil discards them.
func New(hc *httpclient.Client, sink notify.Sink) *Client {
	if sink == nil {
		sink = notify.Discard
	}
	c := &Client{hc: hc, sink: sink}

	base := service{client: c}
	c.Auth = (*AuthService)(&base)
	c.Users = (*UserService)(&base)
	c.Warehouses = (*WarehouseService)(&base)
	c.Zones = (*ZoneService)(&base)
	c.Locations = (*LocationService)(&base)
	c.Inventory = (*InventoryService)(&base)
	c.Inbound = (*InboundService)(&base)
	c.Outbound = (*OutboundService)(&base)
	c.Products = (*ProductService)(&base)
	c.Suppliers = (*SupplierService)(&base)
	c.Customers = (*CustomerService)(&base)
	c.Dashboard = (*DashboardService)(&base)
	return c
}

// HTTP returns the underlying transport client
func (c *Client) HTTP() *httpclient.Client {
	return c.hc
}

func smart[T any](c *Client, fn func() (T, error), opts ...notify.Option) (T, error) {
	return notify.Smart(c.sink, fn, opts...)
}

func smartExec(c *Client, fn func() error, opts ...notify.Option) error {
	return notify.SmartExec(c.sink, fn, opts...)
}

func get[T any](ctx context.Context, c *Client, op, path string, opts ...httpclient.RequestOption) (T, error) {
	return httpclient.Get[T](ctx, c.hc, path, append(opts, httpclient.WithOperation(op))...)
}

func post[T any](ctx context.Context, c *Client, op, path string, body any, opts ...httpclient.RequestOption) (T, error) {
	return httpclient.Post[T](ctx, c.hc, path, body, append(opts, httpclient.WithOperation(op))...)
}

func put[T any](ctx context.Context, c *Client, op, path string, body any) (T, error) {
	return httpclient.Put[T](ctx, c.hc, path, body, httpclient.WithOperation(op))
}

func patch[T any](ctx context.Context, c *Client, op, path string, body any) (T, error) {
	return httpclient.Patch[T](ctx, c.hc, path, body, httpclient.WithOperation(op))
}

func del(ctx context.Context, c *Client, op, path string) error {
	_, err := httpclient.Delete[json.RawMessage](ctx, c.hc, path, httpclient.WithOperation(op))
	return err
}

func exec(ctx context.Context, c *Client, op, path string, body any) error {
	_, err := post[json.RawMessage](ctx, c, op, path, body)
	return err
}

func statusBody(enabled bool) map[string]bool {
	return map[string]bool{"isEnabled": enabled}
}
