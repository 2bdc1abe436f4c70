package wmsapi

import (
	"context"
	"fmt"

	"github.com/wms-platform/wms-web/pkg/api"
	"github.com/wms-platform/wms-web/pkg/httpclient"
)

// SupplierService reads suppliers
type SupplierService service

// List returns a page of suppliers
func (s *SupplierService) List(ctx context.Context, q *PartnerQuery) (api.PageResult[Supplier], error) {
	return smart(s.client, func() (api.PageResult[Supplier], error) {
		return get[api.PageResult[Supplier]](ctx, s.client, "suppliers.list", "suppliers", httpclient.WithParams(q))
	})
}

// CustomerService manages customers. Failures are reported, successes are not.
type CustomerService service

// List returns a page of customers
func (s *CustomerService) List(ctx context.Context, q *PartnerQuery) (api.PageResult[Customer], error) {
	return smart(s.client, func() (api.PageResult[Customer], error) {
		return get[api.PageResult[Customer]](ctx, s.client, "customers.list", "customers", httpclient.WithParams(q))
	})
}

// Get retrieves a customer by ID
func (s *CustomerService) Get(ctx context.Context, id int64) (*Customer, error) {
	return smart(s.client, func() (*Customer, error) {
		return get[*Customer](ctx, s.client, "customers.get", fmt.Sprintf("customers/%d", id))
	})
}

// Create creates a customer from the non-zero fields of c
func (s *CustomerService) Create(ctx context.Context, c *Customer) (*Customer, error) {
	return smart(s.client, func() (*Customer, error) {
		return post[*Customer](ctx, s.client, "customers.create", "customers", c)
	})
}

// Update changes the non-zero fields of a customer
func (s *CustomerService) Update(ctx context.Context, id int64, c *Customer) (*Customer, error) {
	return smart(s.client, func() (*Customer, error) {
		return put[*Customer](ctx, s.client, "customers.update", fmt.Sprintf("customers/%d", id), c)
	})
}

// Delete deletes a customer
func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	return smartExec(s.client, func() error {
		return del(ctx, s.client, "customers.delete", fmt.Sprintf("customers/%d", id))
	})
}

// SetStatus enables or disables a customer
func (s *CustomerService) SetStatus(ctx context.Context, id int64, enabled bool) (*Customer, error) {
	return smart(s.client, func() (*Customer, error) {
		return patch[*Customer](ctx, s.client, "customers.setStatus", fmt.Sprintf("customers/%d/status", id), statusBody(enabled))
	})
}
