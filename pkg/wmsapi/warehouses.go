package wmsapi

import (
	"context"
	"fmt"

	"github.com/wms-platform/wms-web/pkg/api"
	"github.com/wms-platform/wms-web/pkg/httpclient"
	"github.com/wms-platform/wms-web/pkg/notify"
)

// WarehouseService manages warehouses. Every call reports its outcome.
type WarehouseService service

// List returns a page of warehouses
func (s *WarehouseService) List(ctx context.Context, q *WarehouseQuery) (api.PageResult[Warehouse], error) {
	return smart(s.client, func() (api.PageResult[Warehouse], error) {
		return get[api.PageResult[Warehouse]](ctx, s.client, "warehouses.list", "warehouses", httpclient.WithParams(q))
	})
}

// Get retrieves a warehouse by ID
func (s *WarehouseService) Get(ctx context.Context, id int64) (*Warehouse, error) {
	return smart(s.client, func() (*Warehouse, error) {
		return get[*Warehouse](ctx, s.client, "warehouses.get", fmt.Sprintf("warehouses/%d", id))
	})
}

// Create creates a warehouse
func (s *WarehouseService) Create(ctx context.Context, form *WarehouseForm) (*Warehouse, error) {
	return smart(s.client, func() (*Warehouse, error) {
		return post[*Warehouse](ctx, s.client, "warehouses.create", "warehouses", form)
	}, notify.WithSuccess("created"))
}

// Update replaces a warehouse's editable fields
func (s *WarehouseService) Update(ctx context.Context, id int64, form *WarehouseForm) (*Warehouse, error) {
	return smart(s.client, func() (*Warehouse, error) {
		return put[*Warehouse](ctx, s.client, "warehouses.update", fmt.Sprintf("warehouses/%d", id), form)
	}, notify.WithSuccess("updated"))
}

// Delete deletes a warehouse
func (s *WarehouseService) Delete(ctx context.Context, id int64) error {
	return smartExec(s.client, func() error {
		return del(ctx, s.client, "warehouses.delete", fmt.Sprintf("warehouses/%d", id))
	}, notify.WithSuccess("deleted"))
}

// SetStatus enables or disables a warehouse
func (s *WarehouseService) SetStatus(ctx context.Context, id int64, enabled bool) (*Warehouse, error) {
	msg := "disabled"
	if enabled {
		msg = "enabled"
	}
	return smart(s.client, func() (*Warehouse, error) {
		return patch[*Warehouse](ctx, s.client, "warehouses.setStatus", fmt.Sprintf("warehouses/%d/status", id), statusBody(enabled))
	}, notify.WithSuccess(msg))
}

// Stats returns location and order counters for a warehouse
func (s *WarehouseService) Stats(ctx context.Context, id int64) (*WarehouseStats, error) {
	return smart(s.client, func() (*WarehouseStats, error) {
		return get[*WarehouseStats](ctx, s.client, "warehouses.stats", fmt.Sprintf("warehouses/%d/stats", id))
	})
}
