package wmsapi

import (
	"context"
	"fmt"

	"github.com/wms-platform/wms-web/pkg/api"
	"github.com/wms-platform/wms-web/pkg/httpclient"
)

// InventoryService reads and moves stock
type InventoryService service

// List returns a page of inventory records
func (s *InventoryService) List(ctx context.Context, q *InventoryQuery) (api.PageResult[Inventory], error) {
	return get[api.PageResult[Inventory]](ctx, s.client, "inventory.list", "inventory", httpclient.WithParams(q))
}

// Get retrieves an inventory record by ID
func (s *InventoryService) Get(ctx context.Context, id int64) (*Inventory, error) {
	return get[*Inventory](ctx, s.client, "inventory.get", fmt.Sprintf("inventory/%d", id))
}

// Adjust sets the quantity of an inventory record
func (s *InventoryService) Adjust(ctx context.Context, id int64, req *AdjustRequest) error {
	return exec(ctx, s.client, "inventory.adjust", fmt.Sprintf("inventory/%d/adjust", id), req)
}

// Transfer moves quantity from an inventory record to another location
func (s *InventoryService) Transfer(ctx context.Context, id int64, req *TransferRequest) error {
	return exec(ctx, s.client, "inventory.transfer", fmt.Sprintf("inventory/%d/transfer", id), req)
}

// Transactions returns the stock movement log
func (s *InventoryService) Transactions(ctx context.Context, q *TransactionQuery) ([]InventoryTransaction, error) {
	return get[[]InventoryTransaction](ctx, s.client, "inventory.transactions", "inventory/transactions", httpclient.WithParams(q))
}

// Stats summarizes stock, optionally for one warehouse (0 for all)
func (s *InventoryService) Stats(ctx context.Context, warehouseID int64) (*InventoryStats, error) {
	var opts []httpclient.RequestOption
	if warehouseID > 0 {
		opts = append(opts, httpclient.WithQuery("warehouseId", fmt.Sprint(warehouseID)))
	}
	return get[*InventoryStats](ctx, s.client, "inventory.stats", "inventory/stats", opts...)
}
