package wmsapi

import (
	"context"
	"fmt"

	"github.com/wms-platform/wms-web/pkg/httpclient"
)

// OutboundService manages outbound orders from allocation to shipment
type OutboundService service

// List returns outbound orders. The endpoint is not paged.
func (s *OutboundService) List(ctx context.Context, q *OrderQuery) ([]OutboundOrder, error) {
	return get[[]OutboundOrder](ctx, s.client, "outbound.list", "outbound-order", httpclient.WithParams(q))
}

// Get retrieves an outbound order with its items
func (s *OutboundService) Get(ctx context.Context, id int64) (*OutboundOrder, error) {
	return get[*OutboundOrder](ctx, s.client, "outbound.get", fmt.Sprintf("outbound-order/%d", id))
}

// Create creates an outbound order
func (s *OutboundService) Create(ctx context.Context, form *OutboundOrderForm) (*OutboundOrder, error) {
	return post[*OutboundOrder](ctx, s.client, "outbound.create", "outbound-order", form)
}

// Update changes an outbound order; zero fields are left out of the request
func (s *OutboundService) Update(ctx context.Context, id int64, form *OutboundOrderForm) (*OutboundOrder, error) {
	return put[*OutboundOrder](ctx, s.client, "outbound.update", fmt.Sprintf("outbound-order/%d", id), form)
}

// Delete deletes an outbound order
func (s *OutboundService) Delete(ctx context.Context, id int64) error {
	return del(ctx, s.client, "outbound.delete", fmt.Sprintf("outbound-order/%d", id))
}

// Allocate reserves stock for every line of an order
func (s *OutboundService) Allocate(ctx context.Context, id int64) error {
	return exec(ctx, s.client, "outbound.allocate", fmt.Sprintf("outbound-order/%d/allocate", id), nil)
}

// GeneratePickingTasks creates picking tasks for an allocated order
func (s *OutboundService) GeneratePickingTasks(ctx context.Context, id int64) error {
	return exec(ctx, s.client, "outbound.generatePickingTasks", fmt.Sprintf("outbound-order/%d/generate-picking-tasks", id), nil)
}

// PickingTasks lists the picking tasks of an order
func (s *OutboundService) PickingTasks(ctx context.Context, id int64) ([]PickingTask, error) {
	return get[[]PickingTask](ctx, s.client, "outbound.pickingTasks", fmt.Sprintf("outbound-order/%d/picking-tasks", id))
}

// CompletePickingTask records the quantity picked for a task
func (s *OutboundService) CompletePickingTask(ctx context.Context, taskID, pickedQuantity int64) error {
	body := map[string]int64{"pickedQuantity": pickedQuantity}
	return exec(ctx, s.client, "outbound.completePickingTask", fmt.Sprintf("picking-task/%d/complete", taskID), body)
}

// Ship confirms shipment. trackingNumber may be empty.
func (s *OutboundService) Ship(ctx context.Context, id int64, trackingNumber string) error {
	body := struct {
		TrackingNumber string `json:"trackingNumber,omitempty"`
	}{trackingNumber}
	return exec(ctx, s.client, "outbound.ship", fmt.Sprintf("outbound-order/%d/ship", id), body)
}
