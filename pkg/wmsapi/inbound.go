package wmsapi

import (
	"context"
	"fmt"

	"github.com/wms-platform/wms-web/pkg/api"
	"github.com/wms-platform/wms-web/pkg/httpclient"
)

// InboundService manages inbound orders and their putaway tasks
type InboundService service

// List returns a page of inbound orders
func (s *InboundService) List(ctx context.Context, q *OrderQuery) (api.PageResult[InboundOrder], error) {
	return get[api.PageResult[InboundOrder]](ctx, s.client, "inbound.list", "inbound-order", httpclient.WithParams(q))
}

// Get retrieves an inbound order with its items
func (s *InboundService) Get(ctx context.Context, id int64) (*InboundOrder, error) {
	return get[*InboundOrder](ctx, s.client, "inbound.get", fmt.Sprintf("inbound-order/%d", id))
}

// Create creates an inbound order
func (s *InboundService) Create(ctx context.Context, form *InboundOrderForm) (*InboundOrder, error) {
	return post[*InboundOrder](ctx, s.client, "inbound.create", "inbound-order", form)
}

// Update changes an inbound order; zero fields are left out of the request
func (s *InboundService) Update(ctx context.Context, id int64, form *InboundOrderForm) (*InboundOrder, error) {
	return put[*InboundOrder](ctx, s.client, "inbound.update", fmt.Sprintf("inbound-order/%d", id), form)
}

// Delete deletes an inbound order
func (s *InboundService) Delete(ctx context.Context, id int64) error {
	return del(ctx, s.client, "inbound.delete", fmt.Sprintf("inbound-order/%d", id))
}

// ConfirmReceipt records the quantities received for an order
func (s *InboundService) ConfirmReceipt(ctx context.Context, id int64, items []ReceiptLine) error {
	body := map[string][]ReceiptLine{"items": items}
	return exec(ctx, s.client, "inbound.confirmReceipt", fmt.Sprintf("inbound-order/%d/confirm-receipt", id), body)
}

// PutawayTasks lists the putaway tasks generated for an order
func (s *InboundService) PutawayTasks(ctx context.Context, id int64) ([]PutawayTask, error) {
	return get[[]PutawayTask](ctx, s.client, "inbound.putawayTasks", fmt.Sprintf("inbound-order/%d/putaway-tasks", id))
}

// CompletePutawayTask marks a putaway task done
func (s *InboundService) CompletePutawayTask(ctx context.Context, taskID int64) error {
	return exec(ctx, s.client, "inbound.completePutawayTask", fmt.Sprintf("putaway-task/%d/complete", taskID), nil)
}
