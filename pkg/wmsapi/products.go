package wmsapi

import (
	"context"
	"fmt"

	"github.com/wms-platform/wms-web/pkg/httpclient"
)

// ProductService manages product SKUs
type ProductService service

func (s *ProductService) List(ctx context.Context, q *ProductQuery) ([]ProductSku, error) {
	return get[[]ProductSku](ctx, s.client, "products.list", "product-sku", httpclient.WithParams(q))
}

func (s *ProductService) Get(ctx context.Context, id int64) (*ProductSku, error) {
	return get[*ProductSku](ctx, s.client, "products.get", fmt.Sprintf("product-sku/%d", id))
}

func (s *ProductService) Create(ctx context.Context, form *ProductForm) (*ProductSku, error) {
	return post[*ProductSku](ctx, s.client, "products.create", "product-sku", form)
}

func (s *ProductService) Update(ctx context.Context, id int64, form *ProductForm) (*ProductSku, error) {
	return put[*ProductSku](ctx, s.client, "products.update", fmt.Sprintf("product-sku/%d", id), form)
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	return del(ctx, s.client, "products.delete", fmt.Sprintf("product-sku/%d", id))
}

// Inventory returns where a SKU is stocked, per warehouse. warehouseID 0
// covers every warehouse.
func (s *ProductService) Inventory(ctx context.Context, skuID, warehouseID int64) ([]ProductInventory, error) {
	var opts []httpclient.RequestOption
	if warehouseID > 0 {
		opts = append(opts, httpclient.WithQuery("warehouseId", fmt.Sprint(warehouseID)))
	}
	return get[[]ProductInventory](ctx, s.client, "products.inventory", fmt.Sprintf("product-sku/%d/inventory", skuID), opts...)
}
