package wmsapi

import (
	"context"
	"fmt"

	"github.com/wms-platform/wms-web/pkg/api"
	"github.com/wms-platform/wms-web/pkg/domain"
	"github.com/wms-platform/wms-web/pkg/httpclient"
	"github.com/wms-platform/wms-web/pkg/notify"
)

// LocationService manages storage locations
type LocationService service

// List returns a page of locations
func (s *LocationService) List(ctx context.Context, q *StorageLocationQuery) (api.PageResult[StorageLocation], error) {
	return smart(s.client, func() (api.PageResult[StorageLocation], error) {
		return get[api.PageResult[StorageLocation]](ctx, s.client, "locations.list", "storage-locations", httpclient.WithParams(q))
	})
}

// Create creates a location
func (s *LocationService) Create(ctx context.Context, form *StorageLocationForm) (*StorageLocation, error) {
	return smart(s.client, func() (*StorageLocation, error) {
		return post[*StorageLocation](ctx, s.client, "locations.create", "storage-locations", form)
	}, notify.WithSuccess("created"))
}

// Update replaces a location's editable fields
func (s *LocationService) Update(ctx context.Context, id int64, form *StorageLocationForm) (*StorageLocation, error) {
	return smart(s.client, func() (*StorageLocation, error) {
		return put[*StorageLocation](ctx, s.client, "locations.update", fmt.Sprintf("storage-locations/%d", id), form)
	}, notify.WithSuccess("updated"))
}

// SetStatus moves a location to status
func (s *LocationService) SetStatus(ctx context.Context, id int64, status domain.LocationStatus) (*StorageLocation, error) {
	return smart(s.client, func() (*StorageLocation, error) {
		body := map[string]domain.LocationStatus{"status": status}
		return patch[*StorageLocation](ctx, s.client, "locations.setStatus", fmt.Sprintf("storage-locations/%d/status", id), body)
	}, notify.WithSuccess("status updated"))
}

// Delete deletes a location
func (s *LocationService) Delete(ctx context.Context, id int64) error {
	return smartExec(s.client, func() error {
		return del(ctx, s.client, "locations.delete", fmt.Sprintf("storage-locations/%d", id))
	}, notify.WithSuccess("deleted"))
}

// BatchCreate generates a grid of locations in one zone
func (s *LocationService) BatchCreate(ctx context.Context, form *BatchLocationForm) ([]StorageLocation, error) {
	return smart(s.client, func() ([]StorageLocation, error) {
		return post[[]StorageLocation](ctx, s.client, "locations.batchCreate", "storage-locations/batch", form)
	}, notify.WithSuccess("batch created"))
}
