package wmsapi

import (
	"context"
	"fmt"

	"github.com/wms-platform/wms-web/pkg/api"
	"github.com/wms-platform/wms-web/pkg/httpclient"
	"github.com/wms-platform/wms-web/pkg/notify"
)

// ZoneService manages storage zones. Writes request a success notice but
// carry no message, so only failures are shown.
type ZoneService service

func (s *ZoneService) List(ctx context.Context, q *StorageZoneQuery) (api.PageResult[StorageZone], error) {
	return smart(s.client, func() (api.PageResult[StorageZone], error) {
		return get[api.PageResult[StorageZone]](ctx, s.client, "zones.list", "storage-zones", httpclient.WithParams(q))
	})
}

func (s *ZoneService) Create(ctx context.Context, form *StorageZoneForm) (*StorageZone, error) {
	return smart(s.client, func() (*StorageZone, error) {
		return post[*StorageZone](ctx, s.client, "zones.create", "storage-zones", form)
	}, notify.WithSuccess(""))
}

func (s *ZoneService) Update(ctx context.Context, id int64, form *StorageZoneForm) (*StorageZone, error) {
	return smart(s.client, func() (*StorageZone, error) {
		return put[*StorageZone](ctx, s.client, "zones.update", fmt.Sprintf("storage-zones/%d", id), form)
	}, notify.WithSuccess(""))
}

func (s *ZoneService) SetStatus(ctx context.Context, id int64, enabled bool) (*StorageZone, error) {
	return smart(s.client, func() (*StorageZone, error) {
		return patch[*StorageZone](ctx, s.client, "zones.setStatus", fmt.Sprintf("storage-zones/%d/status", id), statusBody(enabled))
	}, notify.WithSuccess(""))
}

func (s *ZoneService) Delete(ctx context.Context, id int64) error {
	return smartExec(s.client, func() error {
		return del(ctx, s.client, "zones.delete", fmt.Sprintf("storage-zones/%d", id))
	}, notify.WithSuccess(""))
}
