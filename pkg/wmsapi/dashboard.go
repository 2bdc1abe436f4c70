package wmsapi

import "context"

// DashboardService reads the dashboard aggregates
type DashboardService service

// Stats returns the headline counters
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	return get[*DashboardStats](ctx, s.client, "dashboard.stats", "dashboard/stats")
}

// InventoryAlerts returns low-stock and expiry alerts
func (s *DashboardService) InventoryAlerts(ctx context.Context) ([]InventoryAlert, error) {
	return get[[]InventoryAlert](ctx, s.client, "dashboard.inventoryAlerts", "dashboard/inventory-alerts")
}

// RecentActivities returns the latest activity feed entries
func (s *DashboardService) RecentActivities(ctx context.Context) ([]RecentActivity, error) {
	return get[[]RecentActivity](ctx, s.client, "dashboard.recentActivities", "dashboard/recent-activities")
}

// WarehouseOverview returns per-warehouse stock summaries
func (s *DashboardService) WarehouseOverview(ctx context.Context) ([]WarehouseOverview, error) {
	return get[[]WarehouseOverview](ctx, s.client, "dashboard.warehouseOverview", "dashboard/warehouse-overview")
}

// TodayOperations returns today's work counters
func (s *DashboardService) TodayOperations(ctx context.Context) (*TodayOperations, error) {
	return get[*TodayOperations](ctx, s.client, "dashboard.todayOperations", "dashboard/today-operations")
}
