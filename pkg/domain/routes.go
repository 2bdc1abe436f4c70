package domain

import "path"

// Route is one entry of the console navigation tree
type Route struct {
	Path     string       `json:"path" yaml:"path"`
	Name     string       `json:"name,omitempty" yaml:"name,omitempty"`
	Title    string       `json:"title,omitempty" yaml:"title,omitempty"`
	Roles    []Permission `json:"roles,omitempty" yaml:"roles,omitempty"`
	Hidden   bool         `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	Children []Route      `json:"children,omitempty" yaml:"children,omitempty"`
}

func leaf(p, name, title string, roles ...Permission) Route {
	return Route{Path: p, Name: name, Title: title, Roles: roles}
}

// Routes returns the console navigation tree
func Routes() []Route {
	return []Route{
		{Path: "/login", Hidden: true},
		{Path: "/403", Hidden: true},
		{Path: "/404", Hidden: true},
		{Path: "/", Children: []Route{
			leaf("dashboard", "Dashboard", "Dashboard", PermDashboardView),
		}},
		{Path: "/basic", Name: "Basic", Title: "Basic data", Roles: []Permission{PermWarehouseList}, Children: []Route{
			leaf("warehouses", "BasicWarehouses", "Warehouses", PermWarehouseList),
			leaf("zones", "BasicZones", "Storage zones", PermZoneList),
			leaf("locations", "BasicLocations", "Storage locations", PermLocationList),
			leaf("skus", "BasicSkus", "Products", PermSkuList),
			leaf("suppliers", "BasicSuppliers", "Suppliers", PermSupplierList),
			leaf("customers", "BasicCustomers", "Customers", PermCustomerList),
		}},
		{Path: "/inbound", Name: "Inbound", Title: "Inbound", Roles: []Permission{PermInboundOrderList}, Children: []Route{
			leaf("appointments", "InboundAppointments", "Appointments", PermInboundAppointmentList),
			leaf("orders", "InboundOrders", "Receiving", PermInboundOrderList),
			leaf("qc", "InboundQC", "Quality control", PermInboundQCList),
			leaf("putaway", "InboundPutaway", "Putaway", PermInboundPutawayList),
		}},
		{Path: "/inventory", Name: "Inventory", Title: "Inventory", Roles: []Permission{PermInventoryQueryList}, Children: []Route{
			leaf("query", "InventoryQuery", "Stock query", PermInventoryQueryList),
			leaf("adjustments", "InventoryAdjustments", "Adjustments", PermInventoryAdjustList),
			leaf("transfers", "InventoryTransfers", "Transfers", PermInventoryTransferList),
			leaf("counts", "InventoryCounts", "Cycle counts", PermInventoryCountList),
		}},
		{Path: "/outbound", Name: "Outbound", Title: "Outbound", Roles: []Permission{PermOutboundOrderList}, Children: []Route{
			leaf("index", "OutboundIndex", "Overview", PermOutboundOrderList),
			leaf("orders", "OutboundOrders", "Orders", PermOutboundOrderList),
			leaf("waves", "PickingWaves", "Waves", PermOutboundWaveList),
			leaf("picking", "PickingTasks", "Picking", PermOutboundPickingList),
			leaf("review", "ReviewTasks", "Review", PermOutboundReviewList),
			leaf("pack", "PackingTasks", "Packing", PermOutboundPackGenerate),
			leaf("shipping", "ShippingTasks", "Shipping", PermOutboundShippingList),
		}},
		{Path: "/reports", Name: "Reports", Title: "Reports", Roles: []Permission{PermDashboardData}, Children: []Route{
			leaf("dashboard", "ReportsDashboard", "Dashboards", PermDashboardData),
			leaf("inventory", "ReportsInventory", "Inventory reports", PermReportInventoryDetail),
			leaf("operations", "ReportsOperations", "Operations reports", PermReportOpsInbound),
			leaf("custom", "ReportsCustom", "Custom reports", PermReportCustomList),
			leaf("export", "ReportsExport", "Data export", PermReportExportCreate),
		}},
		{Path: "/system", Name: "System", Title: "System", Roles: []Permission{PermSystemUserList}, Children: []Route{
			leaf("users", "SystemUsers", "Users", PermSystemUserList),
			leaf("roles", "SystemRoles", "Roles", PermSystemRoleList),
			leaf("menus", "SystemMenus", "Menus", PermSystemMenuList),
			leaf("settings", "SystemSettings", "Settings", PermSystemSettingView),
			leaf("op-logs", "SystemOpLogs", "Operation logs", PermSystemLogList),
			leaf("api-monitor", "SystemApiMonitor", "API monitor", PermSystemAPMMetrics),
		}},
	}
}

// VisibleRoutes filters routes down to what a user holding roles may see.
// Hidden routes are dropped, a parent is kept only when its own roles match
// and at least one child survives, and child paths are made absolute.
func VisibleRoutes(routes []Route, roles RoleSet) []Route {
	var out []Route
	for _, r := range routes {
		if r.Hidden || !roles.HasAny(r.Roles...) {
			continue
		}
		if len(r.Children) == 0 {
			out = append(out, r)
			continue
		}

		children := make([]Route, 0, len(r.Children))
		for _, c := range r.Children {
			c.Path = path.Join(r.Path, c.Path)
			children = append(children, c)
		}
		children = VisibleRoutes(children, roles)
		if len(children) == 0 {
			continue
		}
		r.Children = children
		out = append(out, r)
	}
	return out
}

// FlattenRoutes lists the leaves of a tree in order
func FlattenRoutes(routes []Route) []Route {
	var out []Route
	for _, r := range routes {
		if len(r.Children) == 0 {
			out = append(out, r)
			continue
		}
		out = append(out, FlattenRoutes(r.Children)...)
	}
	return out
}
