package domain

// Permission is a permission or role code agreed with the backend. The
// console checks them against the roles of the signed-in user.
type Permission string

// Dashboard
const (
	PermDashboardView Permission = "dashboard:view"
)

// Basic data
const (
	PermWarehouseList   Permission = "basic:warehouse:list"
	PermWarehouseAdd    Permission = "basic:warehouse:add"
	PermWarehouseEdit   Permission = "basic:warehouse:edit"
	PermWarehouseDelete Permission = "basic:warehouse:delete"
	PermWarehouseEnable Permission = "basic:warehouse:enable"

	PermZoneList   Permission = "basic:zone:list"
	PermZoneAdd    Permission = "basic:zone:add"
	PermZoneEdit   Permission = "basic:zone:edit"
	PermZoneDelete Permission = "basic:zone:delete"

	PermLocationList   Permission = "basic:location:list"
	PermLocationAdd    Permission = "basic:location:add"
	PermLocationEdit   Permission = "basic:location:edit"
	PermLocationDelete Permission = "basic:location:delete"
	PermLocationBatch  Permission = "basic:location:batch"

	PermSkuList   Permission = "basic:sku:list"
	PermSkuAdd    Permission = "basic:sku:add"
	PermSkuEdit   Permission = "basic:sku:edit"
	PermSkuDelete Permission = "basic:sku:delete"

	PermSupplierList   Permission = "basic:supplier:list"
	PermSupplierAdd    Permission = "basic:supplier:add"
	PermSupplierEdit   Permission = "basic:supplier:edit"
	PermSupplierDelete Permission = "basic:supplier:delete"

	PermCustomerList   Permission = "basic:customer:list"
	PermCustomerAdd    Permission = "basic:customer:add"
	PermCustomerEdit   Permission = "basic:customer:edit"
	PermCustomerDelete Permission = "basic:customer:delete"
)

// Inbound
const (
	PermInboundAppointmentList Permission = "inbound:appointment:list"
	PermInboundOrderList       Permission = "inbound:order:list"
	PermInboundOrderAdd        Permission = "inbound:order:add"
	PermInboundOrderReceive    Permission = "inbound:order:receive"
	PermInboundOrderCancel     Permission = "inbound:order:cancel"
	PermInboundQCList          Permission = "inbound:qc:list"
	PermInboundPutawayList     Permission = "inbound:putaway:list"
	PermInboundPutawayComplete Permission = "inbound:putaway:complete"
)

// Inventory
const (
	PermInventoryQueryList    Permission = "inventory:query:list"
	PermInventoryQueryAlerts  Permission = "inventory:query:alerts"
	PermInventoryAdjustList   Permission = "inventory:adjust:list"
	PermInventoryAdjustAdd    Permission = "inventory:adjust:add"
	PermInventoryTransferList Permission = "inventory:transfer:list"
	PermInventoryTransferAdd  Permission = "inventory:transfer:add"
	PermInventoryCountList    Permission = "inventory:count:list"
)

// Outbound
const (
	PermOutboundOrderList       Permission = "outbound:order:list"
	PermOutboundOrderAdd        Permission = "outbound:order:add"
	PermOutboundOrderAllocate   Permission = "outbound:order:allocate"
	PermOutboundOrderCancel     Permission = "outbound:order:cancel"
	PermOutboundWaveList        Permission = "outbound:wave:list"
	PermOutboundPickingList     Permission = "outbound:picking:list"
	PermOutboundPickingGenerate Permission = "outbound:picking:generate"
	PermOutboundPickingComplete Permission = "outbound:picking:complete"
	PermOutboundReviewList      Permission = "outbound:review:list"
	PermOutboundPackGenerate    Permission = "outbound:pack:generate"
	PermOutboundShippingList    Permission = "outbound:shipping:list"
	PermOutboundShippingShip    Permission = "outbound:shipping:ship"
)

// Reports
const (
	PermReportInventoryDetail Permission = "report:inventory:detail"
	PermReportOpsInbound      Permission = "report:ops:inbound"
	PermDashboardData         Permission = "dashboard:data:data"
	PermReportCustomList      Permission = "report:custom:list"
	PermReportExportCreate    Permission = "report:export:create"
)

// System
const (
	PermSystemUserList    Permission = "system:user:list"
	PermSystemRoleList    Permission = "system:role:list"
	PermSystemMenuList    Permission = "system:menu:list"
	PermSystemSettingView Permission = "system:setting:view"
	PermSystemLogList     Permission = "system:log:list"
	PermSystemAPMMetrics  Permission = "system:apm:metrics"
)

// RoleSet is the set of roles held by a user
type RoleSet map[Permission]struct{}

// NewRoleSet builds a RoleSet from raw role codes
func NewRoleSet(roles ...string) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[Permission(r)] = struct{}{}
	}
	return set
}

// HasAny reports whether the set holds at least one of perms. An empty perms
// list is always satisfied.
func (s RoleSet) HasAny(perms ...Permission) bool {
	if len(perms) == 0 {
		return true
	}
	for _, p := range perms {
		if _, ok := s[p]; ok {
			return true
		}
	}
	return false
}
