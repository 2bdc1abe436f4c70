package wmsapi

import (
	"github.com/wms-platform/wms-web/pkg/api"
	"github.com/wms-platform/wms-web/pkg/domain"
)

// Auth types

// LoginRequest is the body of auth/login
type LoginRequest struct {
	Username string `json:"username" yaml:"username" validate:"required"`
	Password string `json:"password" yaml:"password" validate:"required"`
	// Code is the numeric captcha the user read
	Code string `json:"code" yaml:"code" validate:"required"`
	// Token identifies the captcha returned by CaptchaInit
	Token string `json:"token" yaml:"token" validate:"required"`
}

// LoginResult is the data member of a successful login
type LoginResult struct {
	Token string `json:"token"`
}

// Captcha is a numeric captcha challenge
type Captcha struct {
	Token       string `json:"token"`
	ImageBase64 string `json:"imageBase64"`
}

// CurrentUser is the signed-in user
type CurrentUser struct {
	ID       int64    `json:"id,omitempty"`
	Username string   `json:"username"`
	Nickname string   `json:"nickname,omitempty"`
	Roles    []string `json:"roles,omitempty"`
}

// Warehouse types

// Warehouse is a physical warehouse
type Warehouse struct {
	ID            int64            `json:"id"`
	Name          string           `json:"name"`
	Code          string           `json:"code"`
	Address       string           `json:"address,omitempty"`
	ContactPerson string           `json:"contactPerson,omitempty"`
	ContactPhone  string           `json:"contactPhone,omitempty"`
	TotalCapacity float64          `json:"totalCapacity,omitempty"`
	UsedCapacity  float64          `json:"usedCapacity,omitempty"`
	IsEnabled     bool             `json:"isEnabled"`
	CreatedTime   domain.Timestamp `json:"createdTime"`
	UpdatedTime   domain.Timestamp `json:"updatedTime"`
	CreatedBy     string           `json:"createdBy,omitempty"`
	UpdatedBy     string           `json:"updatedBy,omitempty"`
}

// WarehouseQuery filters the warehouse list
type WarehouseQuery struct {
	api.PageQuery
	Keyword   string           `url:"keyword,omitempty"`
	Name      string           `url:"name,omitempty"`
	Code      string           `url:"code,omitempty"`
	IsEnabled *bool            `url:"isEnabled,omitempty"`
	StartTime domain.Timestamp `url:"startTime,omitempty"`
	EndTime   domain.Timestamp `url:"endTime,omitempty"`
}

// WarehouseForm creates or updates a warehouse
type WarehouseForm struct {
	Name          string  `json:"name" yaml:"name" validate:"required"`
	Code          string  `json:"code" yaml:"code" validate:"required"`
	Address       string  `json:"address,omitempty" yaml:"address"`
	ContactPerson string  `json:"contactPerson,omitempty" yaml:"contactPerson"`
	ContactPhone  string  `json:"contactPhone,omitempty" yaml:"contactPhone"`
	TotalCapacity float64 `json:"totalCapacity,omitempty" yaml:"totalCapacity" validate:"gte=0"`
	IsEnabled     *bool   `json:"isEnabled,omitempty" yaml:"isEnabled"`
}

// WarehouseStats summarizes one warehouse
type WarehouseStats struct {
	TotalLocations    int64   `json:"totalLocations"`
	OccupiedLocations int64   `json:"occupiedLocations"`
	TotalInventory    int64   `json:"totalInventory"`
	TotalValue        float64 `json:"totalValue"`
	InboundOrders     int64   `json:"inboundOrders"`
	OutboundOrders    int64   `json:"outboundOrders"`
}

// Zone types

// StorageZone is an area of a warehouse with one purpose
type StorageZone struct {
	ID           int64            `json:"id"`
	WarehouseID  int64            `json:"warehouseId"`
	ZoneCode     string           `json:"zoneCode"`
	ZoneName     string           `json:"zoneName"`
	ZoneType     domain.ZoneType  `json:"zoneType"`
	Capacity     float64          `json:"capacity,omitempty"`
	UsedCapacity float64          `json:"usedCapacity,omitempty"`
	IsEnabled    bool             `json:"isEnabled"`
	CreatedTime  domain.Timestamp `json:"createdTime"`
	UpdatedTime  domain.Timestamp `json:"updatedTime"`
}

// StorageZoneQuery filters the zone list
type StorageZoneQuery struct {
	api.PageQuery
	WarehouseID int64  `url:"warehouseId,omitempty"`
	ZoneType    string `url:"zoneType,omitempty"`
	Keyword     string `url:"keyword,omitempty"`
	IsEnabled   *bool  `url:"isEnabled,omitempty"`
}

// StorageZoneForm creates or updates a zone
type StorageZoneForm struct {
	WarehouseID int64           `json:"warehouseId" yaml:"warehouseId" validate:"required"`
	ZoneCode    string          `json:"zoneCode" yaml:"zoneCode" validate:"required"`
	ZoneName    string          `json:"zoneName" yaml:"zoneName" validate:"required"`
	ZoneType    domain.ZoneType `json:"zoneType" yaml:"zoneType"`
	Capacity    float64         `json:"capacity,omitempty" yaml:"capacity" validate:"gte=0"`
	IsEnabled   *bool           `json:"isEnabled,omitempty" yaml:"isEnabled"`
}

// Location types

// StorageLocation is a single slot within a zone
type StorageLocation struct {
	ID            int64                 `json:"id"`
	ZoneID        int64                 `json:"zoneId"`
	LocationCode  string                `json:"locationCode"`
	LocationName  string                `json:"locationName,omitempty"`
	LocationType  *domain.LocationType  `json:"locationType,omitempty"`
	Capacity      float64               `json:"capacity,omitempty"`
	CurrentVolume float64               `json:"currentVolume,omitempty"`
	Status        domain.LocationStatus `json:"status"`
	CreatedTime   domain.Timestamp      `json:"createdTime"`
	UpdatedTime   domain.Timestamp      `json:"updatedTime"`
}

// StorageLocationQuery filters the location list
type StorageLocationQuery struct {
	api.PageQuery
	WarehouseID  int64  `url:"warehouseId,omitempty"`
	ZoneID       int64  `url:"zoneId,omitempty"`
	LocationType string `url:"locationType,omitempty"`
	Status       string `url:"status,omitempty"`
	Keyword      string `url:"keyword,omitempty"`
}

// StorageLocationForm creates or updates a location
type StorageLocationForm struct {
	ZoneID       int64                  `json:"zoneId" yaml:"zoneId" validate:"required"`
	LocationCode string                 `json:"locationCode" yaml:"locationCode" validate:"required"`
	LocationName string                 `json:"locationName,omitempty" yaml:"locationName"`
	LocationType *domain.LocationType   `json:"locationType,omitempty" yaml:"locationType"`
	Capacity     float64                `json:"capacity,omitempty" yaml:"capacity" validate:"gte=0"`
	Status       *domain.LocationStatus `json:"status,omitempty" yaml:"status"`
}

// BatchLocationForm generates a grid of locations: one per row, level and
// position in the given ranges.
type BatchLocationForm struct {
	ZoneID         int64                `json:"zoneId" yaml:"zoneId" validate:"required"`
	LocationType   *domain.LocationType `json:"locationType,omitempty" yaml:"locationType"`
	Capacity       float64              `json:"capacity,omitempty" yaml:"capacity" validate:"gte=0"`
	StartRow       int                  `json:"startRow" yaml:"startRow" validate:"gte=1"`
	EndRow         int                  `json:"endRow" yaml:"endRow" validate:"gtefield=StartRow"`
	StartLevel     int                  `json:"startLevel" yaml:"startLevel" validate:"gte=1"`
	EndLevel       int                  `json:"endLevel" yaml:"endLevel" validate:"gtefield=StartLevel"`
	StartPosition  int                  `json:"startPosition" yaml:"startPosition" validate:"gte=1"`
	EndPosition    int                  `json:"endPosition" yaml:"endPosition" validate:"gtefield=StartPosition"`
	ZoneCodePrefix string               `json:"zoneCodePrefix,omitempty" yaml:"zoneCodePrefix"`
}

// Count returns how many locations the form generates
func (f BatchLocationForm) Count() int {
	span := func(from, to int) int {
		if to < from {
			return 0
		}
		return to - from + 1
	}
	return span(f.StartRow, f.EndRow) * span(f.StartLevel, f.EndLevel) * span(f.StartPosition, f.EndPosition)
}

// Inventory types

// Inventory is the stock of one SKU batch at one location
type Inventory struct {
	ID                int64  `json:"id"`
	WarehouseID       int64  `json:"warehouseId"`
	WarehouseName     string `json:"warehouseName"`
	LocationID        int64  `json:"locationId"`
	LocationCode      string `json:"locationCode"`
	ProductSkuID      int64  `json:"productSkuId"`
	ProductName       string `json:"productName"`
	SkuCode           string `json:"skuCode"`
	BatchNo           string `json:"batchNo,omitempty"`
	ProductionDate    string `json:"productionDate,omitempty"`
	ExpiryDate        string `json:"expiryDate,omitempty"`
	Quantity          int64  `json:"quantity"`
	LockedQuantity    int64  `json:"lockedQuantity"`
	AvailableQuantity int64  `json:"availableQuantity"`
	CreatedTime       string `json:"createdTime"`
}

// InventoryQuery filters the inventory list
type InventoryQuery struct {
	api.PageQuery
	WarehouseID  int64  `url:"warehouseId,omitempty"`
	LocationID   int64  `url:"locationId,omitempty"`
	ProductSkuID int64  `url:"productSkuId,omitempty"`
	SkuCode      string `url:"skuCode,omitempty"`
	BatchNo      string `url:"batchNo,omitempty"`
	HasStock     *bool  `url:"hasStock,omitempty"`
}

// AdjustRequest sets the quantity of an inventory record
type AdjustRequest struct {
	Quantity int64  `json:"quantity" yaml:"quantity" validate:"gte=0"`
	Reason   string `json:"reason" yaml:"reason" validate:"required"`
}

// TransferRequest moves stock to another location
type TransferRequest struct {
	ToLocationID int64  `json:"toLocationId" yaml:"toLocationId" validate:"required"`
	Quantity     int64  `json:"quantity" yaml:"quantity" validate:"gt=0"`
	Reason       string `json:"reason" yaml:"reason" validate:"required"`
}

// InventoryTransaction is one stock movement
type InventoryTransaction struct {
	ID                  int64  `json:"id"`
	ProductSkuID        int64  `json:"productSkuId"`
	ProductName         string `json:"productName"`
	SkuCode             string `json:"skuCode"`
	BatchNo             string `json:"batchNo,omitempty"`
	WarehouseID         int64  `json:"warehouseId"`
	WarehouseName       string `json:"warehouseName"`
	LocationID          int64  `json:"locationId"`
	LocationCode        string `json:"locationCode"`
	TransactionType     int    `json:"transactionType"`
	TransactionTypeName string `json:"transactionTypeName"`
	RelatedOrderNo      string `json:"relatedOrderNo,omitempty"`
	QuantityChange      int64  `json:"quantityChange"`
	QuantityAfter       int64  `json:"quantityAfter"`
	TransactionTime     string `json:"transactionTime"`
	Operator            int64  `json:"operator,omitempty"`
	OperatorName        string `json:"operatorName,omitempty"`
}

// TransactionQuery filters the transaction log
type TransactionQuery struct {
	api.PageQuery
	ProductSkuID    int64  `url:"productSkuId,omitempty"`
	WarehouseID     int64  `url:"warehouseId,omitempty"`
	LocationID      int64  `url:"locationId,omitempty"`
	TransactionType int    `url:"transactionType,omitempty"`
	StartTime       string `url:"startTime,omitempty"`
	EndTime         string `url:"endTime,omitempty"`
}

// InventoryStats summarizes stock across warehouses
type InventoryStats struct {
	TotalProducts  int64                     `json:"totalProducts"`
	TotalQuantity  int64                     `json:"totalQuantity"`
	TotalValue     float64                   `json:"totalValue"`
	WarehouseStats []WarehouseInventoryStats `json:"warehouseStats"`
}

// WarehouseInventoryStats summarizes stock in one warehouse
type WarehouseInventoryStats struct {
	WarehouseID   int64   `json:"warehouseId"`
	WarehouseName string  `json:"warehouseName"`
	ProductCount  int64   `json:"productCount"`
	TotalQuantity int64   `json:"totalQuantity"`
	TotalValue    float64 `json:"totalValue"`
}

// Order types

// OrderQuery filters inbound and outbound order lists
type OrderQuery struct {
	api.PageQuery
	OrderNo     string `url:"orderNo,omitempty"`
	WarehouseID int64  `url:"warehouseId,omitempty"`
	SupplierID  int64  `url:"supplierId,omitempty"`
	CustomerID  int64  `url:"customerId,omitempty"`
	Status      *int   `url:"status,omitempty"`
	StartTime   string `url:"startTime,omitempty"`
	EndTime     string `url:"endTime,omitempty"`
}

// InboundOrder is a receipt expected from a supplier
type InboundOrder struct {
	ID                    int64              `json:"id"`
	OrderNo               string             `json:"orderNo"`
	WarehouseID           int64              `json:"warehouseId"`
	WarehouseName         string             `json:"warehouseName"`
	SupplierID            int64              `json:"supplierId"`
	SupplierName          string             `json:"supplierName"`
	Status                int                `json:"status"`
	StatusName            string             `json:"statusName"`
	TotalExpectedQuantity int64              `json:"totalExpectedQuantity"`
	TotalReceivedQuantity int64              `json:"totalReceivedQuantity"`
	CreatedTime           string             `json:"createdTime"`
	Items                 []InboundOrderItem `json:"items"`
}

// InboundOrderItem is one SKU line of an inbound order
type InboundOrderItem struct {
	ID               int64  `json:"id"`
	InboundOrderID   int64  `json:"inboundOrderId"`
	ProductSkuID     int64  `json:"productSkuId"`
	ProductName      string `json:"productName"`
	SkuCode          string `json:"skuCode"`
	ExpectedQuantity int64  `json:"expectedQuantity"`
	ReceivedQuantity int64  `json:"receivedQuantity"`
	CreatedTime      string `json:"createdTime"`
}

// InboundOrderForm creates or updates an inbound order
type InboundOrderForm struct {
	WarehouseID int64             `json:"warehouseId,omitempty" yaml:"warehouseId" validate:"required"`
	SupplierID  int64             `json:"supplierId,omitempty" yaml:"supplierId" validate:"required"`
	Items       []InboundLineForm `json:"items,omitempty" yaml:"items" validate:"required,min=1,dive"`
}

// InboundLineForm is one expected SKU line
type InboundLineForm struct {
	ProductSkuID     int64 `json:"productSkuId" yaml:"productSkuId" validate:"required"`
	ExpectedQuantity int64 `json:"expectedQuantity" yaml:"expectedQuantity" validate:"gt=0"`
}

// ReceiptLine records what actually arrived for one SKU
type ReceiptLine struct {
	ProductSkuID     int64  `json:"productSkuId" yaml:"productSkuId" validate:"required"`
	ReceivedQuantity int64  `json:"receivedQuantity" yaml:"receivedQuantity" validate:"gte=0"`
	BatchNo          string `json:"batchNo,omitempty" yaml:"batchNo"`
}

// PutawayTask moves received goods to a storage location
type PutawayTask struct {
	ID                 int64  `json:"id"`
	TaskNo             string `json:"taskNo"`
	InboundOrderItemID int64  `json:"inboundOrderItemId"`
	ProductName        string `json:"productName"`
	SkuCode            string `json:"skuCode"`
	FromLocationID     int64  `json:"fromLocationId,omitempty"`
	FromLocationCode   string `json:"fromLocationCode,omitempty"`
	ToLocationID       int64  `json:"toLocationId"`
	ToLocationCode     string `json:"toLocationCode"`
	Quantity           int64  `json:"quantity"`
	Status             int    `json:"status"`
	StatusName         string `json:"statusName"`
	Operator           int64  `json:"operator,omitempty"`
	OperatorName       string `json:"operatorName,omitempty"`
	CompletedTime      string `json:"completedTime,omitempty"`
	CreatedTime        string `json:"createdTime"`
}

// OutboundOrder is a shipment to a customer
type OutboundOrder struct {
	ID            int64               `json:"id"`
	OrderNo       string              `json:"orderNo"`
	WarehouseID   int64               `json:"warehouseId"`
	WarehouseName string              `json:"warehouseName"`
	CustomerID    int64               `json:"customerId"`
	CustomerName  string              `json:"customerName"`
	Status        int                 `json:"status"`
	StatusName    string              `json:"statusName"`
	CustomerInfo  string              `json:"customerInfo"`
	CreatedTime   string              `json:"createdTime"`
	Items         []OutboundOrderItem `json:"items"`
}

// OutboundOrderItem is one SKU line of an outbound order
type OutboundOrderItem struct {
	ID                int64  `json:"id"`
	OutboundOrderID   int64  `json:"outboundOrderId"`
	ProductSkuID      int64  `json:"productSkuId"`
	ProductName       string `json:"productName"`
	SkuCode           string `json:"skuCode"`
	Quantity          int64  `json:"quantity"`
	AllocatedQuantity int64  `json:"allocatedQuantity"`
	PickedQuantity    int64  `json:"pickedQuantity"`
	CreatedTime       string `json:"createdTime"`
}

// OutboundOrderForm creates or updates an outbound order
type OutboundOrderForm struct {
	WarehouseID  int64              `json:"warehouseId,omitempty" yaml:"warehouseId" validate:"required"`
	CustomerID   int64              `json:"customerId,omitempty" yaml:"customerId" validate:"required"`
	CustomerInfo string             `json:"customerInfo,omitempty" yaml:"customerInfo"`
	Items        []OutboundLineForm `json:"items,omitempty" yaml:"items" validate:"required,min=1,dive"`
}

// OutboundLineForm is one ordered SKU line
type OutboundLineForm struct {
	ProductSkuID int64 `json:"productSkuId" yaml:"productSkuId" validate:"required"`
	Quantity     int64 `json:"quantity" yaml:"quantity" validate:"gt=0"`
}

// PickingTask takes stock from a location for an outbound order
type PickingTask struct {
	ID               int64  `json:"id"`
	TaskNo           string `json:"taskNo"`
	WaveNo           string `json:"waveNo,omitempty"`
	OutboundOrderID  int64  `json:"outboundOrderId"`
	OutboundOrderNo  string `json:"outboundOrderNo"`
	ProductSkuID     int64  `json:"productSkuId"`
	ProductName      string `json:"productName"`
	SkuCode          string `json:"skuCode"`
	FromLocationID   int64  `json:"fromLocationId"`
	FromLocationCode string `json:"fromLocationCode"`
	Quantity         int64  `json:"quantity"`
	Status           int    `json:"status"`
	StatusName       string `json:"statusName"`
	PickedQuantity   int64  `json:"pickedQuantity"`
	CreatedTime      string `json:"createdTime"`
}

// Product types

// ProductSku is a stock keeping unit
type ProductSku struct {
	ID              int64  `json:"id"`
	SkuCode         string `json:"skuCode"`
	Name            string `json:"name"`
	Specification   string `json:"specification,omitempty"`
	SupplierID      int64  `json:"supplierId,omitempty"`
	SupplierName    string `json:"supplierName,omitempty"`
	IsBatchManaged  bool   `json:"isBatchManaged"`
	IsExpiryManaged bool   `json:"isExpiryManaged"`
	ShelfLifeDays   int    `json:"shelfLifeDays,omitempty"`
	CreatedTime     string `json:"createdTime"`
}

// ProductQuery filters the SKU list
type ProductQuery struct {
	api.PageQuery
	SkuCode         string `url:"skuCode,omitempty"`
	Name            string `url:"name,omitempty"`
	SupplierID      int64  `url:"supplierId,omitempty"`
	IsBatchManaged  *bool  `url:"isBatchManaged,omitempty"`
	IsExpiryManaged *bool  `url:"isExpiryManaged,omitempty"`
}

// ProductForm creates or updates a SKU
type ProductForm struct {
	SkuCode         string `json:"skuCode" yaml:"skuCode" validate:"required"`
	Name            string `json:"name" yaml:"name" validate:"required"`
	Specification   string `json:"specification,omitempty" yaml:"specification"`
	SupplierID      int64  `json:"supplierId,omitempty" yaml:"supplierId"`
	IsBatchManaged  bool   `json:"isBatchManaged,omitempty" yaml:"isBatchManaged"`
	IsExpiryManaged bool   `json:"isExpiryManaged,omitempty" yaml:"isExpiryManaged"`
	ShelfLifeDays   int    `json:"shelfLifeDays,omitempty" yaml:"shelfLifeDays" validate:"gte=0"`
}

// ProductInventory is the stock of one SKU in one warehouse
type ProductInventory struct {
	ProductSkuID      int64               `json:"productSkuId"`
	ProductName       string              `json:"productName"`
	WarehouseID       int64               `json:"warehouseId"`
	WarehouseName     string              `json:"warehouseName"`
	TotalQuantity     int64               `json:"totalQuantity"`
	AvailableQuantity int64               `json:"availableQuantity"`
	LockedQuantity    int64               `json:"lockedQuantity"`
	Locations         []InventoryLocation `json:"locations"`
}

// InventoryLocation is the stock of a SKU at one location
type InventoryLocation struct {
	LocationID     int64  `json:"locationId"`
	LocationCode   string `json:"locationCode"`
	BatchNo        string `json:"batchNo,omitempty"`
	ProductionDate string `json:"productionDate,omitempty"`
	ExpiryDate     string `json:"expiryDate,omitempty"`
	Quantity       int64  `json:"quantity"`
	LockedQuantity int64  `json:"lockedQuantity"`
}

// Partner types

// Supplier delivers inbound goods
type Supplier struct {
	ID            int64  `json:"id"`
	SupplierCode  string `json:"supplierCode"`
	SupplierName  string `json:"supplierName"`
	ContactPerson string `json:"contactPerson,omitempty"`
}

// PartnerQuery filters supplier and customer lists
type PartnerQuery struct {
	api.PageQuery
	Keyword   string `url:"keyword,omitempty"`
	IsEnabled *bool  `url:"isEnabled,omitempty"`
}

// Customer receives outbound goods
type Customer struct {
	ID            int64   `json:"id,omitempty" yaml:"id"`
	CustomerCode  string  `json:"customerCode,omitempty" yaml:"customerCode"`
	CustomerName  string  `json:"customerName,omitempty" yaml:"customerName"`
	CustomerType  string  `json:"customerType,omitempty" yaml:"customerType"`
	ContactPerson string  `json:"contactPerson,omitempty" yaml:"contactPerson"`
	ContactPhone  string  `json:"contactPhone,omitempty" yaml:"contactPhone"`
	Email         string  `json:"email,omitempty" yaml:"email" validate:"omitempty,email"`
	Address       string  `json:"address,omitempty" yaml:"address"`
	CreditRating  string  `json:"creditRating,omitempty" yaml:"creditRating"`
	CreditLimit   float64 `json:"creditLimit,omitempty" yaml:"creditLimit" validate:"gte=0"`
	IsEnabled     *bool   `json:"isEnabled,omitempty" yaml:"isEnabled"`
	CreatedTime   string  `json:"createdTime,omitempty" yaml:"-"`
}

// Dashboard types

// DashboardStats are the headline dashboard counters
type DashboardStats struct {
	TotalWarehouses int64   `json:"totalWarehouses"`
	TotalProducts   int64   `json:"totalProducts"`
	TotalInventory  int64   `json:"totalInventory"`
	TotalValue      float64 `json:"totalValue"`
	TodayInbound    int64   `json:"todayInbound"`
	TodayOutbound   int64   `json:"todayOutbound"`
	PendingInbound  int64   `json:"pendingInbound"`
	PendingOutbound int64   `json:"pendingOutbound"`
	LowStockAlerts  int64   `json:"lowStockAlerts"`
	ExpiringAlerts  int64   `json:"expiringAlerts"`
}

// InventoryAlert flags low or expiring stock
type InventoryAlert struct {
	ID                int64            `json:"id"`
	Type              domain.AlertType `json:"type"`
	TypeName          string           `json:"typeName"`
	ProductSkuID      int64            `json:"productSkuId"`
	ProductName       string           `json:"productName"`
	SkuCode           string           `json:"skuCode"`
	WarehouseID       int64            `json:"warehouseId"`
	WarehouseName     string           `json:"warehouseName"`
	CurrentQuantity   int64            `json:"currentQuantity"`
	ThresholdQuantity int64            `json:"thresholdQuantity,omitempty"`
	ExpiryDate        string           `json:"expiryDate,omitempty"`
	DaysToExpiry      int              `json:"daysToExpiry,omitempty"`
	CreatedTime       string           `json:"createdTime"`
}

// RecentActivity is one entry of the activity feed
type RecentActivity struct {
	ID          int64               `json:"id"`
	Type        domain.ActivityType `json:"type"`
	TypeName    string              `json:"typeName"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Operator    string              `json:"operator,omitempty"`
	CreatedTime string              `json:"createdTime"`
}

// WarehouseOverview summarizes stock in one warehouse
type WarehouseOverview struct {
	WarehouseID       int64   `json:"warehouseId"`
	WarehouseName     string  `json:"warehouseName"`
	TotalLocations    int64   `json:"totalLocations"`
	OccupiedLocations int64   `json:"occupiedLocations"`
	TotalProducts     int64   `json:"totalProducts"`
	TotalQuantity     int64   `json:"totalQuantity"`
	TotalValue        float64 `json:"totalValue"`
}

// TodayOperations counts today's warehouse work
type TodayOperations struct {
	InboundOrders     int64 `json:"inboundOrders"`
	OutboundOrders    int64 `json:"outboundOrders"`
	PutawayTasks      int64 `json:"putawayTasks"`
	PickingTasks      int64 `json:"pickingTasks"`
	CompletedInbound  int64 `json:"completedInbound"`
	CompletedOutbound int64 `json:"completedOutbound"`
	CompletedPutaway  int64 `json:"completedPutaway"`
	CompletedPicking  int64 `json:"completedPicking"`
}
