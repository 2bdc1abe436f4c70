package testutil

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/wms-platform/wms-web/pkg/domain"
	"github.com/wms-platform/wms-web/pkg/wmsapi"
)

// Inventory transaction types
const (
	txInbound  = 1
	txOutbound = 2
	txAdjust   = 3
	txTransfer = 4
)

var txNames = map[int]string{
	txInbound:  "INBOUND",
	txOutbound: "OUTBOUND",
	txAdjust:   "ADJUST",
	txTransfer: "TRANSFER",
}

// Inbound order states
const (
	inboundPending = iota
	inboundReceived
	inboundCompleted
)

var inboundNames = []string{"PENDING", "RECEIVED", "COMPLETED"}

// Outbound order states
const (
	outboundCreated = iota
	outboundAllocated
	outboundPicking
	outboundPicked
	outboundShipped
)

var outboundNames = []string{"CREATED", "ALLOCATED", "PICKING", "PICKED", "SHIPPED"}

// Task states
const (
	taskPending = iota
	taskCompleted
)

var taskNames = []string{"PENDING", "COMPLETED"}

// LowStockThreshold is the quantity under which the dashboard raises an alert
const LowStockThreshold = 10

const timeLayout = "2006-01-02 15:04:05"

type allocation struct {
	itemID      int64
	inventoryID int64
	quantity    int64
}

type store struct {
	// mu serializes workflows that touch several collections
	mu sync.Mutex

	warehouses   *collection[wmsapi.Warehouse]
	zones        *collection[wmsapi.StorageZone]
	locations    *collection[wmsapi.StorageLocation]
	products     *collection[wmsapi.ProductSku]
	suppliers    *collection[wmsapi.Supplier]
	customers    *collection[wmsapi.Customer]
	inventory    *collection[wmsapi.Inventory]
	transactions *collection[wmsapi.InventoryTransaction]
	inbound      *collection[wmsapi.InboundOrder]
	putaway      *collection[wmsapi.PutawayTask]
	outbound     *collection[wmsapi.OutboundOrder]
	picking      *collection[wmsapi.PickingTask]
	activities   *collection[wmsapi.RecentActivity]

	allocations map[int64][]allocation
	seq         atomic.Int64
}

func newStore() *store {
	return &store{
		warehouses:   newCollection(func(v *wmsapi.Warehouse, id int64) { v.ID = id }),
		zones:        newCollection(func(v *wmsapi.StorageZone, id int64) { v.ID = id }),
		locations:    newCollection(func(v *wmsapi.StorageLocation, id int64) { v.ID = id }),
		products:     newCollection(func(v *wmsapi.ProductSku, id int64) { v.ID = id }),
		suppliers:    newCollection(func(v *wmsapi.Supplier, id int64) { v.ID = id }),
		customers:    newCollection(func(v *wmsapi.Customer, id int64) { v.ID = id }),
		inventory:    newCollection(func(v *wmsapi.Inventory, id int64) { v.ID = id }),
		transactions: newCollection(func(v *wmsapi.InventoryTransaction, id int64) { v.ID = id }),
		inbound:      newCollection(func(v *wmsapi.InboundOrder, id int64) { v.ID = id }),
		putaway:      newCollection(func(v *wmsapi.PutawayTask, id int64) { v.ID = id }),
		outbound:     newCollection(func(v *wmsapi.OutboundOrder, id int64) { v.ID = id }),
		picking:      newCollection(func(v *wmsapi.PickingTask, id int64) { v.ID = id }),
		activities:   newCollection(func(v *wmsapi.RecentActivity, id int64) { v.ID = id }),
		allocations:  make(map[int64][]allocation),
	}
}

// Seed IDs, stable for tests
const (
	SeedWarehouseMain     int64 = 1
	SeedWarehouseOverflow int64 = 2
	SeedZoneStorage       int64 = 1
	SeedZonePicking       int64 = 2
	SeedLocationA         int64 = 1
	SeedLocationB         int64 = 2
	SeedLocationPick      int64 = 3
	SeedProductWidget     int64 = 1
	SeedProductGadget     int64 = 2
	SeedSupplier          int64 = 1
	SeedCustomer          int64 = 1
	SeedInventoryWidget   int64 = 1
	SeedInventoryGadget   int64 = 2
)

func (s *store) seed() {
	now := domain.Now()
	enabled, disabled := true, false
	shelf := domain.LocationTypeShelf

	s.warehouses.add(wmsapi.Warehouse{Name: "Main DC", Code: "WH01", Address: "1 Harbour Road", ContactPerson: "Lee", TotalCapacity: 10000, IsEnabled: enabled, CreatedTime: now, UpdatedTime: now, CreatedBy: AdminUser})
	s.warehouses.add(wmsapi.Warehouse{Name: "Overflow", Code: "WH02", TotalCapacity: 2500, IsEnabled: disabled, CreatedTime: now, UpdatedTime: now, CreatedBy: AdminUser})

	s.zones.add(wmsapi.StorageZone{WarehouseID: SeedWarehouseMain, ZoneCode: "Z-STO", ZoneName: "Bulk storage", ZoneType: domain.ZoneTypeStorage, Capacity: 6000, IsEnabled: true, CreatedTime: now, UpdatedTime: now})
	s.zones.add(wmsapi.StorageZone{WarehouseID: SeedWarehouseMain, ZoneCode: "Z-PCK", ZoneName: "Pick face", ZoneType: domain.ZoneTypePicking, Capacity: 1000, IsEnabled: true, CreatedTime: now, UpdatedTime: now})

	s.locations.add(wmsapi.StorageLocation{ZoneID: SeedZoneStorage, LocationCode: "A-01-01-01", LocationType: &shelf, Capacity: 200, Status: domain.LocationStatusAvailable, CreatedTime: now, UpdatedTime: now})
	s.locations.add(wmsapi.StorageLocation{ZoneID: SeedZoneStorage, LocationCode: "A-01-01-02", LocationType: &shelf, Capacity: 200, Status: domain.LocationStatusAvailable, CreatedTime: now, UpdatedTime: now})
	s.locations.add(wmsapi.StorageLocation{ZoneID: SeedZonePicking, LocationCode: "P-01", Capacity: 50, Status: domain.LocationStatusOccupied, CreatedTime: now, UpdatedTime: now})

	s.suppliers.add(wmsapi.Supplier{SupplierCode: "SUP-ACME", SupplierName: "Acme Supply", ContactPerson: "Road Runner"})
	s.customers.add(wmsapi.Customer{CustomerCode: "CUS-GLOBEX", CustomerName: "Globex", CustomerType: "RETAIL", Email: "buyer@globex.test", CreditLimit: 50000, IsEnabled: &enabled, CreatedTime: stamp()})

	s.products.add(wmsapi.ProductSku{SkuCode: "SKU-1001", Name: "Widget", Specification: "10cm", SupplierID: SeedSupplier, SupplierName: "Acme Supply", CreatedTime: stamp()})
	s.products.add(wmsapi.ProductSku{SkuCode: "SKU-1002", Name: "Gadget", SupplierID: SeedSupplier, SupplierName: "Acme Supply", IsBatchManaged: true, IsExpiryManaged: true, ShelfLifeDays: 180, CreatedTime: stamp()})

	s.putStock(SeedProductWidget, SeedLocationA, "", 120)
	s.putStock(SeedProductGadget, SeedLocationPick, "B-2401", 8)

	s.activity(domain.ActivitySystem, "Backend started", "seed data loaded", AdminUser)
}

func stamp() string {
	return time.Now().Format(timeLayout)
}

func (s *store) nextNo(prefix string) string {
	return fmt.Sprintf("%s%s%04d", prefix, time.Now().Format("20060102"), s.seq.Add(1))
}

func (s *store) activity(kind domain.ActivityType, title, description, operator string) {
	s.activities.add(wmsapi.RecentActivity{
		Type:        kind,
		TypeName:    kind.String(),
		Title:       title,
		Description: description,
		Operator:    operator,
		CreatedTime: stamp(),
	})
}

// warehouseOf resolves the warehouse holding a location
func (s *store) warehouseOf(locationID int64) (wmsapi.Warehouse, bool) {
	loc, found := s.locations.get(locationID)
	if !found {
		return wmsapi.Warehouse{}, false
	}
	zone, found := s.zones.get(loc.ZoneID)
	if !found {
		return wmsapi.Warehouse{}, false
	}
	return s.warehouses.get(zone.WarehouseID)
}

func (s *store) warehouseName(id int64) string {
	w, _ := s.warehouses.get(id)
	return w.Name
}

// putStock adds quantity of a SKU batch at a location, merging into an
// existing record when there is one.
func (s *store) putStock(skuID, locationID int64, batchNo string, quantity int64) (wmsapi.Inventory, error) {
	sku, found := s.products.get(skuID)
	if !found {
		return wmsapi.Inventory{}, fmt.Errorf("product %d not found", skuID)
	}
	loc, found := s.locations.get(locationID)
	if !found {
		return wmsapi.Inventory{}, fmt.Errorf("location %d not found", locationID)
	}
	wh, found := s.warehouseOf(locationID)
	if !found {
		return wmsapi.Inventory{}, fmt.Errorf("location %d has no warehouse", locationID)
	}

	existing := s.inventory.list(func(inv wmsapi.Inventory) bool {
		return inv.LocationID == locationID && inv.ProductSkuID == skuID && inv.BatchNo == batchNo
	})
	if len(existing) > 0 {
		return s.inventory.update(existing[0].ID, func(inv *wmsapi.Inventory) error {
			inv.Quantity += quantity
			inv.AvailableQuantity = inv.Quantity - inv.LockedQuantity
			return nil
		})
	}

	s.locations.update(locationID, func(l *wmsapi.StorageLocation) error {
		l.Status = domain.LocationStatusOccupied
		return nil
	})
	return s.inventory.add(wmsapi.Inventory{
		WarehouseID:       wh.ID,
		WarehouseName:     wh.Name,
		LocationID:        loc.ID,
		LocationCode:      loc.LocationCode,
		ProductSkuID:      sku.ID,
		ProductName:       sku.Name,
		SkuCode:           sku.SkuCode,
		BatchNo:           batchNo,
		Quantity:          quantity,
		AvailableQuantity: quantity,
		CreatedTime:       stamp(),
	}), nil
}

func (s *store) recordTx(inv wmsapi.Inventory, kind int, change int64, orderNo, operator string) {
	s.transactions.add(wmsapi.InventoryTransaction{
		ProductSkuID:        inv.ProductSkuID,
		ProductName:         inv.ProductName,
		SkuCode:             inv.SkuCode,
		BatchNo:             inv.BatchNo,
		WarehouseID:         inv.WarehouseID,
		WarehouseName:       inv.WarehouseName,
		LocationID:          inv.LocationID,
		LocationCode:        inv.LocationCode,
		TransactionType:     kind,
		TransactionTypeName: txNames[kind],
		RelatedOrderNo:      orderNo,
		QuantityChange:      change,
		QuantityAfter:       inv.Quantity,
		TransactionTime:     stamp(),
		OperatorName:        operator,
	})
}

func (s *store) locationsIn(warehouseID int64) []wmsapi.StorageLocation {
	return s.locations.list(func(l wmsapi.StorageLocation) bool {
		zone, found := s.zones.get(l.ZoneID)
		return found && zone.WarehouseID == warehouseID
	})
}

func (s *store) stockIn(warehouseID int64) []wmsapi.Inventory {
	return s.inventory.list(func(inv wmsapi.Inventory) bool {
		return warehouseID == 0 || inv.WarehouseID == warehouseID
	})
}

func (s *store) warehouseStats(id int64) wmsapi.WarehouseStats {
	var st wmsapi.WarehouseStats
	for _, l := range s.locationsIn(id) {
		st.TotalLocations++
		if l.Status == domain.LocationStatusOccupied {
			st.OccupiedLocations++
		}
	}
	for _, inv := range s.stockIn(id) {
		st.TotalInventory += inv.Quantity
	}
	st.InboundOrders = int64(len(s.inbound.list(func(o wmsapi.InboundOrder) bool { return o.WarehouseID == id })))
	st.OutboundOrders = int64(len(s.outbound.list(func(o wmsapi.OutboundOrder) bool { return o.WarehouseID == id })))
	return st
}

func (s *store) inventoryStats(warehouseID int64) wmsapi.InventoryStats {
	stats := wmsapi.InventoryStats{WarehouseStats: []wmsapi.WarehouseInventoryStats{}}
	skus := map[int64]struct{}{}
	for _, w := range s.warehouses.list(nil) {
		if warehouseID != 0 && w.ID != warehouseID {
			continue
		}
		ws := wmsapi.WarehouseInventoryStats{WarehouseID: w.ID, WarehouseName: w.Name}
		perWarehouse := map[int64]struct{}{}
		for _, inv := range s.stockIn(w.ID) {
			ws.TotalQuantity += inv.Quantity
			perWarehouse[inv.ProductSkuID] = struct{}{}
			skus[inv.ProductSkuID] = struct{}{}
		}
		ws.ProductCount = int64(len(perWarehouse))
		stats.TotalQuantity += ws.TotalQuantity
		stats.WarehouseStats = append(stats.WarehouseStats, ws)
	}
	stats.TotalProducts = int64(len(skus))
	return stats
}

func (s *store) alerts() []wmsapi.InventoryAlert {
	out := []wmsapi.InventoryAlert{}
	for _, inv := range s.inventory.list(nil) {
		if inv.Quantity >= LowStockThreshold {
			continue
		}
		out = append(out, wmsapi.InventoryAlert{
			ID:                int64(len(out) + 1),
			Type:              domain.AlertLowStock,
			TypeName:          "low stock",
			ProductSkuID:      inv.ProductSkuID,
			ProductName:       inv.ProductName,
			SkuCode:           inv.SkuCode,
			WarehouseID:       inv.WarehouseID,
			WarehouseName:     inv.WarehouseName,
			CurrentQuantity:   inv.Quantity,
			ThresholdQuantity: LowStockThreshold,
			CreatedTime:       stamp(),
		})
	}
	return out
}
