package testutil

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wms-platform/wms-web/pkg/api"
	"github.com/wms-platform/wms-web/pkg/domain"
	"github.com/wms-platform/wms-web/pkg/wmsapi"
)

// MaxBatchLocations bounds a single batch location request
const MaxBatchLocations = 500

func (b *Backend) resourceRoutes(r *gin.RouterGroup) {
	r.GET("/warehouses", b.listWarehouses)
	r.POST("/warehouses", b.createWarehouse)
	r.GET("/warehouses/:id", getOne(b.store.warehouses, "warehouse"))
	r.PUT("/warehouses/:id", b.updateWarehouse)
	r.DELETE("/warehouses/:id", b.deleteWarehouse)
	r.PATCH("/warehouses/:id/status", b.setWarehouseStatus)
	r.GET("/warehouses/:id/stats", b.warehouseStats)

	r.GET("/storage-zones", b.listZones)
	r.POST("/storage-zones", b.createZone)
	r.PUT("/storage-zones/:id", b.updateZone)
	r.DELETE("/storage-zones/:id", deleteOne(b.store.zones, "storage zone"))
	r.PATCH("/storage-zones/:id/status", b.setZoneStatus)

	r.GET("/storage-locations", b.listLocations)
	r.POST("/storage-locations", b.createLocation)
	r.POST("/storage-locations/batch", b.batchLocations)
	r.PUT("/storage-locations/:id", b.updateLocation)
	r.DELETE("/storage-locations/:id", deleteOne(b.store.locations, "storage location"))
	r.PATCH("/storage-locations/:id/status", b.setLocationStatus)

	r.GET("/inventory", b.listInventory)
	r.GET("/inventory/transactions", b.listTransactions)
	r.GET("/inventory/stats", b.inventoryStats)
	r.GET("/inventory/:id", getOne(b.store.inventory, "inventory"))
	r.POST("/inventory/:id/adjust", b.adjustInventory)
	r.POST("/inventory/:id/transfer", b.transferInventory)

	r.GET("/inbound-order", b.listInbound)
	r.POST("/inbound-order", b.createInbound)
	r.GET("/inbound-order/:id", getOne(b.store.inbound, "inbound order"))
	r.PUT("/inbound-order/:id", b.updateInbound)
	r.DELETE("/inbound-order/:id", b.deleteInbound)
	r.POST("/inbound-order/:id/confirm-receipt", b.confirmReceipt)
	r.GET("/inbound-order/:id/putaway-tasks", b.putawayTasks)
	r.POST("/putaway-task/:id/complete", b.completePutaway)

	r.GET("/outbound-order", b.listOutbound)
	r.POST("/outbound-order", b.createOutbound)
	r.GET("/outbound-order/:id", getOne(b.store.outbound, "outbound order"))
	r.PUT("/outbound-order/:id", b.updateOutbound)
	r.DELETE("/outbound-order/:id", b.deleteOutbound)
	r.POST("/outbound-order/:id/allocate", b.allocate)
	r.POST("/outbound-order/:id/generate-picking-tasks", b.generatePickingTasks)
	r.GET("/outbound-order/:id/picking-tasks", b.pickingTasks)
	r.POST("/picking-task/:id/complete", b.completePicking)
	r.POST("/outbound-order/:id/ship", b.ship)

	r.GET("/product-sku", b.listProducts)
	r.POST("/product-sku", b.createProduct)
	r.GET("/product-sku/:id", getOne(b.store.products, "product"))
	r.PUT("/product-sku/:id", b.updateProduct)
	r.DELETE("/product-sku/:id", deleteOne(b.store.products, "product"))
	r.GET("/product-sku/:id/inventory", b.productInventory)

	r.GET("/suppliers", b.listSuppliers)

	r.GET("/customers", b.listCustomers)
	r.POST("/customers", b.createCustomer)
	r.GET("/customers/:id", getOne(b.store.customers, "customer"))
	r.PUT("/customers/:id", b.updateCustomer)
	r.DELETE("/customers/:id", deleteOne(b.store.customers, "customer"))
	r.PATCH("/customers/:id/status", b.setCustomerStatus)

	r.GET("/dashboard/stats", b.dashboardStats)
	r.GET("/dashboard/inventory-alerts", func(c *gin.Context) { ok(c, b.store.alerts()) })
	r.GET("/dashboard/recent-activities", b.recentActivities)
	r.GET("/dashboard/warehouse-overview", b.warehouseOverview)
	r.GET("/dashboard/today-operations", b.todayOperations)
}

// Request helpers

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		// Plain error body, as the upstream framework answers bad path params
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id " + c.Param("id")})
		return 0, false
	}
	return id, true
}

func queryInt64(c *gin.Context, name string) int64 {
	v, _ := strconv.ParseInt(c.Query(name), 10, 64)
	return v
}

func queryBool(c *gin.Context, name string) *bool {
	v, err := strconv.ParseBool(c.Query(name))
	if err != nil {
		return nil
	}
	return &v
}

func queryInt(c *gin.Context, name string) *int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return nil
	}
	return &v
}

func contains(haystack, needle string) bool {
	return needle == "" || strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func operator(c *gin.Context) string {
	return c.GetString("username")
}

func getOne[T any](col *collection[T], what string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, valid := idParam(c)
		if !valid {
			return
		}
		v, found := col.get(id)
		if !found {
			fail(c, http.StatusNotFound, what+" not found")
			return
		}
		ok(c, v)
	}
}

func deleteOne[T any](col *collection[T], what string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, valid := idParam(c)
		if !valid {
			return
		}
		if !col.remove(id) {
			fail(c, http.StatusNotFound, what+" not found")
			return
		}
		ok(c, nil)
	}
}

// updated answers the result of a collection update
func updated[T any](c *gin.Context, v T, err error, what string) {
	switch {
	case errors.Is(err, errNotFound):
		fail(c, http.StatusNotFound, what+" not found")
	case err != nil:
		fail(c, http.StatusBadRequest, err.Error())
	default:
		ok(c, v)
	}
}

type enabledBody struct {
	IsEnabled *bool `json:"isEnabled" validate:"required"`
}

// Warehouses

func (b *Backend) listWarehouses(c *gin.Context) {
	q := api.ParsePageQuery(c)
	keyword, enabled := c.Query("keyword"), queryBool(c, "isEnabled")
	name, code := c.Query("name"), c.Query("code")

	items := b.store.warehouses.list(func(w wmsapi.Warehouse) bool {
		if !contains(w.Name, name) || !contains(w.Code, code) {
			return false
		}
		if keyword != "" && !contains(w.Name, keyword) && !contains(w.Code, keyword) {
			return false
		}
		return enabled == nil || w.IsEnabled == *enabled
	})
	switch q.SortBy {
	case "name":
		sortByKey(items, func(w wmsapi.Warehouse) string { return w.Name }, strings.EqualFold(q.SortDir, "desc"))
	case "code":
		sortByKey(items, func(w wmsapi.Warehouse) string { return w.Code }, strings.EqualFold(q.SortDir, "desc"))
	}
	ok(c, api.Paginate(items, q))
}

func (b *Backend) warehouseCodeTaken(code string, except int64) bool {
	return len(b.store.warehouses.list(func(w wmsapi.Warehouse) bool {
		return w.Code == code && w.ID != except
	})) > 0
}

func (b *Backend) createWarehouse(c *gin.Context) {
	var form wmsapi.WarehouseForm
	if !b.bind(c, &form) {
		return
	}
	if b.warehouseCodeTaken(form.Code, 0) {
		fail(c, http.StatusBadRequest, "warehouse code "+form.Code+" already exists")
		return
	}
	now := domain.Now()
	w := b.store.warehouses.add(wmsapi.Warehouse{
		Name:          form.Name,
		Code:          form.Code,
		Address:       form.Address,
		ContactPerson: form.ContactPerson,
		ContactPhone:  form.ContactPhone,
		TotalCapacity: form.TotalCapacity,
		IsEnabled:     form.IsEnabled == nil || *form.IsEnabled,
		CreatedTime:   now,
		UpdatedTime:   now,
		CreatedBy:     operator(c),
		UpdatedBy:     operator(c),
	})
	b.store.activity(domain.ActivitySystem, "Warehouse created", w.Name, operator(c))
	ok(c, w)
}

func (b *Backend) updateWarehouse(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}
	var form wmsapi.WarehouseForm
	if !b.bind(c, &form) {
		return
	}
	if b.warehouseCodeTaken(form.Code, id) {
		fail(c, http.StatusBadRequest, "warehouse code "+form.Code+" already exists")
		return
	}
	w, err := b.store.warehouses.update(id, func(w *wmsapi.Warehouse) error {
		w.Name, w.Code = form.Name, form.Code
		w.Address, w.ContactPerson, w.ContactPhone = form.Address, form.ContactPerson, form.ContactPhone
		w.TotalCapacity = form.TotalCapacity
		if form.IsEnabled != nil {
			w.IsEnabled = *form.IsEnabled
		}
		w.UpdatedTime = domain.Now()
		w.UpdatedBy = operator(c)
		return nil
	})
	updated(c, w, err, "warehouse")
}

func (b *Backend) deleteWarehouse(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}
	if zones := b.store.zones.list(func(z wmsapi.StorageZone) bool { return z.WarehouseID == id }); len(zones) > 0 {
		fail(c, http.StatusBadRequest, "warehouse still has storage zones")
		return
	}
	if !b.store.warehouses.remove(id) {
		fail(c, http.StatusNotFound, "warehouse not found")
		return
	}
	ok(c, nil)
}

func (b *Backend) setWarehouseStatus(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}
	var body enabledBody
	if !b.bind(c, &body) {
		return
	}
	w, err := b.store.warehouses.update(id, func(w *wmsapi.Warehouse) error {
		w.IsEnabled = *body.IsEnabled
		w.UpdatedTime = domain.Now()
		return nil
	})
	updated(c, w, err, "warehouse")
}

func (b *Backend) warehouseStats(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}
	if _, found := b.store.warehouses.get(id); !found {
		fail(c, http.StatusNotFound, "warehouse not found")
		return
	}
	ok(c, b.store.warehouseStats(id))
}

// Zones

func (b *Backend) listZones(c *gin.Context) {
	q := api.ParsePageQuery(c)
	warehouseID, zoneType := queryInt64(c, "warehouseId"), c.Query("zoneType")
	keyword, enabled := c.Query("keyword"), queryBool(c, "isEnabled")

	items := b.store.zones.list(func(z wmsapi.StorageZone) bool {
		if warehouseID != 0 && z.WarehouseID != warehouseID {
			return false
		}
		if zoneType != "" && z.ZoneType.String() != zoneType {
			return false
		}
		if keyword != "" && !contains(z.ZoneName, keyword) && !contains(z.ZoneCode, keyword) {
			return false
		}
		return enabled == nil || z.IsEnabled == *enabled
	})
	ok(c, api.Paginate(items, q))
}

func (b *Backend) checkZoneForm(c *gin.Context, form *wmsapi.StorageZoneForm) bool {
	if form.ZoneType.IsZero() {
		fail(c, http.StatusBadRequest, "zoneType is required")
		return false
	}
	if _, found := b.store.warehouses.get(form.WarehouseID); !found {
		fail(c, http.StatusBadRequest, fmt.Sprintf("warehouse %d not found", form.WarehouseID))
		return false
	}
	return true
}

func (b *Backend) createZone(c *gin.Context) {
	var form wmsapi.StorageZoneForm
	if !b.bind(c, &form) || !b.checkZoneForm(c, &form) {
		return
	}
	now := domain.Now()
	ok(c, b.store.zones.add(wmsapi.StorageZone{
		WarehouseID: form.WarehouseID,
		ZoneCode:    form.ZoneCode,
		ZoneName:    form.ZoneName,
		ZoneType:    form.ZoneType,
		Capacity:    form.Capacity,
		IsEnabled:   form.IsEnabled == nil || *form.IsEnabled,
		CreatedTime: now,
		UpdatedTime: now,
	}))
}

func (b *Backend) updateZone(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}
	var form wmsapi.StorageZoneForm
	if !b.bind(c, &form) || !b.checkZoneForm(c, &form) {
		return
	}
	z, err := b.store.zones.update(id, func(z *wmsapi.StorageZone) error {
		z.WarehouseID, z.ZoneCode, z.ZoneName = form.WarehouseID, form.ZoneCode, form.ZoneName
		z.ZoneType, z.Capacity = form.ZoneType, form.Capacity
		if form.IsEnabled != nil {
			z.IsEnabled = *form.IsEnabled
		}
		z.UpdatedTime = domain.Now()
		return nil
	})
	updated(c, z, err, "storage zone")
}

func (b *Backend) setZoneStatus(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}
	var body enabledBody
	if !b.bind(c, &body) {
		return
	}
	z, err := b.store.zones.update(id, func(z *wmsapi.StorageZone) error {
		z.IsEnabled = *body.IsEnabled
		z.UpdatedTime = domain.Now()
		return nil
	})
	updated(c, z, err, "storage zone")
}

// Locations

func (b *Backend) listLocations(c *gin.Context) {
	q := api.ParsePageQuery(c)
	warehouseID, zoneID := queryInt64(c, "warehouseId"), queryInt64(c, "zoneId")
	locType, status, keyword := c.Query("locationType"), c.Query("status"), c.Query("keyword")

	items := b.store.locations.list(func(l wmsapi.StorageLocation) bool {
		if zoneID != 0 && l.ZoneID != zoneID {
			return false
		}
		if warehouseID != 0 {
			if z, found := b.store.zones.get(l.ZoneID); !found || z.WarehouseID != warehouseID {
				return false
			}
		}
		if locType != "" && (l.LocationType == nil || l.LocationType.String() != locType) {
			return false
		}
		if status != "" && l.Status.String() != status {
			return false
		}
		return keyword == "" || contains(l.LocationCode, keyword) || contains(l.LocationName, keyword)
	})
	ok(c, api.Paginate(items, q))
}

func (b *Backend) zoneExists(c *gin.Context, id int64) bool {
	if _, found := b.store.zones.get(id); !found {
		fail(c, http.StatusBadRequest, fmt.Sprintf("storage zone %d not found", id))
		return false
	}
	return true
}

func (b *Backend) createLocation(c *gin.Context) {
	var form wmsapi.StorageLocationForm
	if !b.bind(c, &form) || !b.zoneExists(c, form.ZoneID) {
		return
	}
	status := domain.LocationStatusAvailable
	if form.Status != nil {
		status = *form.Status
	}
	now := domain.Now()
	ok(c, b.store.locations.add(wmsapi.StorageLocation{
		ZoneID:       form.ZoneID,
		LocationCode: form.LocationCode,
		LocationName: form.LocationName,
		LocationType: form.LocationType,
		Capacity:     form.Capacity,
		Status:       status,
		CreatedTime:  now,
		UpdatedTime:  now,
	}))
}

func (b *Backend) updateLocation(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}
	var form wmsapi.StorageLocationForm
	if !b.bind(c, &form) || !b.zoneExists(c, form.ZoneID) {
		return
	}
	l, err := b.store.locations.update(id, func(l *wmsapi.StorageLocation) error {
		l.ZoneID, l.LocationCode, l.LocationName = form.ZoneID, form.LocationCode, form.LocationName
		l.LocationType, l.Capacity = form.LocationType, form.Capacity
		if form.Status != nil {
			l.Status = *form.Status
		}
		l.UpdatedTime = domain.Now()
		return nil
	})
	updated(c, l, err, "storage location")
}

func (b *Backend) setLocationStatus(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}
	var body struct {
		Status *domain.LocationStatus `json:"status" validate:"required"`
	}
	if !b.bind(c, &body) {
		return
	}
	l, err := b.store.locations.update(id, func(l *wmsapi.StorageLocation) error {
		l.Status = *body.Status
		l.UpdatedTime = domain.Now()
		return nil
	})
	updated(c, l, err, "storage location")
}

func (b *Backend) batchLocations(c *gin.Context) {
	var form wmsapi.BatchLocationForm
	if !b.bind(c, &form) || !b.zoneExists(c, form.ZoneID) {
		return
	}
	if n := form.Count(); n > MaxBatchLocations {
		fail(c, http.StatusBadRequest, fmt.Sprintf("batch of %d locations exceeds %d", n, MaxBatchLocations))
		return
	}
	prefix := form.ZoneCodePrefix
	if prefix == "" {
		zone, _ := b.store.zones.get(form.ZoneID)
		prefix = zone.ZoneCode + "-"
	}

	now := domain.Now()
	created := make([]wmsapi.StorageLocation, 0, form.Count())
	for row := form.StartRow; row <= form.EndRow; row++ {
		for level := form.StartLevel; level <= form.EndLevel; level++ {
			for pos := form.StartPosition; pos <= form.EndPosition; pos++ {
				created = append(created, b.store.locations.add(wmsapi.StorageLocation{
					ZoneID:       form.ZoneID,
					LocationCode: fmt.Sprintf("%s%02d-%02d-%02d", prefix, row, level, pos),
					LocationType: form.LocationType,
					Capacity:     form.Capacity,
					Status:       domain.LocationStatusAvailable,
					CreatedTime:  now,
					UpdatedTime:  now,
				}))
			}
		}
	}
	ok(c, created)
}

// Inventory

func (b *Backend) listInventory(c *gin.Context) {
	q := api.ParsePageQuery(c)
	warehouseID, locationID, skuID := queryInt64(c, "warehouseId"), queryInt64(c, "locationId"), queryInt64(c, "productSkuId")
	skuCode, batchNo, hasStock := c.Query("skuCode"), c.Query("batchNo"), queryBool(c, "hasStock")

	items := b.store.inventory.list(func(inv wmsapi.Inventory) bool {
		switch {
		case warehouseID != 0 && inv.WarehouseID != warehouseID,
			locationID != 0 && inv.LocationID != locationID,
			skuID != 0 && inv.ProductSkuID != skuID,
			!contains(inv.SkuCode, skuCode),
			batchNo != "" && inv.BatchNo != batchNo:
			return false
		}
		return hasStock == nil || (inv.Quantity > 0) == *hasStock
	})
	ok(c, api.Paginate(items, q))
}

func (b *Backend) listTransactions(c *gin.Context) {
	skuID, warehouseID, locationID := queryInt64(c, "productSkuId"), queryInt64(c, "warehouseId"), queryInt64(c, "locationId")
	kind := queryInt(c, "transactionType")

	items := b.store.transactions.list(func(tx wmsapi.InventoryTransaction) bool {
		switch {
		case skuID != 0 && tx.ProductSkuID != skuID,
			warehouseID != 0 && tx.WarehouseID != warehouseID,
			locationID != 0 && tx.LocationID != locationID:
			return false
		}
		return kind == nil || tx.TransactionType == *kind
	})
	ok(c, items)
}

func (b *Backend) inventoryStats(c *gin.Context) {
	ok(c, b.store.inventoryStats(queryInt64(c, "warehouseId")))
}

func (b *Backend) adjustInventory(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}
	var req wmsapi.AdjustRequest
	if !b.bind(c, &req) {
		return
	}

	var change int64
	inv, err := b.store.inventory.update(id, func(inv *wmsapi.Inventory) error {
		if req.Quantity < inv.LockedQuantity {
			return fmt.Errorf("quantity %d is below the locked %d", req.Quantity, inv.LockedQuantity)
		}
		change = req.Quantity - inv.Quantity
		inv.Quantity = req.Quantity
		inv.AvailableQuantity = inv.Quantity - inv.LockedQuantity
		return nil
	})
	if err == nil {
		b.store.recordTx(inv, txAdjust, change, "", operator(c))
		b.store.activity(domain.ActivityInventory, "Inventory adjusted", inv.SkuCode+": "+req.Reason, operator(c))
	}
	updated(c, inv, err, "inventory")
}

func (b *Backend) transferInventory(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}
	var req wmsapi.TransferRequest
	if !b.bind(c, &req) {
		return
	}
	if _, found := b.store.locations.get(req.ToLocationID); !found {
		fail(c, http.StatusBadRequest, fmt.Sprintf("storage location %d not found", req.ToLocationID))
		return
	}

	b.store.mu.Lock()
	defer b.store.mu.Unlock()

	src, err := b.store.inventory.update(id, func(inv *wmsapi.Inventory) error {
		if inv.LocationID == req.ToLocationID {
			return fmt.Errorf("source and target location are the same")
		}
		if req.Quantity > inv.AvailableQuantity {
			return fmt.Errorf("only %d available to transfer", inv.AvailableQuantity)
		}
		inv.Quantity -= req.Quantity
		inv.AvailableQuantity -= req.Quantity
		return nil
	})
	if err != nil {
		updated(c, src, err, "inventory")
		return
	}
	dst, err := b.store.putStock(src.ProductSkuID, req.ToLocationID, src.BatchNo, req.Quantity)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	b.store.recordTx(src, txTransfer, -req.Quantity, "", operator(c))
	b.store.recordTx(dst, txTransfer, req.Quantity, "", operator(c))
	ok(c, dst)
}

// Products

func (b *Backend) listProducts(c *gin.Context) {
	skuCode, name, supplierID := c.Query("skuCode"), c.Query("name"), queryInt64(c, "supplierId")
	batch, expiry := queryBool(c, "isBatchManaged"), queryBool(c, "isExpiryManaged")

	ok(c, b.store.products.list(func(p wmsapi.ProductSku) bool {
		switch {
		case !contains(p.SkuCode, skuCode),
			!contains(p.Name, name),
			supplierID != 0 && p.SupplierID != supplierID,
			batch != nil && p.IsBatchManaged != *batch,
			expiry != nil && p.IsExpiryManaged != *expiry:
			return false
		}
		return true
	}))
}

func (b *Backend) applyProductForm(p *wmsapi.ProductSku, form wmsapi.ProductForm) {
	p.SkuCode, p.Name, p.Specification = form.SkuCode, form.Name, form.Specification
	p.SupplierID = form.SupplierID
	p.SupplierName = ""
	if s, found := b.store.suppliers.get(form.SupplierID); found {
		p.SupplierName = s.SupplierName
	}
	p.IsBatchManaged, p.IsExpiryManaged, p.ShelfLifeDays = form.IsBatchManaged, form.IsExpiryManaged, form.ShelfLifeDays
}

func (b *Backend) skuTaken(code string, except int64) bool {
	return len(b.store.products.list(func(p wmsapi.ProductSku) bool {
		return p.SkuCode == code && p.ID != except
	})) > 0
}

func (b *Backend) createProduct(c *gin.Context) {
	var form wmsapi.ProductForm
	if !b.bind(c, &form) {
		return
	}
	if b.skuTaken(form.SkuCode, 0) {
		fail(c, http.StatusBadRequest, "SKU "+form.SkuCode+" already exists")
		return
	}
	p := wmsapi.ProductSku{CreatedTime: stamp()}
	b.applyProductForm(&p, form)
	ok(c, b.store.products.add(p))
}

func (b *Backend) updateProduct(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}
	var form wmsapi.ProductForm
	if !b.bind(c, &form) {
		return
	}
	if b.skuTaken(form.SkuCode, id) {
		fail(c, http.StatusBadRequest, "SKU "+form.SkuCode+" already exists")
		return
	}
	p, err := b.store.products.update(id, func(p *wmsapi.ProductSku) error {
		b.applyProductForm(p, form)
		return nil
	})
	updated(c, p, err, "product")
}

func (b *Backend) productInventory(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}
	sku, found := b.store.products.get(id)
	if !found {
		fail(c, http.StatusNotFound, "product not found")
		return
	}
	warehouseID := queryInt64(c, "warehouseId")

	byWarehouse := map[int64]*wmsapi.ProductInventory{}
	out := []wmsapi.ProductInventory{}
	var order []int64
	for _, inv := range b.store.stockIn(warehouseID) {
		if inv.ProductSkuID != id {
			continue
		}
		pi, seen := byWarehouse[inv.WarehouseID]
		if !seen {
			pi = &wmsapi.ProductInventory{
				ProductSkuID:  sku.ID,
				ProductName:   sku.Name,
				WarehouseID:   inv.WarehouseID,
				WarehouseName: inv.WarehouseName,
				Locations:     []wmsapi.InventoryLocation{},
			}
			byWarehouse[inv.WarehouseID] = pi
			order = append(order, inv.WarehouseID)
		}
		pi.TotalQuantity += inv.Quantity
		pi.AvailableQuantity += inv.AvailableQuantity
		pi.LockedQuantity += inv.LockedQuantity
		pi.Locations = append(pi.Locations, wmsapi.InventoryLocation{
			LocationID:     inv.LocationID,
			LocationCode:   inv.LocationCode,
			BatchNo:        inv.BatchNo,
			ProductionDate: inv.ProductionDate,
			ExpiryDate:     inv.ExpiryDate,
			Quantity:       inv.Quantity,
			LockedQuantity: inv.LockedQuantity,
		})
	}
	for _, wid := range order {
		out = append(out, *byWarehouse[wid])
	}
	ok(c, out)
}

// Partners

func (b *Backend) listSuppliers(c *gin.Context) {
	q := api.ParsePageQuery(c)
	keyword := c.Query("keyword")
	ok(c, api.Paginate(b.store.suppliers.list(func(s wmsapi.Supplier) bool {
		return keyword == "" || contains(s.SupplierName, keyword) || contains(s.SupplierCode, keyword)
	}), q))
}

func (b *Backend) listCustomers(c *gin.Context) {
	q := api.ParsePageQuery(c)
	keyword, enabled := c.Query("keyword"), queryBool(c, "isEnabled")
	ok(c, api.Paginate(b.store.customers.list(func(cu wmsapi.Customer) bool {
		if keyword != "" && !contains(cu.CustomerName, keyword) && !contains(cu.CustomerCode, keyword) {
			return false
		}
		return enabled == nil || (cu.IsEnabled != nil && *cu.IsEnabled == *enabled)
	}), q))
}

func (b *Backend) createCustomer(c *gin.Context) {
	var cu wmsapi.Customer
	if !b.bind(c, &cu) {
		return
	}
	if cu.CustomerCode == "" || cu.CustomerName == "" {
		fail(c, http.StatusBadRequest, "customerCode and customerName are required")
		return
	}
	if cu.IsEnabled == nil {
		enabled := true
		cu.IsEnabled = &enabled
	}
	cu.CreatedTime = stamp()
	ok(c, b.store.customers.add(cu))
}

func (b *Backend) updateCustomer(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}
	var patch wmsapi.Customer
	if !b.bind(c, &patch) {
		return
	}
	cu, err := b.store.customers.update(id, func(cu *wmsapi.Customer) error {
		set := func(dst *string, v string) {
			if v != "" {
				*dst = v
			}
		}
		set(&cu.CustomerCode, patch.CustomerCode)
		set(&cu.CustomerName, patch.CustomerName)
		set(&cu.CustomerType, patch.CustomerType)
		set(&cu.ContactPerson, patch.ContactPerson)
		set(&cu.ContactPhone, patch.ContactPhone)
		set(&cu.Email, patch.Email)
		set(&cu.Address, patch.Address)
		set(&cu.CreditRating, patch.CreditRating)
		if patch.CreditLimit != 0 {
			cu.CreditLimit = patch.CreditLimit
		}
		if patch.IsEnabled != nil {
			cu.IsEnabled = patch.IsEnabled
		}
		return nil
	})
	updated(c, cu, err, "customer")
}

func (b *Backend) setCustomerStatus(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}
	var body enabledBody
	if !b.bind(c, &body) {
		return
	}
	cu, err := b.store.customers.update(id, func(cu *wmsapi.Customer) error {
		cu.IsEnabled = body.IsEnabled
		return nil
	})
	updated(c, cu, err, "customer")
}

// Dashboard

func (b *Backend) dashboardStats(c *gin.Context) {
	s := b.store
	inv := s.inventoryStats(0)
	ok(c, wmsapi.DashboardStats{
		TotalWarehouses: int64(s.warehouses.len()),
		TotalProducts:   int64(s.products.len()),
		TotalInventory:  inv.TotalQuantity,
		TodayInbound:    int64(s.inbound.len()),
		TodayOutbound:   int64(s.outbound.len()),
		PendingInbound:  int64(len(s.inbound.list(func(o wmsapi.InboundOrder) bool { return o.Status != inboundCompleted }))),
		PendingOutbound: int64(len(s.outbound.list(func(o wmsapi.OutboundOrder) bool { return o.Status != outboundShipped }))),
		LowStockAlerts:  int64(len(s.alerts())),
	})
}

func (b *Backend) recentActivities(c *gin.Context) {
	items := b.store.activities.list(nil)
	// newest first
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	if len(items) > 20 {
		items = items[:20]
	}
	ok(c, items)
}

func (b *Backend) warehouseOverview(c *gin.Context) {
	out := []wmsapi.WarehouseOverview{}
	for _, w := range b.store.warehouses.list(nil) {
		st := b.store.warehouseStats(w.ID)
		skus := map[int64]struct{}{}
		for _, inv := range b.store.stockIn(w.ID) {
			skus[inv.ProductSkuID] = struct{}{}
		}
		out = append(out, wmsapi.WarehouseOverview{
			WarehouseID:       w.ID,
			WarehouseName:     w.Name,
			TotalLocations:    st.TotalLocations,
			OccupiedLocations: st.OccupiedLocations,
			TotalProducts:     int64(len(skus)),
			TotalQuantity:     st.TotalInventory,
		})
	}
	ok(c, out)
}

func (b *Backend) todayOperations(c *gin.Context) {
	s := b.store
	ok(c, wmsapi.TodayOperations{
		InboundOrders:     int64(s.inbound.len()),
		OutboundOrders:    int64(s.outbound.len()),
		PutawayTasks:      int64(s.putaway.len()),
		PickingTasks:      int64(s.picking.len()),
		CompletedInbound:  int64(len(s.inbound.list(func(o wmsapi.InboundOrder) bool { return o.Status == inboundCompleted }))),
		CompletedOutbound: int64(len(s.outbound.list(func(o wmsapi.OutboundOrder) bool { return o.Status == outboundShipped }))),
		CompletedPutaway:  int64(len(s.putaway.list(func(t wmsapi.PutawayTask) bool { return t.Status == taskCompleted }))),
		CompletedPicking:  int64(len(s.picking.list(func(t wmsapi.PickingTask) bool { return t.Status == taskCompleted }))),
	})
}
