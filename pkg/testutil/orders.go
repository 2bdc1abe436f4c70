package testutil

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wms-platform/wms-web/pkg/api"
	"github.com/wms-platform/wms-web/pkg/domain"
	"github.com/wms-platform/wms-web/pkg/wmsapi"
)

func orderMatches(c *gin.Context, orderNo string, warehouseID int64, status int) bool {
	if no := c.Query("orderNo"); !contains(orderNo, no) {
		return false
	}
	if wid := queryInt64(c, "warehouseId"); wid != 0 && wid != warehouseID {
		return false
	}
	if st := queryInt(c, "status"); st != nil && *st != status {
		return false
	}
	return true
}

// Inbound

func (b *Backend) listInbound(c *gin.Context) {
	q := api.ParsePageQuery(c)
	supplierID := queryInt64(c, "supplierId")
	ok(c, api.Paginate(b.store.inbound.list(func(o wmsapi.InboundOrder) bool {
		return orderMatches(c, o.OrderNo, o.WarehouseID, o.Status) && (supplierID == 0 || o.SupplierID == supplierID)
	}), q))
}

// inboundItems resolves form lines against the product table
func (b *Backend) inboundItems(form wmsapi.InboundOrderForm) ([]wmsapi.InboundOrderItem, int64, error) {
	items := make([]wmsapi.InboundOrderItem, 0, len(form.Items))
	var total int64
	for _, line := range form.Items {
		sku, found := b.store.products.get(line.ProductSkuID)
		if !found {
			return nil, 0, fmt.Errorf("product %d not found", line.ProductSkuID)
		}
		items = append(items, wmsapi.InboundOrderItem{
			ID:               b.store.seq.Add(1),
			ProductSkuID:     sku.ID,
			ProductName:      sku.Name,
			SkuCode:          sku.SkuCode,
			ExpectedQuantity: line.ExpectedQuantity,
			CreatedTime:      stamp(),
		})
		total += line.ExpectedQuantity
	}
	return items, total, nil
}

func (b *Backend) resolveInbound(c *gin.Context, form wmsapi.InboundOrderForm) (wmsapi.InboundOrder, bool) {
	wh, found := b.store.warehouses.get(form.WarehouseID)
	if !found {
		fail(c, http.StatusBadRequest, fmt.Sprintf("warehouse %d not found", form.WarehouseID))
		return wmsapi.InboundOrder{}, false
	}
	sup, found := b.store.suppliers.get(form.SupplierID)
	if !found {
		fail(c, http.StatusBadRequest, fmt.Sprintf("supplier %d not found", form.SupplierID))
		return wmsapi.InboundOrder{}, false
	}
	items, total, err := b.inboundItems(form)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return wmsapi.InboundOrder{}, false
	}
	return wmsapi.InboundOrder{
		WarehouseID:           wh.ID,
		WarehouseName:         wh.Name,
		SupplierID:            sup.ID,
		SupplierName:          sup.SupplierName,
		TotalExpectedQuantity: total,
		Items:                 items,
	}, true
}

func (b *Backend) createInbound(c *gin.Context) {
	var form wmsapi.InboundOrderForm
	if !b.bind(c, &form) {
		return
	}
	order, valid := b.resolveInbound(c, form)
	if !valid {
		return
	}
	order.OrderNo = b.store.nextNo("IN")
	order.Status, order.StatusName = inboundPending, inboundNames[inboundPending]
	order.CreatedTime = stamp()
	order = b.store.inbound.add(order)

	_, _ = b.store.inbound.update(order.ID, func(o *wmsapi.InboundOrder) error {
		for i := range o.Items {
			o.Items[i].InboundOrderID = o.ID
		}
		return nil
	})
	order, _ = b.store.inbound.get(order.ID)
	b.store.activity(domain.ActivityInbound, "Inbound order created", order.OrderNo, operator(c))
	ok(c, order)
}

func (b *Backend) updateInbound(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}
	var form wmsapi.InboundOrderForm
	if !b.bind(c, &form) {
		return
	}
	next, valid := b.resolveInbound(c, form)
	if !valid {
		return
	}
	order, err := b.store.inbound.update(id, func(o *wmsapi.InboundOrder) error {
		if o.Status != inboundPending {
			return fmt.Errorf("order %s is %s and can no longer change", o.OrderNo, o.StatusName)
		}
		o.WarehouseID, o.WarehouseName = next.WarehouseID, next.WarehouseName
		o.SupplierID, o.SupplierName = next.SupplierID, next.SupplierName
		o.TotalExpectedQuantity = next.TotalExpectedQuantity
		o.Items = next.Items
		for i := range o.Items {
			o.Items[i].InboundOrderID = o.ID
		}
		return nil
	})
	updated(c, order, err, "inbound order")
}

func (b *Backend) deleteInbound(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}
	order, found := b.store.inbound.get(id)
	if !found {
		fail(c, http.StatusNotFound, "inbound order not found")
		return
	}
	if order.Status != inboundPending {
		fail(c, http.StatusBadRequest, "only pending orders can be deleted")
		return
	}
	b.store.inbound.remove(id)
	ok(c, nil)
}

// firstUsableLocation picks where received goods go
func (b *Backend) firstUsableLocation(warehouseID int64) (wmsapi.StorageLocation, bool) {
	for _, l := range b.store.locationsIn(warehouseID) {
		if l.Status.IsUsable() {
			return l, true
		}
	}
	return wmsapi.StorageLocation{}, false
}

func (b *Backend) confirmReceipt(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}
	var body struct {
		Items []wmsapi.ReceiptLine `json:"items" validate:"required,min=1,dive"`
	}
	if !b.bind(c, &body) {
		return
	}

	b.store.mu.Lock()
	defer b.store.mu.Unlock()

	order, err := b.store.inbound.update(id, func(o *wmsapi.InboundOrder) error {
		if o.Status != inboundPending {
			return fmt.Errorf("order %s was already received", o.OrderNo)
		}
		received := map[int64]int64{}
		for _, line := range body.Items {
			received[line.ProductSkuID] += line.ReceivedQuantity
		}
		o.TotalReceivedQuantity = 0
		for i := range o.Items {
			o.Items[i].ReceivedQuantity = received[o.Items[i].ProductSkuID]
			o.TotalReceivedQuantity += o.Items[i].ReceivedQuantity
		}
		o.Status, o.StatusName = inboundReceived, inboundNames[inboundReceived]
		return nil
	})
	if err != nil {
		updated(c, order, err, "inbound order")
		return
	}

	target, found := b.firstUsableLocation(order.WarehouseID)
	if !found {
		fail(c, http.StatusBadRequest, "no available location in "+order.WarehouseName)
		return
	}
	for _, item := range order.Items {
		if item.ReceivedQuantity == 0 {
			continue
		}
		b.store.putaway.add(wmsapi.PutawayTask{
			TaskNo:             b.store.nextNo("PA"),
			InboundOrderItemID: item.ID,
			ProductName:        item.ProductName,
			SkuCode:            item.SkuCode,
			ToLocationID:       target.ID,
			ToLocationCode:     target.LocationCode,
			Quantity:           item.ReceivedQuantity,
			Status:             taskPending,
			StatusName:         taskNames[taskPending],
			CreatedTime:        stamp(),
		})
	}
	b.store.activity(domain.ActivityInbound, "Goods received", order.OrderNo, operator(c))
	ok(c, order)
}

func (b *Backend) tasksOf(order wmsapi.InboundOrder) []wmsapi.PutawayTask {
	items := map[int64]struct{}{}
	for _, it := range order.Items {
		items[it.ID] = struct{}{}
	}
	return b.store.putaway.list(func(t wmsapi.PutawayTask) bool {
		_, mine := items[t.InboundOrderItemID]
		return mine
	})
}

func (b *Backend) putawayTasks(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}
	order, found := b.store.inbound.get(id)
	if !found {
		fail(c, http.StatusNotFound, "inbound order not found")
		return
	}
	ok(c, b.tasksOf(order))
}

// orderOfItem finds the inbound order owning an item
func (b *Backend) orderOfItem(itemID int64) (wmsapi.InboundOrder, wmsapi.InboundOrderItem, bool) {
	for _, o := range b.store.inbound.list(nil) {
		for _, it := range o.Items {
			if it.ID == itemID {
				return o, it, true
			}
		}
	}
	return wmsapi.InboundOrder{}, wmsapi.InboundOrderItem{}, false
}

func (b *Backend) completePutaway(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}

	b.store.mu.Lock()
	defer b.store.mu.Unlock()

	task, err := b.store.putaway.update(id, func(t *wmsapi.PutawayTask) error {
		if t.Status == taskCompleted {
			return fmt.Errorf("task %s is already completed", t.TaskNo)
		}
		t.Status, t.StatusName = taskCompleted, taskNames[taskCompleted]
		t.OperatorName = operator(c)
		t.CompletedTime = stamp()
		return nil
	})
	if err != nil {
		updated(c, task, err, "putaway task")
		return
	}

	order, item, found := b.orderOfItem(task.InboundOrderItemID)
	if !found {
		fail(c, http.StatusBadRequest, "putaway task has no order")
		return
	}
	inv, err := b.store.putStock(item.ProductSkuID, task.ToLocationID, "", task.Quantity)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	b.store.recordTx(inv, txInbound, task.Quantity, order.OrderNo, operator(c))

	done := true
	for _, t := range b.tasksOf(order) {
		done = done && t.Status == taskCompleted
	}
	if done {
		_, _ = b.store.inbound.update(order.ID, func(o *wmsapi.InboundOrder) error {
			o.Status, o.StatusName = inboundCompleted, inboundNames[inboundCompleted]
			return nil
		})
	}
	ok(c, task)
}

// Outbound

func (b *Backend) listOutbound(c *gin.Context) {
	customerID := queryInt64(c, "customerId")
	ok(c, b.store.outbound.list(func(o wmsapi.OutboundOrder) bool {
		return orderMatches(c, o.OrderNo, o.WarehouseID, o.Status) && (customerID == 0 || o.CustomerID == customerID)
	}))
}

func (b *Backend) resolveOutbound(c *gin.Context, form wmsapi.OutboundOrderForm) (wmsapi.OutboundOrder, bool) {
	wh, found := b.store.warehouses.get(form.WarehouseID)
	if !found {
		fail(c, http.StatusBadRequest, fmt.Sprintf("warehouse %d not found", form.WarehouseID))
		return wmsapi.OutboundOrder{}, false
	}
	cu, found := b.store.customers.get(form.CustomerID)
	if !found {
		fail(c, http.StatusBadRequest, fmt.Sprintf("customer %d not found", form.CustomerID))
		return wmsapi.OutboundOrder{}, false
	}
	items := make([]wmsapi.OutboundOrderItem, 0, len(form.Items))
	for _, line := range form.Items {
		sku, found := b.store.products.get(line.ProductSkuID)
		if !found {
			fail(c, http.StatusBadRequest, fmt.Sprintf("product %d not found", line.ProductSkuID))
			return wmsapi.OutboundOrder{}, false
		}
		items = append(items, wmsapi.OutboundOrderItem{
			ID:           b.store.seq.Add(1),
			ProductSkuID: sku.ID,
			ProductName:  sku.Name,
			SkuCode:      sku.SkuCode,
			Quantity:     line.Quantity,
			CreatedTime:  stamp(),
		})
	}
	return wmsapi.OutboundOrder{
		WarehouseID:   wh.ID,
		WarehouseName: wh.Name,
		CustomerID:    cu.ID,
		CustomerName:  cu.CustomerName,
		CustomerInfo:  form.CustomerInfo,
		Items:         items,
	}, true
}

func (b *Backend) createOutbound(c *gin.Context) {
	var form wmsapi.OutboundOrderForm
	if !b.bind(c, &form) {
		return
	}
	order, valid := b.resolveOutbound(c, form)
	if !valid {
		return
	}
	order.OrderNo = b.store.nextNo("OUT")
	order.Status, order.StatusName = outboundCreated, outboundNames[outboundCreated]
	order.CreatedTime = stamp()
	order = b.store.outbound.add(order)
	order, _ = b.store.outbound.update(order.ID, func(o *wmsapi.OutboundOrder) error {
		for i := range o.Items {
			o.Items[i].OutboundOrderID = o.ID
		}
		return nil
	})
	b.store.activity(domain.ActivityOutbound, "Outbound order created", order.OrderNo, operator(c))
	ok(c, order)
}

func (b *Backend) updateOutbound(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}
	var form wmsapi.OutboundOrderForm
	if !b.bind(c, &form) {
		return
	}
	next, valid := b.resolveOutbound(c, form)
	if !valid {
		return
	}
	order, err := b.store.outbound.update(id, func(o *wmsapi.OutboundOrder) error {
		if o.Status != outboundCreated {
			return fmt.Errorf("order %s is %s and can no longer change", o.OrderNo, o.StatusName)
		}
		o.WarehouseID, o.WarehouseName = next.WarehouseID, next.WarehouseName
		o.CustomerID, o.CustomerName, o.CustomerInfo = next.CustomerID, next.CustomerName, next.CustomerInfo
		o.Items = next.Items
		for i := range o.Items {
			o.Items[i].OutboundOrderID = o.ID
		}
		return nil
	})
	updated(c, order, err, "outbound order")
}

func (b *Backend) deleteOutbound(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}
	order, found := b.store.outbound.get(id)
	if !found {
		fail(c, http.StatusNotFound, "outbound order not found")
		return
	}
	if order.Status != outboundCreated {
		fail(c, http.StatusBadRequest, "only new orders can be deleted")
		return
	}
	b.store.outbound.remove(id)
	ok(c, nil)
}

func (b *Backend) allocate(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}

	b.store.mu.Lock()
	defer b.store.mu.Unlock()

	order, found := b.store.outbound.get(id)
	if !found {
		fail(c, http.StatusNotFound, "outbound order not found")
		return
	}
	if order.Status != outboundCreated {
		fail(c, http.StatusBadRequest, "order "+order.OrderNo+" is already "+order.StatusName)
		return
	}

	// Check everything first so a short SKU leaves no partial locks
	stock := b.store.stockIn(order.WarehouseID)
	for _, item := range order.Items {
		var available int64
		for _, inv := range stock {
			if inv.ProductSkuID == item.ProductSkuID {
				available += inv.AvailableQuantity
			}
		}
		if available < item.Quantity {
			fail(c, http.StatusBadRequest, fmt.Sprintf("insufficient stock for %s: %d available, %d ordered", item.SkuCode, available, item.Quantity))
			return
		}
	}

	var allocs []allocation
	for _, item := range order.Items {
		need := item.Quantity
		for _, inv := range stock {
			if need == 0 || inv.ProductSkuID != item.ProductSkuID || inv.AvailableQuantity == 0 {
				continue
			}
			take := min(need, inv.AvailableQuantity)
			_, _ = b.store.inventory.update(inv.ID, func(i *wmsapi.Inventory) error {
				i.LockedQuantity += take
				i.AvailableQuantity -= take
				return nil
			})
			allocs = append(allocs, allocation{itemID: item.ID, inventoryID: inv.ID, quantity: take})
			need -= take
		}
	}
	b.store.allocations[order.ID] = allocs

	order, _ = b.store.outbound.update(order.ID, func(o *wmsapi.OutboundOrder) error {
		for i := range o.Items {
			o.Items[i].AllocatedQuantity = o.Items[i].Quantity
		}
		o.Status, o.StatusName = outboundAllocated, outboundNames[outboundAllocated]
		return nil
	})
	ok(c, order)
}

func (b *Backend) generatePickingTasks(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}

	b.store.mu.Lock()
	defer b.store.mu.Unlock()

	order, found := b.store.outbound.get(id)
	if !found {
		fail(c, http.StatusNotFound, "outbound order not found")
		return
	}
	if order.Status != outboundAllocated {
		fail(c, http.StatusBadRequest, "order "+order.OrderNo+" must be allocated first")
		return
	}

	wave := b.store.nextNo("WV")
	tasks := []wmsapi.PickingTask{}
	for _, a := range b.store.allocations[order.ID] {
		inv, _ := b.store.inventory.get(a.inventoryID)
		tasks = append(tasks, b.store.picking.add(wmsapi.PickingTask{
			TaskNo:           b.store.nextNo("PK"),
			WaveNo:           wave,
			OutboundOrderID:  order.ID,
			OutboundOrderNo:  order.OrderNo,
			ProductSkuID:     inv.ProductSkuID,
			ProductName:      inv.ProductName,
			SkuCode:          inv.SkuCode,
			FromLocationID:   inv.LocationID,
			FromLocationCode: inv.LocationCode,
			Quantity:         a.quantity,
			Status:           taskPending,
			StatusName:       taskNames[taskPending],
			CreatedTime:      stamp(),
		}))
	}
	_, _ = b.store.outbound.update(order.ID, func(o *wmsapi.OutboundOrder) error {
		o.Status, o.StatusName = outboundPicking, outboundNames[outboundPicking]
		return nil
	})
	ok(c, tasks)
}

func (b *Backend) pickingTasks(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}
	if _, found := b.store.outbound.get(id); !found {
		fail(c, http.StatusNotFound, "outbound order not found")
		return
	}
	ok(c, b.store.picking.list(func(t wmsapi.PickingTask) bool { return t.OutboundOrderID == id }))
}

func (b *Backend) completePicking(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}
	var body struct {
		PickedQuantity int64 `json:"pickedQuantity" validate:"gte=0"`
	}
	if !b.bind(c, &body) {
		return
	}

	b.store.mu.Lock()
	defer b.store.mu.Unlock()

	task, err := b.store.picking.update(id, func(t *wmsapi.PickingTask) error {
		if t.Status == taskCompleted {
			return fmt.Errorf("task %s is already completed", t.TaskNo)
		}
		if body.PickedQuantity > t.Quantity {
			return fmt.Errorf("picked %d exceeds the task quantity %d", body.PickedQuantity, t.Quantity)
		}
		t.PickedQuantity = body.PickedQuantity
		t.Status, t.StatusName = taskCompleted, taskNames[taskCompleted]
		return nil
	})
	if err != nil {
		updated(c, task, err, "picking task")
		return
	}

	done := true
	for _, t := range b.store.picking.list(func(t wmsapi.PickingTask) bool { return t.OutboundOrderID == task.OutboundOrderID }) {
		done = done && t.Status == taskCompleted
	}
	_, _ = b.store.outbound.update(task.OutboundOrderID, func(o *wmsapi.OutboundOrder) error {
		for i := range o.Items {
			if o.Items[i].ProductSkuID == task.ProductSkuID {
				o.Items[i].PickedQuantity += task.PickedQuantity
			}
		}
		if done {
			o.Status, o.StatusName = outboundPicked, outboundNames[outboundPicked]
		}
		return nil
	})
	ok(c, task)
}

func (b *Backend) ship(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}
	var body struct {
		TrackingNumber string `json:"trackingNumber"`
	}
	if !b.bind(c, &body) {
		return
	}

	b.store.mu.Lock()
	defer b.store.mu.Unlock()

	order, found := b.store.outbound.get(id)
	if !found {
		fail(c, http.StatusNotFound, "outbound order not found")
		return
	}
	if order.Status != outboundPicked {
		fail(c, http.StatusBadRequest, "order "+order.OrderNo+" is not picked yet")
		return
	}

	for _, a := range b.store.allocations[order.ID] {
		inv, err := b.store.inventory.update(a.inventoryID, func(i *wmsapi.Inventory) error {
			i.Quantity -= a.quantity
			i.LockedQuantity -= a.quantity
			return nil
		})
		if err == nil {
			b.store.recordTx(inv, txOutbound, -a.quantity, order.OrderNo, operator(c))
		}
	}
	delete(b.store.allocations, order.ID)

	order, _ = b.store.outbound.update(order.ID, func(o *wmsapi.OutboundOrder) error {
		o.Status, o.StatusName = outboundShipped, outboundNames[outboundShipped]
		return nil
	})
	desc := order.OrderNo
	if body.TrackingNumber != "" {
		desc += " via " + body.TrackingNumber
	}
	b.store.activity(domain.ActivityOutbound, "Order shipped", desc, operator(c))
	ok(c, order)
}
