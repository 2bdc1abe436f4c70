package wmsapi_test

import (
	"context"
	"net/http"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wms-platform/wms-web/pkg/contracts/openapi"
	"github.com/wms-platform/wms-web/pkg/domain"
	wmserrors "github.com/wms-platform/wms-web/pkg/errors"
	"github.com/wms-platform/wms-web/pkg/testutil"
	"github.com/wms-platform/wms-web/pkg/wmsapi"
)

func boolPtr(b bool) *bool { return &b }

func TestAuth_LoginWithCaptcha(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	captcha, err := h.api.Auth.CaptchaInit(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, captcha.Token)
	assert.Equal(t, testutil.CaptchaImage, captcha.ImageBase64)

	_, err = h.api.Auth.CaptchaVerify(ctx, captcha.Token, "0000")
	require.Error(t, err)
	apiErr, ok := wmserrors.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, wmserrors.KindApplication, apiErr.Kind)
	assert.Equal(t, http.StatusBadRequest, apiErr.Code)
	assert.Equal(t, []string{"captcha incorrect"}, h.transport.Errors())

	verified, err := h.api.Auth.CaptchaVerify(ctx, captcha.Token, testutil.CaptchaCode)
	require.NoError(t, err)
	assert.Equal(t, 200, verified.Code)
	assert.Nil(t, verified.Data)
	assert.Equal(t, "captcha verified", verified.Msg)

	env, err := h.api.Auth.Login(ctx, &wmsapi.LoginRequest{
		Username: testutil.AdminUser,
		Password: testutil.AdminPassword,
		Code:     testutil.CaptchaCode,
		Token:    captcha.Token,
	})
	require.NoError(t, err)
	require.NotEmpty(t, env.Data.Token)
	assert.Equal(t, "welcome back, admin", env.Msg)

	require.NoError(t, h.sess.Login(env.Data.Token, testutil.AdminUser, h.backend.URL()))
	me, err := h.api.Users.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, testutil.AdminUser, me.Data.Username)
	assert.Equal(t, []string{"admin"}, me.Data.Roles)

	last, found := h.backend.LastRequest()
	require.True(t, found)
	assert.Equal(t, "Bearer "+env.Data.Token, last.Header.Get("Authorization"))
}

func TestAuth_WrongPassword(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	captcha, err := h.api.Auth.CaptchaInit(ctx)
	require.NoError(t, err)

	_, err = h.api.Auth.Login(ctx, &wmsapi.LoginRequest{
		Username: testutil.AdminUser,
		Password: "nope",
		Code:     testutil.CaptchaCode,
		Token:    captcha.Token,
	})
	require.Error(t, err)
	assert.Equal(t, "invalid username or password", err.Error())
	assert.Equal(t, []string{"invalid username or password"}, h.transport.Errors())
}

func TestAuth_IncompleteLoginNeverSent(t *testing.T) {
	h := newHarness(t)

	_, err := h.api.Auth.Login(context.Background(), &wmsapi.LoginRequest{Username: testutil.AdminUser})

	require.Error(t, err)
	apiErr, ok := wmserrors.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, wmserrors.KindInvalidRequest, apiErr.Kind)
	assert.Zero(t, h.backend.Count(http.MethodPost, "auth/login"))
}

func TestWarehouses_LifecycleNotifiesSuccess(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	ctx := context.Background()

	page, err := h.api.Warehouses.List(ctx, &wmsapi.WarehouseQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)

	enabled, err := h.api.Warehouses.List(ctx, &wmsapi.WarehouseQuery{IsEnabled: boolPtr(true)})
	require.NoError(t, err)
	require.Len(t, enabled.Content, 1)
	assert.Equal(t, "WH01", enabled.Content[0].Code)
	assert.Empty(t, h.smart.All(), "lists are silent on success")

	created, err := h.api.Warehouses.Create(ctx, &wmsapi.WarehouseForm{Name: "East", Code: "WH03", TotalCapacity: 800})
	require.NoError(t, err)
	assert.True(t, created.IsEnabled)
	assert.Equal(t, testutil.AdminUser, created.CreatedBy)

	got, err := h.api.Warehouses.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "East", got.Name)

	renamed, err := h.api.Warehouses.Update(ctx, created.ID, &wmsapi.WarehouseForm{Name: "East DC", Code: "WH03"})
	require.NoError(t, err)
	assert.Equal(t, "East DC", renamed.Name)

	disabled, err := h.api.Warehouses.SetStatus(ctx, created.ID, false)
	require.NoError(t, err)
	assert.False(t, disabled.IsEnabled)

	require.NoError(t, h.api.Warehouses.Delete(ctx, created.ID))
	assert.Equal(t, []string{"created", "updated", "disabled", "deleted"}, h.smart.Successes())

	_, err = h.api.Warehouses.Get(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, []string{"warehouse not found"}, h.smart.Errors())
	assert.Equal(t, []string{"warehouse not found"}, h.transport.Errors())
}

func TestWarehouses_DuplicateCode(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	_, err := h.api.Warehouses.Create(context.Background(), &wmsapi.WarehouseForm{Name: "Copy", Code: "WH01"})

	require.Error(t, err)
	assert.Equal(t, "warehouse code WH01 already exists", err.Error())
	assert.Empty(t, h.smart.Successes())
}

func TestWarehouses_Stats(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	stats, err := h.api.Warehouses.Stats(context.Background(), testutil.SeedWarehouseMain)

	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.TotalLocations)
	assert.EqualValues(t, 2, stats.OccupiedLocations)
	assert.EqualValues(t, 128, stats.TotalInventory)
}

func TestZones_SuccessIsSilent(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	ctx := context.Background()

	zone, err := h.api.Zones.Create(ctx, &wmsapi.StorageZoneForm{
		WarehouseID: testutil.SeedWarehouseMain,
		ZoneCode:    "Z-RCV",
		ZoneName:    "Dock",
		ZoneType:    domain.ZoneTypeReceiving,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ZoneTypeReceiving, zone.ZoneType)

	_, err = h.api.Zones.SetStatus(ctx, zone.ID, false)
	require.NoError(t, err)
	require.NoError(t, h.api.Zones.Delete(ctx, zone.ID))

	assert.Empty(t, h.smart.All())
}

func TestZones_MissingTypeRejectedBeforeNetwork(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	_, err := h.api.Zones.Create(context.Background(), &wmsapi.StorageZoneForm{
		WarehouseID: testutil.SeedWarehouseMain,
		ZoneCode:    "Z-X",
		ZoneName:    "Nowhere",
	})

	require.Error(t, err)
	apiErr, ok := wmserrors.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, wmserrors.KindInvalidRequest, apiErr.Kind)
	assert.Zero(t, h.backend.Count(http.MethodPost, "storage-zones"))
	assert.Len(t, h.smart.Errors(), 1)
}

func TestLocations_BatchCreate(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	shelf := domain.LocationTypeShelf
	form := &wmsapi.BatchLocationForm{
		ZoneID:        testutil.SeedZoneStorage,
		LocationType:  &shelf,
		StartRow:      1,
		EndRow:        2,
		StartLevel:    1,
		EndLevel:      1,
		StartPosition: 1,
		EndPosition:   3,
	}

	created, err := h.api.Locations.BatchCreate(context.Background(), form)

	require.NoError(t, err)
	require.Len(t, created, form.Count())
	assert.Equal(t, "Z-STO-01-01-01", created[0].LocationCode)
	assert.Equal(t, "Z-STO-02-01-03", created[len(created)-1].LocationCode)
	for _, l := range created {
		assert.Equal(t, domain.LocationStatusAvailable, l.Status)
	}
	assert.Equal(t, []string{"batch created"}, h.smart.Successes())
}

func TestLocations_SetStatus(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	loc, err := h.api.Locations.SetStatus(context.Background(), testutil.SeedLocationB, domain.LocationStatusDisabled)

	require.NoError(t, err)
	assert.Equal(t, domain.LocationStatusDisabled, loc.Status)
	assert.Equal(t, []string{"status updated"}, h.smart.Successes())
}

func TestCustomers_ReportOnlyFailures(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	ctx := context.Background()

	cu, err := h.api.Customers.Create(ctx, &wmsapi.Customer{CustomerCode: "CUS-INITECH", CustomerName: "Initech"})
	require.NoError(t, err)
	require.NotNil(t, cu.IsEnabled)
	assert.True(t, *cu.IsEnabled)
	assert.Empty(t, h.smart.All())

	_, err = h.api.Customers.Get(ctx, 999)
	require.Error(t, err)
	assert.Equal(t, []string{"customer not found"}, h.smart.Errors())
	assert.Empty(t, h.smart.Successes())
}

func TestInventory_AdjustAndTransfer(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	ctx := context.Background()

	require.NoError(t, h.api.Inventory.Adjust(ctx, testutil.SeedInventoryWidget, &wmsapi.AdjustRequest{Quantity: 100, Reason: "cycle count"}))
	require.NoError(t, h.api.Inventory.Transfer(ctx, testutil.SeedInventoryWidget, &wmsapi.TransferRequest{
		ToLocationID: testutil.SeedLocationB,
		Quantity:     30,
		Reason:       "rebalance",
	}))

	src, err := h.api.Inventory.Get(ctx, testutil.SeedInventoryWidget)
	require.NoError(t, err)
	assert.EqualValues(t, 70, src.Quantity)

	moved, err := h.api.Inventory.List(ctx, &wmsapi.InventoryQuery{LocationID: testutil.SeedLocationB})
	require.NoError(t, err)
	require.Len(t, moved.Content, 1)
	assert.EqualValues(t, 30, moved.Content[0].Quantity)

	txs, err := h.api.Inventory.Transactions(ctx, &wmsapi.TransactionQuery{ProductSkuID: testutil.SeedProductWidget})
	require.NoError(t, err)
	require.Len(t, txs, 3)
	assert.EqualValues(t, -20, txs[0].QuantityChange)
	assert.Equal(t, "TRANSFER", txs[2].TransactionTypeName)

	stats, err := h.api.Inventory.Stats(ctx, testutil.SeedWarehouseMain)
	require.NoError(t, err)
	assert.EqualValues(t, 108, stats.TotalQuantity)
	require.Len(t, stats.WarehouseStats, 1)
}

func TestInventory_TransferBeyondAvailable(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	err := h.api.Inventory.Transfer(context.Background(), testutil.SeedInventoryGadget, &wmsapi.TransferRequest{
		ToLocationID: testutil.SeedLocationA,
		Quantity:     50,
		Reason:       "too many",
	})

	require.Error(t, err)
	assert.Equal(t, "only 8 available to transfer", err.Error())
}

func TestSession_RevokedTokenForcesLogoutSilently(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	h.backend.Revoke()

	_, err := h.api.Inventory.List(context.Background(), &wmsapi.InventoryQuery{})

	require.Error(t, err)
	assert.ErrorIs(t, err, wmserrors.ErrSessionExpired)
	assert.True(t, h.sess.LoggedOut())
	assert.Empty(t, h.sess.Token())
	assert.Empty(t, h.transport.All())
}

func TestSession_ServerErrorUsesStatusTable(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	h.backend.Fail(http.MethodGet, "product-sku", http.StatusBadGateway, `<html>bad gateway</html>`)

	_, err := h.api.Products.List(context.Background(), &wmsapi.ProductQuery{})

	require.Error(t, err)
	assert.Equal(t, "bad gateway", err.Error())
	assert.Equal(t, []string{"bad gateway"}, h.transport.Errors())
	assert.False(t, h.sess.LoggedOut())
}

func TestDashboard(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	ctx := context.Background()

	stats, err := h.api.Dashboard.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalWarehouses)
	assert.EqualValues(t, 128, stats.TotalInventory)
	assert.EqualValues(t, 1, stats.LowStockAlerts)

	alerts, err := h.api.Dashboard.InventoryAlerts(ctx)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, domain.AlertLowStock, alerts[0].Type)
	assert.Equal(t, "SKU-1002", alerts[0].SkuCode)

	activities, err := h.api.Dashboard.RecentActivities(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, activities)
	assert.Equal(t, domain.ActivitySystem, activities[0].Type)

	overview, err := h.api.Dashboard.WarehouseOverview(ctx)
	require.NoError(t, err)
	assert.Len(t, overview, 2)

	today, err := h.api.Dashboard.TodayOperations(ctx)
	require.NoError(t, err)
	assert.Zero(t, today.InboundOrders)
}

// TestContract_EveryOperationExercised walks every documented operation once,
// in an order the backend's workflows accept.
func TestContract_EveryOperationExercised(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	// auth
	captcha, err := h.api.Auth.CaptchaInit(ctx)
	require.NoError(t, err)
	_, err = h.api.Auth.CaptchaVerify(ctx, captcha.Token, testutil.CaptchaCode)
	require.NoError(t, err)
	env, err := h.api.Auth.Login(ctx, &wmsapi.LoginRequest{
		Username: testutil.AdminUser, Password: testutil.AdminPassword,
		Code: testutil.CaptchaCode, Token: captcha.Token,
	})
	require.NoError(t, err)
	require.NoError(t, h.sess.Login(env.Data.Token, testutil.AdminUser, h.backend.URL()))
	_, err = h.api.Users.Me(ctx)
	require.NoError(t, err)

	// warehouses
	_, err = h.api.Warehouses.List(ctx, &wmsapi.WarehouseQuery{Keyword: "WH"})
	require.NoError(t, err)
	wh, err := h.api.Warehouses.Create(ctx, &wmsapi.WarehouseForm{Name: "Temp", Code: "WH09"})
	require.NoError(t, err)
	_, err = h.api.Warehouses.Get(ctx, wh.ID)
	require.NoError(t, err)
	_, err = h.api.Warehouses.Update(ctx, wh.ID, &wmsapi.WarehouseForm{Name: "Temp 2", Code: "WH09"})
	require.NoError(t, err)
	_, err = h.api.Warehouses.SetStatus(ctx, wh.ID, true)
	require.NoError(t, err)
	_, err = h.api.Warehouses.Stats(ctx, wh.ID)
	require.NoError(t, err)
	require.NoError(t, h.api.Warehouses.Delete(ctx, wh.ID))

	// zones
	_, err = h.api.Zones.List(ctx, &wmsapi.StorageZoneQuery{WarehouseID: testutil.SeedWarehouseMain})
	require.NoError(t, err)
	zoneForm := &wmsapi.StorageZoneForm{WarehouseID: testutil.SeedWarehouseMain, ZoneCode: "Z-RET", ZoneName: "Returns", ZoneType: domain.ZoneTypeReturn}
	zone, err := h.api.Zones.Create(ctx, zoneForm)
	require.NoError(t, err)
	zoneForm.ZoneName = "Returns bay"
	_, err = h.api.Zones.Update(ctx, zone.ID, zoneForm)
	require.NoError(t, err)
	_, err = h.api.Zones.SetStatus(ctx, zone.ID, false)
	require.NoError(t, err)
	require.NoError(t, h.api.Zones.Delete(ctx, zone.ID))

	// locations
	_, err = h.api.Locations.List(ctx, &wmsapi.StorageLocationQuery{ZoneID: testutil.SeedZoneStorage})
	require.NoError(t, err)
	locForm := &wmsapi.StorageLocationForm{ZoneID: testutil.SeedZoneStorage, LocationCode: "A-09-01-01"}
	loc, err := h.api.Locations.Create(ctx, locForm)
	require.NoError(t, err)
	locForm.LocationName = "spare"
	_, err = h.api.Locations.Update(ctx, loc.ID, locForm)
	require.NoError(t, err)
	_, err = h.api.Locations.SetStatus(ctx, loc.ID, domain.LocationStatusDisabled)
	require.NoError(t, err)
	require.NoError(t, h.api.Locations.Delete(ctx, loc.ID))
	_, err = h.api.Locations.BatchCreate(ctx, &wmsapi.BatchLocationForm{
		ZoneID: testutil.SeedZoneStorage, StartRow: 5, EndRow: 5, StartLevel: 1, EndLevel: 1, StartPosition: 1, EndPosition: 2,
	})
	require.NoError(t, err)

	// inventory
	_, err = h.api.Inventory.List(ctx, &wmsapi.InventoryQuery{WarehouseID: testutil.SeedWarehouseMain})
	require.NoError(t, err)
	_, err = h.api.Inventory.Get(ctx, testutil.SeedInventoryWidget)
	require.NoError(t, err)
	require.NoError(t, h.api.Inventory.Adjust(ctx, testutil.SeedInventoryWidget, &wmsapi.AdjustRequest{Quantity: 100, Reason: "count"}))
	require.NoError(t, h.api.Inventory.Transfer(ctx, testutil.SeedInventoryWidget, &wmsapi.TransferRequest{ToLocationID: testutil.SeedLocationB, Quantity: 10, Reason: "move"}))
	_, err = h.api.Inventory.Transactions(ctx, &wmsapi.TransactionQuery{})
	require.NoError(t, err)
	_, err = h.api.Inventory.Stats(ctx, 0)
	require.NoError(t, err)

	// products
	_, err = h.api.Products.List(ctx, &wmsapi.ProductQuery{Name: "Wid"})
	require.NoError(t, err)
	_, err = h.api.Products.Get(ctx, testutil.SeedProductWidget)
	require.NoError(t, err)
	sku, err := h.api.Products.Create(ctx, &wmsapi.ProductForm{SkuCode: "SKU-9", Name: "Sprocket"})
	require.NoError(t, err)
	_, err = h.api.Products.Update(ctx, sku.ID, &wmsapi.ProductForm{SkuCode: "SKU-9", Name: "Sprocket XL", SupplierID: testutil.SeedSupplier})
	require.NoError(t, err)
	_, err = h.api.Products.Inventory(ctx, testutil.SeedProductWidget, testutil.SeedWarehouseMain)
	require.NoError(t, err)
	require.NoError(t, h.api.Products.Delete(ctx, sku.ID))

	// partners
	_, err = h.api.Suppliers.List(ctx, &wmsapi.PartnerQuery{})
	require.NoError(t, err)
	_, err = h.api.Customers.List(ctx, &wmsapi.PartnerQuery{IsEnabled: boolPtr(true)})
	require.NoError(t, err)
	cu, err := h.api.Customers.Create(ctx, &wmsapi.Customer{CustomerCode: "CUS-9", CustomerName: "Umbrella"})
	require.NoError(t, err)
	_, err = h.api.Customers.Get(ctx, cu.ID)
	require.NoError(t, err)
	_, err = h.api.Customers.Update(ctx, cu.ID, &wmsapi.Customer{ContactPhone: "555-0100"})
	require.NoError(t, err)
	_, err = h.api.Customers.SetStatus(ctx, cu.ID, false)
	require.NoError(t, err)
	require.NoError(t, h.api.Customers.Delete(ctx, cu.ID))

	// inbound
	inForm := &wmsapi.InboundOrderForm{
		WarehouseID: testutil.SeedWarehouseMain,
		SupplierID:  testutil.SeedSupplier,
		Items:       []wmsapi.InboundLineForm{{ProductSkuID: testutil.SeedProductWidget, ExpectedQuantity: 5}},
	}
	in, err := h.api.Inbound.Create(ctx, inForm)
	require.NoError(t, err)
	_, err = h.api.Inbound.List(ctx, &wmsapi.OrderQuery{WarehouseID: testutil.SeedWarehouseMain})
	require.NoError(t, err)
	_, err = h.api.Inbound.Get(ctx, in.ID)
	require.NoError(t, err)
	inForm.Items[0].ExpectedQuantity = 6
	_, err = h.api.Inbound.Update(ctx, in.ID, inForm)
	require.NoError(t, err)
	require.NoError(t, h.api.Inbound.ConfirmReceipt(ctx, in.ID, []wmsapi.ReceiptLine{{ProductSkuID: testutil.SeedProductWidget, ReceivedQuantity: 6}}))
	putaway, err := h.api.Inbound.PutawayTasks(ctx, in.ID)
	require.NoError(t, err)
	require.Len(t, putaway, 1)
	require.NoError(t, h.api.Inbound.CompletePutawayTask(ctx, putaway[0].ID))
	spare, err := h.api.Inbound.Create(ctx, inForm)
	require.NoError(t, err)
	require.NoError(t, h.api.Inbound.Delete(ctx, spare.ID))

	// outbound
	outForm := &wmsapi.OutboundOrderForm{
		WarehouseID: testutil.SeedWarehouseMain,
		CustomerID:  testutil.SeedCustomer,
		Items:       []wmsapi.OutboundLineForm{{ProductSkuID: testutil.SeedProductWidget, Quantity: 3}},
	}
	out, err := h.api.Outbound.Create(ctx, outForm)
	require.NoError(t, err)
	_, err = h.api.Outbound.List(ctx, &wmsapi.OrderQuery{})
	require.NoError(t, err)
	_, err = h.api.Outbound.Get(ctx, out.ID)
	require.NoError(t, err)
	outForm.CustomerInfo = "dock 4"
	_, err = h.api.Outbound.Update(ctx, out.ID, outForm)
	require.NoError(t, err)
	require.NoError(t, h.api.Outbound.Allocate(ctx, out.ID))
	require.NoError(t, h.api.Outbound.GeneratePickingTasks(ctx, out.ID))
	picking, err := h.api.Outbound.PickingTasks(ctx, out.ID)
	require.NoError(t, err)
	require.Len(t, picking, 1)
	require.NoError(t, h.api.Outbound.CompletePickingTask(ctx, picking[0].ID, picking[0].Quantity))
	require.NoError(t, h.api.Outbound.Ship(ctx, out.ID, "TRK-1"))
	shipped, err := h.api.Outbound.Get(ctx, out.ID)
	require.NoError(t, err)
	assert.Equal(t, "SHIPPED", shipped.StatusName)
	extra, err := h.api.Outbound.Create(ctx, outForm)
	require.NoError(t, err)
	require.NoError(t, h.api.Outbound.Delete(ctx, extra.ID))

	// dashboard
	_, err = h.api.Dashboard.Stats(ctx)
	require.NoError(t, err)
	_, err = h.api.Dashboard.InventoryAlerts(ctx)
	require.NoError(t, err)
	_, err = h.api.Dashboard.RecentActivities(ctx)
	require.NoError(t, err)
	_, err = h.api.Dashboard.WarehouseOverview(ctx)
	require.NoError(t, err)
	_, err = h.api.Dashboard.TodayOperations(ctx)
	require.NoError(t, err)

	assert.Empty(t, h.transport.Errors())

	v, err := openapi.NewValidator(wmsapi.OpenAPISpec)
	require.NoError(t, err)
	var documented, missing []string
	seen := h.contract.operations()
	for _, op := range v.Operations() {
		documented = append(documented, op.ID)
		if seen[op.ID] == 0 {
			missing = append(missing, op.ID)
		}
	}
	sort.Strings(missing)
	assert.Empty(t, missing, "documented operations never called")
	assert.Len(t, seen, len(documented), "every call maps to a documented operation")
}
