package tenant

import (
	"context"
	"net/http"
)

// Header names carrying tenant scope to the WMS backend
const (
	HeaderTenantID    = "X-WMS-Tenant-ID"
	HeaderFacilityID  = "X-WMS-Facility-ID"
	HeaderWarehouseID = "X-WMS-Warehouse-ID"
	HeaderSellerID    = "X-WMS-Seller-ID"
)

type contextKey string

const tenantKey contextKey = "tenant"

// Context holds the tenant identifiers a call is scoped to.
type Context struct {
	// TenantID is the 3PL operator identifier
	TenantID string `json:"tenantId" mapstructure:"tenant_id"`

	// FacilityID is the physical facility identifier
	FacilityID string `json:"facilityId" mapstructure:"facility_id"`

	// WarehouseID is a specific warehouse within a facility
	WarehouseID string `json:"warehouseId" mapstructure:"warehouse_id"`

	// SellerID is the merchant using 3PL services
	SellerID string `json:"sellerId" mapstructure:"seller_id"`
}

// ToContext stores tc in ctx
func ToContext(ctx context.Context, tc *Context) context.Context {
	if tc == nil {
		return ctx
	}
	return context.WithValue(ctx, tenantKey, tc)
}

// FromContext returns the tenant scope carried by ctx, or nil
func FromContext(ctx context.Context) *Context {
	if ctx == nil {
		return nil
	}
	tc, _ := ctx.Value(tenantKey).(*Context)
	return tc
}

// Merge returns a copy of tc with every empty field taken from fallback
func (tc *Context) Merge(fallback *Context) *Context {
	out := &Context{}
	if fallback != nil {
		*out = *fallback
	}
	if tc == nil {
		return out
	}
	if tc.TenantID != "" {
		out.TenantID = tc.TenantID
	}
	if tc.FacilityID != "" {
		out.FacilityID = tc.FacilityID
	}
	if tc.WarehouseID != "" {
		out.WarehouseID = tc.WarehouseID
	}
	if tc.SellerID != "" {
		out.SellerID = tc.SellerID
	}
	return out
}

// IsEmpty returns true if the context has no tenant identifiers set
func (tc *Context) IsEmpty() bool {
	return tc == nil || tc.TenantID == "" && tc.FacilityID == "" && tc.WarehouseID == "" && tc.SellerID == ""
}

// Apply writes the non-empty identifiers as request headers. Headers the
// caller already set are left alone.
func (tc *Context) Apply(h http.Header) {
	if tc == nil {
		return
	}
	set := func(key, value string) {
		if value != "" && h.Get(key) == "" {
			h.Set(key, value)
		}
	}
	set(HeaderTenantID, tc.TenantID)
	set(HeaderFacilityID, tc.FacilityID)
	set(HeaderWarehouseID, tc.WarehouseID)
	set(HeaderSellerID, tc.SellerID)
}
