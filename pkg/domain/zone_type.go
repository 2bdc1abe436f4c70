package domain

import "errors"

// ErrInvalidZoneType is returned when an invalid zone type value is provided
var ErrInvalidZoneType = errors.New("invalid zone type value")

// ZoneType represents an immutable storage zone type value object
type ZoneType struct {
	value string
}

// Valid zone type values
const (
	zoneTypeStorage   = "STORAGE"
	zoneTypeReceiving = "RECEIVING"
	zoneTypePicking   = "PICKING"
	zoneTypeReturn    = "RETURN"
	zoneTypeDefective = "DEFECTIVE"
	zoneTypeShipping  = "SHIPPING"
)

// Predefined ZoneType instances
var (
	ZoneTypeStorage   = ZoneType{value: zoneTypeStorage}
	ZoneTypeReceiving = ZoneType{value: zoneTypeReceiving}
	ZoneTypePicking   = ZoneType{value: zoneTypePicking}
	ZoneTypeReturn    = ZoneType{value: zoneTypeReturn}
	ZoneTypeDefective = ZoneType{value: zoneTypeDefective}
	ZoneTypeShipping  = ZoneType{value: zoneTypeShipping}
)

// NewZoneType creates a new ZoneType value object with validation
func NewZoneType(s string) (ZoneType, error) {
	switch s {
	case zoneTypeStorage, zoneTypeReceiving, zoneTypePicking,
		zoneTypeReturn, zoneTypeDefective, zoneTypeShipping:
		return ZoneType{value: s}, nil
	default:
		return ZoneType{}, ErrInvalidZoneType
	}
}

// AllZoneTypes returns every valid zone type
func AllZoneTypes() []ZoneType {
	return []ZoneType{
		ZoneTypeStorage, ZoneTypeReceiving, ZoneTypePicking,
		ZoneTypeReturn, ZoneTypeDefective, ZoneTypeShipping,
	}
}

// String returns the string representation of the zone type
func (z ZoneType) String() string {
	return z.value
}

// Equals checks if two zone types are equal
func (z ZoneType) Equals(other ZoneType) bool {
	return z.value == other.value
}

// IsZero returns true for the unset value
func (z ZoneType) IsZero() bool {
	return z.value == ""
}

// MarshalText implements encoding.TextMarshaler
func (z ZoneType) MarshalText() ([]byte, error) {
	return []byte(z.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (z *ZoneType) UnmarshalText(text []byte) error {
	zt, err := NewZoneType(string(text))
	if err != nil {
		return err
	}
	*z = zt
	return nil
}
