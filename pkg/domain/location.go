package domain

import "errors"

var (
	// ErrInvalidLocationType is returned when an invalid location type value is provided
	ErrInvalidLocationType = errors.New("invalid location type value")
	// ErrInvalidLocationStatus is returned when an invalid location status value is provided
	ErrInvalidLocationStatus = errors.New("invalid location status value")
)

// LocationType represents the physical kind of a storage location
type LocationType struct {
	value string
}

const (
	locationTypeShelf     = "SHELF"
	locationTypeFloor     = "FLOOR"
	locationTypeCold      = "COLD"
	locationTypeDangerous = "DANGEROUS"
)

// Predefined LocationType instances
var (
	LocationTypeShelf     = LocationType{value: locationTypeShelf}
	LocationTypeFloor     = LocationType{value: locationTypeFloor}
	LocationTypeCold      = LocationType{value: locationTypeCold}
	LocationTypeDangerous = LocationType{value: locationTypeDangerous}
)

// NewLocationType creates a new LocationType value object with validation
func NewLocationType(s string) (LocationType, error) {
	switch s {
	case locationTypeShelf, locationTypeFloor, locationTypeCold, locationTypeDangerous:
		return LocationType{value: s}, nil
	default:
		return LocationType{}, ErrInvalidLocationType
	}
}

func (l LocationType) String() string { return l.value }

// MarshalText implements encoding.TextMarshaler
func (l LocationType) MarshalText() ([]byte, error) {
	return []byte(l.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (l *LocationType) UnmarshalText(text []byte) error {
	lt, err := NewLocationType(string(text))
	if err != nil {
		return err
	}
	*l = lt
	return nil
}

// LocationStatus represents the occupancy state of a storage location
type LocationStatus struct {
	value string
}

const (
	locationStatusAvailable = "AVAILABLE"
	locationStatusOccupied  = "OCCUPIED"
	locationStatusDisabled  = "DISABLED"
)

// Predefined LocationStatus instances
var (
	LocationStatusAvailable = LocationStatus{value: locationStatusAvailable}
	LocationStatusOccupied  = LocationStatus{value: locationStatusOccupied}
	LocationStatusDisabled  = LocationStatus{value: locationStatusDisabled}
)

// NewLocationStatus creates a new LocationStatus value object with validation
func NewLocationStatus(s string) (LocationStatus, error) {
	switch s {
	case locationStatusAvailable, locationStatusOccupied, locationStatusDisabled:
		return LocationStatus{value: s}, nil
	default:
		return LocationStatus{}, ErrInvalidLocationStatus
	}
}

func (s LocationStatus) String() string { return s.value }

// IsUsable returns true if goods can be put into the location
func (s LocationStatus) IsUsable() bool {
	return s.value == locationStatusAvailable
}

// MarshalText implements encoding.TextMarshaler
func (s LocationStatus) MarshalText() ([]byte, error) {
	return []byte(s.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *LocationStatus) UnmarshalText(text []byte) error {
	ls, err := NewLocationStatus(string(text))
	if err != nil {
		return err
	}
	*s = ls
	return nil
}
