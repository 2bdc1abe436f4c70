package domain

import "errors"

var (
	ErrInvalidAlertType    = errors.New("invalid alert type value")
	ErrInvalidActivityType = errors.New("invalid activity type value")
)

// AlertType classifies an inventory alert
type AlertType struct {
	value string
}

var (
	AlertLowStock = AlertType{value: "low_stock"}
	AlertExpiring = AlertType{value: "expiring"}
	AlertExpired  = AlertType{value: "expired"}
)

// NewAlertType creates a new AlertType value object with validation
func NewAlertType(s string) (AlertType, error) {
	for _, a := range []AlertType{AlertLowStock, AlertExpiring, AlertExpired} {
		if a.value == s {
			return a, nil
		}
	}
	return AlertType{}, ErrInvalidAlertType
}

func (a AlertType) String() string { return a.value }

func (a AlertType) MarshalText() ([]byte, error) { return []byte(a.value), nil }

func (a *AlertType) UnmarshalText(text []byte) error {
	at, err := NewAlertType(string(text))
	if err != nil {
		return err
	}
	*a = at
	return nil
}

// ActivityType classifies a recent activity feed entry
type ActivityType struct {
	value string
}

var (
	ActivityInbound   = ActivityType{value: "inbound"}
	ActivityOutbound  = ActivityType{value: "outbound"}
	ActivityInventory = ActivityType{value: "inventory"}
	ActivitySystem    = ActivityType{value: "system"}
)

// NewActivityType creates a new ActivityType value object with validation
func NewActivityType(s string) (ActivityType, error) {
	for _, a := range []ActivityType{ActivityInbound, ActivityOutbound, ActivityInventory, ActivitySystem} {
		if a.value == s {
			return a, nil
		}
	}
	return ActivityType{}, ErrInvalidActivityType
}

func (a ActivityType) String() string { return a.value }

func (a ActivityType) MarshalText() ([]byte, error) { return []byte(a.value), nil }

func (a *ActivityType) UnmarshalText(text []byte) error {
	at, err := NewActivityType(string(text))
	if err != nil {
		return err
	}
	*a = at
	return nil
}
