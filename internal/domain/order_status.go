package domain

import (
	"database/sql/driver"
	"errors"
	"fmt"
)

// OrderStatus is the position of an order in its lifecycle. The zero value is
// not a valid status; strings only exist at the JSON and SQL boundaries.
type OrderStatus uint8

const (
	StatusPending OrderStatus = iota + 1
	StatusPreparing
	StatusDelivered
)

var (
	ErrAlreadyDelivered = errors.New("already delivered")
	ErrUnknownStatus    = errors.New("unknown state")
)

var statusNames = map[OrderStatus]string{
	StatusPending:   "pending",
	StatusPreparing: "preparing",
	StatusDelivered: "delivered",
}

// nextStatus is the whole transition table: each non-terminal status has
// exactly one successor.
var nextStatus = map[OrderStatus]OrderStatus{
	StatusPending:   StatusPreparing,
	StatusPreparing: StatusDelivered,
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

func (s OrderStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("OrderStatus(%d)", uint8(s))
}

func (s OrderStatus) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered
}

// Next returns the status an order moves to when advanced from s.
func (s OrderStatus) Next() (OrderStatus, error) {
	if !s.Valid() {
		return 0, ErrUnknownStatus
	}
	if s.IsTerminal() {
		return 0, ErrAlreadyDelivered
	}
	return nextStatus[s], nil
}

func (s OrderStatus) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStatus, uint8(s))
	}
	return []byte(statusNames[s]), nil
}

func (s *OrderStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseOrderStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s OrderStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStatus, uint8(s))
	}
	return statusNames[s], nil
}

func (s *OrderStatus) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case nil:
		return fmt.Errorf("%w: NULL", ErrUnknownStatus)
	default:
		return fmt.Errorf("scanning order status from %T", src)
	}

	parsed, err := ParseOrderStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
