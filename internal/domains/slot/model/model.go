package model

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

const (
	TableName  = "vehicle_slots"
	EntityName = "slot"

	FieldSlotKey   = "slot_key"
	FieldVehicleID = "vehicle_id"
	FieldSlotDate  = "slot_date"
	FieldSlotLabel = "slot_label"
	FieldStatus    = "status"
	FieldBookingID = "booking_id"
	FieldUpdatedAt = "updated_at"
	FieldUpdatedBy = "updated_by"

	keySeparator = "#"
	keyParts     = 3
)

var (
	ErrSlotConflict  = errors.New("slot is not available")
	ErrInvalidLabel  = errors.New("invalid slot label")
	ErrInvalidStatus = errors.New("invalid slot status")
	ErrInvalidKey    = errors.New("invalid slot key")
)

type Status string

const (
	StatusAvailable   Status = "AVAILABLE"
	StatusUnavailable Status = "UNAVAILABLE"
	StatusReserved    Status = "RESERVED"
)

func ParseStatus(raw string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(raw)))

	switch status {
	case StatusAvailable, StatusUnavailable, StatusReserved:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
}

// Held reports whether a booking occupies the slot.
func (s Status) Held() bool {
	return s == StatusUnavailable || s == StatusReserved
}

var labels = []string{"10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00", "17:00", "18:00"}

// Labels returns the fixed hourly slot labels in chronological order.
func Labels() []string {
	return slices.Clone(labels)
}

func IsValidLabel(label string) bool {
	return slices.Contains(labels, label)
}

// Key identifies one slot of one vehicle on one day.
type Key struct {
	VehicleID string
	Date      string
	Label     string
}

func NewKey(vehicleID, date, label string) (Key, error) {
	if !IsValidLabel(label) {
		return Key{}, fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}

	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return Key{}, fmt.Errorf("%w: date %q", ErrInvalidKey, date)
	}

	if vehicleID == "" || strings.Contains(vehicleID, keySeparator) {
		return Key{}, fmt.Errorf("%w: vehicle %q", ErrInvalidKey, vehicleID)
	}

	return Key{VehicleID: vehicleID, Date: date, Label: label}, nil
}

func ParseKey(raw string) (Key, error) {
	parts := strings.Split(raw, keySeparator)
	if len(parts) != keyParts {
		return Key{}, fmt.Errorf("%w: %q", ErrInvalidKey, raw)
	}

	return NewKey(parts[0], parts[1], parts[2])
}

func (k Key) String() string {
	return strings.Join([]string{k.VehicleID, k.Date, k.Label}, keySeparator)
}

type Slot struct {
	SlotKey   string    `db:"slot_key"`
	VehicleID string    `db:"vehicle_id"`
	SlotDate  string    `db:"slot_date"`
	SlotLabel string    `db:"slot_label"`
	Status    Status    `db:"status"`
	BookingID *string   `db:"booking_id"`
	UpdatedAt time.Time `db:"updated_at"`
	UpdatedBy string    `db:"updated_by"`
}

func New(key Key, status Status, bookingID *string, at time.Time, actor string) Slot {
	return Slot{
		SlotKey:   key.String(),
		VehicleID: key.VehicleID,
		SlotDate:  key.Date,
		SlotLabel: key.Label,
		Status:    status,
		BookingID: bookingID,
		UpdatedAt: at,
		UpdatedBy: actor,
	}
}

// HeldBy reports whether bookingID is the current holder.
func (s Slot) HeldBy(bookingID string) bool {
	return s.BookingID != nil && *s.BookingID == bookingID
}
