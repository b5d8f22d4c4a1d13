package dto

import (
	"rental/internal/domains/slot/model"
	"strings"
)

type AvailabilityResponse struct {
	VehicleID        string            `json:"vehicle_id"`
	Date             string            `json:"date"`
	SlotStatuses     map[string]string `json:"slot_statuses"`
	AvailableSlots   []string          `json:"available_slots"`
	UnavailableSlots []string          `json:"unavailable_slots"`
	ReservedSlots    []string          `json:"reserved_slots"`
	TotalSlots       int               `json:"total_slots"`
	AvailableCount   int               `json:"available_count"`
	UnavailableCount int               `json:"unavailable_count"`
	ReservedCount    int               `json:"reserved_count"`
}

// FromSlots builds the status of every fixed label. Labels without a
// ledger row are available.
func (r *AvailabilityResponse) FromSlots(vehicleID, date string, slots []model.Slot) {
	r.VehicleID = vehicleID
	r.Date = date
	r.SlotStatuses = make(map[string]string, len(model.Labels()))
	r.AvailableSlots = []string{}
	r.UnavailableSlots = []string{}
	r.ReservedSlots = []string{}

	known := make(map[string]model.Status, len(slots))
	for _, slot := range slots {
		known[slot.SlotLabel] = slot.Status
	}

	for _, label := range model.Labels() {
		status, ok := known[label]
		if !ok {
			status = model.StatusAvailable
		}

		switch status {
		case model.StatusUnavailable:
			r.UnavailableSlots = append(r.UnavailableSlots, label)
		case model.StatusReserved:
			r.ReservedSlots = append(r.ReservedSlots, label)
		default:
			status = model.StatusAvailable
			r.AvailableSlots = append(r.AvailableSlots, label)
		}

		r.SlotStatuses[label] = strings.ToLower(string(status))
	}

	r.TotalSlots = len(model.Labels())
	r.AvailableCount = len(r.AvailableSlots)
	r.UnavailableCount = len(r.UnavailableSlots)
	r.ReservedCount = len(r.ReservedSlots)
}

type SlotUpdate struct {
	Slot      string `json:"slot"       validate:"required"`
	Status    string `json:"status"     validate:"required,ioneof=AVAILABLE UNAVAILABLE RESERVED"`
	BookingID string `json:"booking_id" validate:"omitempty"`
}

type OverrideRequest struct {
	Date    string       `json:"date"    validate:"required,dateonly"`
	Updates []SlotUpdate `json:"updates" validate:"required,min=1,dive"`
	// Force takes slots away from bookings that still hold them.
	Force bool `json:"force"`
}

type OverrideResponse struct {
	Message      string   `json:"message"`
	VehicleID    string   `json:"vehicle_id"`
	Date         string   `json:"date"`
	UpdatedSlots []string `json:"updated_slots"`
}
