package dto

import (
	"rental/internal/domains/booking/model"
	"rental/shared"
	"rental/shared/constant"
	gDto "rental/shared/dto"
)

type CreateBookingRequest struct {
	VehicleID   string `json:"vehicle_id"   validate:"required"`
	BookingDate string `json:"booking_date" validate:"required,dateonly"`
	Slot        string `json:"slot"         validate:"required"`
}

type CreateBookingResponse struct {
	BookingID        string `json:"booking_id"`
	ReferenceCode    string `json:"reference_code"`
	AccessCode       string `json:"access_code"`
	Status           string `json:"status"`
	AssignmentQueued bool   `json:"assignment_queued"`
}

func (r *CreateBookingResponse) FromModel(booking model.Booking, queued bool) {
	r.BookingID = booking.ID
	r.ReferenceCode = booking.ReferenceCode
	r.AccessCode = booking.AccessCode
	r.Status = string(booking.Status)
	r.AssignmentQueued = queued
}

type BookingResponse struct {
	ID                 string  `json:"id"`
	VehicleID          string  `json:"vehicle_id"`
	RequesterID        string  `json:"requester_id"`
	RequesterEmail     string  `json:"requester_email,omitempty"`
	BookingDate        string  `json:"booking_date"`
	Slot               string  `json:"slot"`
	ReferenceCode      string  `json:"reference_code"`
	AccessCode         string  `json:"access_code,omitempty"`
	Status             string  `json:"status"`
	AssignedOperatorID *string `json:"assigned_operator_id,omitempty"`
	ApprovalTimestamp  *string `json:"approval_timestamp,omitempty"`
	gDto.Metadata
}

// FromModel copies booking into the response. The access code is only
// included when revealAccess is set.
func (r *BookingResponse) FromModel(booking model.Booking, revealAccess bool) {
	r.ID = booking.ID
	r.VehicleID = booking.VehicleID
	r.RequesterID = booking.RequesterID
	r.RequesterEmail = booking.RequesterEmail
	r.BookingDate = booking.BookingDate
	r.Slot = booking.SlotLabel
	r.ReferenceCode = booking.ReferenceCode
	r.Status = string(booking.Status)
	r.AssignedOperatorID = booking.AssignedOperatorID
	r.Metadata.FromModel(booking.Metadata)

	if revealAccess {
		r.AccessCode = booking.AccessCode
	}

	if booking.ApprovedAt != nil {
		ts := booking.ApprovedAt.Format(constant.DateFormat)
		r.ApprovalTimestamp = &ts
	}
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int, revealAccess bool) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod, revealAccess)
	}
}

// ListFilter narrows the admin booking listing. Empty fields match everything.
type ListFilter struct {
	Status    string
	VehicleID string
}

type DecisionRequest struct {
	Status string `json:"status" validate:"required,ioneof=APPROVE REJECT APPROVED REJECTED"`
}

// StatusResponse is returned by operations that only move a booking through its lifecycle.
type StatusResponse struct {
	BookingID         string  `json:"booking_id"`
	ReferenceCode     string  `json:"reference_code"`
	Status            string  `json:"status"`
	ApprovalTimestamp *string `json:"approval_timestamp,omitempty"`
}

func (r *StatusResponse) FromModel(booking model.Booking) {
	r.BookingID = booking.ID
	r.ReferenceCode = booking.ReferenceCode
	r.Status = string(booking.Status)

	if booking.ApprovedAt != nil {
		ts := booking.ApprovedAt.Format(constant.DateFormat)
		r.ApprovalTimestamp = &ts
	}
}
