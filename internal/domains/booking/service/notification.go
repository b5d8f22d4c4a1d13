package service

import (
	"fmt"
	"rental/internal/domains/booking/model"
	notificationModel "rental/internal/domains/notification/model"
)

func bookingDetails(booking model.Booking) map[string]any {
	return map[string]any{
		"referenceCode": booking.ReferenceCode,
		"vehicleId":     booking.VehicleID,
		"bookingDate":   booking.BookingDate,
		"slot":          booking.SlotLabel,
		"status":        string(booking.Status),
	}
}

func statusNotification(booking model.Booking) notificationModel.Notification {
	details := bookingDetails(booking)

	message := fmt.Sprintf("Your booking %s for %s at %s was rejected.", booking.ReferenceCode, booking.BookingDate, booking.SlotLabel)
	if booking.Status == model.StatusConfirmed {
		message = fmt.Sprintf("Your booking %s for %s at %s is confirmed.", booking.ReferenceCode, booking.BookingDate, booking.SlotLabel)
		details["accessCode"] = booking.AccessCode
	}

	return notificationModel.Notification{
		Type:      notificationModel.TypeStatusUpdate,
		BookingID: booking.ID,
		Recipient: booking.RequesterEmail,
		Message:   message,
		Details:   details,
	}
}

func cancelledNotification(booking model.Booking) notificationModel.Notification {
	return notificationModel.Notification{
		Type:      notificationModel.TypeCancelled,
		BookingID: booking.ID,
		Recipient: booking.RequesterEmail,
		Message:   fmt.Sprintf("Booking %s for %s at %s was cancelled.", booking.ReferenceCode, booking.BookingDate, booking.SlotLabel),
		Details:   bookingDetails(booking),
	}
}
