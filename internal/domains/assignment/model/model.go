package model

const (
	EntityName = "assignment"

	ActionNewBookingRequest = "NEW_BOOKING_REQUEST"
)

// Task asks the worker to route a booking to its vehicle's operator. The
// Kafka message key is the booking ID.
type Task struct {
	BookingID string `json:"bookingId"`
	Action    string `json:"action"`
}

func NewTask(bookingID string) Task {
	return Task{BookingID: bookingID, Action: ActionNewBookingRequest}
}
