package model

type Type string

const (
	TypeApprovalRequest Type = "BOOKING_APPROVAL_REQUEST"
	TypeStatusUpdate    Type = "BOOKING_STATUS_UPDATE"
	TypeCancelled       Type = "BOOKING_CANCELLED"
)

const EntityName = "notification"

// Notification is published as JSON on the notification topic, keyed by booking ID.
type Notification struct {
	Type      Type           `json:"type"`
	BookingID string         `json:"bookingId"`
	Recipient string         `json:"recipient"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
}
