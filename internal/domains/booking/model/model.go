package model

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"rental/shared/model"
	"slices"
	"strings"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID                 = "id"
	FieldVehicleID          = "vehicle_id"
	FieldRequesterID        = "requester_id"
	FieldRequesterEmail     = "requester_email"
	FieldBookingDate        = "booking_date"
	FieldSlotLabel          = "slot_label"
	FieldReferenceCode      = "reference_code"
	FieldAccessCode         = "access_code"
	FieldStatus             = "status"
	FieldAssignedOperatorID = "assigned_operator_id"
	FieldApprovedAt         = "approved_at"
	FieldCreatedAt          = "created_at"
	FieldModifiedAt         = "modified_at"
	FieldModifiedBy         = "modified_by"

	ReferenceCodeLength = 8
	AccessCodeLength    = 6

	referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	accessAlphabet    = "0123456789"
)

var (
	ErrNotFound           = errors.New("booking not found")
	ErrPreconditionFailed = errors.New("booking status precondition failed")
	ErrDuplicateReference = errors.New("duplicate booking reference code")
	ErrIllegalTransition  = errors.New("illegal booking status transition")
	ErrInvalidDecision    = errors.New("invalid decision")
	ErrInvalidStatus      = errors.New("invalid booking status")
)

type Status string

const (
	StatusRequested             Status = "REQUESTED"
	StatusPendingApproval       Status = "PENDING_APPROVAL"
	StatusConfirmed             Status = "CONFIRMED"
	StatusRejected              Status = "REJECTED"
	StatusCancelled             Status = "CANCELLED"
	StatusFailedVehicleNotFound Status = "FAILED_VEHICLE_NOT_FOUND"
	StatusFailedNoOwner         Status = "FAILED_NO_OWNER"
	StatusFailedOwnerNotFound   Status = "FAILED_OWNER_NOT_FOUND"
)

var transitions = map[Status][]Status{
	StatusRequested: {
		StatusPendingApproval,
		StatusFailedVehicleNotFound,
		StatusFailedNoOwner,
		StatusFailedOwnerNotFound,
		StatusCancelled,
	},
	StatusPendingApproval: {
		StatusConfirmed,
		StatusRejected,
		StatusCancelled,
	},
}

var terminal = []Status{
	StatusConfirmed,
	StatusRejected,
	StatusCancelled,
	StatusFailedVehicleNotFound,
	StatusFailedNoOwner,
	StatusFailedOwnerNotFound,
}

// Terminal reports whether no transition leaves s.
func (s Status) Terminal() bool {
	_, ok := transitions[s]

	return !ok
}

func CanTransition(from, to Status) bool {
	return slices.Contains(transitions[from], to)
}

// ValidateTransition checks every edge from each of from into to.
func ValidateTransition(from []Status, to Status) error {
	if len(from) == 0 {
		return fmt.Errorf("%w: no source status", ErrIllegalTransition)
	}

	for _, f := range from {
		if !CanTransition(f, to) {
			return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, f, to)
		}
	}

	return nil
}

// ParseStatus accepts any booking status regardless of case.
func ParseStatus(raw string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(raw)))
	if _, known := transitions[status]; known || slices.Contains(terminal, status) {
		return status, nil
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
}

// Active lists the statuses in which the booking still holds its slot tentatively.
func Active() []Status {
	return []Status{StatusRequested, StatusPendingApproval}
}

// HoldsSlot reports whether a booking in status s still counts on its slot.
func (s Status) HoldsSlot() bool {
	return s == StatusConfirmed || slices.Contains(Active(), s)
}

type Decision string

const (
	DecisionApprove Decision = "APPROVE"
	DecisionReject  Decision = "REJECT"
)

// ParseDecision accepts APPROVE/REJECT and the past-tense APPROVED/REJECTED.
func ParseDecision(raw string) (Decision, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "APPROVE", "APPROVED":
		return DecisionApprove, nil
	case "REJECT", "REJECTED":
		return DecisionReject, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDecision, raw)
	}
}

// Target is the booking status a decision leads to.
func (d Decision) Target() Status {
	if d == DecisionApprove {
		return StatusConfirmed
	}

	return StatusRejected
}

type Booking struct {
	ID                 string     `db:"id"`
	VehicleID          string     `db:"vehicle_id"`
	RequesterID        string     `db:"requester_id"`
	RequesterEmail     string     `db:"requester_email"`
	BookingDate        string     `db:"booking_date"`
	SlotLabel          string     `db:"slot_label"`
	ReferenceCode      string     `db:"reference_code"`
	AccessCode         string     `db:"access_code"`
	Status             Status     `db:"status"`
	AssignedOperatorID *string    `db:"assigned_operator_id"`
	ApprovedAt         *time.Time `db:"approved_at"`
	model.Metadata
}

func (b Booking) IsZero() bool {
	return b.ID == ""
}

func (b Booking) AssignedTo(operatorID string) bool {
	return b.AssignedOperatorID != nil && *b.AssignedOperatorID == operatorID
}

func NewReferenceCode() (string, error) {
	return randomCode(referenceAlphabet, ReferenceCodeLength)
}

func NewAccessCode() (string, error) {
	return randomCode(accessAlphabet, AccessCodeLength)
}

func randomCode(alphabet string, length int) (string, error) {
	var sb strings.Builder

	sb.Grow(length)

	limit := big.NewInt(int64(len(alphabet)))

	for range length {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("failed to generate code: %w", err)
		}

		sb.WriteByte(alphabet[n.Int64()])
	}

	return sb.String(), nil
}
