package booking

import (
	"net/http"
	"time"

	"shareit/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "booking not found")
	ErrItemNotFound    = apperror.New(http.StatusNotFound, "item not found")
	ErrUserNotFound    = apperror.New(http.StatusNotFound, "user not found")
	ErrOwnerHasNoItems = apperror.New(http.StatusNotFound, "user has no items")
	ErrPastRange       = apperror.New(http.StatusBadRequest, "cannot book in the past")
	ErrInvalidRange    = apperror.New(http.StatusBadRequest, "start must be strictly before end")
	ErrItemUnavailable = apperror.New(http.StatusBadRequest, "item is not available")
	ErrSelfBooking     = apperror.New(http.StatusBadRequest, "owner cannot book own item")
	ErrOverlap         = apperror.New(http.StatusBadRequest, "time range overlaps an existing booking")
	ErrAlreadyDecided  = apperror.New(http.StatusBadRequest, "booking is already decided")
	ErrInvalidState    = apperror.New(http.StatusBadRequest, "invalid state filter")
	ErrAccessDenied    = apperror.New(http.StatusForbidden, "access denied")
)

type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Booking is a time-bounded request to rent an item. Item and booker names
// are denormalized read fields filled by the repository joins.
type Booking struct {
	ID          int64
	ItemID      int64
	ItemName    string
	ItemOwnerID int64
	BookerID    int64
	BookerName  string
	Start       time.Time
	End         time.Time
	Status      Status
	CreatedAt   time.Time
}

// crosses reports whether an existing booking shares more than a boundary
// instant with the candidate [start, end) range. Ranges are half-open, so a
// booking ending exactly when the candidate starts does not cross; two
// bookings with equal starts always cross, whatever their ends.
func crosses(existing *Booking, start, end time.Time) bool {
	if existing.Start.Before(start) {
		return existing.End.After(start)
	}
	if start.Before(existing.Start) {
		return end.After(existing.Start)
	}
	return true
}
