package item

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("item not found")
	ErrNotOwner          = errors.New("user is not the owner of this item")
	ErrEmptyName         = errors.New("name cannot be empty")
	ErrCommentNotAllowed = errors.New("user has no finished booking of this item")
)

// Item represents a listed thing that other users can book.
type Item struct {
	ID          int64
	Name        string
	Description string
	Available   bool
	OwnerID     int64
	CreatedAt   time.Time
}

// Comment is an append-only note a past renter leaves on an item.
type Comment struct {
	ID         int64
	Text       string
	ItemID     int64
	AuthorID   int64
	AuthorName string
	CreatedAt  time.Time
}

// BookingBrief is the slice of a booking the item module needs for its
// last/next projections.
type BookingBrief struct {
	ID       int64
	BookerID int64
	Start    time.Time
	End      time.Time
}

// BookingHistory is what the item module needs to know about bookings.
// Implemented by the booking module; declared here to avoid the import cycle.
type BookingHistory interface {
	// HasFinished reports whether the user has any booking of the item
	// whose end is strictly before the given instant.
	HasFinished(ctx context.Context, itemID, userID int64, before time.Time) (bool, error)

	// LastForItem returns the most recent booking started before now, or nil.
	LastForItem(ctx context.Context, itemID int64, now time.Time) (*BookingBrief, error)

	// NextForItem returns the earliest booking starting after now, or nil.
	NextForItem(ctx context.Context, itemID int64, now time.Time) (*BookingBrief, error)
}

// Details is the read model for item detail endpoints: the item plus its
// comments and, for the owner, the neighbouring bookings.
type Details struct {
	Item        *Item
	Comments    []*Comment
	LastBooking *BookingBrief
	NextBooking *BookingBrief
}
