package http

import (
	"time"

	"shareit/internal/booking"
)

type ItemTag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type UserTag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BookingResponse struct {
	ID     int64     `json:"id"`
	Item   ItemTag   `json:"item"`
	Booker UserTag   `json:"booker"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Status string    `json:"status"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:     b.ID,
		Item:   ItemTag{ID: b.ItemID, Name: b.ItemName},
		Booker: UserTag{ID: b.BookerID, Name: b.BookerName},
		Start:  b.Start,
		End:    b.End,
		Status: string(b.Status),
	}
}

type CreateBookingRequest struct {
	ItemID int64     `json:"item_id" binding:"required"`
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
}
