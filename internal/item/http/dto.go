package http

import (
	"time"

	"shareit/internal/item"
)

type ItemResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"owner_id"`
}

func NewItemResponse(i *item.Item) ItemResponse {
	return ItemResponse{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Available:   i.Available,
		OwnerID:     i.OwnerID,
	}
}

type CommentResponse struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"author_name"`
	Created    time.Time `json:"created"`
}

func NewCommentResponse(c *item.Comment) CommentResponse {
	return CommentResponse{
		ID:         c.ID,
		Text:       c.Text,
		AuthorName: c.AuthorName,
		Created:    c.CreatedAt,
	}
}

type BookingBriefResponse struct {
	ID       int64     `json:"id"`
	BookerID int64     `json:"booker_id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

func newBookingBrief(b *item.BookingBrief) *BookingBriefResponse {
	if b == nil {
		return nil
	}
	return &BookingBriefResponse{
		ID:       b.ID,
		BookerID: b.BookerID,
		Start:    b.Start,
		End:      b.End,
	}
}

// ItemDetailsResponse is the enriched item view: comments always, the
// neighbouring bookings only when the caller owns the item.
type ItemDetailsResponse struct {
	ItemResponse
	Comments    []CommentResponse     `json:"comments"`
	LastBooking *BookingBriefResponse `json:"last_booking,omitempty"`
	NextBooking *BookingBriefResponse `json:"next_booking,omitempty"`
}

func NewItemDetailsResponse(d *item.Details) ItemDetailsResponse {
	comments := make([]CommentResponse, len(d.Comments))
	for i, c := range d.Comments {
		comments[i] = NewCommentResponse(c)
	}

	return ItemDetailsResponse{
		ItemResponse: NewItemResponse(d.Item),
		Comments:     comments,
		LastBooking:  newBookingBrief(d.LastBooking),
		NextBooking:  newBookingBrief(d.NextBooking),
	}
}

type CreateItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Available   *bool  `json:"available" binding:"required"`
}

type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}
