package tests

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/internal/booking"
	bookingHttp "shareit/internal/booking/http"
)

func TestBookingLifecycle(t *testing.T) {
	clearTables()

	owner := createTestUser(t, "owner", "owner@booking.test")
	booker := createTestUser(t, "booker", "booker@booking.test")
	stranger := createTestUser(t, "stranger", "stranger@booking.test")
	drill := createTestItem(t, owner.ID, "drill", "cordless drill", true)

	base := time.Now().Add(24 * time.Hour).Truncate(time.Second)
	var bookingID int64

	t.Run("create booking", func(t *testing.T) {
		w := executeRequest("POST", "/bookings", bookingHttp.CreateBookingRequest{
			ItemID: drill.ID,
			Start:  base,
			End:    base.Add(2 * time.Hour),
		}, booker.ID)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var resp bookingHttp.BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, string(booking.StatusWaiting), resp.Status)
		assert.Equal(t, drill.ID, resp.Item.ID)
		bookingID = resp.ID
	})

	t.Run("overlapping booking is refused", func(t *testing.T) {
		w := executeRequest("POST", "/bookings", bookingHttp.CreateBookingRequest{
			ItemID: drill.ID,
			Start:  base.Add(time.Hour),
			End:    base.Add(3 * time.Hour),
		}, stranger.ID)
		assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})

	t.Run("touching booking is accepted", func(t *testing.T) {
		w := executeRequest("POST", "/bookings", bookingHttp.CreateBookingRequest{
			ItemID: drill.ID,
			Start:  base.Add(2 * time.Hour),
			End:    base.Add(3 * time.Hour),
		}, stranger.ID)
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	t.Run("owner cannot book own item", func(t *testing.T) {
		w := executeRequest("POST", "/bookings", bookingHttp.CreateBookingRequest{
			ItemID: drill.ID,
			Start:  base.Add(10 * time.Hour),
			End:    base.Add(11 * time.Hour),
		}, owner.ID)
		assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})

	t.Run("stranger cannot read the booking", func(t *testing.T) {
		w := executeRequest("GET", fmt.Sprintf("/bookings/%d", bookingID), nil, stranger.ID)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("booker reads the booking", func(t *testing.T) {
		w := executeRequest("GET", fmt.Sprintf("/bookings/%d", bookingID), nil, booker.ID)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("only the owner decides", func(t *testing.T) {
		w := executeRequest("PATCH", fmt.Sprintf("/bookings/%d?approved=true", bookingID), nil, booker.ID)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("owner approves", func(t *testing.T) {
		w := executeRequest("PATCH", fmt.Sprintf("/bookings/%d?approved=true", bookingID), nil, owner.ID)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp bookingHttp.BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, string(booking.StatusApproved), resp.Status)
	})

	t.Run("re-approving is refused", func(t *testing.T) {
		w := executeRequest("PATCH", fmt.Sprintf("/bookings/%d?approved=true", bookingID), nil, owner.ID)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("booker list is ordered by start descending", func(t *testing.T) {
		w := executeRequest("GET", "/bookings?state=ALL", nil, stranger.ID)
		require.Equal(t, http.StatusOK, w.Code)

		var resp []bookingHttp.BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
	})

	t.Run("owner list sees all bookings on the item", func(t *testing.T) {
		w := executeRequest("GET", "/bookings/owner?state=ALL", nil, owner.ID)
		require.Equal(t, http.StatusOK, w.Code)

		var resp []bookingHttp.BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp, 2)
		assert.True(t, !resp[0].Start.Before(resp[1].Start), "expected descending start order")
	})

	t.Run("owner list for user without items is 404", func(t *testing.T) {
		w := executeRequest("GET", "/bookings/owner?state=ALL", nil, booker.ID)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("bogus state filter is 400", func(t *testing.T) {
		w := executeRequest("GET", "/bookings?state=SOMEDAY", nil, booker.ID)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing identity header is 400", func(t *testing.T) {
		w := executeRequest("GET", "/bookings", nil, 0)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCommentGating(t *testing.T) {
	clearTables()

	owner := createTestUser(t, "owner", "owner@comment.test")
	renter := createTestUser(t, "renter", "renter@comment.test")
	drill := createTestItem(t, owner.ID, "drill", "cordless drill", true)

	t.Run("comment without history is refused", func(t *testing.T) {
		w := executeRequest("POST", fmt.Sprintf("/items/%d/comment", drill.ID),
			map[string]string{"text": "never rented this"}, renter.ID)
		assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})

	// Seed a finished booking directly; the API refuses past ranges.
	repo := booking.NewPgxRepository(testPool)
	finished := &booking.Booking{
		ItemID:   drill.ID,
		BookerID: renter.ID,
		Start:    time.Now().Add(-3 * time.Hour),
		End:      time.Now().Add(-time.Hour),
		Status:   booking.StatusApproved,
	}
	require.NoError(t, repo.Create(context.Background(), finished))

	t.Run("comment after a finished booking is accepted", func(t *testing.T) {
		w := executeRequest("POST", fmt.Sprintf("/items/%d/comment", drill.ID),
			map[string]string{"text": "worked great"}, renter.ID)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var resp struct {
			Text       string    `json:"text"`
			AuthorName string    `json:"author_name"`
			Created    time.Time `json:"created"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "worked great", resp.Text)
		assert.Equal(t, "renter", resp.AuthorName)
		assert.False(t, resp.Created.IsZero())
	})
}
