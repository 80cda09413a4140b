package booking

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"shareit/internal/item"
	"shareit/internal/user"
)

type CreateRequest struct {
	ItemID   int64
	BookerID int64
	Start    time.Time
	End      time.Time
}

// Role selects whose bookings a list query returns: those the user made,
// or those placed on items the user owns.
type Role string

const (
	RoleBooker Role = "booker"
	RoleOwner  Role = "owner"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	Approve(ctx context.Context, bookingID, actingUserID int64, approve bool) (*Booking, error)
	GetByID(ctx context.Context, bookingID, actingUserID int64) (*Booking, error)
	List(ctx context.Context, actingUserID int64, role Role, state State) ([]*Booking, error)
}

type service struct {
	repo        Repository
	userService user.Service
	itemService item.Service
	logger      zerolog.Logger
}

func NewService(repo Repository, userService user.Service, itemService item.Service, logger zerolog.Logger) Service {
	return &service{
		repo:        repo,
		userService: userService,
		itemService: itemService,
		logger:      logger,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	now := time.Now()

	// Validation order is part of the contract: range sanity first, then
	// existence, self-booking, availability, overlap.
	if req.Start.Before(now) || req.End.Before(now) {
		return nil, ErrPastRange
	}
	if !req.Start.Before(req.End) {
		return nil, ErrInvalidRange
	}

	it, err := s.itemService.GetItem(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, item.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	if _, err := s.userService.GetByID(ctx, req.BookerID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if it.OwnerID == req.BookerID {
		return nil, ErrSelfBooking
	}

	if !it.Available {
		return nil, ErrItemUnavailable
	}

	existing, err := s.repo.ListByItem(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	for _, e := range existing {
		if crosses(e, req.Start, req.End) {
			return nil, ErrOverlap
		}
	}

	b := &Booking{
		ItemID:   req.ItemID,
		BookerID: req.BookerID,
		Start:    req.Start,
		End:      req.End,
		Status:   StatusWaiting,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	// Re-read for the denormalized item/booker fields.
	created, err := s.repo.GetByID(ctx, b.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("booking_id", created.ID).
		Int64("item_id", created.ItemID).
		Int64("booker_id", created.BookerID).
		Msg("booking created")
	return created, nil
}

func (s *service) Approve(ctx context.Context, bookingID, actingUserID int64, approve bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if b.ItemOwnerID != actingUserID {
		return nil, ErrAccessDenied
	}

	// Strict idempotence guard: approved and rejected are terminal.
	if approve && b.Status == StatusApproved {
		return nil, ErrAlreadyDecided
	}
	if !approve && b.Status == StatusRejected {
		return nil, ErrAlreadyDecided
	}

	if approve {
		b.Status = StatusApproved
	} else {
		b.Status = StatusRejected
	}

	if err := s.repo.UpdateStatus(ctx, b.ID, b.Status); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("booking_id", b.ID).
		Str("status", string(b.Status)).
		Msg("booking decided")
	return b, nil
}

func (s *service) GetByID(ctx context.Context, bookingID, actingUserID int64) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if b.BookerID != actingUserID && b.ItemOwnerID != actingUserID {
		return nil, ErrAccessDenied
	}

	return b, nil
}

func (s *service) List(ctx context.Context, actingUserID int64, role Role, state State) ([]*Booking, error) {
	var (
		bookings []*Booking
		err      error
	)

	switch role {
	case RoleOwner:
		if _, err := s.userService.GetByID(ctx, actingUserID); err != nil {
			if errors.Is(err, user.ErrNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}

		hasItems, err := s.itemService.HasItems(ctx, actingUserID)
		if err != nil {
			return nil, err
		}
		if !hasItems {
			return nil, ErrOwnerHasNoItems
		}

		bookings, err = s.repo.ListByItemOwner(ctx, actingUserID)
		if err != nil {
			return nil, err
		}
	default:
		bookings, err = s.repo.ListByBooker(ctx, actingUserID)
		if err != nil {
			return nil, err
		}
	}

	// One snapshot of now per call keeps the classification consistent
	// across the whole result.
	matches := state.Matches(time.Now())

	filtered := make([]*Booking, 0, len(bookings))
	for _, b := range bookings {
		if matches(b) {
			filtered = append(filtered, b)
		}
	}
	return filtered, nil
}
