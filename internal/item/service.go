package item

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"shareit/internal/user"
)

type CreateRequest struct {
	OwnerID     int64
	Name        string
	Description string
	Available   bool
}

type UpdateRequest struct {
	Name        *string
	Description *string
	Available   *bool
}

// Service defines business logic for items and their comments.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Item, error)
	Update(ctx context.Context, itemID, callerID int64, req UpdateRequest) (*Item, error)
	GetByID(ctx context.Context, itemID, callerID int64) (*Details, error)

	// GetItem is the bare entity lookup other modules validate against.
	GetItem(ctx context.Context, itemID int64) (*Item, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*Details, error)
	Search(ctx context.Context, text string) ([]*Item, error)
	HasItems(ctx context.Context, ownerID int64) (bool, error)
	AddComment(ctx context.Context, itemID, authorID int64, text string) (*Comment, error)
}

type service struct {
	repo        Repository
	comments    CommentRepository
	userService user.Service
	history     BookingHistory
	logger      zerolog.Logger
}

func NewService(
	repo Repository,
	comments CommentRepository,
	userService user.Service,
	history BookingHistory,
	logger zerolog.Logger,
) Service {
	return &service{
		repo:        repo,
		comments:    comments,
		userService: userService,
		history:     history,
		logger:      logger,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Item, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}

	// Owner must exist; user.ErrNotFound propagates as-is.
	if _, err := s.userService.GetByID(ctx, req.OwnerID); err != nil {
		return nil, err
	}

	i := &Item{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
		OwnerID:     req.OwnerID,
	}

	if err := s.repo.Create(ctx, i); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("item_id", i.ID).Int64("owner_id", i.OwnerID).Msg("item created")
	return i, nil
}

func (s *service) Update(ctx context.Context, itemID, callerID int64, req UpdateRequest) (*Item, error) {
	i, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if i.OwnerID != callerID {
		return nil, ErrNotOwner
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		i.Name = *req.Name
	}
	if req.Description != nil {
		i.Description = *req.Description
	}
	if req.Available != nil {
		i.Available = *req.Available
	}

	if err := s.repo.Update(ctx, i); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("item_id", i.ID).Msg("item updated")
	return i, nil
}

func (s *service) GetByID(ctx context.Context, itemID, callerID int64) (*Details, error) {
	if _, err := s.userService.GetByID(ctx, callerID); err != nil {
		return nil, err
	}

	i, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	// Neighbouring bookings are shown to the owner only.
	withBookings := i.OwnerID == callerID
	return s.details(ctx, i, withBookings, time.Now())
}

func (s *service) GetItem(ctx context.Context, itemID int64) (*Item, error) {
	return s.repo.GetByID(ctx, itemID)
}

func (s *service) ListByOwner(ctx context.Context, ownerID int64) ([]*Details, error) {
	items, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result := make([]*Details, 0, len(items))
	for _, i := range items {
		d, err := s.details(ctx, i, true, now)
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, nil
}

func (s *service) Search(ctx context.Context, text string) ([]*Item, error) {
	if strings.TrimSpace(text) == "" {
		return []*Item{}, nil
	}
	return s.repo.Search(ctx, text)
}

func (s *service) HasItems(ctx context.Context, ownerID int64) (bool, error) {
	count, err := s.repo.CountByOwner(ctx, ownerID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *service) AddComment(ctx context.Context, itemID, authorID int64, text string) (*Comment, error) {
	author, err := s.userService.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByID(ctx, itemID); err != nil {
		return nil, err
	}

	// Comments are gated on rental history: the author needs a booking of
	// this item that has already ended. Approval status is not consulted.
	finished, err := s.history.HasFinished(ctx, itemID, authorID, time.Now())
	if err != nil {
		return nil, err
	}
	if !finished {
		return nil, ErrCommentNotAllowed
	}

	c := &Comment{
		Text:       text,
		ItemID:     itemID,
		AuthorID:   authorID,
		AuthorName: author.Name,
	}

	if err := s.comments.Create(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("item_id", itemID).Int64("author_id", authorID).Msg("comment added")
	return c, nil
}

func (s *service) details(ctx context.Context, i *Item, withBookings bool, now time.Time) (*Details, error) {
	comments, err := s.comments.ListByItem(ctx, i.ID)
	if err != nil {
		return nil, err
	}

	d := &Details{
		Item:     i,
		Comments: comments,
	}

	if withBookings {
		if d.LastBooking, err = s.history.LastForItem(ctx, i.ID, now); err != nil {
			return nil, err
		}
		if d.NextBooking, err = s.history.NextForItem(ctx, i.ID, now); err != nil {
			return nil, err
		}
	}

	return d, nil
}
