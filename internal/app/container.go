package app

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"shareit/internal/api"
	"shareit/internal/booking"
	"shareit/internal/item"
	"shareit/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	Logger       zerolog.Logger
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router *gin.Engine
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// User module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, cfg.Logger)

	// Booking repository comes first: the item module reads booking
	// history through it.
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)

	// Item module (items + comments)
	itemRepo := item.NewPgxRepository(cfg.DBPool)
	commentRepo := item.NewPgxCommentRepository(cfg.DBPool)
	itemService := item.NewService(itemRepo, commentRepo, userService, &bookingHistory{repo: bookingRepo}, cfg.Logger)

	// Booking module
	bookingService := booking.NewService(bookingRepo, userService, itemService, cfg.Logger)

	router := api.NewRouter(api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		Logger:         cfg.Logger,
		DBPool:         cfg.DBPool,
		UserService:    userService,
		ItemService:    itemService,
		BookingService: bookingService,
	})

	return &Container{
		Router: router,
	}
}

// bookingHistory adapts the booking repository to the item module's view of
// booking history.
type bookingHistory struct {
	repo booking.Repository
}

func (a *bookingHistory) HasFinished(ctx context.Context, itemID, userID int64, before time.Time) (bool, error) {
	return a.repo.HasFinished(ctx, itemID, userID, before)
}

func (a *bookingHistory) LastForItem(ctx context.Context, itemID int64, now time.Time) (*item.BookingBrief, error) {
	b, err := a.repo.LastForItem(ctx, itemID, now)
	return brief(b), err
}

func (a *bookingHistory) NextForItem(ctx context.Context, itemID int64, now time.Time) (*item.BookingBrief, error) {
	b, err := a.repo.NextForItem(ctx, itemID, now)
	return brief(b), err
}

func brief(b *booking.Booking) *item.BookingBrief {
	if b == nil {
		return nil
	}
	return &item.BookingBrief{
		ID:       b.ID,
		BookerID: b.BookerID,
		Start:    b.Start,
		End:      b.End,
	}
}
