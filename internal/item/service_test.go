package item

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/internal/user"
)

type fakeRepo struct {
	items  map[int64]*Item
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[int64]*Item{}}
}

func (r *fakeRepo) Create(_ context.Context, i *Item) error {
	r.nextID++
	i.ID = r.nextID
	i.CreatedAt = time.Now()
	stored := *i
	r.items[i.ID] = &stored
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*Item, error) {
	if i, ok := r.items[id]; ok {
		copied := *i
		return &copied, nil
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) ListByOwner(_ context.Context, ownerID int64) ([]*Item, error) {
	var out []*Item
	for _, i := range r.items {
		if i.OwnerID == ownerID {
			out = append(out, i)
		}
	}
	return out, nil
}

func (r *fakeRepo) CountByOwner(_ context.Context, ownerID int64) (int, error) {
	count := 0
	for _, i := range r.items {
		if i.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

func (r *fakeRepo) Search(_ context.Context, text string) ([]*Item, error) {
	needle := strings.ToLower(text)
	var out []*Item
	for _, i := range r.items {
		if !i.Available {
			continue
		}
		if strings.Contains(strings.ToLower(i.Name), needle) ||
			strings.Contains(strings.ToLower(i.Description), needle) {
			out = append(out, i)
		}
	}
	return out, nil
}

func (r *fakeRepo) Update(_ context.Context, i *Item) error {
	if _, ok := r.items[i.ID]; !ok {
		return ErrNotFound
	}
	stored := *i
	r.items[i.ID] = &stored
	return nil
}

type fakeCommentRepo struct {
	comments []*Comment
	nextID   int64
}

func (r *fakeCommentRepo) Create(_ context.Context, c *Comment) error {
	r.nextID++
	c.ID = r.nextID
	c.CreatedAt = time.Now()
	stored := *c
	r.comments = append(r.comments, &stored)
	return nil
}

func (r *fakeCommentRepo) ListByItem(_ context.Context, itemID int64) ([]*Comment, error) {
	var out []*Comment
	for _, c := range r.comments {
		if c.ItemID == itemID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeUserService struct {
	user.Service
	users map[int64]*user.User
}

func (s *fakeUserService) GetByID(_ context.Context, id int64) (*user.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, user.ErrNotFound
}

type fakeHistory struct {
	finished bool
	last     *BookingBrief
	next     *BookingBrief
}

func (h *fakeHistory) HasFinished(context.Context, int64, int64, time.Time) (bool, error) {
	return h.finished, nil
}

func (h *fakeHistory) LastForItem(context.Context, int64, time.Time) (*BookingBrief, error) {
	return h.last, nil
}

func (h *fakeHistory) NextForItem(context.Context, int64, time.Time) (*BookingBrief, error) {
	return h.next, nil
}

const (
	ownerID  = int64(1)
	renterID = int64(2)
)

func newTestService(history *fakeHistory) (Service, *fakeRepo) {
	repo := newFakeRepo()
	users := &fakeUserService{users: map[int64]*user.User{
		ownerID:  {ID: ownerID, Name: "owner", Email: "owner@example.com"},
		renterID: {ID: renterID, Name: "renter", Email: "renter@example.com"},
	}}
	svc := NewService(repo, &fakeCommentRepo{}, users, history, zerolog.Nop())
	return svc, repo
}

func TestCreateItem(t *testing.T) {
	ctx := context.Background()

	t.Run("creates item for existing owner", func(t *testing.T) {
		svc, _ := newTestService(&fakeHistory{})

		i, err := svc.Create(ctx, CreateRequest{
			OwnerID: ownerID, Name: "drill", Description: "cordless drill", Available: true,
		})
		require.NoError(t, err)
		assert.NotZero(t, i.ID)
		assert.Equal(t, ownerID, i.OwnerID)
	})

	t.Run("rejects unknown owner", func(t *testing.T) {
		svc, _ := newTestService(&fakeHistory{})

		_, err := svc.Create(ctx, CreateRequest{OwnerID: 999, Name: "drill"})
		assert.ErrorIs(t, err, user.ErrNotFound)
	})

	t.Run("rejects blank name", func(t *testing.T) {
		svc, _ := newTestService(&fakeHistory{})

		_, err := svc.Create(ctx, CreateRequest{OwnerID: ownerID, Name: "   "})
		assert.ErrorIs(t, err, ErrEmptyName)
	})
}

func TestUpdateItem(t *testing.T) {
	ctx := context.Background()

	create := func(t *testing.T, svc Service) *Item {
		t.Helper()
		i, err := svc.Create(ctx, CreateRequest{
			OwnerID: ownerID, Name: "drill", Description: "cordless drill", Available: true,
		})
		require.NoError(t, err)
		return i
	}

	t.Run("owner patches fields", func(t *testing.T) {
		svc, _ := newTestService(&fakeHistory{})
		i := create(t, svc)

		name := "hammer drill"
		available := false
		updated, err := svc.Update(ctx, i.ID, ownerID, UpdateRequest{Name: &name, Available: &available})
		require.NoError(t, err)
		assert.Equal(t, "hammer drill", updated.Name)
		assert.False(t, updated.Available)
		// Untouched fields stay as they were.
		assert.Equal(t, "cordless drill", updated.Description)
	})

	t.Run("non-owner is refused", func(t *testing.T) {
		svc, _ := newTestService(&fakeHistory{})
		i := create(t, svc)

		name := "stolen"
		_, err := svc.Update(ctx, i.ID, renterID, UpdateRequest{Name: &name})
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("unknown item", func(t *testing.T) {
		svc, _ := newTestService(&fakeHistory{})

		_, err := svc.Update(ctx, 999, ownerID, UpdateRequest{})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("blank text returns empty list", func(t *testing.T) {
		svc, _ := newTestService(&fakeHistory{})

		found, err := svc.Search(ctx, "   ")
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("matches available items only", func(t *testing.T) {
		svc, _ := newTestService(&fakeHistory{})

		_, err := svc.Create(ctx, CreateRequest{
			OwnerID: ownerID, Name: "drill", Description: "cordless", Available: true,
		})
		require.NoError(t, err)
		hidden, err := svc.Create(ctx, CreateRequest{
			OwnerID: ownerID, Name: "drill press", Description: "heavy", Available: false,
		})
		require.NoError(t, err)

		found, err := svc.Search(ctx, "drill")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.NotEqual(t, hidden.ID, found[0].ID)
	})
}

func TestAddComment(t *testing.T) {
	ctx := context.Background()

	t.Run("allowed after a finished booking", func(t *testing.T) {
		svc, _ := newTestService(&fakeHistory{finished: true})
		i, err := svc.Create(ctx, CreateRequest{OwnerID: ownerID, Name: "drill", Available: true})
		require.NoError(t, err)

		before := time.Now()
		c, err := svc.AddComment(ctx, i.ID, renterID, "worked great")
		require.NoError(t, err)
		assert.Equal(t, "worked great", c.Text)
		assert.Equal(t, "renter", c.AuthorName)
		assert.False(t, c.CreatedAt.Before(before))
	})

	t.Run("refused without rental history", func(t *testing.T) {
		svc, _ := newTestService(&fakeHistory{finished: false})
		i, err := svc.Create(ctx, CreateRequest{OwnerID: ownerID, Name: "drill", Available: true})
		require.NoError(t, err)

		_, err = svc.AddComment(ctx, i.ID, renterID, "never used it")
		assert.ErrorIs(t, err, ErrCommentNotAllowed)
	})

	t.Run("unknown author", func(t *testing.T) {
		svc, _ := newTestService(&fakeHistory{finished: true})

		_, err := svc.AddComment(ctx, 1, 999, "hi")
		assert.ErrorIs(t, err, user.ErrNotFound)
	})

	t.Run("unknown item", func(t *testing.T) {
		svc, _ := newTestService(&fakeHistory{finished: true})

		_, err := svc.AddComment(ctx, 999, renterID, "hi")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestGetByIDProjections(t *testing.T) {
	ctx := context.Background()

	last := &BookingBrief{ID: 1, BookerID: renterID, Start: time.Now().Add(-2 * time.Hour), End: time.Now().Add(-time.Hour)}
	next := &BookingBrief{ID: 2, BookerID: renterID, Start: time.Now().Add(time.Hour), End: time.Now().Add(2 * time.Hour)}

	svc, _ := newTestService(&fakeHistory{last: last, next: next})
	i, err := svc.Create(ctx, CreateRequest{OwnerID: ownerID, Name: "drill", Available: true})
	require.NoError(t, err)

	t.Run("owner sees neighbouring bookings", func(t *testing.T) {
		d, err := svc.GetByID(ctx, i.ID, ownerID)
		require.NoError(t, err)
		require.NotNil(t, d.LastBooking)
		require.NotNil(t, d.NextBooking)
		assert.Equal(t, last.ID, d.LastBooking.ID)
		assert.Equal(t, next.ID, d.NextBooking.ID)
	})

	t.Run("other users do not", func(t *testing.T) {
		d, err := svc.GetByID(ctx, i.ID, renterID)
		require.NoError(t, err)
		assert.Nil(t, d.LastBooking)
		assert.Nil(t, d.NextBooking)
	})

	t.Run("unknown caller", func(t *testing.T) {
		_, err := svc.GetByID(ctx, i.ID, 999)
		assert.ErrorIs(t, err, user.ErrNotFound)
	})
}
