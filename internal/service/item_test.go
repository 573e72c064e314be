package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akarpova/shareit/internal/model"
)

func newItemFixture(bookings ...model.Booking) (*ItemService, *fakeComments) {
	owner := model.User{ID: 1, Name: "owner"}
	booker := model.User{ID: 2, Name: "booker"}
	other := model.User{ID: 3, Name: "other"}
	items := newFakeItems(
		model.Item{ID: 10, OwnerID: owner.ID, Name: "drill", Description: "cordless drill", Available: true},
		model.Item{ID: 11, OwnerID: owner.ID, Name: "ladder", Description: "step ladder", Available: true},
		model.Item{ID: 12, OwnerID: other.ID, Name: "sander", Description: "belt sander, drill bits included", Available: false},
	)
	comments := &fakeComments{}
	svc := NewItemService(items, newFakeUsers(owner, booker, other), newFakeBookings(bookings...), comments, newFakeRequests())
	svc.now = fixedClock(testNow)
	return svc, comments
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestItemCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid item", func(t *testing.T) {
		svc, _ := newItemFixture()
		it, err := svc.Create(ctx, 1, ItemInput{Name: strPtr("hammer"), Description: strPtr("claw hammer"), Available: boolPtr(true)})
		require.NoError(t, err)
		assert.NotZero(t, it.ID)
		assert.Equal(t, uint64(1), it.OwnerID)
	})

	t.Run("validation", func(t *testing.T) {
		cases := []struct {
			name string
			in   ItemInput
		}{
			{"missing name", ItemInput{Description: strPtr("d"), Available: boolPtr(true)}},
			{"blank name", ItemInput{Name: strPtr("  "), Description: strPtr("d"), Available: boolPtr(true)}},
			{"missing description", ItemInput{Name: strPtr("n"), Available: boolPtr(true)}},
			{"missing availability", ItemInput{Name: strPtr("n"), Description: strPtr("d")}},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				svc, _ := newItemFixture()
				_, err := svc.Create(ctx, 1, tc.in)
				assert.ErrorIs(t, err, ErrInvalidOperation)
			})
		}
	})

	t.Run("unknown owner", func(t *testing.T) {
		svc, _ := newItemFixture()
		_, err := svc.Create(ctx, 99, ItemInput{Name: strPtr("n"), Description: strPtr("d"), Available: boolPtr(true)})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unknown request id", func(t *testing.T) {
		svc, _ := newItemFixture()
		reqID := uint64(404)
		_, err := svc.Create(ctx, 1, ItemInput{Name: strPtr("n"), Description: strPtr("d"), Available: boolPtr(true), RequestID: &reqID})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestItemUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("owner patches fields", func(t *testing.T) {
		svc, _ := newItemFixture()
		it, err := svc.Update(ctx, 1, 10, ItemInput{Available: boolPtr(false)})
		require.NoError(t, err)
		assert.False(t, it.Available)
		assert.Equal(t, "drill", it.Name, "untouched fields keep their value")

		it, err = svc.Update(ctx, 1, 10, ItemInput{Name: strPtr("hammer drill")})
		require.NoError(t, err)
		assert.Equal(t, "hammer drill", it.Name)
		assert.False(t, it.Available)
	})

	t.Run("non-owner reads as not found", func(t *testing.T) {
		svc, _ := newItemFixture()
		_, err := svc.Update(ctx, 2, 10, ItemInput{Available: boolPtr(false)})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unknown item", func(t *testing.T) {
		svc, _ := newItemFixture()
		_, err := svc.Update(ctx, 1, 404, ItemInput{Available: boolPtr(false)})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func approvedBooking(id, itemID uint64, start, end time.Time) model.Booking {
	return model.Booking{
		ID: id, ItemID: itemID, ItemOwnerID: 1, BookerID: 2, BookerName: "booker",
		Start: start, End: end, Status: model.StatusApproved,
	}
}

func TestItemGetAvailabilitySummary(t *testing.T) {
	ctx := context.Background()
	bookings := []model.Booking{
		approvedBooking(1, 10, hoursFromNow(-48), hoursFromNow(-24)),
		approvedBooking(2, 10, hoursFromNow(-12), hoursFromNow(-6)),
		approvedBooking(3, 10, hoursFromNow(6), hoursFromNow(12)),
		approvedBooking(4, 10, hoursFromNow(24), hoursFromNow(48)),
		{ID: 5, ItemID: 10, ItemOwnerID: 1, BookerID: 2, Start: hoursFromNow(1), End: hoursFromNow(2), Status: model.StatusWaiting},
	}

	t.Run("owner sees last and next", func(t *testing.T) {
		svc, _ := newItemFixture(bookings...)
		det, err := svc.Get(ctx, 1, 10)
		require.NoError(t, err)
		require.NotNil(t, det.LastBooking)
		require.NotNil(t, det.NextBooking)
		// Last is the ended booking with the greatest start; next the
		// upcoming one with the smallest.  Waiting bookings never count.
		assert.Equal(t, uint64(2), det.LastBooking.ID)
		assert.Equal(t, uint64(3), det.NextBooking.ID)
	})

	t.Run("resolution is repeatable", func(t *testing.T) {
		svc, _ := newItemFixture(bookings...)
		first, err := svc.Get(ctx, 1, 10)
		require.NoError(t, err)
		second, err := svc.Get(ctx, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, first.LastBooking.ID, second.LastBooking.ID)
		assert.Equal(t, first.NextBooking.ID, second.NextBooking.ID)
	})

	t.Run("non-owner sees no summary", func(t *testing.T) {
		svc, _ := newItemFixture(bookings...)
		det, err := svc.Get(ctx, 2, 10)
		require.NoError(t, err)
		assert.Nil(t, det.LastBooking)
		assert.Nil(t, det.NextBooking)
	})

	t.Run("no approved history", func(t *testing.T) {
		svc, _ := newItemFixture()
		det, err := svc.Get(ctx, 1, 10)
		require.NoError(t, err)
		assert.Nil(t, det.LastBooking)
		assert.Nil(t, det.NextBooking)
	})

	t.Run("unknown item", func(t *testing.T) {
		svc, _ := newItemFixture()
		_, err := svc.Get(ctx, 1, 404)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestItemListOwned(t *testing.T) {
	ctx := context.Background()
	// Item 10 carries two ended and two upcoming approved bookings so the
	// bulk resolution has to pick among candidates: last is the ended
	// booking with the greatest start, next the upcoming one with the
	// smallest.
	bookings := []model.Booking{
		approvedBooking(1, 10, hoursFromNow(-48), hoursFromNow(-24)),
		approvedBooking(2, 10, hoursFromNow(6), hoursFromNow(12)),
		approvedBooking(3, 11, hoursFromNow(-12), hoursFromNow(-6)),
		approvedBooking(4, 10, hoursFromNow(-18), hoursFromNow(-14)),
		approvedBooking(5, 10, hoursFromNow(24), hoursFromNow(48)),
	}

	t.Run("each item resolved independently", func(t *testing.T) {
		svc, _ := newItemFixture(bookings...)
		details, err := svc.ListOwned(ctx, 1, 0, 10)
		require.NoError(t, err)
		require.Len(t, details, 2)

		byID := map[uint64]ItemDetails{}
		for _, d := range details {
			byID[d.Item.ID] = d
		}
		drill := byID[10]
		require.NotNil(t, drill.LastBooking)
		require.NotNil(t, drill.NextBooking)
		assert.Equal(t, uint64(4), drill.LastBooking.ID)
		assert.Equal(t, uint64(2), drill.NextBooking.ID)

		ladder := byID[11]
		require.NotNil(t, ladder.LastBooking)
		assert.Equal(t, uint64(3), ladder.LastBooking.ID)
		assert.Nil(t, ladder.NextBooking)
	})

	t.Run("bulk agrees with per-item resolution", func(t *testing.T) {
		svc, _ := newItemFixture(bookings...)
		details, err := svc.ListOwned(ctx, 1, 0, 10)
		require.NoError(t, err)
		for _, d := range details {
			det, err := svc.Get(ctx, 1, d.Item.ID)
			require.NoError(t, err)
			if det.LastBooking == nil {
				assert.Nil(t, d.LastBooking)
			} else {
				require.NotNil(t, d.LastBooking)
				assert.Equal(t, det.LastBooking.ID, d.LastBooking.ID)
			}
			if det.NextBooking == nil {
				assert.Nil(t, d.NextBooking)
			} else {
				require.NotNil(t, d.NextBooking)
				assert.Equal(t, det.NextBooking.ID, d.NextBooking.ID)
			}
		}
	})

	t.Run("pagination checked before fetch", func(t *testing.T) {
		svc, _ := newItemFixture()
		_, err := svc.ListOwned(ctx, 1, -1, 10)
		assert.ErrorIs(t, err, ErrInvalidPagination)
		_, err = svc.ListOwned(ctx, 1, 0, 0)
		assert.ErrorIs(t, err, ErrInvalidPagination)
	})

	t.Run("page size respected", func(t *testing.T) {
		svc, _ := newItemFixture()
		details, err := svc.ListOwned(ctx, 1, 0, 1)
		require.NoError(t, err)
		require.Len(t, details, 1)
		assert.Equal(t, uint64(10), details[0].Item.ID)
	})
}

func TestItemSearch(t *testing.T) {
	ctx := context.Background()
	svc, _ := newItemFixture()

	t.Run("matches name and description, available only", func(t *testing.T) {
		got, err := svc.Search(ctx, "drill", 0, 10)
		require.NoError(t, err)
		// Item 12 mentions drill bits but is unavailable.
		require.Len(t, got, 1)
		assert.Equal(t, uint64(10), got[0].ID)
	})

	t.Run("blank query yields empty result", func(t *testing.T) {
		got, err := svc.Search(ctx, "   ", 0, 10)
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.NotNil(t, got)
	})

	t.Run("invalid page", func(t *testing.T) {
		_, err := svc.Search(ctx, "drill", 0, -1)
		assert.ErrorIs(t, err, ErrInvalidPagination)
	})
}

func TestAddComment(t *testing.T) {
	ctx := context.Background()
	completed := approvedBooking(1, 10, hoursFromNow(-48), hoursFromNow(-24))

	t.Run("after completed booking", func(t *testing.T) {
		svc, store := newItemFixture(completed)
		cm, err := svc.AddComment(ctx, 2, 10, "worked great")
		require.NoError(t, err)
		assert.NotZero(t, cm.ID)
		assert.Equal(t, "booker", cm.AuthorName)
		assert.Equal(t, testNow, cm.CreatedAt)
		assert.Len(t, store.comments, 1)
	})

	t.Run("blank text", func(t *testing.T) {
		svc, _ := newItemFixture(completed)
		_, err := svc.AddComment(ctx, 2, 10, "   ")
		assert.ErrorIs(t, err, ErrInvalidOperation)
	})

	t.Run("no completed booking", func(t *testing.T) {
		svc, _ := newItemFixture()
		_, err := svc.AddComment(ctx, 2, 10, "never used it")
		assert.ErrorIs(t, err, ErrInvalidOperation)
	})

	t.Run("booking still in progress", func(t *testing.T) {
		svc, _ := newItemFixture(approvedBooking(1, 10, hoursFromNow(-1), hoursFromNow(1)))
		_, err := svc.AddComment(ctx, 2, 10, "so far so good")
		assert.ErrorIs(t, err, ErrInvalidOperation)
	})

	t.Run("waiting booking does not qualify", func(t *testing.T) {
		b := completed
		b.Status = model.StatusWaiting
		svc, _ := newItemFixture(b)
		_, err := svc.AddComment(ctx, 2, 10, "nice")
		assert.ErrorIs(t, err, ErrInvalidOperation)
	})

	t.Run("second comment rejected", func(t *testing.T) {
		svc, _ := newItemFixture(completed)
		_, err := svc.AddComment(ctx, 2, 10, "first")
		require.NoError(t, err)
		_, err = svc.AddComment(ctx, 2, 10, "second")
		assert.ErrorIs(t, err, ErrInvalidOperation)
	})

	t.Run("unknown item", func(t *testing.T) {
		svc, _ := newItemFixture(completed)
		_, err := svc.AddComment(ctx, 2, 404, "text")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, _ := newItemFixture(completed)
		_, err := svc.AddComment(ctx, 99, 10, "text")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("comments visible on the item afterwards", func(t *testing.T) {
		svc, _ := newItemFixture(completed)
		_, err := svc.AddComment(ctx, 2, 10, "worked great")
		require.NoError(t, err)

		det, err := svc.Get(ctx, 3, 10)
		require.NoError(t, err)
		require.Len(t, det.Comments, 1)
		assert.Equal(t, "worked great", det.Comments[0].Text)
	})
}
