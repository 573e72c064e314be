package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akarpova/shareit/internal/model"
)

func newRequestFixture(requests ...model.ItemRequest) (*RequestService, *fakeItems) {
	users := newFakeUsers(
		model.User{ID: 1, Name: "alice"},
		model.User{ID: 2, Name: "bob"},
	)
	items := newFakeItems()
	svc := NewRequestService(newFakeRequests(requests...), users, items)
	svc.now = fixedClock(testNow)
	return svc, items
}

func TestRequestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid request", func(t *testing.T) {
		svc, _ := newRequestFixture()
		req, err := svc.Create(ctx, 1, "looking for a drill")
		require.NoError(t, err)
		assert.NotZero(t, req.ID)
		assert.Equal(t, uint64(1), req.RequestorID)
		assert.Equal(t, testNow, req.CreatedAt)
	})

	t.Run("blank description", func(t *testing.T) {
		svc, _ := newRequestFixture()
		_, err := svc.Create(ctx, 1, "   ")
		assert.ErrorIs(t, err, ErrInvalidOperation)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, _ := newRequestFixture()
		_, err := svc.Create(ctx, 99, "anything")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRequestListing(t *testing.T) {
	ctx := context.Background()
	seed := []model.ItemRequest{
		{ID: 1, RequestorID: 1, Description: "need a drill", CreatedAt: hoursFromNow(-3)},
		{ID: 2, RequestorID: 2, Description: "need a ladder", CreatedAt: hoursFromNow(-2)},
		{ID: 3, RequestorID: 1, Description: "need a saw", CreatedAt: hoursFromNow(-1)},
	}

	t.Run("own requests oldest first with answers", func(t *testing.T) {
		svc, items := newRequestFixture(seed...)
		reqID := uint64(1)
		require.NoError(t, items.Create(ctx, &model.Item{OwnerID: 2, Name: "drill", Description: "cordless", Available: true, RequestID: &reqID}))

		got, err := svc.ListOwn(ctx, 1)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, uint64(1), got[0].Request.ID)
		assert.Equal(t, uint64(3), got[1].Request.ID)
		require.Len(t, got[0].Items, 1)
		assert.Equal(t, "drill", got[0].Items[0].Name)
		assert.Empty(t, got[1].Items)
	})

	t.Run("others excludes own", func(t *testing.T) {
		svc, _ := newRequestFixture(seed...)
		got, err := svc.ListOthers(ctx, 1, 0, 10)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, uint64(2), got[0].Request.ID)
	})

	t.Run("others pagination validated", func(t *testing.T) {
		svc, _ := newRequestFixture(seed...)
		_, err := svc.ListOthers(ctx, 1, -1, 10)
		assert.ErrorIs(t, err, ErrInvalidPagination)
	})

	t.Run("get by id", func(t *testing.T) {
		svc, _ := newRequestFixture(seed...)
		det, err := svc.Get(ctx, 2, 1)
		require.NoError(t, err)
		assert.Equal(t, "need a drill", det.Request.Description)

		_, err = svc.Get(ctx, 2, 404)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
