package service

import (
	"context"
	"sort"
	"time"

	"github.com/akarpova/shareit/internal/model"
)

// In-memory store fakes used by the service tests.  They mirror the
// ordering contracts documented on the store interfaces: id-descending
// list pages, start-descending ended sets and start-ascending upcoming
// sets.

type fakeUsers struct {
	users map[uint64]model.User
}

func newFakeUsers(users ...model.User) *fakeUsers {
	m := make(map[uint64]model.User, len(users))
	for _, u := range users {
		m[u.ID] = u
	}
	return &fakeUsers{users: m}
}

func (f *fakeUsers) GetByID(_ context.Context, id uint64) (*model.User, error) {
	if u, ok := f.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

type fakeItems struct {
	items map[uint64]model.Item
	seq   uint64
}

func newFakeItems(items ...model.Item) *fakeItems {
	f := &fakeItems{items: make(map[uint64]model.Item, len(items))}
	for _, it := range items {
		f.items[it.ID] = it
		if it.ID > f.seq {
			f.seq = it.ID
		}
	}
	return f
}

func (f *fakeItems) Create(_ context.Context, it *model.Item) error {
	f.seq++
	it.ID = f.seq
	f.items[it.ID] = *it
	return nil
}

func (f *fakeItems) GetByID(_ context.Context, id uint64) (*model.Item, error) {
	if it, ok := f.items[id]; ok {
		return &it, nil
	}
	return nil, nil
}

func (f *fakeItems) Update(_ context.Context, it *model.Item) error {
	f.items[it.ID] = *it
	return nil
}

func (f *fakeItems) ListByOwner(_ context.Context, ownerID uint64, limit, offset int) ([]model.Item, error) {
	var out []model.Item
	for _, it := range f.items {
		if it.OwnerID == ownerID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, limit, offset), nil
}

func (f *fakeItems) Search(_ context.Context, text string, limit, offset int) ([]model.Item, error) {
	var out []model.Item
	for _, it := range f.items {
		if it.Available && (contains(it.Name, text) || contains(it.Description, text)) {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, limit, offset), nil
}

func (f *fakeItems) ListByRequest(_ context.Context, requestID uint64) ([]model.Item, error) {
	var out []model.Item
	for _, it := range f.items {
		if it.RequestID != nil && *it.RequestID == requestID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeBookings struct {
	bookings map[uint64]model.Booking
	seq      uint64
}

func newFakeBookings(bookings ...model.Booking) *fakeBookings {
	f := &fakeBookings{bookings: make(map[uint64]model.Booking, len(bookings))}
	for _, b := range bookings {
		f.bookings[b.ID] = b
		if b.ID > f.seq {
			f.seq = b.ID
		}
	}
	return f
}

func (f *fakeBookings) Create(_ context.Context, b *model.Booking) error {
	f.seq++
	b.ID = f.seq
	f.bookings[b.ID] = *b
	return nil
}

func (f *fakeBookings) GetByID(_ context.Context, id uint64) (*model.Booking, error) {
	if b, ok := f.bookings[id]; ok {
		return &b, nil
	}
	return nil, nil
}

func (f *fakeBookings) UpdateStatus(_ context.Context, id uint64, expect, next model.BookingStatus) (bool, error) {
	b, ok := f.bookings[id]
	if !ok || b.Status != expect {
		return false, nil
	}
	b.Status = next
	f.bookings[id] = b
	return true, nil
}

func (f *fakeBookings) ListByBooker(_ context.Context, bookerID uint64, limit, offset int) ([]model.Booking, error) {
	return page(f.filter(func(b model.Booking) bool { return b.BookerID == bookerID }, byIDDesc), limit, offset), nil
}

func (f *fakeBookings) ListByOwner(_ context.Context, ownerID uint64, limit, offset int) ([]model.Booking, error) {
	return page(f.filter(func(b model.Booking) bool { return b.ItemOwnerID == ownerID }, byIDDesc), limit, offset), nil
}

func (f *fakeBookings) ListByBookerAndItem(_ context.Context, bookerID, itemID uint64) ([]model.Booking, error) {
	return f.filter(func(b model.Booking) bool { return b.BookerID == bookerID && b.ItemID == itemID }, byIDDesc), nil
}

func (f *fakeBookings) LastApproved(_ context.Context, itemID uint64, now time.Time) (*model.Booking, error) {
	set := f.filter(func(b model.Booking) bool {
		return b.ItemID == itemID && b.Status == model.StatusApproved && b.Start.Before(now)
	}, byStartDesc)
	if len(set) == 0 {
		return nil, nil
	}
	return &set[0], nil
}

func (f *fakeBookings) NextApproved(_ context.Context, itemID uint64, now time.Time) (*model.Booking, error) {
	set := f.filter(func(b model.Booking) bool {
		return b.ItemID == itemID && b.Status == model.StatusApproved && b.Start.After(now)
	}, byStartAsc)
	if len(set) == 0 {
		return nil, nil
	}
	return &set[0], nil
}

func (f *fakeBookings) ApprovedEndedBefore(_ context.Context, now time.Time) ([]model.Booking, error) {
	return f.filter(func(b model.Booking) bool {
		return b.Status == model.StatusApproved && b.End.Before(now)
	}, byStartDesc), nil
}

func (f *fakeBookings) ApprovedStartingAfter(_ context.Context, now time.Time) ([]model.Booking, error) {
	return f.filter(func(b model.Booking) bool {
		return b.Status == model.StatusApproved && b.Start.After(now)
	}, byStartAsc), nil
}

type bookingOrder func(a, b model.Booking) bool

func byIDDesc(a, b model.Booking) bool    { return a.ID > b.ID }
func byStartDesc(a, b model.Booking) bool { return a.Start.After(b.Start) }
func byStartAsc(a, b model.Booking) bool  { return a.Start.Before(b.Start) }

func (f *fakeBookings) filter(keep func(model.Booking) bool, less bookingOrder) []model.Booking {
	var out []model.Booking
	for _, b := range f.bookings {
		if keep(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

type fakeComments struct {
	comments []model.Comment
	seq      uint64
}

func (f *fakeComments) Create(_ context.Context, cm *model.Comment) error {
	f.seq++
	cm.ID = f.seq
	f.comments = append(f.comments, *cm)
	return nil
}

func (f *fakeComments) ListByItem(_ context.Context, itemID uint64) ([]model.Comment, error) {
	var out []model.Comment
	for _, cm := range f.comments {
		if cm.ItemID == itemID {
			out = append(out, cm)
		}
	}
	return out, nil
}

type fakeRequests struct {
	requests map[uint64]model.ItemRequest
	seq      uint64
}

func newFakeRequests(requests ...model.ItemRequest) *fakeRequests {
	f := &fakeRequests{requests: make(map[uint64]model.ItemRequest, len(requests))}
	for _, req := range requests {
		f.requests[req.ID] = req
		if req.ID > f.seq {
			f.seq = req.ID
		}
	}
	return f
}

func (f *fakeRequests) Create(_ context.Context, req *model.ItemRequest) error {
	f.seq++
	req.ID = f.seq
	f.requests[req.ID] = *req
	return nil
}

func (f *fakeRequests) GetByID(_ context.Context, id uint64) (*model.ItemRequest, error) {
	if req, ok := f.requests[id]; ok {
		return &req, nil
	}
	return nil, nil
}

func (f *fakeRequests) ListByRequestor(_ context.Context, requestorID uint64) ([]model.ItemRequest, error) {
	return f.filter(func(r model.ItemRequest) bool { return r.RequestorID == requestorID }), nil
}

func (f *fakeRequests) ListOthers(_ context.Context, requestorID uint64, limit, offset int) ([]model.ItemRequest, error) {
	return page(f.filter(func(r model.ItemRequest) bool { return r.RequestorID != requestorID }), limit, offset), nil
}

func (f *fakeRequests) filter(keep func(model.ItemRequest) bool) []model.ItemRequest {
	var out []model.ItemRequest
	for _, req := range f.requests {
		if keep(req) {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func page[T any](in []T, limit, offset int) []T {
	if offset >= len(in) {
		return []T{}
	}
	in = in[offset:]
	if limit < len(in) {
		in = in[:limit]
	}
	return in
}

func contains(haystack, needle string) bool {
	return needle != "" && len(haystack) >= len(needle) && indexFold(haystack, needle) >= 0
}

// indexFold is a tiny ASCII case-insensitive substring search, enough
// for the fake's LIKE emulation.
func indexFold(haystack, needle string) int {
	lower := func(b byte) byte {
		if 'A' <= b && b <= 'Z' {
			return b + 'a' - 'A'
		}
		return b
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := 0; j < len(needle); j++ {
			if lower(haystack[i+j]) != lower(needle[j]) {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
