package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/akarpova/shareit/internal/model"
	"github.com/akarpova/shareit/internal/queue"
	"github.com/akarpova/shareit/internal/service"
)

// BookingHandler exposes the booking lifecycle endpoints.  Lifecycle
// transitions additionally publish an event to the message broker;
// publishing happens off the request path and failures never affect the
// HTTP response.
type BookingHandler struct {
	Bookings *service.BookingService
}

func NewBookingHandler(bookings *service.BookingService) *BookingHandler {
	if bookings == nil {
		panic("nil service passed to NewBookingHandler")
	}
	return &BookingHandler{Bookings: bookings}
}

// ----- DTOs -----

type bookingCreateReq struct {
	ItemID uint64     `json:"itemId"`
	Start  *time.Time `json:"start"`
	End    *time.Time `json:"end"`
}

type bookingUserPart struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type bookingItemPart struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type bookingResp struct {
	ID     uint64          `json:"id"`
	Start  time.Time       `json:"start"`
	End    time.Time       `json:"end"`
	Status string          `json:"status"`
	Booker bookingUserPart `json:"booker"`
	Item   bookingItemPart `json:"item"`
}

func toBookingResp(b model.Booking) bookingResp {
	return bookingResp{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: string(b.Status),
		Booker: bookingUserPart{ID: b.BookerID, Name: b.BookerName},
		Item:   bookingItemPart{ID: b.ItemID, Name: b.ItemName},
	}
}

// Create handles POST /v1/bookings.
func (h *BookingHandler) Create(c echo.Context) error {
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req bookingCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	b, err := h.Bookings.Create(c.Request().Context(), callerID, service.CreateInput{
		ItemID: req.ItemID,
		Start:  req.Start,
		End:    req.End,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	publishLifecycle("created", b)
	return c.JSON(http.StatusCreated, toBookingResp(*b))
}

// Confirm handles PATCH /v1/bookings/:id?approved=true|false.
func (h *BookingHandler) Confirm(c echo.Context) error {
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var approve bool
	switch c.QueryParam("approved") {
	case "true":
		approve = true
	case "false":
		approve = false
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "approved must be true or false"})
	}
	b, err := h.Bookings.Confirm(c.Request().Context(), callerID, bookingID, approve)
	if err != nil {
		return writeServiceError(c, err)
	}
	publishLifecycle("decided", b)
	return c.JSON(http.StatusOK, toBookingResp(*b))
}

// Get handles GET /v1/bookings/:id.
func (h *BookingHandler) Get(c echo.Context) error {
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	b, err := h.Bookings.Get(c.Request().Context(), callerID, bookingID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toBookingResp(*b))
}

// ListByBooker handles GET /v1/bookings?state=&from=&size=.
func (h *BookingHandler) ListByBooker(c echo.Context) error {
	return h.list(c, h.Bookings.ListByBooker)
}

// ListByOwner handles GET /v1/bookings/owner?state=&from=&size=.
func (h *BookingHandler) ListByOwner(c echo.Context) error {
	return h.list(c, h.Bookings.ListByOwner)
}

func (h *BookingHandler) list(c echo.Context,
	fetch func(context.Context, uint64, string, int, int) ([]model.Booking, error)) error {
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	from, size, ok := queryPage(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid pagination"})
	}
	state := c.QueryParam("state")
	if state == "" {
		state = "ALL"
	}
	bookings, err := fetch(c.Request().Context(), callerID, state, from, size)
	if err != nil {
		return writeServiceError(c, err)
	}
	out := make([]bookingResp, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResp(b))
	}
	return c.JSON(http.StatusOK, out)
}

// publishLifecycle emits a booking event in the background.  The request
// context is not reused: the HTTP response must not wait on the broker.
func publishLifecycle(action string, b *model.Booking) {
	ev := queue.BookingEvent{
		Action:     action,
		BookingID:  b.ID,
		ItemID:     b.ItemID,
		ItemName:   b.ItemName,
		OwnerID:    b.ItemOwnerID,
		BookerID:   b.BookerID,
		BookerName: b.BookerName,
		Start:      b.Start.Format(time.RFC3339),
		End:        b.End.Format(time.RFC3339),
		Status:     string(b.Status),
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue.PublishBookingEvent(ctx, ev)
	}()
}
