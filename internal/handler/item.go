package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/akarpova/shareit/internal/model"
	"github.com/akarpova/shareit/internal/service"
)

// ItemHandler exposes item CRUD, the owner's listing with the last/next
// booking summary, search and comment posting.
type ItemHandler struct {
	Items *service.ItemService
}

func NewItemHandler(items *service.ItemService) *ItemHandler {
	if items == nil {
		panic("nil service passed to NewItemHandler")
	}
	return &ItemHandler{Items: items}
}

// ----- DTOs -----

type itemReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
	RequestID   *uint64 `json:"requestId"`
}

type itemResp struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Available   bool    `json:"available"`
	RequestID   *uint64 `json:"requestId,omitempty"`
}

type bookingShort struct {
	ID       uint64 `json:"id"`
	BookerID uint64 `json:"bookerId"`
}

type commentResp struct {
	ID         uint64    `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

type itemDetailResp struct {
	itemResp
	LastBooking *bookingShort `json:"lastBooking"`
	NextBooking *bookingShort `json:"nextBooking"`
	Comments    []commentResp `json:"comments"`
}

func toItemResp(it model.Item) itemResp {
	return itemResp{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		RequestID:   it.RequestID,
	}
}

func toBookingShort(b *model.Booking) *bookingShort {
	if b == nil {
		return nil
	}
	return &bookingShort{ID: b.ID, BookerID: b.BookerID}
}

func toItemDetailResp(det service.ItemDetails) itemDetailResp {
	comments := make([]commentResp, 0, len(det.Comments))
	for _, cm := range det.Comments {
		comments = append(comments, commentResp{
			ID: cm.ID, Text: cm.Text, AuthorName: cm.AuthorName, Created: cm.CreatedAt,
		})
	}
	return itemDetailResp{
		itemResp:    toItemResp(det.Item),
		LastBooking: toBookingShort(det.LastBooking),
		NextBooking: toBookingShort(det.NextBooking),
		Comments:    comments,
	}
}

// Create handles POST /v1/items.
func (h *ItemHandler) Create(c echo.Context) error {
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req itemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	it, err := h.Items.Create(c.Request().Context(), callerID, service.ItemInput{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
		RequestID:   req.RequestID,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, toItemResp(*it))
}

// Patch handles PATCH /v1/items/:id.
func (h *ItemHandler) Patch(c echo.Context) error {
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	itemID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}
	var req itemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	it, err := h.Items.Update(c.Request().Context(), callerID, itemID, service.ItemInput{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toItemResp(*it))
}

// Get handles GET /v1/items/:id.  Owners additionally see the last/next
// approved booking of the item.
func (h *ItemHandler) Get(c echo.Context) error {
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	itemID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}
	det, err := h.Items.Get(c.Request().Context(), callerID, itemID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toItemDetailResp(*det))
}

// ListOwned handles GET /v1/items.
func (h *ItemHandler) ListOwned(c echo.Context) error {
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	from, size, ok := queryPage(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid pagination"})
	}
	details, err := h.Items.ListOwned(c.Request().Context(), callerID, from, size)
	if err != nil {
		return writeServiceError(c, err)
	}
	out := make([]itemDetailResp, 0, len(details))
	for _, det := range details {
		out = append(out, toItemDetailResp(det))
	}
	return c.JSON(http.StatusOK, out)
}

// Search handles GET /v1/items/search?text=.
func (h *ItemHandler) Search(c echo.Context) error {
	from, size, ok := queryPage(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid pagination"})
	}
	items, err := h.Items.Search(c.Request().Context(), c.QueryParam("text"), from, size)
	if err != nil {
		return writeServiceError(c, err)
	}
	out := make([]itemResp, 0, len(items))
	for _, it := range items {
		out = append(out, toItemResp(it))
	}
	return c.JSON(http.StatusOK, out)
}

// AddComment handles POST /v1/items/:id/comment.
func (h *ItemHandler) AddComment(c echo.Context) error {
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	itemID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}
	var req struct {
		Text string `json:"text"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	cm, err := h.Items.AddComment(c.Request().Context(), callerID, itemID, req.Text)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, commentResp{
		ID: cm.ID, Text: cm.Text, AuthorName: cm.AuthorName, Created: cm.CreatedAt,
	})
}
