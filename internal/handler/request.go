package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/akarpova/shareit/internal/service"
)

// RequestHandler exposes item request endpoints.
type RequestHandler struct {
	Requests *service.RequestService
}

func NewRequestHandler(requests *service.RequestService) *RequestHandler {
	if requests == nil {
		panic("nil service passed to NewRequestHandler")
	}
	return &RequestHandler{Requests: requests}
}

type requestResp struct {
	ID          uint64     `json:"id"`
	Description string     `json:"description"`
	Created     time.Time  `json:"created"`
	Items       []itemResp `json:"items"`
}

func toRequestResp(det service.RequestDetails) requestResp {
	items := make([]itemResp, 0, len(det.Items))
	for _, it := range det.Items {
		items = append(items, toItemResp(it))
	}
	return requestResp{
		ID:          det.Request.ID,
		Description: det.Request.Description,
		Created:     det.Request.CreatedAt,
		Items:       items,
	}
}

// Create handles POST /v1/requests.
func (h *RequestHandler) Create(c echo.Context) error {
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req struct {
		Description string `json:"description"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	created, err := h.Requests.Create(c.Request().Context(), callerID, req.Description)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, requestResp{
		ID:          created.ID,
		Description: created.Description,
		Created:     created.CreatedAt,
		Items:       []itemResp{},
	})
}

// ListOwn handles GET /v1/requests.
func (h *RequestHandler) ListOwn(c echo.Context) error {
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	details, err := h.Requests.ListOwn(c.Request().Context(), callerID)
	if err != nil {
		return writeServiceError(c, err)
	}
	out := make([]requestResp, 0, len(details))
	for _, det := range details {
		out = append(out, toRequestResp(det))
	}
	return c.JSON(http.StatusOK, out)
}

// ListOthers handles GET /v1/requests/all?from=&size=.
func (h *RequestHandler) ListOthers(c echo.Context) error {
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	from, size, ok := queryPage(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid pagination"})
	}
	details, err := h.Requests.ListOthers(c.Request().Context(), callerID, from, size)
	if err != nil {
		return writeServiceError(c, err)
	}
	out := make([]requestResp, 0, len(details))
	for _, det := range details {
		out = append(out, toRequestResp(det))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /v1/requests/:id.
func (h *RequestHandler) Get(c echo.Context) error {
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	requestID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request id"})
	}
	det, err := h.Requests.Get(c.Request().Context(), callerID, requestID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toRequestResp(*det))
}
