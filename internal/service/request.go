package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/akarpova/shareit/internal/model"
)

// RequestService implements item requests: users publish what they are
// looking for, and items created with a request id appear as answers.
type RequestService struct {
	requests RequestStore
	users    UserStore
	items    ItemStore
	now      func() time.Time
}

// NewRequestService constructs a RequestService over the given stores.
func NewRequestService(requests RequestStore, users UserStore, items ItemStore) *RequestService {
	return &RequestService{
		requests: requests,
		users:    users,
		items:    items,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// RequestDetails pairs a request with the items offered as answers.
type RequestDetails struct {
	Request model.ItemRequest
	Items   []model.Item
}

// Create publishes a new request with a non-blank description.
func (s *RequestService) Create(ctx context.Context, callerID uint64, description string) (*model.ItemRequest, error) {
	user, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", callerID, ErrNotFound)
	}
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("request description must not be blank: %w", ErrInvalidOperation)
	}
	req := &model.ItemRequest{
		RequestorID: user.ID,
		Description: description,
		CreatedAt:   s.now(),
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// ListOwn returns the caller's requests, oldest first, each with the
// items offered as answers.
func (s *RequestService) ListOwn(ctx context.Context, callerID uint64) ([]RequestDetails, error) {
	user, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", callerID, ErrNotFound)
	}
	requests, err := s.requests.ListByRequestor(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return s.attachItems(ctx, requests)
}

// ListOthers returns a page of requests published by other users,
// oldest first, each with its answers.
func (s *RequestService) ListOthers(ctx context.Context, callerID uint64, from, size int) ([]RequestDetails, error) {
	if err := checkPage(from, size); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", callerID, ErrNotFound)
	}
	requests, err := s.requests.ListOthers(ctx, user.ID, size, from)
	if err != nil {
		return nil, err
	}
	return s.attachItems(ctx, requests)
}

// Get returns one request with its answers; any resolvable user may view
// any request.
func (s *RequestService) Get(ctx context.Context, callerID, requestID uint64) (*RequestDetails, error) {
	user, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", callerID, ErrNotFound)
	}
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, fmt.Errorf("request %d: %w", requestID, ErrNotFound)
	}
	items, err := s.items.ListByRequest(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return &RequestDetails{Request: *req, Items: items}, nil
}

func (s *RequestService) attachItems(ctx context.Context, requests []model.ItemRequest) ([]RequestDetails, error) {
	details := make([]RequestDetails, 0, len(requests))
	for _, req := range requests {
		items, err := s.items.ListByRequest(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		details = append(details, RequestDetails{Request: req, Items: items})
	}
	return details, nil
}
