package service

import "errors"

// Package service contains the use-case layer. Services validate
// business rules, translate repository errors into sentinel errors, and
// never expose repository types to handlers.

// Sentinel errors shared by all services. Handlers map these onto HTTP
// status codes.
var (
	// ErrIDRequired signals a missing or zero identifier.
	ErrIDRequired = errors.New("id is required")

	// ErrNotFound signals that the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidReference signals that a referenced record (customer of
	// an order, worker of a task, task of an attachment) does not exist.
	ErrInvalidReference = errors.New("referenced record not found")

	// ErrInvalidStatus signals a status value outside the allowed set.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrCampaignClosed signals an assignment attempt on a closed campaign.
	ErrCampaignClosed = errors.New("campaign is closed")

	// ErrReaderNil signals a nil upload body.
	ErrReaderNil = errors.New("reader is nil")
)

// ListResult is the service-level DTO for paginated collections.
type ListResult[T any] struct {
	Items []T `json:"data"`
	Total int `json:"total"`
}

// normalizePage clamps pagination input: non-positive limits fall back
// to 10, negative offsets to 0.
func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
