package model

// Package model contains the pure domain records used across layers
// (HTTP, service, repository, storage). No database-specific tags or
// business logic here.

// Order statuses.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusPaid      = "PAID"
	OrderStatusCancelled = "CANCELLED"
)

// Campaign statuses.
const (
	CampaignStatusNew    = "NEW"
	CampaignStatusActive = "ACTIVE"
	CampaignStatusClosed = "CLOSED"
)

// Task statuses.
const (
	TaskStatusOpen       = "OPEN"
	TaskStatusInProgress = "IN_PROGRESS"
	TaskStatusDone       = "DONE"
)

// ValidOrderStatus reports whether s is one of the order status values.
func ValidOrderStatus(s string) bool {
	return s == OrderStatusPending || s == OrderStatusPaid || s == OrderStatusCancelled
}

// ValidCampaignStatus reports whether s is one of the campaign status values.
func ValidCampaignStatus(s string) bool {
	return s == CampaignStatusNew || s == CampaignStatusActive || s == CampaignStatusClosed
}

// ValidTaskStatus reports whether s is one of the task status values.
func ValidTaskStatus(s string) bool {
	return s == TaskStatusOpen || s == TaskStatusInProgress || s == TaskStatusDone
}
