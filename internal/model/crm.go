package model

import "time"

// Customer is a person or company that places orders.
// Identifiers are assigned by the repository layer, never by clients.
type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// Order is a purchase made by a customer. Amounts are stored in cents
// to avoid floating-point money arithmetic.
type Order struct {
	ID          int64     `json:"id"`
	CustomerID  int64     `json:"customer_id"`
	AmountCents int64     `json:"amount_cents"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// Campaign is a marketing campaign that workers can be assigned to.
type Campaign struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Worker is a staff member. A worker belongs to at most one campaign;
// CampaignID is nil when unassigned.
type Worker struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	CampaignID *int64    `json:"campaign_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// Task is a unit of work, optionally assigned to a worker and
// optionally carrying a due date.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date"`
	WorkerID    *int64     `json:"worker_id"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Student is an enrollee in the training program.
type Student struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       int       `json:"age"`
	CreatedAt time.Time `json:"created_at"`
}

// Attachment is a file stored in object storage and linked to a task.
// Attachments use UUID string ids because the id doubles as part of the
// storage object key.
type Attachment struct {
	ID          string    `json:"id"`
	TaskID      int64     `json:"task_id"`
	Filename    string    `json:"filename"`
	StoragePath string    `json:"storage_path"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
}
