package billing

import "time"

const (
	StatusPending = "pending"
	StatusPaid    = "paid"
	StatusOverdue = "overdue"
)

// Invoice is one month's fee for one trainee. Amounts are integer cents; no
// aggregation happens server-side.
type Invoice struct {
	ID          string     `gorm:"primaryKey" json:"id"`
	TraineeID   string     `gorm:"not null;index" json:"trainee_id"`
	Reference   string     `gorm:"not null" json:"reference"`
	AmountCents int64      `gorm:"not null" json:"amount_cents"`
	DueDate     time.Time  `gorm:"not null" json:"due_date"`
	Status      string     `gorm:"default:'pending'" json:"status"`
	PaidAt      *time.Time `json:"paid_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (Invoice) TableName() string { return "app_finance.invoices" }
