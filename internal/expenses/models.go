package expenses

import "time"

type Expense struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Description string    `gorm:"not null" json:"description"`
	Category    string    `gorm:"not null" json:"category"`
	AmountCents int64     `gorm:"not null" json:"amount_cents"`
	Date        time.Time `gorm:"not null" json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Expense) TableName() string { return "app_finance.expenses" }
