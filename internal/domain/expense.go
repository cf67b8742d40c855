package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense Model
type Expense struct {
	ID          uint            `gorm:"primaryKey" json:"id"`                   // Primary key
	UserID      uint            `gorm:"index;not null" json:"user_id"`          // Owning user
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"` // Positive amount
	Category    Category        `gorm:"size:32;not null" json:"category"`       // Fixed category label
	Date        time.Time       `gorm:"index;not null" json:"date"`             // Calendar date of the expense, not creation time
	Description string          `gorm:"size:255" json:"description"`            // Optional free text
	CreatedAt   int64           `gorm:"autoCreateTime:milli" json:"created_at"` // Timestamp of creation in milliseconds
	UpdatedAt   int64           `gorm:"autoUpdateTime:milli" json:"updated_at"` // Timestamp of last update in milliseconds
}
