package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Income Model
type Income struct {
	ID          uint            `gorm:"primaryKey" json:"id"`                   // Primary key
	UserID      uint            `gorm:"index;not null" json:"user_id"`          // Owning user
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"` // Positive amount
	Source      string          `gorm:"size:64;not null" json:"source"`         // Free-text income source
	Date        time.Time       `gorm:"index;not null" json:"date"`             // Calendar date of the income, not creation time
	Description string          `gorm:"size:255" json:"description"`            // Optional free text
	CreatedAt   int64           `gorm:"autoCreateTime:milli" json:"created_at"` // Timestamp of creation in milliseconds
	UpdatedAt   int64           `gorm:"autoUpdateTime:milli" json:"updated_at"` // Timestamp of last update in milliseconds
}
