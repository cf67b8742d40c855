package domain

// User Model
type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`         // Primary key
	Name      string `gorm:"not null" json:"name"`         // Display name
	Email     string `gorm:"unique;not null" json:"email"` // Unique login email
	Password  string `gorm:"not null" json:"-"`            // Hashed password, never serialized
	CreatedAt int64  `gorm:"autoCreateTime:milli" json:"created_at"` // Timestamp of creation in milliseconds
	UpdatedAt int64  `gorm:"autoUpdateTime:milli" json:"updated_at"` // Timestamp of last update in milliseconds
}
