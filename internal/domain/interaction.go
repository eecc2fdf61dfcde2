package domain

import "time" // Timestamps

// Interaction Model
type Interaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`    // Primary key
	UserID    uint      `gorm:"index;not null" json:"user_id"` // User who interacted
	PostID    uint      `gorm:"index;not null" json:"post_id"` // Post interacted with
	Kind      string    `gorm:"not null" json:"kind"`    // Interaction kind (like, favorite, ...)
	CreatedAt time.Time `json:"created_at"`              // Creation timestamp
}
