package domain

import "time" // Timestamps

// Post Model
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`       // Primary key
	AuthorID  uint      `gorm:"index;not null" json:"author_id"` // Owning user
	Title     string    `gorm:"not null" json:"title"`      // Post title
	Content   string    `gorm:"type:text" json:"content"`   // Post body
	CreatedAt time.Time `json:"created_at"`                 // Creation timestamp
}
