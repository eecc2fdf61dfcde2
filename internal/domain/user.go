package domain

// User Model
type User struct {
	ID             uint          `gorm:"primaryKey" json:"id"`                // Primary key
	Email          string        `gorm:"uniqueIndex;not null" json:"email"`   // Unique indexed email
	Username       string        `gorm:"uniqueIndex;not null" json:"username"` // Unique indexed username
	HashedPassword string        `gorm:"not null" json:"-"`                   // Password hash, never serialized
	IsActive       bool          `gorm:"default:true" json:"is_active"`       // Whether the account may log in
	IsSuperuser    bool          `gorm:"default:false" json:"is_superuser"`   // Admin flag, never set via registration
	Posts          []Post        `gorm:"foreignKey:AuthorID" json:"-"`        // Posts authored by this user
	Interactions   []Interaction `gorm:"foreignKey:UserID" json:"-"`          // Interactions made by this user
}
