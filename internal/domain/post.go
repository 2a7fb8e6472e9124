package domain

import "time"

// Post Model
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`          // Primary key
	Text      string    `json:"text"`                          // Post body
	Image     *string   `json:"image"`                         // Optional image reference
	Audio     *string   `json:"audio"`                         // Optional audio reference
	Likes     int       `gorm:"not null;default:0" json:"likes"`    // Aggregate like counter
	Dislikes  int       `gorm:"not null;default:0" json:"dislikes"` // Aggregate dislike counter
	AuthorID  uint      `gorm:"not null" json:"userId"`        // Foreign key to the author (wire name "userId")
	Author    User      `gorm:"foreignKey:AuthorID" json:"-"`  // Author relation, loaded for the feed
	CreatedAt time.Time `json:"createdAt"`                     // Timestamp of creation
}
