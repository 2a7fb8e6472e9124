package domain

// ReactionType is the kind of reaction a user can hold on a post
type ReactionType string

// Supported reaction types
const (
	ReactionLike    ReactionType = "like"    // Like reaction
	ReactionDislike ReactionType = "dislike" // Dislike reaction
)

// Valid reports whether the type is one of the supported literals
func (t ReactionType) Valid() bool {
	return t == ReactionLike || t == ReactionDislike
}

// Opposite returns the other reaction type
func (t ReactionType) Opposite() ReactionType {
	if t == ReactionLike {
		return ReactionDislike
	}
	return ReactionLike
}

// CounterColumn returns the posts column holding the aggregate counter for this type
func (t ReactionType) CounterColumn() string {
	if t == ReactionLike {
		return "likes"
	}
	return "dislikes"
}

// Reaction Model. The unique index on (user_id, post_id) enforces
// at most one reaction per user per post at the store level.
type Reaction struct {
	ID     uint         `gorm:"primaryKey" json:"id"`                           // Primary key
	UserID uint         `gorm:"not null;uniqueIndex:idx_user_post" json:"userId"` // Foreign key to the reacting user
	PostID uint         `gorm:"not null;uniqueIndex:idx_user_post" json:"postId"` // Foreign key to the post
	Type   ReactionType `gorm:"not null" json:"type"`                           // Reaction type: like or dislike
}
