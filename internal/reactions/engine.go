// Package reactions enforces the at-most-one-reaction-per-user-per-post rule
// and keeps the aggregate counters on posts in step with the reaction rows.
package reactions

import (
	"blog_system/internal/domain" // Importing domain models
	"errors"                      // Sentinel errors

	"gorm.io/gorm" // GORM ORM library
)

// Errors returned by Apply; callers map these to HTTP statuses
var (
	ErrDuplicateReaction = errors.New("reaction of this type already exists") // Same-type reaction repeated
	ErrPostNotFound      = errors.New("post not found")                       // Target post does not exist
)

// Apply records a like or dislike for (userID, postID). A repeated reaction of
// the same type is rejected with ErrDuplicateReaction and changes nothing. A
// reaction of the opposite type is retracted first, decrementing its counter.
// The whole toggle runs in a single transaction, and the unique index on
// (user_id, post_id) aborts a racing duplicate insert instead of letting it
// double-count.
func Apply(db *gorm.DB, userID, postID uint, kind domain.ReactionType) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var post domain.Post // Target post
		if err := tx.First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostNotFound // Unknown post
			}
			return err // Store error
		}
		var existing domain.Reaction // Current reaction for this user/post pair, if any
		err := tx.Where("user_id = ? AND post_id = ?", userID, postID).First(&existing).Error
		switch {
		case err == nil:
			// A reaction exists already
			if existing.Type == kind {
				return ErrDuplicateReaction // Idempotent rejection, no state change
			}
			// Switching type: retract the old reaction and its counter
			if err := tx.Delete(&existing).Error; err != nil {
				return err // Return error to rollback
			}
			col := existing.Type.CounterColumn() // Counter column of the retracted type
			if err := tx.Model(&post).Update(col, gorm.Expr(col+" - ?", 1)).Error; err != nil {
				return err // Return error to rollback
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// No prior reaction, nothing to retract
		default:
			return err // Store error
		}
		// Insert the new reaction row
		reaction := domain.Reaction{
			UserID: userID, // Reacting user
			PostID: postID, // Target post
			Type:   kind,   // Reaction type
		}
		if err := tx.Create(&reaction).Error; err != nil {
			return err // Unique index violation on a race rolls back the whole toggle
		}
		// Increment the matching counter
		col := kind.CounterColumn()
		return tx.Model(&post).Update(col, gorm.Expr(col+" + ?", 1)).Error
	})
}
