package models

import "time"

// Follow is a directed edge of the social graph. A single row stands for both
// FollowerID's following entry and FollowingID's follower entry.
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_following;not null"`
	FollowingID uint      `json:"following_id" gorm:"index;uniqueIndex:idx_follower_following;not null"`
	CreatedAt   time.Time `json:"created_at"`
}
