package models

import "time"

// Comment represents a reply to a tweet
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TweetID   string    `json:"tweet_id" gorm:"index;size:24;not null"` // MongoDB ObjectID as hex
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Content   string    `json:"content" gorm:"size:280;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CommentView is a comment with its author's public name.
type CommentView struct {
	Comment
	Author UserSummary `json:"author"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,max=280"`
}
