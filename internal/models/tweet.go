package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxContentLength bounds tweet and comment bodies.
const MaxContentLength = 280

// Tweet is stored in MongoDB. Likes has set semantics and is only changed
// through $addToSet / $pull.
type Tweet struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    uint               `json:"user_id" bson:"user_id"`
	Content   string             `json:"content" bson:"content"`
	Image     string             `json:"image,omitempty" bson:"image,omitempty"`
	Likes     []uint             `json:"likes" bson:"likes"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// LikedBy reports whether the user is in the like set.
func (t *Tweet) LikedBy(userID uint) bool {
	for _, id := range t.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// TweetAuthor is the author block of a feed entry.
type TweetAuthor struct {
	UserSummary
	Followers []uint `json:"followers"`
	Following []uint `json:"following"`
}

// TweetView is a tweet joined with its author and reply count.
type TweetView struct {
	ID          string      `json:"id"`
	Content     string      `json:"content"`
	Image       string      `json:"image,omitempty"`
	Likes       []uint      `json:"likes"`
	CreatedAt   time.Time   `json:"created_at"`
	IsFollowing bool        `json:"is_following"`
	ReplyCount  int64       `json:"reply_count"`
	Author      TweetAuthor `json:"author"`
}

// CreateTweetRequest carries text and/or an inline base64 image.
type CreateTweetRequest struct {
	Content string `json:"content" validate:"max=280"`
	Image   string `json:"image,omitempty"`
}
