package models

import (
	"fmt"
	"time"
)

type NotificationType string

const (
	NotificationLike    NotificationType = "like"
	NotificationComment NotificationType = "comment"
	NotificationFollow  NotificationType = "follow"
)

// NotificationEvent is the kind-specific payload of a notification.
// Follow carries nothing; like and comment carry the tweet they refer to.
type NotificationEvent interface {
	Type() NotificationType
	tweetRef() string
}

type FollowEvent struct{}

type LikeEvent struct{ TweetID string }

type CommentEvent struct{ TweetID string }

func (FollowEvent) Type() NotificationType  { return NotificationFollow }
func (FollowEvent) tweetRef() string        { return "" }
func (LikeEvent) Type() NotificationType    { return NotificationLike }
func (e LikeEvent) tweetRef() string        { return e.TweetID }
func (CommentEvent) Type() NotificationType { return NotificationComment }
func (e CommentEvent) tweetRef() string     { return e.TweetID }

// Notification is the stored row. Build it with NewNotification and read the
// payload back with Event.
type Notification struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	RecipientID uint             `json:"recipient_id" gorm:"index;not null"`
	SenderID    uint             `json:"sender_id" gorm:"not null"`
	Type        NotificationType `json:"type" gorm:"size:20;not null"`
	TweetID     string           `json:"tweet_id,omitempty" gorm:"size:24"`
	Read        bool             `json:"read" gorm:"not null;default:false"`
	CreatedAt   time.Time        `json:"created_at" gorm:"index"`
}

func NewNotification(recipientID, senderID uint, ev NotificationEvent) *Notification {
	return &Notification{
		RecipientID: recipientID,
		SenderID:    senderID,
		Type:        ev.Type(),
		TweetID:     ev.tweetRef(),
	}
}

// Event reconstructs the tagged payload of a stored notification.
func (n *Notification) Event() (NotificationEvent, error) {
	switch n.Type {
	case NotificationFollow:
		return FollowEvent{}, nil
	case NotificationLike:
		if n.TweetID == "" {
			return nil, fmt.Errorf("like notification %d has no tweet", n.ID)
		}
		return LikeEvent{TweetID: n.TweetID}, nil
	case NotificationComment:
		if n.TweetID == "" {
			return nil, fmt.Errorf("comment notification %d has no tweet", n.ID)
		}
		return CommentEvent{TweetID: n.TweetID}, nil
	default:
		return nil, fmt.Errorf("unknown notification type %q", n.Type)
	}
}

// NotificationTweet is the referenced tweet inside a notification view.
type NotificationTweet struct {
	ID        string      `json:"id"`
	Content   string      `json:"content"`
	Image     string      `json:"image,omitempty"`
	Likes     []uint      `json:"likes"`
	CreatedAt time.Time   `json:"created_at"`
	Author    UserSummary `json:"author"`
}

// NotificationView is a notification enriched for the client.
type NotificationView struct {
	ID        uint               `json:"id"`
	Type      NotificationType   `json:"type"`
	Read      bool               `json:"read"`
	CreatedAt time.Time          `json:"created_at"`
	Sender    UserSummary        `json:"sender"`
	Tweet     *NotificationTweet `json:"tweet,omitempty"`
}
