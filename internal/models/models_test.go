package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationEventRoundTrip(t *testing.T) {
	cases := []NotificationEvent{
		FollowEvent{},
		LikeEvent{TweetID: "64b7f0c2a1b2c3d4e5f60718"},
		CommentEvent{TweetID: "64b7f0c2a1b2c3d4e5f60718"},
	}
	for _, ev := range cases {
		n := NewNotification(1, 2, ev)
		assert.Equal(t, ev.Type(), n.Type)
		assert.False(t, n.Read)

		got, err := n.Event()
		require.NoError(t, err)
		assert.Equal(t, ev, got)
	}
}

func TestFollowNotificationHasNoTweet(t *testing.T) {
	n := NewNotification(1, 2, FollowEvent{})
	assert.Empty(t, n.TweetID)
}

func TestEventRejectsMalformedRows(t *testing.T) {
	_, err := (&Notification{Type: NotificationLike}).Event()
	assert.Error(t, err)

	_, err = (&Notification{Type: "mention", TweetID: "x"}).Event()
	assert.Error(t, err)
}

func TestUserIsFollowing(t *testing.T) {
	u := &User{ID: 1, Following: []uint{3, 4}}
	assert.True(t, u.IsFollowing(3))
	assert.False(t, u.IsFollowing(2))
	assert.False(t, (&User{}).IsFollowing(1))
}
