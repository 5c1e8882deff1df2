package services

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/anonto42/birdie/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

type recordingUploader struct {
	names []string
}

func (r *recordingUploader) Upload(_ context.Context, name string, _ []byte, _ string) (string, error) {
	r.names = append(r.names, name)
	return "https://media.example.com/" + name, nil
}

func TestCreateTweetValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")

	_, err := f.engage.CreateTweet(ctx, alice, "   ", "")
	requireKind(t, err, KindValidation)

	_, err = f.engage.CreateTweet(ctx, alice, strings.Repeat("a", 281), "")
	requireKind(t, err, KindValidation)

	view, err := f.engage.CreateTweet(ctx, alice, strings.Repeat("é", 280), "")
	require.NoError(t, err)
	assert.Equal(t, "alice", view.Author.Username)
	assert.Empty(t, view.Likes)
	assert.NotEmpty(t, view.ID)
}

func TestCreateTweetWithImage(t *testing.T) {
	ctx := context.Background()
	payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes)

	disabled := newFixture(t)
	_, err := disabled.engage.CreateTweet(ctx, disabled.user(t, "alice"), "", payload)
	requireKind(t, err, KindValidation)

	up := &recordingUploader{}
	f := newFixture(t, withUploader(up))
	alice := f.user(t, "alice")

	_, err = f.engage.CreateTweet(ctx, alice, "", base64.StdEncoding.EncodeToString([]byte("plain text")))
	requireKind(t, err, KindValidation)

	view, err := f.engage.CreateTweet(ctx, alice, "", payload)
	require.NoError(t, err)
	require.Len(t, up.names, 1)
	assert.True(t, strings.HasPrefix(up.names[0], "birdie_posts/"))
	assert.Equal(t, "https://media.example.com/"+up.names[0], view.Image)
	assert.Empty(t, view.Content)
}

func TestToggleLikeIsItsOwnInverse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice, bob := f.user(t, "alice"), f.user(t, "bob")
	tweet := f.tweet(t, alice, "hello")

	liked, err := f.engage.ToggleLike(ctx, bob, tweet.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{bob.ID}, liked.Likes)

	unliked, err := f.engage.ToggleLike(ctx, bob, tweet.ID)
	require.NoError(t, err)
	assert.Empty(t, unliked.Likes)

	got := f.notificationsOf(t, alice)
	require.Len(t, got, 1)
	assert.Equal(t, models.NotificationLike, got[0].Type)
	assert.Equal(t, tweet.ID, got[0].TweetID)
	assert.Equal(t, bob.ID, got[0].SenderID)

	_, err = f.engage.ToggleLike(ctx, bob, "000000000000000000000000")
	requireKind(t, err, KindNotFound)
	_, err = f.engage.ToggleLike(ctx, bob, "not-an-id")
	requireKind(t, err, KindNotFound)
}

func TestSelfEngagementDoesNotNotify(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	tweet := f.tweet(t, alice, "talking to myself")

	_, err := f.engage.ToggleLike(ctx, alice, tweet.ID)
	require.NoError(t, err)
	_, err = f.engage.AddComment(ctx, alice, tweet.ID, "me again")
	require.NoError(t, err)

	assert.Empty(t, f.notificationsOf(t, alice))
}

func TestEngagementSucceedsWhenNotificationFails(t *testing.T) {
	f := newFixture(t, withNotifications(failingNotifications{}))
	ctx := context.Background()
	alice, bob := f.user(t, "alice"), f.user(t, "bob")
	tweet := f.tweet(t, alice, "hello")

	liked, err := f.engage.ToggleLike(ctx, bob, tweet.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{bob.ID}, liked.Likes)

	comment, err := f.engage.AddComment(ctx, bob, tweet.ID, "nice")
	require.NoError(t, err)
	assert.Equal(t, "nice", comment.Content)
}

func TestAddComment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice, bob := f.user(t, "alice"), f.user(t, "bob")
	tweet := f.tweet(t, alice, "hello")

	_, err := f.engage.AddComment(ctx, bob, tweet.ID, "  ")
	requireKind(t, err, KindValidation)
	_, err = f.engage.AddComment(ctx, bob, "000000000000000000000000", "hi")
	requireKind(t, err, KindNotFound)

	view, err := f.engage.AddComment(ctx, bob, tweet.ID, "nice tweet")
	require.NoError(t, err)
	assert.Equal(t, tweet.ID, view.TweetID)
	assert.Equal(t, "bob", view.Author.Username)

	got := f.notificationsOf(t, alice)
	require.Len(t, got, 1)
	assert.Equal(t, models.NotificationComment, got[0].Type)
	assert.Equal(t, tweet.ID, got[0].TweetID)
}

func TestListCommentsNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice, bob := f.user(t, "alice"), f.user(t, "bob")
	tweet := f.tweet(t, alice, "hello")

	_, err := f.engage.AddComment(ctx, bob, tweet.ID, "first")
	require.NoError(t, err)
	_, err = f.engage.AddComment(ctx, alice, tweet.ID, "second")
	require.NoError(t, err)

	got, err := f.engage.ListComments(ctx, tweet.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "second", got[0].Content)
	assert.Equal(t, "alice", got[0].Author.Username)
	assert.Equal(t, "first", got[1].Content)
	assert.Equal(t, "bob", got[1].Author.Username)

	empty, err := f.engage.ListComments(ctx, "000000000000000000000000")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestDeleteCommentOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice, bob := f.user(t, "alice"), f.user(t, "bob")
	tweet := f.tweet(t, alice, "hello")
	comment, err := f.engage.AddComment(ctx, bob, tweet.ID, "mine")
	require.NoError(t, err)

	err = f.engage.DeleteComment(ctx, alice, comment.ID)
	requireKind(t, err, KindForbidden)

	require.NoError(t, f.engage.DeleteComment(ctx, bob, comment.ID))
	err = f.engage.DeleteComment(ctx, bob, comment.ID)
	requireKind(t, err, KindNotFound)
}

func TestDeleteTweetOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice, bob := f.user(t, "alice"), f.user(t, "bob")
	tweet := f.tweet(t, alice, "hello")

	err := f.engage.DeleteTweet(ctx, bob, tweet.ID)
	requireKind(t, err, KindForbidden)

	require.NoError(t, f.engage.DeleteTweet(ctx, alice, tweet.ID))
	feed, err := f.feed.GetFeed(ctx, f.reload(t, bob))
	require.NoError(t, err)
	assert.Empty(t, feed)

	err = f.engage.DeleteTweet(ctx, alice, tweet.ID)
	requireKind(t, err, KindNotFound)
}
