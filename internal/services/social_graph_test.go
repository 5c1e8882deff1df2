package services

import (
	"context"
	"testing"

	"github.com/anonto42/birdie/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowTogglesBothSides(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice, bob := f.user(t, "alice"), f.user(t, "bob")

	res, err := f.graph.Follow(ctx, alice, bob.ID)
	require.NoError(t, err)
	assert.True(t, res.Following)
	assert.Equal(t, []uint{alice.ID}, res.TargetFollowers)
	assert.Equal(t, []uint{bob.ID}, res.ActorFollowing)

	alice, bob = f.reload(t, alice), f.reload(t, bob)
	assert.Equal(t, []uint{bob.ID}, alice.Following)
	assert.Equal(t, []uint{alice.ID}, bob.Followers)

	res, err = f.graph.Follow(ctx, alice, bob.ID)
	require.NoError(t, err)
	assert.False(t, res.Following)
	assert.Empty(t, res.TargetFollowers)
	assert.Empty(t, res.ActorFollowing)

	alice, bob = f.reload(t, alice), f.reload(t, bob)
	assert.Empty(t, alice.Following)
	assert.Empty(t, bob.Followers)
}

func TestFollowRejectsSelfAndUnknownUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")

	_, err := f.graph.Follow(ctx, alice, alice.ID)
	requireKind(t, err, KindValidation)

	_, err = f.graph.Follow(ctx, alice, alice.ID+100)
	requireKind(t, err, KindNotFound)
	assert.Empty(t, f.reload(t, alice).Following)
}

func TestFollowNotifiesOnlyOnFollow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice, bob := f.user(t, "alice"), f.user(t, "bob")

	_, err := f.graph.Follow(ctx, alice, bob.ID)
	require.NoError(t, err)
	_, err = f.graph.Follow(ctx, alice, bob.ID)
	require.NoError(t, err)

	got := f.notificationsOf(t, bob)
	require.Len(t, got, 1)
	assert.Equal(t, models.NotificationFollow, got[0].Type)
	assert.Equal(t, alice.ID, got[0].SenderID)
	assert.Empty(t, got[0].TweetID)
	assert.False(t, got[0].Read)
	assert.Empty(t, f.notificationsOf(t, alice))
}

func TestFollowSucceedsWhenNotificationFails(t *testing.T) {
	f := newFixture(t, withNotifications(failingNotifications{}))
	ctx := context.Background()
	alice, bob := f.user(t, "alice"), f.user(t, "bob")

	res, err := f.graph.Follow(ctx, alice, bob.ID)
	require.NoError(t, err)
	assert.True(t, res.Following)
	assert.Equal(t, []uint{alice.ID}, f.reload(t, bob).Followers)
}

func TestGetProfileExpandsGraph(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice, bob, carol := f.user(t, "alice"), f.user(t, "bob"), f.user(t, "carol")

	_, err := f.graph.Follow(ctx, bob, alice.ID)
	require.NoError(t, err)
	_, err = f.graph.Follow(ctx, alice, carol.ID)
	require.NoError(t, err)

	profile, err := f.graph.GetProfile(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)
	require.Len(t, profile.Followers, 1)
	assert.Equal(t, "bob", profile.Followers[0].Username)
	require.Len(t, profile.Following, 1)
	assert.Equal(t, "carol", profile.Following[0].Username)

	_, err = f.graph.GetProfile(ctx, 999)
	requireKind(t, err, KindNotFound)
}

func TestSearchUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, "alice")
	f.user(t, "malice")
	f.user(t, "bob")

	got, err := f.graph.SearchUsers(ctx, "ALI")
	require.NoError(t, err)
	names := make([]string, 0, len(got))
	for _, u := range got {
		names = append(names, u.Username)
	}
	assert.ElementsMatch(t, []string{"alice", "malice"}, names)

	got, err = f.graph.SearchUsers(ctx, "zzz")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = f.graph.SearchUsers(ctx, "  ")
	requireKind(t, err, KindValidation)
}
