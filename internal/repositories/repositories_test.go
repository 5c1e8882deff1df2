package repositories

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/anonto42/birdie/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, AutoMigrate(db))
	return db
}

func createUser(t *testing.T, repo *PostgresUserRepository, name string) *models.User {
	t.Helper()
	u := &models.User{Username: name, Email: name + "@example.com", Password: "hash"}
	require.NoError(t, repo.CreateUser(context.Background(), u))
	return u
}

func TestUserRepositoryCreateAndLookup(t *testing.T) {
	ctx := context.Background()
	repo := NewPostgresUserRepository(openTestDB(t))
	alice := createUser(t, repo, "alice")

	got, err := repo.GetUserByEmail(ctx, "ALICE@example.com")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)
	assert.Equal(t, "", got.Bio)
	assert.NotNil(t, got.Followers)
	assert.NotNil(t, got.Following)

	_, err = repo.GetUserByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	err = repo.CreateUser(ctx, &models.User{Username: "alice", Email: "x@example.com", Password: "h"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestUserRepositoryUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewPostgresUserRepository(openTestDB(t))
	alice := createUser(t, repo, "alice")
	createUser(t, repo, "bob")

	alice.Bio = "hello"
	require.NoError(t, repo.UpdateUser(ctx, alice))
	got, err := repo.GetUserByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Bio)

	alice.Username = "bob"
	assert.ErrorIs(t, repo.UpdateUser(ctx, alice), ErrDuplicate)
}

func TestUserRepositorySearchIsCaseInsensitiveSubstring(t *testing.T) {
	ctx := context.Background()
	repo := NewPostgresUserRepository(openTestDB(t))
	createUser(t, repo, "Alice")
	createUser(t, repo, "malice")
	createUser(t, repo, "bob")
	createUser(t, repo, "al_x")

	users, err := repo.SearchUsers(ctx, "ALI")
	require.NoError(t, err)
	var names []string
	for _, u := range users {
		names = append(names, u.Username)
	}
	assert.ElementsMatch(t, []string{"Alice", "malice"}, names)

	users, err = repo.SearchUsers(ctx, "l_")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "al_x", users[0].Username)
}

func TestFollowToggleIsSymmetric(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	users := NewPostgresUserRepository(db)
	follows := NewPostgresFollowRepository(db)
	alice, bob := createUser(t, users, "alice"), createUser(t, users, "bob")

	following, err := follows.ToggleFollow(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, following)

	gotBob, err := users.GetUserByID(ctx, bob.ID)
	require.NoError(t, err)
	gotAlice, err := users.GetUserByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{alice.ID}, gotBob.Following)
	assert.Equal(t, []uint{bob.ID}, gotAlice.Followers)

	ids, err := follows.GetFollowerIDs(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{bob.ID}, ids)

	following, err = follows.ToggleFollow(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, following)

	ok, err := follows.IsFollowing(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ids, err = follows.GetFollowingIDs(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestGetUsersByIDsAttachesGraph(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	users := NewPostgresUserRepository(db)
	follows := NewPostgresFollowRepository(db)
	a, b, c := createUser(t, users, "a"), createUser(t, users, "b"), createUser(t, users, "c")
	_, err := follows.ToggleFollow(ctx, a.ID, b.ID)
	require.NoError(t, err)
	_, err = follows.ToggleFollow(ctx, c.ID, b.ID)
	require.NoError(t, err)

	got, err := users.GetUsersByIDs(ctx, []uint{b.ID, a.ID})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, a.ID, got[0].ID)
	assert.Equal(t, []uint{b.ID}, got[0].Following)
	assert.Equal(t, []uint{a.ID, c.ID}, got[1].Followers)
}

func TestCommentRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewPostgresCommentRepository(openTestDB(t))

	for _, tweetID := range []string{"t1", "t1", "t2"} {
		require.NoError(t, repo.CreateComment(ctx, &models.Comment{TweetID: tweetID, UserID: 1, Content: "c"}))
	}

	comments, err := repo.GetCommentsByTweetID(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Greater(t, comments[0].ID, comments[1].ID)

	counts, err := repo.CountByTweetIDs(ctx, []string{"t1", "t2", "t3"})
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"t1": 2, "t2": 1}, counts)

	require.NoError(t, repo.DeleteComment(ctx, comments[0].ID))
	_, err = repo.GetCommentByID(ctx, comments[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.DeleteComment(ctx, comments[0].ID), ErrNotFound)
}

func TestNotificationRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewPostgresNotificationRepository(openTestDB(t))

	require.NoError(t, repo.CreateNotification(ctx, models.NewNotification(1, 2, models.FollowEvent{})))
	require.NoError(t, repo.CreateNotification(ctx, models.NewNotification(1, 2, models.LikeEvent{TweetID: "t1"})))
	require.NoError(t, repo.CreateNotification(ctx, models.NewNotification(5, 2, models.FollowEvent{})))

	got, err := repo.GetByRecipientID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, models.NotificationLike, got[0].Type)
	assert.Equal(t, "t1", got[0].TweetID)
	assert.False(t, got[0].Read)
	assert.Equal(t, models.NotificationFollow, got[1].Type)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\%\_off\\`, escapeLike(`50%_off\`))
}
