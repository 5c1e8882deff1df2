// Package memory keeps every Birdie record in process. It implements all the
// repository interfaces and serializes mutations under a single lock, so set
// toggles and follow edges change atomically just like in the real stores.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/anonto42/birdie/backend/internal/models"
	"github.com/anonto42/birdie/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	_ repositories.UserRepository         = (*Store)(nil)
	_ repositories.FollowRepository       = (*Store)(nil)
	_ repositories.TweetRepository        = (*Store)(nil)
	_ repositories.CommentRepository      = (*Store)(nil)
	_ repositories.NotificationRepository = (*Store)(nil)
)

type edge struct{ follower, following uint }

type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	nextUserID    uint
	nextCommentID uint
	nextNotifID   uint

	users         map[uint]*models.User
	edges         []edge
	tweets        []*models.Tweet // insertion order
	comments      map[uint]*models.Comment
	notifications []*models.Notification
}

type Option func(*Store)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		now:      func() time.Time { return time.Now().UTC() },
		users:    make(map[uint]*models.User),
		comments: make(map[uint]*models.Comment),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// --- users ---

func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email || u.Username == user.Username {
			return repositories.ErrDuplicate
		}
	}
	s.nextUserID++
	now := s.now()
	user.ID = s.nextUserID
	user.CreatedAt, user.UpdatedAt = now, now
	user.Followers, user.Following = []uint{}, []uint{}

	stored := *user
	s.users[user.ID] = &stored
	return nil
}

func (s *Store) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return s.snapshot(u), nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	email = strings.ToLower(email)
	for _, u := range s.users {
		if u.Email == email {
			return s.snapshot(u), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *Store) GetUsersByIDs(_ context.Context, ids []uint) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := []models.User{}
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if u, ok := s.users[id]; ok {
			users = append(users, *s.snapshot(u))
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (s *Store) UpdateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.users[user.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	for id, u := range s.users {
		if id != user.ID && (u.Username == user.Username || u.Email == user.Email) {
			return repositories.ErrDuplicate
		}
	}
	stored.Username = user.Username
	stored.Email = user.Email
	stored.Password = user.Password
	stored.Bio = user.Bio
	stored.UpdatedAt = s.now()
	user.UpdatedAt = stored.UpdatedAt
	return nil
}

func (s *Store) SearchUsers(_ context.Context, query string) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query = strings.ToLower(query)
	users := []models.User{}
	for _, u := range s.users {
		if strings.Contains(strings.ToLower(u.Username), query) {
			users = append(users, *u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

// snapshot copies a user and derives its follow sets. Callers hold the lock.
func (s *Store) snapshot(u *models.User) *models.User {
	c := *u
	c.Followers, c.Following = []uint{}, []uint{}
	for _, e := range s.edges {
		if e.following == u.ID {
			c.Followers = append(c.Followers, e.follower)
		}
		if e.follower == u.ID {
			c.Following = append(c.Following, e.following)
		}
	}
	return &c
}

// --- follows ---

func (s *Store) ToggleFollow(_ context.Context, followerID, followingID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.edges {
		if e.follower == followerID && e.following == followingID {
			s.edges = append(s.edges[:i], s.edges[i+1:]...)
			return false, nil
		}
	}
	s.edges = append(s.edges, edge{follower: followerID, following: followingID})
	return true, nil
}

func (s *Store) IsFollowing(_ context.Context, followerID, followingID uint) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.edges {
		if e.follower == followerID && e.following == followingID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) GetFollowerIDs(_ context.Context, userID uint) ([]uint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := []uint{}
	for _, e := range s.edges {
		if e.following == userID {
			ids = append(ids, e.follower)
		}
	}
	return ids, nil
}

func (s *Store) GetFollowingIDs(_ context.Context, userID uint) ([]uint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := []uint{}
	for _, e := range s.edges {
		if e.follower == userID {
			ids = append(ids, e.following)
		}
	}
	return ids, nil
}

// --- tweets ---

func (s *Store) CreateTweet(_ context.Context, tweet *models.Tweet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	tweet.ID = primitive.NewObjectID()
	tweet.CreatedAt, tweet.UpdatedAt = now, now
	tweet.Likes = []uint{}

	stored := *tweet
	s.tweets = append(s.tweets, &stored)
	return nil
}

func (s *Store) GetTweetByID(_ context.Context, id string) (*models.Tweet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if t := s.findTweet(id); t != nil {
		return copyTweet(t), nil
	}
	return nil, repositories.ErrNotFound
}

func (s *Store) GetTweetsByIDs(_ context.Context, ids []string) ([]models.Tweet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	tweets := []models.Tweet{}
	for _, t := range s.tweets {
		if want[t.ID.Hex()] {
			tweets = append(tweets, *copyTweet(t))
		}
	}
	return tweets, nil
}

func (s *Store) GetAllTweets(_ context.Context) ([]models.Tweet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tweets := make([]models.Tweet, 0, len(s.tweets))
	for i := len(s.tweets) - 1; i >= 0; i-- {
		tweets = append(tweets, *copyTweet(s.tweets[i]))
	}
	sort.SliceStable(tweets, func(i, j int) bool { return tweets[i].CreatedAt.After(tweets[j].CreatedAt) })
	return tweets, nil
}

func (s *Store) ToggleLike(_ context.Context, tweetID string, userID uint) (*models.Tweet, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.findTweet(tweetID)
	if t == nil {
		return nil, false, repositories.ErrNotFound
	}
	t.UpdatedAt = s.now()
	for i, id := range t.Likes {
		if id == userID {
			t.Likes = append(t.Likes[:i:i], t.Likes[i+1:]...)
			return copyTweet(t), false, nil
		}
	}
	t.Likes = append(t.Likes, userID)
	return copyTweet(t), true, nil
}

func (s *Store) DeleteTweet(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.tweets {
		if t.ID.Hex() == id {
			s.tweets = append(s.tweets[:i], s.tweets[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (s *Store) findTweet(id string) *models.Tweet {
	for _, t := range s.tweets {
		if t.ID.Hex() == id {
			return t
		}
	}
	return nil
}

func copyTweet(t *models.Tweet) *models.Tweet {
	c := *t
	c.Likes = append([]uint{}, t.Likes...)
	return &c
}

// --- comments ---

func (s *Store) CreateComment(_ context.Context, comment *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextCommentID++
	now := s.now()
	comment.ID = s.nextCommentID
	comment.CreatedAt, comment.UpdatedAt = now, now

	stored := *comment
	s.comments[comment.ID] = &stored
	return nil
}

func (s *Store) GetCommentByID(_ context.Context, id uint) (*models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.comments[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *Store) GetCommentsByTweetID(_ context.Context, tweetID string) ([]models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	comments := []models.Comment{}
	for _, c := range s.comments {
		if c.TweetID == tweetID {
			comments = append(comments, *c)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.After(comments[j].CreatedAt)
		}
		return comments[i].ID > comments[j].ID
	})
	return comments, nil
}

func (s *Store) CountByTweetIDs(_ context.Context, tweetIDs []string) (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	want := make(map[string]bool, len(tweetIDs))
	for _, id := range tweetIDs {
		want[id] = true
	}
	counts := make(map[string]int64)
	for _, c := range s.comments {
		if want[c.TweetID] {
			counts[c.TweetID]++
		}
	}
	return counts, nil
}

func (s *Store) DeleteComment(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.comments[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.comments, id)
	return nil
}

// --- notifications ---

func (s *Store) CreateNotification(_ context.Context, notification *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextNotifID++
	notification.ID = s.nextNotifID
	notification.CreatedAt = s.now()

	stored := *notification
	s.notifications = append(s.notifications, &stored)
	return nil
}

func (s *Store) GetByRecipientID(_ context.Context, recipientID uint) ([]models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notifications := []models.Notification{}
	for i := len(s.notifications) - 1; i >= 0; i-- {
		if n := s.notifications[i]; n.RecipientID == recipientID {
			notifications = append(notifications, *n)
		}
	}
	sort.SliceStable(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	return notifications, nil
}
