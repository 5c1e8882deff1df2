package services

import (
	"context"
	"sort"

	"github.com/anonto42/birdie/backend/internal/models"
	"github.com/anonto42/birdie/backend/internal/repositories"
	"github.com/sirupsen/logrus"
)

// FeedService builds the read-side views: the ranked feed and the
// notification list.
type FeedService struct {
	tweets        repositories.TweetRepository
	users         repositories.UserRepository
	comments      repositories.CommentRepository
	notifications repositories.NotificationRepository
}

func NewFeedService(
	tweets repositories.TweetRepository,
	users repositories.UserRepository,
	comments repositories.CommentRepository,
	notifications repositories.NotificationRepository,
) *FeedService {
	return &FeedService{
		tweets:        tweets,
		users:         users,
		comments:      comments,
		notifications: notifications,
	}
}

// GetFeed returns every tweet joined with its author and reply count, tweets
// of followed authors first and newest first within each group. Tweets whose
// author no longer resolves are dropped.
func (s *FeedService) GetFeed(ctx context.Context, actor *models.User) ([]models.TweetView, error) {
	following := make(map[uint]bool, len(actor.Following))
	for _, id := range actor.Following {
		following[id] = true
	}

	tweets, err := s.tweets.GetAllTweets(ctx)
	if err != nil {
		return nil, err
	}

	authorIDs := make([]uint, 0, len(tweets))
	tweetIDs := make([]string, 0, len(tweets))
	for i := range tweets {
		authorIDs = append(authorIDs, tweets[i].UserID)
		tweetIDs = append(tweetIDs, tweets[i].ID.Hex())
	}
	authors, err := s.users.GetUsersByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*models.User, len(authors))
	for i := range authors {
		byID[authors[i].ID] = &authors[i]
	}
	replies, err := s.comments.CountByTweetIDs(ctx, tweetIDs)
	if err != nil {
		return nil, err
	}

	feed := make([]models.TweetView, 0, len(tweets))
	for i := range tweets {
		t := &tweets[i]
		author, ok := byID[t.UserID]
		if !ok {
			continue
		}
		feed = append(feed, models.TweetView{
			ID:          t.ID.Hex(),
			Content:     t.Content,
			Image:       t.Image,
			Likes:       t.Likes,
			CreatedAt:   t.CreatedAt,
			IsFollowing: following[t.UserID],
			ReplyCount:  replies[t.ID.Hex()],
			Author: models.TweetAuthor{
				UserSummary: author.Summary(),
				Followers:   author.Followers,
				Following:   author.Following,
			},
		})
	}

	sort.SliceStable(feed, func(i, j int) bool {
		if feed[i].IsFollowing != feed[j].IsFollowing {
			return feed[i].IsFollowing
		}
		return feed[i].CreatedAt.After(feed[j].CreatedAt)
	})
	return feed, nil
}

// GetNotifications returns the actor's notifications newest first. Like and
// comment notifications whose tweet was deleted are filtered out here rather
// than cascaded at delete time.
func (s *FeedService) GetNotifications(ctx context.Context, actor *models.User) ([]models.NotificationView, error) {
	notifications, err := s.notifications.GetByRecipientID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	events := make([]models.NotificationEvent, len(notifications))
	userIDs := make([]uint, 0, len(notifications))
	var tweetIDs []string
	for i := range notifications {
		n := &notifications[i]
		ev, err := n.Event()
		if err != nil {
			logrus.WithError(err).WithField("notification", n.ID).Warn("Skipping malformed notification")
			continue
		}
		events[i] = ev
		userIDs = append(userIDs, n.SenderID)
		switch ev := ev.(type) {
		case models.LikeEvent:
			tweetIDs = append(tweetIDs, ev.TweetID)
		case models.CommentEvent:
			tweetIDs = append(tweetIDs, ev.TweetID)
		}
	}

	tweets, err := s.tweets.GetTweetsByIDs(ctx, tweetIDs)
	if err != nil {
		return nil, err
	}
	tweetByID := make(map[string]*models.Tweet, len(tweets))
	for i := range tweets {
		tweetByID[tweets[i].ID.Hex()] = &tweets[i]
		userIDs = append(userIDs, tweets[i].UserID)
	}
	users, err := s.users.GetUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	userByID := make(map[uint]*models.User, len(users))
	for i := range users {
		userByID[users[i].ID] = &users[i]
	}

	views := make([]models.NotificationView, 0, len(notifications))
	for i := range notifications {
		n := &notifications[i]
		view := models.NotificationView{
			ID:        n.ID,
			Type:      n.Type,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
			Sender:    models.UserSummary{ID: n.SenderID},
		}
		if sender, ok := userByID[n.SenderID]; ok {
			view.Sender.Username = sender.Username
		}

		var ref string
		switch ev := events[i].(type) {
		case nil:
			continue
		case models.LikeEvent:
			ref = ev.TweetID
		case models.CommentEvent:
			ref = ev.TweetID
		}
		if ref != "" {
			tweet, ok := tweetByID[ref]
			if !ok {
				continue
			}
			view.Tweet = &models.NotificationTweet{
				ID:        ref,
				Content:   tweet.Content,
				Image:     tweet.Image,
				Likes:     tweet.Likes,
				CreatedAt: tweet.CreatedAt,
				Author:    models.UserSummary{ID: tweet.UserID},
			}
			if author, ok := userByID[tweet.UserID]; ok {
				view.Tweet.Author.Username = author.Username
				view.Tweet.Author.Email = author.Email
			}
		}
		views = append(views, view)
	}
	return views, nil
}
