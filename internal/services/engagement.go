package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/anonto42/birdie/backend/internal/media"
	"github.com/anonto42/birdie/backend/internal/models"
	"github.com/anonto42/birdie/backend/internal/monitoring"
	"github.com/anonto42/birdie/backend/internal/repositories"
)

// EngagementService covers tweet authoring, likes and comments.
type EngagementService struct {
	tweets   repositories.TweetRepository
	comments repositories.CommentRepository
	users    repositories.UserRepository
	media    *media.Service
	notifier
}

func NewEngagementService(
	tweets repositories.TweetRepository,
	comments repositories.CommentRepository,
	users repositories.UserRepository,
	notifications repositories.NotificationRepository,
	mediaService *media.Service,
) *EngagementService {
	return &EngagementService{
		tweets:   tweets,
		comments: comments,
		users:    users,
		media:    mediaService,
		notifier: notifier{repo: notifications},
	}
}

// CreateTweet stores a tweet with text, an image, or both. The image payload
// is uploaded first and only its URL is kept.
func (s *EngagementService) CreateTweet(ctx context.Context, actor *models.User, content, image string) (*models.TweetView, error) {
	content = strings.TrimSpace(content)
	image = strings.TrimSpace(image)
	if content == "" && image == "" {
		return nil, newError(KindValidation, "Content or image is required")
	}
	if utf8.RuneCountInString(content) > models.MaxContentLength {
		return nil, newError(KindValidation, "Content must be at most 280 characters")
	}

	tweet := &models.Tweet{UserID: actor.ID, Content: content}
	if image != "" {
		url, err := s.media.UploadImage(ctx, image)
		switch {
		case errors.Is(err, media.ErrDisabled):
			return nil, newError(KindValidation, "Image uploads are not configured")
		case errors.Is(err, media.ErrInvalidImage):
			return nil, newError(KindValidation, err.Error())
		case err != nil:
			return nil, err
		}
		tweet.Image = url
	}

	if err := s.tweets.CreateTweet(ctx, tweet); err != nil {
		return nil, err
	}
	monitoring.TweetsPosted.Inc()

	return &models.TweetView{
		ID:        tweet.ID.Hex(),
		Content:   tweet.Content,
		Image:     tweet.Image,
		Likes:     tweet.Likes,
		CreatedAt: tweet.CreatedAt,
		Author: models.TweetAuthor{
			UserSummary: actor.Summary(),
			Followers:   actor.Followers,
			Following:   actor.Following,
		},
	}, nil
}

// ToggleLike likes or unlikes a tweet. Only a like by someone other than the
// author notifies.
func (s *EngagementService) ToggleLike(ctx context.Context, actor *models.User, tweetID string) (*models.Tweet, error) {
	tweet, liked, err := s.tweets.ToggleLike(ctx, tweetID, actor.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, newError(KindNotFound, "Tweet not found")
		}
		return nil, err
	}
	monitoring.LikeToggles.WithLabelValues(monitoring.Toggle(liked, "like", "unlike")).Inc()
	if liked {
		s.notify(ctx, tweet.UserID, actor.ID, models.LikeEvent{TweetID: tweet.ID.Hex()})
	}
	return tweet, nil
}

// DeleteTweet removes the actor's own tweet. Comments and notifications that
// reference it are left in place.
func (s *EngagementService) DeleteTweet(ctx context.Context, actor *models.User, tweetID string) error {
	tweet, err := s.tweets.GetTweetByID(ctx, tweetID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return newError(KindNotFound, "Tweet not found")
		}
		return err
	}
	if tweet.UserID != actor.ID {
		return newError(KindForbidden, "User not authorized to delete this tweet")
	}
	if err := s.tweets.DeleteTweet(ctx, tweetID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return newError(KindNotFound, "Tweet not found")
		}
		return err
	}
	return nil
}

func (s *EngagementService) AddComment(ctx context.Context, actor *models.User, tweetID, content string) (*models.CommentView, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, newError(KindValidation, "Comment content required")
	}
	if utf8.RuneCountInString(content) > models.MaxContentLength {
		return nil, newError(KindValidation, "Comment must be at most 280 characters")
	}

	tweet, err := s.tweets.GetTweetByID(ctx, tweetID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, newError(KindNotFound, "Tweet not found")
		}
		return nil, err
	}

	comment := &models.Comment{TweetID: tweet.ID.Hex(), UserID: actor.ID, Content: content}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	s.notify(ctx, tweet.UserID, actor.ID, models.CommentEvent{TweetID: tweet.ID.Hex()})

	return &models.CommentView{
		Comment: *comment,
		Author:  models.UserSummary{ID: actor.ID, Username: actor.Username},
	}, nil
}

// ListComments returns a tweet's comments newest first with author names.
func (s *EngagementService) ListComments(ctx context.Context, tweetID string) ([]models.CommentView, error) {
	comments, err := s.comments.GetCommentsByTweetID(ctx, tweetID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.UserID)
	}
	authors, err := s.users.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(authors))
	for _, u := range authors {
		names[u.ID] = u.Username
	}

	views := make([]models.CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, models.CommentView{
			Comment: c,
			Author:  models.UserSummary{ID: c.UserID, Username: names[c.UserID]},
		})
	}
	return views, nil
}

func (s *EngagementService) DeleteComment(ctx context.Context, actor *models.User, commentID uint) error {
	comment, err := s.comments.GetCommentByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return newError(KindNotFound, "Comment not found")
		}
		return err
	}
	if comment.UserID != actor.ID {
		return newError(KindForbidden, "User not authorized to delete this comment")
	}
	if err := s.comments.DeleteComment(ctx, commentID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return newError(KindNotFound, "Comment not found")
		}
		return err
	}
	return nil
}
