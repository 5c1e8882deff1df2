package services

import (
	"context"
	"errors"
	"strings"

	"github.com/anonto42/birdie/backend/internal/models"
	"github.com/anonto42/birdie/backend/internal/monitoring"
	"github.com/anonto42/birdie/backend/internal/repositories"
)

// SocialGraphService owns the follow relation and user lookups that expose it.
type SocialGraphService struct {
	users   repositories.UserRepository
	follows repositories.FollowRepository
	notifier
}

func NewSocialGraphService(users repositories.UserRepository, follows repositories.FollowRepository, notifications repositories.NotificationRepository) *SocialGraphService {
	return &SocialGraphService{
		users:    users,
		follows:  follows,
		notifier: notifier{repo: notifications},
	}
}

// Follow toggles the edge actor -> target. Following notifies the target;
// unfollowing does not.
func (s *SocialGraphService) Follow(ctx context.Context, actor *models.User, targetID uint) (*models.FollowResult, error) {
	if actor.ID == targetID {
		return nil, newError(KindValidation, "You cannot follow yourself")
	}
	for _, id := range []uint{actor.ID, targetID} {
		if _, err := s.users.GetUserByID(ctx, id); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, newError(KindNotFound, "User not found")
			}
			return nil, err
		}
	}

	following, err := s.follows.ToggleFollow(ctx, actor.ID, targetID)
	if err != nil {
		return nil, err
	}
	monitoring.FollowToggles.WithLabelValues(monitoring.Toggle(following, "follow", "unfollow")).Inc()
	if following {
		s.notify(ctx, targetID, actor.ID, models.FollowEvent{})
	}

	followers, err := s.follows.GetFollowerIDs(ctx, targetID)
	if err != nil {
		return nil, err
	}
	actorFollowing, err := s.follows.GetFollowingIDs(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return &models.FollowResult{
		Following:       following,
		TargetFollowers: followers,
		ActorFollowing:  actorFollowing,
	}, nil
}

// GetProfile returns a user's public profile with both sides of its graph
// expanded to summaries.
func (s *SocialGraphService) GetProfile(ctx context.Context, id uint) (*models.Profile, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, newError(KindNotFound, "User not found")
		}
		return nil, err
	}

	related, err := s.users.GetUsersByIDs(ctx, append(append([]uint{}, user.Followers...), user.Following...))
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.UserSummary, len(related))
	for i := range related {
		byID[related[i].ID] = related[i].Summary()
	}

	return &models.Profile{
		UserSummary: user.Summary(),
		Followers:   summaries(user.Followers, byID),
		Following:   summaries(user.Following, byID),
		CreatedAt:   user.CreatedAt,
	}, nil
}

// SearchUsers matches a case-insensitive substring of the username.
func (s *SocialGraphService) SearchUsers(ctx context.Context, query string) ([]models.UserSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, newError(KindValidation, "Query required")
	}
	users, err := s.users.SearchUsers(ctx, query)
	if err != nil {
		return nil, err
	}
	out := make([]models.UserSummary, 0, len(users))
	for i := range users {
		out = append(out, users[i].Summary())
	}
	return out, nil
}

func summaries(ids []uint, byID map[uint]models.UserSummary) []models.UserSummary {
	out := make([]models.UserSummary, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			out = append(out, u)
		}
	}
	return out
}
