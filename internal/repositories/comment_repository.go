package repositories

import (
	"context"

	"github.com/anonto42/birdie/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id uint) (*models.Comment, error)
	// GetCommentsByTweetID returns the comments of a tweet, newest first.
	GetCommentsByTweetID(ctx context.Context, tweetID string) ([]models.Comment, error)
	CountByTweetIDs(ctx context.Context, tweetIDs []string) (map[string]int64, error)
	DeleteComment(ctx context.Context, id uint) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

func (r *PostgresCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *PostgresCommentRepository) GetCommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, translate(err)
	}
	return &comment, nil
}

func (r *PostgresCommentRepository) GetCommentsByTweetID(ctx context.Context, tweetID string) ([]models.Comment, error) {
	comments := []models.Comment{}
	if err := r.db.WithContext(ctx).Where("tweet_id = ?", tweetID).Order("created_at DESC, id DESC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// CountByTweetIDs returns the number of comments per tweet. Tweets without
// comments are absent from the map.
func (r *PostgresCommentRepository) CountByTweetIDs(ctx context.Context, tweetIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(tweetIDs))
	if len(tweetIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		TweetID string
		Count   int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Select("tweet_id, COUNT(*) AS count").
		Where("tweet_id IN ?", tweetIDs).
		Group("tweet_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.TweetID] = row.Count
	}
	return counts, nil
}

func (r *PostgresCommentRepository) DeleteComment(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
