package repositories

import (
	"context"
	"strings"

	"github.com/anonto42/birdie/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations.
// Every user it returns has Followers and Following populated.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []uint) ([]models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	SearchUsers(ctx context.Context, query string) ([]models.User, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return translate(err)
	}
	user.Followers, user.Following = []uint{}, []uint{}
	return nil
}

func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return r.withGraph(ctx, &user)
}

func (r *PostgresUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return r.withGraph(ctx, &user)
}

func (r *PostgresUserRepository) GetUsersByIDs(ctx context.Context, ids []uint) ([]models.User, error) {
	users := []models.User{}
	if len(ids) == 0 {
		return users, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	if err := r.attachGraph(ctx, users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser writes the profile columns. The follow sets are not columns and
// are left untouched.
func (r *PostgresUserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	res := r.db.WithContext(ctx).Model(user).Select("username", "email", "password", "bio").Updates(user)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SearchUsers matches a case-insensitive substring of the username.
func (r *PostgresUserRepository) SearchUsers(ctx context.Context, query string) ([]models.User, error) {
	users := []models.User{}
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	if err := r.db.WithContext(ctx).Where(`LOWER(username) LIKE ? ESCAPE '\'`, pattern).Order("username").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *PostgresUserRepository) withGraph(ctx context.Context, user *models.User) (*models.User, error) {
	users := []models.User{*user}
	if err := r.attachGraph(ctx, users); err != nil {
		return nil, err
	}
	return &users[0], nil
}

// attachGraph fills Followers and Following from the follow edge table with a
// single query for the whole batch.
func (r *PostgresUserRepository) attachGraph(ctx context.Context, users []models.User) error {
	if len(users) == 0 {
		return nil
	}
	index := make(map[uint]*models.User, len(users))
	ids := make([]uint, 0, len(users))
	for i := range users {
		users[i].Followers, users[i].Following = []uint{}, []uint{}
		index[users[i].ID] = &users[i]
		ids = append(ids, users[i].ID)
	}

	var edges []models.Follow
	err := r.db.WithContext(ctx).
		Where("follower_id IN ? OR following_id IN ?", ids, ids).
		Order("id").
		Find(&edges).Error
	if err != nil {
		return err
	}
	for _, e := range edges {
		if u, ok := index[e.FollowerID]; ok {
			u.Following = append(u.Following, e.FollowingID)
		}
		if u, ok := index[e.FollowingID]; ok {
			u.Followers = append(u.Followers, e.FollowerID)
		}
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
