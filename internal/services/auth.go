package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anonto42/birdie/backend/internal/models"
	"github.com/anonto42/birdie/backend/internal/repositories"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// DefaultTokenTTL is how long an issued token stays valid.
const DefaultTokenTTL = 30 * 24 * time.Hour

// AuthService registers users, checks credentials and issues/validates
// bearer tokens.
type AuthService struct {
	users      repositories.UserRepository
	jwtSecret  []byte
	tokenTTL   time.Duration
	bcryptCost int
	now        func() time.Time
}

func NewAuthService(users repositories.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &AuthService{
		users:      users,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTL,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
}

// ProfileUpdate holds the optional changes of UpdateProfile. Nil means
// unchanged.
type ProfileUpdate struct {
	Username    *string
	Bio         *string
	OldPassword string
	NewPassword string
}

func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, string, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" || password == "" {
		return nil, "", newError(KindValidation, "Username, email and password are required")
	}

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, "", newError(KindConflict, "User already exists")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{Username: username, Email: email, Password: string(hash)}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, "", newError(KindConflict, "Username or email already taken")
		}
		return nil, "", err
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login fails identically for an unknown email and a wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	invalid := newError(KindUnauthorized, "Invalid email or password")

	user, err := s.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, "", invalid
		}
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, "", invalid
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Verify validates a token and resolves the caller's current user record, so
// profile edits are visible immediately.
func (s *AuthService) Verify(ctx context.Context, tokenString string) (*models.User, error) {
	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil || !token.Valid {
		return nil, newError(KindUnauthorized, "Not authorized, token failed")
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(s.now()) {
		return nil, newError(KindUnauthorized, "Not authorized, token expired")
	}

	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, newError(KindUnauthorized, "Not authorized, user not found")
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, user *models.User, upd ProfileUpdate) (*models.User, string, error) {
	updated := *user

	if upd.Username != nil {
		name := strings.TrimSpace(*upd.Username)
		if name == "" {
			return nil, "", newError(KindValidation, "Username cannot be empty")
		}
		updated.Username = name
	}
	if upd.Bio != nil {
		updated.Bio = *upd.Bio
	}
	if upd.NewPassword != "" {
		if upd.OldPassword == "" {
			return nil, "", newError(KindValidation, "Please provide old password to set a new one")
		}
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(upd.OldPassword)) != nil {
			return nil, "", newError(KindUnauthorized, "Old password incorrect")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(upd.NewPassword), s.bcryptCost)
		if err != nil {
			return nil, "", fmt.Errorf("hash password: %w", err)
		}
		updated.Password = string(hash)
	}

	if err := s.users.UpdateUser(ctx, &updated); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicate):
			return nil, "", newError(KindConflict, "Username already taken")
		case errors.Is(err, repositories.ErrNotFound):
			return nil, "", newError(KindNotFound, "User not found")
		}
		return nil, "", err
	}

	token, err := s.IssueToken(&updated)
	if err != nil {
		return nil, "", err
	}
	return &updated, token, nil
}

// IssueToken signs an HS256 token bound to the user id.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := s.now()
	claims := &models.JwtCustomClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(user.ID),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	t, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return t, nil
}
