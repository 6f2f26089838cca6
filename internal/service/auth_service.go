package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"folio/internal/auth"
	"folio/internal/middleware"
	"folio/internal/models"
	"folio/internal/repository"

	"github.com/google/uuid"
)

const msgInvalidCredentials = "Invalid credentials"

// TokenRevoker blacklists token ids until they expire.
type TokenRevoker interface {
	RevokeToken(ctx context.Context, jti string, ttl time.Duration) error
}

type AuthService struct {
	users   repository.UserRepository
	hasher  auth.Hasher
	tokens  *auth.TokenManager
	revoker TokenRevoker
	now     func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required,notblank,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginUser is the profile returned alongside an access token.
type LoginUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type LoginResult struct {
	AccessToken string    `json:"access_token"`
	User        LoginUser `json:"user"`
}

// NewAuthService wires the auth flow. revoker may be nil, in which case logout
// only succeeds without revoking anything.
func NewAuthService(users repository.UserRepository, hasher auth.Hasher, tokens *auth.TokenManager, revoker TokenRevoker) *AuthService {
	return &AuthService{
		users:   users,
		hasher:  hasher,
		tokens:  tokens,
		revoker: revoker,
		now:     time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account. The password is stored as a bcrypt hash.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.PublicUser, error) {
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    normalizeEmail(in.Email),
		Password: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, mapStoreError(err, "Email already registered")
	}

	middleware.Logger.InfoContext(ctx, "user registered", slog.String("user_id", user.ID))
	pub := user.Public()
	return &pub, nil
}

// Login checks credentials and issues an access token. Unknown emails and wrong
// passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if user == nil {
		// Spend the same hashing work as a real mismatch.
		_ = s.hasher.Compare(s.unknownUserHash(), in.Password)
		return nil, models.NewUnauthorizedError(msgInvalidCredentials)
	}

	if err := s.hasher.Compare(user.Password, in.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, models.NewUnauthorizedError(msgInvalidCredentials)
		}
		return nil, models.NewInternalError(err)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return &LoginResult{
		AccessToken: token,
		User:        LoginUser{Name: user.Name, Email: user.Email},
	}, nil
}

// unknownUserHash is a hash of a random value, computed once with the
// configured hasher so its cost matches stored passwords.
func (s *AuthService) unknownUserHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash(uuid.NewString())
		if err != nil {
			middleware.Logger.Error("failed to prepare login hash", slog.String("error", err.Error()))
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

// Logout revokes the token identified by jti for the rest of its lifetime.
func (s *AuthService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.revoker == nil || jti == "" {
		return nil
	}
	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.revoker.RevokeToken(ctx, jti, ttl); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
