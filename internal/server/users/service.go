package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/signlink/internal/common"
	"github.com/dmitrijs2005/signlink/internal/server/auth"
	"github.com/dmitrijs2005/signlink/internal/server/config"
	"golang.org/x/crypto/bcrypt"
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type Service struct {
	repo                         Repository
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	hashCost                     int
	dummyHash                    []byte
}

type Option func(*Service)

// WithHashCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func WithHashCost(cost int) Option {
	return func(s *Service) { s.hashCost = cost }
}

func NewService(repo Repository, cfg *config.Config, opts ...Option) *Service {
	s := &Service{
		repo:                         repo,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenTTL,
		refreshTokenValidityDuration: cfg.RefreshTokenTTL,
		hashCost:                     bcrypt.DefaultCost,
	}
	for _, o := range opts {
		o(s)
	}
	// compared against when the email is unknown so both paths cost one bcrypt run
	s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("signlink-dummy-password"), s.hashCost)
	return s
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, *TokenPair, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, &User{
		Username:     strings.TrimSpace(in.Username),
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("error creating user: %w", err)
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*User, *TokenPair, error) {
	user, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, nil, common.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, nil, common.ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

func (s *Service) issueTokens(user *User) (*TokenPair, error) {
	access, err := auth.GenerateToken(user.ID, auth.KindAccess, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := auth.GenerateToken(user.ID, auth.KindRefresh, s.jwtSecret, s.refreshTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Authenticate resolves an access token to its user. Tokens of deleted users
// are invalid.
func (s *Service) Authenticate(ctx context.Context, accessToken string) (*User, error) {
	id, err := auth.GetUserIDFromToken(accessToken, auth.KindAccess, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID int64, username string, p Profile) (*User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Username = strings.TrimSpace(username)
	user.Profile = p

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Search returns at most limit users matching query. A blank query matches
// nobody.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]*User, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	return s.repo.Search(ctx, query, limit)
}
