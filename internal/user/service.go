package user

import (
	"context"
	"errors"
	"time"

	"bookshop/internal/auth"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// credentials is validated field by field in declaration order, so a missing
// username is always reported before a missing password.
type credentials struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

func (c credentials) check() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	switch verrs[0].Field() {
	case "Username":
		return ErrUsernameRequired
	case "Password":
		return ErrPasswordRequired
	}
	return &MissingFieldError{Field: verrs[0].Field()}
}

type Service struct {
	repo      Repository
	hashCost  int
	jwtSecret string
	tokenTTL  time.Duration
	now       func() time.Time
}

type Option func(*Service)

// WithHashCost sets the bcrypt cost used for new passwords.
func WithHashCost(cost int) Option {
	return func(s *Service) { s.hashCost = cost }
}

// WithTokens configures login token signing.
func WithTokens(secret string, ttl time.Duration) Option {
	return func(s *Service) {
		s.jwtSecret = secret
		s.tokenTTL = ttl
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		hashCost: 10,
		tokenTTL: time.Hour,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register adds a new customer. Checks run in a fixed order: username
// present, password present, username free.
func (s *Service) Register(ctx context.Context, username, password string) (User, error) {
	if err := (credentials{Username: username, Password: password}).check(); err != nil {
		return User{}, err
	}

	// Reject known duplicates before paying for a hash. Insert below is
	// still the authoritative check.
	if _, err := s.repo.Get(ctx, username); err == nil {
		return User{}, ErrDuplicateUsername
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	hash, err := auth.HashPasswordCost(password, s.hashCost)
	if err != nil {
		return User{}, err
	}

	u := User{Username: username, PasswordHash: hash, CreatedAt: s.now().UTC()}
	if err := s.repo.Insert(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Login verifies the credentials and returns a signed token.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	if err := (credentials{Username: username, Password: password}).check(); err != nil {
		return "", err
	}

	u, err := s.repo.Get(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if !auth.VerifyPassword(u.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(s.jwtSecret, u.Username, s.tokenTTL)
	return token, err
}

func (s *Service) Get(ctx context.Context, username string) (User, error) {
	return s.repo.Get(ctx, username)
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}
