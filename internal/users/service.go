package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

// TokenIssuer signs a credential for a user id.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}

type Service struct {
	Repo     Repo
	Tokens   TokenIssuer
	HashCost int
	now      func() time.Time
}

func NewService(repo Repo, tokens TokenIssuer) *Service {
	return &Service{
		Repo:     repo,
		Tokens:   tokens,
		HashCost: bcrypt.DefaultCost,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Register creates an account with a bcrypt-hashed password and signs a token for it.
func (s *Service) Register(ctx context.Context, name, email, password string) (AuthResult, error) {
	if err := s.ready(); err != nil {
		return AuthResult{}, err
	}
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" {
		return AuthResult{}, invalid("Name is required")
	}
	if !validEmail(email) {
		return AuthResult{}, invalid("Please provide a valid email")
	}
	if len(password) < minPasswordLength {
		return AuthResult{}, invalid("Password must be at least 6 characters long")
	}

	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return AuthResult{}, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return AuthResult{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.HashCost)
	if err != nil {
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}
	now := s.now()
	user := User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return AuthResult{}, err
	}
	return s.issue(user)
}

// Login verifies the password and signs a token. Unknown emails and wrong
// passwords both return ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (AuthResult, error) {
	if err := s.ready(); err != nil {
		return AuthResult{}, err
	}
	email = normalizeEmail(email)
	if !validEmail(email) {
		return AuthResult{}, invalid("Please provide a valid email")
	}
	if password == "" {
		return AuthResult{}, invalid("Password is required")
	}

	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}
	return s.issue(user)
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if err := s.ready(); err != nil {
		return User{}, err
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, userID)
}

func (s *Service) issue(user User) (AuthResult, error) {
	token, err := s.Tokens.Issue(user.ID)
	if err != nil {
		return AuthResult{}, fmt.Errorf("issue token: %w", err)
	}
	return AuthResult{Token: token, User: user.Profile()}, nil
}

func (s *Service) ready() error {
	if s == nil || s.Repo == nil || s.Tokens == nil {
		return errors.New("users service not configured")
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
