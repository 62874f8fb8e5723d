package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

type Service struct {
	users      port.UserRepository
	tokens     *Tokens
	clock      port.Clock
	bcryptCost int
}

func NewService(users port.UserRepository, tokens *Tokens, clock port.Clock, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}

	return &Service{
		users:      users,
		tokens:     tokens,
		clock:      clock,
		bcryptCost: bcryptCost,
	}
}

// Session is a user together with a freshly issued bearer token.
type Session struct {
	User  domain.User
	Token string
}

func (s *Service) Register(ctx context.Context, name, email, password string) (Session, error) {
	name, email = strings.TrimSpace(name), strings.ToLower(strings.TrimSpace(email))

	if name == "" || email == "" {
		return Session{}, fmt.Errorf("%w: name and email are required", domain.ErrValidation)
	}
	if len(password) < minPasswordLength {
		return Session{}, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLength)
	}

	_, err := s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return Session{}, fmt.Errorf("%w: user already exists", domain.ErrConflict)
	case !errors.Is(err, domain.ErrNotFound):
		return Session{}, fmt.Errorf("users.GetUserByEmail: %w", err)
	}

	hash, err := HashPassword(password, s.bcryptCost)
	if err != nil {
		return Session{}, err
	}

	user, err := s.users.CreateUser(ctx, domain.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.clock.Now(),
	})
	if err != nil {
		return Session{}, fmt.Errorf("users.CreateUser: %w", err)
	}

	return s.session(user)
}

func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	user, err := s.users.GetUserByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, domain.ErrNotFound) {
		return Session{}, errInvalidCredentials
	}
	if err != nil {
		return Session{}, fmt.Errorf("users.GetUserByEmail: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return Session{}, errInvalidCredentials
	}

	return s.session(user)
}

// Authenticate turns a bearer token into an Actor. Admin rights are read from the
// user record, so revoking them takes effect without reissuing tokens.
func (s *Service) Authenticate(ctx context.Context, token string) (domain.Actor, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return domain.Actor{}, err
	}

	user, err := s.users.GetUser(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Actor{}, fmt.Errorf("%w: user no longer exists", domain.ErrUnauthenticated)
	}
	if err != nil {
		return domain.Actor{}, fmt.Errorf("users.GetUser: %w", err)
	}

	return domain.Actor{UserID: user.ID, IsAdmin: user.IsAdmin}, nil
}

func (s *Service) Me(ctx context.Context, actor domain.Actor) (domain.User, error) {
	if !actor.Authenticated() {
		return domain.User{}, domain.ErrUnauthenticated
	}

	user, err := s.users.GetUser(ctx, actor.UserID)
	if err != nil {
		return domain.User{}, fmt.Errorf("users.GetUser: %w", err)
	}

	return user, nil
}

func (s *Service) session(user domain.User) (Session, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return Session{}, err
	}

	return Session{User: user, Token: token}, nil
}

var errInvalidCredentials = fmt.Errorf("%w: invalid email or password", domain.ErrUnauthenticated)

func HashPassword(password string, cost int) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("bcrypt.GenerateFromPassword: %w", err)
	}

	return hash, nil
}
