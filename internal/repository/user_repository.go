package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

type userRepository struct {
	q *db.Queries
}

func NewUsers(pool *pgxpool.Pool) port.UserRepository {
	return &userRepository{
		q: db.New(pool),
	}
}

func NewUsersWithTx(tx pgx.Tx) port.UserRepository {
	return &userRepository{
		q: db.New(tx),
	}
}

func (r *userRepository) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	if user.ID == uuid.Nil {
		return domain.User{}, fmt.Errorf("userID is empty")
	}
	if strings.TrimSpace(user.Email) == "" {
		return domain.User{}, fmt.Errorf("email is empty")
	}

	row, err := r.q.CreateUser(ctx, db.CreateUserParams{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		IsAdmin:      user.IsAdmin,
	})
	if err != nil {
		return domain.User{}, wrap("q.CreateUser", err)
	}

	return mapUserToDomain(row), nil
}

func (r *userRepository) GetUser(ctx context.Context, userID uuid.UUID) (domain.User, error) {
	if userID == uuid.Nil {
		return domain.User{}, fmt.Errorf("userID is empty")
	}

	row, err := r.q.GetUser(ctx, userID)
	if err != nil {
		return domain.User{}, wrap("q.GetUser", err)
	}

	return mapUserToDomain(row), nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	if strings.TrimSpace(email) == "" {
		return domain.User{}, fmt.Errorf("email is empty")
	}

	row, err := r.q.GetUserByEmail(ctx, email)
	if err != nil {
		return domain.User{}, wrap("q.GetUserByEmail", err)
	}

	return mapUserToDomain(row), nil
}

func mapUserToDomain(row db.User) domain.User {
	return domain.User{
		ID:           row.ID,
		Name:         row.Name,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		IsAdmin:      row.IsAdmin,
		CreatedAt:    row.CreatedAt,
	}
}
