package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash []byte
	IsAdmin      bool

	CreatedAt time.Time
}

// Customer is the public slice of a user shown next to an order.
type Customer struct {
	Name  string
	Email string
}

// Actor is the caller identity and capability the HTTP layer hands to services.
// The zero Actor is anonymous.
type Actor struct {
	UserID  uuid.UUID
	IsAdmin bool
}

func (a Actor) Authenticated() bool {
	return a.UserID != uuid.Nil
}

// CartOwner is the key of the actor's server-side cart.
func (a Actor) CartOwner() string {
	return a.UserID.String()
}
