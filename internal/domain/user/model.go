package user

import (
	"context"
	"time"
)

type User struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	Role           string    `json:"role"`
	OrganizationID int64     `json:"organization_id"`
	CreatedAt      time.Time `json:"created_at"`
}

type Repository interface {
	// Create inserts the user together with a freshly provisioned
	// organization named orgName, in one transaction.
	Create(ctx context.Context, u *User, orgName string) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
}
