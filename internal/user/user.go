package user

import (
	"context"
	"time"
)

type Role string

const (
	RoleStandard Role = "standard"
	RoleAgent    Role = "agent"
	RoleAdmin    Role = "admin"
)

// User is an account record. Password holds the bcrypt hash and is never
// serialized into responses.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	Password     string    `json:"-"`
	Role         Role      `json:"userType"`
	ProfileImage string    `json:"profileImage,omitempty"`
	Favorites    []string  `json:"favorites"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Summary is the owner projection attached to listings: enough for a buyer
// to contact the seller, nothing more.
type Summary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

func (u *User) Summary() *Summary {
	return &Summary{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone}
}

type Repository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, u *User) error
	SummaryByID(ctx context.Context, id string) (*Summary, error)
}

// SummaryDirectory resolves owner summaries. The mongo repository satisfies
// it directly; the Redis cache wraps it read-through.
type SummaryDirectory interface {
	SummaryByID(ctx context.Context, id string) (*Summary, error)
}
