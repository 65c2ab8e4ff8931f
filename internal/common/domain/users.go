package domain

import (
	"context"
	"time"
)

// UsersRepository stores the profiles behind the fake login. Balances and
// positions are not part of a profile.
type UsersRepository interface {
	// SaveUser creates the user or refreshes its Telegram data, keeping the stored language.
	SaveUser(ctx context.Context, user *User) error
	// GetUserByID returns nil, nil when the user is unknown.
	GetUserByID(ctx context.Context, id int64) (*User, error)
	UpdateUserLanguage(ctx context.Context, userID int64, languageCode string) error
}

type User struct {
	ID int64 `json:"id"`

	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	LanguageCode string `json:"language_code"`

	UpdatedAt time.Time `json:"updated_at"`
	CreatedAt time.Time `json:"created_at"`
}
