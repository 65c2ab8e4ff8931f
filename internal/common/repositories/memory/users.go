package memory

import (
	"context"
	"sync"
	"time"

	"github.com/leonid6372/stock-trader/internal/common/domain"
)

type usersRepository struct {
	mu    sync.RWMutex
	users map[int64]domain.User
	now   func() time.Time
}

func NewUsersRepository() domain.UsersRepository {
	return &usersRepository{
		users: make(map[int64]domain.User),
		now:   time.Now,
	}
}

func (ur *usersRepository) SaveUser(_ context.Context, user *domain.User) error {
	ur.mu.Lock()
	defer ur.mu.Unlock()

	now := ur.now()

	stored, ok := ur.users[user.ID]
	if !ok {
		stored = domain.User{
			ID:           user.ID,
			LanguageCode: user.LanguageCode,
			CreatedAt:    now,
		}
	}

	stored.Username = user.Username
	stored.FirstName = user.FirstName
	stored.LastName = user.LastName
	stored.UpdatedAt = now

	ur.users[user.ID] = stored

	return nil
}

func (ur *usersRepository) GetUserByID(_ context.Context, id int64) (*domain.User, error) {
	ur.mu.RLock()
	defer ur.mu.RUnlock()

	user, ok := ur.users[id]
	if !ok {
		return nil, nil
	}

	return &user, nil
}

func (ur *usersRepository) UpdateUserLanguage(_ context.Context, userID int64, languageCode string) error {
	ur.mu.Lock()
	defer ur.mu.Unlock()

	user, ok := ur.users[userID]
	if !ok {
		return nil
	}

	user.LanguageCode = languageCode
	user.UpdatedAt = ur.now()
	ur.users[userID] = user

	return nil
}
