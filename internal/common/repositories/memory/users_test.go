package memory

import (
	"context"
	"testing"

	"github.com/leonid6372/stock-trader/internal/common/domain"
)

func newUser(id int64, username, lang string) *domain.User {
	return &domain.User{ID: id, Username: username, FirstName: "Alice", LanguageCode: lang}
}

func TestUsersRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUsersRepository()

	missing, err := repo.GetUserByID(ctx, 1)
	if err != nil || missing != nil {
		t.Fatalf("GetUserByID() of unknown user = %v, %v, want nil, nil", missing, err)
	}

	if err := repo.UpdateUserLanguage(ctx, 1, "ru"); err != nil {
		t.Fatalf("UpdateUserLanguage() of unknown user failed: %v", err)
	}

	if err := repo.SaveUser(ctx, newUser(1, "alice", "en")); err != nil {
		t.Fatal(err)
	}
	if err := repo.UpdateUserLanguage(ctx, 1, "ru"); err != nil {
		t.Fatal(err)
	}

	// A repeated login refreshes Telegram data and keeps the chosen language.
	if err := repo.SaveUser(ctx, newUser(1, "alice_new", "en")); err != nil {
		t.Fatal(err)
	}

	user, err := repo.GetUserByID(ctx, 1)
	if err != nil || user == nil {
		t.Fatalf("GetUserByID() = %v, %v", user, err)
	}
	if user.Username != "alice_new" || user.LanguageCode != "ru" {
		t.Errorf("user = %+v, want username alice_new and language ru", user)
	}
	if user.CreatedAt.IsZero() || user.UpdatedAt.Before(user.CreatedAt) {
		t.Errorf("timestamps = %v / %v", user.CreatedAt, user.UpdatedAt)
	}
}
