package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/divide-it/backend/internal/models"
	"github.com/divide-it/backend/internal/storage/sqlite"
)

func newTestStore(t *testing.T) *sqlite.SQLiteStore {
	t.Helper()
	tempDir, err := os.MkdirTemp("", "divideit-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustCreateUser(t *testing.T, store *sqlite.SQLiteStore, email string) *models.User {
	t.Helper()
	user := models.NewUser(email, "", "", "")
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser(%s) failed: %v", email, err)
	}
	return user
}

func mustCreateGroup(t *testing.T, store *sqlite.SQLiteStore, name string, memberIDs ...string) *models.Group {
	t.Helper()
	group := &models.Group{Name: name, MemberIDs: memberIDs}
	if err := store.CreateGroup(context.Background(), group); err != nil {
		t.Fatalf("CreateGroup(%s) failed: %v", name, err)
	}
	return group
}

// splitFor finds the split owed by userID within an expense.
func splitFor(t *testing.T, expense *models.Expense, userID string) models.ExpenseSplit {
	t.Helper()
	for _, s := range expense.Splits {
		if s.UserID == userID {
			return s
		}
	}
	t.Fatalf("no split for user %s in expense %s", userID, expense.ID)
	return models.ExpenseSplit{}
}
