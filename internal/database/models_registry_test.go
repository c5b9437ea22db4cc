package database

import (
	"testing"

	modelspkg "yatube/internal/models"

	"github.com/stretchr/testify/require"
)

func TestPersistentModels_IncludesFollow(t *testing.T) {
	found := false
	for _, model := range PersistentModels() {
		if _, ok := model.(*modelspkg.Follow); ok {
			found = true
			break
		}
	}
	require.True(t, found, "PersistentModels should include Follow")
}

func TestPersistentModels_MigratesOnSQLite(t *testing.T) {
	db := openTestDB(t)
	for _, table := range []string{"users", "groups", "posts", "comments", "follows"} {
		require.True(t, db.Migrator().HasTable(table), "expected table %s", table)
	}
}
