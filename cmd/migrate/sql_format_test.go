package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLMigrations_HaveGooseDirectives(t *testing.T) {
	dir := repoMigrationsDir(t)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		b, err := os.ReadFile(filepath.Join(dir, e.Name()))
		require.NoError(t, err)

		assert.Contains(t, string(b), "-- +goose Up", e.Name())
		assert.Contains(t, string(b), "-- +goose Down", e.Name())
	}
}

func TestInitMigration_Schema(t *testing.T) {
	b, err := os.ReadFile(filepath.Join(repoMigrationsDir(t), "00001_init.sql"))
	require.NoError(t, err)
	sql := string(b)

	for _, table := range []string{"books", "users", "library_books", "wishlist"} {
		assert.Contains(t, sql, "CREATE TABLE "+table+" (")
		assert.Contains(t, sql, "DROP TABLE IF EXISTS "+table+";")
	}
	assert.Contains(t, sql, "CHECK (rating >= 0 AND rating <= 5)")
	assert.Contains(t, sql, "PRIMARY KEY (user_id, book_id)")
}
