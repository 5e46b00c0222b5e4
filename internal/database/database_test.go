package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic/internal/domain"
)

func TestConnectAndMigrate_SQLite(t *testing.T) {
	db, err := Connect(":memory:", zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	u := &domain.User{Username: "admin", Email: "admin@clinic.test", PasswordHash: "x", Role: domain.RoleAdmin, IsActive: true}
	require.NoError(t, db.Create(u).Error)

	dup := &domain.User{Username: "admin", Email: "other@clinic.test", PasswordHash: "x", Role: domain.RoleAdmin}
	err = db.Create(dup).Error
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.True(t, IsUniqueViolation(fmt.Errorf("create: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
}
