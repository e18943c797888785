package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	user := seedAuthor(t, users)
	require.NotZero(t, user.ID)

	got, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "quillwriter", got.Username)

	got, err = users.GetByEmail(ctx, "writer@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, user.ID, got.ID)

	got, err = users.GetByUsername(ctx, "quillwriter")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, user.ID, got.ID)
}

func TestUserRepository_MissingLookups(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	_, err := users.GetByID(ctx, 999)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)

	// Email and username lookups report absence as (nil, nil), since callers
	// use them for existence checks during signup.
	got, err := users.GetByEmail(ctx, "ghost@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = users.GetByUsername(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserRepository_UpdateAndDelete(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	user := seedAuthor(t, users)
	user.Username = "renamedwriter"
	require.NoError(t, users.Update(ctx, user))

	got, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamedwriter", got.Username)

	require.NoError(t, users.Delete(ctx, user.ID))
	_, err = users.GetByID(ctx, user.ID)
	assert.Error(t, err)
}

func TestUserRepository_ListCounts(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		u := &models.User{
			Username: fmt.Sprintf("quilluser%d", i),
			Email:    fmt.Sprintf("user%d@example.com", i),
			Password: "hashed",
		}
		require.NoError(t, users.Create(ctx, u))
	}
	// Age one account beyond the dashboard window.
	require.NoError(t, db.Model(&models.User{}).
		Where("username = ?", "quilluser1").
		Update("created_at", time.Now().AddDate(0, 0, -45)).Error)

	got, total, lastMonth, err := users.List(ctx, ListQuery{Limit: 3})
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.EqualValues(t, 5, total)
	assert.EqualValues(t, 4, lastMonth)

	rest, _, _, err := users.List(ctx, ListQuery{Limit: 3, StartIndex: 3})
	require.NoError(t, err)
	assert.Len(t, rest, 2)
}
