package seed

import (
	"testing"

	"quill/internal/database"
	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSeedDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestFactory_Run(t *testing.T) {
	db := newSeedDB(t)
	opts := Options{Users: 3, Posts: 4, Comments: 10, MaxDays: 30}
	require.NoError(t, NewFactory(db, opts).Run())

	var users []models.User
	require.NoError(t, db.Order("id").Find(&users).Error)
	require.Len(t, users, 3)
	assert.True(t, users[0].IsAdmin)

	// Every seeded account gets a real bcrypt hash of the demo password.
	for _, u := range users {
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("password123")),
			"user %s has an unusable password hash", u.Username)
	}

	var postCount, commentCount int64
	require.NoError(t, db.Model(&models.Post{}).Count(&postCount).Error)
	require.NoError(t, db.Model(&models.Comment{}).Count(&commentCount).Error)
	assert.EqualValues(t, 4, postCount)
	assert.EqualValues(t, 10, commentCount)
}

func TestFactory_SkipBcrypt(t *testing.T) {
	db := newSeedDB(t)
	f := NewFactory(db, Options{SkipBcrypt: true})

	user, err := f.CreateUser()
	require.NoError(t, err)
	assert.Equal(t, "password123", user.Password)
}
