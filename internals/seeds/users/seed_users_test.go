package user

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	authHelper "formshub_backend/internals/features/users/auth/helper"
	"formshub_backend/internals/features/users/user/model"
)

func TestSeedUsersFromJSON(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:seed_users_test?mode=memory&cache=shared"), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.UserModel{}))

	path := filepath.Join(t.TempDir(), "data_users.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"user_name":"budi","email":"budi@formshub.local","password":"budi12345","role":"user"}
	]`), 0o600))

	SeedUsersFromJSON(db, path)

	var u model.UserModel
	require.NoError(t, db.Where("email = ?", "budi@formshub.local").First(&u).Error)
	assert.Equal(t, "budi", u.UserName)
	assert.True(t, u.IsActive)
	// password tersimpan sebagai hash bcrypt, bukan plaintext
	assert.NotEqual(t, "budi12345", u.Password)
	assert.NoError(t, authHelper.CheckPasswordHash(u.Password, "budi12345"))

	// idempotent: seed ulang tidak menduplikasi
	SeedUsersFromJSON(db, path)
	var n int64
	require.NoError(t, db.Model(&model.UserModel{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}
