package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func TestUserModel_MigrateAndCreate(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:user_model_test?mode=memory&cache=shared"), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	// DDL harus jalan di engine tanpa gen_random_uuid
	require.NoError(t, db.AutoMigrate(&UserModel{}))

	u := UserModel{
		UserName: "budi",
		Email:    "budi@formshub.local",
		Password: "rahasia-terhash",
		IsActive: true,
	}
	require.NoError(t, db.Create(&u).Error)
	assert.NotEqual(t, uuid.Nil, u.ID)

	// UUID yang sudah di-set tidak ditimpa hook
	fixed := uuid.New()
	u2 := UserModel{ID: fixed, UserName: "sari", Email: "sari@formshub.local", Password: "rahasia-terhash"}
	require.NoError(t, db.Create(&u2).Error)
	assert.Equal(t, fixed, u2.ID)
}
