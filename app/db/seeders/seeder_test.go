package seeders

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/mattertouch/storefront/app/configs"
	"github.com/mattertouch/storefront/app/models"
	"github.com/mattertouch/storefront/app/models/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func seedEnv() configs.ENV {
	return configs.ENV{
		AdminEmail:    "admin@mattertouch.example",
		AdminPassword: "admin-secret",
	}
}

var seedDBCounter atomic.Int64

func setupSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:seedtest%d?mode=memory&cache=shared", seedDBCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, migrations.AutoMigrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func TestDBSeedPopulatesEmptyDatabase(t *testing.T) {
	db := setupSeedDB(t)

	require.NoError(t, DBSeed(db, seedEnv()))

	var admin models.User
	require.NoError(t, db.First(&admin, "email = ?", "admin@mattertouch.example").Error)
	assert.True(t, admin.Role.IsAdmin())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("admin-secret")))

	var collections []models.Collection
	require.NoError(t, db.Find(&collections).Error)
	require.Len(t, collections, 2)
	slugs := []string{collections[0].Slug, collections[1].Slug}
	assert.Contains(t, slugs, "clothings")
	assert.Contains(t, slugs, "accessories")

	var products, heroes int64
	require.NoError(t, db.Model(&models.Product{}).Count(&products).Error)
	require.NoError(t, db.Model(&models.HeroImage{}).Count(&heroes).Error)
	assert.EqualValues(t, 8, products)
	assert.EqualValues(t, 3, heroes)
}

func TestDBSeedIsIdempotent(t *testing.T) {
	db := setupSeedDB(t)

	require.NoError(t, DBSeed(db, seedEnv()))
	require.NoError(t, DBSeed(db, seedEnv()))

	var users, collections, products, heroes int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Collection{}).Count(&collections).Error)
	require.NoError(t, db.Model(&models.Product{}).Count(&products).Error)
	require.NoError(t, db.Model(&models.HeroImage{}).Count(&heroes).Error)
	assert.EqualValues(t, 1, users)
	assert.EqualValues(t, 2, collections)
	assert.EqualValues(t, 8, products)
	assert.EqualValues(t, 3, heroes)
}
