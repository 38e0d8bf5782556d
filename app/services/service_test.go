package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/mattertouch/storefront/app/models"
	"github.com/mattertouch/storefront/app/models/migrations"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter atomic.Int64

// setupTestDB opens a per-test in-memory sqlite database. TranslateError is
// on, matching production, so duplicate key conflicts surface as
// gorm.ErrDuplicatedKey here too.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:servicetest%d?mode=memory&cache=shared", testDBCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, migrations.AutoMigrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func createTestCollection(t *testing.T, db *gorm.DB, name, slugName string) *models.Collection {
	t.Helper()
	c := &models.Collection{Name: name, Slug: slugName}
	require.NoError(t, db.Create(c).Error)
	return c
}

func createTestProduct(t *testing.T, db *gorm.DB, name, collectionID string) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, CollectionID: collectionID}
	require.NoError(t, db.Create(p).Error)
	return p
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	u := &models.User{Email: email, Password: "x", Role: models.RoleCustomer}
	require.NoError(t, db.Create(u).Error)
	return u
}

func strPtr(s string) *string {
	return &s
}
