package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mattertouch/storefront/app/models"
	"github.com/mattertouch/storefront/app/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCatalogFixture(t *testing.T) (*gorm.DB, *CatalogService) {
	t.Helper()
	db := setupTestDB(t)
	svc := NewCatalogService(
		repositories.NewCollectionRepository(db),
		repositories.NewProductRepository(db),
	)
	return db, svc
}

func TestCreateCollection(t *testing.T) {
	_, svc := newCatalogFixture(t)

	collection, err := svc.CreateCollection(context.Background(), CollectionInput{
		Name:        "Clothings",
		Slug:        "clothings",
		Description: strPtr("秋冬系列"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, collection.ID)
	assert.Equal(t, "clothings", collection.Slug)
	require.NotNil(t, collection.Description)
	assert.Equal(t, "秋冬系列", *collection.Description)
}

func TestCreateCollectionRejectsDuplicateSlug(t *testing.T) {
	db, svc := newCatalogFixture(t)
	createTestCollection(t, db, "Clothings", "clothings")

	_, err := svc.CreateCollection(context.Background(), CollectionInput{Name: "Other", Slug: "clothings"})
	assert.ErrorIs(t, err, ErrSlugTaken)
}

func TestCreateCollectionRejectsInvalidSlug(t *testing.T) {
	_, svc := newCatalogFixture(t)

	for _, bad := range []string{"", "Has Spaces", "UPPER", "trailing-", "with/slash"} {
		_, err := svc.CreateCollection(context.Background(), CollectionInput{Name: "X", Slug: bad})
		assert.ErrorIs(t, err, ErrInvalidSlug, "slug %q", bad)
	}
}

func TestUpdateCollectionPartial(t *testing.T) {
	db, svc := newCatalogFixture(t)
	c := createTestCollection(t, db, "Clothings", "clothings")
	require.NoError(t, db.Model(c).Update("description", "old").Error)

	// Only the name is sent; slug and description stay put.
	updated, err := svc.UpdateCollection(context.Background(), c.ID, CollectionUpdate{
		Name: strPtr("New Clothings"),
	})
	require.NoError(t, err)
	assert.Equal(t, "New Clothings", updated.Name)
	assert.Equal(t, "clothings", updated.Slug)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "old", *updated.Description)

	// A present empty string clears the optional field.
	updated, err = svc.UpdateCollection(context.Background(), c.ID, CollectionUpdate{
		Description: strPtr(""),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.Description)
}

func TestUpdateCollectionSlugConflict(t *testing.T) {
	db, svc := newCatalogFixture(t)
	createTestCollection(t, db, "Clothings", "clothings")
	c := createTestCollection(t, db, "Accessories", "accessories")

	_, err := svc.UpdateCollection(context.Background(), c.ID, CollectionUpdate{Slug: strPtr("clothings")})
	assert.ErrorIs(t, err, ErrSlugTaken)

	// Re-sending its own slug is not a conflict.
	updated, err := svc.UpdateCollection(context.Background(), c.ID, CollectionUpdate{Slug: strPtr("accessories")})
	require.NoError(t, err)
	assert.Equal(t, "accessories", updated.Slug)
}

func TestUpdateCollectionUnknownID(t *testing.T) {
	_, svc := newCatalogFixture(t)

	_, err := svc.UpdateCollection(context.Background(), "no-such-id", CollectionUpdate{Name: strPtr("X")})
	assert.ErrorIs(t, err, ErrCollectionNotFound)
}

func TestDeleteCollectionCascadesToProducts(t *testing.T) {
	db, svc := newCatalogFixture(t)
	c := createTestCollection(t, db, "Clothings", "clothings")
	createTestProduct(t, db, "Wool Coat", c.ID)
	createTestProduct(t, db, "Knit Sweater", c.ID)

	require.NoError(t, svc.DeleteCollection(context.Background(), c.ID))

	var collections, products int64
	require.NoError(t, db.Model(&models.Collection{}).Count(&collections).Error)
	require.NoError(t, db.Model(&models.Product{}).Count(&products).Error)
	assert.Zero(t, collections)
	assert.Zero(t, products)

	// Filtering by the dead slug yields an empty list, not an error.
	repo := repositories.NewProductRepository(db)
	remaining, err := repo.GetByCollectionSlug(context.Background(), "clothings")
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestCreateProduct(t *testing.T) {
	db, svc := newCatalogFixture(t)
	c := createTestCollection(t, db, "Clothings", "clothings")

	price := decimal.NewFromFloat(1299.00)
	product, err := svc.CreateProduct(context.Background(), ProductInput{
		Name:         "Wool Coat",
		Price:        &price,
		Colors:       &[]string{"黑色", "米色"},
		Sizes:        &[]string{"S", "M", "L"},
		ColorImages:  &map[string]string{"黑色": "/images/coat-black.jpg"},
		CollectionID: &c.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, c.ID, product.CollectionID)
	require.NotNil(t, product.Collection)
	assert.Equal(t, "clothings", product.Collection.Slug)
	require.NotNil(t, product.Price)
	assert.True(t, product.Price.Equal(price))

	var colors []string
	require.NoError(t, json.Unmarshal(product.Colors, &colors))
	assert.Equal(t, []string{"黑色", "米色"}, colors)

	var colorImages map[string]string
	require.NoError(t, json.Unmarshal(product.ColorImages, &colorImages))
	assert.Equal(t, "/images/coat-black.jpg", colorImages["黑色"])
}

func TestCreateProductResolvesCollectionBySlug(t *testing.T) {
	db, svc := newCatalogFixture(t)
	c := createTestCollection(t, db, "Clothings", "clothings")

	product, err := svc.CreateProduct(context.Background(), ProductInput{
		Name:           "Knit Sweater",
		CollectionSlug: strPtr("clothings"),
	})
	require.NoError(t, err)
	assert.Equal(t, c.ID, product.CollectionID)
}

func TestCreateProductRequiresResolvableCollection(t *testing.T) {
	_, svc := newCatalogFixture(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, ProductInput{Name: "Orphan"})
	assert.ErrorIs(t, err, ErrCollectionRequired)

	_, err = svc.CreateProduct(ctx, ProductInput{Name: "Orphan", CollectionSlug: strPtr("missing")})
	assert.ErrorIs(t, err, ErrCollectionRequired)

	_, err = svc.CreateProduct(ctx, ProductInput{Name: "Orphan", CollectionID: strPtr("no-such-id")})
	assert.ErrorIs(t, err, ErrCollectionRequired)
}

func TestUpdateProductPartial(t *testing.T) {
	db, svc := newCatalogFixture(t)
	c := createTestCollection(t, db, "Clothings", "clothings")

	price := decimal.NewFromInt(899)
	product, err := svc.CreateProduct(context.Background(), ProductInput{
		Name:         "Wool Coat",
		Price:        &price,
		Description:  strPtr("厚实保暖"),
		Colors:       &[]string{"黑色"},
		CollectionID: &c.ID,
	})
	require.NoError(t, err)

	// Untouched fields survive a partial update.
	updated, err := svc.UpdateProduct(context.Background(), product.ID, ProductUpdate{
		Name: strPtr("Wool Coat 2024"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Wool Coat 2024", updated.Name)
	require.NotNil(t, updated.Price)
	assert.True(t, updated.Price.Equal(price))
	require.NotNil(t, updated.Description)

	var colors []string
	require.NoError(t, json.Unmarshal(updated.Colors, &colors))
	assert.Equal(t, []string{"黑色"}, colors)
}

func TestUpdateProductClearsPrice(t *testing.T) {
	db, svc := newCatalogFixture(t)
	c := createTestCollection(t, db, "Clothings", "clothings")

	price := decimal.NewFromInt(899)
	product, err := svc.CreateProduct(context.Background(), ProductInput{
		Name:         "Wool Coat",
		Price:        &price,
		CollectionID: &c.ID,
	})
	require.NoError(t, err)

	// PriceSet false leaves it alone even though Price is nil.
	updated, err := svc.UpdateProduct(context.Background(), product.ID, ProductUpdate{
		Name: strPtr("Still Priced"),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Price)

	// PriceSet true with nil clears it; the product becomes unpriced.
	updated, err = svc.UpdateProduct(context.Background(), product.ID, ProductUpdate{
		PriceSet: true,
	})
	require.NoError(t, err)
	assert.Nil(t, updated.Price)
}

func TestUpdateProductMovesCollection(t *testing.T) {
	db, svc := newCatalogFixture(t)
	from := createTestCollection(t, db, "Clothings", "clothings")
	to := createTestCollection(t, db, "Accessories", "accessories")
	product := createTestProduct(t, db, "Silk Scarf", from.ID)

	updated, err := svc.UpdateProduct(context.Background(), product.ID, ProductUpdate{
		CollectionSlug: strPtr("accessories"),
	})
	require.NoError(t, err)
	assert.Equal(t, to.ID, updated.CollectionID)
	require.NotNil(t, updated.Collection)
	assert.Equal(t, "accessories", updated.Collection.Slug)
}

func TestUpdateProductUnknownID(t *testing.T) {
	_, svc := newCatalogFixture(t)

	_, err := svc.UpdateProduct(context.Background(), "no-such-id", ProductUpdate{Name: strPtr("X")})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestDeleteProduct(t *testing.T) {
	db, svc := newCatalogFixture(t)
	c := createTestCollection(t, db, "Clothings", "clothings")
	product := createTestProduct(t, db, "Wool Coat", c.ID)

	require.NoError(t, svc.DeleteProduct(context.Background(), product.ID))
	assert.ErrorIs(t, svc.DeleteProduct(context.Background(), product.ID), ErrProductNotFound)
}

func TestDeleteProductClearsCartRows(t *testing.T) {
	db, svc := newCatalogFixture(t)
	c := createTestCollection(t, db, "Clothings", "clothings")
	p := createTestProduct(t, db, "Wool Coat", c.ID)

	user := createTestUser(t, db, "shopper@example.com")
	cart := &models.Cart{UserID: user.ID}
	require.NoError(t, db.Create(cart).Error)
	require.NoError(t, db.Create(&models.CartItem{CartID: cart.ID, ProductID: p.ID, Quantity: 2}).Error)

	require.NoError(t, svc.DeleteProduct(context.Background(), p.ID))

	var items int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&items).Error)
	assert.Zero(t, items)
}

func TestDeleteCollectionClearsCartRows(t *testing.T) {
	db, svc := newCatalogFixture(t)
	c := createTestCollection(t, db, "Clothings", "clothings")
	p := createTestProduct(t, db, "Wool Coat", c.ID)

	user := createTestUser(t, db, "shopper@example.com")
	cart := &models.Cart{UserID: user.ID}
	require.NoError(t, db.Create(cart).Error)
	require.NoError(t, db.Create(&models.CartItem{CartID: cart.ID, ProductID: p.ID, Quantity: 1}).Error)

	require.NoError(t, svc.DeleteCollection(context.Background(), c.ID))

	var items int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&items).Error)
	assert.Zero(t, items)
}

func TestEmptyToNil(t *testing.T) {
	assert.Nil(t, emptyToNil(nil))
	assert.Nil(t, emptyToNil(strPtr("")))
	require.NotNil(t, emptyToNil(strPtr("x")))
}
