package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/mattertouch/storefront/app/middlewares"
	"github.com/mattertouch/storefront/app/models"
	"github.com/mattertouch/storefront/app/models/migrations"
	"github.com/mattertouch/storefront/app/repositories"
	"github.com/mattertouch/storefront/app/services"
	"github.com/stretchr/testify/require"
	"github.com/unrolled/render"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var handlerDBCounter atomic.Int64

// fixture wires real repositories and services over an in-memory database,
// so handler tests exercise the same stack the router assembles.
type fixture struct {
	db       *gorm.DB
	rnd      *render.Render
	validate *validator.Validate

	userRepo       repositories.UserRepositoryImpl
	collectionRepo repositories.CollectionRepositoryImpl
	productRepo    repositories.ProductRepositoryImpl
	cartRepo       repositories.CartRepositoryImpl
	cartItemRepo   repositories.CartItemRepositoryImpl
	heroRepo       repositories.HeroImageRepositoryImpl

	authSvc    *services.AuthService
	cartSvc    *services.CartService
	catalogSvc *services.CatalogService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:handlertest%d?mode=memory&cache=shared", handlerDBCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, migrations.AutoMigrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	f := &fixture{
		db:       db,
		rnd:      render.New(),
		validate: validator.New(),
	}
	f.userRepo = repositories.NewUserRepository(db)
	f.collectionRepo = repositories.NewCollectionRepository(db)
	f.productRepo = repositories.NewProductRepository(db)
	f.cartRepo = repositories.NewCartRepository(db)
	f.cartItemRepo = repositories.NewCartItemRepository(db)
	f.heroRepo = repositories.NewHeroImageRepository(db)

	f.authSvc = services.NewAuthService(f.userRepo, f.cartRepo)
	f.cartSvc = services.NewCartService(f.cartRepo, f.cartItemRepo, f.productRepo)
	f.catalogSvc = services.NewCatalogService(f.collectionRepo, f.productRepo)
	return f
}

func (f *fixture) createUser(t *testing.T, email string, role models.Role) *models.User {
	t.Helper()
	u := &models.User{Email: email, Password: "x", Role: role}
	require.NoError(t, f.db.Create(u).Error)
	return u
}

func (f *fixture) createCollection(t *testing.T, name, slug string) *models.Collection {
	t.Helper()
	c := &models.Collection{Name: name, Slug: slug}
	require.NoError(t, f.db.Create(c).Error)
	return c
}

func (f *fixture) createProduct(t *testing.T, name, collectionID string) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, CollectionID: collectionID}
	require.NoError(t, f.db.Create(p).Error)
	return p
}

// doJSON runs one request through a throwaway router so path variables are
// populated the same way they are in production.
func doJSON(t *testing.T, method, pattern, path string, body string, identity *middlewares.Identity, handler http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	router := mux.NewRouter()
	router.HandleFunc(pattern, handler).Methods(method)

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if identity != nil {
		req = req.WithContext(middlewares.WithIdentity(req.Context(), *identity))
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}
