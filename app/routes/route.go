package routes

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/mattertouch/storefront/app/configs"
	"github.com/mattertouch/storefront/app/handlers"
	"github.com/mattertouch/storefront/app/middlewares"
	"github.com/mattertouch/storefront/app/repositories"
	"github.com/mattertouch/storefront/app/services"
	"github.com/mattertouch/storefront/app/utils/renderer"
	"github.com/mattertouch/storefront/app/utils/sessions"
	"gorm.io/gorm"
)

func NewRouter(db *gorm.DB, env configs.ENV, keys *configs.SessionKeys) *mux.Router {
	rnd := renderer.New()
	validate := validator.New()
	sessionStore := sessions.NewCookieSessionStore(env.IsProduction(), keys.AuthKey, keys.EncKey)

	userRepo := repositories.NewUserRepository(db)
	collectionRepo := repositories.NewCollectionRepository(db)
	productRepo := repositories.NewProductRepository(db)
	heroRepo := repositories.NewHeroImageRepository(db)
	cartRepo := repositories.NewCartRepository(db)
	cartItemRepo := repositories.NewCartItemRepository(db)

	authSvc := services.NewAuthService(userRepo, cartRepo)
	cartSvc := services.NewCartService(cartRepo, cartItemRepo, productRepo)
	catalogSvc := services.NewCatalogService(collectionRepo, productRepo)

	authHandler := handlers.NewAuthHandler(rnd, authSvc, sessionStore, validate)
	cartHandler := handlers.NewCartHandler(rnd, cartSvc, validate)
	collectionHandler := handlers.NewCollectionHandler(rnd, collectionRepo, catalogSvc, validate)
	productHandler := handlers.NewProductHandler(rnd, productRepo, catalogSvc, validate)
	heroHandler := handlers.NewHeroHandler(rnd, heroRepo, validate)
	uploadHandler := handlers.NewUploadHandler(rnd, env)

	router := mux.NewRouter()

	api := router.PathPrefix("/api").Subrouter()
	api.Use(middlewares.ResolveIdentity(sessionStore, userRepo))

	requireAdmin := middlewares.RequireAdmin(rnd)
	csrfProtect := csrf.Protect(keys.AuthKey,
		csrf.Path("/"),
		csrf.RequestHeader("X-CSRF-Token"),
		csrf.Secure(env.IsProduction()),
	)
	admin := func(h http.HandlerFunc) http.Handler {
		if env.IsProduction() {
			return requireAdmin(csrfProtect(h))
		}
		return requireAdmin(h)
	}

	// Public catalog reads.
	api.HandleFunc("/collections", collectionHandler.List).Methods("GET")
	api.HandleFunc("/collections/{id}", collectionHandler.Get).Methods("GET")
	api.HandleFunc("/products", productHandler.List).Methods("GET")
	api.HandleFunc("/products/{id}", productHandler.Get).Methods("GET")
	api.HandleFunc("/products/{id}/gallery", productHandler.Gallery).Methods("GET")
	api.HandleFunc("/hero-images", heroHandler.List).Methods("GET")
	api.HandleFunc("/hero-images/carousel", heroHandler.Carousel).Methods("GET")

	// Auth.
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST")
	api.HandleFunc("/auth/verify-password", authHandler.VerifyPassword).Methods("POST")

	// Cart, authenticated users only.
	cart := api.PathPrefix("/cart").Subrouter()
	cart.Use(middlewares.RequireSession(rnd))
	cart.HandleFunc("", cartHandler.GetCart).Methods("GET")
	cart.HandleFunc("", cartHandler.AddItem).Methods("POST")
	cart.HandleFunc("/{itemId}", cartHandler.UpdateItem).Methods("PUT")
	cart.HandleFunc("/{itemId}", cartHandler.DeleteItem).Methods("DELETE")

	// Admin catalog writes.
	api.Handle("/collections", admin(collectionHandler.Create)).Methods("POST")
	api.Handle("/collections/{id}", admin(collectionHandler.Update)).Methods("PATCH")
	api.Handle("/collections/{id}", admin(collectionHandler.Delete)).Methods("DELETE")
	api.Handle("/products", admin(productHandler.Create)).Methods("POST")
	api.Handle("/products/{id}", admin(productHandler.Update)).Methods("PATCH")
	api.Handle("/products/{id}", admin(productHandler.Delete)).Methods("DELETE")
	api.Handle("/hero-images", admin(heroHandler.Create)).Methods("POST")
	api.Handle("/hero-images/{id}", admin(heroHandler.Update)).Methods("PATCH")
	api.Handle("/hero-images/{id}", admin(heroHandler.Delete)).Methods("DELETE")
	api.Handle("/upload", admin(uploadHandler.Upload)).Methods("POST")

	return router
}
