package services

import "errors"

// Sentinel errors matched with errors.Is at the handler boundary, where they
// are translated to 400/401/403/404. Anything else is a 500.
var (
	ErrProductNotFound    = errors.New("product not found")
	ErrCollectionNotFound = errors.New("collection not found")
	ErrCollectionRequired = errors.New("a resolvable collection is required")
	ErrSlugTaken          = errors.New("slug already in use")
	ErrInvalidSlug        = errors.New("slug contains invalid characters")
	ErrCartItemNotFound   = errors.New("cart item not found")
	ErrNotCartOwner       = errors.New("cart item belongs to another user")
	ErrHeroImageNotFound  = errors.New("hero image not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)
