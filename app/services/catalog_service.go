package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gosimple/slug"
	"github.com/mattertouch/storefront/app/models"
	"github.com/mattertouch/storefront/app/repositories"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// CatalogService owns the admin-gated write rules for collections and
// products: slug uniqueness, collection resolution, partial updates, and the
// shape validation of the JSON-typed product fields (lists and the
// color-to-image map arrive already typed and are serialized here, so
// malformed shapes can never reach the read path).
type CatalogService struct {
	collectionRepo repositories.CollectionRepositoryImpl
	productRepo    repositories.ProductRepositoryImpl
}

func NewCatalogService(collectionRepo repositories.CollectionRepositoryImpl, productRepo repositories.ProductRepositoryImpl) *CatalogService {
	return &CatalogService{
		collectionRepo: collectionRepo,
		productRepo:    productRepo,
	}
}

type CollectionInput struct {
	Name          string
	Slug          string
	CoverImageURL *string
	Description   *string
}

// CollectionUpdate carries partial-update semantics: nil means "leave the
// field alone", a present empty string on an optional field means NULL.
type CollectionUpdate struct {
	Name          *string
	Slug          *string
	CoverImageURL *string
	Description   *string
}

func (s *CatalogService) CreateCollection(ctx context.Context, in CollectionInput) (*models.Collection, error) {
	if !slug.IsSlug(in.Slug) {
		return nil, ErrInvalidSlug
	}

	existing, err := s.collectionRepo.GetBySlug(ctx, in.Slug)
	if err != nil {
		return nil, fmt.Errorf("failed to check slug %q: %w", in.Slug, err)
	}
	if existing != nil {
		return nil, ErrSlugTaken
	}

	collection := &models.Collection{
		Name:          in.Name,
		Slug:          in.Slug,
		CoverImageURL: emptyToNil(in.CoverImageURL),
		Description:   emptyToNil(in.Description),
	}
	if err := s.collectionRepo.Create(ctx, collection); err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}
	return collection, nil
}

func (s *CatalogService) UpdateCollection(ctx context.Context, id string, in CollectionUpdate) (*models.Collection, error) {
	collection, err := s.collectionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up collection %s: %w", id, err)
	}
	if collection == nil {
		return nil, ErrCollectionNotFound
	}

	if in.Slug != nil && *in.Slug != collection.Slug {
		if !slug.IsSlug(*in.Slug) {
			return nil, ErrInvalidSlug
		}
		other, err := s.collectionRepo.GetBySlug(ctx, *in.Slug)
		if err != nil {
			return nil, fmt.Errorf("failed to check slug %q: %w", *in.Slug, err)
		}
		if other != nil {
			return nil, ErrSlugTaken
		}
		collection.Slug = *in.Slug
	}
	if in.Name != nil {
		collection.Name = *in.Name
	}
	if in.CoverImageURL != nil {
		collection.CoverImageURL = emptyToNil(in.CoverImageURL)
	}
	if in.Description != nil {
		collection.Description = emptyToNil(in.Description)
	}

	if err := s.collectionRepo.Update(ctx, collection); err != nil {
		return nil, fmt.Errorf("failed to update collection: %w", err)
	}
	return collection, nil
}

func (s *CatalogService) DeleteCollection(ctx context.Context, id string) error {
	collection, err := s.collectionRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to look up collection %s: %w", id, err)
	}
	if collection == nil {
		return ErrCollectionNotFound
	}
	if err := s.collectionRepo.DeleteWithProducts(ctx, id); err != nil {
		return fmt.Errorf("failed to delete collection %s: %w", id, err)
	}
	return nil
}

type ProductInput struct {
	Name           string
	Description    *string
	Price          *decimal.Decimal
	ImageURL       *string
	HoverImageURL  *string
	Colors         *[]string
	Sizes          *[]string
	Composition    *string
	Care           *string
	GalleryImages  *[]string
	DetailTexts    *[]string
	DetailImages   *[]string
	ColorImages    *map[string]string
	CollectionID   *string
	CollectionSlug *string
}

type ProductUpdate struct {
	Name           *string
	Description    *string
	Price          *decimal.Decimal
	PriceSet       bool
	ImageURL       *string
	HoverImageURL  *string
	Colors         *[]string
	Sizes          *[]string
	Composition    *string
	Care           *string
	GalleryImages  *[]string
	DetailTexts    *[]string
	DetailImages   *[]string
	ColorImages    *map[string]string
	CollectionID   *string
	CollectionSlug *string
}

func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	collectionID, err := s.resolveCollection(ctx, in.CollectionID, in.CollectionSlug)
	if err != nil {
		return nil, err
	}
	if collectionID == "" {
		return nil, ErrCollectionRequired
	}

	product := &models.Product{
		Name:          in.Name,
		Description:   emptyToNil(in.Description),
		Price:         in.Price,
		ImageURL:      emptyToNil(in.ImageURL),
		HoverImageURL: emptyToNil(in.HoverImageURL),
		Composition:   emptyToNil(in.Composition),
		Care:          emptyToNil(in.Care),
		CollectionID:  collectionID,
	}
	if err := applyJSONField(&product.Colors, in.Colors); err != nil {
		return nil, err
	}
	if err := applyJSONField(&product.Sizes, in.Sizes); err != nil {
		return nil, err
	}
	if err := applyJSONField(&product.GalleryImages, in.GalleryImages); err != nil {
		return nil, err
	}
	if err := applyJSONField(&product.DetailTexts, in.DetailTexts); err != nil {
		return nil, err
	}
	if err := applyJSONField(&product.DetailImages, in.DetailImages); err != nil {
		return nil, err
	}
	if err := applyJSONField(&product.ColorImages, in.ColorImages); err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return s.reloadProduct(ctx, product.ID)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id string, in ProductUpdate) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up product %s: %w", id, err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = emptyToNil(in.Description)
	}
	if in.PriceSet {
		product.Price = in.Price
	}
	if in.ImageURL != nil {
		product.ImageURL = emptyToNil(in.ImageURL)
	}
	if in.HoverImageURL != nil {
		product.HoverImageURL = emptyToNil(in.HoverImageURL)
	}
	if in.Composition != nil {
		product.Composition = emptyToNil(in.Composition)
	}
	if in.Care != nil {
		product.Care = emptyToNil(in.Care)
	}
	if err := applyJSONField(&product.Colors, in.Colors); err != nil {
		return nil, err
	}
	if err := applyJSONField(&product.Sizes, in.Sizes); err != nil {
		return nil, err
	}
	if err := applyJSONField(&product.GalleryImages, in.GalleryImages); err != nil {
		return nil, err
	}
	if err := applyJSONField(&product.DetailTexts, in.DetailTexts); err != nil {
		return nil, err
	}
	if err := applyJSONField(&product.DetailImages, in.DetailImages); err != nil {
		return nil, err
	}
	if err := applyJSONField(&product.ColorImages, in.ColorImages); err != nil {
		return nil, err
	}

	collectionID, err := s.resolveCollection(ctx, in.CollectionID, in.CollectionSlug)
	if err != nil {
		return nil, err
	}
	if collectionID != "" {
		product.CollectionID = collectionID
	}

	product.Collection = nil
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return s.reloadProduct(ctx, id)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to look up product %s: %w", id, err)
	}
	if product == nil {
		return ErrProductNotFound
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	return nil
}

// resolveCollection prefers an explicit id over a slug. Returns "" when
// neither was given; an id or slug that resolves to nothing is an error.
func (s *CatalogService) resolveCollection(ctx context.Context, id, slugName *string) (string, error) {
	if id != nil && *id != "" {
		collection, err := s.collectionRepo.GetByID(ctx, *id)
		if err != nil {
			return "", fmt.Errorf("failed to resolve collection %s: %w", *id, err)
		}
		if collection == nil {
			return "", ErrCollectionRequired
		}
		return collection.ID, nil
	}
	if slugName != nil && *slugName != "" {
		collection, err := s.collectionRepo.GetBySlug(ctx, *slugName)
		if err != nil {
			return "", fmt.Errorf("failed to resolve collection slug %q: %w", *slugName, err)
		}
		if collection == nil {
			return "", ErrCollectionRequired
		}
		return collection.ID, nil
	}
	return "", nil
}

func (s *CatalogService) reloadProduct(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload product %s: %w", id, err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// applyJSONField serializes an already shape-checked value into the JSON
// column. nil leaves the column untouched (partial update semantics).
func applyJSONField[T any](dst *datatypes.JSON, v *T) error {
	if v == nil {
		return nil
	}
	raw, err := json.Marshal(*v)
	if err != nil {
		return fmt.Errorf("failed to serialize product field: %w", err)
	}
	*dst = datatypes.JSON(raw)
	return nil
}

func emptyToNil(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	return v
}
