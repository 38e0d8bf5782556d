package repositories

import (
	"context"

	"github.com/mattertouch/storefront/app/models"
	"gorm.io/gorm"
)

type CollectionRepositoryImpl interface {
	Create(ctx context.Context, collection *models.Collection) error
	GetAll(ctx context.Context) ([]models.Collection, error)
	GetByID(ctx context.Context, id string) (*models.Collection, error)
	GetByIDWithProducts(ctx context.Context, id string) (*models.Collection, error)
	GetBySlug(ctx context.Context, slug string) (*models.Collection, error)
	Update(ctx context.Context, collection *models.Collection) error
	DeleteWithProducts(ctx context.Context, id string) error
}

type collectionRepository struct {
	db *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) CollectionRepositoryImpl {
	return &collectionRepository{db: db}
}

func (r *collectionRepository) Create(ctx context.Context, collection *models.Collection) error {
	return r.db.WithContext(ctx).Create(collection).Error
}

func (r *collectionRepository) GetAll(ctx context.Context) ([]models.Collection, error) {
	var collections []models.Collection
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&collections).Error
	return collections, err
}

func (r *collectionRepository) GetByID(ctx context.Context, id string) (*models.Collection, error) {
	var collection models.Collection
	err := r.db.WithContext(ctx).First(&collection, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &collection, nil
}

func (r *collectionRepository) GetByIDWithProducts(ctx context.Context, id string) (*models.Collection, error) {
	var collection models.Collection
	err := r.db.WithContext(ctx).
		Preload("Products", func(db *gorm.DB) *gorm.DB {
			return db.Order("products.created_at ASC")
		}).
		First(&collection, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &collection, nil
}

func (r *collectionRepository) GetBySlug(ctx context.Context, slug string) (*models.Collection, error) {
	var collection models.Collection
	err := r.db.WithContext(ctx).First(&collection, "slug = ?", slug).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &collection, nil
}

func (r *collectionRepository) Update(ctx context.Context, collection *models.Collection) error {
	return r.db.WithContext(ctx).Save(collection).Error
}

// DeleteWithProducts removes a collection, its products, and any cart rows
// holding those products, in one transaction.
func (r *collectionRepository) DeleteWithProducts(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var productIDs []string
		if err := tx.Model(&models.Product{}).Where("collection_id = ?", id).Pluck("id", &productIDs).Error; err != nil {
			return err
		}
		if len(productIDs) > 0 {
			if err := tx.Where("product_id IN ?", productIDs).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("collection_id = ?", id).Delete(&models.Product{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Collection{}, "id = ?", id).Error
	})
}
