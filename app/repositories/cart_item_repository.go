package repositories

import (
	"context"

	"github.com/mattertouch/storefront/app/models"
	"gorm.io/gorm"
)

type CartItemRepositoryImpl interface {
	Add(ctx context.Context, item *models.CartItem) error
	Update(ctx context.Context, item *models.CartItem) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.CartItem, error)
	GetByIDWithCart(ctx context.Context, id string) (*models.CartItem, error)
	GetByIDWithProduct(ctx context.Context, id string) (*models.CartItem, error)
	FindByIdentity(ctx context.Context, cartID, productID string, color, size *string) (*models.CartItem, error)
}

type cartItemRepository struct {
	db *gorm.DB
}

func NewCartItemRepository(db *gorm.DB) CartItemRepositoryImpl {
	return &cartItemRepository{db}
}

func (r *cartItemRepository) Add(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *cartItemRepository) Update(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *cartItemRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.CartItem{}, "id = ?", id).Error
}

func (r *cartItemRepository) GetByID(ctx context.Context, id string) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *cartItemRepository) GetByIDWithCart(ctx context.Context, id string) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Preload("Cart").
		First(&item, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *cartItemRepository) GetByIDWithProduct(ctx context.Context, id string) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Product.Collection").
		First(&item, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// FindByIdentity matches the merge tuple (cart, product, color, size). NULL
// color/size only matches NULL, never "any".
func (r *cartItemRepository) FindByIdentity(ctx context.Context, cartID, productID string, color, size *string) (*models.CartItem, error) {
	q := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID)

	if color != nil {
		q = q.Where("selected_color = ?", *color)
	} else {
		q = q.Where("selected_color IS NULL")
	}
	if size != nil {
		q = q.Where("selected_size = ?", *size)
	} else {
		q = q.Where("selected_size IS NULL")
	}

	var item models.CartItem
	if err := q.First(&item).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}
