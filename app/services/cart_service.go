package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/mattertouch/storefront/app/models"
	"github.com/mattertouch/storefront/app/repositories"
	"gorm.io/gorm"
)

type CartService struct {
	cartRepo     repositories.CartRepositoryImpl
	cartItemRepo repositories.CartItemRepositoryImpl
	productRepo  repositories.ProductRepositoryImpl
}

func NewCartService(cartRepo repositories.CartRepositoryImpl, cartItemRepo repositories.CartItemRepositoryImpl, productRepo repositories.ProductRepositoryImpl) *CartService {
	return &CartService{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
	}
}

// GetOrCreateCart resolves the user's single cart, creating it on first use.
// Two concurrent first-requests race on the unique user_id index; the loser's
// insert fails with a duplicate key error and we fall back to re-reading the
// row the winner created, so neither caller ever sees the conflict.
func (s *CartService) GetOrCreateCart(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up cart: %w", err)
	}

	if cart == nil {
		cart = &models.Cart{UserID: userID}
		if err := s.cartRepo.Create(ctx, cart); err != nil {
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, fmt.Errorf("failed to create cart: %w", err)
			}
			log.Printf("GetOrCreateCart: lost creation race for user %s, reusing existing cart", userID)
			cart, err = s.cartRepo.GetByUserID(ctx, userID)
			if err != nil {
				return nil, fmt.Errorf("failed to re-read cart after conflict: %w", err)
			}
			if cart == nil {
				return nil, fmt.Errorf("cart vanished after duplicate key conflict for user %s", userID)
			}
		}
	}

	detailed, err := s.cartRepo.GetWithItems(ctx, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart items: %w", err)
	}
	if detailed == nil {
		return nil, fmt.Errorf("cart %s disappeared while loading items", cart.ID)
	}
	return detailed, nil
}

// AddItem merges into an existing line item when (product, color, size)
// already sits in the cart, otherwise inserts a new one. The created flag
// tells the handler whether to answer 201 or 200.
func (s *CartService) AddItem(ctx context.Context, userID, productID string, quantity int, selectedColor, selectedSize *string) (*models.CartItem, bool, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up product %s: %w", productID, err)
	}
	if product == nil {
		return nil, false, ErrProductNotFound
	}

	cart, err := s.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	color := normalizeOption(selectedColor)
	size := normalizeOption(selectedSize)

	existing, err := s.cartItemRepo.FindByIdentity(ctx, cart.ID, productID, color, size)
	if err != nil {
		return nil, false, fmt.Errorf("failed to check existing cart item: %w", err)
	}

	if existing != nil {
		existing.Quantity += quantity
		if err := s.cartItemRepo.Update(ctx, existing); err != nil {
			return nil, false, fmt.Errorf("failed to merge cart item: %w", err)
		}
		merged, err := s.cartItemRepo.GetByIDWithProduct(ctx, existing.ID)
		if err != nil {
			return nil, false, fmt.Errorf("failed to reload merged cart item: %w", err)
		}
		return merged, false, nil
	}

	item := &models.CartItem{
		CartID:        cart.ID,
		ProductID:     productID,
		Quantity:      quantity,
		SelectedColor: color,
		SelectedSize:  size,
	}
	if err := s.cartItemRepo.Add(ctx, item); err != nil {
		return nil, false, fmt.Errorf("failed to add cart item: %w", err)
	}

	created, err := s.cartItemRepo.GetByIDWithProduct(ctx, item.ID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to reload new cart item: %w", err)
	}
	return created, true, nil
}

// UpdateItemQuantity changes a line item's quantity in place. Callers are
// expected to delete instead of updating below 1; the handler rejects such
// requests before they get here. The ownership check runs after the existence
// check, so a non-owner learns the item exists. Known tradeoff.
func (s *CartService) UpdateItemQuantity(ctx context.Context, userID, itemID string, quantity int) (*models.CartItem, error) {
	item, err := s.cartItemRepo.GetByIDWithCart(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up cart item %s: %w", itemID, err)
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}
	if item.Cart == nil || item.Cart.UserID != userID {
		return nil, ErrNotCartOwner
	}

	item.Quantity = quantity
	item.Cart = nil
	if err := s.cartItemRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update cart item quantity: %w", err)
	}

	updated, err := s.cartItemRepo.GetByIDWithProduct(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload updated cart item: %w", err)
	}
	return updated, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID string) error {
	item, err := s.cartItemRepo.GetByIDWithCart(ctx, itemID)
	if err != nil {
		return fmt.Errorf("failed to look up cart item %s: %w", itemID, err)
	}
	if item == nil {
		return ErrCartItemNotFound
	}
	if item.Cart == nil || item.Cart.UserID != userID {
		return ErrNotCartOwner
	}

	if err := s.cartItemRepo.Delete(ctx, itemID); err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	return nil
}

// normalizeOption maps absent and blank selections to NULL so the merge
// identity never distinguishes "" from missing.
func normalizeOption(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	return v
}
