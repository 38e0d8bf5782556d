package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartItem identity for merge purposes is (CartID, ProductID, SelectedColor,
// SelectedSize). A missing color or size is stored as NULL, never as "".
// Quantity is always >= 1; dropping to zero means the row is deleted.
type CartItem struct {
	ID            string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	CartID        string    `gorm:"size:36;not null;index" json:"cartId"`
	Cart          *Cart     `gorm:"foreignKey:CartID" json:"-"`
	ProductID     string    `gorm:"size:36;not null;index" json:"productId"`
	Product       *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity      int       `gorm:"not null;default:1" json:"quantity"`
	SelectedColor *string   `gorm:"size:100" json:"selectedColor"`
	SelectedSize  *string   `gorm:"size:100" json:"selectedSize"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (ci *CartItem) BeforeCreate(tx *gorm.DB) (err error) {
	if ci.ID == "" {
		ci.ID = uuid.New().String()
	}
	return
}
