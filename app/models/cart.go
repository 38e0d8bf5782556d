package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cart is created lazily, at most once per user. The unique index on UserID
// is what makes concurrent first-time creation safe: the losing insert fails
// with a duplicate key error and the caller re-reads the winner's row.
type Cart struct {
	ID        string     `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	UserID    string     `gorm:"size:36;not null;uniqueIndex" json:"userId"`
	Items     []CartItem `gorm:"foreignKey:CartID" json:"items"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}
