package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Collection struct {
	ID            string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Slug          string    `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	CoverImageURL *string   `gorm:"size:500" json:"coverImageUrl"`
	Description   *string   `gorm:"type:text" json:"description"`
	Products      []Product `json:"products,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (c *Collection) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}
