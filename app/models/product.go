package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Product belongs to exactly one Collection. The list/map shaped fields
// (colors, sizes, gallery images, color image mapping) are stored as JSON
// columns and validated at the write boundary, so the read path can trust
// their shape.
type Product struct {
	ID            string           `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name          string           `gorm:"size:255;not null" json:"name"`
	Description   *string          `gorm:"type:text" json:"description"`
	Price         *decimal.Decimal `gorm:"type:decimal(16,2)" json:"price"`
	ImageURL      *string          `gorm:"size:500" json:"imageUrl"`
	HoverImageURL *string          `gorm:"size:500" json:"hoverImageUrl"`
	Colors        datatypes.JSON   `json:"colors"`
	Sizes         datatypes.JSON   `json:"sizes"`
	Composition   *string          `gorm:"type:text" json:"composition"`
	Care          *string          `gorm:"type:text" json:"care"`
	GalleryImages datatypes.JSON   `json:"galleryImages"`
	DetailTexts   datatypes.JSON   `json:"detailTexts"`
	DetailImages  datatypes.JSON   `json:"detailImages"`
	ColorImages   datatypes.JSON   `json:"colorImages"`
	CollectionID  string           `gorm:"size:36;index;not null" json:"collectionId"`
	Collection    *Collection      `gorm:"foreignKey:CollectionID" json:"collection,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}
