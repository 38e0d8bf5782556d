package repositories

import (
	"context"

	"github.com/mattertouch/storefront/app/models"
	"gorm.io/gorm"
)

type HeroImageRepositoryImpl interface {
	Create(ctx context.Context, image *models.HeroImage) error
	GetAll(ctx context.Context) ([]models.HeroImage, error)
	GetByID(ctx context.Context, id string) (*models.HeroImage, error)
	Update(ctx context.Context, image *models.HeroImage) error
	Delete(ctx context.Context, id string) error
}

type heroImageRepository struct {
	db *gorm.DB
}

func NewHeroImageRepository(db *gorm.DB) HeroImageRepositoryImpl {
	return &heroImageRepository{db}
}

func (r *heroImageRepository) Create(ctx context.Context, image *models.HeroImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *heroImageRepository) GetAll(ctx context.Context) ([]models.HeroImage, error) {
	var images []models.HeroImage
	err := r.db.WithContext(ctx).
		Order("position ASC, created_at ASC").
		Find(&images).Error
	return images, err
}

func (r *heroImageRepository) GetByID(ctx context.Context, id string) (*models.HeroImage, error) {
	var image models.HeroImage
	err := r.db.WithContext(ctx).First(&image, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &image, nil
}

func (r *heroImageRepository) Update(ctx context.Context, image *models.HeroImage) error {
	return r.db.WithContext(ctx).Save(image).Error
}

func (r *heroImageRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.HeroImage{}, "id = ?", id).Error
}
