package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/fnbapp/backend/app/apperror"
	"github.com/fnbapp/backend/app/models"
)

type BrandRepositoryImpl interface {
	Create(ctx context.Context, brand *models.Brand) error
	List(ctx context.Context) ([]models.Brand, error)
}

type CategoryRepositoryImpl interface {
	Create(ctx context.Context, category *models.Category) error
	List(ctx context.Context) ([]models.Category, error)
}

type PromotionRepositoryImpl interface {
	Create(ctx context.Context, promotion *models.Promotion) error
	List(ctx context.Context) ([]models.Promotion, error)
	AttachProducts(ctx context.Context, promotion *models.Promotion, productIDs []string) error
}

type brandRepository struct {
	db *gorm.DB
}

func NewBrandRepository(db *gorm.DB) BrandRepositoryImpl {
	return &brandRepository{db}
}

func (r *brandRepository) Create(ctx context.Context, brand *models.Brand) error {
	if err := r.db.WithContext(ctx).Create(brand).Error; err != nil {
		if isDuplicateKey(err) {
			return apperror.New(400, "Brand already exists")
		}
		return err
	}
	return nil
}

func (r *brandRepository) List(ctx context.Context) ([]models.Brand, error) {
	var brands []models.Brand
	if err := r.db.WithContext(ctx).Order("name").Find(&brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepositoryImpl {
	return &categoryRepository{db}
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		if isDuplicateKey(err) {
			return apperror.New(400, "Category already exists")
		}
		return err
	}
	return nil
}

func (r *categoryRepository) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

type promotionRepository struct {
	db *gorm.DB
}

func NewPromotionRepository(db *gorm.DB) PromotionRepositoryImpl {
	return &promotionRepository{db}
}

func (r *promotionRepository) Create(ctx context.Context, promotion *models.Promotion) error {
	return r.db.WithContext(ctx).Create(promotion).Error
}

func (r *promotionRepository) List(ctx context.Context) ([]models.Promotion, error) {
	var promotions []models.Promotion
	if err := r.db.WithContext(ctx).Order("start_date DESC").Find(&promotions).Error; err != nil {
		return nil, err
	}
	return promotions, nil
}

func (r *promotionRepository) AttachProducts(ctx context.Context, promotion *models.Promotion, productIDs []string) error {
	if len(productIDs) == 0 {
		return nil
	}
	var products []models.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", productIDs).Find(&products).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(promotion).Association("Products").Append(&products)
}
