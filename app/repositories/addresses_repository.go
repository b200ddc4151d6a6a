package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/fnbapp/backend/app/models"
)

type AddressRepositoryImpl interface {
	Create(ctx context.Context, address *models.Address) error
	ListByUser(ctx context.Context, userID string) ([]models.Address, error)
	FindByIDForUser(ctx context.Context, addressID, userID string) (*models.Address, error)
	Delete(ctx context.Context, addressID string) error
}

type addressRepository struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) AddressRepositoryImpl {
	return &addressRepository{db}
}

func (r *addressRepository) Create(ctx context.Context, address *models.Address) error {
	return r.db.WithContext(ctx).Create(address).Error
}

func (r *addressRepository) ListByUser(ctx context.Context, userID string) ([]models.Address, error) {
	var addresses []models.Address
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&addresses).Error
	if err != nil {
		return nil, err
	}
	return addresses, nil
}

func (r *addressRepository) FindByIDForUser(ctx context.Context, addressID, userID string) (*models.Address, error) {
	var address models.Address
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", addressID, userID).
		First(&address).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &address, nil
}

func (r *addressRepository) Delete(ctx context.Context, addressID string) error {
	return r.db.WithContext(ctx).Delete(&models.Address{}, "id = ?", addressID).Error
}
