package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/fnbapp/backend/app/apperror"
	"github.com/fnbapp/backend/app/models"
	"github.com/fnbapp/backend/app/repositories"
)

type CartService struct {
	cartRepo     repositories.CartRepositoryImpl
	cartItemRepo repositories.CartItemRepositoryImpl
	productRepo  repositories.ProductRepositoryImpl
}

func NewCartService(
	cartRepo repositories.CartRepositoryImpl,
	cartItemRepo repositories.CartItemRepositoryImpl,
	productRepo repositories.ProductRepositoryImpl,
) *CartService {
	return &CartService{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
	}
}

func (s *CartService) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create cart: %w", err)
	}
	full, err := s.cartRepo.GetWithItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	if full == nil {
		return cart, nil
	}
	return full, nil
}

// AddItem captures the product price at the moment it enters the cart; a
// later price change does not reprice items already in the cart.
func (s *CartService) AddItem(ctx context.Context, userID, productID string, qty int) (*models.Cart, error) {
	if qty <= 0 {
		return nil, apperror.New(http.StatusBadRequest, "Quantity must be positive")
	}

	cart, err := s.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create cart: %w", err)
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.New(http.StatusNotFound, "Product not found")
	}

	existing, err := s.cartItemRepo.FindByCartAndProduct(ctx, cart.ID, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing cart item: %w", err)
	}

	newQty := qty
	if existing != nil {
		newQty += existing.Qty
	}
	if product.Stock < newQty {
		return nil, apperror.New(http.StatusBadRequest, fmt.Sprintf("Not enough stock for product %s", product.Name))
	}

	if existing != nil {
		existing.Qty = newQty
		existing.Subtotal = existing.Price.Mul(decimal.NewFromInt(int64(newQty)))
		if err := s.cartItemRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update cart item: %w", err)
		}
	} else {
		item := &models.CartItem{
			CartID:    cart.ID,
			ProductID: productID,
			Qty:       qty,
			Price:     product.Price,
			Subtotal:  product.Price.Mul(decimal.NewFromInt(int64(qty))),
		}
		if err := s.cartItemRepo.Create(ctx, item); err != nil {
			return nil, fmt.Errorf("failed to add cart item: %w", err)
		}
	}

	return s.cartRepo.GetWithItems(ctx, cart.ID)
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create cart: %w", err)
	}

	item, err := s.cartItemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.CartID != cart.ID {
		return nil, apperror.New(http.StatusNotFound, "Cart item not found")
	}

	if err := s.cartItemRepo.Delete(ctx, itemID); err != nil {
		return nil, fmt.Errorf("failed to remove cart item: %w", err)
	}

	return s.cartRepo.GetWithItems(ctx, cart.ID)
}
