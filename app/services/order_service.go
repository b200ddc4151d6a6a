package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/fnbapp/backend/app/apperror"
	"github.com/fnbapp/backend/app/models"
	"github.com/fnbapp/backend/app/repositories"
)

type OrderService struct {
	db          *gorm.DB
	cartRepo    repositories.CartRepositoryImpl
	productRepo repositories.ProductRepositoryImpl
	orderRepo   repositories.OrderRepositoryImpl
	userRepo    repositories.UserRepositoryImpl
	gateway     PaymentGateway
	mailer      MailSender
}

func NewOrderService(
	db *gorm.DB,
	cartRepo repositories.CartRepositoryImpl,
	productRepo repositories.ProductRepositoryImpl,
	orderRepo repositories.OrderRepositoryImpl,
	userRepo repositories.UserRepositoryImpl,
	gateway PaymentGateway,
	mailer MailSender,
) *OrderService {
	return &OrderService{
		db:          db,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		gateway:     gateway,
		mailer:      mailer,
	}
}

// PlaceOrder converts the user's cart into an order in one database
// transaction: copy items at their captured prices, decrement stock, clear
// the cart. The payment-gateway call and the confirmation email happen only
// after the transaction commits, so no transaction is ever held open across
// a network call.
func (s *OrderService) PlaceOrder(ctx context.Context, userID string) (*models.Order, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials
	}

	cart, err := s.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	full, err := s.cartRepo.GetWithItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	if full == nil || len(full.CartItems) == 0 {
		return nil, apperror.New(http.StatusBadRequest, "Cart is empty")
	}

	order := &models.Order{
		UserID: userID,
		Status: models.OrderStatusPaid,
	}

	total := decimal.Zero
	items := make([]models.OrderItem, 0, len(full.CartItems))
	for _, ci := range full.CartItems {
		name := ""
		if ci.Product != nil {
			name = ci.Product.Name
		}
		items = append(items, models.OrderItem{
			ProductID:       ci.ProductID,
			ProductName:     name,
			Qty:             ci.Qty,
			PriceAtPurchase: ci.Price,
			Subtotal:        ci.Subtotal,
		})
		total = total.Add(ci.Subtotal)
	}
	order.OrderItems = items
	order.TotalAmount = total

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, ci := range full.CartItems {
			if err := s.productRepo.DecrementStock(ctx, tx, ci.ProductID, ci.Qty); err != nil {
				if err == repositories.ErrInsufficientStock {
					return apperror.New(http.StatusBadRequest, "Not enough stock to fulfil the order")
				}
				return err
			}
		}
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return err
		}
		return s.cartRepo.ClearItems(ctx, tx, cart.ID)
	})
	if err != nil {
		return nil, err
	}

	if s.gateway != nil {
		token, redirectURL, payErr := s.gateway.CreateTransaction(order, user)
		if payErr != nil {
			logrus.WithField("order_id", order.ID).Errorf("payment hand-off failed: %v", payErr)
		} else {
			order.PaymentToken = token
			order.PaymentURL = redirectURL
			if updErr := s.orderRepo.Update(ctx, order); updErr != nil {
				logrus.WithField("order_id", order.ID).Errorf("failed to store payment reference: %v", updErr)
			}
		}
	}

	// Fire-and-forget: a lost confirmation email never fails the order.
	if s.mailer != nil {
		if mailErr := s.mailer.SendOrderConfirmation(user.Email, order.ID, order.TotalAmount); mailErr != nil {
			logrus.WithField("order_id", order.ID).Errorf("failed to send order confirmation: %v", mailErr)
		}
	}

	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID string, limit, offset int) ([]models.Order, int64, error) {
	return s.orderRepo.ListByUser(ctx, userID, limit, offset)
}

func (s *OrderService) GetOrder(ctx context.Context, orderID, userID string) (*models.Order, error) {
	order, err := s.orderRepo.FindByIDForUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.New(http.StatusNotFound, "Order not found")
	}
	return order, nil
}
