package services

import (
	"fmt"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"github.com/fnbapp/backend/app/models"
)

// PaymentGateway hands a placed order to the payment provider and returns the
// hosted payment page the client should be redirected to.
type PaymentGateway interface {
	CreateTransaction(order *models.Order, user *models.User) (token string, redirectURL string, err error)
}

type MidtransGateway struct {
	client snap.Client
}

func NewMidtransGateway(serverKey string, production bool) *MidtransGateway {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}

	var client snap.Client
	client.New(serverKey, env)

	return &MidtransGateway{client: client}
}

func (g *MidtransGateway) CreateTransaction(order *models.Order, user *models.User) (string, string, error) {
	items := make([]midtrans.ItemDetails, 0, len(order.OrderItems))
	for _, item := range order.OrderItems {
		items = append(items, midtrans.ItemDetails{
			ID:    item.ProductID,
			Name:  item.ProductName,
			Price: item.PriceAtPurchase.Round(0).IntPart(),
			Qty:   int32(item.Qty),
		})
	}

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  order.ID,
			GrossAmt: order.TotalAmount.Round(0).IntPart(),
		},
		Items: &items,
		CustomerDetail: &midtrans.CustomerDetails{
			FName: user.Username,
			Email: user.Email,
			Phone: user.Phone,
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}

	snapResp, snapErr := g.client.CreateTransaction(snapReq)
	if snapErr != nil {
		return "", "", fmt.Errorf("failed to initiate payment transaction: %w", snapErr.RawError)
	}
	if snapResp == nil || snapResp.Token == "" || snapResp.RedirectURL == "" {
		return "", "", fmt.Errorf("payment gateway returned an incomplete response for order %s", order.ID)
	}

	return snapResp.Token, snapResp.RedirectURL, nil
}
