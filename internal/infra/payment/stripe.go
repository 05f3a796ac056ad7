package payment

import (
	"context"

	repo "app/internal/repository"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"
)

// StripeGatewayはCheckout Sessionを作るだけの薄いクライアント。
type StripeGateway struct {
	successURL string
	cancelURL  string
}

func NewStripeGateway(secretKey string, successURL string, cancelURL string) *StripeGateway {
	stripe.Key = secretKey
	return &StripeGateway{
		successURL: successURL,
		cancelURL:  cancelURL,
	}
}

func (g *StripeGateway) CreateSession(ctx context.Context, items []repo.CheckoutLineItem) (repo.CheckoutSession, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
	for _, it := range items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(string(stripe.CurrencyUSD)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(it.Name),
				},
				UnitAmount: stripe.Int64(it.UnitAmount),
			},
			Quantity: stripe.Int64(it.Quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Params: stripe.Params{
			Context: ctx,
		},
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  lineItems,
		SuccessURL: stripe.String(g.successURL),
		CancelURL:  stripe.String(g.cancelURL),
	}

	s, err := session.New(params)
	if err != nil {
		return repo.CheckoutSession{}, err
	}

	return repo.CheckoutSession{ID: s.ID, URL: s.URL}, nil
}
