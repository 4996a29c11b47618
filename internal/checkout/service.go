package checkout

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/shopwave/shopwave-backend/internal/cart"
	"github.com/shopwave/shopwave-backend/pkg/config"
	pkgerrors "github.com/shopwave/shopwave-backend/pkg/errors"
	"github.com/shopwave/shopwave-backend/pkg/types"
)

// taxRate is the fixed storefront tax applied at checkout. Shipping is free.
var taxRate = decimal.RequireFromString("0.10")

// Input is the validated checkout payload.
type Input struct {
	PaymentMethod   string                `json:"payment_method"`
	DeliveryAddress types.DeliveryAddress `json:"delivery_address"`
}

// Result reports a completed simulated checkout. Nothing is persisted: the
// order number is generated fresh on every submission.
type Result struct {
	Success       bool    `json:"success"`
	OrderNumber   int     `json:"order_number"`
	Total         float64 `json:"total"`
	PaymentMethod string  `json:"payment_method"`
}

// Service runs the simulated checkout flow.
type Service interface {
	Submit(ctx context.Context, userID string, input Input) (*Result, error)
}

type service struct {
	carts cart.Service
	delay time.Duration
}

// NewService constructs a checkout service instance.
func NewService(carts cart.Service, cfg config.CheckoutConfig) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart service required")
	}
	return &service{
		carts: carts,
		delay: cfg.ProcessingDelay,
	}, nil
}

// Submit validates the payment method and address, charges nothing, waits out
// the configured processing delay, clears the cart and reports a fresh order
// number. Stock is neither validated nor decremented.
func (s *service) Submit(ctx context.Context, userID string, input Input) (*Result, error) {
	details := map[string]string{}
	if strings.TrimSpace(input.PaymentMethod) == "" {
		details["payment_method"] = "required"
	}
	missing := input.DeliveryAddress.MissingFields()
	sort.Strings(missing)
	for _, field := range missing {
		details["delivery_address."+field] = "required"
	}
	if len(details) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "checkout payload incomplete").
			WithDetails(details)
	}

	contents, err := s.carts.GetContents(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(contents.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	subtotal := decimal.NewFromFloat(contents.Summary.Subtotal)
	total := subtotal.Add(subtotal.Mul(taxRate)).Round(2)

	// simulated payment processing
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, ctx.Err(), "checkout interrupted")
		}
	}

	if err := s.carts.Clear(ctx, userID); err != nil {
		return nil, err
	}

	return &Result{
		Success:       true,
		OrderNumber:   100000 + rand.Intn(900000),
		Total:         total.InexactFloat64(),
		PaymentMethod: input.PaymentMethod,
	}, nil
}
