package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cakestory-client/internal/client"
	"cakestory-client/internal/model"
	"cakestory-client/internal/pricing"
)

// Validation errors raised before anything is sent to the backend.
// The draft itself stays lenient; strictness applies only where money
// actually moves.
var (
	ErrNoSizeSelected  = errors.New("no size selected")
	ErrUnknownSize     = errors.New("selected size is not offered for this cake")
	ErrDeliveryTooSoon = errors.New("delivery time is before the shop's required lead time")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrMissingDelivery = errors.New("delivery time is required")
)

// SubmitResult is what the UI needs after a successful submission.
type SubmitResult struct {
	OrderID string
	Status  model.PaymentStatus
	Totals  pricing.Totals
}

type OrderService interface {
	BuildOrder(draft *pricing.Draft, post *model.MarketplacePost, shop *model.Shop) (*client.CreateOrderRequest, pricing.Totals, error)
	SubmitOrder(ctx context.Context, draft *pricing.Draft, post *model.MarketplacePost, shop *model.Shop) (*SubmitResult, error)
}

type orderServiceImpl struct {
	api        client.CakeStoryClient
	customerID uint
	now        func() time.Time
}

func NewOrderService(api client.CakeStoryClient, customerID uint) OrderService {
	return &orderServiceImpl{
		api:        api,
		customerID: customerID,
		now:        time.Now,
	}
}

// BuildOrder turns a draft into the order payload, recomputing the
// breakdown from the catalog. Unlike the display path, submission
// validates everything: quantity, catalog membership of the size, and
// the shop's delivery lead time.
func (s *orderServiceImpl) BuildOrder(draft *pricing.Draft, post *model.MarketplacePost, shop *model.Shop) (*client.CreateOrderRequest, pricing.Totals, error) {
	if draft.Quantity < 1 {
		return nil, pricing.Totals{}, ErrInvalidQuantity
	}
	if draft.SelectedSize == "" {
		return nil, pricing.Totals{}, ErrNoSizeSelected
	}
	if !sizeOffered(post.Sizes, draft.SelectedSize) {
		return nil, pricing.Totals{}, fmt.Errorf("%w: %q", ErrUnknownSize, draft.SelectedSize)
	}
	if draft.DeliveryTime.IsZero() {
		return nil, pricing.Totals{}, ErrMissingDelivery
	}

	earliest := s.now().Add(time.Duration(shop.RequiredTime) * time.Hour)
	if draft.DeliveryTime.Before(earliest) {
		return nil, pricing.Totals{}, fmt.Errorf("%w: earliest is %s", ErrDeliveryTooSoon, earliest.Format(time.RFC3339))
	}

	toppings := draft.Toppings()
	totals := pricing.ComputeTotals(post.Sizes, draft.SelectedSize, draft.Quantity, toppings)

	details := make([]client.OrderDetail, len(toppings))
	for i, sel := range toppings {
		details[i] = client.OrderDetail{
			IngredientID: sel.ToppingID,
			Quantity:     sel.Quantity,
		}
	}

	req := &client.CreateOrderRequest{
		CustomerID:          s.customerID,
		ShopID:              post.ShopID,
		MarketplacePostID:   post.ID,
		Size:                draft.SelectedSize,
		Quantity:            draft.Quantity,
		Status:              "pending",
		BasePrice:           pricing.SizePrice(post.Sizes, draft.SelectedSize),
		TotalPrice:          totals.TotalPrice,
		SpecialInstructions: draft.SpecialInstructions,
		DeliveryTime:        draft.DeliveryTime,
		OrderDetails:        details,
	}
	return req, totals, nil
}

func (s *orderServiceImpl) SubmitOrder(ctx context.Context, draft *pricing.Draft, post *model.MarketplacePost, shop *model.Shop) (*SubmitResult, error) {
	req, totals, err := s.BuildOrder(draft, post, shop)
	if err != nil {
		return nil, err
	}

	resp, err := s.api.CreateOrder(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create cake order: %w", err)
	}

	return &SubmitResult{
		OrderID: resp.OrderID,
		Status:  resp.Status,
		Totals:  totals,
	}, nil
}

func sizeOffered(sizes []model.CakeSize, selected string) bool {
	for _, s := range sizes {
		if s.Size == selected {
			return true
		}
	}
	return false
}
