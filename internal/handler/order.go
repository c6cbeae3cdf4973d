package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"cakestory-client/internal/client"
	"cakestory-client/internal/config"
	"cakestory-client/internal/dto"
	"cakestory-client/internal/model"
	"cakestory-client/internal/poller"
	"cakestory-client/internal/pricing"
	"cakestory-client/internal/service"
)

type OrderHandler struct {
	api          client.CakeStoryClient
	orderService service.OrderService
	pollCfg      config.Poll
}

func NewOrderHandler(api client.CakeStoryClient, orderService service.OrderService, pollCfg config.Poll) *OrderHandler {
	return &OrderHandler{
		api:          api,
		orderService: orderService,
		pollCfg:      pollCfg,
	}
}

// Quote recomputes the price breakdown for the current selections.
// Pricing is fail-soft: unknown sizes or toppings price as zero, the
// endpoint itself never rejects a quote.
func (h *OrderHandler) Quote(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.QuoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	post, err := h.api.FetchMarketplacePost(ctx, req.MarketplacePostID)
	if err != nil {
		return fmt.Errorf("fetch post for quote: %w", err)
	}

	toppings, err := h.resolveToppings(ctx, post.ShopID, req.Toppings)
	if err != nil {
		return err
	}

	totals := pricing.ComputeTotals(post.Sizes, req.Size, req.Quantity, toppings)

	return c.JSON(http.StatusOK, &dto.QuoteResponse{
		BaseCakeSubtotal: totals.BaseCakeSubtotal,
		ToppingsSubtotal: totals.ToppingsSubtotal,
		TotalPrice:       totals.TotalPrice,
	})
}

func (h *OrderHandler) Submit(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SubmitOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	post, err := h.api.FetchMarketplacePost(ctx, req.MarketplacePostID)
	if err != nil {
		return submissionError(c, err)
	}

	shop, err := h.api.FetchShop(ctx, post.ShopID)
	if err != nil {
		return submissionError(c, err)
	}

	toppings, err := h.resolveToppings(ctx, post.ShopID, req.Toppings)
	if err != nil {
		return submissionError(c, err)
	}

	draft := pricing.NewDraft()
	draft.SelectSize(req.Size)
	draft.SetQuantity(req.Quantity)
	draft.SpecialInstructions = req.SpecialInstructions
	draft.DeliveryTime = req.DeliveryTime
	for _, sel := range toppings {
		draft.SetToppingQuantity(sel)
	}

	result, err := h.orderService.SubmitOrder(ctx, draft, post, shop)
	if err != nil {
		return submissionError(c, err)
	}

	return c.JSON(http.StatusCreated, &dto.SubmitOrderResponse{
		OrderID:    result.OrderID,
		Status:     string(result.Status),
		TotalPrice: result.Totals.TotalPrice,
	})
}

// PaymentStatus is a single probe, used by the payment modal between
// poller ticks and on reopen.
func (h *OrderHandler) PaymentStatus(c echo.Context) error {
	ctx := c.Request().Context()

	orderID := c.Param("orderID")
	if orderID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing order id")
	}

	status, err := h.api.GetPaymentStatus(ctx, orderID)
	if err != nil {
		return fmt.Errorf("payment status: %w", err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": string(status),
	})
}

// WatchPaymentStatus runs one polling session and answers when the
// payment reaches a terminal state, the attempt budget runs out, or
// the caller goes away. The payment modal keeps a single watch request
// open instead of re-probing itself.
func (h *OrderHandler) WatchPaymentStatus(c echo.Context) error {
	ctx := c.Request().Context()

	orderID := c.Param("orderID")
	if orderID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing order id")
	}

	p := poller.New(h.api.GetPaymentStatus,
		poller.WithInterval(h.pollCfg.Interval),
		poller.WithMaxAttempts(h.pollCfg.MaxAttempts),
	)
	p.Start(ctx, orderID, nil)

	select {
	case <-p.Done():
	case <-ctx.Done():
		p.Stop()
		<-p.Done()
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": string(p.Status()),
	})
}

// resolveToppings joins the requested topping quantities against the
// shop's ingredient catalog. Unknown ingredient ids are dropped, and
// zero quantities never make it into the selection.
func (h *OrderHandler) resolveToppings(ctx context.Context, shopID uint, inputs []dto.ToppingInput) ([]pricing.ToppingSelection, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	catalog, err := h.api.FetchIngredients(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("fetch ingredients: %w", err)
	}

	byID := make(map[uint]*model.Ingredient, len(catalog))
	for _, ing := range catalog {
		byID[ing.ID] = ing
	}

	var selections []pricing.ToppingSelection
	for _, in := range inputs {
		ing, ok := byID[in.IngredientID]
		if !ok || in.Quantity <= 0 {
			continue
		}
		selections = append(selections, pricing.ToppingSelection{
			ToppingID: ing.ID,
			Name:      ing.Name,
			UnitPrice: ing.Price,
			Quantity:  in.Quantity,
		})
	}
	return selections, nil
}

// submissionError maps a submission failure onto a status code and the
// localized message the order modal shows.
func submissionError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, client.ErrInsufficientBalance):
		status = http.StatusPaymentRequired
	case errors.Is(err, client.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, client.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, client.ErrValidation),
		errors.Is(err, service.ErrNoSizeSelected),
		errors.Is(err, service.ErrUnknownSize),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrMissingDelivery),
		errors.Is(err, service.ErrDeliveryTooSoon):
		status = http.StatusBadRequest
	}

	return c.JSON(status, &dto.ErrorResponse{
		Message: service.UserMessage(err),
	})
}

func parseUintParam(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return uint(v), nil
}
