package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"cakestory-client/internal/dto"
	"cakestory-client/internal/model"
	"cakestory-client/internal/store"
)

type CartHandler struct {
	cartRepo store.CartRepository
}

func NewCartHandler(cartRepo store.CartRepository) *CartHandler {
	return &CartHandler{
		cartRepo: cartRepo,
	}
}

func (h *CartHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	items, err := h.cartRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list cart: %w", err)
	}

	return c.JSON(http.StatusOK, items)
}

func (h *CartHandler) Add(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.Quantity < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "quantity must be at least 1")
	}

	item := &model.CartItem{
		ShopID:            req.ShopID,
		MarketplacePostID: req.MarketplacePostID,
		Title:             req.Title,
		Size:              req.Size,
		Quantity:          req.Quantity,
		UnitPrice:         req.UnitPrice,
	}
	if err := h.cartRepo.Add(ctx, item); err != nil {
		return fmt.Errorf("add cart item: %w", err)
	}

	return c.JSON(http.StatusCreated, item)
}

func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()

	id := c.Param("itemID")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing item id")
	}

	var req dto.UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	if err := h.cartRepo.UpdateQuantity(ctx, id, req.Quantity); err != nil {
		return fmt.Errorf("update cart item: %w", err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *CartHandler) Remove(c echo.Context) error {
	ctx := c.Request().Context()

	id := c.Param("itemID")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing item id")
	}

	if err := h.cartRepo.Remove(ctx, id); err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}

	return c.NoContent(http.StatusNoContent)
}
