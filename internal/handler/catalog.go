package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"cakestory-client/internal/client"
)

type CatalogHandler struct {
	api client.CakeStoryClient
}

func NewCatalogHandler(api client.CakeStoryClient) *CatalogHandler {
	return &CatalogHandler{
		api: api,
	}
}

func (h *CatalogHandler) GetIngredients(c echo.Context) error {
	ctx := c.Request().Context()

	shopID, err := parseUintParam(c, "shopID")
	if err != nil {
		return err
	}

	ingredients, err := h.api.FetchIngredients(ctx, shopID)
	if err != nil {
		return fmt.Errorf("get ingredients: %w", err)
	}

	return c.JSON(http.StatusOK, ingredients)
}

func (h *CatalogHandler) GetMarketplacePost(c echo.Context) error {
	ctx := c.Request().Context()

	postID, err := parseUintParam(c, "postID")
	if err != nil {
		return err
	}

	post, err := h.api.FetchMarketplacePost(ctx, postID)
	if err != nil {
		return fmt.Errorf("get marketplace post: %w", err)
	}

	return c.JSON(http.StatusOK, post)
}
