package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"cakestory-client/internal/dto"
	"cakestory-client/internal/service"
)

type WalletHandler struct {
	walletService service.WalletService
}

func NewWalletHandler(walletService service.WalletService) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
	}
}

func (h *WalletHandler) GetBalance(c echo.Context) error {
	ctx := c.Request().Context()

	balance, err := h.walletService.Balance(ctx)
	if err != nil {
		return fmt.Errorf("get wallet balance: %w", err)
	}

	return c.JSON(http.StatusOK, map[string]int64{
		"balance": balance,
	})
}

func (h *WalletHandler) TopUp(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.TopUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	resp, err := h.walletService.TopUp(ctx, req.Amount)
	if err != nil {
		return fmt.Errorf("request topup: %w", err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"transaction_id": resp.TransactionID,
		"payment_url":    resp.PaymentURL,
	})
}
