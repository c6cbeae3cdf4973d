package service

import (
	"context"
	"fmt"

	"cakestory-client/internal/client"
)

type WalletService interface {
	Balance(ctx context.Context) (int64, error)
	TopUp(ctx context.Context, amount int64) (*client.TopUpResponse, error)
}

type walletServiceImpl struct {
	api client.CakeStoryClient
}

func NewWalletService(api client.CakeStoryClient) WalletService {
	return &walletServiceImpl{api: api}
}

func (s *walletServiceImpl) Balance(ctx context.Context) (int64, error) {
	balance, err := s.api.GetWalletBalance(ctx)
	if err != nil {
		return 0, fmt.Errorf("wallet balance: %w", err)
	}
	return balance, nil
}

func (s *walletServiceImpl) TopUp(ctx context.Context, amount int64) (*client.TopUpResponse, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("topup amount must be positive")
	}
	return s.api.RequestTopUp(ctx, amount)
}
