package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"cakestory-client/internal/config"
	"cakestory-client/internal/model"
	"cakestory-client/internal/pricing"
)

type CakeStoryClient interface {
	FetchIngredients(ctx context.Context, shopID uint) ([]*model.Ingredient, error)
	FetchMarketplacePost(ctx context.Context, postID uint) (*model.MarketplacePost, error)
	FetchShop(ctx context.Context, shopID uint) (*model.Shop, error)
	CreateOrder(ctx context.Context, req *CreateOrderRequest) (*CreateOrderResponse, error)
	GetWalletBalance(ctx context.Context) (int64, error)
	GetPaymentStatus(ctx context.Context, orderID string) (model.PaymentStatus, error)
	RequestTopUp(ctx context.Context, amount int64) (*TopUpResponse, error)
}

type cakeStoryClientImpl struct {
	httpClient  *http.Client
	baseApiURL  string
	accessToken string
}

// CreateOrderRequest is the POST /cake-orders payload.
type CreateOrderRequest struct {
	CustomerID          uint          `json:"customer_id"`
	ShopID              uint          `json:"shop_id"`
	MarketplacePostID   uint          `json:"marketplace_post_id"`
	Size                string        `json:"size"`
	Quantity            int           `json:"quantity"`
	Status              string        `json:"status"`
	BasePrice           int64         `json:"base_price"`
	TotalPrice          int64         `json:"total_price"`
	SpecialInstructions string        `json:"special_instructions"`
	DeliveryTime        time.Time     `json:"delivery_time"`
	OrderDetails        []OrderDetail `json:"order_details"`
}

type OrderDetail struct {
	IngredientID uint `json:"ingredient_id"`
	Quantity     int  `json:"quantity"`
}

type CreateOrderResponse struct {
	OrderID string
	Status  model.PaymentStatus
}

type TopUpResponse struct {
	TransactionID string
	PaymentURL    string
}

func NewCakeStoryClient(cfg *config.Backend) CakeStoryClient {
	return &cakeStoryClientImpl{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseApiURL:  strings.TrimRight(cfg.BaseApiURL, "/"),
		accessToken: cfg.AccessToken,
	}
}

func (c *cakeStoryClientImpl) FetchIngredients(ctx context.Context, shopID uint) ([]*model.Ingredient, error) {
	endpoint := fmt.Sprintf("%s/ingredients?shop_id=%d", c.baseApiURL, shopID)

	var res struct {
		Ingredients []struct {
			ID          uint            `json:"id"`
			Name        string          `json:"name"`
			Price       json.RawMessage `json:"price"`
			Description string          `json:"description"`
			Image       string          `json:"image"`
		} `json:"ingredients"`
	}
	if err := c.getJSON(ctx, endpoint, &res); err != nil {
		return nil, fmt.Errorf("fetch ingredients: %w", err)
	}

	ingredients := make([]*model.Ingredient, len(res.Ingredients))
	for i, ing := range res.Ingredients {
		ingredients[i] = &model.Ingredient{
			ID:          ing.ID,
			Name:        ing.Name,
			Price:       normalizeRawPrice(ing.Price),
			Description: ing.Description,
			Image:       ing.Image,
		}
	}
	return ingredients, nil
}

func (c *cakeStoryClientImpl) FetchMarketplacePost(ctx context.Context, postID uint) (*model.MarketplacePost, error) {
	endpoint := fmt.Sprintf("%s/marketplace-posts/%d", c.baseApiURL, postID)

	var res struct {
		Post struct {
			ID     uint   `json:"id"`
			ShopID uint   `json:"shop_id"`
			Title  string `json:"title"`
			Sizes  []struct {
				ID    uint            `json:"id"`
				Size  string          `json:"size"`
				Price json.RawMessage `json:"price"`
			} `json:"sizes"`
		} `json:"post"`
	}
	if err := c.getJSON(ctx, endpoint, &res); err != nil {
		return nil, fmt.Errorf("fetch marketplace post: %w", err)
	}

	post := &model.MarketplacePost{
		ID:     res.Post.ID,
		ShopID: res.Post.ShopID,
		Title:  res.Post.Title,
		Sizes:  make([]model.CakeSize, len(res.Post.Sizes)),
	}
	for i, s := range res.Post.Sizes {
		post.Sizes[i] = model.CakeSize{
			ID:    s.ID,
			Size:  s.Size,
			Price: normalizeRawPrice(s.Price),
		}
	}
	return post, nil
}

func (c *cakeStoryClientImpl) FetchShop(ctx context.Context, shopID uint) (*model.Shop, error) {
	endpoint := fmt.Sprintf("%s/shops/%d", c.baseApiURL, shopID)

	var res struct {
		Shop struct {
			ID           uint   `json:"id"`
			Name         string `json:"business_name"`
			RequiredTime int    `json:"required_time"`
		} `json:"shop"`
	}
	if err := c.getJSON(ctx, endpoint, &res); err != nil {
		return nil, fmt.Errorf("fetch shop: %w", err)
	}

	return &model.Shop{
		ID:           res.Shop.ID,
		Name:         res.Shop.Name,
		RequiredTime: res.Shop.RequiredTime,
	}, nil
}

func (c *cakeStoryClientImpl) CreateOrder(ctx context.Context, orderReq *CreateOrderRequest) (*CreateOrderResponse, error) {
	body, err := json.Marshal(orderReq)
	if err != nil {
		return nil, fmt.Errorf("marshal order payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseApiURL+"/cake-orders", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	c.setHeaders(req)
	// dedupe retried submissions server-side
	req.Header.Set("Idempotency-Key", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var res struct {
		Order struct {
			ID     json.Number `json:"id"`
			Status string      `json:"status"`
		} `json:"order"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("decode order response: %w", err)
	}

	return &CreateOrderResponse{
		OrderID: res.Order.ID.String(),
		Status:  model.ParsePaymentStatus(res.Order.Status),
	}, nil
}

// GetWalletBalance tolerates both response shapes the backend has
// shipped: {"wallet":{"balance":...}} and the flat {"balance":...}.
func (c *cakeStoryClientImpl) GetWalletBalance(ctx context.Context) (int64, error) {
	var res struct {
		Wallet *struct {
			Balance json.RawMessage `json:"balance"`
		} `json:"wallet"`
		Balance json.RawMessage `json:"balance"`
	}
	if err := c.getJSON(ctx, c.baseApiURL+"/wallet/balance", &res); err != nil {
		return 0, fmt.Errorf("fetch wallet balance: %w", err)
	}

	if res.Wallet != nil {
		return normalizeRawPrice(res.Wallet.Balance), nil
	}
	return normalizeRawPrice(res.Balance), nil
}

func (c *cakeStoryClientImpl) GetPaymentStatus(ctx context.Context, orderID string) (model.PaymentStatus, error) {
	endpoint := fmt.Sprintf("%s/wallet/payment-status/%s", c.baseApiURL, url.PathEscape(orderID))

	var res struct {
		Status string `json:"status"`
	}
	if err := c.getJSON(ctx, endpoint, &res); err != nil {
		return "", fmt.Errorf("fetch payment status: %w", err)
	}

	return model.ParsePaymentStatus(res.Status), nil
}

func (c *cakeStoryClientImpl) RequestTopUp(ctx context.Context, amount int64) (*TopUpResponse, error) {
	payload := map[string]any{"amount": amount}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal topup payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseApiURL+"/wallet/topup", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var res struct {
		TransactionID string `json:"transaction_id"`
		PaymentURL    string `json:"payment_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("decode topup response: %w", err)
	}

	return &TopUpResponse{
		TransactionID: res.TransactionID,
		PaymentURL:    res.PaymentURL,
	}, nil
}

func (c *cakeStoryClientImpl) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("http new request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *cakeStoryClientImpl) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}
}

// checkStatus translates a non-2xx response into a typed error the
// order flow can map to a user-facing message.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	b, _ := io.ReadAll(resp.Body)

	var apiErr struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	_ = json.Unmarshal(b, &apiErr)

	switch {
	case resp.StatusCode == http.StatusPaymentRequired,
		apiErr.Code == "INSUFFICIENT_BALANCE":
		return fmt.Errorf("backend error %d: %w", resp.StatusCode, ErrInsufficientBalance)
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("backend error %d: %w", resp.StatusCode, ErrUnauthorized)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("backend error %d: %w", resp.StatusCode, ErrNotFound)
	case resp.StatusCode == http.StatusBadRequest,
		resp.StatusCode == http.StatusUnprocessableEntity:
		return fmt.Errorf("backend error %d: %s: %w", resp.StatusCode, apiErr.Error, ErrValidation)
	default:
		return fmt.Errorf("backend error %d: %s", resp.StatusCode, string(b))
	}
}

// normalizeRawPrice handles backend prices that arrive either as JSON
// numbers or as quoted decimal strings.
func normalizeRawPrice(raw json.RawMessage) int64 {
	if len(raw) == 0 {
		return 0
	}
	s := strings.Trim(string(raw), `"`)
	return pricing.NormalizePrice(s)
}
