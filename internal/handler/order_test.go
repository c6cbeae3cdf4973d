package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cakestory-client/internal/client"
	"cakestory-client/internal/config"
	"cakestory-client/internal/dto"
	"cakestory-client/internal/model"
	"cakestory-client/internal/service"
)

var testPoll = config.Poll{Interval: time.Millisecond, MaxAttempts: 5}

type fakeAPI struct {
	client.CakeStoryClient

	post        *model.MarketplacePost
	shop        *model.Shop
	ingredients []*model.Ingredient
	status      model.PaymentStatus
	statusSeq   []model.PaymentStatus
	statusCalls int
	createErr   error
}

func (f *fakeAPI) FetchMarketplacePost(ctx context.Context, postID uint) (*model.MarketplacePost, error) {
	return f.post, nil
}

func (f *fakeAPI) FetchShop(ctx context.Context, shopID uint) (*model.Shop, error) {
	return f.shop, nil
}

func (f *fakeAPI) FetchIngredients(ctx context.Context, shopID uint) ([]*model.Ingredient, error) {
	return f.ingredients, nil
}

func (f *fakeAPI) CreateOrder(ctx context.Context, req *client.CreateOrderRequest) (*client.CreateOrderResponse, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &client.CreateOrderResponse{OrderID: "41", Status: model.PaymentPending}, nil
}

func (f *fakeAPI) GetPaymentStatus(ctx context.Context, orderID string) (model.PaymentStatus, error) {
	if len(f.statusSeq) > 0 {
		i := f.statusCalls
		if i >= len(f.statusSeq) {
			i = len(f.statusSeq) - 1
		}
		f.statusCalls++
		return f.statusSeq[i], nil
	}
	return f.status, nil
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		post: &model.MarketplacePost{
			ID:     12,
			ShopID: 3,
			Sizes: []model.CakeSize{
				{ID: 1, Size: "25cm", Price: 240000},
				{ID: 2, Size: "30cm", Price: 300000},
			},
		},
		shop: &model.Shop{ID: 3, RequiredTime: 24},
		ingredients: []*model.Ingredient{
			{ID: 1, Name: "Chocolate chips", Price: 30000},
			{ID: 2, Name: "Fresh strawberry", Price: 60000},
		},
		status: model.PaymentPending,
	}
}

func doJSON(t *testing.T, h echo.HandlerFunc, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var payload string
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		payload = string(b)
	}

	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestQuote_Breakdown(t *testing.T) {
	h := NewOrderHandler(newFakeAPI(), nil, testPoll)

	rec := doJSON(t, h.Quote, http.MethodPost, "/api/orders/quote", &dto.QuoteRequest{
		MarketplacePostID: 12,
		Size:              "30cm",
		Quantity:          2,
		Toppings: []dto.ToppingInput{
			{IngredientID: 1, Quantity: 1},
			{IngredientID: 2, Quantity: 3},
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.QuoteResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(600000), resp.BaseCakeSubtotal)
	assert.Equal(t, int64(210000), resp.ToppingsSubtotal)
	assert.Equal(t, int64(810000), resp.TotalPrice)
}

func TestQuote_UnknownToppingIgnored(t *testing.T) {
	h := NewOrderHandler(newFakeAPI(), nil, testPoll)

	rec := doJSON(t, h.Quote, http.MethodPost, "/api/orders/quote", &dto.QuoteRequest{
		MarketplacePostID: 12,
		Size:              "25cm",
		Quantity:          1,
		Toppings: []dto.ToppingInput{
			{IngredientID: 999, Quantity: 5},
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.QuoteResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(240000), resp.TotalPrice)
}

func TestSubmit_Success(t *testing.T) {
	api := newFakeAPI()
	h := NewOrderHandler(api, service.NewOrderService(api, 7), testPoll)

	rec := doJSON(t, h.Submit, http.MethodPost, "/api/orders", &dto.SubmitOrderRequest{
		MarketplacePostID: 12,
		Size:              "30cm",
		Quantity:          2,
		DeliveryTime:      time.Now().Add(48 * time.Hour),
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.SubmitOrderResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "41", resp.OrderID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, int64(600000), resp.TotalPrice)
}

func TestSubmit_InsufficientBalance(t *testing.T) {
	api := newFakeAPI()
	api.createErr = fmt.Errorf("backend error 402: %w", client.ErrInsufficientBalance)
	h := NewOrderHandler(api, service.NewOrderService(api, 7), testPoll)

	rec := doJSON(t, h.Submit, http.MethodPost, "/api/orders", &dto.SubmitOrderRequest{
		MarketplacePostID: 12,
		Size:              "30cm",
		Quantity:          1,
		DeliveryTime:      time.Now().Add(48 * time.Hour),
	})

	require.Equal(t, http.StatusPaymentRequired, rec.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Message)
}

func TestSubmit_DeliveryTooSoon(t *testing.T) {
	api := newFakeAPI()
	h := NewOrderHandler(api, service.NewOrderService(api, 7), testPoll)

	rec := doJSON(t, h.Submit, http.MethodPost, "/api/orders", &dto.SubmitOrderRequest{
		MarketplacePostID: 12,
		Size:              "30cm",
		Quantity:          1,
		DeliveryTime:      time.Now().Add(time.Hour), // shop needs 24h
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPaymentStatus(t *testing.T) {
	api := newFakeAPI()
	api.status = model.PaymentPaid
	h := NewOrderHandler(api, nil, testPoll)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/orders/41/payment-status", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("orderID")
	c.SetParamValues("41")

	require.NoError(t, h.PaymentStatus(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "paid", resp["status"])
}

func TestWatchPaymentStatus_WaitsForTerminal(t *testing.T) {
	api := newFakeAPI()
	api.statusSeq = []model.PaymentStatus{
		model.PaymentPending,
		model.PaymentPending,
		model.PaymentPaid,
	}
	h := NewOrderHandler(api, nil, testPoll)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/orders/41/payment-status/watch", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("orderID")
	c.SetParamValues("41")

	require.NoError(t, h.WatchPaymentStatus(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "paid", resp["status"])
	assert.GreaterOrEqual(t, api.statusCalls, 3)
}
