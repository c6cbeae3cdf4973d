package dto

import "time"

type ToppingInput struct {
	IngredientID uint `json:"ingredient_id"`
	Quantity     int  `json:"quantity"`
}

// QuoteRequest asks for a price breakdown without creating anything.
type QuoteRequest struct {
	MarketplacePostID uint           `json:"marketplace_post_id"`
	Size              string         `json:"size"`
	Quantity          int            `json:"quantity"`
	Toppings          []ToppingInput `json:"toppings"`
}

type QuoteResponse struct {
	BaseCakeSubtotal int64 `json:"base_cake_subtotal"`
	ToppingsSubtotal int64 `json:"toppings_subtotal"`
	TotalPrice       int64 `json:"total_price"`
}

type SubmitOrderRequest struct {
	MarketplacePostID   uint           `json:"marketplace_post_id"`
	Size                string         `json:"size"`
	Quantity            int            `json:"quantity"`
	Toppings            []ToppingInput `json:"toppings"`
	SpecialInstructions string         `json:"special_instructions"`
	DeliveryTime        time.Time      `json:"delivery_time"`
}

type SubmitOrderResponse struct {
	OrderID    string `json:"order_id"`
	Status     string `json:"status"`
	TotalPrice int64  `json:"total_price"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

type AddCartItemRequest struct {
	ShopID            uint   `json:"shop_id"`
	MarketplacePostID uint   `json:"marketplace_post_id"`
	Title             string `json:"title"`
	Size              string `json:"size"`
	Quantity          int    `json:"quantity"`
	UnitPrice         int64  `json:"unit_price"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type TopUpRequest struct {
	Amount int64 `json:"amount"`
}
