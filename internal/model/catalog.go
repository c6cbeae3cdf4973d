package model

// CakeSize is one purchasable size variant of a marketplace post.
// Prices arrive from the backend as strings ("240000.00") and are
// normalized to whole VND on this side.
type CakeSize struct {
	ID    uint   `json:"id"`
	Size  string `json:"size"`
	Price int64  `json:"price"`
}

// Ingredient is an optional add-on (topping) sold by a shop.
type Ingredient struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// Shop carries the subset of shop data the ordering flow needs.
// RequiredTime is the preparation lead time in hours; delivery must be
// scheduled at least that far in the future.
type Shop struct {
	ID           uint   `json:"id"`
	Name         string `json:"business_name"`
	RequiredTime int    `json:"required_time"`
}

// MarketplacePost is a published cake listing with its size variants.
type MarketplacePost struct {
	ID     uint       `json:"id"`
	ShopID uint       `json:"shop_id"`
	Title  string     `json:"title"`
	Sizes  []CakeSize `json:"sizes"`
}
