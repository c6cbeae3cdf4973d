package model

import "time"

// CartItem is a locally persisted cart line. The cart lives on the
// client in a sqlite file, the backend only ever sees a finished order.
type CartItem struct {
	ID                string `gorm:"primaryKey;size:36;not null"` // uuid
	ShopID            uint   `gorm:"index;not null"`
	MarketplacePostID uint   `gorm:"index;not null"`
	Title             string `gorm:"size:255"`
	Size              string `gorm:"size:32;not null"`
	Quantity          int    `gorm:"not null"`
	UnitPrice         int64  `gorm:"not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
