package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cakestory-client/internal/model"
)

type CartRepository interface {
	Add(ctx context.Context, item *model.CartItem) error
	List(ctx context.Context) ([]*model.CartItem, error)
	ListByShop(ctx context.Context, shopID uint) ([]*model.CartItem, error)
	UpdateQuantity(ctx context.Context, id string, quantity int) error
	Remove(ctx context.Context, id string) error
	Clear(ctx context.Context, shopID uint) error
}

type cartRepoImpl struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepoImpl{
		db: db,
	}
}

// Add inserts a cart line. The same post+size in the same shop merges
// into the existing line instead of creating a duplicate row.
func (r *cartRepoImpl) Add(ctx context.Context, item *model.CartItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	var existing model.CartItem
	err := r.db.WithContext(ctx).
		Where("shop_id = ? AND marketplace_post_id = ? AND size = ?",
			item.ShopID, item.MarketplacePostID, item.Size).
		First(&existing).Error

	if err == nil {
		return r.db.WithContext(ctx).Model(&model.CartItem{}).
			Where("id = ?", existing.ID).
			Updates(map[string]interface{}{
				"quantity":   gorm.Expr("quantity + ?", item.Quantity),
				"updated_at": time.Now(),
			}).Error
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(item).Error
}

func (r *cartRepoImpl) List(ctx context.Context) ([]*model.CartItem, error) {
	var items []*model.CartItem
	err := r.db.WithContext(ctx).
		Order("created_at").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *cartRepoImpl) ListByShop(ctx context.Context, shopID uint) ([]*model.CartItem, error) {
	var items []*model.CartItem
	err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("created_at").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateQuantity upserts a line's quantity; zero or less deletes the
// line, mirroring the topping-selection rule.
func (r *cartRepoImpl) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	if quantity <= 0 {
		return r.Remove(ctx, id)
	}
	return r.db.WithContext(ctx).Model(&model.CartItem{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"quantity":   quantity,
			"updated_at": time.Now(),
		}).Error
}

func (r *cartRepoImpl) Remove(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.CartItem{}).Error
}

func (r *cartRepoImpl) Clear(ctx context.Context, shopID uint) error {
	return r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Delete(&model.CartItem{}).Error
}
