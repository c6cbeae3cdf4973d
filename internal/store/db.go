package store

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"cakestory-client/internal/model"
)

// InitCartDB opens (or creates) the local sqlite cart file and keeps
// its schema current.
func InitCartDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open cart db: %w", err)
	}

	if err := db.AutoMigrate(&model.CartItem{}); err != nil {
		return nil, fmt.Errorf("migrate cart db: %w", err)
	}

	return db, nil
}
