package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Snapshot is the row a cart snapshot is stored in.
type Snapshot struct {
	Key       string `gorm:"column:cart_key;primaryKey;size:128"`
	Items     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (Snapshot) TableName() string { return "cart_snapshots" }

// GormStorage keeps snapshots in a SQL table, one row per key.
type GormStorage struct {
	db *gorm.DB
}

func NewGormStorage(db *gorm.DB) *GormStorage {
	return &GormStorage{db: db}
}

// Migrate creates or updates the snapshot table.
func (g *GormStorage) Migrate() error {
	return g.db.AutoMigrate(&Snapshot{})
}

func (g *GormStorage) Load(ctx context.Context, key string) ([]byte, error) {
	var snap Snapshot
	err := g.db.WithContext(ctx).Where("cart_key = ?", key).First(&snap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("cart: load snapshot: %w", err)
	}
	return []byte(snap.Items), nil
}

func (g *GormStorage) Save(ctx context.Context, key string, data []byte) error {
	snap := Snapshot{Key: key, Items: string(data), UpdatedAt: time.Now()}
	err := g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cart_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"items", "updated_at"}),
	}).Create(&snap).Error
	if err != nil {
		return fmt.Errorf("cart: save snapshot: %w", err)
	}
	return nil
}
