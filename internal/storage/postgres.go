package storage

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogSlot is one row per slot key, payload stored as a JSON column.
// Same whole-document semantics as the Redis backend.
type CatalogSlot struct {
	Key       string         `gorm:"primaryKey;type:varchar(128)" json:"key"`
	Payload   datatypes.JSON `json:"payload"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// PostgresSlot persists catalog slots in a catalog_slots table.
type PostgresSlot struct {
	db *gorm.DB
}

func ConnectPostgres(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

func NewPostgresSlot(db *gorm.DB) (*PostgresSlot, error) {
	if err := db.AutoMigrate(&CatalogSlot{}); err != nil {
		return nil, err
	}
	return &PostgresSlot{db: db}, nil
}

func (p *PostgresSlot) Load(ctx context.Context, key string) ([]byte, error) {
	var row CatalogSlot
	err := p.db.WithContext(ctx).First(&row, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoData
	}
	if err != nil {
		return nil, err
	}
	return []byte(row.Payload), nil
}

func (p *PostgresSlot) Save(ctx context.Context, key string, payload []byte) error {
	row := CatalogSlot{Key: key, Payload: datatypes.JSON(payload), UpdatedAt: time.Now()}
	return p.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error
}
