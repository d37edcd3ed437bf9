package models

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/momoa-tech/hardware_backend/config"
	"github.com/momoa-tech/hardware_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is the catalog entry plus the authoritative available-stock
// counter. Catalog management lives elsewhere; the engines here only read
// catalog fields and mutate StockQuantity through the guarded ledger
// primitives in stockLedger.go.
type Product struct {
	ID            string          `gorm:"primaryKey;size:64" json:"product_id"`
	Name          string          `gorm:"size:255;not null" json:"name" binding:"required"`
	Description   string          `gorm:"type:text" json:"description"`
	Category      string          `gorm:"size:255" json:"category"`
	ImageUrl      string          `gorm:"size:512" json:"image_url"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"unit_price"`
	StockQuantity int             `gorm:"not null;default:0" json:"stock_quantity"`
	MinimumStock  int             `gorm:"default:0" json:"minimum_stock"`
	ExpiryDate    *time.Time      `json:"expiry_date"`
	IsActive      *bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type NewProduct struct {
	Name          string          `json:"name" binding:"required"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	ImageUrl      string          `json:"image_url"`
	UnitPrice     decimal.Decimal `json:"unit_price" binding:"required"`
	StockQuantity int             `json:"stock_quantity"`
	MinimumStock  int             `json:"minimum_stock"`
	ExpiryDate    *time.Time      `json:"expiry_date"`
}

func CreateProduct(ctx context.Context, input *NewProduct) (*Product, error) {
	db := config.GetDB()

	if input.StockQuantity < 0 {
		return nil, &utils.ValidationError{Field: "stock_quantity", Reason: "must not be negative"}
	}

	product := Product{
		Name:          input.Name,
		Description:   input.Description,
		Category:      input.Category,
		ImageUrl:      input.ImageUrl,
		UnitPrice:     input.UnitPrice,
		StockQuantity: input.StockQuantity,
		MinimumStock:  input.MinimumStock,
		ExpiryDate:    input.ExpiryDate,
	}
	if err := db.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProduct reads through the redis cache. Stock-mutating operations
// invalidate the cached entry, so a cached hit is at most one write behind
// and never used for reservation decisions.
func GetProduct(ctx context.Context, id string) (*Product, error) {
	cached, err := utils.RetrieveRedis[Product](id)
	if err == nil && cached != nil {
		return cached, nil
	}

	product, err := utils.FetchModel[Product](ctx, id)
	if err != nil {
		return nil, err
	}
	if err := utils.StoreRedis[Product](product, id); err != nil {
		logger := config.GetLogger()
		config.LogError(logger, "models", "GetProduct", "cache store", id, err)
	}
	return product, nil
}

// BelowMinimumStock lists products at or under their reorder threshold.
func BelowMinimumStock(ctx context.Context) ([]*Product, error) {
	return utils.FetchModelsWhere[Product](ctx, "stock_quantity <= minimum_stock")
}
