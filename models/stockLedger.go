package models

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/momoa-tech/hardware_backend/config"
	"github.com/momoa-tech/hardware_backend/utils"
	"gorm.io/gorm"
)

// StockMovement is the append-only audit trail of every stock mutation.
// Quantity is the signed delta applied to the product's counter.
type StockMovement struct {
	ID            string             `gorm:"primaryKey;size:64" json:"id"`
	ProductId     string             `gorm:"index;not null;size:64" json:"product_id"`
	Quantity      int                `gorm:"not null" json:"quantity"`
	ReferenceType StockReferenceType `gorm:"size:50;not null" json:"reference_type"`
	ReferenceId   string             `gorm:"index;size:64" json:"reference_id"`
	Note          string             `gorm:"size:255" json:"note"`
	CreatedAt     time.Time          `gorm:"autoCreateTime" json:"created_at"`
}

func (m *StockMovement) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// adjustStock applies a signed delta to a product's stock counter inside the
// caller's transaction and records a movement row.
//
// The decrementing path uses a conditional UPDATE so two concurrent callers
// can never both take the last unit. A read-then-write here would race.
func adjustStock(tx *gorm.DB, productId string, delta int, refType StockReferenceType, refId string, note string) error {
	var res *gorm.DB
	if delta < 0 {
		res = tx.Model(&Product{}).
			Where("id = ? AND stock_quantity >= ?", productId, -delta).
			Update("stock_quantity", gorm.Expr("stock_quantity + ?", delta))
	} else {
		res = tx.Model(&Product{}).
			Where("id = ?", productId).
			Update("stock_quantity", gorm.Expr("stock_quantity + ?", delta))
	}
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		// Either the product is missing or the guard rejected the decrement.
		var product Product
		err := tx.Select("id", "name", "stock_quantity").First(&product, "id = ?", productId).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &utils.NotFoundError{Entity: "Product", Id: productId}
		}
		if err != nil {
			return err
		}
		return &utils.InsufficientStockError{
			ProductId:   product.ID,
			ProductName: product.Name,
			Requested:   -delta,
			Available:   product.StockQuantity,
		}
	}

	movement := StockMovement{
		ProductId:     productId,
		Quantity:      delta,
		ReferenceType: refType,
		ReferenceId:   refId,
		Note:          note,
	}
	if err := tx.Create(&movement).Error; err != nil {
		return err
	}

	// The cached catalog entry now carries a stale counter.
	if err := utils.RemoveRedis[Product](productId); err != nil {
		logger := config.GetLogger()
		config.LogError(logger, "models", "adjustStock", "cache invalidate", productId, err)
	}

	return nil
}

// reserveStock commits qty units of a product to a transaction.
func reserveStock(tx *gorm.DB, productId string, qty int, refType StockReferenceType, refId string) error {
	return adjustStock(tx, productId, -qty, refType, refId, "")
}

// releaseStock undoes a reservation. It only fails on missing products or
// database errors, never on quantity.
func releaseStock(tx *gorm.DB, productId string, qty int, refType StockReferenceType, refId string) error {
	return adjustStock(tx, productId, qty, refType, refId, "")
}

// AdjustStock applies a manual correction (stocktake, breakage, goods
// received) in its own transaction.
func AdjustStock(ctx context.Context, productId string, delta int, note string) (*Product, error) {
	db := config.GetDB()

	if delta == 0 {
		return nil, &utils.ValidationError{Field: "delta", Reason: "must not be zero"}
	}

	tx := db.WithContext(ctx).Begin()
	if err := adjustStock(tx, productId, delta, StockRefManualAdjust, "", note); err != nil {
		tx.Rollback()
		return nil, err
	}

	product, err := utils.FetchModelTx[Product](tx, productId)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return product, nil
}

// GetStockMovements returns a product's movement history, newest first.
func GetStockMovements(ctx context.Context, productId string) ([]*StockMovement, error) {
	db := config.GetDB()

	if err := utils.ValidateResourceId[Product](ctx, productId); err != nil {
		return nil, &utils.NotFoundError{Entity: "Product", Id: productId}
	}

	var movements []*StockMovement
	err := db.WithContext(ctx).
		Where("product_id = ?", productId).
		Order("created_at DESC").
		Find(&movements).Error
	if err != nil {
		return nil, err
	}
	return movements, nil
}
