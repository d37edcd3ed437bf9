package models

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/momoa-tech/hardware_backend/config"
	"github.com/momoa-tech/hardware_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrVoidSaleNotSupported: sales have no compensating restore path. An order
// can be cancelled because delivery is pending; a completed counter sale has
// already handed the goods over. Re-stocking a returned sale is a manual
// stock adjustment, not a void.
var ErrVoidSaleNotSupported = errors.New("voiding a sale is not supported; use a manual stock adjustment for returns")

type Sale struct {
	ID              string            `gorm:"primaryKey;size:64" json:"sale_id"`
	CustomerId      *string           `gorm:"index;size:64" json:"customer_id"`
	CustomerName    string            `gorm:"size:255" json:"customer_name"`
	CustomerPhone   string            `gorm:"size:20" json:"customer_phone"`
	Subtotal        decimal.Decimal   `gorm:"type:decimal(20,4);default:0" json:"subtotal"`
	Discount        decimal.Decimal   `gorm:"type:decimal(20,4);default:0" json:"discount"`
	TotalAmount     decimal.Decimal   `gorm:"type:decimal(20,4);default:0" json:"total_amount"`
	PaymentMethod   SalePaymentMethod `gorm:"size:20;not null;default:CASH" json:"payment_method"`
	PaymentStatus   PaymentStatus     `gorm:"size:20;not null;default:PAID" json:"payment_status"`
	SalespersonId   string            `gorm:"index;size:64" json:"salesperson_id"`
	SalespersonName string            `gorm:"size:255" json:"salesperson_name"`
	SaleDate        time.Time         `gorm:"autoCreateTime" json:"sale_date"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
	Lines           []SaleLine        `gorm:"foreignKey:SaleId" json:"lines"`
}

func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

type SaleLine struct {
	ID          string          `gorm:"primaryKey;size:64" json:"sale_line_id"`
	SaleId      string          `gorm:"index;size:64;not null" json:"sale_id"`
	ProductId   *string         `gorm:"index;size:64" json:"product_id"`
	ProductName string          `gorm:"size:255;not null" json:"product_name"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"unit_price"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"total_price"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (l *SaleLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

type NewSale struct {
	CustomerId    *string           `json:"customer_id"`
	CustomerName  string            `json:"customer_name"`
	CustomerPhone string            `json:"customer_phone"`
	Lines         []NewSaleLine     `json:"lines" binding:"required,dive"`
	Discount      decimal.Decimal   `json:"discount"`
	PaymentMethod SalePaymentMethod `json:"payment_method"`
	PaymentStatus PaymentStatus     `json:"payment_status"`
}

type NewSaleLine struct {
	ProductId string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

func (input *NewSale) validate() error {
	if len(input.Lines) == 0 {
		return &utils.ValidationError{Field: "lines", Reason: "at least one line is required"}
	}
	for _, line := range input.Lines {
		if line.Quantity <= 0 {
			return &utils.ValidationError{Field: "quantity", Reason: "must be greater than zero"}
		}
	}
	if input.Discount.IsNegative() {
		return &utils.ValidationError{Field: "discount", Reason: "must not be negative"}
	}
	if input.PaymentMethod == "" {
		input.PaymentMethod = SalePaymentMethodCash
	}
	if !input.PaymentMethod.Valid() {
		return &utils.ValidationError{Field: "payment_method", Reason: "unknown payment method"}
	}
	if input.PaymentStatus == "" {
		input.PaymentStatus = PaymentStatusPaid
	}
	if !input.PaymentStatus.Valid() {
		return &utils.ValidationError{Field: "payment_status", Reason: "unknown payment status"}
	}
	return nil
}

// CreateSale records a point-of-sale transaction. Lines are reserved in
// submission order; the first insufficient product aborts the whole sale and
// earlier deductions roll back with the transaction.
func CreateSale(ctx context.Context, input *NewSale) (*Sale, error) {
	db := config.GetDB()

	if err := input.validate(); err != nil {
		return nil, err
	}

	saleId := uuid.NewString()

	tx := db.WithContext(ctx).Begin()

	var saleLines []SaleLine
	var pricedLines []PricedLine
	for _, line := range input.Lines {
		product, err := utils.FetchModelTx[Product](tx, line.ProductId)
		if err != nil {
			tx.Rollback()
			return nil, err
		}

		if err := reserveStock(tx, product.ID, line.Quantity, StockRefSaleCreate, saleId); err != nil {
			tx.Rollback()
			return nil, err
		}

		productId := product.ID
		saleLines = append(saleLines, SaleLine{
			SaleId:      saleId,
			ProductId:   &productId,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   product.UnitPrice,
			TotalPrice:  LineTotal(product.UnitPrice, line.Quantity),
		})
		pricedLines = append(pricedLines, PricedLine{UnitRate: product.UnitPrice, Qty: line.Quantity})
	}

	summary := PriceSaleLines(pricedLines, input.Discount)

	salespersonId, _ := utils.GetUserIdFromContext(ctx)
	salespersonName, _ := utils.GetUserNameFromContext(ctx)

	sale := Sale{
		ID:              saleId,
		CustomerId:      input.CustomerId,
		CustomerName:    input.CustomerName,
		CustomerPhone:   input.CustomerPhone,
		Subtotal:        summary.Subtotal,
		Discount:        summary.Discount,
		TotalAmount:     summary.TotalAmount,
		PaymentMethod:   input.PaymentMethod,
		PaymentStatus:   input.PaymentStatus,
		SalespersonId:   salespersonId,
		SalespersonName: salespersonName,
		Lines:           saleLines,
	}
	if err := tx.Create(&sale).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

func GetSale(ctx context.Context, id string) (*Sale, error) {
	return utils.FetchModel[Sale](ctx, id, "Lines")
}

func ListSales(ctx context.Context) ([]*Sale, error) {
	db := config.GetDB()

	var sales []*Sale
	err := db.WithContext(ctx).
		Preload("Lines").
		Order("sale_date DESC").
		Find(&sales).Error
	if err != nil {
		return nil, err
	}
	return sales, nil
}

// UpdateSalePaymentStatus records settlement of an outstanding sale. It is
// informational only and never gates stock.
func UpdateSalePaymentStatus(ctx context.Context, id string, status PaymentStatus) (*Sale, error) {
	db := config.GetDB()

	if !status.Valid() {
		return nil, &utils.ValidationError{Field: "payment_status", Reason: "unknown payment status"}
	}

	sale, err := utils.FetchModel[Sale](ctx, id, "Lines")
	if err != nil {
		return nil, err
	}

	if err := db.WithContext(ctx).Model(&Sale{}).Where("id = ?", id).Update("payment_status", status).Error; err != nil {
		return nil, err
	}
	sale.PaymentStatus = status
	return sale, nil
}

// VoidSale always fails. See ErrVoidSaleNotSupported.
func VoidSale(ctx context.Context, id string) error {
	if err := utils.ValidateResourceId[Sale](ctx, id); err != nil {
		return &utils.NotFoundError{Entity: "Sale", Id: id}
	}
	return ErrVoidSaleNotSupported
}
