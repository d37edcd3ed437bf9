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

type Order struct {
	ID                string           `gorm:"primaryKey;size:64" json:"order_id"`
	OrderNumber       string           `gorm:"size:50;uniqueIndex;not null" json:"order_number"`
	UserId            string           `gorm:"index;size:64;not null" json:"user_id"`
	Status            OrderStatus      `gorm:"size:20;not null;default:pending" json:"status"`
	Subtotal          decimal.Decimal  `gorm:"type:decimal(20,4);default:0" json:"subtotal"`
	TaxAmount         decimal.Decimal  `gorm:"type:decimal(20,4);default:0" json:"tax_amount"`
	ShippingAmount    decimal.Decimal  `gorm:"type:decimal(20,4);default:0" json:"shipping_amount"`
	Discount          decimal.Decimal  `gorm:"type:decimal(20,4);default:0" json:"discount"`
	TotalAmount       decimal.Decimal  `gorm:"type:decimal(20,4);default:0" json:"total_amount"`
	DeliveryAddress   string           `gorm:"type:text" json:"delivery_address"`
	DeliveryPhone     string           `gorm:"size:20" json:"delivery_phone"`
	DeliveryNotes     string           `gorm:"type:text" json:"delivery_notes"`
	TrackingNumber    string           `gorm:"size:100" json:"tracking_number"`
	PaymentMethod     PaymentMethod    `gorm:"size:50;not null;default:cash_on_delivery" json:"payment_method"`
	PaymentTiming     PaymentTiming    `gorm:"size:20;not null;default:pay_on_delivery" json:"payment_timing"`
	PaymentStatus     string           `gorm:"size:20;default:pending" json:"payment_status"`
	PartialAmount     *decimal.Decimal `gorm:"type:decimal(20,4)" json:"partial_amount"`
	MobileMoneyNumber string           `gorm:"size:20" json:"mobile_money_number"`
	StockRestored     *bool            `gorm:"not null;default:false" json:"stock_restored"`
	CreatedAt         time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
	Lines             []OrderLine      `gorm:"foreignKey:OrderId" json:"lines"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// OrderLine snapshots the product at order time so history survives catalog
// edits and deletions.
type OrderLine struct {
	ID                 string          `gorm:"primaryKey;size:64" json:"order_line_id"`
	OrderId            string          `gorm:"index;size:64;not null" json:"order_id"`
	ProductId          *string         `gorm:"index;size:64" json:"product_id"`
	ProductName        string          `gorm:"size:255;not null" json:"product_name"`
	ProductDescription string          `gorm:"type:text" json:"product_description"`
	ProductImage       string          `gorm:"size:512" json:"product_image"`
	Category           string          `gorm:"size:255" json:"category"`
	PackType           PackType        `gorm:"size:10;default:Piece" json:"pack_type"`
	Quantity           int             `gorm:"not null" json:"quantity"`
	UnitPrice          decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"unit_price"`
	TotalPrice         decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"total_price"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (l *OrderLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

type NewOrder struct {
	UserId            string           `json:"user_id"`
	Lines             []NewOrderLine   `json:"lines" binding:"required,dive"`
	DeliveryAddress   string           `json:"delivery_address" binding:"required"`
	DeliveryPhone     string           `json:"delivery_phone" binding:"required"`
	DeliveryNotes     string           `json:"delivery_notes"`
	PaymentMethod     PaymentMethod    `json:"payment_method"`
	PaymentTiming     PaymentTiming    `json:"payment_timing"`
	PartialAmount     *decimal.Decimal `json:"partial_amount"`
	MobileMoneyNumber string           `json:"mobile_money_number"`
}

type NewOrderLine struct {
	ProductId string   `json:"product_id" binding:"required"`
	Quantity  int      `json:"quantity" binding:"required"`
	PackType  PackType `json:"pack_type"`
}

func (input *NewOrder) validate(ctx context.Context) error {
	if input.UserId == "" {
		if userId, ok := utils.GetUserIdFromContext(ctx); ok {
			input.UserId = userId
		}
	}
	if input.UserId == "" {
		return &utils.ValidationError{Field: "user_id", Reason: "is required"}
	}
	if len(input.Lines) == 0 {
		return &utils.ValidationError{Field: "lines", Reason: "at least one line is required"}
	}
	for _, line := range input.Lines {
		if line.Quantity <= 0 {
			return &utils.ValidationError{Field: "quantity", Reason: "must be greater than zero"}
		}
	}
	if input.PaymentMethod == "" {
		input.PaymentMethod = PaymentMethodCashOnDelivery
	}
	if !input.PaymentMethod.Valid() {
		return &utils.ValidationError{Field: "payment_method", Reason: "unknown payment method"}
	}
	if input.PaymentTiming == "" {
		input.PaymentTiming = PaymentTimingPayOnDelivery
	}
	return nil
}

// CreateOrder reserves stock for every requested line, prices the order and
// persists it as pending, all inside one transaction. Any reservation
// failure rolls the whole thing back.
func CreateOrder(ctx context.Context, input *NewOrder) (*Order, error) {
	db := config.GetDB()

	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	orderId := uuid.NewString()

	tx := db.WithContext(ctx).Begin()

	var orderLines []OrderLine
	var pricedLines []PricedLine
	for _, line := range input.Lines {
		product, err := utils.FetchModelTx[Product](tx, line.ProductId)
		if err != nil {
			tx.Rollback()
			return nil, err
		}

		if err := reserveStock(tx, product.ID, line.Quantity, StockRefOrderCreate, orderId); err != nil {
			tx.Rollback()
			return nil, err
		}

		packType := line.PackType
		if packType == "" {
			packType = PackTypePiece
		}
		productId := product.ID
		orderLines = append(orderLines, OrderLine{
			OrderId:            orderId,
			ProductId:          &productId,
			ProductName:        product.Name,
			ProductDescription: product.Description,
			ProductImage:       product.ImageUrl,
			Category:           product.Category,
			PackType:           packType,
			Quantity:           line.Quantity,
			UnitPrice:          product.UnitPrice,
			TotalPrice:         LineTotal(product.UnitPrice, line.Quantity),
		})
		pricedLines = append(pricedLines, PricedLine{UnitRate: product.UnitPrice, Qty: line.Quantity})
	}

	summary := PriceLines(pricedLines, decimal.Zero, DefaultPricingPolicy())

	orderNumber, err := nextDocumentNumber(tx, SequenceScopeOrder, time.Now())
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	order := Order{
		ID:                orderId,
		OrderNumber:       orderNumber,
		UserId:            input.UserId,
		Status:            OrderStatusPending,
		Subtotal:          summary.Subtotal,
		TaxAmount:         summary.TaxAmount,
		ShippingAmount:    summary.ShippingAmount,
		Discount:          summary.Discount,
		TotalAmount:       summary.TotalAmount,
		DeliveryAddress:   input.DeliveryAddress,
		DeliveryPhone:     input.DeliveryPhone,
		DeliveryNotes:     input.DeliveryNotes,
		PaymentMethod:     input.PaymentMethod,
		PaymentTiming:     input.PaymentTiming,
		PartialAmount:     input.PartialAmount,
		MobileMoneyNumber: input.MobileMoneyNumber,
		Lines:             orderLines,
	}
	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func GetOrder(ctx context.Context, id string) (*Order, error) {
	return utils.FetchModel[Order](ctx, id, "Lines")
}

func ListOrdersByUser(ctx context.Context, userId string) ([]*Order, error) {
	db := config.GetDB()

	var orders []*Order
	err := db.WithContext(ctx).
		Preload("Lines").
		Where("user_id = ?", userId).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus moves an order along the fulfilment pipeline. It has no
// stock effect; stock was committed at creation. Cancellation must go
// through CancelOrder so the compensating release runs.
func UpdateOrderStatus(ctx context.Context, id string, status OrderStatus, trackingNumber string) (*Order, error) {
	db := config.GetDB()

	if !status.Valid() {
		return nil, &utils.ValidationError{Field: "status", Reason: "unknown order status"}
	}
	if status == OrderStatusCancelled {
		return nil, &utils.ValidationError{Field: "status", Reason: "use the cancel operation to cancel an order"}
	}

	order, err := utils.FetchModel[Order](ctx, id, "Lines")
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"status": status}
	if trackingNumber != "" {
		updates["tracking_number"] = trackingNumber
		order.TrackingNumber = trackingNumber
	}
	if err := db.WithContext(ctx).Model(&Order{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	order.Status = status
	return order, nil
}

// releaseOrderStock restores every line's reservation once per order,
// guarded by the stock_restored flag so cancel followed by delete cannot
// restore twice.
func releaseOrderStock(tx *gorm.DB, order *Order, refType StockReferenceType) error {
	if order.StockRestored != nil && *order.StockRestored {
		return nil
	}
	for _, line := range order.Lines {
		if line.ProductId == nil {
			continue
		}
		if err := releaseStock(tx, *line.ProductId, line.Quantity, refType, order.ID); err != nil {
			return err
		}
	}
	restored := true
	order.StockRestored = &restored
	return tx.Model(&Order{}).Where("id = ?", order.ID).Update("stock_restored", true).Error
}

// CancelOrder transitions an order to cancelled and restores its stock.
func CancelOrder(ctx context.Context, id string) (*Order, error) {
	db := config.GetDB()

	tx := db.WithContext(ctx).Begin()

	order, err := utils.FetchModelTx[Order](tx, id, "Lines")
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	switch order.Status {
	case OrderStatusDelivered, OrderStatusCancelled, OrderStatusRefunded:
		tx.Rollback()
		return nil, &utils.InvalidStateTransitionError{From: string(order.Status), To: string(OrderStatusCancelled)}
	}

	if err := releaseOrderStock(tx, order, StockRefOrderCancel); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Model(&Order{}).Where("id = ?", id).Update("status", OrderStatusCancelled).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	order.Status = OrderStatusCancelled

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return order, nil
}

// DeleteOrder removes an order and its lines permanently, restoring stock
// first unless a prior cancellation already did.
func DeleteOrder(ctx context.Context, id string) error {
	db := config.GetDB()

	tx := db.WithContext(ctx).Begin()

	order, err := utils.FetchModelTx[Order](tx, id, "Lines")
	if err != nil {
		tx.Rollback()
		return err
	}

	switch order.Status {
	case OrderStatusDelivered, OrderStatusShipped:
		tx.Rollback()
		return &utils.InvalidStateTransitionError{From: string(order.Status), To: "deleted"}
	}

	if err := releaseOrderStock(tx, order, StockRefOrderDelete); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Where("order_id = ?", id).Delete(&OrderLine{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&Order{}, "id = ?", id).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
