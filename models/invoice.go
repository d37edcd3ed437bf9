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

// Invoice is a one-to-one derived view of an Order. Totals and customer
// fields are stored independently, not live-computed from the order.
type Invoice struct {
	ID              string          `gorm:"primaryKey;size:64" json:"invoice_id"`
	InvoiceNumber   string          `gorm:"size:50;uniqueIndex;not null" json:"invoice_number"`
	OrderId         string          `gorm:"uniqueIndex;size:64;not null" json:"order_id"`
	Status          InvoiceStatus   `gorm:"size:20;not null;default:draft" json:"status"`
	InvoiceDate     time.Time       `gorm:"not null" json:"invoice_date"`
	DueDate         *time.Time      `json:"due_date"`
	Notes           string          `gorm:"type:text" json:"notes"`
	CustomerId      string          `gorm:"index;size:64" json:"customer_id"`
	DeliveryAddress string          `gorm:"type:text" json:"delivery_address"`
	DeliveryPhone   string          `gorm:"size:20" json:"delivery_phone"`
	PaymentMethod   PaymentMethod   `gorm:"size:50" json:"payment_method"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"subtotal"`
	TaxAmount       decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"tax_amount"`
	ShippingAmount  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"shipping_amount"`
	Discount        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"discount"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_amount"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	Lines           []InvoiceLine   `gorm:"foreignKey:InvoiceId" json:"lines"`
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

type InvoiceLine struct {
	ID                 string          `gorm:"primaryKey;size:64" json:"invoice_line_id"`
	InvoiceId          string          `gorm:"index;size:64;not null" json:"invoice_id"`
	ProductId          *string         `gorm:"index;size:64" json:"product_id"`
	ProductName        string          `gorm:"size:255;not null" json:"product_name"`
	ProductDescription string          `gorm:"type:text" json:"product_description"`
	Category           string          `gorm:"size:255" json:"category"`
	PackType           PackType        `gorm:"size:10;default:Piece" json:"pack_type"`
	Quantity           int             `gorm:"not null" json:"quantity"`
	UnitPrice          decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"unit_price"`
	TotalPrice         decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"total_price"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (l *InvoiceLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

type NewInvoice struct {
	InvoiceDate *time.Time `json:"invoice_date"`
	DueDate     *time.Time `json:"due_date"`
	Notes       string     `json:"notes"`
}

// CreateInvoiceFromOrder snapshots an order into a draft invoice. No stock
// effect; the order already holds the reservation.
func CreateInvoiceFromOrder(ctx context.Context, orderId string, input *NewInvoice) (*Invoice, error) {
	db := config.GetDB()

	tx := db.WithContext(ctx).Begin()

	order, err := utils.FetchModelTx[Order](tx, orderId, "Lines")
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	var existing int64
	if err := tx.Model(&Invoice{}).Where("order_id = ?", orderId).Count(&existing).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if existing > 0 {
		tx.Rollback()
		return nil, &utils.ValidationError{Field: "order_id", Reason: "order already has an invoice"}
	}

	invoiceNumber, err := nextDocumentNumber(tx, SequenceScopeInvoice, time.Now())
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	invoiceId := uuid.NewString()
	invoiceDate := time.Now()
	if input.InvoiceDate != nil {
		invoiceDate = *input.InvoiceDate
	}

	var lines []InvoiceLine
	for _, ol := range order.Lines {
		lines = append(lines, InvoiceLine{
			InvoiceId:          invoiceId,
			ProductId:          ol.ProductId,
			ProductName:        ol.ProductName,
			ProductDescription: ol.ProductDescription,
			Category:           ol.Category,
			PackType:           ol.PackType,
			Quantity:           ol.Quantity,
			UnitPrice:          ol.UnitPrice,
			TotalPrice:         ol.TotalPrice,
		})
	}

	invoice := Invoice{
		ID:              invoiceId,
		InvoiceNumber:   invoiceNumber,
		OrderId:         order.ID,
		Status:          InvoiceStatusDraft,
		InvoiceDate:     invoiceDate,
		DueDate:         input.DueDate,
		Notes:           input.Notes,
		CustomerId:      order.UserId,
		DeliveryAddress: order.DeliveryAddress,
		DeliveryPhone:   order.DeliveryPhone,
		PaymentMethod:   order.PaymentMethod,
		Subtotal:        order.Subtotal,
		TaxAmount:       order.TaxAmount,
		ShippingAmount:  order.ShippingAmount,
		Discount:        order.Discount,
		TotalAmount:     order.TotalAmount,
		Lines:           lines,
	}
	if err := tx.Create(&invoice).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func GetInvoice(ctx context.Context, id string) (*Invoice, error) {
	return utils.FetchModel[Invoice](ctx, id, "Lines")
}

type UpdateInvoiceInput struct {
	Status          *InvoiceStatus    `json:"status"`
	InvoiceDate     *time.Time        `json:"invoice_date"`
	DueDate         *time.Time        `json:"due_date"`
	Notes           *string           `json:"notes"`
	DeliveryAddress *string           `json:"delivery_address"`
	DeliveryPhone   *string           `json:"delivery_phone"`
	PaymentMethod   *PaymentMethod    `json:"payment_method"`
	Discount        *decimal.Decimal  `json:"discount"`
	Lines           *[]NewInvoiceLine `json:"lines"`
}

type NewInvoiceLine struct {
	ProductId          *string         `json:"product_id"`
	ProductName        string          `json:"product_name" binding:"required"`
	ProductDescription string          `json:"product_description"`
	Category           string          `json:"category"`
	PackType           PackType        `json:"pack_type"`
	Quantity           int             `json:"quantity" binding:"required"`
	UnitPrice          decimal.Decimal `json:"unit_price" binding:"required"`
}

// wouldChange reports whether the patch modifies anything beyond a
// same-value status write.
func (input *UpdateInvoiceInput) wouldChange(invoice *Invoice) bool {
	if input.Status != nil && *input.Status != invoice.Status {
		return true
	}
	return input.InvoiceDate != nil || input.DueDate != nil || input.Notes != nil ||
		input.DeliveryAddress != nil || input.DeliveryPhone != nil ||
		input.PaymentMethod != nil || input.Discount != nil || input.Lines != nil
}

// UpdateInvoice patches an invoice. A replacement line set rewrites the
// invoice's lines wholesale, reprices the invoice, and then propagates the
// result onto the linked order through SynchronizeOrderFromInvoice.
//
// Stock is deliberately untouched on this path even when quantities change.
// The original order's reservation stands; whether invoice edits should
// re-reserve is an open product question, so the behavior stays visible in
// one named operation instead of being buried in a generic update.
func UpdateInvoice(ctx context.Context, id string, input *UpdateInvoiceInput) (*Invoice, error) {
	db := config.GetDB()

	if input.Status != nil && !input.Status.Valid() {
		return nil, &utils.ValidationError{Field: "status", Reason: "unknown invoice status"}
	}
	if input.Discount != nil && input.Discount.IsNegative() {
		return nil, &utils.ValidationError{Field: "discount", Reason: "must not be negative"}
	}
	if input.Lines != nil {
		if len(*input.Lines) == 0 {
			return nil, &utils.ValidationError{Field: "lines", Reason: "at least one line is required"}
		}
		for _, line := range *input.Lines {
			if line.Quantity <= 0 {
				return nil, &utils.ValidationError{Field: "quantity", Reason: "must be greater than zero"}
			}
		}
	}

	tx := db.WithContext(ctx).Begin()

	invoice, err := utils.FetchModelTx[Invoice](tx, id, "Lines")
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if invoice.Status.Terminal() && input.wouldChange(invoice) {
		tx.Rollback()
		return nil, &utils.ImmutableInvoiceError{Status: string(invoice.Status)}
	}

	if input.Status != nil {
		invoice.Status = *input.Status
	}
	if input.InvoiceDate != nil {
		invoice.InvoiceDate = *input.InvoiceDate
	}
	if input.DueDate != nil {
		invoice.DueDate = input.DueDate
	}
	if input.Notes != nil {
		invoice.Notes = *input.Notes
	}
	if input.DeliveryAddress != nil {
		invoice.DeliveryAddress = *input.DeliveryAddress
	}
	if input.DeliveryPhone != nil {
		invoice.DeliveryPhone = *input.DeliveryPhone
	}
	if input.PaymentMethod != nil {
		if !input.PaymentMethod.Valid() {
			tx.Rollback()
			return nil, &utils.ValidationError{Field: "payment_method", Reason: "unknown payment method"}
		}
		invoice.PaymentMethod = *input.PaymentMethod
	}
	if input.Discount != nil {
		invoice.Discount = *input.Discount
	}

	linesReplaced := false
	if input.Lines != nil {
		linesReplaced = true

		if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&InvoiceLine{}).Error; err != nil {
			tx.Rollback()
			return nil, err
		}

		var newLines []InvoiceLine
		var pricedLines []PricedLine
		for _, line := range *input.Lines {
			packType := line.PackType
			if packType == "" {
				packType = PackTypePiece
			}
			newLines = append(newLines, InvoiceLine{
				InvoiceId:          invoice.ID,
				ProductId:          line.ProductId,
				ProductName:        line.ProductName,
				ProductDescription: line.ProductDescription,
				Category:           line.Category,
				PackType:           packType,
				Quantity:           line.Quantity,
				UnitPrice:          line.UnitPrice,
				TotalPrice:         LineTotal(line.UnitPrice, line.Quantity),
			})
			pricedLines = append(pricedLines, PricedLine{UnitRate: line.UnitPrice, Qty: line.Quantity})
		}
		if err := tx.Create(&newLines).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		invoice.Lines = newLines

		summary := PriceLines(pricedLines, invoice.Discount, DefaultPricingPolicy())
		invoice.Subtotal = summary.Subtotal
		invoice.TaxAmount = summary.TaxAmount
		invoice.ShippingAmount = summary.ShippingAmount
		invoice.TotalAmount = summary.TotalAmount
	} else if input.Discount != nil {
		// Discount changed without a new line set; reprice from stored lines.
		var pricedLines []PricedLine
		for _, line := range invoice.Lines {
			pricedLines = append(pricedLines, PricedLine{UnitRate: line.UnitPrice, Qty: line.Quantity})
		}
		summary := PriceLines(pricedLines, invoice.Discount, DefaultPricingPolicy())
		invoice.Subtotal = summary.Subtotal
		invoice.TaxAmount = summary.TaxAmount
		invoice.ShippingAmount = summary.ShippingAmount
		invoice.TotalAmount = summary.TotalAmount
	}

	if err := tx.Omit("Lines").Save(invoice).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if linesReplaced || input.Discount != nil || input.DeliveryAddress != nil ||
		input.DeliveryPhone != nil || input.PaymentMethod != nil {
		if err := synchronizeOrderFromInvoice(tx, invoice); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return invoice, nil
}

// synchronizeOrderFromInvoice rewrites the linked order so it matches the
// invoice: lines are replaced wholesale (skipping lines that no longer
// resolve to a product), totals and delivery/payment fields are overwritten.
// The stock ledger is never called here.
func synchronizeOrderFromInvoice(tx *gorm.DB, invoice *Invoice) error {
	order, err := utils.FetchModelTx[Order](tx, invoice.OrderId)
	if err != nil {
		return err
	}

	if err := tx.Where("order_id = ?", order.ID).Delete(&OrderLine{}).Error; err != nil {
		return err
	}

	var orderLines []OrderLine
	for _, line := range invoice.Lines {
		if line.ProductId == nil {
			continue
		}
		var count int64
		if err := tx.Model(&Product{}).Where("id = ?", *line.ProductId).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			continue
		}
		orderLines = append(orderLines, OrderLine{
			OrderId:            order.ID,
			ProductId:          line.ProductId,
			ProductName:        line.ProductName,
			ProductDescription: line.ProductDescription,
			Category:           line.Category,
			PackType:           line.PackType,
			Quantity:           line.Quantity,
			UnitPrice:          line.UnitPrice,
			TotalPrice:         line.TotalPrice,
		})
	}
	if len(orderLines) > 0 {
		if err := tx.Create(&orderLines).Error; err != nil {
			return err
		}
	}

	return tx.Model(&Order{}).Where("id = ?", order.ID).Updates(map[string]interface{}{
		"subtotal":         invoice.Subtotal,
		"tax_amount":       invoice.TaxAmount,
		"shipping_amount":  invoice.ShippingAmount,
		"discount":         invoice.Discount,
		"total_amount":     invoice.TotalAmount,
		"delivery_address": invoice.DeliveryAddress,
		"delivery_phone":   invoice.DeliveryPhone,
		"payment_method":   invoice.PaymentMethod,
	}).Error
}
