package models

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
)

var orderStatuses = map[OrderStatus]bool{
	OrderStatusPending:    true,
	OrderStatusConfirmed:  true,
	OrderStatusProcessing: true,
	OrderStatusShipped:    true,
	OrderStatusDelivered:  true,
	OrderStatusCancelled:  true,
	OrderStatusRefunded:   true,
}

func (s OrderStatus) Valid() bool {
	return orderStatuses[s]
}

type PaymentMethod string

const (
	PaymentMethodCashOnDelivery PaymentMethod = "cash_on_delivery"
	PaymentMethodMobileMoney    PaymentMethod = "mobile_money"
	PaymentMethodBankTransfer   PaymentMethod = "bank_transfer"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCashOnDelivery, PaymentMethodMobileMoney, PaymentMethodBankTransfer:
		return true
	}
	return false
}

// SalePaymentMethod is the point-of-sale tender set, distinct from the
// e-commerce order methods above.
type SalePaymentMethod string

const (
	SalePaymentMethodCash         SalePaymentMethod = "CASH"
	SalePaymentMethodCard         SalePaymentMethod = "CARD"
	SalePaymentMethodMobileMoney  SalePaymentMethod = "MOBILE_MONEY"
	SalePaymentMethodBankTransfer SalePaymentMethod = "BANK_TRANSFER"
)

func (m SalePaymentMethod) Valid() bool {
	switch m {
	case SalePaymentMethodCash, SalePaymentMethodCard, SalePaymentMethodMobileMoney, SalePaymentMethodBankTransfer:
		return true
	}
	return false
}

type PaymentTiming string

const (
	PaymentTimingPayNow        PaymentTiming = "pay_now"
	PaymentTimingPayOnDelivery PaymentTiming = "pay_on_delivery"
)

type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusUnpaid  PaymentStatus = "UNPAID"
	PaymentStatusPartial PaymentStatus = "PARTIAL"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPaid, PaymentStatusUnpaid, PaymentStatusPartial:
		return true
	}
	return false
}

type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether the invoice can no longer be modified.
func (s InvoiceStatus) Terminal() bool {
	return s == InvoiceStatusPaid || s == InvoiceStatusCancelled
}

type PackType string

const (
	PackTypePiece PackType = "Piece"
	PackTypeDozen PackType = "Dozen"
)

// StockReferenceType tags a stock movement with the operation that caused it.
type StockReferenceType string

const (
	StockRefOrderCreate  StockReferenceType = "order_create"
	StockRefOrderCancel  StockReferenceType = "order_cancel"
	StockRefOrderDelete  StockReferenceType = "order_delete"
	StockRefSaleCreate   StockReferenceType = "sale_create"
	StockRefManualAdjust StockReferenceType = "manual_adjust"
)
