package models

import (
	"github.com/momoa-tech/hardware_backend/config"
	"github.com/shopspring/decimal"
)

// PricingPolicy carries the knobs the pricer needs. Kept as an explicit
// value so totals are reproducible from stored line items alone.
type PricingPolicy struct {
	TaxRate               decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal
}

func DefaultPricingPolicy() PricingPolicy {
	return PricingPolicy{
		TaxRate:               config.OrderTaxRate(),
		FreeShippingThreshold: config.FreeShippingThreshold(),
		FlatShippingFee:       config.FlatShippingFee(),
	}
}

// PricedLine is one (unit rate, quantity) pair with its computed line total.
type PricedLine struct {
	UnitRate  decimal.Decimal
	Qty       int
	LineTotal decimal.Decimal
}

// PriceSummary is the aggregate result of pricing a set of lines.
type PriceSummary struct {
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	ShippingAmount decimal.Decimal
	Discount       decimal.Decimal
	TotalAmount    decimal.Decimal
}

// LineTotal computes unit rate times quantity.
func LineTotal(unitRate decimal.Decimal, qty int) decimal.Decimal {
	return unitRate.Mul(decimal.NewFromInt(int64(qty)))
}

// PriceLines prices an order-shaped document: subtotal, tax, shipping by
// threshold, minus discount, floored at zero. Pure function, every engine
// that stores totals must derive them through here.
func PriceLines(lines []PricedLine, discount decimal.Decimal, policy PricingPolicy) PriceSummary {
	var subtotal decimal.Decimal
	for i := range lines {
		lines[i].LineTotal = LineTotal(lines[i].UnitRate, lines[i].Qty)
		subtotal = subtotal.Add(lines[i].LineTotal)
	}

	taxAmount := subtotal.Mul(policy.TaxRate)

	var shippingAmount decimal.Decimal
	if subtotal.LessThan(policy.FreeShippingThreshold) {
		shippingAmount = policy.FlatShippingFee
	}

	total := subtotal.Add(taxAmount).Add(shippingAmount).Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return PriceSummary{
		Subtotal:       subtotal,
		TaxAmount:      taxAmount,
		ShippingAmount: shippingAmount,
		Discount:       discount,
		TotalAmount:    total,
	}
}

// PriceSaleLines prices a point-of-sale transaction. In-store sales carry no
// tax or shipping, only a flat discount, and never go negative.
func PriceSaleLines(lines []PricedLine, discount decimal.Decimal) PriceSummary {
	var subtotal decimal.Decimal
	for i := range lines {
		lines[i].LineTotal = LineTotal(lines[i].UnitRate, lines[i].Qty)
		subtotal = subtotal.Add(lines[i].LineTotal)
	}

	total := subtotal.Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return PriceSummary{
		Subtotal:    subtotal,
		Discount:    discount,
		TotalAmount: total,
	}
}
