package models_test

import (
	"testing"

	"github.com/momoa-tech/hardware_backend/models"
	"github.com/shopspring/decimal"
)

func testPolicy() models.PricingPolicy {
	return models.PricingPolicy{
		TaxRate:               decimal.RequireFromString("0.18"),
		FreeShippingThreshold: decimal.NewFromInt(100000),
		FlatShippingFee:       decimal.NewFromInt(5000),
	}
}

func TestPriceLinesBelowFreeShippingThreshold(t *testing.T) {
	lines := []models.PricedLine{
		{UnitRate: decimal.NewFromInt(1200), Qty: 2},
		{UnitRate: decimal.NewFromInt(25000), Qty: 1},
	}

	summary := models.PriceLines(lines, decimal.Zero, testPolicy())

	if !summary.Subtotal.Equal(decimal.NewFromInt(27400)) {
		t.Errorf("subtotal = %s, want 27400", summary.Subtotal)
	}
	if !summary.TaxAmount.Equal(decimal.NewFromInt(4932)) {
		t.Errorf("tax = %s, want 4932", summary.TaxAmount)
	}
	if !summary.ShippingAmount.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("shipping = %s, want 5000", summary.ShippingAmount)
	}
	if !summary.TotalAmount.Equal(decimal.NewFromInt(37332)) {
		t.Errorf("total = %s, want 37332", summary.TotalAmount)
	}
}

func TestPriceLinesFreeShippingAtThreshold(t *testing.T) {
	lines := []models.PricedLine{
		{UnitRate: decimal.NewFromInt(100000), Qty: 1},
	}

	summary := models.PriceLines(lines, decimal.Zero, testPolicy())

	if !summary.ShippingAmount.IsZero() {
		t.Errorf("shipping = %s, want 0 at threshold", summary.ShippingAmount)
	}
}

func TestPriceLinesTotalFloorsAtZero(t *testing.T) {
	lines := []models.PricedLine{
		{UnitRate: decimal.NewFromInt(100), Qty: 1},
	}

	summary := models.PriceLines(lines, decimal.NewFromInt(1000000), testPolicy())

	if !summary.TotalAmount.IsZero() {
		t.Errorf("total = %s, want 0", summary.TotalAmount)
	}
}

func TestPriceSaleLinesDiscountOnly(t *testing.T) {
	lines := []models.PricedLine{
		{UnitRate: decimal.NewFromInt(2500), Qty: 4},
		{UnitRate: decimal.NewFromInt(750), Qty: 2},
	}

	summary := models.PriceSaleLines(lines, decimal.NewFromInt(500))

	if !summary.Subtotal.Equal(decimal.NewFromInt(11500)) {
		t.Errorf("subtotal = %s, want 11500", summary.Subtotal)
	}
	if !summary.TaxAmount.IsZero() || !summary.ShippingAmount.IsZero() {
		t.Errorf("sale pricing must carry no tax/shipping, got tax=%s shipping=%s", summary.TaxAmount, summary.ShippingAmount)
	}
	if !summary.TotalAmount.Equal(decimal.NewFromInt(11000)) {
		t.Errorf("total = %s, want 11000", summary.TotalAmount)
	}
}

func TestPriceSaleLinesFloorsAtZero(t *testing.T) {
	lines := []models.PricedLine{
		{UnitRate: decimal.NewFromInt(100), Qty: 1},
	}

	summary := models.PriceSaleLines(lines, decimal.NewFromInt(500))

	if !summary.TotalAmount.IsZero() {
		t.Errorf("total = %s, want 0", summary.TotalAmount)
	}
}

// Pricing is a pure function: feeding a summary's own inputs back in must
// reproduce it exactly.
func TestPriceLinesReproducible(t *testing.T) {
	lines := []models.PricedLine{
		{UnitRate: decimal.RequireFromString("1234.5678"), Qty: 3},
		{UnitRate: decimal.RequireFromString("0.0001"), Qty: 7},
	}

	first := models.PriceLines(lines, decimal.NewFromInt(10), testPolicy())
	second := models.PriceLines(lines, decimal.NewFromInt(10), testPolicy())

	if !first.Subtotal.Equal(second.Subtotal) ||
		!first.TaxAmount.Equal(second.TaxAmount) ||
		!first.ShippingAmount.Equal(second.ShippingAmount) ||
		!first.TotalAmount.Equal(second.TotalAmount) {
		t.Errorf("pricing not reproducible: %+v vs %+v", first, second)
	}
}
