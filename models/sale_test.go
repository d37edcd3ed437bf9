package models_test

import (
	"errors"
	"testing"

	"github.com/momoa-tech/hardware_backend/config"
	"github.com/momoa-tech/hardware_backend/models"
	"github.com/momoa-tech/hardware_backend/utils"
	"github.com/shopspring/decimal"
)

func TestCreateSaleDeductsStockAndPrices(t *testing.T) {
	setupTestDB(t)
	ctx := testContext()
	productA := seedProduct(t, ctx, "Paint", 8000, 12)
	productB := seedProduct(t, ctx, "Brush", 1500, 20)

	sale, err := models.CreateSale(ctx, &models.NewSale{
		CustomerName:  "Walk-in",
		CustomerPhone: "+255700000002",
		Lines: []models.NewSaleLine{
			{ProductId: productA.ID, Quantity: 2},
			{ProductId: productB.ID, Quantity: 3},
		},
		Discount: decimal.NewFromInt(500),
	})
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}

	if !sale.Subtotal.Equal(decimal.NewFromInt(20500)) {
		t.Errorf("subtotal = %s, want 20500", sale.Subtotal)
	}
	if !sale.TotalAmount.Equal(decimal.NewFromInt(20000)) {
		t.Errorf("total = %s, want 20000", sale.TotalAmount)
	}
	if sale.PaymentMethod != models.SalePaymentMethodCash {
		t.Errorf("payment method = %s, want CASH default", sale.PaymentMethod)
	}
	if sale.PaymentStatus != models.PaymentStatusPaid {
		t.Errorf("payment status = %s, want PAID default", sale.PaymentStatus)
	}
	if sale.SalespersonId != "user-1" || sale.SalespersonName != "Test User" {
		t.Errorf("salesperson = %s/%s, want from context", sale.SalespersonId, sale.SalespersonName)
	}

	if got := productStock(t, productA.ID); got != 10 {
		t.Errorf("productA stock = %d, want 10", got)
	}
	if got := productStock(t, productB.ID); got != 17 {
		t.Errorf("productB stock = %d, want 17", got)
	}
}

// Three lines, third insufficient: earlier deductions must roll back and no
// sale may persist.
func TestCreateSaleAtomicRollback(t *testing.T) {
	setupTestDB(t)
	ctx := testContext()
	productA := seedProduct(t, ctx, "Paint", 8000, 12)
	productB := seedProduct(t, ctx, "Brush", 1500, 20)
	productC := seedProduct(t, ctx, "Ladder", 45000, 1)

	_, err := models.CreateSale(ctx, &models.NewSale{
		Lines: []models.NewSaleLine{
			{ProductId: productA.ID, Quantity: 2},
			{ProductId: productB.ID, Quantity: 3},
			{ProductId: productC.ID, Quantity: 2},
		},
	})
	var insufficient *utils.InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("err = %v, want InsufficientStockError", err)
	}
	if insufficient.ProductName != "Ladder" || insufficient.Available != 1 || insufficient.Requested != 2 {
		t.Errorf("got %s available=%d requested=%d, want Ladder 1/2",
			insufficient.ProductName, insufficient.Available, insufficient.Requested)
	}

	if got := productStock(t, productA.ID); got != 12 {
		t.Errorf("productA stock = %d, want 12", got)
	}
	if got := productStock(t, productB.ID); got != 20 {
		t.Errorf("productB stock = %d, want 20", got)
	}
	if got := productStock(t, productC.ID); got != 1 {
		t.Errorf("productC stock = %d, want 1", got)
	}

	var saleCount, lineCount int64
	if err := config.GetDB().Model(&models.Sale{}).Count(&saleCount).Error; err != nil {
		t.Fatalf("count sales: %v", err)
	}
	if err := config.GetDB().Model(&models.SaleLine{}).Count(&lineCount).Error; err != nil {
		t.Fatalf("count sale lines: %v", err)
	}
	if saleCount != 0 || lineCount != 0 {
		t.Errorf("sales=%d lines=%d, want 0/0", saleCount, lineCount)
	}
}

func TestCreateSaleValidation(t *testing.T) {
	setupTestDB(t)
	ctx := testContext()
	product := seedProduct(t, ctx, "Paint", 8000, 12)

	var validation *utils.ValidationError

	_, err := models.CreateSale(ctx, &models.NewSale{Lines: nil})
	if !errors.As(err, &validation) {
		t.Fatalf("err = %v, want ValidationError for empty lines", err)
	}

	_, err = models.CreateSale(ctx, &models.NewSale{
		Lines:    []models.NewSaleLine{{ProductId: product.ID, Quantity: 1}},
		Discount: decimal.NewFromInt(-10),
	})
	if !errors.As(err, &validation) {
		t.Fatalf("err = %v, want ValidationError for negative discount", err)
	}

	_, err = models.CreateSale(ctx, &models.NewSale{
		Lines:         []models.NewSaleLine{{ProductId: product.ID, Quantity: 1}},
		PaymentMethod: "BARTER",
	})
	if !errors.As(err, &validation) {
		t.Fatalf("err = %v, want ValidationError for unknown payment method", err)
	}
}

func TestUpdateSalePaymentStatus(t *testing.T) {
	setupTestDB(t)
	ctx := testContext()
	product := seedProduct(t, ctx, "Paint", 8000, 12)

	sale, err := models.CreateSale(ctx, &models.NewSale{
		Lines:         []models.NewSaleLine{{ProductId: product.ID, Quantity: 1}},
		PaymentStatus: models.PaymentStatusUnpaid,
	})
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}

	updated, err := models.UpdateSalePaymentStatus(ctx, sale.ID, models.PaymentStatusPartial)
	if err != nil {
		t.Fatalf("UpdateSalePaymentStatus: %v", err)
	}
	if updated.PaymentStatus != models.PaymentStatusPartial {
		t.Errorf("payment status = %s, want PARTIAL", updated.PaymentStatus)
	}

	// Settlement must not touch stock.
	if got := productStock(t, product.ID); got != 11 {
		t.Errorf("stock = %d, want 11", got)
	}

	var validation *utils.ValidationError
	if _, err := models.UpdateSalePaymentStatus(ctx, sale.ID, "SETTLED"); !errors.As(err, &validation) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestVoidSaleNotSupported(t *testing.T) {
	setupTestDB(t)
	ctx := testContext()
	product := seedProduct(t, ctx, "Paint", 8000, 12)

	sale, err := models.CreateSale(ctx, &models.NewSale{
		Lines: []models.NewSaleLine{{ProductId: product.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}

	if err := models.VoidSale(ctx, sale.ID); !errors.Is(err, models.ErrVoidSaleNotSupported) {
		t.Fatalf("err = %v, want ErrVoidSaleNotSupported", err)
	}
	// The sale's stock effect is permanent.
	if got := productStock(t, product.ID); got != 10 {
		t.Errorf("stock = %d, want 10", got)
	}

	var notFound *utils.NotFoundError
	if err := models.VoidSale(ctx, "no-such-sale"); !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}
