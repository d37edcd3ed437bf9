package models_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/momoa-tech/hardware_backend/config"
	"github.com/momoa-tech/hardware_backend/models"
	"github.com/momoa-tech/hardware_backend/utils"
	"github.com/shopspring/decimal"
)

func newTestOrderInput(productA, productB *models.Product) *models.NewOrder {
	return &models.NewOrder{
		UserId: "user-1",
		Lines: []models.NewOrderLine{
			{ProductId: productA.ID, Quantity: 2},
			{ProductId: productB.ID, Quantity: 1},
		},
		DeliveryAddress: "14 Uhuru Street, Dar es Salaam",
		DeliveryPhone:   "+255700000001",
	}
}

func TestCreateOrderReservesStockAndPrices(t *testing.T) {
	setupTestDB(t)
	ctx := testContext()
	productA := seedProduct(t, ctx, "Drill", 1200, 10)
	productB := seedProduct(t, ctx, "Generator", 25000, 5)

	order, err := models.CreateOrder(ctx, newTestOrderInput(productA, productB))
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if order.Status != models.OrderStatusPending {
		t.Errorf("status = %s, want pending", order.Status)
	}
	if !order.Subtotal.Equal(decimal.NewFromInt(27400)) {
		t.Errorf("subtotal = %s, want 27400", order.Subtotal)
	}
	if !order.TaxAmount.Equal(decimal.NewFromInt(4932)) {
		t.Errorf("tax = %s, want 4932", order.TaxAmount)
	}
	if !order.ShippingAmount.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("shipping = %s, want 5000", order.ShippingAmount)
	}
	if !order.TotalAmount.Equal(decimal.NewFromInt(37332)) {
		t.Errorf("total = %s, want 37332", order.TotalAmount)
	}

	if got := productStock(t, productA.ID); got != 8 {
		t.Errorf("productA stock = %d, want 8", got)
	}
	if got := productStock(t, productB.ID); got != 4 {
		t.Errorf("productB stock = %d, want 4", got)
	}

	wantPrefix := "ORD-" + time.Now().Format("20060102") + "-"
	if !strings.HasPrefix(order.OrderNumber, wantPrefix) {
		t.Errorf("order number = %s, want prefix %s", order.OrderNumber, wantPrefix)
	}

	if len(order.Lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(order.Lines))
	}
	if order.Lines[0].ProductName != "Drill" {
		t.Errorf("line snapshot name = %s, want Drill", order.Lines[0].ProductName)
	}
}

// Stored totals must be reproducible from stored lines alone.
func TestOrderTotalsReproducibleFromLines(t *testing.T) {
	setupTestDB(t)
	ctx := testContext()
	productA := seedProduct(t, ctx, "Drill", 1200, 10)
	productB := seedProduct(t, ctx, "Generator", 25000, 5)

	order, err := models.CreateOrder(ctx, newTestOrderInput(productA, productB))
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	var lines []models.PricedLine
	for _, l := range order.Lines {
		lines = append(lines, models.PricedLine{UnitRate: l.UnitPrice, Qty: l.Quantity})
	}
	summary := models.PriceLines(lines, order.Discount, models.DefaultPricingPolicy())

	if !summary.Subtotal.Equal(order.Subtotal) ||
		!summary.TaxAmount.Equal(order.TaxAmount) ||
		!summary.ShippingAmount.Equal(order.ShippingAmount) ||
		!summary.TotalAmount.Equal(order.TotalAmount) {
		t.Errorf("recomputed totals %+v do not match stored order %s/%s/%s/%s",
			summary, order.Subtotal, order.TaxAmount, order.ShippingAmount, order.TotalAmount)
	}
}

func TestCreateOrderInsufficientStockRollsBack(t *testing.T) {
	setupTestDB(t)
	ctx := testContext()
	productA := seedProduct(t, ctx, "Drill", 1200, 10)
	productB := seedProduct(t, ctx, "Generator", 25000, 0)

	_, err := models.CreateOrder(ctx, newTestOrderInput(productA, productB))
	var insufficient *utils.InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("err = %v, want InsufficientStockError", err)
	}
	if insufficient.ProductName != "Generator" {
		t.Errorf("offending product = %s, want Generator", insufficient.ProductName)
	}
	if insufficient.Available != 0 || insufficient.Requested != 1 {
		t.Errorf("available=%d requested=%d, want 0/1", insufficient.Available, insufficient.Requested)
	}

	// First line's reservation must not stick.
	if got := productStock(t, productA.ID); got != 10 {
		t.Errorf("productA stock = %d, want 10 after rollback", got)
	}
	var count int64
	if err := config.GetDB().Model(&models.Order{}).Count(&count).Error; err != nil {
		t.Fatalf("count orders: %v", err)
	}
	if count != 0 {
		t.Errorf("orders = %d, want 0", count)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	setupTestDB(t)
	ctx := testContext()
	product := seedProduct(t, ctx, "Drill", 1200, 10)

	_, err := models.CreateOrder(ctx, &models.NewOrder{
		UserId:          "user-1",
		Lines:           []models.NewOrderLine{{ProductId: product.ID, Quantity: 0}},
		DeliveryAddress: "addr",
		DeliveryPhone:   "+255700000001",
	})
	var validation *utils.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("err = %v, want ValidationError for zero quantity", err)
	}

	_, err = models.CreateOrder(ctx, &models.NewOrder{
		UserId:          "user-1",
		Lines:           nil,
		DeliveryAddress: "addr",
		DeliveryPhone:   "+255700000001",
	})
	if !errors.As(err, &validation) {
		t.Fatalf("err = %v, want ValidationError for empty lines", err)
	}
}

func TestCancelOrderRestoresStockOnce(t *testing.T) {
	setupTestDB(t)
	ctx := testContext()
	productA := seedProduct(t, ctx, "Drill", 1200, 10)
	productB := seedProduct(t, ctx, "Generator", 25000, 5)

	order, err := models.CreateOrder(ctx, newTestOrderInput(productA, productB))
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	cancelled, err := models.CancelOrder(ctx, order.ID)
	if err != nil {
		t.Fatalf("CancelOrder: %v", err)
	}
	if cancelled.Status != models.OrderStatusCancelled {
		t.Errorf("status = %s, want cancelled", cancelled.Status)
	}
	if got := productStock(t, productA.ID); got != 10 {
		t.Errorf("productA stock = %d, want 10 restored", got)
	}
	if got := productStock(t, productB.ID); got != 5 {
		t.Errorf("productB stock = %d, want 5 restored", got)
	}

	// Second cancel is an invalid transition.
	_, err = models.CancelOrder(ctx, order.ID)
	var transition *utils.InvalidStateTransitionError
	if !errors.As(err, &transition) {
		t.Fatalf("err = %v, want InvalidStateTransitionError", err)
	}
	if transition.From != "cancelled" {
		t.Errorf("transition from = %s, want cancelled", transition.From)
	}

	// Deleting the cancelled order must not restore a second time.
	if err := models.DeleteOrder(ctx, order.ID); err != nil {
		t.Fatalf("DeleteOrder: %v", err)
	}
	if got := productStock(t, productA.ID); got != 10 {
		t.Errorf("productA stock = %d, want 10 after delete (no double restore)", got)
	}
}

func TestDeleteOrderRestoresStock(t *testing.T) {
	setupTestDB(t)
	ctx := testContext()
	productA := seedProduct(t, ctx, "Drill", 1200, 10)
	productB := seedProduct(t, ctx, "Generator", 25000, 5)

	order, err := models.CreateOrder(ctx, newTestOrderInput(productA, productB))
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if err := models.DeleteOrder(ctx, order.ID); err != nil {
		t.Fatalf("DeleteOrder: %v", err)
	}
	if got := productStock(t, productA.ID); got != 10 {
		t.Errorf("productA stock = %d, want 10", got)
	}

	_, err = models.GetOrder(ctx, order.ID)
	var notFound *utils.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want NotFoundError after delete", err)
	}
	var lineCount int64
	if err := config.GetDB().Model(&models.OrderLine{}).Where("order_id = ?", order.ID).Count(&lineCount).Error; err != nil {
		t.Fatalf("count lines: %v", err)
	}
	if lineCount != 0 {
		t.Errorf("order lines = %d, want 0", lineCount)
	}
}

func TestOrderStatusGuards(t *testing.T) {
	setupTestDB(t)
	ctx := testContext()
	productA := seedProduct(t, ctx, "Drill", 1200, 10)
	productB := seedProduct(t, ctx, "Generator", 25000, 5)

	order, err := models.CreateOrder(ctx, newTestOrderInput(productA, productB))
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	// Status progression carries no stock effect.
	if _, err := models.UpdateOrderStatus(ctx, order.ID, models.OrderStatusShipped, "TRK-123"); err != nil {
		t.Fatalf("UpdateOrderStatus: %v", err)
	}
	if got := productStock(t, productA.ID); got != 8 {
		t.Errorf("productA stock = %d, want 8 (status change must not touch stock)", got)
	}

	// Shipped orders cannot be deleted.
	err = models.DeleteOrder(ctx, order.ID)
	var transition *utils.InvalidStateTransitionError
	if !errors.As(err, &transition) {
		t.Fatalf("err = %v, want InvalidStateTransitionError", err)
	}

	// Delivered orders cannot be cancelled.
	if _, err := models.UpdateOrderStatus(ctx, order.ID, models.OrderStatusDelivered, ""); err != nil {
		t.Fatalf("UpdateOrderStatus: %v", err)
	}
	_, err = models.CancelOrder(ctx, order.ID)
	if !errors.As(err, &transition) {
		t.Fatalf("err = %v, want InvalidStateTransitionError", err)
	}

	// Unknown status is rejected, cancelled must go through CancelOrder.
	var validation *utils.ValidationError
	if _, err := models.UpdateOrderStatus(ctx, order.ID, "misplaced", ""); !errors.As(err, &validation) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if _, err := models.UpdateOrderStatus(ctx, order.ID, models.OrderStatusCancelled, ""); !errors.As(err, &validation) {
		t.Fatalf("err = %v, want ValidationError for cancelled via status update", err)
	}
}

func TestListOrdersByUser(t *testing.T) {
	setupTestDB(t)
	ctx := testContext()
	productA := seedProduct(t, ctx, "Drill", 1200, 10)
	productB := seedProduct(t, ctx, "Generator", 25000, 5)

	if _, err := models.CreateOrder(ctx, newTestOrderInput(productA, productB)); err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	other := newTestOrderInput(productA, productB)
	other.UserId = "user-2"
	if _, err := models.CreateOrder(ctx, other); err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	orders, err := models.ListOrdersByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListOrdersByUser: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("orders = %d, want 1", len(orders))
	}
	if len(orders[0].Lines) != 2 {
		t.Errorf("lines = %d, want 2 preloaded", len(orders[0].Lines))
	}
}
