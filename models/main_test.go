package models_test

import (
	"context"
	"testing"

	"github.com/momoa-tech/hardware_backend/appctx"
	"github.com/momoa-tech/hardware_backend/config"
	"github.com/momoa-tech/hardware_backend/models"
	"github.com/shopspring/decimal"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	if err := config.ConnectSqliteDatabase("file:" + t.Name() + "?mode=memory&cache=shared"); err != nil {
		t.Fatalf("open db: %v", err)
	}
	models.MigrateTable()
}

func testContext() context.Context {
	ctx := context.Background()
	ctx = appctx.Set(ctx, appctx.ContextKeyUserId, "user-1")
	ctx = appctx.Set(ctx, appctx.ContextKeyUserName, "Test User")
	return ctx
}

func seedProduct(t *testing.T, ctx context.Context, name string, price int64, stock int) *models.Product {
	t.Helper()
	product, err := models.CreateProduct(ctx, &models.NewProduct{
		Name:          name,
		Description:   name + " description",
		Category:      "Hardware",
		UnitPrice:     decimal.NewFromInt(price),
		StockQuantity: stock,
	})
	if err != nil {
		t.Fatalf("CreateProduct %s: %v", name, err)
	}
	return product
}

func productStock(t *testing.T, id string) int {
	t.Helper()
	var product models.Product
	if err := config.GetDB().First(&product, "id = ?", id).Error; err != nil {
		t.Fatalf("fetch product %s: %v", id, err)
	}
	return product.StockQuantity
}
