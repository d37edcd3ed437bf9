package config

import (
	"os"
	"strings"

	"github.com/shopspring/decimal"
)

// Order pricing knobs. Defaults match the storefront's long-standing policy:
// 18% VAT, free shipping at 100,000 TSh, otherwise a 5,000 TSh flat fee.
//
// Set via env:
// - ORDER_TAX_RATE (e.g. "0.18")
// - FREE_SHIPPING_THRESHOLD (e.g. "100000")
// - FLAT_SHIPPING_FEE (e.g. "5000")

func OrderTaxRate() decimal.Decimal {
	return decimalFromEnv("ORDER_TAX_RATE", "0.18")
}

func FreeShippingThreshold() decimal.Decimal {
	return decimalFromEnv("FREE_SHIPPING_THRESHOLD", "100000")
}

func FlatShippingFee() decimal.Decimal {
	return decimalFromEnv("FLAT_SHIPPING_FEE", "5000")
}

func decimalFromEnv(key string, def string) decimal.Decimal {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		v = def
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		d, _ = decimal.NewFromString(def)
	}
	return d
}
