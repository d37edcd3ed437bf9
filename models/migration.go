package models

import (
	"log"

	"github.com/momoa-tech/hardware_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Product{}, &StockMovement{},
		&Order{}, &OrderLine{},
		&Sale{}, &SaleLine{},
		&Invoice{}, &InvoiceLine{},
		&DocumentSequence{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
