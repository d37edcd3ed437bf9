package utils

import (
	"context"
	"errors"
	"reflect"

	"github.com/momoa-tech/hardware_backend/config"
	"gorm.io/gorm"
)

/* DB fetching */

// get type name of struct
func GetTypeName[T any]() string {
	var v T
	typeOfT := reflect.TypeOf(v)
	return typeOfT.Name()
}

// fetch model from db
// (may return NotFoundError carrying the model's type name)
func FetchModel[T any](ctx context.Context, id string, associations ...string) (*T, error) {

	db := config.GetDB()
	dbCtx := db.WithContext(ctx)
	// preloading
	for _, field := range associations {
		dbCtx = dbCtx.Preload(field)
	}
	var result T
	err := dbCtx.First(&result, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: GetTypeName[T](), Id: id}
		}
		return nil, err
	}
	return &result, nil
}

// fetch model inside an open transaction
func FetchModelTx[T any](tx *gorm.DB, id string, associations ...string) (*T, error) {
	for _, field := range associations {
		tx = tx.Preload(field)
	}
	var result T
	err := tx.First(&result, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: GetTypeName[T](), Id: id}
		}
		return nil, err
	}
	return &result, nil
}

// fetch all models matching WHERE $condition
func FetchModelsWhere[T any](ctx context.Context, condition string, value ...interface{}) ([]*T, error) {

	db := config.GetDB()
	var results []*T
	err := db.WithContext(ctx).Where(condition, value...).Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// remove duplicate entries, preserving order
func UniqueSlice[T comparable](input []T) []T {
	seen := make(map[T]bool, len(input))
	out := make([]T, 0, len(input))
	for _, v := range input {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
