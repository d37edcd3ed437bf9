package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momoa-tech/hardware_backend/models"
)

func createProductHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewProduct
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, apiResponse{Success: false, Message: err.Error()})
			return
		}

		product, err := models.CreateProduct(c.Request.Context(), &input)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusCreated, "product created", product)
	}
}

func getProductHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := models.GetProduct(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, "product retrieved", product)
	}
}

func getStockMovementsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		movements, err := models.GetStockMovements(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, "stock movements retrieved", movements)
	}
}

type adjustStockRequest struct {
	Delta int    `json:"delta" binding:"required"`
	Note  string `json:"note"`
}

func adjustStockHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req adjustStockRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, apiResponse{Success: false, Message: err.Error()})
			return
		}

		product, err := models.AdjustStock(c.Request.Context(), c.Param("id"), req.Delta, req.Note)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, "stock adjusted", product)
	}
}

func lowStockHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := models.BelowMinimumStock(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, "low stock products retrieved", products)
	}
}
