package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momoa-tech/hardware_backend/models"
)

func createSaleHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "CreateSale")
		defer span.End()

		var input models.NewSale
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, apiResponse{Success: false, Message: err.Error()})
			return
		}

		sale, err := models.CreateSale(ctx, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusCreated, "sale recorded", sale)
	}
}

func listSalesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		sales, err := models.ListSales(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, "sales retrieved", sales)
	}
}

func getSaleHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		sale, err := models.GetSale(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, "sale retrieved", sale)
	}
}

type updateSalePaymentStatusRequest struct {
	PaymentStatus models.PaymentStatus `json:"payment_status" binding:"required,paymentstatus"`
}

func updateSalePaymentStatusHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateSalePaymentStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, apiResponse{Success: false, Message: err.Error()})
			return
		}

		sale, err := models.UpdateSalePaymentStatus(c.Request.Context(), c.Param("id"), req.PaymentStatus)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, "payment status updated", sale)
	}
}

func voidSaleHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := models.VoidSale(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, "sale voided", nil)
	}
}
