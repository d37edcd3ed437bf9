package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momoa-tech/hardware_backend/models"
)

func createInvoiceHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewInvoice
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, apiResponse{Success: false, Message: err.Error()})
			return
		}

		invoice, err := models.CreateInvoiceFromOrder(c.Request.Context(), c.Param("id"), &input)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusCreated, "invoice created", invoice)
	}
}

func getInvoiceHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		invoice, err := models.GetInvoice(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, "invoice retrieved", invoice)
	}
}

func updateInvoiceHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "UpdateInvoice")
		defer span.End()

		var input models.UpdateInvoiceInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, apiResponse{Success: false, Message: err.Error()})
			return
		}

		invoice, err := models.UpdateInvoice(ctx, c.Param("id"), &input)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, "invoice updated", invoice)
	}
}
