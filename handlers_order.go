package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momoa-tech/hardware_backend/models"
)

func createOrderHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "CreateOrder")
		defer span.End()

		var input models.NewOrder
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, apiResponse{Success: false, Message: err.Error()})
			return
		}

		order, err := models.CreateOrder(ctx, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusCreated, "order created", order)
	}
}

func getOrderHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := models.GetOrder(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, "order retrieved", order)
	}
}

func listUserOrdersHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := models.ListOrdersByUser(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, "orders retrieved", orders)
	}
}

type updateOrderStatusRequest struct {
	Status         models.OrderStatus `json:"status" binding:"required,orderstatus"`
	TrackingNumber string             `json:"tracking_number"`
}

func updateOrderStatusHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, apiResponse{Success: false, Message: err.Error()})
			return
		}

		order, err := models.UpdateOrderStatus(c.Request.Context(), c.Param("id"), req.Status, req.TrackingNumber)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, "order status updated", order)
	}
}

func cancelOrderHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := models.CancelOrder(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, "order cancelled", order)
	}
}

func deleteOrderHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := models.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, "order deleted", nil)
	}
}
