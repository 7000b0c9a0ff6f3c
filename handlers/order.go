package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"roomservice/models"
	"roomservice/services/order"
	"roomservice/utils"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// OrderHandler serves guest orders.
type OrderHandler struct {
	OrderService order.OrderService
	Now          func() time.Time
}

func NewOrderHandler(svc order.OrderService) *OrderHandler {
	return &OrderHandler{OrderService: svc, Now: time.Now}
}

// CreateOrderHandler is public: guests order from a scanned QR code.
func (h *OrderHandler) CreateOrderHandler(c *gin.Context) {
	var in order.OrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{Message: "Invalid order", Details: err.Error()})
		return
	}
	created, err := h.OrderService.CreateOrder(in, h.Now())
	if err != nil {
		utils.RespondError(c, err, "Failed to create order")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func orderFilter(c *gin.Context) models.OrderFilter {
	return models.OrderFilter{
		Location: c.Query("location"),
		QRCodeID: c.Query("qrcodeId"),
		Status:   c.Query("status"),
	}
}

func (h *OrderHandler) GetOrdersHandler(c *gin.Context) {
	orders, err := h.OrderService.ListOrders(orderFilter(c))
	if err != nil {
		utils.RespondError(c, err, "Failed to get orders")
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) UpdateStatusHandler(c *gin.Context) {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{Message: "status is required"})
		return
	}
	updated, err := h.OrderService.UpdateStatus(c.Param("id"), req.Status)
	if err != nil {
		utils.RespondError(c, err, "Failed to update order status")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// ExportOrdersHandler handles GET /order/export with the same filters as the
// listing and returns an xlsx download.
func (h *OrderHandler) ExportOrdersHandler(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.OrderService.ExportOrders(&buf, orderFilter(c)); err != nil {
		utils.RespondError(c, err, "Failed to export orders")
		return
	}
	name := fmt.Sprintf("orders-%s.xlsx", h.Now().Format("20060102-1504"))
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
