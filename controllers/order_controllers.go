package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pedidopronto/delivery-app/dispatch"
	"github.com/pedidopronto/delivery-app/models"
	"github.com/pedidopronto/delivery-app/services"
	"github.com/pedidopronto/delivery-app/utils"
)

type OrderController struct {
	DB     *gorm.DB
	Orders *services.OrderService
}

func NewOrderController(db *gorm.DB, orders *services.OrderService) *OrderController {
	return &OrderController{DB: db, Orders: orders}
}

// CreateOrder -> public ordering endpoint
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var in services.CreateOrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, rejection, err := oc.Orders.Create(in)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	dispatch.BroadcastOrderCreated(*order)

	utils.RespondJSON(c, http.StatusCreated, "Order created", gin.H{
		"order":           order,
		"coupon_rejected": rejection,
	})
}

// GetAllOrders -> list orders, optionally filtered by status and date range
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	query := oc.DB.Preload("OrderItems").Order("created_at DESC")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.ParseInLocation("2006-01-02", from, time.Local); err == nil {
			query = query.Where("created_at >= ?", t)
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.ParseInLocation("2006-01-02", to, time.Local); err == nil {
			query = query.Where("created_at < ?", t.AddDate(0, 0, 1))
		}
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID -> detail of one order
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("order_id"))

	var order models.Order
	if err := oc.DB.Preload("OrderItems").First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// transition runs one lifecycle event and broadcasts the result.
func (oc *OrderController) transition(c *gin.Context, event services.TransitionEvent, assign *services.AssignDeliveryInput, message string) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	order, err := oc.Orders.Transition(uint(id), event, assign)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			utils.RespondError(c, http.StatusNotFound, err)
		case errors.Is(err, services.ErrInvalidTransition):
			utils.RespondError(c, http.StatusConflict, err)
		default:
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}

	if event == services.EventAssignDeliver {
		dispatch.BroadcastOrderDispatched(*order)
	} else {
		dispatch.BroadcastOrderUpdate(*order)
	}
	utils.RespondJSON(c, http.StatusOK, message, order)
}

// TakeOrder -> pending => preparing
func (oc *OrderController) TakeOrder(c *gin.Context) {
	oc.transition(c, services.EventTake, nil, "Order in preparation")
}

// MarkReady -> preparing => waiting_pickup
func (oc *OrderController) MarkReady(c *gin.Context) {
	oc.transition(c, services.EventMarkReady, nil, "Order waiting for pickup")
}

// AssignDelivery -> waiting_pickup => out_for_delivery
func (oc *OrderController) AssignDelivery(c *gin.Context) {
	var req struct {
		DeliveryPersonID uint   `json:"delivery_person_id" binding:"required"`
		Route            string `json:"route"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	oc.transition(c, services.EventAssignDeliver, &services.AssignDeliveryInput{
		DeliveryPersonID: req.DeliveryPersonID,
		Route:            req.Route,
	}, "Order out for delivery")
}

// MarkDelivered -> out_for_delivery => delivered
func (oc *OrderController) MarkDelivered(c *gin.Context) {
	oc.transition(c, services.EventMarkDelivered, nil, "Order delivered")
}

// CancelOrder -> any non-terminal => cancelled. No dashboard button calls
// this today, but the capability is part of the lifecycle contract.
func (oc *OrderController) CancelOrder(c *gin.Context) {
	oc.transition(c, services.EventCancel, nil, "Order cancelled")
}

// BulkDispatch -> dispatch several waiting orders on one shared route
func (oc *OrderController) BulkDispatch(c *gin.Context) {
	var req struct {
		OrderIDs         []uint `json:"order_ids" binding:"required"`
		DeliveryPersonID uint   `json:"delivery_person_id" binding:"required"`
		FromAddress      string `json:"from_address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	result, err := oc.Orders.BulkDispatch(c.Request.Context(), req.FromAddress, req.OrderIDs, req.DeliveryPersonID)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	for _, order := range result.Dispatched {
		dispatch.BroadcastOrderDispatched(order)
	}
	utils.RespondJSON(c, http.StatusOK, "Bulk dispatch processed", result)
}

// UpdateOrder -> admin detail edit (not status; the lifecycle endpoints own
// status)
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("order_id"))

	var in services.UpdateDetailsInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Orders.UpdateDetails(uint(id), in)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	dispatch.BroadcastOrderUpdate(*order)
	utils.RespondJSON(c, http.StatusOK, "Order updated", order)
}

// MarkPaid -> log an offline payment against the order
func (oc *OrderController) MarkPaid(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("order_id"))

	var req struct {
		PaymentType string `json:"payment_type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Orders.MarkPaid(uint(id), models.PaymentType(req.PaymentType))
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	dispatch.BroadcastOrderUpdate(*order)
	utils.RespondJSON(c, http.StatusOK, "Payment logged", order)
}
