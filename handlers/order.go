package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"food-delivery-marketplace/lifecycle"
	"food-delivery-marketplace/middleware"
	"food-delivery-marketplace/models"
	"food-delivery-marketplace/utils"
)

// OrderHandler maps order endpoints onto the lifecycle engine.
type OrderHandler struct {
	Engine *lifecycle.Engine
}

func NewOrderHandler(engine *lifecycle.Engine) *OrderHandler {
	return &OrderHandler{Engine: engine}
}

type PlaceOrderRequest struct {
	RestaurantID uint `json:"restaurantId" binding:"required"`
	Items        []struct {
		Name     string  `json:"name" binding:"required"`
		Price    float64 `json:"price"`
		Quantity int     `json:"quantity" binding:"required,min=1"`
	} `json:"items"`
	Total           float64              `json:"total"`
	PaymentMethod   models.PaymentMethod `json:"paymentMethod" binding:"required"`
	DeliveryAddress string               `json:"deliveryAddress"`
}

// Place creates a new order (customer only)
func (h *OrderHandler) Place(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, models.OrderItem{
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}

	order, err := h.Engine.Create(lifecycle.CreateRequest{
		CustomerID:      customerID,
		RestaurantID:    req.RestaurantID,
		Items:           items,
		Total:           req.Total,
		PaymentMethod:   req.PaymentMethod,
		DeliveryAddress: req.DeliveryAddress,
	})
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Order placed successfully", "order": order})
}

// MyOrders returns the logged-in customer's order history
func (h *OrderHandler) MyOrders(c *gin.Context) {
	orders, err := h.Engine.ForCustomer(middleware.GetUserID(c))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// OwnerOrders returns orders across all of the caller's restaurants
func (h *OrderHandler) OwnerOrders(c *gin.Context) {
	orders, err := h.Engine.ForOwner(middleware.GetUserID(c))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// AvailableDeliveries returns the unassigned Ready for Pickup queue
func (h *OrderHandler) AvailableDeliveries(c *gin.Context) {
	orders, err := h.Engine.AvailableForCourier()
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// MyDeliveries returns the courier's assigned orders, any status
func (h *OrderHandler) MyDeliveries(c *gin.Context) {
	orders, err := h.Engine.ForCourier(middleware.GetUserID(c))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

type UpdateOrderStatusRequest struct {
	Status            *models.OrderStatus `json:"status"`
	DeliveryPartnerID *uint               `json:"deliveryPartnerId"`
}

// UpdateStatus applies a status transition and/or courier assignment.
// The engine decides per edge which role may cross it.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := lifecycle.Actor{
		UserID: middleware.GetUserID(c),
		Role:   middleware.GetRole(c),
	}
	order, err := h.Engine.Transition(uint(orderID), actor, lifecycle.TransitionRequest{
		Status:    req.Status,
		CourierID: req.DeliveryPartnerID,
	})
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order status updated", "order": order})
}

// respondEngineError maps the lifecycle error taxonomy onto HTTP statuses.
func respondEngineError(c *gin.Context, err error) {
	var ve *lifecycle.ValidationError
	var te *lifecycle.TransitionError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message})
	case errors.As(err, &te):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             "Invalid state transition",
			"reason":            te.Error(),
			"valid_next_states": lifecycle.NextStatuses(te.From, te.Role),
		})
	case errors.Is(err, lifecycle.ErrOrderNotFound), errors.Is(err, lifecycle.ErrRestaurantNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, lifecycle.ErrCourierTaken), errors.Is(err, lifecycle.ErrStatusChanged):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		utils.ErrorLogger.Errorf("order operation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}
