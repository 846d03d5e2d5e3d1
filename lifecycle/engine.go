package lifecycle

import (
	"errors"
	"math"

	"gorm.io/gorm"

	"food-delivery-marketplace/models"
	"food-delivery-marketplace/utils"
)

// Publisher receives fire-and-forget events after a successful mutation.
// Delivery is best-effort; the persisted Order record stays the source of truth.
type Publisher interface {
	PublishNewOrder(order models.Order)
	PublishOrderStatus(order models.Order)
}

// Actor is the authenticated caller of a lifecycle operation.
type Actor struct {
	UserID uint
	Role   models.UserRole
}

// Engine enforces the order status graph, courier-assignment rules and
// pricing over the order ledger.
type Engine struct {
	db      *gorm.DB
	pub     Publisher
	pricing PricingPolicy
}

func NewEngine(db *gorm.DB, pub Publisher, pricing PricingPolicy) *Engine {
	return &Engine{db: db, pub: pub, pricing: pricing}
}

type CreateRequest struct {
	CustomerID      uint
	RestaurantID    uint
	Items           []models.OrderItem
	Total           float64
	PaymentMethod   models.PaymentMethod
	DeliveryAddress string
}

// Create places a new order in Pending and broadcasts a new_order event.
func (e *Engine) Create(req CreateRequest) (models.Order, error) {
	if len(req.Items) == 0 {
		return models.Order{}, NewValidationError("no order items")
	}
	for _, item := range req.Items {
		if item.Name == "" || item.Quantity < 1 || item.Price < 0 {
			return models.Order{}, NewValidationError("invalid order item %q", item.Name)
		}
	}
	if !req.PaymentMethod.Valid() {
		return models.Order{}, NewValidationError("unsupported payment method %q", req.PaymentMethod)
	}

	var restaurant models.Restaurant
	if err := e.db.First(&restaurant, req.RestaurantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrRestaurantNotFound
		}
		return models.Order{}, err
	}

	total := e.pricing.Quote(req.Items)
	if req.Total != 0 && math.Abs(req.Total-total) > 0.01 {
		return models.Order{}, NewValidationError("submitted total %.2f does not match computed total %.2f", req.Total, total)
	}

	address := req.DeliveryAddress
	if address == "" {
		address = models.DefaultDeliveryAddress
	}

	order := models.Order{
		CustomerID:      req.CustomerID,
		RestaurantID:    req.RestaurantID,
		DeliveryAddress: address,
		Items:           req.Items,
		Total:           total,
		Status:          models.StatusPending,
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   models.PaymentPending,
	}
	if err := e.db.Create(&order).Error; err != nil {
		return models.Order{}, err
	}

	created, err := e.Get(order.ID)
	if err != nil {
		return models.Order{}, err
	}

	utils.InfoLogger.Infof("order %d created for restaurant %d, total %.2f", created.ID, created.RestaurantID, created.Total)
	e.pub.PublishNewOrder(created)
	return created, nil
}

type TransitionRequest struct {
	Status    *models.OrderStatus
	CourierID *uint
}

// Transition applies a status change and/or a courier assignment atomically.
// The courier write is conditional on courier_id being unset and the status
// write on the status the transition was validated against, so concurrent
// writers lose with an explicit conflict instead of corrupting state.
func (e *Engine) Transition(orderID uint, actor Actor, req TransitionRequest) (models.Order, error) {
	if req.Status == nil && req.CourierID == nil {
		return models.Order{}, NewValidationError("nothing to update: provide a status or a delivery partner")
	}

	err := e.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		if req.CourierID != nil {
			var courier models.User
			if err := tx.First(&courier, *req.CourierID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return NewValidationError("delivery partner %d not found", *req.CourierID)
				}
				return err
			}
			if courier.Role != models.RoleDelivery {
				return NewValidationError("user %d is not a delivery partner", courier.ID)
			}

			res := tx.Model(&models.Order{}).
				Where("id = ? AND courier_id IS NULL", orderID).
				Update("courier_id", *req.CourierID)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrCourierTaken
			}
		}

		if req.Status != nil {
			if !CanTransition(order.Status, *req.Status, actor.Role) {
				return &TransitionError{From: order.Status, To: *req.Status, Role: actor.Role}
			}
			res := tx.Model(&models.Order{}).
				Where("id = ? AND status = ?", orderID, order.Status).
				Update("status", *req.Status)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrStatusChanged
			}
			utils.InfoLogger.Infof("order %d: %s → %s by %s %d", orderID, order.Status, *req.Status, actor.Role, actor.UserID)
		}
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}

	updated, err := e.Get(orderID)
	if err != nil {
		return models.Order{}, err
	}
	e.pub.PublishOrderStatus(updated)
	return updated, nil
}

// Get loads one order with its relations.
func (e *Engine) Get(orderID uint) (models.Order, error) {
	var order models.Order
	err := e.db.Preload("Items").Preload("Restaurant").Preload("Customer").Preload("Courier").
		First(&order, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Order{}, ErrOrderNotFound
	}
	return order, err
}

// AvailableForCourier is the unassigned work queue: Ready for Pickup, no courier.
func (e *Engine) AvailableForCourier() ([]models.Order, error) {
	var orders []models.Order
	err := e.db.Preload("Items").Preload("Restaurant").
		Where("status = ? AND courier_id IS NULL", models.StatusReadyForPickup).
		Order("created_at asc").
		Find(&orders).Error
	return orders, err
}

// ForCourier returns every order assigned to the courier, any status.
func (e *Engine) ForCourier(courierID uint) ([]models.Order, error) {
	var orders []models.Order
	err := e.db.Preload("Items").Preload("Restaurant").Preload("Customer").
		Where("courier_id = ?", courierID).
		Order("updated_at desc").
		Find(&orders).Error
	return orders, err
}

// ForOwner returns orders across all restaurants owned by ownerID, newest first.
func (e *Engine) ForOwner(ownerID uint) ([]models.Order, error) {
	var restaurants []models.Restaurant
	if err := e.db.Where("owner_id = ?", ownerID).Find(&restaurants).Error; err != nil {
		return nil, err
	}
	if len(restaurants) == 0 {
		return nil, ErrRestaurantNotFound
	}
	ids := make([]uint, 0, len(restaurants))
	for _, r := range restaurants {
		ids = append(ids, r.ID)
	}

	var orders []models.Order
	err := e.db.Preload("Items").Preload("Customer").Preload("Courier").
		Where("restaurant_id IN ?", ids).
		Order("created_at desc").
		Find(&orders).Error
	return orders, err
}

// ForCustomer returns the customer's order history, newest first.
func (e *Engine) ForCustomer(customerID uint) ([]models.Order, error) {
	var orders []models.Order
	err := e.db.Preload("Items").Preload("Restaurant").Preload("Courier").
		Where("customer_id = ?", customerID).
		Order("created_at desc").
		Find(&orders).Error
	return orders, err
}
