package models

import "time"

// OrderStatus represents a stage in the order delivery pipeline
type OrderStatus string

const (
	StatusPending        OrderStatus = "Pending"
	StatusAccepted       OrderStatus = "Accepted"
	StatusPreparing      OrderStatus = "Preparing"
	StatusReadyForPickup OrderStatus = "Ready for Pickup"
	StatusPickedUp       OrderStatus = "Picked Up"
	StatusOnTheWay       OrderStatus = "On the Way"
	StatusDelivered      OrderStatus = "Delivered"
	StatusCancelled      OrderStatus = "Cancelled"
)

// Terminal reports whether the status ends the order's active lifecycle.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

type PaymentMethod string

const (
	PaymentUPI     PaymentMethod = "UPI"
	PaymentGPay    PaymentMethod = "UPI - Google Pay"
	PaymentPhonePe PaymentMethod = "UPI - PhonePe"
	PaymentPaytm   PaymentMethod = "UPI - Paytm"
	PaymentCard    PaymentMethod = "Card"
	PaymentCOD     PaymentMethod = "COD"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentUPI, PaymentGPay, PaymentPhonePe, PaymentPaytm, PaymentCard, PaymentCOD:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentCompleted PaymentStatus = "Completed"
	PaymentFailed    PaymentStatus = "Failed"
)

// DefaultDeliveryAddress is used when a checkout omits the address.
const DefaultDeliveryAddress = "Connaught Place, New Delhi"

type Order struct {
	ID              uint          `json:"id" gorm:"primaryKey"`
	CustomerID      uint          `json:"customer_id" gorm:"not null;index"`
	Customer        User          `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	RestaurantID    uint          `json:"restaurant_id" gorm:"not null;index"`
	Restaurant      Restaurant    `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	CourierID       *uint         `json:"courier_id"`
	Courier         *User         `json:"courier,omitempty" gorm:"foreignKey:CourierID"`
	DeliveryAddress string        `json:"delivery_address" gorm:"not null"`
	Items           []OrderItem   `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	Total           float64       `json:"total" gorm:"not null"`
	Status          OrderStatus   `json:"status" gorm:"not null;default:'Pending'"`
	PaymentMethod   PaymentMethod `json:"payment_method" gorm:"not null"`
	PaymentStatus   PaymentStatus `json:"payment_status" gorm:"not null;default:'Pending'"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// OrderItem is a point-in-time snapshot of a menu item at checkout.
// Later menu edits never alter past orders.
type OrderItem struct {
	ID       uint    `json:"id" gorm:"primaryKey"`
	OrderID  uint    `json:"order_id" gorm:"not null;index"`
	Name     string  `json:"name" gorm:"not null"`
	Price    float64 `json:"price" gorm:"not null"`
	Quantity int     `json:"quantity" gorm:"not null"`
}
