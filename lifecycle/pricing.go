package lifecycle

import (
	"math"

	"food-delivery-marketplace/models"
)

// PricingPolicy recomputes order totals server-side. The client-submitted
// total is treated as a hint and validated against this computation.
type PricingPolicy struct {
	DeliveryFee float64
	TaxRate     float64
}

// Subtotal sums the item snapshot.
func (p PricingPolicy) Subtotal(items []models.OrderItem) float64 {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Price * float64(item.Quantity)
	}
	return subtotal
}

// Quote returns the grand total: subtotal plus delivery fee plus tax.
func (p PricingPolicy) Quote(items []models.OrderItem) float64 {
	subtotal := p.Subtotal(items)
	return round2(subtotal + p.DeliveryFee + subtotal*p.TaxRate)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
