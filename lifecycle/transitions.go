package lifecycle

import "food-delivery-marketplace/models"

// edge identifies a starting status and the role attempting to leave it.
type edge struct {
	From models.OrderStatus
	Role models.UserRole
}

// transitions is the authoritative status graph. The owner drives the kitchen
// stages, the courier drives the road stages. Cancellation is role-dependent:
// the owner may cancel any non-terminal order, the customer only before the
// kitchen is committed, the courier only once the order is in their hands.
var transitions = map[edge][]models.OrderStatus{
	{models.StatusPending, models.RoleOwner}:    {models.StatusAccepted, models.StatusCancelled},
	{models.StatusPending, models.RoleCustomer}: {models.StatusCancelled},

	{models.StatusAccepted, models.RoleOwner}:    {models.StatusPreparing, models.StatusCancelled},
	{models.StatusAccepted, models.RoleCustomer}: {models.StatusCancelled},

	{models.StatusPreparing, models.RoleOwner}: {models.StatusReadyForPickup, models.StatusCancelled},

	{models.StatusReadyForPickup, models.RoleDelivery}: {models.StatusPickedUp},
	{models.StatusReadyForPickup, models.RoleOwner}:    {models.StatusCancelled},

	{models.StatusPickedUp, models.RoleDelivery}: {models.StatusOnTheWay, models.StatusCancelled},
	{models.StatusPickedUp, models.RoleOwner}:    {models.StatusCancelled},

	{models.StatusOnTheWay, models.RoleDelivery}: {models.StatusDelivered, models.StatusCancelled},
	{models.StatusOnTheWay, models.RoleOwner}:    {models.StatusCancelled},
}

// NextStatuses returns the statuses the given role may move an order to.
func NextStatuses(from models.OrderStatus, role models.UserRole) []models.OrderStatus {
	return transitions[edge{from, role}]
}

// CanTransition checks whether a role may move an order from one status to another.
func CanTransition(from, to models.OrderStatus, role models.UserRole) bool {
	for _, next := range transitions[edge{from, role}] {
		if next == to {
			return true
		}
	}
	return false
}
