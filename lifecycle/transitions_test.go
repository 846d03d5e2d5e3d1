package lifecycle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"food-delivery-marketplace/lifecycle"
	"food-delivery-marketplace/models"
)

func TestCanTransitionForwardEdges(t *testing.T) {
	cases := []struct {
		from models.OrderStatus
		to   models.OrderStatus
		role models.UserRole
	}{
		{models.StatusPending, models.StatusAccepted, models.RoleOwner},
		{models.StatusAccepted, models.StatusPreparing, models.RoleOwner},
		{models.StatusPreparing, models.StatusReadyForPickup, models.RoleOwner},
		{models.StatusReadyForPickup, models.StatusPickedUp, models.RoleDelivery},
		{models.StatusPickedUp, models.StatusOnTheWay, models.RoleDelivery},
		{models.StatusOnTheWay, models.StatusDelivered, models.RoleDelivery},
	}
	for _, tc := range cases {
		assert.True(t, lifecycle.CanTransition(tc.from, tc.to, tc.role),
			"%s → %s should be allowed for %s", tc.from, tc.to, tc.role)
	}
}

func TestCanTransitionRejectsWrongRole(t *testing.T) {
	assert.False(t, lifecycle.CanTransition(models.StatusPending, models.StatusAccepted, models.RoleCustomer))
	assert.False(t, lifecycle.CanTransition(models.StatusPending, models.StatusAccepted, models.RoleDelivery))
	assert.False(t, lifecycle.CanTransition(models.StatusReadyForPickup, models.StatusPickedUp, models.RoleOwner))
	assert.False(t, lifecycle.CanTransition(models.StatusOnTheWay, models.StatusDelivered, models.RoleCustomer))
}

func TestCanTransitionRejectsBackward(t *testing.T) {
	assert.False(t, lifecycle.CanTransition(models.StatusOnTheWay, models.StatusPreparing, models.RoleOwner))
	assert.False(t, lifecycle.CanTransition(models.StatusDelivered, models.StatusOnTheWay, models.RoleDelivery))
	assert.False(t, lifecycle.CanTransition(models.StatusAccepted, models.StatusPending, models.RoleOwner))
	assert.False(t, lifecycle.CanTransition(models.StatusPreparing, models.StatusAccepted, models.RoleCustomer))
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	roles := []models.UserRole{models.RoleCustomer, models.RoleOwner, models.RoleDelivery}
	for _, role := range roles {
		assert.Empty(t, lifecycle.NextStatuses(models.StatusDelivered, role))
		assert.Empty(t, lifecycle.NextStatuses(models.StatusCancelled, role))
	}
}

func TestCancellationEdges(t *testing.T) {
	// The owner may cancel any non-terminal order.
	for _, from := range []models.OrderStatus{
		models.StatusPending, models.StatusAccepted, models.StatusPreparing,
		models.StatusReadyForPickup, models.StatusPickedUp, models.StatusOnTheWay,
	} {
		assert.True(t, lifecycle.CanTransition(from, models.StatusCancelled, models.RoleOwner),
			"owner should be able to cancel from %s", from)
	}
	// The customer may only cancel before the kitchen is committed.
	assert.True(t, lifecycle.CanTransition(models.StatusPending, models.StatusCancelled, models.RoleCustomer))
	assert.True(t, lifecycle.CanTransition(models.StatusAccepted, models.StatusCancelled, models.RoleCustomer))
	assert.False(t, lifecycle.CanTransition(models.StatusPreparing, models.StatusCancelled, models.RoleCustomer))
	// The courier may only cancel once the order is in their hands.
	assert.True(t, lifecycle.CanTransition(models.StatusPickedUp, models.StatusCancelled, models.RoleDelivery))
	assert.False(t, lifecycle.CanTransition(models.StatusPending, models.StatusCancelled, models.RoleDelivery))
}
