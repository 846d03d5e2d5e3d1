package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"food-delivery-marketplace/config"
	"food-delivery-marketplace/handlers"
	"food-delivery-marketplace/models"
)

// asUser injects auth context the way the jwt middleware would.
func asUser(userID uint, role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Set("role", string(role))
		c.Next()
	}
}

func setupOwnerRouter(t *testing.T, ownerID uint) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	owner := r.Group("/api/restaurants", asUser(ownerID, models.RoleOwner))
	owner.GET("/my-profile", handlers.GetMyProfile)
	owner.POST("/profile", handlers.UpsertProfile)
	owner.POST("/menu", handlers.AddMenuItem)
	owner.PUT("/menu/:id", handlers.UpdateMenuItem)
	owner.DELETE("/menu/:id", handlers.DeleteMenuItem)
	return r
}

func TestRestaurantProfileLifecycle(t *testing.T) {
	setupAuthRouter(t) // reuses the in-memory DB wiring
	owner := models.User{Name: "Ravi", Phone: "+919800000002", Role: models.RoleOwner}
	require.NoError(t, config.DB.Create(&owner).Error)
	r := setupOwnerRouter(t, owner.ID)

	// Create.
	w := postJSON(t, r, "/api/restaurants/profile", gin.H{
		"name": "Spice Route", "address": "MG Road, Bengaluru", "hours": "10:00-23:00",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode(t, w)["restaurant"].(map[string]interface{})
	id := uint(created["id"].(float64))

	// Update by id.
	w = postJSON(t, r, "/api/restaurants/profile", gin.H{"id": id, "hours": "09:00-22:00"})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode(t, w)["restaurant"].(map[string]interface{})
	assert.Equal(t, "09:00-22:00", updated["hours"])
	assert.Equal(t, "Spice Route", updated["name"])

	// Updating someone else's restaurant id fails.
	w = postJSON(t, r, "/api/restaurants/profile", gin.H{"id": id + 99, "name": "Hijack"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Creating without the required fields fails.
	w = postJSON(t, r, "/api/restaurants/profile", gin.H{"hours": "24/7"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMenuItemCRUD(t *testing.T) {
	setupAuthRouter(t)
	owner := models.User{Name: "Ravi", Phone: "+919800000002", Role: models.RoleOwner}
	require.NoError(t, config.DB.Create(&owner).Error)
	restaurant := models.Restaurant{OwnerID: owner.ID, Name: "Spice Route", Address: "MG Road"}
	require.NoError(t, config.DB.Create(&restaurant).Error)
	r := setupOwnerRouter(t, owner.ID)

	// Add without an explicit restaurantId lands on the sole restaurant.
	w := postJSON(t, r, "/api/restaurants/menu", gin.H{"name": "Burger", "price": 150.0})
	require.Equal(t, http.StatusCreated, w.Code)
	item := decode(t, w)["item"].(map[string]interface{})
	itemID := uint(item["id"].(float64))
	assert.Equal(t, float64(restaurant.ID), item["restaurant_id"])
	assert.Equal(t, true, item["available"])

	// Partial update flips availability without touching the rest.
	w = putJSON(t, r, "/api/restaurants/menu", itemID, gin.H{"available": false})
	require.Equal(t, http.StatusOK, w.Code)
	item = decode(t, w)["item"].(map[string]interface{})
	assert.Equal(t, false, item["available"])
	assert.Equal(t, "Burger", item["name"])
	assert.Equal(t, 150.0, item["price"])

	// A different owner cannot touch the item.
	intruder := models.User{Name: "Mallory", Phone: "+919800000066", Role: models.RoleOwner}
	require.NoError(t, config.DB.Create(&intruder).Error)
	r2 := setupOwnerRouter(t, intruder.ID)
	w = putJSON(t, r2, "/api/restaurants/menu", itemID, gin.H{"price": 1.0})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Delete removes it.
	w = deleteItem(t, r, "/api/restaurants/menu", itemID)
	require.Equal(t, http.StatusOK, w.Code)
	var count int64
	config.DB.Model(&models.MenuItem{}).Where("id = ?", itemID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func putJSON(t *testing.T, r *gin.Engine, base string, id uint, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPut, fmt.Sprintf("%s/%d", base, id), bytes.NewBuffer(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func deleteItem(t *testing.T, r *gin.Engine, base string, id uint) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/%d", base, id), nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAddMenuItemWithoutRestaurant(t *testing.T) {
	setupAuthRouter(t)
	owner := models.User{Name: "Ravi", Phone: "+919800000002", Role: models.RoleOwner}
	require.NoError(t, config.DB.Create(&owner).Error)
	r := setupOwnerRouter(t, owner.ID)

	w := postJSON(t, r, "/api/restaurants/menu", gin.H{"name": "Burger", "price": 150.0})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
