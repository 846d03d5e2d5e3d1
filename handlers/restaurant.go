package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"food-delivery-marketplace/config"
	"food-delivery-marketplace/middleware"
	"food-delivery-marketplace/models"
)

// ── Restaurant profile ──────────────────────────────────────────────────────

// GetMyProfile returns every restaurant owned by the caller.
func GetMyProfile(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	var restaurants []models.Restaurant
	config.DB.Preload("MenuItems").Where("owner_id = ?", ownerID).Find(&restaurants)
	c.JSON(http.StatusOK, gin.H{"count": len(restaurants), "restaurants": restaurants})
}

type UpsertProfileRequest struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Hours   string `json:"hours"`
	Banner  string `json:"banner"`
}

// UpsertProfile creates a restaurant when no id is given, otherwise updates
// the caller's restaurant. One owner may own multiple restaurants.
func UpsertProfile(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	var req UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.ID != 0 {
		var restaurant models.Restaurant
		if err := config.DB.Where("id = ? AND owner_id = ?", req.ID, ownerID).First(&restaurant).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant profile not found"})
			return
		}
		if req.Name != "" {
			restaurant.Name = req.Name
		}
		if req.Address != "" {
			restaurant.Address = req.Address
		}
		if req.Hours != "" {
			restaurant.Hours = req.Hours
		}
		if req.Banner != "" {
			restaurant.Banner = req.Banner
		}
		config.DB.Save(&restaurant)
		c.JSON(http.StatusOK, gin.H{"message": "Restaurant updated", "restaurant": restaurant})
		return
	}

	if req.Name == "" || req.Address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and address are required"})
		return
	}
	restaurant := models.Restaurant{
		OwnerID: ownerID,
		Name:    req.Name,
		Address: req.Address,
		Hours:   req.Hours,
		Banner:  req.Banner,
	}
	if err := config.DB.Create(&restaurant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create restaurant"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Restaurant created", "restaurant": restaurant})
}

// ── Menu management ─────────────────────────────────────────────────────────

type AddMenuItemRequest struct {
	RestaurantID uint    `json:"restaurantId"`
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	Price        float64 `json:"price" binding:"required,gte=0"`
	Image        string  `json:"image"`
}

// AddMenuItem adds an item to the caller's restaurant: the one named in the
// request, or the caller's sole restaurant when omitted.
func AddMenuItem(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	var req AddMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var restaurant models.Restaurant
	query := config.DB.Where("owner_id = ?", ownerID)
	if req.RestaurantID != 0 {
		query = query.Where("id = ?", req.RestaurantID)
	}
	if err := query.First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant profile not found or permission denied"})
		return
	}

	item := models.MenuItem{
		RestaurantID: restaurant.ID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Image:        req.Image,
		Available:    true,
	}
	if err := config.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add menu item"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Menu item added", "item": item})
}

type UpdateMenuItemRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Image       string   `json:"image"`
	Available   *bool    `json:"available"`
}

// UpdateMenuItem partially updates a menu item owned by the caller.
func UpdateMenuItem(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	item, ok := ownedMenuItem(c, ownerID)
	if !ok {
		return
	}

	var req UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != "" {
		item.Name = req.Name
	}
	if req.Description != "" {
		item.Description = req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be non-negative"})
			return
		}
		item.Price = *req.Price
	}
	if req.Image != "" {
		item.Image = req.Image
	}
	if req.Available != nil {
		item.Available = *req.Available
	}
	config.DB.Save(&item)
	c.JSON(http.StatusOK, gin.H{"message": "Menu item updated", "item": item})
}

// DeleteMenuItem removes a menu item owned by the caller.
func DeleteMenuItem(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	item, ok := ownedMenuItem(c, ownerID)
	if !ok {
		return
	}
	config.DB.Delete(&item)
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
}

// ownedMenuItem resolves the :id menu item and checks the caller owns its
// restaurant. Writes the error response itself when the check fails.
func ownedMenuItem(c *gin.Context, ownerID uint) (models.MenuItem, bool) {
	var item models.MenuItem
	if err := config.DB.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return item, false
	}
	var restaurant models.Restaurant
	if err := config.DB.Where("id = ? AND owner_id = ?", item.RestaurantID, ownerID).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't own this menu item"})
		return item, false
	}
	return item, true
}
