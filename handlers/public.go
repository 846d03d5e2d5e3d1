package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"food-delivery-marketplace/config"
	"food-delivery-marketplace/models"
)

// ListRestaurants returns all restaurants (public)
func ListRestaurants(c *gin.Context) {
	var restaurants []models.Restaurant
	query := config.DB.Order("created_at desc")

	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	query.Find(&restaurants)
	c.JSON(http.StatusOK, gin.H{
		"count":       len(restaurants),
		"restaurants": restaurants,
	})
}

// GetRestaurant returns a single restaurant together with its menu (public)
func GetRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	var menu []models.MenuItem
	config.DB.Where("restaurant_id = ?", restaurant.ID).Find(&menu)

	c.JSON(http.StatusOK, gin.H{
		"restaurant": restaurant,
		"menu":       menu,
	})
}
