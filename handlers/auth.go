package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"food-delivery-marketplace/config"
	"food-delivery-marketplace/middleware"
	"food-delivery-marketplace/models"
	"food-delivery-marketplace/utils"
)

type RequestOTPRequest struct {
	Phone string          `json:"phone" binding:"required"`
	Role  models.UserRole `json:"role"`
	Name  string          `json:"name"`
}

type VerifyOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
	OTP   string `json:"otp" binding:"required"`
}

// RequestOTP registers an unseen phone and "sends" the mock OTP.
// A real SMS channel would slot in where the log line is.
func RequestOTP(c *gin.Context) {
	var req RequestOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !strings.HasPrefix(req.Phone, "+91") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid Indian phone number starting with +91 is required"})
		return
	}

	var user models.User
	err := config.DB.Where("phone = ?", req.Phone).First(&user).Error
	if err != nil {
		// First OTP request for this phone creates the user.
		if req.Name == "" || req.Role == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name and Role are required for new registration"})
			return
		}
		if !req.Role.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role. Must be: customer, owner, or delivery"})
			return
		}
		user = models.User{Name: req.Name, Phone: req.Phone, Role: req.Role}
		if err := config.DB.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}
	} else if req.Role != "" && user.Role != req.Role {
		// Role is immutable: re-registration under a different role is rejected.
		c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists with role: " + string(user.Role)})
		return
	}

	utils.InfoLogger.Infof("[mock otp] sent OTP %s to phone %s", config.C.OTP.Code, req.Phone)

	c.JSON(http.StatusOK, gin.H{"message": "OTP sent successfully (Mock)", "phone": req.Phone})
}

// VerifyOTP checks the fixed test code and returns the user with a bearer token.
func VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.OTP != config.C.OTP.Code {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid OTP"})
		return
	}

	var user models.User
	if err := config.DB.Where("phone = ?", req.Phone).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	token, err := middleware.GenerateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"phone": user.Phone,
		"role":  user.Role,
		"token": token,
	})
}
