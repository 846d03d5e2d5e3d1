package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"food-delivery-marketplace/config"
	"food-delivery-marketplace/handlers"
	"food-delivery-marketplace/models"
	"food-delivery-marketplace/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	if _, err := config.Load(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func setupAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, config.Migrate(db))
	config.DB = db

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/auth/request-otp", handlers.RequestOTP)
	r.POST("/api/auth/verify-otp", handlers.VerifyOTP)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, path, bytes.NewBuffer(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestRequestOTPRegistersNewUser(t *testing.T) {
	r := setupAuthRouter(t)

	w := postJSON(t, r, "/api/auth/request-otp", gin.H{
		"phone": "+919876543210",
		"name":  "Asha",
		"role":  "customer",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var user models.User
	require.NoError(t, config.DB.Where("phone = ?", "+919876543210").First(&user).Error)
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.Equal(t, "Asha", user.Name)
}

func TestRequestOTPRequiresCountryCode(t *testing.T) {
	r := setupAuthRouter(t)

	w := postJSON(t, r, "/api/auth/request-otp", gin.H{
		"phone": "9876543210",
		"name":  "Asha",
		"role":  "customer",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequestOTPNewUserNeedsNameAndRole(t *testing.T) {
	r := setupAuthRouter(t)

	w := postJSON(t, r, "/api/auth/request-otp", gin.H{"phone": "+919876543210"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["error"], "Name and Role are required")
}

func TestRequestOTPRejectsUnknownRole(t *testing.T) {
	r := setupAuthRouter(t)

	w := postJSON(t, r, "/api/auth/request-otp", gin.H{
		"phone": "+919876543210",
		"name":  "Asha",
		"role":  "admin",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequestOTPRejectsRoleChange(t *testing.T) {
	r := setupAuthRouter(t)

	w := postJSON(t, r, "/api/auth/request-otp", gin.H{
		"phone": "+919876543210",
		"name":  "Ravi",
		"role":  "owner",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Same phone, different role: rejected with a message naming the stored role.
	w = postJSON(t, r, "/api/auth/request-otp", gin.H{
		"phone": "+919876543210",
		"name":  "Ravi",
		"role":  "delivery",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["error"], "owner")
}

func TestVerifyOTPWrongCode(t *testing.T) {
	r := setupAuthRouter(t)

	postJSON(t, r, "/api/auth/request-otp", gin.H{
		"phone": "+919876543210",
		"name":  "Asha",
		"role":  "customer",
	})

	w := postJSON(t, r, "/api/auth/verify-otp", gin.H{
		"phone": "+919876543210",
		"otp":   "000000",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid OTP", decode(t, w)["error"])
}

func TestVerifyOTPUnknownPhone(t *testing.T) {
	r := setupAuthRouter(t)

	w := postJSON(t, r, "/api/auth/verify-otp", gin.H{
		"phone": "+919800011122",
		"otp":   config.C.OTP.Code,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVerifyOTPReturnsToken(t *testing.T) {
	r := setupAuthRouter(t)

	postJSON(t, r, "/api/auth/request-otp", gin.H{
		"phone": "+919876543210",
		"name":  "Asha",
		"role":  "customer",
	})

	w := postJSON(t, r, "/api/auth/verify-otp", gin.H{
		"phone": "+919876543210",
		"otp":   config.C.OTP.Code,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.NotEmpty(t, resp["token"])
	assert.Equal(t, "customer", resp["role"])
	assert.Equal(t, "Asha", resp["name"])
}
