package Controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/adscreener/adscreener/controllers"
	"github.com/adscreener/adscreener/models"
	"github.com/adscreener/adscreener/store/memory"
	"github.com/adscreener/adscreener/utils"
)

func setupUserRouter(users *memory.UserRepository, notifs *memory.NotificationRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	userCtrl := controllers.NewUserController(users, notifs)
	router.POST("/register", userCtrl.Register)
	router.POST("/login", userCtrl.Login)
	return router
}

func TestRegisterAndLogin(t *testing.T) {
	utils.InitLogger()
	users := memory.NewUserRepository()
	notifs := memory.NewNotificationRepository()
	router := setupUserRouter(users, notifs)

	registerPayload := map[string]string{
		"name":     "Test User",
		"email":    "test@example.com",
		"password": "password123",
		"role":     models.RoleSubmitter,
	}
	payloadBytes, err := json.Marshal(registerPayload)
	assert.NoError(t, err)

	req, err := http.NewRequest("POST", "/register", bytes.NewBuffer(payloadBytes))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	// Password hash tidak boleh bocor di response
	assert.NotContains(t, w.Body.String(), "password123")

	loginPayload := map[string]string{
		"email":    "test@example.com",
		"password": "password123",
	}
	payloadBytes, err = json.Marshal(loginPayload)
	assert.NoError(t, err)

	req, err = http.NewRequest("POST", "/login", bytes.NewBuffer(payloadBytes))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.Token)

	claims, err := utils.ParseToken(resp.Data.Token)
	assert.NoError(t, err)
	assert.Equal(t, models.RoleSubmitter, claims.Role)
	assert.NotEmpty(t, claims.UserID)
}

func TestLoginWrongPassword(t *testing.T) {
	utils.InitLogger()
	users := memory.NewUserRepository()
	notifs := memory.NewNotificationRepository()
	router := setupUserRouter(users, notifs)

	registerPayload, _ := json.Marshal(map[string]string{
		"name":     "Test User",
		"email":    "test@example.com",
		"password": "password123",
		"role":     models.RoleSubmitter,
	})
	req, _ := http.NewRequest("POST", "/register", bytes.NewBuffer(registerPayload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	loginPayload, _ := json.Marshal(map[string]string{
		"email":    "test@example.com",
		"password": "wrong-password",
	})
	req, _ = http.NewRequest("POST", "/login", bytes.NewBuffer(loginPayload))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterRejectsInvalidRole(t *testing.T) {
	utils.InitLogger()
	users := memory.NewUserRepository()
	notifs := memory.NewNotificationRepository()
	router := setupUserRouter(users, notifs)

	registerPayload, _ := json.Marshal(map[string]string{
		"name":     "Test User",
		"email":    "test@example.com",
		"password": "password123",
		"role":     "superuser",
	})
	req, _ := http.NewRequest("POST", "/register", bytes.NewBuffer(registerPayload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func setupProfileRouter(users *memory.UserRepository, notifs *memory.NotificationRepository, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	router.Use(fakeAuth(userID, models.RoleSubmitter))
	userCtrl := controllers.NewUserController(users, notifs)
	router.GET("/profile", userCtrl.GetProfile)
	router.PATCH("/profile", userCtrl.UpdateProfile)
	return router
}

func TestUpdateProfileUnknownUserReturns404(t *testing.T) {
	utils.InitLogger()
	users := memory.NewUserRepository()
	notifs := memory.NewNotificationRepository()
	router := setupProfileRouter(users, notifs, "ghost")

	payload, _ := json.Marshal(map[string]string{
		"name":  "Nobody",
		"email": "nobody@example.com",
	})
	req, _ := http.NewRequest("PATCH", "/profile", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateProfileReturnsFullUser(t *testing.T) {
	utils.InitLogger()
	users := memory.NewUserRepository()
	notifs := memory.NewNotificationRepository()

	created, err := users.Create(context.Background(), models.User{
		Name:     "Before",
		Email:    "before@example.com",
		Password: "hashed",
		Role:     models.RoleSubmitter,
	})
	assert.NoError(t, err)

	router := setupProfileRouter(users, notifs, created.ID)

	payload, _ := json.Marshal(map[string]string{
		"name":  "After",
		"email": "after@example.com",
	})
	req, _ := http.NewRequest("PATCH", "/profile", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Response membawa user lengkap dari store, bukan struct input yang sparse
	var resp struct {
		Data models.User `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "After", resp.Data.Name)
	assert.Equal(t, "after@example.com", resp.Data.Email)
	assert.Equal(t, models.RoleSubmitter, resp.Data.Role)
	assert.False(t, resp.Data.CreatedAt.IsZero())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	utils.InitLogger()
	users := memory.NewUserRepository()
	notifs := memory.NewNotificationRepository()
	router := setupUserRouter(users, notifs)

	registerPayload, _ := json.Marshal(map[string]string{
		"name":     "Test User",
		"email":    "dup@example.com",
		"password": "password123",
		"role":     models.RoleSubmitter,
	})
	req, _ := http.NewRequest("POST", "/register", bytes.NewBuffer(registerPayload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	req, _ = http.NewRequest("POST", "/register", bytes.NewBuffer(registerPayload))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
}
