package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/adscreener/adscreener/models"
	"github.com/adscreener/adscreener/realtime"
	"github.com/adscreener/adscreener/store"
	"github.com/adscreener/adscreener/utils"
)

type UserController struct {
	Users  store.UserStore
	Notifs store.NotificationStore
}

func NewUserController(users store.UserStore, notifs store.NotificationStore) *UserController {
	return &UserController{Users: users, Notifs: notifs}
}

// Register
func (uc *UserController) Register(c *gin.Context) {
	type reqBody struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
		Role     string `json:"role" binding:"required"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !models.IsValidRole(body.Role) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid role"))
		return
	}

	if _, err := uc.Users.GetByEmail(c.Request.Context(), body.Email); err == nil {
		utils.RespondError(c, http.StatusConflict, errors.New("email already registered"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	user, err := uc.Users.Create(c.Request.Context(), models.User{
		Name:     body.Name,
		Email:    body.Email,
		Password: string(hashed),
		Role:     body.Role,
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("User registered: %s (%s)", user.Email, user.Role)
	utils.RespondJSON(c, http.StatusCreated, "User registered", user)
}

// Login
func (uc *UserController) Login(c *gin.Context) {
	type reqBody struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	user, err := uc.Users.GetByEmail(c.Request.Context(), body.Email)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid email or password"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid email or password"))
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Login success", gin.H{
		"token": token,
		"user":  user,
	})
}

// GetProfile
func (uc *UserController) GetProfile(c *gin.Context) {
	user, err := uc.Users.GetByID(c.Request.Context(), c.GetString("user_id"))
	if errors.Is(err, store.ErrNotFound) {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "User profile", user)
}

// UpdateProfile -> perubahan profil memicu notifikasi + control push
func (uc *UserController) UpdateProfile(c *gin.Context) {
	type reqBody struct {
		Name  string `json:"name" binding:"required"`
		Email string `json:"email" binding:"required,email"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	userID := c.GetString("user_id")
	user, err := uc.Users.Update(c.Request.Context(), models.User{
		ID:    userID,
		Name:  body.Name,
		Email: body.Email,
	})
	if errors.Is(err, store.ErrNotFound) {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	notif, err := uc.Notifs.Create(c.Request.Context(), models.Notification{
		UserID:  userID,
		Title:   "Profile Updated",
		Message: "Your profile information was updated.",
		Level:   models.LevelInfo,
		Type:    "profile",
	})
	if err != nil {
		utils.ErrorLogger.Printf("Failed to persist profile notification: %v", err)
	} else {
		realtime.PushNotification(userID, notif)
	}
	realtime.PushControl(userID, "", realtime.TypeProfileUpdate, user)

	utils.RespondJSON(c, http.StatusOK, "Profile updated", user)
}
