package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adscreener/adscreener/store"
	"github.com/adscreener/adscreener/utils"
)

// Batas jumlah notifikasi yang dikembalikan per user
const maxNotificationsPerUser = 100

// Action value for DELETE /notifications to clear only a subset
const actionClearRead = "clearRead"

type NotificationController struct {
	Store store.NotificationStore
}

func NewNotificationController(s store.NotificationStore) *NotificationController {
	return &NotificationController{Store: s}
}

// GetNotifications -> daftar notifikasi milik user yang login, terbaru dulu
func (nc *NotificationController) GetNotifications(c *gin.Context) {
	userID := c.GetString("user_id")

	notifs, err := nc.Store.ListByUser(c.Request.Context(), userID, maxNotificationsPerUser)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "User notifications", notifs)
}

// MarkNotificationsRead -> POST /notifications dengan body {notificationIds: [...]}
func (nc *NotificationController) MarkNotificationsRead(c *gin.Context) {
	type reqBody struct {
		NotificationIDs []string `json:"notificationIds" binding:"required"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if len(body.NotificationIDs) == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("notificationIds must not be empty"))
		return
	}

	userID := c.GetString("user_id")
	if err := nc.Store.MarkRead(c.Request.Context(), userID, body.NotificationIDs); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notifications marked as read", gin.H{
		"notificationIds": body.NotificationIDs,
	})
}

// ClearNotifications -> DELETE /notifications.
// Tanpa body: hapus semua notifikasi user. Dengan body
// {notificationIds, action: "clearRead"}: hapus subset tersebut saja.
func (nc *NotificationController) ClearNotifications(c *gin.Context) {
	type reqBody struct {
		NotificationIDs []string `json:"notificationIds"`
		Action          string   `json:"action"`
		UserID          string   `json:"userId"`
	}

	userID := c.GetString("user_id")

	var body reqBody
	// Body opsional untuk clear-all; abaikan error bind saat body kosong
	_ = c.ShouldBindJSON(&body)

	if body.Action == actionClearRead {
		if len(body.NotificationIDs) == 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("notificationIds required for clearRead"))
			return
		}
		if err := nc.Store.DeleteByIDs(c.Request.Context(), userID, body.NotificationIDs); err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Read notifications cleared", gin.H{
			"notificationIds": body.NotificationIDs,
		})
		return
	}

	if err := nc.Store.DeleteAllForUser(c.Request.Context(), userID); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All notifications cleared", nil)
}
