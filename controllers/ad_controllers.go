package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adscreener/adscreener/models"
	"github.com/adscreener/adscreener/realtime"
	"github.com/adscreener/adscreener/store"
	"github.com/adscreener/adscreener/utils"
)

type AdController struct {
	Ads    store.AdStore
	Notifs store.NotificationStore
}

func NewAdController(ads store.AdStore, notifs store.NotificationStore) *AdController {
	return &AdController{Ads: ads, Notifs: notifs}
}

// SubmitAd -> submitter mengajukan iklan baru, status awal pending
func (ac *AdController) SubmitAd(c *gin.Context) {
	type reqBody struct {
		Title     string `json:"title" binding:"required"`
		Content   string `json:"content" binding:"required"`
		ImageURL  string `json:"image_url"`
		TargetURL string `json:"target_url"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	ad := models.Ad{
		SubmitterID: c.GetString("user_id"),
		Title:       body.Title,
		Content:     body.Content,
		ImageURL:    body.ImageURL,
		TargetURL:   body.TargetURL,
		Status:      models.AdStatusPending,
	}

	created, err := ac.Ads.Create(c.Request.Context(), ad)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Reviewer dan admin dashboards refresh saat ada submission baru
	for _, role := range []string{models.RoleReviewer, models.RoleAdmin} {
		realtime.BroadcastControl(role, realtime.TypeDashboardUpdate, gin.H{
			"adId": created.ID,
		})
	}

	utils.RespondJSON(c, http.StatusCreated, "Ad submitted", created)
}

// GetAllAds -> submitter hanya melihat miliknya, reviewer/admin melihat semua
func (ac *AdController) GetAllAds(c *gin.Context) {
	userID := c.GetString("user_id")
	role := c.GetString("role")

	var (
		ads []models.Ad
		err error
	)
	if role == models.RoleSubmitter {
		ads, err = ac.Ads.ListBySubmitter(c.Request.Context(), userID)
	} else {
		ads, err = ac.Ads.ListAll(c.Request.Context())
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All ads", ads)
}

// GetAdByID
func (ac *AdController) GetAdByID(c *gin.Context) {
	ad, err := ac.Ads.GetByID(c.Request.Context(), c.Param("ad_id"))
	if errors.Is(err, store.ErrNotFound) {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Ad detail", ad)
}

// ReviewAd -> reviewer/admin approve atau reject; submitter diberi tahu
// lewat notifikasi persisted sekaligus push realtime.
func (ac *AdController) ReviewAd(c *gin.Context) {
	type reqBody struct {
		Status     string `json:"status" binding:"required"`
		ReviewNote string `json:"review_note"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if body.Status != models.AdStatusApproved && body.Status != models.AdStatusRejected {
		utils.RespondError(c, http.StatusBadRequest, errors.New("status must be approved or rejected"))
		return
	}

	reviewerID := c.GetString("user_id")
	ad, err := ac.Ads.UpdateReview(c.Request.Context(), c.Param("ad_id"), body.Status, body.ReviewNote, reviewerID)
	if errors.Is(err, store.ErrNotFound) {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	notif := reviewNotification(ad)
	created, err := ac.Notifs.Create(c.Request.Context(), notif)
	if err != nil {
		// Push tetap jalan dengan notifikasi yang belum persisted
		utils.ErrorLogger.Printf("Failed to persist review notification: %v", err)
		created = notif
	}

	realtime.PushNotification(ad.SubmitterID, created)
	realtime.PushControl(ad.SubmitterID, "", realtime.TypeDashboardUpdate, gin.H{
		"adId":   ad.ID,
		"status": ad.Status,
	})

	utils.RespondJSON(c, http.StatusOK, "Ad reviewed", ad)
}

func reviewNotification(ad models.Ad) models.Notification {
	notif := models.Notification{
		UserID:   ad.SubmitterID,
		Type:     "ad_review",
		DeepLink: fmt.Sprintf("/ads/%s", ad.ID),
	}
	if ad.Status == models.AdStatusApproved {
		notif.Title = "Ad Approved"
		notif.Message = fmt.Sprintf("Your ad %q has been approved.", ad.Title)
		notif.Level = models.LevelSuccess
	} else {
		notif.Title = "Ad Rejected"
		notif.Message = fmt.Sprintf("Your ad %q was rejected. %s", ad.Title, ad.ReviewNote)
		notif.Level = models.LevelError
	}
	return notif
}
