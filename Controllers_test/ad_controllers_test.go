package Controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"

	"github.com/adscreener/adscreener/controllers"
	"github.com/adscreener/adscreener/models"
	"github.com/adscreener/adscreener/realtime"
	"github.com/adscreener/adscreener/store/memory"
	"github.com/adscreener/adscreener/utils"
)

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// newRealtimeConn registers a live WebSocket connection in the hub so
// broadcast paths can be observed end to end.
func newRealtimeConn(t *testing.T, userID, role string) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := wsUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		realtime.RegisterClient(conn, userID, role)
		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					realtime.UnregisterClient(conn)
					return
				}
			}
		}()
	}))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	assert.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func setupAdRouter(ads *memory.AdRepository, notifs *memory.NotificationRepository, userID, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	router.Use(fakeAuth(userID, role))
	adCtrl := controllers.NewAdController(ads, notifs)
	router.POST("/ads", adCtrl.SubmitAd)
	router.GET("/ads", adCtrl.GetAllAds)
	router.GET("/ads/:ad_id", adCtrl.GetAdByID)
	router.POST("/ads/:ad_id/review", adCtrl.ReviewAd)
	return router
}

func submitTestAd(t *testing.T, router *gin.Engine) models.Ad {
	t.Helper()
	payload, _ := json.Marshal(map[string]string{
		"title":   "Summer Sale",
		"content": "Half price on everything.",
	})
	req, _ := http.NewRequest("POST", "/ads", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data models.Ad `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func TestSubmitAdStartsPending(t *testing.T) {
	utils.InitLogger()
	ads := memory.NewAdRepository()
	notifs := memory.NewNotificationRepository()
	router := setupAdRouter(ads, notifs, "u1", models.RoleSubmitter)

	ad := submitTestAd(t, router)
	assert.Equal(t, models.AdStatusPending, ad.Status)
	assert.Equal(t, "u1", ad.SubmitterID)
	assert.NotEmpty(t, ad.ID)
}

func TestSubmitterSeesOnlyOwnAds(t *testing.T) {
	utils.InitLogger()
	ads := memory.NewAdRepository()
	notifs := memory.NewNotificationRepository()

	_, err := ads.Create(context.Background(), models.Ad{SubmitterID: "u1", Title: "Mine", Content: "c"})
	assert.NoError(t, err)
	_, err = ads.Create(context.Background(), models.Ad{SubmitterID: "u2", Title: "Theirs", Content: "c"})
	assert.NoError(t, err)

	router := setupAdRouter(ads, notifs, "u1", models.RoleSubmitter)
	req, _ := http.NewRequest("GET", "/ads", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []models.Ad `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, "Mine", resp.Data[0].Title)

	// Reviewer melihat semua
	reviewerRouter := setupAdRouter(ads, notifs, "rev1", models.RoleReviewer)
	w = httptest.NewRecorder()
	reviewerRouter.ServeHTTP(w, req)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
}

func TestSubmitAdRefreshesReviewerAndAdminDashboards(t *testing.T) {
	utils.InitLogger()

	base := realtime.ConnectedCount()
	adminConn := newRealtimeConn(t, "adm1", models.RoleAdmin)
	reviewerConn := newRealtimeConn(t, "rev1", models.RoleReviewer)
	assert.Eventually(t, func() bool {
		return realtime.ConnectedCount() >= base+2
	}, 2*time.Second, 10*time.Millisecond)

	ads := memory.NewAdRepository()
	notifs := memory.NewNotificationRepository()
	router := setupAdRouter(ads, notifs, "u1", models.RoleSubmitter)
	ad := submitTestAd(t, router)

	for _, conn := range []*websocket.Conn{adminConn, reviewerConn} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, raw, err := conn.ReadMessage()
		assert.NoError(t, err)

		var frame struct {
			Type string `json:"type"`
			Data struct {
				AdID string `json:"adId"`
			} `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(raw, &frame))
		assert.Equal(t, realtime.TypeDashboardUpdate, frame.Type)
		assert.Equal(t, ad.ID, frame.Data.AdID)
	}
}

func TestReviewAdCreatesNotification(t *testing.T) {
	utils.InitLogger()
	ads := memory.NewAdRepository()
	notifs := memory.NewNotificationRepository()

	ad, err := ads.Create(context.Background(), models.Ad{SubmitterID: "u1", Title: "Summer Sale", Content: "c"})
	assert.NoError(t, err)

	router := setupAdRouter(ads, notifs, "rev1", models.RoleReviewer)
	payload, _ := json.Marshal(map[string]string{
		"status":      models.AdStatusRejected,
		"review_note": "Misleading claims",
	})
	req, _ := http.NewRequest("POST", "/ads/"+ad.ID+"/review", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	updated, err := ads.GetByID(context.Background(), ad.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.AdStatusRejected, updated.Status)
	assert.Equal(t, "rev1", updated.ReviewerID)

	// Submitter mendapat notifikasi persisted
	list, err := notifs.ListByUser(context.Background(), "u1", 0)
	assert.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, "Ad Rejected", list[0].Title)
	assert.Equal(t, models.LevelError, list[0].Level)
	assert.Equal(t, "/ads/"+ad.ID, list[0].DeepLink)
	assert.False(t, list[0].IsRead)
}

func TestReviewAdRejectsInvalidStatus(t *testing.T) {
	utils.InitLogger()
	ads := memory.NewAdRepository()
	notifs := memory.NewNotificationRepository()

	ad, err := ads.Create(context.Background(), models.Ad{SubmitterID: "u1", Title: "Ad", Content: "c"})
	assert.NoError(t, err)

	router := setupAdRouter(ads, notifs, "rev1", models.RoleReviewer)
	payload, _ := json.Marshal(map[string]string{"status": "pending"})
	req, _ := http.NewRequest("POST", "/ads/"+ad.ID+"/review", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReviewUnknownAdReturns404(t *testing.T) {
	utils.InitLogger()
	ads := memory.NewAdRepository()
	notifs := memory.NewNotificationRepository()

	router := setupAdRouter(ads, notifs, "rev1", models.RoleReviewer)
	payload, _ := json.Marshal(map[string]string{"status": models.AdStatusApproved})
	req, _ := http.NewRequest("POST", "/ads/nope/review", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
