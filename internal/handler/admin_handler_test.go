package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
	"github.com/lukeringworm/dynameter-deploy/internal/auth"
	"github.com/lukeringworm/dynameter-deploy/internal/stats"
)

type fakeUpdater struct {
	updated bool
	err     error
	calls   int
}

func (f *fakeUpdater) CheckAndUpdate(ctx context.Context) (bool, error) {
	f.calls++
	return f.updated, f.err
}

func (f *fakeUpdater) ForceUpdate(ctx context.Context) (bool, error) {
	f.calls++
	return f.updated, f.err
}

func newAdminRouter(updater MilestoneUpdater, tracker *stats.Tracker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	a := auth.NewAuthenticator("secret", auth.NewMemoryStore())
	h := NewAdminHandler(a, tracker, updater, &fakePipeline{}, true)

	r := gin.New()
	r.POST("/api/admin/login", h.Login)
	admin := r.Group("/api/admin", a.Middleware())
	admin.POST("/logout", h.Logout)
	admin.GET("/stats", h.GetStats)
	admin.POST("/reset-stats", h.ResetStats)
	admin.POST("/refresh-feeds", h.RefreshFeeds)
	admin.GET("/system-info", h.GetSystemInfo)
	admin.POST("/check-milestones", h.CheckMilestones)
	admin.POST("/update-milestones", h.UpdateMilestones)
	return r
}

func loginToken(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/admin/login", strings.NewReader(`{"password":"secret"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", w.Code, w.Body.String())
	}
	var res LoginResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	return res.Token
}

func adminRequest(r *gin.Engine, token, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	return w
}

func TestAdminLogin_WrongPassword(t *testing.T) {
	r := newAdminRouter(&fakeUpdater{}, stats.NewTracker())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/admin/login", strings.NewReader(`{"password":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminLogin_EmptyPassword(t *testing.T) {
	r := newAdminRouter(&fakeUpdater{}, stats.NewTracker())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/admin/login", strings.NewReader(`{"password":""}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminStats_RequiresAuth(t *testing.T) {
	r := newAdminRouter(&fakeUpdater{}, stats.NewTracker())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/admin/stats", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminStats_WithToken(t *testing.T) {
	tracker := stats.NewTracker()
	tracker.RecordArticleFetched(3)
	r := newAdminRouter(&fakeUpdater{}, tracker)
	token := loginToken(t, r)

	w := adminRequest(r, token, "GET", "/api/admin/stats")

	assert.Equal(t, http.StatusOK, w.Code)
	var snap stats.Snapshot
	json.Unmarshal(w.Body.Bytes(), &snap)
	assert.Equal(t, 3, snap.Articles.TotalFetched)
}

func TestAdminLogout_InvalidatesSession(t *testing.T) {
	r := newAdminRouter(&fakeUpdater{}, stats.NewTracker())
	token := loginToken(t, r)

	w := adminRequest(r, token, "POST", "/api/admin/logout")
	assert.Equal(t, http.StatusOK, w.Code)

	w = adminRequest(r, token, "GET", "/api/admin/stats")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminResetStats(t *testing.T) {
	tracker := stats.NewTracker()
	tracker.RecordArticleFetched(5)
	r := newAdminRouter(&fakeUpdater{}, tracker)
	token := loginToken(t, r)

	w := adminRequest(r, token, "POST", "/api/admin/reset-stats")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, tracker.Snapshot().Articles.TotalFetched)
}

func TestAdminSystemInfo(t *testing.T) {
	r := newAdminRouter(&fakeUpdater{}, stats.NewTracker())
	token := loginToken(t, r)

	w := adminRequest(r, token, "GET", "/api/admin/system-info")

	assert.Equal(t, http.StatusOK, w.Code)
	var info SystemInfoResponse
	json.Unmarshal(w.Body.Bytes(), &info)
	assert.Equal(t, true, info.HasLLMKey)
	assert.NotEqual(t, "", info.GoVersion)
}

func TestCheckMilestones_NoUpdate(t *testing.T) {
	updater := &fakeUpdater{updated: false}
	r := newAdminRouter(updater, stats.NewTracker())
	token := loginToken(t, r)

	w := adminRequest(r, token, "POST", "/api/admin/check-milestones")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, updater.calls)
	var res MilestoneCheckResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, false, res.Updated)
}

func TestCheckMilestones_Error(t *testing.T) {
	r := newAdminRouter(&fakeUpdater{err: errors.New("llm down")}, stats.NewTracker())
	token := loginToken(t, r)

	w := adminRequest(r, token, "POST", "/api/admin/check-milestones")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestUpdateMilestones_NotUpdated(t *testing.T) {
	r := newAdminRouter(&fakeUpdater{updated: false}, stats.NewTracker())
	token := loginToken(t, r)

	w := adminRequest(r, token, "POST", "/api/admin/update-milestones")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateMilestones_Success(t *testing.T) {
	r := newAdminRouter(&fakeUpdater{updated: true}, stats.NewTracker())
	token := loginToken(t, r)

	w := adminRequest(r, token, "POST", "/api/admin/update-milestones")

	assert.Equal(t, http.StatusOK, w.Code)
}
