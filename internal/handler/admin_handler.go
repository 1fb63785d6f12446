package handler

import (
	"context"
	"log/slog"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lukeringworm/dynameter-deploy/internal/auth"
	"github.com/lukeringworm/dynameter-deploy/internal/stats"
)

// MilestoneUpdater is the milestone service surface the admin panel uses.
type MilestoneUpdater interface {
	CheckAndUpdate(ctx context.Context) (bool, error)
	ForceUpdate(ctx context.Context) (bool, error)
}

type AdminHandler struct {
	auth       *auth.Authenticator
	stats      *stats.Tracker
	milestones MilestoneUpdater
	pipeline   Pipeline
	hasLLMKey  bool
}

func NewAdminHandler(a *auth.Authenticator, tracker *stats.Tracker, milestones MilestoneUpdater, pipeline Pipeline, hasLLMKey bool) *AdminHandler {
	return &AdminHandler{
		auth:       a,
		stats:      tracker,
		milestones: milestones,
		pipeline:   pipeline,
		hasLLMKey:  hasLLMKey,
	}
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Password required"})
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid password"})
		return
	}

	c.SetCookie(auth.SessionCookie, token, int(h.auth.SessionTTL().Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, LoginResponse{Message: "Admin authenticated successfully", Token: token})
}

func (h *AdminHandler) Logout(c *gin.Context) {
	h.auth.Logout(c.Request.Context(), auth.TokenFromRequest(c))
	c.SetCookie(auth.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *AdminHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.stats.Snapshot())
}

func (h *AdminHandler) ResetStats(c *gin.Context) {
	h.stats.Reset()
	c.JSON(http.StatusOK, gin.H{"message": "Statistics reset successfully"})
}

func (h *AdminHandler) RefreshFeeds(c *gin.Context) {
	h.pipeline.RunCycle(c.Request.Context())
	c.JSON(http.StatusOK, RefreshResponse{
		Message:   "RSS feeds refreshed successfully",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

func (h *AdminHandler) GetSystemInfo(c *gin.Context) {
	snap := h.stats.Snapshot()
	c.JSON(http.StatusOK, SystemInfoResponse{
		GoVersion:     runtime.Version(),
		Platform:      runtime.GOOS,
		UptimeSeconds: snap.System.UptimeSeconds,
		Environment:   gin.Mode(),
		HasLLMKey:     h.hasLLMKey,
		QuotaExceeded: snap.System.QuotaExceeded,
	})
}

func (h *AdminHandler) CheckMilestones(c *gin.Context) {
	updated, err := h.milestones.CheckAndUpdate(c.Request.Context())
	if err != nil {
		slog.Error("error checking milestones", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to check milestones"})
		return
	}

	message := "Milestones check completed - targets still in progress"
	if updated {
		message = "All milestones completed! New targets generated."
	}
	c.JSON(http.StatusOK, MilestoneCheckResponse{
		Message:   message,
		Updated:   updated,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

func (h *AdminHandler) UpdateMilestones(c *gin.Context) {
	updated, err := h.milestones.ForceUpdate(c.Request.Context())
	if err != nil {
		slog.Error("error updating milestones", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	if !updated {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to generate new milestones"})
		return
	}

	c.JSON(http.StatusOK, RefreshResponse{
		Message:   "Milestones updated successfully with new AI-generated targets",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}
