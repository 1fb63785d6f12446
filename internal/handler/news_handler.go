package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lukeringworm/dynameter-deploy/internal/model"
)

// Pipeline is the slice of the ingestion pipeline the news endpoints need.
type Pipeline interface {
	Articles(category model.Category) []model.Article
	AllArticles() map[model.Category][]model.Article
	CategoryScores() map[model.Category]float64
	RunCycle(ctx context.Context)
}

// IndexStore serves the persisted category and milestone data.
type IndexStore interface {
	GetCategories() ([]model.CategoryInfo, error)
	GetCategory(key model.Category) (*model.CategoryInfo, error)
	GetMilestones(key model.Category) ([]model.Milestone, error)
}

type NewsHandler struct {
	pipeline Pipeline
	store    IndexStore
}

func NewNewsHandler(pipeline Pipeline, store IndexStore) *NewsHandler {
	return &NewsHandler{pipeline: pipeline, store: store}
}

// GetIndex returns the overall index plus every category snapshot.
func (h *NewsHandler) GetIndex(c *gin.Context) {
	categories, err := h.store.GetCategories()
	if err != nil {
		slog.Error("error fetching categories", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch index data"})
		return
	}

	var res IndexResponse
	var total float64
	for _, cat := range categories {
		total += cat.Score
		res.Categories = append(res.Categories, categoryResponse(cat))
	}
	if len(categories) > 0 {
		res.OverallScore = total / float64(len(categories))
	}

	c.JSON(http.StatusOK, res)
}

// GetCategoryDetails returns one category's snapshot and its milestones.
func (h *NewsHandler) GetCategoryDetails(c *gin.Context) {
	key, ok := model.ParseCategory(c.Param("categoryKey"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
		return
	}

	info, err := h.store.GetCategory(key)
	if err != nil {
		slog.Error("error fetching category", "error", err, "category", key)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch category details"})
		return
	}
	if info == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
		return
	}

	milestones, err := h.store.GetMilestones(key)
	if err != nil {
		slog.Error("error fetching milestones", "error", err, "category", key)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch category details"})
		return
	}

	c.JSON(http.StatusOK, CategoryDetailsResponse{
		CategoryResponse: categoryResponse(*info),
		Milestones:       milestones,
	})
}

// GetNews returns all cached articles keyed by category.
func (h *NewsHandler) GetNews(c *gin.Context) {
	c.JSON(http.StatusOK, NewsResponse(h.pipeline.AllArticles()))
}

// GetCategoryNews returns one category's cached articles, newest first.
func (h *NewsHandler) GetCategoryNews(c *gin.Context) {
	category, ok := model.ParseCategory(c.Param("category"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
		return
	}
	c.JSON(http.StatusOK, h.pipeline.Articles(category))
}

// GetCategoryScores returns the live 0-100 score per category derived from
// scored articles.
func (h *NewsHandler) GetCategoryScores(c *gin.Context) {
	c.JSON(http.StatusOK, CategoryScoresResponse(h.pipeline.CategoryScores()))
}

// RefreshFeeds triggers a full fetch cycle synchronously.
func (h *NewsHandler) RefreshFeeds(c *gin.Context) {
	h.pipeline.RunCycle(c.Request.Context())
	c.JSON(http.StatusOK, RefreshResponse{
		Message:   "RSS feeds refreshed successfully",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

func (h *NewsHandler) GetHealth(c *gin.Context) {
	if _, err := h.store.GetCategories(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"storage": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"storage": "connected",
	})
}

func categoryResponse(info model.CategoryInfo) CategoryResponse {
	return CategoryResponse{
		Key:           info.Key,
		Name:          info.Name,
		Score:         info.Score,
		Change:        info.Change,
		Icon:          info.Icon,
		Color:         info.Color,
		Description:   info.Description,
		CurrentStatus: info.CurrentStatus,
	}
}
