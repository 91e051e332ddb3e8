package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"newsline/internal/app"
	"newsline/internal/transport/http/response"
)

type NewsHandler struct {
	newsService *app.NewsService
}

func NewNewsHandler(newsService *app.NewsService) *NewsHandler {
	return &NewsHandler{newsService: newsService}
}

func (h *NewsHandler) GetCategories(c *gin.Context) {
	skip := intQuery(c, "skip", 0)
	limit := intQuery(c, "limit", 100)

	categories, err := h.newsService.GetCategories(c.Request.Context(), skip, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "get categories failed")
		return
	}

	response.OK(c, "get categories success", categories)
}

func (h *NewsHandler) GetNewsList(c *gin.Context) {
	categoryID64, err := strconv.ParseUint(c.Query("categoryId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid categoryId")
		return
	}
	page := intQuery(c, "page", 1)
	pageSize := intQuery(c, "pageSize", 10)

	result, err := h.newsService.GetNewsList(c.Request.Context(), uint(categoryID64), page, pageSize)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid pagination")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "get news list failed")
		}
		return
	}

	response.OK(c, "get news list success", gin.H{
		"list":    result.List,
		"total":   result.Total,
		"hasMore": result.HasMore,
	})
}

func (h *NewsHandler) GetNewsDetail(c *gin.Context) {
	newsID64, err := strconv.ParseUint(c.Query("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid news id")
		return
	}

	result, err := h.newsService.GetNewsDetail(c.Request.Context(), uint(newsID64))
	if err != nil {
		switch {
		case errors.Is(err, app.ErrNewsNotFound):
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "news not found")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "get news detail failed")
		}
		return
	}

	news := result.News
	response.OK(c, "success", gin.H{
		"id":          news.ID,
		"title":       news.Title,
		"content":     news.Content,
		"image":       news.Image,
		"author":      news.Author,
		"publishTime": news.PublishTime,
		"categoryId":  news.CategoryID,
		"views":       news.Views,
		"relatedNews": result.RelatedNews,
	})
}

func (h *NewsHandler) GetHotNews(c *gin.Context) {
	limit := intQuery(c, "limit", 10)

	hot, err := h.newsService.GetHotNews(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "get hot news failed")
		return
	}

	response.OK(c, "get hot news success", hot)
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
