package handler

import (
	"errors"
	"net/http"

	"futstore-be/internal/history"

	"github.com/gin-gonic/gin"
)

type HistoryHandler struct {
	service history.Service
}

func NewHistoryHandler(service history.Service) *HistoryHandler {
	return &HistoryHandler{service: service}
}

func (h *HistoryHandler) List(c *gin.Context) {
	result, err := h.service.List(c.Request.Context(), history.ListOptions{
		Date:   c.Query("date"),
		Search: c.Query("q"),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	})
	if errors.Is(err, history.ErrInvalidDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *HistoryHandler) Clear(c *gin.Context) {
	err := h.service.Clear(c.Request.Context())
	if errors.Is(err, history.ErrForbidden) {
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "history cleared"})
}
