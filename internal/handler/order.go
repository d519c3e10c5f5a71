package handler

import (
	"errors"
	"net/http"
	"time"

	"futstore-be/internal/order"

	"github.com/gin-gonic/gin"
)

// staleAfter is how long a pending order without a gateway token may
// live before the reconcile sweep cancels it.
const staleAfter = 24 * time.Hour

type OrderHandler struct {
	service order.Service
}

func NewOrderHandler(service order.Service) *OrderHandler {
	return &OrderHandler{service: service}
}

func (h *OrderHandler) Checkout(c *gin.Context) {
	var input order.CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	input.IdempotencyKey = c.GetHeader("Idempotency-Key")

	result, err := h.service.Checkout(c.Request.Context(), input)
	if errors.Is(err, order.ErrEmptyCart) || errors.Is(err, order.ErrInvalidCart) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		// Storage and gateway failures stay generic.
		c.JSON(http.StatusBadGateway, gin.H{"error": "checkout failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"orderId":     result.Order.Reference,
		"redirectUrl": result.RedirectURL,
	})
}

func (h *OrderHandler) Get(c *gin.Context) {
	o, err := h.service.GetByReference(c.Request.Context(), c.Param("reference"))
	if errors.Is(err, order.ErrOrderNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) List(c *gin.Context) {
	result, err := h.service.List(c.Request.Context(), order.ListOptions{
		Status: c.Query("status"),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	})
	if errors.Is(err, order.ErrInvalidStatus) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	o, err := h.service.SetStatus(c.Request.Context(), c.Param("id"), order.Status(body.Status))
	switch {
	case errors.Is(err, order.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
	case errors.Is(err, order.ErrInvalidStatus), errors.Is(err, order.ErrIllegalTransition):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	default:
		c.JSON(http.StatusOK, o)
	}
}

func (h *OrderHandler) Reconcile(c *gin.Context) {
	cancelled, err := h.service.ReconcileStale(c.Request.Context(), staleAfter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cancelled": cancelled})
}
