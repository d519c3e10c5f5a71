package handler

import (
	"errors"
	"net/http"

	"futstore-be/internal/user"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service user.Service
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) Login(c *gin.Context) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	token, u, err := h.service.Login(c.Request.Context(), body.Email, body.Password)
	if errors.Is(err, user.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": u})
}

func (h *UserHandler) Register(c *gin.Context) {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	u, err := h.service.Register(c.Request.Context(), body.Name, body.Email, body.Password, body.Role)
	switch {
	case errors.Is(err, user.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
	case errors.Is(err, user.ErrEmailExists):
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
	case err != nil:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusCreated, u)
	}
}
