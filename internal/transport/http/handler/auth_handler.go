package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gamereview-api/internal/service"
	"go-gamereview-api/internal/transport/http/response"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type registerIn struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var in registerIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	u, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
	})
	if err != nil {
		response.Err(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

type loginIn struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var in loginIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	out, err := h.auth.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		response.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type refreshIn struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var in refreshIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	out, err := h.auth.Refresh(c.Request.Context(), in.RefreshToken)
	if err != nil {
		response.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
