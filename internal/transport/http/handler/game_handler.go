package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-gamereview-api/internal/service"
	"go-gamereview-api/internal/transport/http/response"
)

type GameHandler struct {
	games *service.GameService
}

func NewGameHandler(games *service.GameService) *GameHandler {
	return &GameHandler{games: games}
}

func (h *GameHandler) List(c *gin.Context) {
	games, err := h.games.List(c.Request.Context())
	if err != nil {
		response.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, games)
}

func (h *GameHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	g, err := h.games.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

type gameIn struct {
	Title string `json:"title"`
	Genre string `json:"genre"`
}

func (h *GameHandler) Create(c *gin.Context) {
	var in gameIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	g, err := h.games.Create(c.Request.Context(), in.Title, in.Genre)
	if err != nil {
		response.Err(c, err)
		return
	}
	c.JSON(http.StatusCreated, g)
}

type gameUpdateIn struct {
	Title *string `json:"title"`
	Genre *string `json:"genre"`
}

func (h *GameHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in gameUpdateIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	g, err := h.games.Update(c.Request.Context(), id, in.Title, in.Genre)
	if err != nil {
		response.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

func (h *GameHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.games.Delete(c.Request.Context(), id); err != nil {
		response.Err(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// parseID 路径参数必须是正整数，否则直接 400
func parseID(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(v), true
}
