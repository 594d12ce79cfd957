package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gamereview-api/internal/service"
	mdw "go-gamereview-api/internal/transport/http/middleware"
	"go-gamereview-api/internal/transport/http/response"
)

type ReviewHandler struct {
	reviews *service.ReviewService
}

func NewReviewHandler(reviews *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

type reviewCreateIn struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"` // 可省略，默认空串
}

// Create 同一个处理器挂两条路由：
// POST /api/games/:id/reviews 和 POST /api/reviews/game/:gameId
func (h *ReviewHandler) Create(c *gin.Context) {
	name := "id"
	if c.Param(name) == "" {
		name = "gameId"
	}
	gameID, ok := parseID(c, name)
	if !ok {
		return
	}
	var in reviewCreateIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	rv, err := h.reviews.Create(c.Request.Context(), service.CreateReviewInput{
		Rating:   in.Rating,
		Comment:  in.Comment,
		GameID:   gameID,
		AuthorID: mdw.UserID(c),
	})
	if err != nil {
		response.Err(c, err)
		return
	}
	c.JSON(http.StatusCreated, rv)
}

type reviewUpdateIn struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

func (h *ReviewHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in reviewUpdateIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	rv, err := h.reviews.Update(c.Request.Context(), service.UpdateReviewInput{
		ID:            id,
		Rating:        in.Rating,
		Comment:       in.Comment,
		RequesterID:   mdw.UserID(c),
		RequesterRole: mdw.Role(c),
	})
	if err != nil {
		response.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, rv)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.reviews.Delete(c.Request.Context(), id, mdw.UserID(c), mdw.Role(c)); err != nil {
		response.Err(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ReviewHandler) ListByGame(c *gin.Context) {
	gameID, ok := parseID(c, "id")
	if !ok {
		return
	}
	reviews, err := h.reviews.ListByGame(c.Request.Context(), gameID)
	if err != nil {
		response.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}
