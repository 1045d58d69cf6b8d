package subscription

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"foodgram/internal/pkg/response"
	"foodgram/internal/repository"
)

// Handler обрабатывает HTTP-запросы подписок
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	users := protected.Group("/users")
	{
		users.GET("/subscriptions", h.List)
		users.POST("/:id/subscribe", h.Subscribe)
		users.DELETE("/:id/subscribe", h.Unsubscribe)
	}
}

func (h *Handler) Subscribe(c *gin.Context) {
	targetID, ok := userID(c)
	if !ok {
		return
	}

	result, err := h.service.Follow(
		c.Request.Context(),
		c.GetInt64("user_id"),
		targetID,
		recipesLimit(c),
	)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *Handler) Unsubscribe(c *gin.Context) {
	targetID, ok := userID(c)
	if !ok {
		return
	}

	if err := h.service.Unfollow(c.Request.Context(), c.GetInt64("user_id"), targetID); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) List(c *gin.Context) {
	subscriptions, err := h.service.List(
		c.Request.Context(),
		c.GetInt64("user_id"),
		recipesLimit(c),
	)
	if err != nil {
		response.Detail(c, http.StatusInternalServerError, "internal server error")
		return
	}
	c.JSON(http.StatusOK, subscriptions)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrSelfSubscription),
		errors.Is(err, ErrAlreadySubscribed),
		errors.Is(err, ErrNotSubscribed):
		response.Errors(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		response.Detail(c, http.StatusNotFound, "user not found")
	default:
		response.Detail(c, http.StatusInternalServerError, "internal server error")
	}
}

func userID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Detail(c, http.StatusNotFound, "user not found")
		return 0, false
	}
	return id, true
}

// recipesLimit — необязательный кап на превью рецептов; 0 значит без капа.
func recipesLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.Query("recipes_limit"))
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}
