package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"foodgram/internal/pkg/response"
	"foodgram/internal/pkg/validator"
	"foodgram/internal/repository"
)

// Handler manages HTTP interactions for registration, login and the profile
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	users := protected.Group("/users")
	{
		users.GET("/me", h.GetMe)
		users.PUT("/me/avatar", h.SetAvatar)
		users.DELETE("/me/avatar", h.DeleteAvatar)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Errors(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.Errors(c, http.StatusBadRequest, "invalid field values")
		return
	}

	user, token, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrEmailAlreadyExists:
			response.Errors(c, http.StatusBadRequest, "email already exists")
		case ErrUsernameAlreadyExists:
			response.Errors(c, http.StatusBadRequest, "username already exists")
		default:
			response.Detail(c, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":  ToUserResponse(user),
		"token": token,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Errors(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if err == ErrInvalidCredentials {
			response.Detail(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		response.Detail(c, http.StatusInternalServerError, "internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  ToUserResponse(user),
		"token": token,
	})
}

func (h *Handler) GetMe(c *gin.Context) {
	user, err := h.service.GetByID(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		if err == repository.ErrNotFound {
			response.Detail(c, http.StatusNotFound, "user not found")
			return
		}
		response.Detail(c, http.StatusInternalServerError, "internal server error")
		return
	}
	c.JSON(http.StatusOK, ToUserResponse(user))
}

func (h *Handler) SetAvatar(c *gin.Context) {
	var req SetAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Errors(c, http.StatusBadRequest, "avatar is required")
		return
	}

	user, err := h.service.SetAvatar(c.Request.Context(), c.GetInt64("user_id"), req.Avatar)
	if err != nil {
		if err == ErrInvalidAvatar {
			response.Errors(c, http.StatusBadRequest, "invalid avatar image")
			return
		}
		response.Detail(c, http.StatusInternalServerError, "internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar": user.Avatar})
}

func (h *Handler) DeleteAvatar(c *gin.Context) {
	if err := h.service.DeleteAvatar(c.Request.Context(), c.GetInt64("user_id")); err != nil {
		response.Detail(c, http.StatusInternalServerError, "internal server error")
		return
	}
	c.Status(http.StatusNoContent)
}
