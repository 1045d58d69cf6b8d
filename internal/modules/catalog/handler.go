package catalog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"foodgram/internal/pkg/response"
	"foodgram/internal/repository"
)

// Handler отдаёт справочники тегов и ингредиентов. Только чтение,
// без пагинации — справочники короткие.
type Handler struct {
	tags        repository.TagRepository
	ingredients repository.IngredientRepository
}

func NewHandler(tags repository.TagRepository, ingredients repository.IngredientRepository) *Handler {
	return &Handler{tags: tags, ingredients: ingredients}
}

func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/tags", h.ListTags)
	api.GET("/tags/:id", h.GetTag)
	api.GET("/ingredients", h.ListIngredients)
	api.GET("/ingredients/:id", h.GetIngredient)
}

func (h *Handler) ListTags(c *gin.Context) {
	tags, err := h.tags.List(c.Request.Context())
	if err != nil {
		response.Detail(c, http.StatusInternalServerError, "internal server error")
		return
	}

	out := make([]TagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, ToTagResponse(t))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetTag(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Detail(c, http.StatusNotFound, "tag not found")
		return
	}

	tag, err := h.tags.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == repository.ErrNotFound {
			response.Detail(c, http.StatusNotFound, "tag not found")
			return
		}
		response.Detail(c, http.StatusInternalServerError, "internal server error")
		return
	}
	c.JSON(http.StatusOK, ToTagResponse(*tag))
}

// ListIngredients ищет по префиксу имени через параметр ?name=.
func (h *Handler) ListIngredients(c *gin.Context) {
	ingredients, err := h.ingredients.List(c.Request.Context(), c.Query("name"))
	if err != nil {
		response.Detail(c, http.StatusInternalServerError, "internal server error")
		return
	}

	out := make([]IngredientResponse, 0, len(ingredients))
	for _, ing := range ingredients {
		out = append(out, ToIngredientResponse(ing))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetIngredient(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Detail(c, http.StatusNotFound, "ingredient not found")
		return
	}

	ingredient, err := h.ingredients.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == repository.ErrNotFound {
			response.Detail(c, http.StatusNotFound, "ingredient not found")
			return
		}
		response.Detail(c, http.StatusInternalServerError, "internal server error")
		return
	}
	c.JSON(http.StatusOK, ToIngredientResponse(*ingredient))
}
