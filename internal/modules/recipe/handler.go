package recipe

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"foodgram/internal/pkg/response"
	"foodgram/internal/repository"
)

// Handler обрабатывает HTTP-запросы рецептов
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes вешает выборки на группу с опциональной
// аутентификацией: анонимам можно, флаги зрителя появляются с токеном.
func (h *Handler) RegisterPublicRoutes(public *gin.RouterGroup) {
	public.GET("/recipes", h.List)
	public.GET("/recipes/:id", h.Get)
	public.GET("/recipes/:id/get-link", h.GetLink)
}

// RegisterProtectedRoutes — мутации и пользовательские списки.
func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	recipes := protected.Group("/recipes")
	{
		recipes.POST("", h.Create)
		recipes.GET("/download_shopping_cart", h.DownloadShoppingCart)
		recipes.PATCH("/:id", h.Update)
		recipes.DELETE("/:id", h.Delete)
		recipes.POST("/:id/favorite", h.AddFavorite)
		recipes.DELETE("/:id/favorite", h.RemoveFavorite)
		recipes.POST("/:id/shopping_cart", h.AddToCart)
		recipes.DELETE("/:id/shopping_cart", h.RemoveFromCart)
	}
}

// RegisterShortLinkRoute — редирект коротких ссылок вне /api.
func (h *Handler) RegisterShortLinkRoute(r *gin.Engine) {
	r.GET("/s/:id", h.ResolveShortLink)
}

// List отдаёт отфильтрованную выборку. Фильтры: author (id через запятую или
// повтором параметра), tags (слаги), is_favorited и is_in_shopping_cart
// (тристейт: параметр отсутствует / 1 / 0). Страницы нарезаются здесь,
// сама выборка приходит целиком.
func (h *Handler) List(c *gin.Context) {
	filter := repository.RecipeFilter{
		AuthorIDs:        parseIDList(c.QueryArray("author")),
		TagSlugs:         parseStringList(c.QueryArray("tags")),
		IsFavorited:      parseTriState(c.Query("is_favorited")),
		IsInShoppingCart: parseTriState(c.Query("is_in_shopping_cart")),
	}

	recipes, err := h.service.List(c.Request.Context(), c.GetInt64("user_id"), filter)
	if err != nil {
		response.Detail(c, http.StatusInternalServerError, "internal server error")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}

	total := len(recipes)
	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	totalPages := total / perPage
	if total%perPage > 0 {
		totalPages++
	}

	c.JSON(http.StatusOK, RecipeListResponse{
		Recipes:    recipes[start:end],
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
	})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	recipe, err := h.service.Get(c.Request.Context(), c.GetInt64("user_id"), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *Handler) Create(c *gin.Context) {
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Errors(c, http.StatusBadRequest, "invalid request body")
		return
	}

	recipe, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Errors(c, http.StatusBadRequest, "invalid request body")
		return
	}

	recipe, err := h.service.Update(c.Request.Context(), c.GetInt64("user_id"), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.GetInt64("user_id"), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) GetLink(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	link, err := h.service.ShortLink(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"short-link": link})
}

func (h *Handler) ResolveShortLink(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Detail(c, http.StatusNotFound, "recipe not found")
		return
	}
	c.Redirect(http.StatusMovedPermanently, "/api/recipes/"+strconv.FormatInt(id, 10))
}

func (h *Handler) AddFavorite(c *gin.Context) {
	h.toggle(c, true, h.service.SetFavorite)
}

func (h *Handler) RemoveFavorite(c *gin.Context) {
	h.toggle(c, false, h.service.SetFavorite)
}

func (h *Handler) AddToCart(c *gin.Context) {
	h.toggle(c, true, h.service.SetShoppingCart)
}

func (h *Handler) RemoveFromCart(c *gin.Context) {
	h.toggle(c, false, h.service.SetShoppingCart)
}

// DownloadShoppingCart выгружает агрегированный список покупок текстовым
// вложением; пустая корзина — 404, а не пустой документ.
func (h *Handler) DownloadShoppingCart(c *gin.Context) {
	doc, err := h.service.ShoppingList(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		if errors.Is(err, ErrEmptyCart) {
			response.Detail(c, http.StatusNotFound, ErrEmptyCart.Error())
			return
		}
		response.Detail(c, http.StatusInternalServerError, "internal server error")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="shopping_list.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", doc)
}

// toggle — общий путь для favorite и shopping_cart: POST 200 + краткая
// проекция, DELETE 204, конфликт 400 без мутации.
func (h *Handler) toggle(c *gin.Context, on bool, set func(ctx context.Context, userID, recipeID int64, on bool) (*RecipeSummary, error)) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	summary, err := set(c.Request.Context(), c.GetInt64("user_id"), id, on)
	if err != nil {
		h.writeError(c, err)
		return
	}

	if !on {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		response.Errors(c, http.StatusBadRequest, vErr.Message)
	case errors.Is(err, ErrAlreadyFavorited),
		errors.Is(err, ErrNotFavorited),
		errors.Is(err, ErrAlreadyInCart),
		errors.Is(err, ErrNotInCart):
		response.Errors(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotAuthor):
		response.Detail(c, http.StatusForbidden, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		response.Detail(c, http.StatusNotFound, "recipe not found")
	default:
		response.Detail(c, http.StatusInternalServerError, "internal server error")
	}
}

func recipeID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Detail(c, http.StatusNotFound, "recipe not found")
		return 0, false
	}
	return id, true
}

// parseIDList принимает и повторяющиеся параметры, и значения через запятую.
func parseIDList(values []string) []int64 {
	var ids []int64
	for _, v := range parseStringList(values) {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

func parseStringList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// parseTriState: отсутствующий или пустой параметр — nil (без ограничения),
// "1"/"true" — true, "0"/"false" — false.
func parseTriState(value string) *bool {
	switch strings.ToLower(value) {
	case "1", "true":
		v := true
		return &v
	case "0", "false":
		v := false
		return &v
	}
	return nil
}
