package recipe

import (
	"context"
	"fmt"
	"strings"

	"foodgram/internal/domain"
	"foodgram/internal/pkg/imagedata"
	"foodgram/internal/pkg/storage"
	"foodgram/internal/repository"
)

const recipeImageFolder = "recipes/images"

// Service — бизнес-логика рецептов: выборки, CRUD с цельным пересозданием
// связей, протокол избранного/корзины и выгрузка списка покупок.
type Service struct {
	recipes     repository.RecipeRepository
	states      repository.RecipeStateRepository
	tags        repository.TagRepository
	ingredients repository.IngredientRepository
	storage     storage.Storage
	baseURL     string
}

func NewService(
	recipes repository.RecipeRepository,
	states repository.RecipeStateRepository,
	tags repository.TagRepository,
	ingredients repository.IngredientRepository,
	store storage.Storage,
	baseURL string,
) *Service {
	return &Service{
		recipes:     recipes,
		states:      states,
		tags:        tags,
		ingredients: ingredients,
		storage:     store,
		baseURL:     strings.TrimRight(baseURL, "/"),
	}
}

// List возвращает полную отфильтрованную выборку; страницы нарезает handler.
func (s *Service) List(ctx context.Context, viewerID int64, filter repository.RecipeFilter) ([]RecipeResponse, error) {
	filter.ViewerID = viewerID

	recipes, err := s.recipes.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(recipes))
	for _, r := range recipes {
		ids = append(ids, r.ID)
	}
	states, err := s.states.StatesForRecipes(ctx, viewerID, ids)
	if err != nil {
		return nil, err
	}

	out := make([]RecipeResponse, 0, len(recipes))
	for i := range recipes {
		out = append(out, toRecipeResponse(&recipes[i], states[recipes[i].ID]))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, viewerID, recipeID int64) (*RecipeResponse, error) {
	r, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	states, err := s.states.StatesForRecipes(ctx, viewerID, []int64{recipeID})
	if err != nil {
		return nil, err
	}

	resp := toRecipeResponse(r, states[recipeID])
	return &resp, nil
}

func (s *Service) Create(ctx context.Context, authorID int64, req RecipeRequest) (*RecipeResponse, error) {
	if err := s.validateRequest(ctx, req); err != nil {
		return nil, err
	}
	if req.Image == "" {
		return nil, validationErrorf("image is required")
	}

	imageURL, err := s.saveImage(ctx, req.Image)
	if err != nil {
		return nil, err
	}

	r := &domain.Recipe{
		Name:        req.Name,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		Image:       imageURL,
		AuthorID:    authorID,
	}
	if err := s.recipes.Create(ctx, r, req.Tags, toIngredientLinks(req.Ingredients)); err != nil {
		return nil, err
	}

	return s.Get(ctx, authorID, r.ID)
}

// Update заменяет поля рецепта и его наборы тегов/ингредиентов целиком.
// Пустое поле image оставляет прежнее изображение.
func (s *Service) Update(ctx context.Context, userID, recipeID int64, req RecipeRequest) (*RecipeResponse, error) {
	existing, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if existing.AuthorID != userID {
		return nil, ErrNotAuthor
	}

	if err := s.validateRequest(ctx, req); err != nil {
		return nil, err
	}

	imageURL := existing.Image
	if req.Image != "" && imagedata.IsDataURI(req.Image) {
		imageURL, err = s.saveImage(ctx, req.Image)
		if err != nil {
			return nil, err
		}
	}

	r := &domain.Recipe{
		ID:          recipeID,
		Name:        req.Name,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		Image:       imageURL,
		AuthorID:    existing.AuthorID,
	}
	if err := s.recipes.Update(ctx, r, req.Tags, toIngredientLinks(req.Ingredients)); err != nil {
		return nil, err
	}

	if imageURL != existing.Image {
		_ = s.storage.Delete(ctx, existing.Image)
	}

	return s.Get(ctx, userID, recipeID)
}

func (s *Service) Delete(ctx context.Context, userID, recipeID int64) error {
	existing, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		return err
	}
	if existing.AuthorID != userID {
		return ErrNotAuthor
	}

	if err := s.recipes.Delete(ctx, recipeID); err != nil {
		return err
	}
	_ = s.storage.Delete(ctx, existing.Image)
	return nil
}

// ShortLink возвращает короткую ссылку на существующий рецепт.
func (s *Service) ShortLink(ctx context.Context, recipeID int64) (string, error) {
	if _, err := s.recipes.GetByID(ctx, recipeID); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/s/%d", s.baseURL, recipeID), nil
}

// SetFavorite переключает флаг избранного. При включении возвращает краткую
// проекцию рецепта; повторное включение и снятие неустановленного флага —
// конфликт без мутации.
func (s *Service) SetFavorite(ctx context.Context, userID, recipeID int64, on bool) (*RecipeSummary, error) {
	r, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	if err := s.states.SetFavorited(ctx, userID, recipeID, on); err != nil {
		switch err {
		case repository.ErrAlreadyMarked:
			return nil, ErrAlreadyFavorited
		case repository.ErrNotMarked:
			return nil, ErrNotFavorited
		}
		return nil, err
	}

	if !on {
		return nil, nil
	}
	summary := toRecipeSummary(r)
	return &summary, nil
}

// SetShoppingCart — то же для корзины; флаг избранного не затрагивается.
func (s *Service) SetShoppingCart(ctx context.Context, userID, recipeID int64, on bool) (*RecipeSummary, error) {
	r, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	if err := s.states.SetInShoppingCart(ctx, userID, recipeID, on); err != nil {
		switch err {
		case repository.ErrAlreadyMarked:
			return nil, ErrAlreadyInCart
		case repository.ErrNotMarked:
			return nil, ErrNotInCart
		}
		return nil, err
	}

	if !on {
		return nil, nil
	}
	summary := toRecipeSummary(r)
	return &summary, nil
}

// ShoppingList агрегирует корзину и отдаёт текстовый документ:
// одна строка на ингредиент, "<название> (<единица>) - <сумма>".
func (s *Service) ShoppingList(ctx context.Context, userID int64) ([]byte, error) {
	items, err := s.states.AggregateShoppingCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	return renderShoppingList(items), nil
}

func renderShoppingList(items []repository.ShoppingListItem) []byte {
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "%s (%s) - %d\n", item.Name, item.MeasurementUnit, item.Total)
	}
	return []byte(b.String())
}

// validateRequest проверяет границы и существование связей до любой записи.
func (s *Service) validateRequest(ctx context.Context, req RecipeRequest) error {
	if req.CookingTime < domain.MinCookingTime || req.CookingTime > domain.MaxCookingTime {
		return validationErrorf(fmt.Sprintf("cooking_time must be between %d and %d",
			domain.MinCookingTime, domain.MaxCookingTime))
	}

	if len(req.Tags) == 0 {
		return validationErrorf("recipe must have at least one tag")
	}
	if hasDuplicateIDs(req.Tags) {
		return validationErrorf("tags must not repeat")
	}
	tags, err := s.tags.GetByIDs(ctx, req.Tags)
	if err != nil {
		return err
	}
	if len(tags) != len(req.Tags) {
		return validationErrorf("unknown tag id")
	}

	if len(req.Ingredients) == 0 {
		return validationErrorf("recipe must have at least one ingredient")
	}
	ids := make([]int64, 0, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		if ing.Amount < domain.MinAmount || ing.Amount > domain.MaxAmount {
			return validationErrorf(fmt.Sprintf("ingredient amount must be between %d and %d",
				domain.MinAmount, domain.MaxAmount))
		}
		ids = append(ids, ing.ID)
	}
	if hasDuplicateIDs(ids) {
		return validationErrorf("ingredients must not repeat")
	}
	ingredients, err := s.ingredients.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(ingredients) != len(ids) {
		return validationErrorf("unknown ingredient id")
	}

	return nil
}

func (s *Service) saveImage(ctx context.Context, dataURI string) (string, error) {
	ext, payload, err := imagedata.Decode(dataURI)
	if err != nil {
		return "", validationErrorf("image must be a base64 data URI")
	}
	return s.storage.Save(ctx, recipeImageFolder, ext, payload)
}

func toIngredientLinks(items []IngredientAmount) []domain.RecipeIngredient {
	links := make([]domain.RecipeIngredient, 0, len(items))
	for _, item := range items {
		links = append(links, domain.RecipeIngredient{
			IngredientID: item.ID,
			Amount:       item.Amount,
		})
	}
	return links
}

func hasDuplicateIDs(ids []int64) bool {
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return true
		}
		seen[id] = struct{}{}
	}
	return false
}
