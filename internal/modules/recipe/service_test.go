package recipe

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"foodgram/internal/domain"
	"foodgram/internal/repository"
)

// Mock Recipe Repository implementing the interface
type mockRecipeRepo struct {
	mock.Mock
}

func (m *mockRecipeRepo) List(ctx context.Context, filter repository.RecipeFilter) ([]domain.Recipe, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Recipe), args.Error(1)
}

func (m *mockRecipeRepo) GetByID(ctx context.Context, id int64) (*domain.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Recipe), args.Error(1)
}

func (m *mockRecipeRepo) Create(ctx context.Context, recipe *domain.Recipe, tagIDs []int64, ingredients []domain.RecipeIngredient) error {
	args := m.Called(ctx, recipe, tagIDs, ingredients)
	return args.Error(0)
}

func (m *mockRecipeRepo) Update(ctx context.Context, recipe *domain.Recipe, tagIDs []int64, ingredients []domain.RecipeIngredient) error {
	args := m.Called(ctx, recipe, tagIDs, ingredients)
	return args.Error(0)
}

func (m *mockRecipeRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockRecipeRepo) ListByAuthor(ctx context.Context, authorID int64, limit int) ([]domain.Recipe, error) {
	args := m.Called(ctx, authorID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Recipe), args.Error(1)
}

func (m *mockRecipeRepo) CountByAuthor(ctx context.Context, authorID int64) (int64, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).(int64), args.Error(1)
}

// Mock Recipe State Repository
type mockStateRepo struct {
	mock.Mock
}

func (m *mockStateRepo) SetFavorited(ctx context.Context, userID, recipeID int64, on bool) error {
	args := m.Called(ctx, userID, recipeID, on)
	return args.Error(0)
}

func (m *mockStateRepo) SetInShoppingCart(ctx context.Context, userID, recipeID int64, on bool) error {
	args := m.Called(ctx, userID, recipeID, on)
	return args.Error(0)
}

func (m *mockStateRepo) StatesForRecipes(ctx context.Context, userID int64, recipeIDs []int64) (map[int64]domain.UserRecipeState, error) {
	args := m.Called(ctx, userID, recipeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]domain.UserRecipeState), args.Error(1)
}

func (m *mockStateRepo) AggregateShoppingCart(ctx context.Context, userID int64) ([]repository.ShoppingListItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.ShoppingListItem), args.Error(1)
}

// Mock Tag Repository
type mockTagRepo struct {
	mock.Mock
}

func (m *mockTagRepo) List(ctx context.Context) ([]domain.Tag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tag), args.Error(1)
}

func (m *mockTagRepo) GetByID(ctx context.Context, id int64) (*domain.Tag, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tag), args.Error(1)
}

func (m *mockTagRepo) GetByIDs(ctx context.Context, ids []int64) ([]domain.Tag, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tag), args.Error(1)
}

func (m *mockTagRepo) Create(ctx context.Context, tag *domain.Tag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

// Mock Ingredient Repository
type mockIngredientRepo struct {
	mock.Mock
}

func (m *mockIngredientRepo) List(ctx context.Context, name string) ([]domain.Ingredient, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ingredient), args.Error(1)
}

func (m *mockIngredientRepo) GetByID(ctx context.Context, id int64) (*domain.Ingredient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ingredient), args.Error(1)
}

func (m *mockIngredientRepo) GetByIDs(ctx context.Context, ids []int64) ([]domain.Ingredient, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ingredient), args.Error(1)
}

func (m *mockIngredientRepo) Create(ctx context.Context, ingredient *domain.Ingredient) error {
	args := m.Called(ctx, ingredient)
	return args.Error(0)
}

// Mock Storage
type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) Save(ctx context.Context, folder, ext string, data []byte) (string, error) {
	args := m.Called(ctx, folder, ext, data)
	return args.String(0), args.Error(1)
}

func (m *mockStorage) Delete(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}

func newTestService(recipes *mockRecipeRepo, states *mockStateRepo, tags *mockTagRepo, ingredients *mockIngredientRepo, store *mockStorage) *Service {
	return NewService(recipes, states, tags, ingredients, store, "https://food.example.org")
}

func validRequest() RecipeRequest {
	return RecipeRequest{
		Name:        "Pancakes",
		Text:        "Mix and fry",
		CookingTime: 20,
		Image:       "data:image/png;base64,aGVsbG8=",
		Tags:        []int64{1},
		Ingredients: []IngredientAmount{{ID: 1, Amount: 100}},
	}
}

func TestService_Create_Validation(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(r *RecipeRequest)
		message string
	}{
		{
			name:    "cooking time below minimum",
			mutate:  func(r *RecipeRequest) { r.CookingTime = 0 },
			message: "cooking_time must be between 1 and 32000",
		},
		{
			name:    "cooking time above maximum",
			mutate:  func(r *RecipeRequest) { r.CookingTime = 32001 },
			message: "cooking_time must be between 1 and 32000",
		},
		{
			name:    "no tags",
			mutate:  func(r *RecipeRequest) { r.Tags = nil },
			message: "recipe must have at least one tag",
		},
		{
			name:    "duplicate tags",
			mutate:  func(r *RecipeRequest) { r.Tags = []int64{1, 1} },
			message: "tags must not repeat",
		},
		{
			name:    "no ingredients",
			mutate:  func(r *RecipeRequest) { r.Ingredients = nil },
			message: "recipe must have at least one ingredient",
		},
		{
			name: "duplicate ingredients",
			mutate: func(r *RecipeRequest) {
				r.Ingredients = []IngredientAmount{{ID: 1, Amount: 2}, {ID: 1, Amount: 3}}
			},
			message: "ingredients must not repeat",
		},
		{
			name: "amount below minimum",
			mutate: func(r *RecipeRequest) {
				r.Ingredients = []IngredientAmount{{ID: 1, Amount: 0}}
			},
			message: "amount must be between 1 and 32000",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recipes := new(mockRecipeRepo)
			states := new(mockStateRepo)
			tags := new(mockTagRepo)
			ingredients := new(mockIngredientRepo)
			store := new(mockStorage)

			tags.On("GetByIDs", mock.Anything, mock.Anything).Return([]domain.Tag{{ID: 1}}, nil).Maybe()
			ingredients.On("GetByIDs", mock.Anything, mock.Anything).Return([]domain.Ingredient{{ID: 1}}, nil).Maybe()

			service := newTestService(recipes, states, tags, ingredients, store)

			req := validRequest()
			tc.mutate(&req)

			_, err := service.Create(context.Background(), 1, req)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Contains(t, vErr.Message, tc.message)
			// до хранилища дело не доходит
			recipes.AssertNotCalled(t, "Create")
			store.AssertNotCalled(t, "Save")
		})
	}
}

func TestService_Create_UnknownTag(t *testing.T) {
	recipes := new(mockRecipeRepo)
	states := new(mockStateRepo)
	tags := new(mockTagRepo)
	ingredients := new(mockIngredientRepo)
	store := new(mockStorage)

	// справочник вернул меньше, чем запрошено
	tags.On("GetByIDs", mock.Anything, []int64{1}).Return([]domain.Tag{}, nil)

	service := newTestService(recipes, states, tags, ingredients, store)

	_, err := service.Create(context.Background(), 1, validRequest())

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "unknown tag id", vErr.Message)
}

func TestService_Create_ImageRequired(t *testing.T) {
	recipes := new(mockRecipeRepo)
	states := new(mockStateRepo)
	tags := new(mockTagRepo)
	ingredients := new(mockIngredientRepo)
	store := new(mockStorage)

	tags.On("GetByIDs", mock.Anything, []int64{1}).Return([]domain.Tag{{ID: 1}}, nil)
	ingredients.On("GetByIDs", mock.Anything, []int64{1}).Return([]domain.Ingredient{{ID: 1}}, nil)

	service := newTestService(recipes, states, tags, ingredients, store)

	req := validRequest()
	req.Image = ""

	_, err := service.Create(context.Background(), 1, req)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "image is required", vErr.Message)
}

func TestService_Update_NotAuthor(t *testing.T) {
	recipes := new(mockRecipeRepo)
	states := new(mockStateRepo)
	tags := new(mockTagRepo)
	ingredients := new(mockIngredientRepo)
	store := new(mockStorage)

	recipes.On("GetByID", mock.Anything, int64(7)).Return(&domain.Recipe{ID: 7, AuthorID: 1}, nil)

	service := newTestService(recipes, states, tags, ingredients, store)

	_, err := service.Update(context.Background(), 2, 7, validRequest())
	assert.ErrorIs(t, err, ErrNotAuthor)

	err = service.Delete(context.Background(), 2, 7)
	assert.ErrorIs(t, err, ErrNotAuthor)

	recipes.AssertNotCalled(t, "Update")
	recipes.AssertNotCalled(t, "Delete")
}

func TestService_SetFavorite_Conflicts(t *testing.T) {
	recipes := new(mockRecipeRepo)
	states := new(mockStateRepo)
	tags := new(mockTagRepo)
	ingredients := new(mockIngredientRepo)
	store := new(mockStorage)

	recipes.On("GetByID", mock.Anything, int64(7)).Return(&domain.Recipe{ID: 7, Name: "Soup"}, nil)
	states.On("SetFavorited", mock.Anything, int64(1), int64(7), true).Return(repository.ErrAlreadyMarked).Once()
	states.On("SetFavorited", mock.Anything, int64(1), int64(7), false).Return(repository.ErrNotMarked).Once()

	service := newTestService(recipes, states, tags, ingredients, store)

	_, err := service.SetFavorite(context.Background(), 1, 7, true)
	assert.ErrorIs(t, err, ErrAlreadyFavorited)

	_, err = service.SetFavorite(context.Background(), 1, 7, false)
	assert.ErrorIs(t, err, ErrNotFavorited)
}

func TestService_SetFavorite_ReturnsSummary(t *testing.T) {
	recipes := new(mockRecipeRepo)
	states := new(mockStateRepo)
	tags := new(mockTagRepo)
	ingredients := new(mockIngredientRepo)
	store := new(mockStorage)

	recipes.On("GetByID", mock.Anything, int64(7)).
		Return(&domain.Recipe{ID: 7, Name: "Soup", Image: "/media/soup.png", CookingTime: 45}, nil)
	states.On("SetFavorited", mock.Anything, int64(1), int64(7), true).Return(nil)

	service := newTestService(recipes, states, tags, ingredients, store)

	summary, err := service.SetFavorite(context.Background(), 1, 7, true)
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, RecipeSummary{ID: 7, Name: "Soup", Image: "/media/soup.png", CookingTime: 45}, *summary)
}

func TestService_SetShoppingCart_UnknownRecipe(t *testing.T) {
	recipes := new(mockRecipeRepo)
	states := new(mockStateRepo)
	tags := new(mockTagRepo)
	ingredients := new(mockIngredientRepo)
	store := new(mockStorage)

	recipes.On("GetByID", mock.Anything, int64(99)).Return(nil, repository.ErrNotFound)

	service := newTestService(recipes, states, tags, ingredients, store)

	_, err := service.SetShoppingCart(context.Background(), 1, 99, true)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	states.AssertNotCalled(t, "SetInShoppingCart")
}

func TestService_ShoppingList_Render(t *testing.T) {
	recipes := new(mockRecipeRepo)
	states := new(mockStateRepo)
	tags := new(mockTagRepo)
	ingredients := new(mockIngredientRepo)
	store := new(mockStorage)

	states.On("AggregateShoppingCart", mock.Anything, int64(1)).Return([]repository.ShoppingListItem{
		{Name: "flour", MeasurementUnit: "g", Total: 150},
		{Name: "salt", MeasurementUnit: "g", Total: 5},
	}, nil)

	service := newTestService(recipes, states, tags, ingredients, store)

	doc, err := service.ShoppingList(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "flour (g) - 150\nsalt (g) - 5\n", string(doc))
}

func TestService_ShoppingList_Empty(t *testing.T) {
	recipes := new(mockRecipeRepo)
	states := new(mockStateRepo)
	tags := new(mockTagRepo)
	ingredients := new(mockIngredientRepo)
	store := new(mockStorage)

	states.On("AggregateShoppingCart", mock.Anything, int64(1)).Return([]repository.ShoppingListItem{}, nil)

	service := newTestService(recipes, states, tags, ingredients, store)

	_, err := service.ShoppingList(context.Background(), 1)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestService_ShortLink(t *testing.T) {
	recipes := new(mockRecipeRepo)
	states := new(mockStateRepo)
	tags := new(mockTagRepo)
	ingredients := new(mockIngredientRepo)
	store := new(mockStorage)

	recipes.On("GetByID", mock.Anything, int64(7)).Return(&domain.Recipe{ID: 7}, nil)
	recipes.On("GetByID", mock.Anything, int64(99)).Return(nil, repository.ErrNotFound)

	service := newTestService(recipes, states, tags, ingredients, store)

	link, err := service.ShortLink(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "https://food.example.org/s/7", link)

	_, err = service.ShortLink(context.Background(), 99)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
