package subscription

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"foodgram/internal/domain"
	"foodgram/internal/repository"
)

// Mock Subscription Repository implementing the interface
type mockSubscriptionRepo struct {
	mock.Mock
}

func (m *mockSubscriptionRepo) Follow(ctx context.Context, followerID, followeeID int64) error {
	args := m.Called(ctx, followerID, followeeID)
	return args.Error(0)
}

func (m *mockSubscriptionRepo) Unfollow(ctx context.Context, followerID, followeeID int64) error {
	args := m.Called(ctx, followerID, followeeID)
	return args.Error(0)
}

func (m *mockSubscriptionRepo) IsSubscribed(ctx context.Context, followerID, followeeID int64) (bool, error) {
	args := m.Called(ctx, followerID, followeeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockSubscriptionRepo) ListFollowees(ctx context.Context, followerID int64) ([]domain.User, error) {
	args := m.Called(ctx, followerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

// Mock User Repository
type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) UpdateAvatar(ctx context.Context, userID int64, avatar string) error {
	args := m.Called(ctx, userID, avatar)
	return args.Error(0)
}

// Mock Recipe Repository
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

func TestService_Follow_Self(t *testing.T) {
	subs := new(mockSubscriptionRepo)
	users := new(mockUserRepo)
	recipes := new(mockRecipeRepo)

	service := NewService(subs, users, recipes)

	_, err := service.Follow(context.Background(), 1, 1, 0)
	assert.ErrorIs(t, err, ErrSelfSubscription)
	subs.AssertNotCalled(t, "Follow")
}

func TestService_Follow_UnknownUser(t *testing.T) {
	subs := new(mockSubscriptionRepo)
	users := new(mockUserRepo)
	recipes := new(mockRecipeRepo)

	users.On("GetByID", mock.Anything, int64(99)).Return(nil, repository.ErrNotFound)

	service := NewService(subs, users, recipes)

	_, err := service.Follow(context.Background(), 1, 99, 0)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	subs.AssertNotCalled(t, "Follow")
}

func TestService_Follow_Duplicate(t *testing.T) {
	subs := new(mockSubscriptionRepo)
	users := new(mockUserRepo)
	recipes := new(mockRecipeRepo)

	users.On("GetByID", mock.Anything, int64(2)).Return(&domain.User{ID: 2}, nil)
	subs.On("Follow", mock.Anything, int64(1), int64(2)).Return(repository.ErrAlreadySubscribed)

	service := NewService(subs, users, recipes)

	_, err := service.Follow(context.Background(), 1, 2, 0)
	assert.ErrorIs(t, err, ErrAlreadySubscribed)
}

func TestService_Follow_Projection(t *testing.T) {
	subs := new(mockSubscriptionRepo)
	users := new(mockUserRepo)
	recipes := new(mockRecipeRepo)

	author := &domain.User{ID: 2, Email: "a@example.com", Username: "author"}
	users.On("GetByID", mock.Anything, int64(2)).Return(author, nil)
	subs.On("Follow", mock.Anything, int64(1), int64(2)).Return(nil)
	recipes.On("ListByAuthor", mock.Anything, int64(2), 3).Return([]domain.Recipe{
		{ID: 10, Name: "Soup", Image: "/media/soup.png", CookingTime: 30},
	}, nil)
	recipes.On("CountByAuthor", mock.Anything, int64(2)).Return(int64(5), nil)

	service := NewService(subs, users, recipes)

	resp, err := service.Follow(context.Background(), 1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.ID)
	assert.True(t, resp.IsSubscribed)
	// превью усечено лимитом, счётчик — полный
	require.Len(t, resp.Recipes, 1)
	assert.Equal(t, RecipePreview{ID: 10, Name: "Soup", Image: "/media/soup.png", CookingTime: 30}, resp.Recipes[0])
	assert.EqualValues(t, 5, resp.RecipesCount)
}

func TestService_Unfollow_NotSubscribed(t *testing.T) {
	subs := new(mockSubscriptionRepo)
	users := new(mockUserRepo)
	recipes := new(mockRecipeRepo)

	users.On("GetByID", mock.Anything, int64(2)).Return(&domain.User{ID: 2}, nil)
	subs.On("Unfollow", mock.Anything, int64(1), int64(2)).Return(repository.ErrNotSubscribed)

	service := NewService(subs, users, recipes)

	err := service.Unfollow(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrNotSubscribed)
}

func TestService_List(t *testing.T) {
	subs := new(mockSubscriptionRepo)
	users := new(mockUserRepo)
	recipes := new(mockRecipeRepo)

	subs.On("ListFollowees", mock.Anything, int64(1)).Return([]domain.User{
		{ID: 2, Username: "first"},
		{ID: 3, Username: "second"},
	}, nil)
	recipes.On("ListByAuthor", mock.Anything, int64(2), 0).Return([]domain.Recipe{}, nil)
	recipes.On("ListByAuthor", mock.Anything, int64(3), 0).Return([]domain.Recipe{}, nil)
	recipes.On("CountByAuthor", mock.Anything, int64(2)).Return(int64(0), nil)
	recipes.On("CountByAuthor", mock.Anything, int64(3)).Return(int64(2), nil)

	service := NewService(subs, users, recipes)

	out, err := service.List(context.Background(), 1, 0)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "first", out[0].Username)
	assert.EqualValues(t, 2, out[1].RecipesCount)
}
