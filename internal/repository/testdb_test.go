package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"foodgram/internal/database"
	"foodgram/internal/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err, "failed to connect to test database")
	require.NoError(t, database.Migrate(db))

	return db
}

func createUser(t *testing.T, db *gorm.DB, email, username string) *domain.User {
	t.Helper()
	user := &domain.User{
		Email:     email,
		Username:  username,
		FirstName: "Test",
		LastName:  "User",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTag(t *testing.T, db *gorm.DB, name, slug string) *domain.Tag {
	t.Helper()
	tag := &domain.Tag{Name: name, Slug: slug}
	require.NoError(t, db.Create(tag).Error)
	return tag
}

func createIngredient(t *testing.T, db *gorm.DB, name, unit string) *domain.Ingredient {
	t.Helper()
	ingredient := &domain.Ingredient{Name: name, MeasurementUnit: unit}
	require.NoError(t, db.Create(ingredient).Error)
	return ingredient
}

func createRecipe(t *testing.T, db *gorm.DB, repo RecipeRepository, name string, authorID int64, tagIDs []int64, ingredients []domain.RecipeIngredient) *domain.Recipe {
	t.Helper()
	recipe := &domain.Recipe{
		Name:        name,
		Text:        "text for " + name,
		CookingTime: 30,
		Image:       "/media/recipes/images/" + name + ".png",
		AuthorID:    authorID,
	}
	require.NoError(t, repo.Create(context.Background(), recipe, tagIDs, ingredients))
	return recipe
}
