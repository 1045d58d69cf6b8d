package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"foodgram/internal/domain"
)

// RecipeFilter — параметры выборки рецептов. Измерения комбинируются по AND,
// списки внутри измерения — по OR. Nil у триstate-флагов означает
// "без ограничения". ViewerID = 0 — анонимный запрос: пользовательские
// фильтры (избранное, корзина) молча игнорируются.
type RecipeFilter struct {
	AuthorIDs        []int64
	TagSlugs         []string
	IsFavorited      *bool
	IsInShoppingCart *bool
	ViewerID         int64
}

// RecipeRepository строит выборки рецептов и выполняет цельное
// пересоздание связей тегов/ингредиентов при обновлении.
type RecipeRepository interface {
	List(ctx context.Context, filter RecipeFilter) ([]domain.Recipe, error)
	GetByID(ctx context.Context, id int64) (*domain.Recipe, error)
	Create(ctx context.Context, recipe *domain.Recipe, tagIDs []int64, ingredients []domain.RecipeIngredient) error
	Update(ctx context.Context, recipe *domain.Recipe, tagIDs []int64, ingredients []domain.RecipeIngredient) error
	Delete(ctx context.Context, id int64) error
	ListByAuthor(ctx context.Context, authorID int64, limit int) ([]domain.Recipe, error)
	CountByAuthor(ctx context.Context, authorID int64) (int64, error)
}

type recipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// List возвращает полную отфильтрованную выборку без усечения.
// Порядок: name ASC, id ASC — стабильный для внешней пагинации.
func (r *recipeRepository) List(ctx context.Context, filter RecipeFilter) ([]domain.Recipe, error) {
	q := r.db.WithContext(ctx).Model(&domain.Recipe{})

	if len(filter.AuthorIDs) > 0 {
		q = q.Where("recipes.author_id IN ?", filter.AuthorIDs)
	}

	if len(filter.TagSlugs) > 0 {
		tagged := r.db.Table("recipe_tags").
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs)
		q = q.Where("recipes.id IN (?)", tagged)
	}

	if filter.ViewerID > 0 {
		q = applyStateFilter(r.db, q, filter.ViewerID, "is_favorited", filter.IsFavorited)
		q = applyStateFilter(r.db, q, filter.ViewerID, "is_in_shopping_cart", filter.IsInShoppingCart)
	}

	var recipes []domain.Recipe
	err := q.
		Preload("Author").
		Preload("Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("tags.name ASC, tags.id ASC")
		}).
		Preload("Ingredients.Ingredient").
		Order("recipes.name ASC, recipes.id ASC").
		Find(&recipes).Error
	return recipes, err
}

// applyStateFilter накладывает тристейт-фильтр по флагу из user_recipe_states.
// "false" — это разность множеств: рецепты, ни разу не помеченные, тоже входят.
func applyStateFilter(db, q *gorm.DB, viewerID int64, column string, value *bool) *gorm.DB {
	if value == nil {
		return q
	}
	marked := db.Table("user_recipe_states").
		Select("recipe_id").
		Where("user_id = ? AND "+column+" = ?", viewerID, true)
	if *value {
		return q.Where("recipes.id IN (?)", marked)
	}
	return q.Where("recipes.id NOT IN (?)", marked)
}

func (r *recipeRepository) GetByID(ctx context.Context, id int64) (*domain.Recipe, error) {
	var recipe domain.Recipe
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("tags.name ASC, tags.id ASC")
		}).
		Preload("Ingredients.Ingredient").
		First(&recipe, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) Create(ctx context.Context, recipe *domain.Recipe, tagIDs []int64, ingredients []domain.RecipeIngredient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Ingredients", "Author").Create(recipe).Error; err != nil {
			return err
		}
		return insertLinks(tx, recipe.ID, tagIDs, ingredients)
	})
}

// Update сохраняет поля рецепта и целиком пересоздаёт связи:
// удалить все, вставить новый набор — в одной транзакции.
func (r *recipeRepository) Update(ctx context.Context, recipe *domain.Recipe, tagIDs []int64, ingredients []domain.RecipeIngredient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&domain.Recipe{}).
			Where("id = ?", recipe.ID).
			Updates(map[string]any{
				"name":         recipe.Name,
				"text":         recipe.Text,
				"cooking_time": recipe.CookingTime,
				"image":        recipe.Image,
			}).Error
		if err != nil {
			return err
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&domain.RecipeTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&domain.RecipeIngredient{}).Error; err != nil {
			return err
		}

		return insertLinks(tx, recipe.ID, tagIDs, ingredients)
	})
}

func insertLinks(tx *gorm.DB, recipeID int64, tagIDs []int64, ingredients []domain.RecipeIngredient) error {
	tagLinks := make([]domain.RecipeTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		tagLinks = append(tagLinks, domain.RecipeTag{RecipeID: recipeID, TagID: tagID})
	}
	if len(tagLinks) > 0 {
		if err := tx.Create(&tagLinks).Error; err != nil {
			return err
		}
	}

	for i := range ingredients {
		ingredients[i].ID = 0
		ingredients[i].RecipeID = recipeID
		ingredients[i].Ingredient = nil
	}
	if len(ingredients) > 0 {
		if err := tx.Create(&ingredients).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *recipeRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&domain.RecipeTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&domain.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&domain.UserRecipeState{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&domain.Recipe{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// ListByAuthor — усечённый превью-список рецептов автора для проекции подписок.
func (r *recipeRepository) ListByAuthor(ctx context.Context, authorID int64, limit int) ([]domain.Recipe, error) {
	var recipes []domain.Recipe
	q := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("name ASC, id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&recipes).Error
	return recipes, err
}

func (r *recipeRepository) CountByAuthor(ctx context.Context, authorID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Recipe{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	return count, err
}
