package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"foodgram/internal/domain"
)

var (
	// ErrAlreadyMarked — повторный перевод флага в "on".
	ErrAlreadyMarked = errors.New("already marked")
	// ErrNotMarked — снятие флага, который не был установлен.
	ErrNotMarked = errors.New("was not marked")
)

// ShoppingListItem — агрегированная строка списка покупок:
// суммарное количество по паре (название, единица измерения).
type ShoppingListItem struct {
	Name            string `gorm:"column:name"`
	MeasurementUnit string `gorm:"column:measurement_unit"`
	Total           int64  `gorm:"column:total"`
}

// RecipeStateRepository реализует протокол переключения избранного/корзины
// поверх единственной строки состояния на пару (пользователь, рецепт).
type RecipeStateRepository interface {
	SetFavorited(ctx context.Context, userID, recipeID int64, on bool) error
	SetInShoppingCart(ctx context.Context, userID, recipeID int64, on bool) error
	StatesForRecipes(ctx context.Context, userID int64, recipeIDs []int64) (map[int64]domain.UserRecipeState, error)
	AggregateShoppingCart(ctx context.Context, userID int64) ([]ShoppingListItem, error)
}

type recipeStateRepository struct {
	db *gorm.DB
}

func NewRecipeStateRepository(db *gorm.DB) RecipeStateRepository {
	return &recipeStateRepository{db: db}
}

func (r *recipeStateRepository) SetFavorited(ctx context.Context, userID, recipeID int64, on bool) error {
	return r.setFlag(ctx, userID, recipeID, "is_favorited", on)
}

func (r *recipeStateRepository) SetInShoppingCart(ctx context.Context, userID, recipeID int64, on bool) error {
	return r.setFlag(ctx, userID, recipeID, "is_in_shopping_cart", on)
}

// setFlag — find-or-create плюс условный update в одной транзакции.
// Условие на текущем значении колонки вместо блокировки: из двух
// конкурентных включений ровно одно пройдёт, второе получит ErrAlreadyMarked
// (через RowsAffected == 0 либо через нарушение уникального индекса пары).
// Второй флаг строки при этом не затрагивается.
func (r *recipeStateRepository) setFlag(ctx context.Context, userID, recipeID int64, column string, on bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var state domain.UserRecipeState
		err := tx.Where("user_id = ? AND recipe_id = ?", userID, recipeID).
			First(&state).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			if !on {
				return ErrNotMarked
			}
			state = domain.UserRecipeState{UserID: userID, RecipeID: recipeID}
			switch column {
			case "is_favorited":
				state.IsFavorited = true
			case "is_in_shopping_cart":
				state.IsInShoppingCart = true
			}
			if err := tx.Create(&state).Error; err != nil {
				if isDuplicateError(err) {
					return ErrAlreadyMarked
				}
				return err
			}
			return nil
		}
		if err != nil {
			return err
		}

		current := state.IsFavorited
		if column == "is_in_shopping_cart" {
			current = state.IsInShoppingCart
		}
		if current == on {
			if on {
				return ErrAlreadyMarked
			}
			return ErrNotMarked
		}

		result := tx.Model(&domain.UserRecipeState{}).
			Where("id = ? AND "+column+" = ?", state.ID, current).
			Update(column, on)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			if on {
				return ErrAlreadyMarked
			}
			return ErrNotMarked
		}
		return nil
	})
}

// StatesForRecipes возвращает строки состояния зрителя для набора рецептов.
// Для анонимного зрителя (userID == 0) карта пуста.
func (r *recipeStateRepository) StatesForRecipes(ctx context.Context, userID int64, recipeIDs []int64) (map[int64]domain.UserRecipeState, error) {
	states := make(map[int64]domain.UserRecipeState, len(recipeIDs))
	if userID == 0 || len(recipeIDs) == 0 {
		return states, nil
	}

	var rows []domain.UserRecipeState
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		states[row.RecipeID] = row
	}
	return states, nil
}

// AggregateShoppingCart суммирует количества по (название, единица) для всех
// рецептов в корзине пользователя. Порядок по имени, затем по единице —
// детерминированный для воспроизводимости выгрузки.
func (r *recipeStateRepository) AggregateShoppingCart(ctx context.Context, userID int64) ([]ShoppingListItem, error) {
	var items []ShoppingListItem
	err := r.db.WithContext(ctx).
		Table("recipe_ingredients").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS total").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN user_recipe_states ON user_recipe_states.recipe_id = recipe_ingredients.recipe_id").
		Where("user_recipe_states.user_id = ? AND user_recipe_states.is_in_shopping_cart = ?", userID, true).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name ASC, ingredients.measurement_unit ASC").
		Scan(&items).Error
	return items, err
}
