package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"foodgram/internal/domain"
)

// IngredientRepository — справочник ингредиентов с поиском по имени.
type IngredientRepository interface {
	List(ctx context.Context, name string) ([]domain.Ingredient, error)
	GetByID(ctx context.Context, id int64) (*domain.Ingredient, error)
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Ingredient, error)
	Create(ctx context.Context, ingredient *domain.Ingredient) error
}

type ingredientRepository struct {
	db *gorm.DB
}

func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

// List возвращает ингредиенты, отфильтрованные по подстроке имени
// (пустая строка — весь справочник), в порядке name/id.
func (r *ingredientRepository) List(ctx context.Context, name string) ([]domain.Ingredient, error) {
	var ingredients []domain.Ingredient
	q := r.db.WithContext(ctx)
	if name != "" {
		q = q.Where("name LIKE ?", name+"%")
	}
	err := q.Order("name ASC, id ASC").Find(&ingredients).Error
	return ingredients, err
}

func (r *ingredientRepository) GetByID(ctx context.Context, id int64) (*domain.Ingredient, error) {
	var ingredient domain.Ingredient
	err := r.db.WithContext(ctx).First(&ingredient, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ingredient, nil
}

func (r *ingredientRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Ingredient, error) {
	var ingredients []domain.Ingredient
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&ingredients).Error
	return ingredients, err
}

func (r *ingredientRepository) Create(ctx context.Context, ingredient *domain.Ingredient) error {
	return r.db.WithContext(ctx).Create(ingredient).Error
}
