package domain

import "time"

// Границы значений, общие для валидации и схемы.
const (
	MinCookingTime = 1
	MaxCookingTime = 32000
	MinAmount      = 1
	MaxAmount      = 32000
)

// Tag — метка рецепта ("завтрак", "обед" и т.п.). Сортировка по имени.
type Tag struct {
	ID   int64  `gorm:"column:id;primaryKey" json:"id"`
	Name string `gorm:"column:name;size:32;not null" json:"name"`
	Slug string `gorm:"column:slug;size:32;uniqueIndex;not null" json:"slug"`
}

func (Tag) TableName() string { return "tags" }

// Ingredient — ингредиент из справочника. Пара (name, measurement_unit)
// служит естественным ключом отображения.
type Ingredient struct {
	ID              int64  `gorm:"column:id;primaryKey" json:"id"`
	Name            string `gorm:"column:name;size:128;not null;index" json:"name"`
	MeasurementUnit string `gorm:"column:measurement_unit;size:64;not null" json:"measurement_unit"`
}

func (Ingredient) TableName() string { return "ingredients" }

// Recipe — рецепт с обязательными автором и изображением.
// Теги и ингредиенты связаны через явные таблицы связей и при обновлении
// пересоздаются целиком.
type Recipe struct {
	ID          int64     `gorm:"column:id;primaryKey" json:"id"`
	Name        string    `gorm:"column:name;size:256;not null" json:"name"`
	Text        string    `gorm:"column:text;size:256;not null" json:"text"`
	CookingTime int       `gorm:"column:cooking_time;not null" json:"cooking_time"`
	Image       string    `gorm:"column:image;not null" json:"image"`
	AuthorID    int64     `gorm:"column:author_id;not null;index" json:"author_id"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Author      *User              `gorm:"foreignKey:AuthorID" json:"-"`
	Tags        []Tag              `gorm:"many2many:recipe_tags;joinForeignKey:RecipeID;joinReferences:TagID" json:"-"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"-"`
}

func (Recipe) TableName() string { return "recipes" }

// RecipeTag — связь рецепта с тегом.
type RecipeTag struct {
	RecipeID int64 `gorm:"column:recipe_id;primaryKey" json:"recipe_id"`
	TagID    int64 `gorm:"column:tag_id;primaryKey" json:"tag_id"`
}

func (RecipeTag) TableName() string { return "recipe_tags" }

// RecipeIngredient — связь рецепта с ингредиентом и количеством в рецепте.
type RecipeIngredient struct {
	ID           int64 `gorm:"column:id;primaryKey" json:"id"`
	RecipeID     int64 `gorm:"column:recipe_id;not null;index" json:"recipe_id"`
	IngredientID int64 `gorm:"column:ingredient_id;not null" json:"ingredient_id"`
	Amount       int   `gorm:"column:amount;not null" json:"amount"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID" json:"-"`
}

func (RecipeIngredient) TableName() string { return "recipe_ingredients" }

// UserRecipeState — единственная строка состояния пары (пользователь, рецепт)
// с двумя независимыми флагами: избранное и корзина. Уникальный индекс по паре
// исключает расходящиеся дубликаты.
type UserRecipeState struct {
	ID               int64 `gorm:"column:id;primaryKey" json:"id"`
	UserID           int64 `gorm:"column:user_id;not null;index;uniqueIndex:idx_user_recipe" json:"user_id"`
	RecipeID         int64 `gorm:"column:recipe_id;not null;index;uniqueIndex:idx_user_recipe" json:"recipe_id"`
	IsFavorited      bool  `gorm:"column:is_favorited;not null;default:false" json:"is_favorited"`
	IsInShoppingCart bool  `gorm:"column:is_in_shopping_cart;not null;default:false" json:"is_in_shopping_cart"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID" json:"-"`
}

func (UserRecipeState) TableName() string { return "user_recipe_states" }
