package subscription

import "foodgram/internal/domain"

// RecipePreview — краткая проекция рецепта в листинге подписок.
type RecipePreview struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// SubscribedUserResponse — проекция автора в листинге подписок.
// Только здесь присутствуют recipes и recipes_count: recipes усечён
// параметром recipes_limit, recipes_count всегда полный.
type SubscribedUserResponse struct {
	ID           int64           `json:"id"`
	Email        string          `json:"email"`
	Username     string          `json:"username"`
	FirstName    string          `json:"first_name"`
	LastName     string          `json:"last_name"`
	Avatar       string          `json:"avatar,omitempty"`
	IsSubscribed bool            `json:"is_subscribed"`
	Recipes      []RecipePreview `json:"recipes"`
	RecipesCount int64           `json:"recipes_count"`
}

func toSubscribedUserResponse(u *domain.User, recipes []domain.Recipe, count int64) SubscribedUserResponse {
	previews := make([]RecipePreview, 0, len(recipes))
	for _, r := range recipes {
		previews = append(previews, RecipePreview{
			ID:          r.ID,
			Name:        r.Name,
			Image:       r.Image,
			CookingTime: r.CookingTime,
		})
	}

	return SubscribedUserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Avatar:       u.Avatar,
		IsSubscribed: true,
		Recipes:      previews,
		RecipesCount: count,
	}
}
