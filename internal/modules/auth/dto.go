package auth

import "foodgram/internal/domain"

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email,max=254" validate:"required,email,max=254"`
	Username  string `json:"username" binding:"required,max=150" validate:"required,max=150,username"`
	FirstName string `json:"first_name" binding:"required,max=150" validate:"required,max=150"`
	LastName  string `json:"last_name" binding:"required,max=150" validate:"required,max=150"`
	Password  string `json:"password" binding:"required,min=8" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SetAvatarRequest принимает inline-изображение (data:image/...;base64,...).
type SetAvatarRequest struct {
	Avatar string `json:"avatar" binding:"required"`
}

// UserResponse — базовая проекция пользователя. Поля recipes/recipes_count
// сюда не входят: они отдаются только в листинге подписок.
type UserResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Avatar    string `json:"avatar,omitempty"`
}

func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Avatar:    u.Avatar,
	}
}
