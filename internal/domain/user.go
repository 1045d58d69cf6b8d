package domain

import "time"

// User — зарегистрированный пользователь платформы.
// Логином служит email, username уникален и показывается в публичных профилях.
type User struct {
	ID           int64     `gorm:"column:id;primaryKey" json:"id"`
	Email        string    `gorm:"column:email;size:254;uniqueIndex;not null" json:"email"`
	Username     string    `gorm:"column:username;size:150;uniqueIndex;not null" json:"username"`
	FirstName    string    `gorm:"column:first_name;size:150" json:"first_name"`
	LastName     string    `gorm:"column:last_name;size:150" json:"last_name"`
	Avatar       string    `gorm:"column:avatar" json:"avatar,omitempty"`
	PasswordHash string    `gorm:"column:password_hash" json:"-"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (User) TableName() string { return "users" }

// Subscription — подписка одного пользователя на рецепты другого.
// Пара (follower, followee) уникальна, подписка на себя запрещена на уровне сервиса.
type Subscription struct {
	ID         int64     `gorm:"column:id;primaryKey" json:"id"`
	FollowerID int64     `gorm:"column:follower_id;not null;index;uniqueIndex:idx_follower_followee" json:"follower_id"`
	FolloweeID int64     `gorm:"column:followee_id;not null;index;uniqueIndex:idx_follower_followee" json:"followee_id"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Follower *User `gorm:"foreignKey:FollowerID" json:"-"`
	Followee *User `gorm:"foreignKey:FolloweeID" json:"-"`
}

func (Subscription) TableName() string { return "subscriptions" }
