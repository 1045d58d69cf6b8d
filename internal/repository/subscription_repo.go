package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"foodgram/internal/domain"
)

var (
	ErrAlreadySubscribed = errors.New("already subscribed")
	ErrNotSubscribed     = errors.New("not subscribed")
)

// SubscriptionRepository handles persistence for user-to-user subscriptions
type SubscriptionRepository interface {
	Follow(ctx context.Context, followerID, followeeID int64) error
	Unfollow(ctx context.Context, followerID, followeeID int64) error
	IsSubscribed(ctx context.Context, followerID, followeeID int64) (bool, error)
	ListFollowees(ctx context.Context, followerID int64) ([]domain.User, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// Follow создаёт подписку. Дубликат пары гасится уникальным индексом,
// гонка двух одинаковых запросов разрешается на стороне БД.
func (r *subscriptionRepository) Follow(ctx context.Context, followerID, followeeID int64) error {
	sub := &domain.Subscription{
		FollowerID: followerID,
		FolloweeID: followeeID,
	}
	err := r.db.WithContext(ctx).Create(sub).Error
	if err != nil && isDuplicateError(err) {
		return ErrAlreadySubscribed
	}
	return err
}

func (r *subscriptionRepository) Unfollow(ctx context.Context, followerID, followeeID int64) error {
	result := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&domain.Subscription{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotSubscribed
	}
	return nil
}

func (r *subscriptionRepository) IsSubscribed(ctx context.Context, followerID, followeeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Subscription{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error
	return count > 0, err
}

// ListFollowees возвращает авторов, на которых подписан пользователь,
// в порядке их id.
func (r *subscriptionRepository) ListFollowees(ctx context.Context, followerID int64) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Joins("JOIN subscriptions ON subscriptions.followee_id = users.id").
		Where("subscriptions.follower_id = ?", followerID).
		Order("users.id ASC").
		Find(&users).Error
	return users, err
}
