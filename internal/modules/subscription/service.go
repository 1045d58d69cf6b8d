package subscription

import (
	"context"

	"foodgram/internal/domain"
	"foodgram/internal/repository"
)

// Service — подписки между пользователями с проекцией превью рецептов.
type Service struct {
	subscriptions repository.SubscriptionRepository
	users         repository.UserRepository
	recipes       repository.RecipeRepository
}

func NewService(
	subscriptions repository.SubscriptionRepository,
	users repository.UserRepository,
	recipes repository.RecipeRepository,
) *Service {
	return &Service{
		subscriptions: subscriptions,
		users:         users,
		recipes:       recipes,
	}
}

// Follow создаёт подписку и возвращает проекцию автора.
// Подписка на себя и дубликат — конфликт без мутации.
func (s *Service) Follow(ctx context.Context, followerID, followeeID int64, recipesLimit int) (*SubscribedUserResponse, error) {
	if followerID == followeeID {
		return nil, ErrSelfSubscription
	}

	followee, err := s.users.GetByID(ctx, followeeID)
	if err != nil {
		return nil, err
	}

	if err := s.subscriptions.Follow(ctx, followerID, followeeID); err != nil {
		if err == repository.ErrAlreadySubscribed {
			return nil, ErrAlreadySubscribed
		}
		return nil, err
	}

	return s.project(ctx, followee, recipesLimit)
}

func (s *Service) Unfollow(ctx context.Context, followerID, followeeID int64) error {
	if _, err := s.users.GetByID(ctx, followeeID); err != nil {
		return err
	}

	err := s.subscriptions.Unfollow(ctx, followerID, followeeID)
	if err == repository.ErrNotSubscribed {
		return ErrNotSubscribed
	}
	return err
}

// List возвращает авторов, на которых подписан пользователь. recipesLimit
// усекает превью рецептов (0 — без усечения); recipes_count не зависит
// от лимита.
func (s *Service) List(ctx context.Context, followerID int64, recipesLimit int) ([]SubscribedUserResponse, error) {
	followees, err := s.subscriptions.ListFollowees(ctx, followerID)
	if err != nil {
		return nil, err
	}

	out := make([]SubscribedUserResponse, 0, len(followees))
	for i := range followees {
		resp, err := s.project(ctx, &followees[i], recipesLimit)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

func (s *Service) project(ctx context.Context, followee *domain.User, recipesLimit int) (*SubscribedUserResponse, error) {
	recipes, err := s.recipes.ListByAuthor(ctx, followee.ID, recipesLimit)
	if err != nil {
		return nil, err
	}
	count, err := s.recipes.CountByAuthor(ctx, followee.ID)
	if err != nil {
		return nil, err
	}

	resp := toSubscribedUserResponse(followee, recipes, count)
	return &resp, nil
}
