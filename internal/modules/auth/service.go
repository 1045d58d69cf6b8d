package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"foodgram/internal/domain"
	"foodgram/internal/pkg/imagedata"
	"foodgram/internal/pkg/storage"
	"foodgram/internal/repository"
)

const avatarFolder = "user/images"

type jwtService interface {
	GenerateToken(userID int64) (string, error)
}

// Service contains registration, login and avatar logic
type Service struct {
	users   repository.UserRepository
	jwt     jwtService
	storage storage.Storage
}

func NewService(users repository.UserRepository, jwt jwtService, store storage.Storage) *Service {
	return &Service{users: users, jwt: jwt, storage: store}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", ErrEmailAlreadyExists
	}

	exists, err = s.users.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", ErrUsernameAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Email:        email,
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.jwt.GenerateToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *Service) GetByID(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

// SetAvatar декодирует data-URI, сохраняет ассет и заменяет аватар,
// убирая прежний файл из хранилища.
func (s *Service) SetAvatar(ctx context.Context, userID int64, dataURI string) (*domain.User, error) {
	ext, payload, err := imagedata.Decode(dataURI)
	if err != nil {
		return nil, ErrInvalidAvatar
	}

	url, err := s.storage.Save(ctx, avatarFolder, ext, payload)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	old := user.Avatar

	if err := s.users.UpdateAvatar(ctx, userID, url); err != nil {
		return nil, err
	}
	if old != "" {
		_ = s.storage.Delete(ctx, old)
	}

	user.Avatar = url
	return user, nil
}

func (s *Service) DeleteAvatar(ctx context.Context, userID int64) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.users.UpdateAvatar(ctx, userID, ""); err != nil {
		return err
	}
	if user.Avatar != "" {
		_ = s.storage.Delete(ctx, user.Avatar)
	}
	return nil
}
