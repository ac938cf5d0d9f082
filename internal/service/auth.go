package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/Cdiksha/Smart-ToDo/internal/model"
	"github.com/Cdiksha/Smart-ToDo/internal/repo"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type AuthService struct {
	users repo.UserRepository
	board *BoardService
}

func NewAuthService(users repo.UserRepository, board *BoardService) *AuthService {
	return &AuthService{users: users, board: board}
}

func (s *AuthService) Signup(ctx context.Context, name, email, password string) (model.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	password = strings.TrimSpace(password)

	if name == "" || email == "" || password == "" {
		return model.User{}, ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, err
	}

	user, err := s.users.Create(ctx, model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	})
	if errors.Is(err, repo.ErrorConflict) { // email уникален
		return model.User{}, ErrEmailTaken
	}
	if err != nil {
		return model.User{}, err
	}

	// Новому пользователю сразу выдаем колонки по умолчанию
	if err := s.board.EnsureDefaultColumns(ctx, user.ID); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// Login не различает неизвестный email и неверный пароль
func (s *AuthService) Login(ctx context.Context, email, password string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	password = strings.TrimSpace(password)

	if email == "" || password == "" {
		return model.User{}, ErrValidation
	}

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repo.ErrorNotFound) {
		return model.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return model.User{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return model.User{}, ErrInvalidCredentials
	}
	return user, nil
}
