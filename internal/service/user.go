package service

import (
	"context"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

type UserService struct {
	repository UserRepository
}

func NewUserService(repository UserRepository) *UserService {
	return &UserService{repository: repository}
}

// EnsureUser returns the user behind externalID, registering it on first contact.
func (s *UserService) EnsureUser(ctx context.Context, externalID int64) (*entities.User, error) {
	return s.repository.GetOrCreate(ctx, externalID)
}
