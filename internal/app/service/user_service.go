package service

import (
	"errors"

	"github.com/recipehub/recipehub-backend/internal/app/dto"
	"github.com/recipehub/recipehub-backend/internal/app/repository"
	"gorm.io/gorm"
)

type UserService interface {
	GetUsers(limit, offset int, viewerID *uint) ([]dto.UserResponse, int64, error)
	GetUser(id uint, viewerID *uint) (*dto.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
	viewer   viewerResolver
}

func NewUserService(
	userRepo repository.UserRepository,
	subscriptionRepo repository.SubscriptionRepository,
) UserService {
	return &userService{
		userRepo: userRepo,
		viewer:   viewerResolver{subscriptionRepo: subscriptionRepo},
	}
}

func (s *userService) GetUsers(limit, offset int, viewerID *uint) ([]dto.UserResponse, int64, error) {
	users, err := s.userRepo.FindAll(limit, offset)
	if err != nil {
		return nil, 0, err
	}

	count, err := s.userRepo.Count()
	if err != nil {
		return nil, 0, err
	}

	viewer, err := s.viewer.resolve(viewerID)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, dto.ToUserResponse(&users[i], viewer))
	}
	return responses, count, nil
}

func (s *userService) GetUser(id uint, viewerID *uint) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	viewer, err := s.viewer.resolve(viewerID)
	if err != nil {
		return nil, err
	}

	response := dto.ToUserResponse(user, viewer)
	return &response, nil
}
