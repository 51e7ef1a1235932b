package service

import (
	"errors"

	"github.com/recipehub/recipehub-backend/internal/app/dto"
	"github.com/recipehub/recipehub-backend/internal/app/repository"
	"gorm.io/gorm"
)

var ErrTagNotFound = errors.New("tag not found")

type TagService interface {
	GetTags() ([]dto.TagResponse, error)
	GetTag(id uint) (*dto.TagResponse, error)
}

type tagService struct {
	tagRepo repository.TagRepository
}

func NewTagService(tagRepo repository.TagRepository) TagService {
	return &tagService{tagRepo: tagRepo}
}

func (s *tagService) GetTags() ([]dto.TagResponse, error) {
	tags, err := s.tagRepo.FindAll()
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TagResponse, 0, len(tags))
	for _, tag := range tags {
		responses = append(responses, dto.ToTagResponse(&tag))
	}
	return responses, nil
}

func (s *tagService) GetTag(id uint) (*dto.TagResponse, error) {
	tag, err := s.tagRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}

	response := dto.ToTagResponse(tag)
	return &response, nil
}
