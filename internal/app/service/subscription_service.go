package service

import (
	"errors"

	"github.com/recipehub/recipehub-backend/internal/app/dto"
	"github.com/recipehub/recipehub-backend/internal/app/model"
	"github.com/recipehub/recipehub-backend/internal/app/repository"
	"github.com/recipehub/recipehub-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrSelfSubscription  = errors.New("users cannot subscribe to themselves")
	ErrAlreadySubscribed = errors.New("already subscribed to this author")
	ErrNotSubscribed     = errors.New("not subscribed to this author")
)

type SubscriptionService interface {
	Subscribe(userID, authorID uint, recipesLimit int) (*dto.SubscriptionResponse, error)
	Unsubscribe(userID, authorID uint) error
	GetSubscriptions(userID uint, limit, offset, recipesLimit int) ([]dto.SubscriptionResponse, int64, error)
}

type subscriptionService struct {
	subscriptionRepo repository.SubscriptionRepository
	userRepo         repository.UserRepository
	recipeRepo       repository.RecipeRepository
}

func NewSubscriptionService(
	subscriptionRepo repository.SubscriptionRepository,
	userRepo repository.UserRepository,
	recipeRepo repository.RecipeRepository,
) SubscriptionService {
	return &subscriptionService{
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		recipeRepo:       recipeRepo,
	}
}

// authorCard loads an author's recent recipes and renders the
// subscription read view. recipesLimit < 0 means no limit.
func (s *subscriptionService) authorCard(author *model.User, recipesLimit int, viewer dto.Viewer) (*dto.SubscriptionResponse, error) {
	recipes, err := s.recipeRepo.FindByAuthorID(author.ID, recipesLimit)
	if err != nil {
		return nil, err
	}
	recipesCount, err := s.recipeRepo.CountByAuthorID(author.ID)
	if err != nil {
		return nil, err
	}

	response := dto.ToSubscriptionResponse(author, recipes, recipesCount, viewer)
	return &response, nil
}

func (s *subscriptionService) Subscribe(userID, authorID uint, recipesLimit int) (*dto.SubscriptionResponse, error) {
	if userID == authorID {
		return nil, ErrSelfSubscription
	}

	author, err := s.userRepo.FindByID(authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if _, err := s.subscriptionRepo.FindByUserAndAuthor(userID, authorID); err == nil {
		return nil, ErrAlreadySubscribed
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	subscription := &model.Subscription{
		UserID:   userID,
		AuthorID: authorID,
	}
	if err := s.subscriptionRepo.Create(subscription); err != nil {
		return nil, err
	}

	logger.Info("Subscription created", map[string]interface{}{
		"user_id":   userID,
		"author_id": authorID,
	})

	// The caller just subscribed, so the flag is known without a lookup
	viewer := dto.Viewer{SubscribedAuthorIDs: map[uint]bool{authorID: true}}
	return s.authorCard(author, recipesLimit, viewer)
}

func (s *subscriptionService) Unsubscribe(userID, authorID uint) error {
	if _, err := s.userRepo.FindByID(authorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if _, err := s.subscriptionRepo.FindByUserAndAuthor(userID, authorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotSubscribed
		}
		return err
	}

	if err := s.subscriptionRepo.Delete(userID, authorID); err != nil {
		return err
	}

	logger.Info("Subscription removed", map[string]interface{}{
		"user_id":   userID,
		"author_id": authorID,
	})
	return nil
}

func (s *subscriptionService) GetSubscriptions(userID uint, limit, offset, recipesLimit int) ([]dto.SubscriptionResponse, int64, error) {
	authors, err := s.subscriptionRepo.FindAuthorsByUser(userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	count, err := s.subscriptionRepo.CountByUser(userID)
	if err != nil {
		return nil, 0, err
	}

	// Every author on this page is followed by definition
	subscribed := make(map[uint]bool, len(authors))
	for _, author := range authors {
		subscribed[author.ID] = true
	}
	viewer := dto.Viewer{SubscribedAuthorIDs: subscribed}

	responses := make([]dto.SubscriptionResponse, 0, len(authors))
	for i := range authors {
		card, err := s.authorCard(&authors[i], recipesLimit, viewer)
		if err != nil {
			return nil, 0, err
		}
		responses = append(responses, *card)
	}
	return responses, count, nil
}
