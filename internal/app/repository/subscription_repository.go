package repository

import (
	"github.com/recipehub/recipehub-backend/internal/app/model"
	"github.com/recipehub/recipehub-backend/pkg/logger"
	"gorm.io/gorm"
)

type SubscriptionRepository interface {
	Create(subscription *model.Subscription) error
	FindByUserAndAuthor(userID, authorID uint) (*model.Subscription, error)
	FindAuthorsByUser(userID uint, limit, offset int) ([]model.User, error)
	CountByUser(userID uint) (int64, error)
	FindAuthorIDsByUser(userID uint) ([]uint, error)
	Delete(userID, authorID uint) error
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Create(subscription *model.Subscription) error {
	logger.Debug("Creating subscription in database", map[string]interface{}{
		"user_id":   subscription.UserID,
		"author_id": subscription.AuthorID,
	})

	if err := r.db.Create(subscription).Error; err != nil {
		logger.Error("Failed to create subscription in database", err, map[string]interface{}{
			"user_id":   subscription.UserID,
			"author_id": subscription.AuthorID,
		})
		return err
	}
	return nil
}

func (r *subscriptionRepository) FindByUserAndAuthor(userID, authorID uint) (*model.Subscription, error) {
	var subscription model.Subscription
	err := r.db.Where("user_id = ? AND author_id = ?", userID, authorID).First(&subscription).Error
	if err != nil {
		return nil, err
	}
	return &subscription, nil
}

// FindAuthorsByUser returns the authors the user follows, in
// subscription order
func (r *subscriptionRepository) FindAuthorsByUser(userID uint, limit, offset int) ([]model.User, error) {
	var authors []model.User
	query := r.db.Model(&model.User{}).
		Joins("JOIN subscriptions ON subscriptions.author_id = users.id").
		Where("subscriptions.user_id = ?", userID).
		Order("subscriptions.created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Find(&authors).Error; err != nil {
		logger.Error("Failed to find subscribed authors", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return authors, nil
}

func (r *subscriptionRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// FindAuthorIDsByUser returns the IDs of every author the user follows,
// for resolving is_subscribed flags in one query
func (r *subscriptionRepository) FindAuthorIDsByUser(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.Subscription{}).
		Where("user_id = ?", userID).
		Pluck("author_id", &ids).Error
	if err != nil {
		logger.Error("Failed to find subscribed author IDs", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return ids, nil
}

func (r *subscriptionRepository) Delete(userID, authorID uint) error {
	logger.Debug("Deleting subscription from database", map[string]interface{}{
		"user_id":   userID,
		"author_id": authorID,
	})

	if err := r.db.Where("user_id = ? AND author_id = ?", userID, authorID).Delete(&model.Subscription{}).Error; err != nil {
		logger.Error("Failed to delete subscription from database", err, map[string]interface{}{
			"user_id":   userID,
			"author_id": authorID,
		})
		return err
	}
	return nil
}
