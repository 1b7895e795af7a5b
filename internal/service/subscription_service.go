package service

import (
	"errors"

	"vidshare-go/internal/api/dto"
	"vidshare-go/internal/repository"
)

var ErrSelfSubscription = errors.New("cannot subscribe to your own channel")

type SubscriptionService struct {
	subRepo  *repository.SubscriptionRepository
	userRepo *repository.UserRepository
}

func NewSubscriptionService(subRepo *repository.SubscriptionRepository, userRepo *repository.UserRepository) *SubscriptionService {
	return &SubscriptionService{subRepo: subRepo, userRepo: userRepo}
}

// Toggle flips the caller's subscription to a channel and returns the
// new state.
func (s *SubscriptionService) Toggle(subscriberID, channelID int64) (*dto.SubscriptionToggleResult, error) {
	if subscriberID == channelID {
		return nil, ErrSelfSubscription
	}
	if _, err := s.userRepo.GetByID(channelID); err != nil {
		return nil, ErrUserNotFound
	}

	existed, err := s.subRepo.Delete(subscriberID, channelID)
	if err != nil {
		return nil, err
	}
	if !existed {
		if err := s.subRepo.Create(subscriberID, channelID); err != nil {
			return nil, err
		}
	}

	count, err := s.subRepo.CountSubscribers(channelID)
	if err != nil {
		return nil, err
	}
	return &dto.SubscriptionToggleResult{Subscribed: !existed, SubscriberCount: count}, nil
}

// Status reports whether the caller subscribes to the channel.
func (s *SubscriptionService) Status(subscriberID, channelID int64) (bool, error) {
	if _, err := s.userRepo.GetByID(channelID); err != nil {
		return false, ErrUserNotFound
	}
	return s.subRepo.Exists(subscriberID, channelID)
}

// ListSubscribers pages through a channel's subscribers.
func (s *SubscriptionService) ListSubscribers(channelID int64, page, limit int) (*dto.ChannelListData, error) {
	ids, _, err := s.subRepo.ListSubscriberIDs(channelID, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	return s.userList(ids)
}

// ListSubscribedTo pages through the channels a user subscribes to.
func (s *SubscriptionService) ListSubscribedTo(subscriberID int64, page, limit int) (*dto.ChannelListData, error) {
	ids, _, err := s.subRepo.ListChannelIDs(subscriberID, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	return s.userList(ids)
}

func (s *SubscriptionService) userList(ids []int64) (*dto.ChannelListData, error) {
	data := &dto.ChannelListData{Users: []dto.OwnerBrief{}}
	if len(ids) == 0 {
		return data, nil
	}

	users, err := s.userRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	for i := range users {
		data.Users = append(data.Users, dto.NewOwnerBrief(&users[i]))
	}
	return data, nil
}
