package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/vidtube/vidtube_backend/internal/apperrors"
	"github.com/vidtube/vidtube_backend/internal/core/domain"
	portssvc "github.com/vidtube/vidtube_backend/internal/core/ports/services"
	"github.com/vidtube/vidtube_backend/internal/core/services"
)

type SubscriptionServiceTestSuite struct {
	suite.Suite
	mockSubRepo  *MockSubscriptionRepository
	mockUserRepo *MockUserRepository
	service      portssvc.SubscriptionSvcFacade
}

func (suite *SubscriptionServiceTestSuite) SetupTest() {
	suite.mockSubRepo = new(MockSubscriptionRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewSubscriptionService(suite.mockSubRepo, suite.mockUserRepo)
}

func (suite *SubscriptionServiceTestSuite) TestToggleSubscription_Subscribes() {
	ctx := context.Background()
	subscriberID := uuid.NewString()
	channelID := uuid.NewString()
	channel := &domain.User{UserID: channelID}

	suite.mockUserRepo.On("FindUserByID", ctx, channelID).Return(channel, nil).Once()
	suite.mockSubRepo.On("IsSubscribed", ctx, subscriberID, channelID).Return(false, nil).Once()
	suite.mockSubRepo.On("SaveSubscription", ctx, mock.MatchedBy(func(sub domain.Subscription) bool {
		return sub.SubscriberID == subscriberID && sub.ChannelID == channelID && sub.SubscriptionID != ""
	})).Return(nil).Once()

	subscribed, err := suite.service.ToggleSubscription(ctx, subscriberID, channelID)

	suite.Require().NoError(err)
	suite.True(subscribed)
	suite.mockSubRepo.AssertExpectations(suite.T())
}

func (suite *SubscriptionServiceTestSuite) TestToggleSubscription_Unsubscribes() {
	ctx := context.Background()
	subscriberID := uuid.NewString()
	channelID := uuid.NewString()
	channel := &domain.User{UserID: channelID}

	suite.mockUserRepo.On("FindUserByID", ctx, channelID).Return(channel, nil).Once()
	suite.mockSubRepo.On("IsSubscribed", ctx, subscriberID, channelID).Return(true, nil).Once()
	suite.mockSubRepo.On("DeleteSubscription", ctx, subscriberID, channelID).Return(nil).Once()

	subscribed, err := suite.service.ToggleSubscription(ctx, subscriberID, channelID)

	suite.Require().NoError(err)
	suite.False(subscribed)
	suite.mockSubRepo.AssertExpectations(suite.T())
	suite.mockSubRepo.AssertNotCalled(suite.T(), "SaveSubscription", mock.Anything, mock.Anything)
}

func (suite *SubscriptionServiceTestSuite) TestToggleSubscription_SelfSubscription() {
	ctx := context.Background()
	userID := uuid.NewString()

	subscribed, err := suite.service.ToggleSubscription(ctx, userID, userID)

	suite.Require().Error(err)
	suite.False(subscribed)
	suite.Equal(400, apperrors.StatusCode(err))
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindUserByID", mock.Anything, mock.Anything)
}

func (suite *SubscriptionServiceTestSuite) TestToggleSubscription_ChannelMissing() {
	ctx := context.Background()
	subscriberID := uuid.NewString()
	channelID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, channelID).Return(nil, apperrors.ErrNotFound).Once()

	subscribed, err := suite.service.ToggleSubscription(ctx, subscriberID, channelID)

	suite.Require().Error(err)
	suite.False(subscribed)
	suite.Equal(404, apperrors.StatusCode(err))
	suite.mockSubRepo.AssertNotCalled(suite.T(), "IsSubscribed", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SubscriptionServiceTestSuite) TestToggleSubscription_ConcurrentDuplicate() {
	ctx := context.Background()
	subscriberID := uuid.NewString()
	channelID := uuid.NewString()
	channel := &domain.User{UserID: channelID}

	suite.mockUserRepo.On("FindUserByID", ctx, channelID).Return(channel, nil).Once()
	suite.mockSubRepo.On("IsSubscribed", ctx, subscriberID, channelID).Return(false, nil).Once()
	suite.mockSubRepo.On("SaveSubscription", ctx, mock.AnythingOfType("domain.Subscription")).
		Return(apperrors.ErrDuplicate).Once()

	subscribed, err := suite.service.ToggleSubscription(ctx, subscriberID, channelID)

	suite.Require().NoError(err)
	suite.True(subscribed)
}

// --- Run Suite ---
func TestSubscriptionService(t *testing.T) {
	suite.Run(t, new(SubscriptionServiceTestSuite))
}
