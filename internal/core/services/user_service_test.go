package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/currency_conversion_service/internal/apperrors"
	"github.com/SscSPs/currency_conversion_service/internal/core/domain"
	portsrepo "github.com/SscSPs/currency_conversion_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/currency_conversion_service/internal/core/ports/services"
	"github.com/SscSPs/currency_conversion_service/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	keys     []string
	service  portssvc.UserSvcFacade
	ctx      context.Context
}

func (s *UserServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockUserRepository)
	s.keys = []string{"key-1", "key-2", "key-3", "key-4"}
	next := 0
	keyGen := func() (string, error) {
		key := s.keys[next]
		next++
		return key, nil
	}
	s.service = services.NewUserService(s.mockRepo, services.WithKeyGenerator(keyGen))
	s.ctx = context.Background()
}

func (s *UserServiceTestSuite) TearDownTest() {
	s.mockRepo.AssertExpectations(s.T())
}

func TestUserServiceSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func userWithKey(key string) interface{} {
	return mock.MatchedBy(func(u *domain.User) bool { return u.APIKey == key && u.Name == "Alice" })
}

func (s *UserServiceTestSuite) TestRegister_Success() {
	s.mockRepo.On("FindUserByName", s.ctx, "Alice").Return(nil, apperrors.ErrNotFound).Once()
	s.mockRepo.On("SaveUser", s.ctx, userWithKey("key-1")).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.User).ID = 7 }).
		Return(nil).Once()

	user, err := s.service.Register(s.ctx, "  Alice ")

	s.Require().NoError(err)
	s.Equal(int64(7), user.ID)
	s.Equal("Alice", user.Name)
	s.Equal("key-1", user.APIKey)
}

func (s *UserServiceTestSuite) TestRegister_BlankName() {
	user, err := s.service.Register(s.ctx, "   ")

	s.Nil(user)
	s.Equal(apperrors.KindInvalidRequest, apperrors.KindOf(err))
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockRepo.AssertNotCalled(s.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestRegister_NameTaken() {
	s.mockRepo.On("FindUserByName", s.ctx, "Alice").Return(&domain.User{ID: 1, Name: "Alice"}, nil).Once()

	user, err := s.service.Register(s.ctx, "Alice")

	s.Nil(user)
	s.Equal(apperrors.KindNameTaken, apperrors.KindOf(err))
	s.Equal(apperrors.MsgNameTaken, apperrors.MessageOf(err))
	s.mockRepo.AssertNotCalled(s.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestRegister_NameTakenByConcurrentInsert() {
	s.mockRepo.On("FindUserByName", s.ctx, "Alice").Return(nil, apperrors.ErrNotFound).Once()
	s.mockRepo.On("SaveUser", s.ctx, userWithKey("key-1")).Return(portsrepo.ErrDuplicateUserName).Once()

	user, err := s.service.Register(s.ctx, "Alice")

	s.Nil(user)
	s.Equal(apperrors.KindNameTaken, apperrors.KindOf(err))
	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *UserServiceTestSuite) TestRegister_RetriesOnKeyCollision() {
	s.mockRepo.On("FindUserByName", s.ctx, "Alice").Return(nil, apperrors.ErrNotFound).Once()
	s.mockRepo.On("SaveUser", s.ctx, userWithKey("key-1")).Return(portsrepo.ErrDuplicateAPIKey).Once()
	s.mockRepo.On("SaveUser", s.ctx, userWithKey("key-2")).Return(nil).Once()

	user, err := s.service.Register(s.ctx, "Alice")

	s.Require().NoError(err)
	s.Equal("key-2", user.APIKey)
}

func (s *UserServiceTestSuite) TestRegister_GivesUpAfterThreeCollisions() {
	s.mockRepo.On("FindUserByName", s.ctx, "Alice").Return(nil, apperrors.ErrNotFound).Once()
	s.mockRepo.On("SaveUser", s.ctx, mock.AnythingOfType("*domain.User")).Return(portsrepo.ErrDuplicateAPIKey).Times(3)

	user, err := s.service.Register(s.ctx, "Alice")

	s.Nil(user)
	s.Error(err)
	s.Equal(apperrors.KindInternal, apperrors.KindOf(err))
}

func (s *UserServiceTestSuite) TestRegister_KeyGeneratorFails() {
	genErr := errors.New("entropy exhausted")
	svc := services.NewUserService(s.mockRepo, services.WithKeyGenerator(func() (string, error) { return "", genErr }))
	s.mockRepo.On("FindUserByName", s.ctx, "Alice").Return(nil, apperrors.ErrNotFound).Once()

	user, err := svc.Register(s.ctx, "Alice")

	s.Nil(user)
	s.ErrorIs(err, genErr)
}

func (s *UserServiceTestSuite) TestLookupByKey() {
	s.mockRepo.On("FindUserByAPIKey", s.ctx, "good").Return(&domain.User{ID: 1, Name: "Alice", APIKey: "good"}, nil).Once()
	s.mockRepo.On("FindUserByAPIKey", s.ctx, "bogus").Return(nil, apperrors.ErrNotFound).Once()
	dbErr := errors.New("connection reset")
	s.mockRepo.On("FindUserByAPIKey", s.ctx, "broken").Return(nil, dbErr).Once()

	user, err := s.service.LookupByKey(s.ctx, "good")
	s.Require().NoError(err)
	s.Equal("Alice", user.Name)

	user, err = s.service.LookupByKey(s.ctx, "bogus")
	s.NoError(err)
	s.Nil(user)

	user, err = s.service.LookupByKey(s.ctx, "broken")
	s.Nil(user)
	s.ErrorIs(err, dbErr)
}

func (s *UserServiceTestSuite) TestEnsureSeedUser_SkipsWhenUsersExist() {
	s.mockRepo.On("CountUsers", s.ctx).Return(int64(3), nil).Once()

	user, created, err := s.service.EnsureSeedUser(s.ctx, "Test User")

	s.NoError(err)
	s.False(created)
	s.Nil(user)
}

func (s *UserServiceTestSuite) TestEnsureSeedUser_CreatesOnEmptyTable() {
	s.mockRepo.On("CountUsers", s.ctx).Return(int64(0), nil).Once()
	s.mockRepo.On("FindUserByName", s.ctx, "Test User").Return(nil, apperrors.ErrNotFound).Once()
	s.mockRepo.On("SaveUser", s.ctx, mock.AnythingOfType("*domain.User")).Return(nil).Once()

	user, created, err := s.service.EnsureSeedUser(s.ctx, "Test User")

	s.Require().NoError(err)
	s.True(created)
	s.Equal("Test User", user.Name)
	s.Equal("key-1", user.APIKey)
}

func (s *UserServiceTestSuite) TestEnsureSeedUser_LosesRace() {
	s.mockRepo.On("CountUsers", s.ctx).Return(int64(0), nil).Once()
	s.mockRepo.On("FindUserByName", s.ctx, "Test User").Return(nil, apperrors.ErrNotFound).Once()
	s.mockRepo.On("SaveUser", s.ctx, mock.AnythingOfType("*domain.User")).
		Return(fmt.Errorf("insert: %w", portsrepo.ErrDuplicateUserName)).Once()

	user, created, err := s.service.EnsureSeedUser(s.ctx, "Test User")

	s.NoError(err)
	s.False(created)
	s.Nil(user)
}

func TestRegister_RealKeyGenerator(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindUserByName", mock.Anything, "Bob").Return(nil, apperrors.ErrNotFound)
	repo.On("SaveUser", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	svc := services.NewUserService(repo)
	first, err := svc.Register(context.Background(), "Bob")
	require.NoError(t, err)
	second, err := svc.Register(context.Background(), "Bob")
	require.NoError(t, err)

	assert.Len(t, first.APIKey, 32)
	assert.NotEqual(t, first.APIKey, second.APIKey)
}
