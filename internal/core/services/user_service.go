package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/currency_conversion_service/internal/apperrors"
	"github.com/SscSPs/currency_conversion_service/internal/core/domain"
	portsrepo "github.com/SscSPs/currency_conversion_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/currency_conversion_service/internal/core/ports/services"
	"github.com/SscSPs/currency_conversion_service/internal/utils"
)

// maxKeyAttempts bounds key regeneration after an api_key unique violation.
const maxKeyAttempts = 3

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	keyGen   func() (string, error)
}

// UserServiceOption is a functional option for configuring the user service
type UserServiceOption func(*userService)

// WithKeyGenerator replaces the API key generator.
func WithKeyGenerator(gen func() (string, error)) UserServiceOption {
	return func(s *userService) {
		s.keyGen = gen
	}
}

// NewUserService creates the user directory service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, options ...UserServiceOption) portssvc.UserSvcFacade {
	svc := &userService{
		userRepo: userRepo,
		keyGen:   utils.GenerateAPIKey,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) Register(ctx context.Context, name string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.Wrap(apperrors.KindInvalidRequest, "Name must not be blank.", apperrors.ErrValidation)
	}

	existing, err := s.LookupByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewAppError(apperrors.KindNameTaken, apperrors.MsgNameTaken)
	}

	for attempt := 1; attempt <= maxKeyAttempts; attempt++ {
		apiKey, err := s.keyGen()
		if err != nil {
			s.LogError(ctx, err, "Failed to generate API key")
			return nil, fmt.Errorf("failed to generate api key: %w", err)
		}

		user := &domain.User{Name: name, APIKey: apiKey}
		err = s.userRepo.SaveUser(ctx, user)
		switch {
		case err == nil:
			s.LogInfo(ctx, "User registered", slog.Int64("user_id", user.ID), slog.String("user_name", name))
			return user, nil
		case errors.Is(err, portsrepo.ErrDuplicateUserName):
			return nil, apperrors.Wrap(apperrors.KindNameTaken, apperrors.MsgNameTaken, err)
		case errors.Is(err, portsrepo.ErrDuplicateAPIKey):
			s.LogDebug(ctx, "API key collision, regenerating", slog.Int("attempt", attempt))
		default:
			s.LogError(ctx, err, "Failed to save user", slog.String("user_name", name))
			return nil, fmt.Errorf("failed to register user: %w", err)
		}
	}
	return nil, fmt.Errorf("failed to register user: no unique api key after %d attempts", maxKeyAttempts)
}

func (s *userService) LookupByKey(ctx context.Context, apiKey string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByAPIKey(ctx, apiKey)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user by api key: %w", err)
	}
	return user, nil
}

func (s *userService) LookupByName(ctx context.Context, name string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByName(ctx, name)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user by name: %w", err)
	}
	return user, nil
}

func (s *userService) EnsureSeedUser(ctx context.Context, name string) (*domain.User, bool, error) {
	count, err := s.userRepo.CountUsers(ctx)
	if err != nil {
		return nil, false, err
	}
	if count > 0 {
		return nil, false, nil
	}

	user, err := s.Register(ctx, name)
	if apperrors.KindOf(err) == apperrors.KindNameTaken {
		// Another instance seeded concurrently.
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}
