package repositories

import (
	"context"
	"fmt"

	"github.com/SscSPs/currency_conversion_service/internal/apperrors"
	"github.com/SscSPs/currency_conversion_service/internal/core/domain"
)

// Unique violations reported by SaveUser. Both wrap apperrors.ErrDuplicate.
var (
	ErrDuplicateUserName = fmt.Errorf("%w: user name", apperrors.ErrDuplicate)
	ErrDuplicateAPIKey   = fmt.Errorf("%w: api key", apperrors.ErrDuplicate)
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByAPIKey returns apperrors.ErrNotFound when no user owns the key.
	FindUserByAPIKey(ctx context.Context, apiKey string) (*domain.User, error)

	// FindUserByName returns apperrors.ErrNotFound when the name is free.
	FindUserByName(ctx context.Context, name string) (*domain.User, error)

	// CountUsers returns the number of registered users.
	CountUsers(ctx context.Context) (int64, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser inserts a new user and sets its ID.
	SaveUser(ctx context.Context, user *domain.User) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
