package services

import (
	"context"

	"github.com/SscSPs/currency_conversion_service/internal/core/domain"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// LookupByKey returns nil, nil when no user owns the key.
	LookupByKey(ctx context.Context, apiKey string) (*domain.User, error)

	// LookupByName returns nil, nil when the name is free.
	LookupByName(ctx context.Context, name string) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// Register creates a user with a fresh API key.
	Register(ctx context.Context, name string) (*domain.User, error)

	// EnsureSeedUser registers name when no users exist yet. The boolean
	// reports whether a user was created.
	EnsureSeedUser(ctx context.Context, name string) (*domain.User, bool, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
}
