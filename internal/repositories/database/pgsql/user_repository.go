package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/currency_conversion_service/internal/apperrors"
	"github.com/SscSPs/currency_conversion_service/internal/core/domain"
	portsrepo "github.com/SscSPs/currency_conversion_service/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

const (
	usersTable = "users"

	usersNameConstraint   = "users_name_key"
	usersAPIKeyConstraint = "users_api_key_key"

	selectUserFields = `id, api_key, name`

	insertUserQuery = `
		INSERT INTO ` + usersTable + ` (api_key, name)
		VALUES ($1, $2)
		RETURNING id`

	findUserByAPIKeyQuery = `
		SELECT ` + selectUserFields + `
		FROM ` + usersTable + `
		WHERE api_key = $1`

	findUserByNameQuery = `
		SELECT ` + selectUserFields + `
		FROM ` + usersTable + `
		WHERE name = $1`

	countUsersQuery = `SELECT COUNT(*) FROM ` + usersTable
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db DBTX) *PgxUserRepository {
	return &PgxUserRepository{BaseRepository: BaseRepository{DB: db}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func (r *PgxUserRepository) SaveUser(ctx context.Context, user *domain.User) error {
	err := r.DB.QueryRow(ctx, insertUserQuery, user.APIKey, user.Name).Scan(&user.ID)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			switch constraint {
			case usersNameConstraint:
				return portsrepo.ErrDuplicateUserName
			case usersAPIKeyConstraint:
				return portsrepo.ErrDuplicateAPIKey
			}
			return fmt.Errorf("failed to save user: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByAPIKey(ctx context.Context, apiKey string) (*domain.User, error) {
	user, err := scanUser(r.DB.QueryRow(ctx, findUserByAPIKeyQuery, apiKey))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by api key: %w", err)
	}
	return user, nil
}

func (r *PgxUserRepository) FindUserByName(ctx context.Context, name string) (*domain.User, error) {
	user, err := scanUser(r.DB.QueryRow(ctx, findUserByNameQuery, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by name %s: %w", name, err)
	}
	return user, nil
}

func (r *PgxUserRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := r.DB.QueryRow(ctx, countUsersQuery).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(&user.ID, &user.APIKey, &user.Name); err != nil {
		return nil, err
	}
	return &user, nil
}
